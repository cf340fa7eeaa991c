package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/launch-webhooks/internal/entity"
	"github.com/xavierca1/launch-webhooks/internal/infra/http/middleware"
	"github.com/xavierca1/launch-webhooks/internal/usecase"
)

type SalesHandler struct {
	Resolver *usecase.ResolveLaunchUseCase
	RecordUC *usecase.RecordSaleUseCase
}

func NewSalesHandler(resolver *usecase.ResolveLaunchUseCase, recordUC *usecase.RecordSaleUseCase) *SalesHandler {
	return &SalesHandler{
		Resolver: resolver,
		RecordUC: recordUC,
	}
}

type SaleResponse struct {
	Success bool   `json:"success"`
	SaleID  string `json:"sale_id,omitempty"`
	LeadID  string `json:"lead_id,omitempty"`
	Message string `json:"message,omitempty"`
}

// HandleByPlatformAndCode: endereçamento legado /sales/{platform}/{launchCode}.
func (h *SalesHandler) HandleByPlatformAndCode(w http.ResponseWriter, r *http.Request) {
	platform := chi.URLParam(r, "platform")
	if platform == "" {
		writeError(w, http.StatusBadRequest, "Platform and launch code are required")
		return
	}

	launch, err := h.Resolver.ByCode(r.Context(), chi.URLParam(r, "launchCode"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	h.record(w, r, launch, platform)
}

// HandleByWebhookID: a plataforma vem da integração, não da URL.
func (h *SalesHandler) HandleByWebhookID(w http.ResponseWriter, r *http.Request) {
	launch, integration, err := h.Resolver.ByWebhookID(r.Context(), chi.URLParam(r, "webhookID"))
	if err != nil {
		writeUseCaseError(w, err)
		return
	}
	h.record(w, r, launch, integration.Platform)
}

func (h *SalesHandler) record(w http.ResponseWriter, r *http.Request, launch *entity.Launch, platform string) {
	var input usecase.RecordSaleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	output, err := h.RecordUC.Execute(r.Context(), launch, platform, input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	// Label de plataforma sempre normalizada; a URL é controlada pelo sender.
	middleware.RecordSale(output.Platform, output.Status)
	writeJSON(w, http.StatusOK, SaleResponse{
		Success: true,
		SaleID:  output.SaleID,
		LeadID:  output.LeadID,
		Message: "Sale processed successfully",
	})
}
