package usecase

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/xavierca1/launch-webhooks/internal/entity"
)

type CaptureLeadUseCase struct {
	LeadRepo entity.LeadRepositoryInterface
}

func NewCaptureLeadUseCase(leadRepo entity.LeadRepositoryInterface) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{LeadRepo: leadRepo}
}

// Execute grava a captura de forma idempotente: replay do mesmo
// (launch, email) atualiza a linha existente, tags zeradas e metadata
// substituído por inteiro.
func (uc *CaptureLeadUseCase) Execute(ctx context.Context, launch *entity.Launch, input CaptureLeadInput, reqCtx RequestContext) (string, error) {
	if strings.TrimSpace(input.Email) == "" {
		return "", &DomainError{Code: CodeBadRequest, Message: "Email is required"}
	}

	lead := &entity.Lead{
		ID:       uuid.New().String(),
		LaunchID: launch.ID,
		Email:    input.Email,
		Name:     input.Name,
		Phone:    input.Phone,
		Tags:     []string{},
		Metadata: buildCaptureMetadata(input, reqCtx),
	}

	if err := uc.LeadRepo.Upsert(ctx, lead); err != nil {
		log.Printf("❌ Erro ao gravar lead (launch=%s): %v", launch.ID, err)
		return "", &TechnicalError{Code: "DATABASE_ERROR", Message: "Failed to save lead"}
	}

	log.Printf("✅ Lead capturado: %s (launch=%s)", lead.ID, launch.ID)
	return lead.ID, nil
}

// buildCaptureMetadata monta o envelope: UTMs em chaves nomeadas, contexto da
// requisição, e o saco de extras repassado verbatim. Extras não sobrescrevem
// as chaves nomeadas.
func buildCaptureMetadata(input CaptureLeadInput, reqCtx RequestContext) map[string]any {
	metadata := make(map[string]any, len(input.Extra)+9)

	for key, value := range input.Extra {
		metadata[key] = value
	}

	utms := map[string]string{
		"utm_source":   input.UTMSource,
		"utm_medium":   input.UTMMedium,
		"utm_campaign": input.UTMCampaign,
		"utm_content":  input.UTMContent,
		"utm_term":     input.UTMTerm,
	}
	for key, value := range utms {
		if value != "" {
			metadata[key] = value
		}
	}

	if reqCtx.IP != "" {
		metadata["ip"] = reqCtx.IP
	}
	if reqCtx.UserAgent != "" {
		metadata["user_agent"] = reqCtx.UserAgent
	}
	if reqCtx.Referer != "" {
		metadata["referer"] = reqCtx.Referer
	}
	metadata["captured_at"] = time.Now().UTC().Format(time.RFC3339)

	return metadata
}
