package usecase

import (
	"context"
	"log"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/xavierca1/launch-webhooks/internal/entity"
	"github.com/xavierca1/launch-webhooks/internal/infra/queue"
)

type RecordSaleUseCase struct {
	LeadRepo   entity.LeadRepositoryInterface
	SaleRepo   entity.SaleRepositoryInterface
	Normalizer StatusNormalizer
	Producer   SaleEventProducerInterface
}

func NewRecordSaleUseCase(
	leadRepo entity.LeadRepositoryInterface,
	saleRepo entity.SaleRepositoryInterface,
	normalizer StatusNormalizer,
	producer SaleEventProducerInterface,
) *RecordSaleUseCase {
	return &RecordSaleUseCase{
		LeadRepo:   leadRepo,
		SaleRepo:   saleRepo,
		Normalizer: normalizer,
		Producer:   producer,
	}
}

func (uc *RecordSaleUseCase) Execute(ctx context.Context, launch *entity.Launch, platform string, input RecordSaleInput) (*RecordSaleOutput, error) {
	if strings.TrimSpace(input.Email) == "" {
		return nil, &DomainError{Code: CodeBadRequest, Message: "Email is required"}
	}

	status := uc.Normalizer.Normalize(platform, input.Status)
	amountCents := deriveAmountCents(input)
	leadID := uc.resolveLead(ctx, launch, platform, input)

	productName := input.Product
	if productName == "" {
		productName = "Produto"
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		LeadID:        leadID,
		LaunchID:      launch.ID,
		ProductName:   productName,
		AmountCents:   amountCents,
		Status:        status,
		PaymentMethod: input.PaymentMethod,
		Platform:      strings.ToLower(strings.TrimSpace(platform)),
		TransactionID: input.TransactionID,
	}

	if err := uc.SaleRepo.Upsert(ctx, sale); err != nil {
		log.Printf("❌ Erro ao gravar venda (launch=%s tx=%s): %v", launch.ID, input.TransactionID, err)
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "Failed to save sale"}
	}

	// Venda já está durável; falha de fila não derruba o webhook.
	if uc.Producer != nil {
		event := queue.SaleEventPayload{
			SaleID:      sale.ID,
			LeadID:      sale.LeadID,
			LaunchID:    sale.LaunchID,
			Platform:    sale.Platform,
			Status:      sale.Status,
			Email:       input.Email,
			Name:        input.Name,
			Phone:       input.Phone,
			ProductName: sale.ProductName,
			AmountCents: sale.AmountCents,
		}
		if err := uc.Producer.PublishSaleEvent(ctx, event); err != nil {
			log.Printf("⚠️ Venda %s gravada, mas falha ao publicar evento: %v", sale.ID, err)
		}
	}

	log.Printf("✅ Venda processada: %s (status=%s platform=%s)", sale.ID, sale.Status, sale.Platform)
	return &RecordSaleOutput{
		SaleID:   sale.ID,
		LeadID:   sale.LeadID,
		Status:   sale.Status,
		Platform: sale.Platform,
	}, nil
}

// resolveLead garante o lead (launch, email) e devolve o id. Se a criação
// falhar a venda segue sem lead_id: persistir a venda vem primeiro.
func (uc *RecordSaleUseCase) resolveLead(ctx context.Context, launch *entity.Launch, platform string, input RecordSaleInput) string {
	lead := &entity.Lead{
		ID:       uuid.New().String(),
		LaunchID: launch.ID,
		Email:    input.Email,
		Name:     input.Name,
		Tags:     []string{"customer"},
		Metadata: map[string]any{
			"source":            "sales_webhook",
			"platform":          strings.ToLower(strings.TrimSpace(platform)),
			"created_from_sale": true,
		},
	}

	leadID, err := uc.LeadRepo.FindOrCreate(ctx, lead)
	if err != nil {
		log.Printf("⚠️ Falha ao resolver lead para %s (launch=%s): %v", input.Email, launch.ID, err)
		return ""
	}
	return leadID
}

// deriveAmountCents: centavos explícitos têm prioridade; valor decimal é
// convertido com arredondamento half-up (math.Round, valores nunca negativos);
// ambos ausentes = 0.
func deriveAmountCents(input RecordSaleInput) int64 {
	if input.AmountCents != 0 {
		return input.AmountCents
	}
	if input.Amount != 0 {
		return int64(math.Round(input.Amount * 100))
	}
	return 0
}
