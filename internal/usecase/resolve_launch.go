package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/xavierca1/launch-webhooks/internal/entity"
)

// ResolveLaunchUseCase autentica o webhook a um launch. Sem credencial: a
// segurança é o launch_code (legado) ou o permanent_webhook_id opaco.
type ResolveLaunchUseCase struct {
	LaunchRepo      entity.LaunchRepositoryInterface
	IntegrationRepo entity.WebhookIntegrationRepositoryInterface
}

func NewResolveLaunchUseCase(
	launchRepo entity.LaunchRepositoryInterface,
	integrationRepo entity.WebhookIntegrationRepositoryInterface,
) *ResolveLaunchUseCase {
	return &ResolveLaunchUseCase{
		LaunchRepo:      launchRepo,
		IntegrationRepo: integrationRepo,
	}
}

func (uc *ResolveLaunchUseCase) ByCode(ctx context.Context, launchCode string) (*entity.Launch, error) {
	if strings.TrimSpace(launchCode) == "" {
		return nil, &DomainError{Code: CodeBadRequest, Message: "Launch code is required"}
	}

	launch, err := uc.LaunchRepo.FindByCode(ctx, launchCode)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "Failed to resolve launch"}
	}
	if launch == nil {
		log.Printf("⚠️ Launch não encontrado para code=%s", launchCode)
		return nil, &DomainError{Code: CodeNotFound, Message: "Launch not found"}
	}
	return launch, nil
}

// ByWebhookID resolve o launch através da integração ativa. A integração
// também carrega a plataforma, então a URL não precisa expor nada além do id.
func (uc *ResolveLaunchUseCase) ByWebhookID(ctx context.Context, webhookID string) (*entity.Launch, *entity.WebhookIntegration, error) {
	if strings.TrimSpace(webhookID) == "" {
		return nil, nil, &DomainError{Code: CodeBadRequest, Message: "Webhook id is required"}
	}

	integration, err := uc.IntegrationRepo.FindActiveByWebhookID(ctx, webhookID)
	if err != nil {
		return nil, nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "Failed to resolve integration"}
	}
	if integration == nil {
		log.Printf("⚠️ Integração inexistente ou inativa para webhook_id=%s", webhookID)
		return nil, nil, &DomainError{Code: CodeNotFound, Message: "Integration not found"}
	}

	launch, err := uc.LaunchRepo.FindByID(ctx, integration.LaunchID)
	if err != nil {
		return nil, nil, &TechnicalError{Code: "DATABASE_ERROR", Message: "Failed to resolve launch"}
	}
	if launch == nil {
		// Integração apontando para launch apagado: trata como não configurado.
		log.Printf("⚠️ Integração %s aponta para launch inexistente %s", integration.ID, integration.LaunchID)
		return nil, nil, &DomainError{Code: CodeNotFound, Message: "Launch not found"}
	}
	return launch, integration, nil
}
