package entity

import "context"

// Entidade: WebhookIntegration
// Liga um identificador opaco de endpoint a um launch + plataforma.
// O permanent_webhook_id é o único segredo da URL pública.
type WebhookIntegration struct {
	ID                 string `json:"id"`
	LaunchID           string `json:"launch_id"`
	PermanentWebhookID string `json:"permanent_webhook_id"`
	Platform           string `json:"platform"`
	IsActive           bool   `json:"is_active"`
}

type WebhookIntegrationRepositoryInterface interface {
	// FindActiveByWebhookID retorna (nil, nil) se o id não existe ou está inativo.
	FindActiveByWebhookID(ctx context.Context, permanentWebhookID string) (*WebhookIntegration, error)
}
