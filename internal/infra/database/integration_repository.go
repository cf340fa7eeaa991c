package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/launch-webhooks/internal/entity"
)

type WebhookIntegrationRepository struct {
	DB *sql.DB
}

func NewWebhookIntegrationRepository(db *sql.DB) *WebhookIntegrationRepository {
	return &WebhookIntegrationRepository{DB: db}
}

// FindActiveByWebhookID: integração desligada no painel se comporta como
// inexistente para o sender.
func (r *WebhookIntegrationRepository) FindActiveByWebhookID(ctx context.Context, permanentWebhookID string) (*entity.WebhookIntegration, error) {
	query := `
		SELECT id, launch_id, permanent_webhook_id, platform, is_active
		FROM webhook_integrations
		WHERE permanent_webhook_id = $1 AND is_active = true
	`

	var integration entity.WebhookIntegration
	err := r.DB.QueryRowContext(ctx, query, permanentWebhookID).Scan(
		&integration.ID,
		&integration.LaunchID,
		&integration.PermanentWebhookID,
		&integration.Platform,
		&integration.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &integration, nil
}
