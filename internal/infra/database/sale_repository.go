package database

import (
	"context"
	"database/sql"

	"github.com/xavierca1/launch-webhooks/internal/entity"
)

type SaleRepository struct {
	DB *sql.DB
}

func NewSaleRepository(db *sql.DB) *SaleRepository {
	return &SaleRepository{DB: db}
}

// Upsert deduplica pelo transaction_id quando a plataforma manda um. O índice
// único é parcial (WHERE transaction_id IS NOT NULL), então o conflito só
// dispara para replays reais; sem transaction_id cada webhook vira linha nova
// mesmo: não há chave para deduplicar.
func (r *SaleRepository) Upsert(ctx context.Context, sale *entity.Sale) error {
	if sale.TransactionID == "" {
		return r.insert(ctx, sale)
	}

	query := `
		INSERT INTO sales (id, lead_id, launch_id, product_name, amount_cents, status, payment_method, platform, transaction_id, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, NULLIF($7, ''), $8, $9, NOW(), NOW())
		ON CONFLICT (transaction_id) WHERE transaction_id IS NOT NULL
		DO UPDATE SET
			lead_id = COALESCE(EXCLUDED.lead_id, sales.lead_id),
			product_name = EXCLUDED.product_name,
			amount_cents = EXCLUDED.amount_cents,
			status = EXCLUDED.status,
			payment_method = EXCLUDED.payment_method,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(
		ctx,
		query,
		sale.ID,
		sale.LeadID,
		sale.LaunchID,
		sale.ProductName,
		sale.AmountCents,
		sale.Status,
		sale.PaymentMethod,
		sale.Platform,
		sale.TransactionID,
	).Scan(
		&sale.ID,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	)
}

func (r *SaleRepository) insert(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, lead_id, launch_id, product_name, amount_cents, status, payment_method, platform, transaction_id, created_at, updated_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, NULLIF($7, ''), $8, NULL, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(
		ctx,
		query,
		sale.ID,
		sale.LeadID,
		sale.LaunchID,
		sale.ProductName,
		sale.AmountCents,
		sale.Status,
		sale.PaymentMethod,
		sale.Platform,
	).Scan(
		&sale.ID,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	)
}
