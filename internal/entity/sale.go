package entity

import (
	"context"
	"time"
)

// Status canônico de venda. Todo vocabulário de plataforma converge aqui.
const (
	SaleStatusWaitingPayment    = "waiting_payment"
	SaleStatusPaid              = "paid"
	SaleStatusRefunded          = "refunded"
	SaleStatusAbandonedCheckout = "abandoned_checkout"
)

type Sale struct {
	ID            string    `json:"id"`
	LeadID        string    `json:"lead_id,omitempty"`
	LaunchID      string    `json:"launch_id"`
	ProductName   string    `json:"product_name"`
	AmountCents   int64     `json:"amount_cents"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	Platform      string    `json:"platform"`
	TransactionID string    `json:"transaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type SaleRepositoryInterface interface {
	// Upsert deduplica por transaction_id quando presente; sem transaction_id
	// cada chamada cria uma linha nova. Preenche sale.ID com o id persistido.
	Upsert(ctx context.Context, sale *Sale) error
}
