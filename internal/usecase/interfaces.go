package usecase

import (
	"context"
	"encoding/json"

	"github.com/xavierca1/launch-webhooks/internal/infra/queue"
)

// CaptureLeadInput é o envelope tipado do payload de captura. Campos
// conhecidos viram campos nomeados; o restante do JSON cai em Extra e é
// repassado opaco para o metadata do lead.
type CaptureLeadInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`

	UTMSource   string `json:"utm_source"`
	UTMMedium   string `json:"utm_medium"`
	UTMCampaign string `json:"utm_campaign"`
	UTMContent  string `json:"utm_content"`
	UTMTerm     string `json:"utm_term"`

	Extra map[string]any `json:"-"`
}

var captureKnownKeys = []string{
	"name", "email", "phone",
	"utm_source", "utm_medium", "utm_campaign", "utm_content", "utm_term",
}

func (in *CaptureLeadInput) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	fields := map[string]*string{
		"name":         &in.Name,
		"email":        &in.Email,
		"phone":        &in.Phone,
		"utm_source":   &in.UTMSource,
		"utm_medium":   &in.UTMMedium,
		"utm_campaign": &in.UTMCampaign,
		"utm_content":  &in.UTMContent,
		"utm_term":     &in.UTMTerm,
	}
	// Captura é leniente: valor de tipo errado numa chave conhecida vira
	// campo vazio, nunca rejeita o POST inteiro.
	for _, key := range captureKnownKeys {
		if v, ok := raw[key]; ok {
			_ = json.Unmarshal(v, fields[key])
			delete(raw, key)
		}
	}

	in.Extra = make(map[string]any, len(raw))
	for key, v := range raw {
		var value any
		_ = json.Unmarshal(v, &value)
		in.Extra[key] = value
	}
	return nil
}

// RecordSaleInput é o payload de venda das plataformas de pagamento.
// Amount/AmountCents zerados contam como ausentes.
type RecordSaleInput struct {
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Product       string  `json:"product"`
	Amount        float64 `json:"amount"`
	AmountCents   int64   `json:"amount_cents"`
	Status        string  `json:"status"`
	PaymentMethod string  `json:"payment_method"`
	TransactionID string  `json:"transaction_id"`
}

type RecordSaleOutput struct {
	SaleID   string
	LeadID   string
	Status   string
	Platform string // normalizada (lowercase), pronta para labels de métrica
}

// RequestContext carrega o contexto HTTP que entra no metadata do lead.
type RequestContext struct {
	IP        string
	UserAgent string
	Referer   string
}

type SaleEventProducerInterface interface {
	PublishSaleEvent(ctx context.Context, payload queue.SaleEventPayload) error
}
