package entity

import (
	"context"
	"time"
)

type Lead struct {
	ID        string         `json:"id"`
	LaunchID  string         `json:"launch_id"`
	Email     string         `json:"email"`
	Name      string         `json:"name,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	Tags      []string       `json:"tags"`
	Metadata  map[string]any `json:"metadata"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type LeadRepositoryInterface interface {
	// Upsert grava pela chave natural (launch_id, email) e sobrescreve
	// name/phone/tags/metadata. Preenche lead.ID com o id persistido.
	Upsert(ctx context.Context, lead *Lead) error

	// FindOrCreate garante uma linha para (launch_id, email) sem tocar nos
	// campos de uma linha existente. Retorna o id persistido.
	FindOrCreate(ctx context.Context, lead *Lead) (string, error)
}
