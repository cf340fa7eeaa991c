package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/xavierca1/launch-webhooks/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Upsert pela chave natural (launch_id, email). Replay de captura sobrescreve
// name/phone, zera tags e troca o metadata por inteiro, sem deep-merge.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	metadata, err := json.Marshal(lead.Metadata)
	if err != nil {
		return fmt.Errorf("metadata inválido: %w", err)
	}

	query := `
		INSERT INTO leads (id, launch_id, email, name, phone, tags, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (launch_id, email)
		DO UPDATE SET
			name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			tags = EXCLUDED.tags,
			metadata = EXCLUDED.metadata,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	return r.DB.QueryRowContext(
		ctx,
		query,
		lead.ID,
		lead.LaunchID,
		lead.Email,
		nullString(lead.Name),
		nullString(lead.Phone),
		pq.Array(lead.Tags),
		metadata,
	).Scan(
		&lead.ID,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	)
}

// FindOrCreate: cria o placeholder se (launch_id, email) ainda não existe;
// se já existe só renova updated_at e devolve o id. O DO UPDATE no conflito
// garante o RETURNING nos dois caminhos, então duas entregas simultâneas
// convergem na mesma linha.
func (r *LeadRepository) FindOrCreate(ctx context.Context, lead *entity.Lead) (string, error) {
	metadata, err := json.Marshal(lead.Metadata)
	if err != nil {
		return "", fmt.Errorf("metadata inválido: %w", err)
	}

	query := `
		INSERT INTO leads (id, launch_id, email, name, phone, tags, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (launch_id, email)
		DO UPDATE SET updated_at = NOW()
		RETURNING id
	`

	var id string
	err = r.DB.QueryRowContext(
		ctx,
		query,
		lead.ID,
		lead.LaunchID,
		lead.Email,
		nullString(lead.Name),
		nullString(lead.Phone),
		pq.Array(lead.Tags),
		metadata,
	).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
