package entity

import "context"

// Entidade: Launch (campanha de lançamento)
type Launch struct {
	ID          string `json:"id"`
	LaunchCode  string `json:"launch_code"`
	WorkspaceID string `json:"workspace_id"`
}

// Find* retornam (nil, nil) quando não há linha correspondente.
type LaunchRepositoryInterface interface {
	FindByCode(ctx context.Context, launchCode string) (*Launch, error)
	FindByID(ctx context.Context, id string) (*Launch, error)
}
