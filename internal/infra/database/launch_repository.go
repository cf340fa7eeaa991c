package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/xavierca1/launch-webhooks/internal/entity"
)

type LaunchRepository struct {
	DB *sql.DB
}

func NewLaunchRepository(db *sql.DB) *LaunchRepository {
	return &LaunchRepository{DB: db}
}

func (r *LaunchRepository) FindByCode(ctx context.Context, launchCode string) (*entity.Launch, error) {
	query := `SELECT id, launch_code, workspace_id FROM launches WHERE launch_code = $1`
	return r.scanOne(ctx, query, launchCode)
}

func (r *LaunchRepository) FindByID(ctx context.Context, id string) (*entity.Launch, error) {
	query := `SELECT id, launch_code, workspace_id FROM launches WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *LaunchRepository) scanOne(ctx context.Context, query string, arg string) (*entity.Launch, error) {
	var launch entity.Launch
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&launch.ID,
		&launch.LaunchCode,
		&launch.WorkspaceID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &launch, nil
}
