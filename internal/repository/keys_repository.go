package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/momentumhq/contentpilot/internal/models"
)

type ApiKeyRepository interface {
	Create(ctx context.Context, key *models.ApiKey) (int64, error)
	GetByConsultantID(ctx context.Context, consultantID int64) ([]*models.ApiKey, error)
	GetByKey(ctx context.Context, apiKey string) (*int64, bool, error)
	CheckByConsultantID(ctx context.Context, keyID, consultantID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type apiKeyRepository struct {
	db *sql.DB
}

func NewApiKeyRepository(db *sql.DB) ApiKeyRepository {
	return &apiKeyRepository{db: db}
}

func (r *apiKeyRepository) Create(ctx context.Context, key *models.ApiKey) (int64, error) {
	query := `
		INSERT INTO api_keys (consultant_id, api_key)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, key.ConsultantID, key.ApiKey).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *apiKeyRepository) GetByConsultantID(ctx context.Context, consultantID int64) ([]*models.ApiKey, error) {
	query := `SELECT id, consultant_id, api_key, created_at FROM api_keys WHERE consultant_id = $1`
	rows, err := r.db.QueryContext(ctx, query, consultantID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var keys []*models.ApiKey
	for rows.Next() {
		var k models.ApiKey
		err := rows.Scan(&k.ID, &k.ConsultantID, &k.ApiKey, &k.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		keys = append(keys, &k)
	}
	return keys, nil
}

func (r *apiKeyRepository) GetByKey(ctx context.Context, apiKey string) (*int64, bool, error) {
	query := `SELECT consultant_id FROM api_keys WHERE api_key = $1`

	var consultantID int64
	err := r.db.QueryRowContext(ctx, query, apiKey).Scan(&consultantID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &consultantID, true, nil
}

func (r *apiKeyRepository) CheckByConsultantID(ctx context.Context, keyID, consultantID int64) (bool, error) {
	query := "SELECT 1 FROM api_keys WHERE id = $1 AND consultant_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, keyID, consultantID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *apiKeyRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM api_keys WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
