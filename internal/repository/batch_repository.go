package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/momentumhq/contentpilot/internal/models"
)

type BatchRepository interface {
	Create(ctx context.Context, batch *models.AutopilotBatch) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.AutopilotBatch, error)
	ListByConsultantID(ctx context.Context, consultantID int64) ([]*models.AutopilotBatch, error)
	Update(ctx context.Context, batch *models.AutopilotBatch) error
	UpdateStatus(ctx context.Context, status string, batchID int64) error
}

type batchRepository struct {
	db *sql.DB
}

func NewBatchRepository(db *sql.DB) BatchRepository {
	return &batchRepository{db: db}
}

const batchColumns = `id, consultant_id, status, total_posts, generated_posts, images_generated,
	approved_posts, published_posts, failed_posts, last_error, created_at, updated_at`

func (r *batchRepository) Create(ctx context.Context, batch *models.AutopilotBatch) (int64, error) {
	query := `
		INSERT INTO autopilot_batches (consultant_id, status)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, batch.ConsultantID, batch.Status).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *batchRepository) GetByID(ctx context.Context, id int64) (*models.AutopilotBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM autopilot_batches WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var b models.AutopilotBatch
	err := row.Scan(&b.ID, &b.ConsultantID, &b.Status, &b.TotalPosts, &b.GeneratedPosts, &b.ImagesGenerated,
		&b.ApprovedPosts, &b.PublishedPosts, &b.FailedPosts, &b.LastError, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &b, nil
}

func (r *batchRepository) ListByConsultantID(ctx context.Context, consultantID int64) ([]*models.AutopilotBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM autopilot_batches WHERE consultant_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, consultantID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var batches []*models.AutopilotBatch
	for rows.Next() {
		var b models.AutopilotBatch
		err := rows.Scan(&b.ID, &b.ConsultantID, &b.Status, &b.TotalPosts, &b.GeneratedPosts, &b.ImagesGenerated,
			&b.ApprovedPosts, &b.PublishedPosts, &b.FailedPosts, &b.LastError, &b.CreatedAt, &b.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		batches = append(batches, &b)
	}
	return batches, nil
}

func (r *batchRepository) Update(ctx context.Context, batch *models.AutopilotBatch) error {
	query := `
		UPDATE autopilot_batches
		SET status = $1,
			total_posts = $2,
			generated_posts = $3,
			images_generated = $4,
			approved_posts = $5,
			published_posts = $6,
			failed_posts = $7,
			last_error = $8,
			updated_at = $9
		WHERE id = $10
	`
	_, err := r.db.ExecContext(ctx, query, batch.Status, batch.TotalPosts, batch.GeneratedPosts,
		batch.ImagesGenerated, batch.ApprovedPosts, batch.PublishedPosts, batch.FailedPosts,
		batch.LastError, time.Now(), batch.ID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *batchRepository) UpdateStatus(ctx context.Context, status string, batchID int64) error {
	query := `
		UPDATE autopilot_batches
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), batchID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
