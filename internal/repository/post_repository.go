package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/momentumhq/contentpilot/internal/models"
)

type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error)
	GetByConsultantID(ctx context.Context, consultantID int64) ([]*models.Post, error)
	ListByBatchID(ctx context.Context, batchID int64) ([]*models.Post, error)
	ListScheduledBetween(ctx context.Context, consultantID int64, from, to time.Time) ([]*models.Post, error)
	ListByPublerStatus(ctx context.Context, publerStatus string) ([]*models.Post, error)
	UpdateStatus(ctx context.Context, status string, postID int64) error
	UpdateImageGen(ctx context.Context, postID int64, status, imageURL, imageError string) error
	UpdatePubler(ctx context.Context, postID int64, publerPostID, publerStatus, publerError string) error
	ApproveByBatchID(ctx context.Context, batchID int64) error
	CheckByConsultantID(ctx context.Context, postID, consultantID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, consultant_id, autopilot_batch_id, platform, title, hook, full_copy, media_type, copy_type,
	structured_content, content_theme, scheduled_at, status, review_status, char_limit_retries,
	image_generation_status, image_url, image_error, publer_post_id, publer_status, publer_error,
	created_at, updated_at`

func scanPost(row interface{ Scan(dest ...any) error }) (*models.Post, error) {
	var post models.Post
	err := row.Scan(
		&post.ID, &post.ConsultantID, &post.BatchID, &post.Platform, &post.Title, &post.Hook, &post.FullCopy,
		&post.MediaType, &post.CopyType, &post.StructuredContent, &post.ContentTheme, &post.ScheduledAt,
		&post.Status, &post.ReviewStatus, &post.CharLimitRetries, &post.ImageGenStatus, &post.ImageURL,
		&post.ImageError, &post.PublerPostID, &post.PublerStatus, &post.PublerError,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (consultant_id, autopilot_batch_id, platform, title, hook, full_copy, media_type, copy_type,
			structured_content, content_theme, scheduled_at, status, review_status, char_limit_retries,
			image_generation_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	args := []any{
		post.ConsultantID, post.BatchID, post.Platform, post.Title, post.Hook, post.FullCopy,
		post.MediaType, post.CopyType, post.StructuredContent, post.ContentTheme, post.ScheduledAt,
		post.Status, post.ReviewStatus, post.CharLimitRetries, post.ImageGenStatus,
	}

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, args...).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) GetByConsultantID(ctx context.Context, consultantID int64) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE consultant_id = $1 ORDER BY scheduled_at`
	return r.list(ctx, query, consultantID)
}

func (r *postRepository) ListByBatchID(ctx context.Context, batchID int64) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE autopilot_batch_id = $1 ORDER BY scheduled_at`
	return r.list(ctx, query, batchID)
}

// ListScheduledBetween returns only posts in status scheduled; drafts,
// published and cancelled posts do not occupy time slots.
func (r *postRepository) ListScheduledBetween(ctx context.Context, consultantID int64, from, to time.Time) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts
		WHERE consultant_id = $1 AND status = $2 AND scheduled_at >= $3 AND scheduled_at < $4
		ORDER BY scheduled_at`
	return r.list(ctx, query, consultantID, models.PostStatusScheduled, from, to)
}

func (r *postRepository) ListByPublerStatus(ctx context.Context, publerStatus string) ([]*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE publer_status = $1 ORDER BY scheduled_at`
	return r.list(ctx, query, publerStatus)
}

func (r *postRepository) list(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, status string, postID int64) error {
	query := `
		UPDATE posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdateImageGen(ctx context.Context, postID int64, status, imageURL, imageError string) error {
	query := `
		UPDATE posts
		SET image_generation_status = $1,
			image_url = $2,
			image_error = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, status, imageURL, imageError, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) UpdatePubler(ctx context.Context, postID int64, publerPostID, publerStatus, publerError string) error {
	query := `
		UPDATE posts
		SET publer_post_id = $1,
			publer_status = $2,
			publer_error = $3,
			updated_at = $4
		WHERE id = $5
	`
	_, err := r.db.ExecContext(ctx, query, publerPostID, publerStatus, publerError, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// ApproveByBatchID flips a reviewed batch's drafts to scheduled and clears
// their review flag.
func (r *postRepository) ApproveByBatchID(ctx context.Context, batchID int64) error {
	query := `
		UPDATE posts
		SET status = $1,
			review_status = NULL,
			updated_at = $2
		WHERE autopilot_batch_id = $3 AND status = $4
	`
	_, err := r.db.ExecContext(ctx, query, models.PostStatusScheduled, time.Now(), batchID, models.PostStatusDraft)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) CheckByConsultantID(ctx context.Context, postID, consultantID int64) (bool, error) {
	query := "SELECT 1 FROM posts WHERE id = $1 AND consultant_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, postID, consultantID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
