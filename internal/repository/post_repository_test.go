package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/momentumhq/contentpilot/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postRows(posts ...*models.Post) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "consultant_id", "autopilot_batch_id", "platform", "title", "hook", "full_copy",
		"media_type", "copy_type", "structured_content", "content_theme", "scheduled_at",
		"status", "review_status", "char_limit_retries", "image_generation_status", "image_url",
		"image_error", "publer_post_id", "publer_status", "publer_error", "created_at", "updated_at",
	})
	for _, p := range posts {
		rows.AddRow(p.ID, p.ConsultantID, p.BatchID, p.Platform, p.Title, p.Hook, p.FullCopy,
			p.MediaType, p.CopyType, []byte(p.StructuredContent), p.ContentTheme, p.ScheduledAt,
			p.Status, p.ReviewStatus, p.CharLimitRetries, p.ImageGenStatus, p.ImageURL,
			p.ImageError, p.PublerPostID, p.PublerStatus, p.PublerError, p.CreatedAt, p.UpdatedAt)
	}
	return rows
}

func TestPostRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	post := &models.Post{
		ConsultantID:   1,
		Platform:       models.PlatformInstagram,
		Title:          "title",
		FullCopy:       "copy",
		ContentTheme:   "educativo",
		ScheduledAt:    time.Date(2025, 3, 3, 11, 0, 0, 0, time.UTC),
		Status:         models.PostStatusScheduled,
		ImageGenStatus: models.ImageGenSkipped,
	}

	mock.ExpectQuery("INSERT INTO posts").
		WithArgs(post.ConsultantID, post.BatchID, post.Platform, post.Title, post.Hook, post.FullCopy,
			post.MediaType, post.CopyType, []byte(nil), post.ContentTheme, post.ScheduledAt,
			post.Status, post.ReviewStatus, post.CharLimitRetries, post.ImageGenStatus).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := repo.Create(context.Background(), nil, post)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM posts WHERE id").
		WithArgs(int64(42)).
		WillReturnRows(postRows())

	post, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, post)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryListScheduledBetween(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 2)
	stored := &models.Post{
		ID:           5,
		ConsultantID: 1,
		Platform:     models.PlatformX,
		Status:       models.PostStatusScheduled,
		ScheduledAt:  from.Add(9 * time.Hour),
	}

	mock.ExpectQuery("SELECT (.+) FROM posts").
		WithArgs(int64(1), models.PostStatusScheduled, from, to).
		WillReturnRows(postRows(stored))

	posts, err := repo.ListScheduledBetween(context.Background(), 1, from, to)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(5), posts[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryUpdatePubler(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	mock.ExpectExec("UPDATE posts").
		WithArgs("pub-1", models.PublerStatusScheduled, "", sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.UpdatePubler(context.Background(), 3, "pub-1", models.PublerStatusScheduled, "")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryApproveByBatchID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewPostRepository(db)

	mock.ExpectExec("UPDATE posts").
		WithArgs(models.PostStatusScheduled, sqlmock.AnyArg(), int64(9), models.PostStatusDraft).
		WillReturnResult(sqlmock.NewResult(0, 4))

	err = repo.ApproveByBatchID(context.Background(), 9)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
