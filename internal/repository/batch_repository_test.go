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

func TestBatchRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBatchRepository(db)

	mock.ExpectQuery("INSERT INTO autopilot_batches").
		WithArgs(int64(1), models.BatchStatusGenerating).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))

	id, err := repo.Create(context.Background(), &models.AutopilotBatch{
		ConsultantID: 1,
		Status:       models.BatchStatusGenerating,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBatchRepositoryGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBatchRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "consultant_id", "status", "total_posts", "generated_posts", "images_generated",
		"approved_posts", "published_posts", "failed_posts", "last_error", "created_at", "updated_at",
	}).AddRow(3, 1, models.BatchStatusAwaitingReview, 4, 4, 2, 0, 0, 0, "", now, now)

	mock.ExpectQuery("SELECT (.+) FROM autopilot_batches WHERE id").
		WithArgs(int64(3)).
		WillReturnRows(rows)

	batch, err := repo.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, batch)
	assert.Equal(t, models.BatchStatusAwaitingReview, batch.Status)
	assert.Equal(t, 4, batch.GeneratedPosts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBatchRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBatchRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM autopilot_batches WHERE id").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	batch, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, batch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBatchRepositoryUpdate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewBatchRepository(db)

	batch := &models.AutopilotBatch{
		ID:              3,
		Status:          models.BatchStatusCompletedWithErrors,
		TotalPosts:      4,
		GeneratedPosts:  4,
		ImagesGenerated: 2,
		ApprovedPosts:   4,
		PublishedPosts:  3,
		FailedPosts:     1,
		LastError:       "post 2: publer is down",
	}

	mock.ExpectExec("UPDATE autopilot_batches").
		WithArgs(batch.Status, batch.TotalPosts, batch.GeneratedPosts, batch.ImagesGenerated,
			batch.ApprovedPosts, batch.PublishedPosts, batch.FailedPosts, batch.LastError,
			sqlmock.AnyArg(), batch.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Update(context.Background(), batch)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
