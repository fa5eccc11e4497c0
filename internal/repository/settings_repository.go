package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/momentumhq/contentpilot/internal/models"
)

type PostingScheduleRepository interface {
	GetByConsultantAndPlatform(ctx context.Context, consultantID int64, platform string) (*models.PostingSchedule, bool, error)
	ListByConsultantID(ctx context.Context, consultantID int64) ([]*models.PostingSchedule, error)
	Upsert(ctx context.Context, schedule *models.PostingSchedule) error
}

type postingScheduleRepository struct {
	db *sql.DB
}

func NewPostingScheduleRepository(db *sql.DB) PostingScheduleRepository {
	return &postingScheduleRepository{db: db}
}

func (r *postingScheduleRepository) GetByConsultantAndPlatform(ctx context.Context, consultantID int64, platform string) (*models.PostingSchedule, bool, error) {
	query := `SELECT id, consultant_id, platform, posting_times, image_style, created_at, updated_at
		FROM posting_schedules WHERE consultant_id = $1 AND platform = $2`
	row := r.db.QueryRowContext(ctx, query, consultantID, platform)

	var s models.PostingSchedule
	err := row.Scan(&s.ID, &s.ConsultantID, &s.Platform, &s.PostingTimes, &s.ImageStyle, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &s, true, nil
}

func (r *postingScheduleRepository) ListByConsultantID(ctx context.Context, consultantID int64) ([]*models.PostingSchedule, error) {
	query := `SELECT id, consultant_id, platform, posting_times, image_style, created_at, updated_at
		FROM posting_schedules WHERE consultant_id = $1`
	rows, err := r.db.QueryContext(ctx, query, consultantID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var schedules []*models.PostingSchedule
	for rows.Next() {
		var s models.PostingSchedule
		err := rows.Scan(&s.ID, &s.ConsultantID, &s.Platform, &s.PostingTimes, &s.ImageStyle, &s.CreatedAt, &s.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		schedules = append(schedules, &s)
	}
	return schedules, nil
}

func (r *postingScheduleRepository) Upsert(ctx context.Context, schedule *models.PostingSchedule) error {
	query := `
		INSERT INTO posting_schedules (consultant_id, platform, posting_times, image_style)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (consultant_id, platform)
		DO UPDATE SET posting_times = $3, image_style = $4, updated_at = $5
	`
	_, err := r.db.ExecContext(ctx, query, schedule.ConsultantID, schedule.Platform, schedule.PostingTimes, schedule.ImageStyle, time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
