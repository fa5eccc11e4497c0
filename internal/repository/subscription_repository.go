package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/momentumhq/contentpilot/internal/models"
)

type SubscriptionRepository interface {
	GetByConsultantID(ctx context.Context, consultantID int64) (*models.Subscription, bool, error)
}

type subscriptionRepository struct {
	db *sql.DB
}

func NewSubscriptionRepository(db *sql.DB) SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) GetByConsultantID(ctx context.Context, consultantID int64) (*models.Subscription, bool, error) {
	query := `SELECT id, consultant_id, subscription_id, subscription_end_date, status, created_at, updated_at
		FROM subscriptions WHERE consultant_id = $1`
	row := r.db.QueryRowContext(ctx, query, consultantID)

	var s models.Subscription
	err := row.Scan(&s.ID, &s.ConsultantID, &s.SubscriptionID, &s.SubscriptionEndDate, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}

	return &s, true, nil
}
