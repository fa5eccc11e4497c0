package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/momentumhq/contentpilot/internal/models"
)

type SocialAccountRepository interface {
	Create(ctx context.Context, tx *sql.Tx, sa *models.SocialAccount) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.SocialAccount, error)
	ListByConsultantID(ctx context.Context, consultantID int64) ([]*models.SocialAccount, error)
	CheckByConsultantID(ctx context.Context, accountID, consultantID int64) (bool, error)
	Remove(ctx context.Context, id int64) error
}

type socialAccountRepository struct {
	db *sql.DB
}

func NewSocialAccountRepository(db *sql.DB) SocialAccountRepository {
	return &socialAccountRepository{db: db}
}

func (r *socialAccountRepository) Create(ctx context.Context, tx *sql.Tx, sa *models.SocialAccount) (int64, error) {
	query := `
		INSERT INTO social_accounts (consultant_id, platform, publer_account_id, account_name, account_username, account_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, sa.ConsultantID, sa.Platform, sa.PublerAccountID, sa.AccountName, sa.AccountUsername, sa.AccountStatus).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, sa.ConsultantID, sa.Platform, sa.PublerAccountID, sa.AccountName, sa.AccountUsername, sa.AccountStatus).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *socialAccountRepository) GetByID(ctx context.Context, id int64) (*models.SocialAccount, error) {
	query := `SELECT id, consultant_id, platform, publer_account_id, account_name, account_username, account_status, created_at, updated_at
		FROM social_accounts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var sa models.SocialAccount
	err := row.Scan(&sa.ID, &sa.ConsultantID, &sa.Platform, &sa.PublerAccountID, &sa.AccountName, &sa.AccountUsername, &sa.AccountStatus, &sa.CreatedAt, &sa.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &sa, nil
}

func (r *socialAccountRepository) ListByConsultantID(ctx context.Context, consultantID int64) ([]*models.SocialAccount, error) {
	query := `SELECT id, consultant_id, platform, publer_account_id, account_name, account_username, account_status, created_at, updated_at
		FROM social_accounts WHERE consultant_id = $1`
	rows, err := r.db.QueryContext(ctx, query, consultantID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var accounts []*models.SocialAccount
	for rows.Next() {
		var sa models.SocialAccount
		err := rows.Scan(&sa.ID, &sa.ConsultantID, &sa.Platform, &sa.PublerAccountID, &sa.AccountName, &sa.AccountUsername, &sa.AccountStatus, &sa.CreatedAt, &sa.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		accounts = append(accounts, &sa)
	}
	return accounts, nil
}

func (r *socialAccountRepository) CheckByConsultantID(ctx context.Context, accountID, consultantID int64) (bool, error) {
	query := "SELECT 1 FROM social_accounts WHERE id = $1 AND consultant_id = $2"

	var result int
	err := r.db.QueryRowContext(ctx, query, accountID, consultantID).Scan(&result)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

func (r *socialAccountRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM social_accounts WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
