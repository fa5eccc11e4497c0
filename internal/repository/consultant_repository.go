package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/momentumhq/contentpilot/internal/models"
)

type ConsultantRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Consultant, bool, error)
	GetByEmail(ctx context.Context, email string) (*models.Consultant, bool, error)
	Create(ctx context.Context, tx *sql.Tx, consultant *models.Consultant) (int64, error)
	UpdatePublerKey(ctx context.Context, id int64, encryptedKey string) error
	Remove(ctx context.Context, id int64) error
}

type consultantRepository struct {
	db *sql.DB
}

func NewConsultantRepository(db *sql.DB) ConsultantRepository {
	return &consultantRepository{db: db}
}

func (r *consultantRepository) GetByID(ctx context.Context, id int64) (*models.Consultant, bool, error) {
	var c models.Consultant
	query := "SELECT id, google_id, email, name, profile_picture, publer_api_key FROM consultants WHERE id = $1"
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.GoogleID, &c.Email, &c.Name, &c.ProfilePicture, &c.PublerAPIKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &c, true, nil
}

func (r *consultantRepository) GetByEmail(ctx context.Context, email string) (*models.Consultant, bool, error) {
	var c models.Consultant
	query := "SELECT id, google_id, email, name, profile_picture, publer_api_key FROM consultants WHERE email = $1"
	err := r.db.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.GoogleID, &c.Email, &c.Name, &c.ProfilePicture, &c.PublerAPIKey)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return &c, true, nil
}

func (r *consultantRepository) Create(ctx context.Context, tx *sql.Tx, consultant *models.Consultant) (int64, error) {
	query := "INSERT INTO consultants (google_id, email, name, profile_picture) VALUES ($1, $2, $3, $4) RETURNING id"

	var err error
	var id int64

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, consultant.GoogleID, consultant.Email, consultant.Name, consultant.ProfilePicture).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, consultant.GoogleID, consultant.Email, consultant.Name, consultant.ProfilePicture).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *consultantRepository) UpdatePublerKey(ctx context.Context, id int64, encryptedKey string) error {
	query := `
		UPDATE consultants
		SET publer_api_key = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, encryptedKey, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *consultantRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM consultants WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)

	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
