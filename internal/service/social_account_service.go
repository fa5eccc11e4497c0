package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/momentumhq/contentpilot/internal/models"
	"github.com/momentumhq/contentpilot/internal/repository"
)

// SocialAccountService manages the consultant's connected accounts. An
// account is a reference to a Publer-connected profile; Publer holds the
// actual platform credentials.
type SocialAccountService interface {
	Connect(ctx context.Context, consultantID int64, platform, publerAccountID, name, username string) (int64, error)
	List(ctx context.Context, consultantID int64) ([]*models.SocialAccount, error)
	Remove(ctx context.Context, consultantID, accountID int64) error
}

type socialAccountService struct {
	sa repository.SocialAccountRepository
}

func NewSocialAccountService(sa repository.SocialAccountRepository) SocialAccountService {
	return &socialAccountService{
		sa: sa,
	}
}

func (s *socialAccountService) Connect(ctx context.Context, consultantID int64, platform, publerAccountID, name, username string) (int64, error) {
	if !models.IsKnownPlatform(platform) {
		err := errors.New("unknown platform")
		slog.Info(err.Error())
		return 0, err
	}
	if publerAccountID == "" {
		err := errors.New("publer account id is empty")
		slog.Info(err.Error())
		return 0, err
	}

	account := &models.SocialAccount{
		ConsultantID:    consultantID,
		Platform:        platform,
		PublerAccountID: publerAccountID,
		AccountName:     name,
		AccountUsername: username,
		AccountStatus:   "active",
	}
	return s.sa.Create(ctx, nil, account)
}

func (s *socialAccountService) List(ctx context.Context, consultantID int64) ([]*models.SocialAccount, error) {
	return s.sa.ListByConsultantID(ctx, consultantID)
}

func (s *socialAccountService) Remove(ctx context.Context, consultantID, accountID int64) error {
	isValid, err := s.sa.CheckByConsultantID(ctx, accountID, consultantID)
	if err != nil {
		return err
	}
	if !isValid {
		err = errors.New("Account doesn't exist")
		slog.Info(err.Error())
		return err
	}
	return s.sa.Remove(ctx, accountID)
}
