package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/momentumhq/contentpilot/internal/models"
	"github.com/momentumhq/contentpilot/internal/repository"
	"github.com/momentumhq/contentpilot/pkg/utils"
)

type ApiKeyService interface {
	Create(ctx context.Context, consultantID int64) error
	List(ctx context.Context, consultantID int64) ([]*models.ApiKey, error)
	GetConsultantID(ctx context.Context, apiKey string) (int64, error)
	RemoveAPIKey(ctx context.Context, consultantID, keyID int64) error
}

type apiKeyService struct {
	k repository.ApiKeyRepository
}

func NewApiKeyService(k repository.ApiKeyRepository) ApiKeyService {
	return &apiKeyService{
		k: k,
	}
}

func (s *apiKeyService) Create(ctx context.Context, consultantID int64) error {
	keys, err := s.k.GetByConsultantID(ctx, consultantID)
	if err != nil {
		return err
	}

	if len(keys) > 4 {
		err = errors.New("Only 5 API Keys can be created.")
		slog.Info(err.Error())
		return err
	}

	key, err := utils.GenerateRandomKey(16)
	if err != nil {
		slog.Info(err.Error())
		return fmt.Errorf("Error generating API key")
	}

	apiKey := &models.ApiKey{
		ConsultantID: consultantID,
		ApiKey:       key,
	}

	_, err = s.k.Create(ctx, apiKey)
	if err != nil {
		return fmt.Errorf("Error saving API key")
	}
	return nil
}

func (s *apiKeyService) GetConsultantID(ctx context.Context, apiKey string) (int64, error) {
	consultantID, isExist, err := s.k.GetByKey(ctx, apiKey)
	if err != nil {
		return 0, err
	}

	if !isExist {
		err = errors.New("Key doesn't exist")
		return 0, err
	}

	return *consultantID, nil
}

func (s *apiKeyService) List(ctx context.Context, consultantID int64) ([]*models.ApiKey, error) {
	apiKeys, err := s.k.GetByConsultantID(ctx, consultantID)
	if err != nil {
		return nil, fmt.Errorf("Error getting API keys")
	}
	return apiKeys, nil
}

func (s *apiKeyService) RemoveAPIKey(ctx context.Context, consultantID, keyID int64) error {
	var err error

	if consultantID == 0 {
		err = errors.New("ConsultantID is not valid")
		slog.Info(err.Error())
		return err
	}

	if keyID == 0 {
		err = errors.New("KeyID is not valid")
		slog.Info(err.Error())
		return err
	}

	isValid, err := s.k.CheckByConsultantID(ctx, keyID, consultantID)
	if err != nil {
		return err
	}

	if !isValid {
		err = errors.New("Key doesn't exist")
		slog.Info(err.Error())
		return err
	}

	err = s.k.Remove(ctx, keyID)
	if err != nil {
		return err
	}
	return nil
}
