package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/momentumhq/contentpilot/internal/models"
	"github.com/momentumhq/contentpilot/internal/repository"
)

type ConsultantService interface {
	GetInfo(ctx context.Context, id int64) (*models.Consultant, error)
	Remove(ctx context.Context, id int64) error
}

type consultantService struct {
	c repository.ConsultantRepository
}

func NewConsultantService(c repository.ConsultantRepository) ConsultantService {
	return &consultantService{
		c: c,
	}
}

func (s *consultantService) GetInfo(ctx context.Context, id int64) (*models.Consultant, error) {
	consultant, isExist, err := s.c.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("Error getting consultant info")
	}

	if !isExist {
		err = errors.New("Consultant not found")
		slog.Info(err.Error())
		return nil, err
	}

	return consultant, nil
}

func (s *consultantService) Remove(ctx context.Context, id int64) error {
	err := s.c.Remove(ctx, id)
	if err != nil {
		return err
	}
	return nil
}
