package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	config "github.com/momentumhq/contentpilot/configs"
	"github.com/momentumhq/contentpilot/internal/models"
	"github.com/momentumhq/contentpilot/internal/repository"
	"github.com/momentumhq/contentpilot/pkg/utils"
)

type SettingsService interface {
	ListSchedules(ctx context.Context, consultantID int64) ([]*models.PostingSchedule, error)
	UpdateSchedule(ctx context.Context, consultantID int64, platform, postingTimes, imageStyle string) error
	UpdatePublerKey(ctx context.Context, consultantID int64, apiKey string) error
}

type settingsService struct {
	cfg config.Config
	ps  repository.PostingScheduleRepository
	c   repository.ConsultantRepository
}

func NewSettingsService(cfg config.Config, ps repository.PostingScheduleRepository, c repository.ConsultantRepository) SettingsService {
	return &settingsService{
		cfg: cfg,
		ps:  ps,
		c:   c,
	}
}

func (s *settingsService) ListSchedules(ctx context.Context, consultantID int64) ([]*models.PostingSchedule, error) {
	return s.ps.ListByConsultantID(ctx, consultantID)
}

// UpdateSchedule saves the posting times for one platform. Times are a
// comma-separated list of HH:MM values.
func (s *settingsService) UpdateSchedule(ctx context.Context, consultantID int64, platform, postingTimes, imageStyle string) error {
	if !models.IsKnownPlatform(platform) {
		err := errors.New("unknown platform")
		slog.Info(err.Error())
		return err
	}

	cleaned := make([]string, 0)
	for _, t := range strings.Split(postingTimes, ",") {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, err := time.Parse("15:04", t); err != nil {
			slog.Info(err.Error())
			return err
		}
		cleaned = append(cleaned, t)
	}

	schedule := models.PostingSchedule{
		ConsultantID: consultantID,
		Platform:     platform,
		PostingTimes: strings.Join(cleaned, ","),
		ImageStyle:   imageStyle,
	}
	return s.ps.Upsert(ctx, &schedule)
}

// UpdatePublerKey stores the consultant's Publer API key encrypted.
func (s *settingsService) UpdatePublerKey(ctx context.Context, consultantID int64, apiKey string) error {
	if apiKey == "" {
		err := errors.New("api key is empty")
		slog.Info(err.Error())
		return err
	}

	encrypted, err := utils.Encrypt([]byte(apiKey), []byte(s.cfg.SecretKey))
	if err != nil {
		return err
	}
	return s.c.UpdatePublerKey(ctx, consultantID, encrypted)
}
