package job

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	config "github.com/momentumhq/contentpilot/configs"
	"github.com/momentumhq/contentpilot/internal/models"
	"github.com/momentumhq/contentpilot/internal/repository"
	"github.com/momentumhq/contentpilot/internal/service"
	"github.com/momentumhq/contentpilot/pkg/utils"
)

var errMissingKey = errors.New("publer api key is not configured")

// PublerSyncJob polls Publer for the delivery state of scheduled posts and
// mirrors it onto the local rows. Publer owns the actual delayed delivery.
type PublerSyncJob struct {
	cfg    config.Config
	pr     repository.PostRepository
	cr     repository.ConsultantRepository
	publer service.PublerService
}

func NewPublerSyncJob(
	cfg config.Config,
	pr repository.PostRepository,
	cr repository.ConsultantRepository,
	publer service.PublerService) *PublerSyncJob {
	return &PublerSyncJob{
		cfg:    cfg,
		pr:     pr,
		cr:     cr,
		publer: publer,
	}
}

func (c *PublerSyncJob) SyncStatuses() {
	ctx := context.Background()

	posts, err := c.pr.ListByPublerStatus(ctx, models.PublerStatusScheduled)
	if err != nil {
		slog.Info(err.Error())
		return
	}
	if len(posts) == 0 {
		return
	}

	apiKeys := make(map[int64]string)

	var wg sync.WaitGroup

	concurrencyLimit := 10
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, post := range posts {
		apiKey, ok := apiKeys[post.ConsultantID]
		if !ok {
			apiKey, err = c.publerKey(ctx, post.ConsultantID)
			if err != nil {
				slog.Info("Unable to load Publer key", "consultant_id", post.ConsultantID)
				continue
			}
			apiKeys[post.ConsultantID] = apiKey
		}

		wg.Add(1)
		semaphore <- struct{}{}

		go func(post *models.Post, apiKey string) {
			defer wg.Done()
			defer func() { <-semaphore }()

			status, err := c.publer.PostStatus(ctx, apiKey, post.PublerPostID)
			if err != nil {
				slog.Info("Unable to fetch Publer post status", "post_id", post.ID)
				return
			}

			switch status.Status {
			case "published":
				if err := c.pr.UpdateStatus(ctx, models.PostStatusPublished, post.ID); err != nil {
					slog.Info(err.Error())
				}
			case "failed":
				if err := c.pr.UpdatePubler(ctx, post.ID, post.PublerPostID, models.PublerStatusFailed, "publer reported delivery failure"); err != nil {
					slog.Info(err.Error())
				}
			}
		}(post, apiKey)
	}

	wg.Wait()
}

func (c *PublerSyncJob) publerKey(ctx context.Context, consultantID int64) (string, error) {
	consultant, isExist, err := c.cr.GetByID(ctx, consultantID)
	if err != nil {
		return "", err
	}
	if !isExist || consultant.PublerAPIKey == "" {
		return "", errMissingKey
	}
	return utils.Decrypt(consultant.PublerAPIKey, []byte(c.cfg.SecretKey))
}
