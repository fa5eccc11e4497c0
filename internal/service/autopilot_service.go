package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	config "github.com/momentumhq/contentpilot/configs"
	"github.com/momentumhq/contentpilot/internal/models"
	"github.com/momentumhq/contentpilot/internal/repository"
	"github.com/momentumhq/contentpilot/internal/transfer"
	"github.com/momentumhq/contentpilot/pkg/utils"
)

// defaultContentThemes rotate across slots when the run doesn't pick any.
var defaultContentThemes = []string{"educativo", "promozionale", "storytelling", "behind-the-scenes"}

// ProgressSink receives progress events during a run. Emit errors are
// discarded: a dead listener must not affect the run.
type ProgressSink interface {
	Emit(p transfer.GenerationProgress) error
}

type AutopilotService interface {
	Run(ctx context.Context, consultantID int64, run *transfer.AutopilotRun, sink ProgressSink) *transfer.AutopilotResult
	GetBatch(ctx context.Context, consultantID, batchID int64) (*models.AutopilotBatch, []*models.Post, error)
	ListBatches(ctx context.Context, consultantID int64) ([]*models.AutopilotBatch, error)
	ApproveBatch(ctx context.Context, consultantID, batchID int64) (*models.AutopilotBatch, error)
}

type autopilotService struct {
	cfg         config.Config
	planner     PlannerService
	content     ContentService
	images      ImageService
	publer      PublerService
	posts       repository.PostRepository
	batches     repository.BatchRepository
	consultants repository.ConsultantRepository
	accounts    repository.SocialAccountRepository
	schedules   repository.PostingScheduleRepository
	subs        repository.SubscriptionRepository
	history     repository.PublishHistoryRepository
}

func NewAutopilotService(
	cfg config.Config,
	planner PlannerService,
	content ContentService,
	images ImageService,
	publer PublerService,
	posts repository.PostRepository,
	batches repository.BatchRepository,
	consultants repository.ConsultantRepository,
	accounts repository.SocialAccountRepository,
	schedules repository.PostingScheduleRepository,
	subs repository.SubscriptionRepository,
	history repository.PublishHistoryRepository) AutopilotService {
	return &autopilotService{
		cfg:         cfg,
		planner:     planner,
		content:     content,
		images:      images,
		publer:      publer,
		posts:       posts,
		batches:     batches,
		consultants: consultants,
		accounts:    accounts,
		schedules:   schedules,
		subs:        subs,
		history:     history,
	}
}

// runState carries what the fatal path needs to close out a half-done run.
type runState struct {
	batchID   int64
	total     int
	processed int
	generated int
	errors    []string
}

// createdPost is one generated post queued for the publish step.
type createdPost struct {
	id        int64
	accountID int64
	platform  string
	fullCopy  string
	schedAt   time.Time
	image     *GeneratedImage
}

// Run executes one autopilot run end to end: plan slots, generate content
// for each, then hand off to Publer when auto-publish is on. Per-slot
// failures are recorded and the run continues; only input validation,
// context cancellation and post-insert failures abort it. The returned
// result is never nil, and Success is false only when the run aborted.
func (s *autopilotService) Run(ctx context.Context, consultantID int64, run *transfer.AutopilotRun, sink ProgressSink) *transfer.AutopilotResult {
	state := &runState{}

	err := s.execute(ctx, consultantID, run, sink, state)
	if err != nil {
		slog.Error("autopilot run aborted", "consultant_id", consultantID, "error", err.Error())
		s.failBatch(consultantID, state, err)
		emit(sink, transfer.GenerationProgress{
			Total:     state.total,
			Completed: state.processed,
			Status:    transfer.ProgressError,
			Error:     err.Error(),
		})
		return &transfer.AutopilotResult{
			Success:   false,
			Generated: state.generated,
			Errors:    append(state.errors, err.Error()),
		}
	}

	emit(sink, transfer.GenerationProgress{
		Total:     state.total,
		Completed: state.processed,
		Status:    transfer.ProgressCompleted,
	})
	return &transfer.AutopilotResult{
		Success:   true,
		Generated: state.generated,
		Errors:    state.errors,
	}
}

func (s *autopilotService) execute(ctx context.Context, consultantID int64, run *transfer.AutopilotRun, sink ProgressSink, state *runState) error {
	if run == nil {
		return errors.New("missing run configuration")
	}

	enabled := 0
	for _, plan := range run.Platforms {
		if plan.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return errors.New("no platforms enabled")
	}

	themes := run.ContentTypes
	if len(themes) == 0 {
		themes = defaultContentThemes
	}

	start, err := time.Parse(dateLayout, run.StartDate)
	if err != nil {
		return fmt.Errorf("invalid start date %q: %w", run.StartDate, err)
	}
	end, err := time.Parse(dateLayout, run.EndDate)
	if err != nil {
		return fmt.Errorf("invalid end date %q: %w", run.EndDate, err)
	}

	// Occupancy snapshot. Posts created later in this loop are tracked by
	// the planner result itself, so one read up front is enough.
	existing, err := s.posts.ListScheduledBetween(ctx, consultantID, start, end.AddDate(0, 0, 1))
	if err != nil {
		return fmt.Errorf("loading existing posts: %w", err)
	}

	savedTimes, imageStyles, err := s.loadSchedules(ctx, consultantID)
	if err != nil {
		return fmt.Errorf("loading posting schedules: %w", err)
	}

	plan, err := s.planner.PlanSlots(run, existing, savedTimes)
	if err != nil {
		return err
	}
	state.total = len(plan.Slots)

	for _, skipped := range plan.Skipped {
		state.errors = append(state.errors, fmt.Sprintf("dropped %d post(s) for %s on %s: no free time slots",
			skipped.Dropped, skipped.Platform, skipped.Date.Format(dateLayout)))
	}

	// A batch row exists only for runs that need later orchestration:
	// review approval or image tracking. Plain fire-and-forget runs
	// produce standalone posts.
	if run.ReviewMode || run.AutoGenerateImages {
		batchID, err := s.batches.Create(ctx, &models.AutopilotBatch{
			ConsultantID: consultantID,
			Status:       models.BatchStatusGenerating,
		})
		if err != nil {
			return fmt.Errorf("creating batch: %w", err)
		}
		state.batchID = batchID
	}

	premiumX := s.hasActiveSubscription(ctx, consultantID)

	// Listeners get the slot count up front, before the first (possibly
	// slow) generation call.
	emit(sink, transfer.GenerationProgress{
		Total:  state.total,
		Status: transfer.ProgressRunning,
	})

	var created []createdPost
	imagesGenerated := 0

	for i, slot := range plan.Slots {
		if err := ctx.Err(); err != nil {
			return err
		}

		theme := themes[i%len(themes)]
		charLimit := CharLimitFor(slot.Platform, premiumX)

		acquired, err := s.content.Acquire(ctx, consultantID, slot.Platform, theme, run.Generation, charLimit)
		if err != nil {
			return err
		}

		state.processed++
		if acquired == nil {
			state.errors = append(state.errors, fmt.Sprintf("no content generated for %s on %s %s",
				slot.Platform, slot.Date.Format(dateLayout), slot.Time))
			s.emitSlot(sink, state, slot)
			continue
		}

		post, err := s.buildPost(consultantID, run, slot, theme, acquired, state.batchID)
		if err != nil {
			return err
		}

		postID, err := s.posts.Create(ctx, nil, post)
		if err != nil {
			return fmt.Errorf("saving post: %w", err)
		}
		post.ID = postID
		state.generated++

		item := createdPost{
			id:        postID,
			accountID: slot.AccountID,
			platform:  slot.Platform,
			fullCopy:  acquired.Idea.FullCopy,
			schedAt:   post.ScheduledAt,
		}

		if run.AutoGenerateImages {
			img := s.generateImage(ctx, post, imageStyles[slot.Platform], state)
			if img != nil {
				imagesGenerated++
				item.image = img
			}
		}

		created = append(created, item)
		s.emitSlot(sink, state, slot)
	}

	s.settleBatchAfterGeneration(ctx, run, state, imagesGenerated)

	if run.AutoPublish && !run.ReviewMode && len(created) > 0 {
		s.publishAll(ctx, consultantID, created, state)
	}

	s.settleBatchTerminal(ctx, run, state)

	return nil
}

func (s *autopilotService) buildPost(consultantID int64, run *transfer.AutopilotRun, slot Slot, theme string, acquired *AcquiredContent, batchID int64) (*models.Post, error) {
	clock, err := time.Parse(clockLayout, slot.Time)
	if err != nil {
		return nil, fmt.Errorf("invalid slot time %q: %w", slot.Time, err)
	}
	scheduledAt := time.Date(slot.Date.Year(), slot.Date.Month(), slot.Date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC)

	post := &models.Post{
		ConsultantID:      consultantID,
		Platform:          slot.Platform,
		Title:             acquired.Idea.Title,
		Hook:              acquired.Idea.Hook,
		FullCopy:          acquired.Idea.FullCopy,
		MediaType:         run.Generation.MediaType,
		CopyType:          run.Generation.CopyType,
		StructuredContent: acquired.Idea.StructuredContent,
		ContentTheme:      theme,
		ScheduledAt:       scheduledAt,
		Status:            models.PostStatusScheduled,
		CharLimitRetries:  acquired.RetriesUsed,
		ImageGenStatus:    models.ImageGenSkipped,
	}
	if batchID != 0 {
		post.BatchID = sql.NullInt64{Int64: batchID, Valid: true}
	}
	if run.ReviewMode {
		post.Status = models.PostStatusDraft
		post.ReviewStatus = sql.NullString{String: models.ReviewStatusPending, Valid: true}
	}
	if run.AutoGenerateImages {
		post.ImageGenStatus = models.ImageGenPending
	}
	return post, nil
}

// generateImage runs the image step for one post. Failures are recorded on
// the post and the run keeps going.
func (s *autopilotService) generateImage(ctx context.Context, post *models.Post, style string, state *runState) *GeneratedImage {
	if err := s.posts.UpdateImageGen(ctx, post.ID, models.ImageGenGenerating, "", ""); err != nil {
		state.errors = append(state.errors, fmt.Sprintf("post %d: %s", post.ID, err.Error()))
		return nil
	}

	img, err := s.images.GenerateForPost(ctx, post, style)
	if err != nil {
		slog.Info("image generation failed", "post_id", post.ID, "error", err.Error())
		if uerr := s.posts.UpdateImageGen(ctx, post.ID, models.ImageGenFailed, "", err.Error()); uerr != nil {
			slog.Info(uerr.Error())
		}
		state.errors = append(state.errors, fmt.Sprintf("image for post %d: %s", post.ID, err.Error()))
		return nil
	}

	if err := s.posts.UpdateImageGen(ctx, post.ID, models.ImageGenCompleted, img.URL, ""); err != nil {
		slog.Info(err.Error())
	}
	return img
}

// publishAll hands every created post to Publer sequentially. Publer owns
// the actual delayed delivery; here we only schedule.
func (s *autopilotService) publishAll(ctx context.Context, consultantID int64, created []createdPost, state *runState) {
	apiKey, err := s.publerKey(ctx, consultantID)
	if err != nil {
		state.errors = append(state.errors, err.Error())
		return
	}

	accountCache := make(map[int64]*models.SocialAccount)

	for _, item := range created {
		var mediaIDs []string

		if item.image != nil {
			mediaID, err := s.publer.UploadMedia(ctx, apiKey, item.image.Bytes,
				fmt.Sprintf("post-%d", item.id), item.image.MIMEType)
			if err != nil {
				slog.Info("media upload failed", "post_id", item.id, "error", err.Error())
				state.errors = append(state.errors, fmt.Sprintf("post %d media: %s", item.id, err.Error()))
			} else {
				mediaIDs = append(mediaIDs, mediaID)
			}
		}

		// Instagram refuses text-only posts.
		if item.platform == models.PlatformInstagram && len(mediaIDs) == 0 {
			mediaID, err := s.publer.UploadPlaceholderImage(ctx, apiKey)
			if err != nil {
				s.recordPublishFailure(ctx, consultantID, item,
					fmt.Errorf("placeholder image: %w", err), state)
				continue
			}
			mediaIDs = append(mediaIDs, mediaID)
		}

		account, ok := accountCache[item.accountID]
		if !ok {
			account, err = s.accounts.GetByID(ctx, item.accountID)
			if err != nil {
				s.recordPublishFailure(ctx, consultantID, item, err, state)
				continue
			}
			if account == nil {
				s.recordPublishFailure(ctx, consultantID, item,
					fmt.Errorf("social account %d not found", item.accountID), state)
				continue
			}
			accountCache[item.accountID] = account
		}

		resp, err := s.publer.SchedulePost(ctx, apiKey, &transfer.PublerScheduleRequest{
			Posts: []transfer.PublerPostPayload{{
				Text:        item.fullCopy,
				Accounts:    []string{account.PublerAccountID},
				ScheduledAt: item.schedAt.Format(time.RFC3339),
				Media:       mediaIDs,
			}},
		})
		if err != nil {
			s.recordPublishFailure(ctx, consultantID, item, err, state)
			continue
		}

		publerPostID := resp.JobID
		if len(resp.PostIDs) > 0 {
			publerPostID = resp.PostIDs[0]
		}
		if err := s.posts.UpdatePubler(ctx, item.id, publerPostID, models.PublerStatusScheduled, ""); err != nil {
			slog.Info(err.Error())
		}
		if _, err := s.history.Create(ctx, &models.PublishHistory{
			ConsultantID: consultantID,
			PostID:       item.id,
			AccountID:    item.accountID,
		}); err != nil {
			slog.Info(err.Error())
		}
	}
}

func (s *autopilotService) recordPublishFailure(ctx context.Context, consultantID int64, item createdPost, cause error, state *runState) {
	slog.Info("publish failed", "post_id", item.id, "error", cause.Error())
	state.errors = append(state.errors, fmt.Sprintf("post %d: %s", item.id, cause.Error()))

	if err := s.posts.UpdatePubler(ctx, item.id, "", models.PublerStatusFailed, cause.Error()); err != nil {
		slog.Info(err.Error())
	}
	if _, err := s.history.Create(ctx, &models.PublishHistory{
		ConsultantID: consultantID,
		PostID:       item.id,
		AccountID:    item.accountID,
		ErrorMessage: cause.Error(),
	}); err != nil {
		slog.Info(err.Error())
	}
}

func (s *autopilotService) publerKey(ctx context.Context, consultantID int64) (string, error) {
	consultant, exists, err := s.consultants.GetByID(ctx, consultantID)
	if err != nil {
		return "", fmt.Errorf("loading consultant: %w", err)
	}
	if !exists || consultant.PublerAPIKey == "" {
		return "", errors.New("publer api key is not configured")
	}
	key, err := utils.Decrypt(consultant.PublerAPIKey, []byte(s.cfg.SecretKey))
	if err != nil {
		return "", fmt.Errorf("decrypting publer api key: %w", err)
	}
	return key, nil
}

// settleBatchAfterGeneration moves the batch out of generating:
// review runs wait for approval, auto-publish runs enter publishing,
// everything else is approved outright.
func (s *autopilotService) settleBatchAfterGeneration(ctx context.Context, run *transfer.AutopilotRun, state *runState, imagesGenerated int) {
	if state.batchID == 0 {
		return
	}

	batch, err := s.batches.GetByID(ctx, state.batchID)
	if err != nil || batch == nil {
		state.errors = append(state.errors, fmt.Sprintf("batch %d: could not reload for update", state.batchID))
		return
	}

	batch.TotalPosts = state.generated
	batch.GeneratedPosts = state.generated
	batch.ImagesGenerated = imagesGenerated

	switch {
	case run.ReviewMode:
		batch.Status = models.BatchStatusAwaitingReview
		batch.ApprovedPosts = 0
	case run.AutoPublish:
		batch.Status = models.BatchStatusPublishing
		batch.ApprovedPosts = state.generated
	default:
		batch.Status = models.BatchStatusApproved
		batch.ApprovedPosts = state.generated
	}
	if len(state.errors) > 0 {
		batch.LastError = strings.Join(state.errors, "; ")
	}

	if err := s.batches.Update(ctx, batch); err != nil {
		state.errors = append(state.errors, fmt.Sprintf("batch %d: %s", state.batchID, err.Error()))
	}
}

// settleBatchTerminal closes a publishing batch as completed or
// completed_with_errors. Review batches rest at awaiting_review and
// plain batches at approved, so those are left alone.
func (s *autopilotService) settleBatchTerminal(ctx context.Context, run *transfer.AutopilotRun, state *runState) {
	if state.batchID == 0 || run.ReviewMode || !run.AutoPublish {
		return
	}

	batch, err := s.batches.GetByID(ctx, state.batchID)
	if err != nil || batch == nil {
		return
	}

	published, failed := s.countPublished(ctx, state.batchID)
	batch.PublishedPosts = published
	batch.FailedPosts = failed
	if len(state.errors) == 0 {
		batch.Status = models.BatchStatusCompleted
	} else {
		batch.Status = models.BatchStatusCompletedWithErrors
		batch.LastError = strings.Join(state.errors, "; ")
	}

	if err := s.batches.Update(ctx, batch); err != nil {
		slog.Info(err.Error())
	}
}

func (s *autopilotService) countPublished(ctx context.Context, batchID int64) (published, failed int) {
	posts, err := s.posts.ListByBatchID(ctx, batchID)
	if err != nil {
		slog.Info(err.Error())
		return 0, 0
	}
	for _, p := range posts {
		switch p.PublerStatus {
		case models.PublerStatusScheduled:
			published++
		case models.PublerStatusFailed:
			failed++
		}
	}
	return published, failed
}

// failBatch marks a half-done batch failed after a fatal error. A fresh
// context is used because the run's context may already be cancelled.
func (s *autopilotService) failBatch(consultantID int64, state *runState, cause error) {
	if state.batchID == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	batch, err := s.batches.GetByID(ctx, state.batchID)
	if err != nil || batch == nil {
		slog.Error("could not load batch to mark failed", "batch_id", state.batchID, "consultant_id", consultantID)
		return
	}

	batch.Status = models.BatchStatusFailed
	batch.TotalPosts = state.total
	batch.GeneratedPosts = state.generated
	batch.LastError = cause.Error()
	if state.generated > 0 {
		batch.FailedPosts = 1
	}

	if err := s.batches.Update(ctx, batch); err != nil {
		slog.Error(err.Error())
	}
}

func (s *autopilotService) hasActiveSubscription(ctx context.Context, consultantID int64) bool {
	sub, exists, err := s.subs.GetByConsultantID(ctx, consultantID)
	if err != nil {
		slog.Info(err.Error())
		return false
	}
	return exists && sub.Status == models.SubscriptionStatusActive
}

// loadSchedules flattens the consultant's saved posting schedules into
// per-platform time lists and image styles.
func (s *autopilotService) loadSchedules(ctx context.Context, consultantID int64) (map[string][]string, map[string]string, error) {
	rows, err := s.schedules.ListByConsultantID(ctx, consultantID)
	if err != nil {
		return nil, nil, err
	}

	times := make(map[string][]string, len(rows))
	styles := make(map[string]string, len(rows))
	for _, row := range rows {
		if row.PostingTimes != "" {
			parts := strings.Split(row.PostingTimes, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			times[row.Platform] = parts
		}
		styles[row.Platform] = row.ImageStyle
	}
	return times, styles, nil
}

func (s *autopilotService) emitSlot(sink ProgressSink, state *runState, slot Slot) {
	emit(sink, transfer.GenerationProgress{
		Total:           state.total,
		Completed:       state.processed,
		CurrentDate:     slot.Date.Format(dateLayout),
		CurrentPlatform: slot.Platform,
		Status:          transfer.ProgressRunning,
	})
}

func emit(sink ProgressSink, p transfer.GenerationProgress) {
	if sink == nil {
		return
	}
	if err := sink.Emit(p); err != nil {
		slog.Info("progress sink rejected event", "error", err.Error())
	}
}

func (s *autopilotService) GetBatch(ctx context.Context, consultantID, batchID int64) (*models.AutopilotBatch, []*models.Post, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}
	if batch == nil || batch.ConsultantID != consultantID {
		return nil, nil, nil
	}

	posts, err := s.posts.ListByBatchID(ctx, batchID)
	if err != nil {
		return nil, nil, err
	}
	return batch, posts, nil
}

func (s *autopilotService) ListBatches(ctx context.Context, consultantID int64) ([]*models.AutopilotBatch, error) {
	return s.batches.ListByConsultantID(ctx, consultantID)
}

// ApproveBatch releases an awaiting_review batch: its draft posts become
// scheduled and the batch moves to approved.
func (s *autopilotService) ApproveBatch(ctx context.Context, consultantID, batchID int64) (*models.AutopilotBatch, error) {
	batch, err := s.batches.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil || batch.ConsultantID != consultantID {
		return nil, errors.New("batch not found")
	}
	if batch.Status != models.BatchStatusAwaitingReview {
		return nil, fmt.Errorf("batch is %s, not awaiting review", batch.Status)
	}

	if err := s.posts.ApproveByBatchID(ctx, batchID); err != nil {
		return nil, err
	}

	batch.Status = models.BatchStatusApproved
	batch.ApprovedPosts = batch.GeneratedPosts
	if err := s.batches.Update(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}
