package service

import (
	"context"
	"log/slog"

	"github.com/momentumhq/contentpilot/internal/transfer"
)

// ContentGenerator produces candidate drafts for one slot. Implemented by
// GeminiService; tests supply fakes.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, consultantID int64, req *transfer.ContentRequest) (*transfer.ContentResult, error)
}

// AcquiredContent is an accepted draft plus how it was accepted.
type AcquiredContent struct {
	Idea        transfer.ContentIdea
	ModelUsed   string
	RetriesUsed int
	Outcome     SlotOutcome
}

type ContentService interface {
	Acquire(ctx context.Context, consultantID int64, platform, theme string, params transfer.GenerationParams, charLimit int) (*AcquiredContent, error)
}

type contentService struct {
	generator ContentGenerator
}

func NewContentService(generator ContentGenerator) ContentService {
	return &contentService{generator: generator}
}

// Acquire asks the generator for a draft up to MaxCharRetries times. A draft
// within the character limit is accepted immediately; an oversized draft on
// the final attempt is accepted anyway so one stubborn slot cannot stall the
// batch. Returns nil (no error) when every attempt came back empty.
func (s *contentService) Acquire(ctx context.Context, consultantID int64, platform, theme string, params transfer.GenerationParams, charLimit int) (*AcquiredContent, error) {
	req := &transfer.ContentRequest{
		Platform: platform,
		Theme:    theme,
		Params:   params,
	}

	for attempt := 1; attempt <= MaxCharRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := s.generator.GenerateContent(ctx, consultantID, req)
		if err != nil {
			slog.Info("content generation attempt failed",
				"platform", platform, "attempt", attempt, "error", err.Error())
			continue
		}
		if res == nil || len(res.Ideas) == 0 {
			slog.Info("content generator returned no ideas", "platform", platform, "attempt", attempt)
			continue
		}

		idea := res.Ideas[0]
		if len(idea.FullCopy) <= charLimit {
			return &AcquiredContent{
				Idea:        idea,
				ModelUsed:   res.ModelUsed,
				RetriesUsed: attempt - 1,
				Outcome:     OutcomeAcceptedClean,
			}, nil
		}

		if attempt == MaxCharRetries {
			slog.Info("accepting oversized copy after exhausting retries",
				"platform", platform, "length", len(idea.FullCopy), "limit", charLimit)
			return &AcquiredContent{
				Idea:        idea,
				ModelUsed:   res.ModelUsed,
				RetriesUsed: MaxCharRetries,
				Outcome:     OutcomeAcceptedDegraded,
			}, nil
		}

		slog.Info("copy over character limit, retrying",
			"platform", platform, "attempt", attempt, "length", len(idea.FullCopy), "limit", charLimit)
	}

	return nil, nil
}
