package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/momentumhq/contentpilot/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedGenerator returns its responses in order, one per call.
type scriptedGenerator struct {
	responses []*transfer.ContentResult
	errs      []error
	calls     int
}

func (g *scriptedGenerator) GenerateContent(ctx context.Context, consultantID int64, req *transfer.ContentRequest) (*transfer.ContentResult, error) {
	i := g.calls
	g.calls++
	var err error
	if i < len(g.errs) {
		err = g.errs[i]
	}
	var res *transfer.ContentResult
	if i < len(g.responses) {
		res = g.responses[i]
	}
	return res, err
}

func ideaOf(copy string) *transfer.ContentResult {
	return &transfer.ContentResult{
		Ideas:     []transfer.ContentIdea{{Title: "t", Hook: "h", FullCopy: copy}},
		ModelUsed: "gemini-2.5-flash",
	}
}

func TestAcquireFirstAttemptWithinLimit(t *testing.T) {
	gen := &scriptedGenerator{responses: []*transfer.ContentResult{ideaOf("short copy")}}
	svc := NewContentService(gen)

	got, err := svc.Acquire(context.Background(), 1, "x", "educativo", transfer.GenerationParams{}, 252)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 0, got.RetriesUsed)
	assert.Equal(t, OutcomeAcceptedClean, got.Outcome)
	assert.Equal(t, "gemini-2.5-flash", got.ModelUsed)
	assert.Equal(t, 1, gen.calls)
}

func TestAcquireRetriesOversizedCopy(t *testing.T) {
	long := strings.Repeat("a", 300)
	gen := &scriptedGenerator{responses: []*transfer.ContentResult{ideaOf(long), ideaOf("fits now")}}
	svc := NewContentService(gen)

	got, err := svc.Acquire(context.Background(), 1, "x", "educativo", transfer.GenerationParams{}, 252)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.RetriesUsed)
	assert.Equal(t, OutcomeAcceptedClean, got.Outcome)
	assert.Equal(t, 2, gen.calls)
}

func TestAcquireAcceptsDegradedOnFinalAttempt(t *testing.T) {
	long := strings.Repeat("a", 300)
	gen := &scriptedGenerator{responses: []*transfer.ContentResult{ideaOf(long), ideaOf(long), ideaOf(long)}}
	svc := NewContentService(gen)

	got, err := svc.Acquire(context.Background(), 1, "x", "educativo", transfer.GenerationParams{}, 252)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, MaxCharRetries, got.RetriesUsed)
	assert.Equal(t, OutcomeAcceptedDegraded, got.Outcome)
	assert.Equal(t, long, got.Idea.FullCopy)
	assert.Equal(t, MaxCharRetries, gen.calls)
}

func TestAcquireReturnsNilWhenNothingGenerated(t *testing.T) {
	gen := &scriptedGenerator{
		errs: []error{errors.New("boom"), errors.New("boom"), errors.New("boom")},
	}
	svc := NewContentService(gen)

	got, err := svc.Acquire(context.Background(), 1, "x", "educativo", transfer.GenerationParams{}, 252)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, MaxCharRetries, gen.calls)
}

func TestAcquireRecoversFromGeneratorError(t *testing.T) {
	gen := &scriptedGenerator{
		responses: []*transfer.ContentResult{nil, ideaOf("fine")},
		errs:      []error{errors.New("transient")},
	}
	svc := NewContentService(gen)

	got, err := svc.Acquire(context.Background(), 1, "x", "educativo", transfer.GenerationParams{}, 252)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.RetriesUsed)
}

func TestAcquireStopsOnCancelledContext(t *testing.T) {
	gen := &scriptedGenerator{responses: []*transfer.ContentResult{ideaOf("fine")}}
	svc := NewContentService(gen)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := svc.Acquire(ctx, 1, "x", "educativo", transfer.GenerationParams{}, 252)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, got)
	assert.Equal(t, 0, gen.calls)
}
