package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	config "github.com/momentumhq/contentpilot/configs"
	"github.com/momentumhq/contentpilot/internal/transfer"
	"github.com/momentumhq/contentpilot/pkg/ratelimit"
	"google.golang.org/genai"
)

type GeminiService interface {
	ContentGenerator
	GenerateImage(ctx context.Context, consultantID int64, prompt, style string) ([]byte, string, error)
}

type geminiService struct {
	client     *genai.Client
	textModel  string
	imageModel string
	limiter    *ratelimit.Limiter
}

func NewGeminiService(cfg config.Config, limiter *ratelimit.Limiter) (GeminiService, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("Gemini API key is required")
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		textModel:  cfg.GeminiTextModel,
		imageModel: cfg.GeminiImageModel,
		limiter:    limiter,
	}, nil
}

// GenerateContent requests one structured post draft. Calls are spaced per
// consultant by the shared limiter.
func (s *geminiService) GenerateContent(ctx context.Context, consultantID int64, req *transfer.ContentRequest) (*transfer.ContentResult, error) {
	if err := s.limiter.Wait(ctx, fmt.Sprintf("gemini:consultant:%d", consultantID)); err != nil {
		return nil, err
	}

	prompt := buildContentPrompt(req)

	resp, err := s.client.Models.GenerateContent(ctx, s.textModel, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0.9),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	var parsed struct {
		Ideas []transfer.ContentIdea `json:"ideas"`
	}
	if err := json.Unmarshal([]byte(resp.Text()), &parsed); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("decoding gemini response: %w", err)
	}

	return &transfer.ContentResult{
		Ideas:     parsed.Ideas,
		ModelUsed: s.textModel,
	}, nil
}

// GenerateImage returns raw image bytes and their MIME type. An empty
// candidate list or a response without inline data is an error the caller
// records on the post.
func (s *geminiService) GenerateImage(ctx context.Context, consultantID int64, prompt, style string) ([]byte, string, error) {
	if err := s.limiter.Wait(ctx, fmt.Sprintf("gemini:consultant:%d", consultantID)); err != nil {
		return nil, "", err
	}

	fullPrompt := prompt
	if style != "" {
		fullPrompt = fmt.Sprintf("%s\n\nVisual style: %s", prompt, style)
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.imageModel, genai.Text(fullPrompt), &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
	})
	if err != nil {
		return nil, "", fmt.Errorf("gemini generate image: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, "", errors.New("gemini returned no image candidates")
	}
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData.Data, part.InlineData.MIMEType, nil
		}
	}

	return nil, "", errors.New("gemini response contained no image data")
}

func buildContentPrompt(req *transfer.ContentRequest) string {
	p := req.Params
	prompt := fmt.Sprintf(`Write one social media post for %s.
Content theme: %s.
Post schema: %s. Category: %s.
Writing style: %s. Media type: %s. Copy type: %s.
Audience awareness level: %s. Market sophistication: %s.

Return JSON: {"ideas":[{"title":string,"hook":string,"full_copy":string,"structured_content":object,"quality_score":number}]}`,
		req.Platform, req.Theme, p.PostSchema, p.PostCategory, p.WritingStyle,
		p.MediaType, p.CopyType, p.AwarenessLevel, p.SophisticationLevel)

	if p.CustomInstructions != "" {
		prompt += "\n\nAdditional instructions: " + p.CustomInstructions
	}
	return prompt
}
