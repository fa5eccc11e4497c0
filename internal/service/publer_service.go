package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	config "github.com/momentumhq/contentpilot/configs"
	"github.com/momentumhq/contentpilot/internal/transfer"
)

// PublerService talks to the Publer REST API. Each consultant brings their
// own API key, so every call takes the key explicitly.
type PublerService interface {
	UploadMedia(ctx context.Context, apiKey string, data []byte, filename, mimeType string) (string, error)
	UploadPlaceholderImage(ctx context.Context, apiKey string) (string, error)
	SchedulePost(ctx context.Context, apiKey string, req *transfer.PublerScheduleRequest) (*transfer.PublerScheduleResponse, error)
	PostStatus(ctx context.Context, apiKey string, publerPostID string) (*transfer.PublerPostStatus, error)
}

type publerService struct {
	cfg    config.Config
	client *http.Client
}

func NewPublerService(cfg config.Config) PublerService {
	return &publerService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (s *publerService) UploadMedia(ctx context.Context, apiKey string, data []byte, filename, mimeType string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}
	if _, err := part.Write(data); err != nil {
		slog.Info(err.Error())
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.PublerBaseURL+"/media", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer-API "+apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to upload media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("error response from Publer: %s (status code: %d)", respBody, resp.StatusCode)
	}

	var result transfer.PublerMediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to decode media response: %w", err)
	}
	if result.Error != "" {
		return "", fmt.Errorf("publer rejected media: %s", result.Error)
	}

	return result.ID, nil
}

// UploadPlaceholderImage fetches the configured placeholder image and uploads
// it as Publer media. Instagram refuses text-only posts, so the placeholder
// stands in when a post has no generated image.
func (s *publerService) UploadPlaceholderImage(ctx context.Context, apiKey string) (string, error) {
	if s.cfg.PlaceholderImage == "" {
		return "", fmt.Errorf("placeholder image URL is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.PlaceholderImage, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("failed to fetch placeholder image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("error fetching placeholder image (status code: %d)", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Info(err.Error())
		return "", err
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/png"
	}

	return s.UploadMedia(ctx, apiKey, data, "placeholder.png", mimeType)
}

func (s *publerService) SchedulePost(ctx context.Context, apiKey string, scheduleReq *transfer.PublerScheduleRequest) (*transfer.PublerScheduleResponse, error) {
	payload, err := json.Marshal(scheduleReq)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.PublerBaseURL+"/posts/schedule", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer-API "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to schedule post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("error response from Publer: %s (status code: %d)", respBody, resp.StatusCode)
	}

	var result transfer.PublerScheduleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("failed to decode schedule response: %w", err)
	}
	if !result.Success && len(result.Errors) > 0 {
		return &result, fmt.Errorf("publer rejected post: %s", result.Errors[0])
	}

	return &result, nil
}

func (s *publerService) PostStatus(ctx context.Context, apiKey string, publerPostID string) (*transfer.PublerPostStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/posts/%s", s.cfg.PublerBaseURL, publerPostID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer-API "+apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("error response from Publer: %s (status code: %d)", respBody, resp.StatusCode)
	}

	var status transfer.PublerPostStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return &status, nil
}
