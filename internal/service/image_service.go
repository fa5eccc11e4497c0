package service

import (
	"context"
	"fmt"

	"github.com/h2non/filetype"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/momentumhq/contentpilot/internal/models"
	"github.com/momentumhq/contentpilot/internal/repository"
)

// GeneratedImage is a stored image ready to attach to a post. Bytes are kept
// so the publish step can upload to Publer without refetching from storage.
type GeneratedImage struct {
	AssetID  int64
	URL      string
	Bytes    []byte
	MIMEType string
}

type ImageService interface {
	GenerateForPost(ctx context.Context, post *models.Post, style string) (*GeneratedImage, error)
}

type imageService struct {
	gemini GeminiService
	r2     *R2Service
	ma     repository.MediaAssetRepository
	pm     repository.PostMediaRepository
}

func NewImageService(
	gemini GeminiService,
	r2 *R2Service,
	ma repository.MediaAssetRepository,
	pm repository.PostMediaRepository) ImageService {
	return &imageService{
		gemini: gemini,
		r2:     r2,
		ma:     ma,
		pm:     pm,
	}
}

var allowedImageTypes = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "webp": {},
}

func (s *imageService) GenerateForPost(ctx context.Context, post *models.Post, style string) (*GeneratedImage, error) {
	data, mimeType, err := s.gemini.GenerateImage(ctx, post.ConsultantID, imagePrompt(post), style)
	if err != nil {
		return nil, err
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return nil, fmt.Errorf("sniffing image type: %w", err)
	}
	if _, ok := allowedImageTypes[kind.Extension]; !ok {
		return nil, fmt.Errorf("generator returned unsupported image type %q", kind.Extension)
	}
	if mimeType == "" {
		mimeType = kind.MIME.Value
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}
	key := fmt.Sprintf("%s.%s", id, kind.Extension)

	if err := s.r2.Upload(ctx, key, data, mimeType); err != nil {
		return nil, fmt.Errorf("uploading image: %w", err)
	}

	asset := models.MediaAsset{
		ConsultantID: post.ConsultantID,
		FileName:     key,
		FileType:     mimeType,
		FileSize:     int64(len(data)),
		FileURL:      s.r2.PublicURL(key),
	}
	assetID, err := s.ma.Create(ctx, nil, &asset)
	if err != nil {
		return nil, fmt.Errorf("saving media asset: %w", err)
	}

	postMedia := models.PostMedia{
		PostID:  post.ID,
		AssetID: assetID,
	}
	if err := s.pm.Create(ctx, nil, &postMedia); err != nil {
		return nil, fmt.Errorf("linking media to post: %w", err)
	}

	return &GeneratedImage{
		AssetID:  assetID,
		URL:      asset.FileURL,
		Bytes:    data,
		MIMEType: mimeType,
	}, nil
}

func imagePrompt(post *models.Post) string {
	return fmt.Sprintf("Create a social media image for a %s post.\nTheme: %s.\nTitle: %s\nHook: %s",
		post.Platform, post.ContentTheme, post.Title, post.Hook)
}
