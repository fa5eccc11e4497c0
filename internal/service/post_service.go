package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/momentumhq/contentpilot/internal/models"
	"github.com/momentumhq/contentpilot/internal/repository"
)

type PostService interface {
	List(ctx context.Context, consultantID int64) ([]*models.Post, error)
	Get(ctx context.Context, consultantID, postID int64) (*models.Post, error)
	Cancel(ctx context.Context, consultantID, postID int64) error
	Remove(ctx context.Context, consultantID, postID int64) error
}

type postService struct {
	p  repository.PostRepository
	pm repository.PostMediaRepository
}

func NewPostService(p repository.PostRepository, pm repository.PostMediaRepository) PostService {
	return &postService{
		p:  p,
		pm: pm,
	}
}

func (s *postService) List(ctx context.Context, consultantID int64) ([]*models.Post, error) {
	return s.p.GetByConsultantID(ctx, consultantID)
}

func (s *postService) Get(ctx context.Context, consultantID, postID int64) (*models.Post, error) {
	post, err := s.p.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil || post.ConsultantID != consultantID {
		err = errors.New("Post not found")
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

// Cancel marks a post cancelled. Cancelled posts stop occupying their
// time slot, so future runs can plan over them.
func (s *postService) Cancel(ctx context.Context, consultantID, postID int64) error {
	post, err := s.Get(ctx, consultantID, postID)
	if err != nil {
		return err
	}

	if post.Status == models.PostStatusPublished {
		err = errors.New("published posts cannot be cancelled")
		slog.Info(err.Error())
		return err
	}

	return s.p.UpdateStatus(ctx, models.PostStatusCancelled, postID)
}

func (s *postService) Remove(ctx context.Context, consultantID, postID int64) error {
	isValid, err := s.p.CheckByConsultantID(ctx, postID, consultantID)
	if err != nil {
		return err
	}
	if !isValid {
		err = errors.New("Post doesn't exist")
		slog.Info(err.Error())
		return err
	}

	if err := s.pm.Remove(ctx, postID); err != nil {
		return err
	}
	return s.p.Remove(ctx, postID)
}
