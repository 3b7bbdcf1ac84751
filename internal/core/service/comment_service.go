package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

// CommentService manages comments on order images. Visibility follows the
// image's order.
type CommentService struct {
	comments ports.CommentRepository
	images   ports.ImageRepository
	orders   ports.OrderRepository
	log      zerolog.Logger
}

func NewCommentService(comments ports.CommentRepository, images ports.ImageRepository, orders ports.OrderRepository, log zerolog.Logger) *CommentService {
	return &CommentService{comments: comments, images: images, orders: orders, log: log}
}

func (s *CommentService) List(ctx context.Context, actor access.Actor, imageID string) ([]*domain.Comment, error) {
	if err := s.authorizeImage(ctx, actor, imageID); err != nil {
		return nil, err
	}
	return s.comments.ListByImage(ctx, imageID)
}

func (s *CommentService) Create(ctx context.Context, actor access.Actor, imageID, text string) (*domain.Comment, error) {
	if err := s.authorizeImage(ctx, actor, imageID); err != nil {
		return nil, err
	}
	text, err := requireText("text", text, 1, domain.MaxCommentText)
	if err != nil {
		return nil, err
	}

	ts := utcNow()
	return s.comments.Create(ctx, &domain.Comment{
		ImageID:   imageID,
		UserID:    actor.UserID,
		Text:      text,
		CreatedAt: ts,
		UpdatedAt: ts,
	})
}

func (s *CommentService) Update(ctx context.Context, actor access.Actor, id, text string) (*domain.Comment, error) {
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanEditComment(actor.Role, actor.UserID, c) {
		return nil, fmt.Errorf("edit comment: %w", domain.ErrForbidden)
	}
	text, err = requireText("text", text, 1, domain.MaxCommentText)
	if err != nil {
		return nil, err
	}
	return s.comments.UpdateText(ctx, id, text)
}

func (s *CommentService) Delete(ctx context.Context, actor access.Actor, id string) error {
	c, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanEditComment(actor.Role, actor.UserID, c) {
		return fmt.Errorf("delete comment: %w", domain.ErrForbidden)
	}
	return s.comments.Delete(ctx, id)
}

func (s *CommentService) authorizeImage(ctx context.Context, actor access.Actor, imageID string) error {
	img, err := s.images.FindByID(ctx, imageID)
	if err != nil {
		return err
	}
	o, err := s.orders.FindByID(ctx, img.OrderID)
	if err != nil {
		return err
	}
	if !access.CanViewOrderMedia(actor.Role, actor.UserID, o) {
		return fmt.Errorf("access image comments: %w", domain.ErrForbidden)
	}
	return nil
}
