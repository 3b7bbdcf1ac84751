package service

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

const imageDir = "images"

type ImageService struct {
	images   ports.ImageRepository
	comments ports.CommentRepository
	orders   ports.OrderRepository
	store    ports.BlobStore
	rules    domain.UploadRules
	log      zerolog.Logger
}

func NewImageService(
	images ports.ImageRepository,
	comments ports.CommentRepository,
	orders ports.OrderRepository,
	store ports.BlobStore,
	rules domain.UploadRules,
	log zerolog.Logger,
) *ImageService {
	return &ImageService{images: images, comments: comments, orders: orders, store: store, rules: rules, log: log}
}

func (s *ImageService) List(ctx context.Context, actor access.Actor, orderID string) ([]*domain.Image, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !access.CanViewOrderMedia(actor.Role, actor.UserID, o) {
		return nil, fmt.Errorf("view order images: %w", domain.ErrForbidden)
	}
	return s.images.ListByOrder(ctx, orderID)
}

// Create attaches an already hosted image by URL.
func (s *ImageService) Create(ctx context.Context, actor access.Actor, in ports.CreateImageInput) (*domain.Image, error) {
	if err := s.authorizeUpload(ctx, actor, in.OrderID); err != nil {
		return nil, err
	}
	u, err := url.Parse(in.URL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, fmt.Errorf("url must be an absolute http(s) url: %w", domain.ErrInvalidInput)
	}
	return s.save(ctx, actor, in.OrderID, in.URL, in.Caption, in.Kind)
}

// Upload stores the file and attaches it to the order. Authorization and
// validation run before anything is written.
func (s *ImageService) Upload(ctx context.Context, actor access.Actor, in ports.UploadImageInput) (*domain.Image, error) {
	if err := s.authorizeUpload(ctx, actor, in.OrderID); err != nil {
		return nil, err
	}
	if err := s.rules.Check(in.File.Filename, in.File.ContentType, in.File.Size); err != nil {
		return nil, err
	}
	if _, err := checkCaption(in.Caption, in.Kind); err != nil {
		return nil, err
	}

	obj := in.File
	obj.Dir = imageDir + "/" + in.OrderID
	location, err := s.store.Put(ctx, obj)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	img, err := s.save(ctx, actor, in.OrderID, location, in.Caption, in.Kind)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("image_id", img.ID).Str("order_id", in.OrderID).Int64("size", in.File.Size).Msg("image uploaded")
	return img, nil
}

func (s *ImageService) Update(ctx context.Context, actor access.Actor, id string, upd ports.ImageUpdate) (*domain.Image, error) {
	img, err := s.images.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.CanEditImage(actor.Role, actor.UserID, img) {
		return nil, fmt.Errorf("edit image: %w", domain.ErrForbidden)
	}

	if upd.Caption != nil {
		caption, err := requireText("caption", *upd.Caption, 0, domain.MaxCaption)
		if err != nil {
			return nil, err
		}
		upd.Caption = &caption
	}
	if upd.Kind != nil && !upd.Kind.Valid() {
		return nil, fmt.Errorf("unknown image kind %q: %w", *upd.Kind, domain.ErrInvalidInput)
	}
	if upd.Caption == nil && upd.Kind == nil {
		return img, nil
	}
	return s.images.Update(ctx, id, upd)
}

// Delete removes the image record and its comments.
func (s *ImageService) Delete(ctx context.Context, actor access.Actor, id string) error {
	img, err := s.images.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !access.CanEditImage(actor.Role, actor.UserID, img) {
		return fmt.Errorf("delete image: %w", domain.ErrForbidden)
	}
	if err := s.comments.DeleteByImages(ctx, []string{id}); err != nil {
		return fmt.Errorf("delete image comments: %w", err)
	}
	if err := s.images.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	s.log.Info().Str("image_id", id).Str("actor_id", actor.UserID).Msg("image deleted")
	return nil
}

func (s *ImageService) authorizeUpload(ctx context.Context, actor access.Actor, orderID string) error {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !access.CanUploadImage(actor.Role, actor.UserID, o) {
		return fmt.Errorf("upload image: %w", domain.ErrForbidden)
	}
	return nil
}

func (s *ImageService) save(ctx context.Context, actor access.Actor, orderID, location, caption string, kind domain.ImageKind) (*domain.Image, error) {
	caption, err := checkCaption(caption, kind)
	if err != nil {
		return nil, err
	}
	return s.images.Create(ctx, &domain.Image{
		OrderID:      orderID,
		URL:          location,
		Caption:      caption,
		Kind:         kind,
		UploadedByID: actor.UserID,
		CreatedAt:    utcNow(),
	})
}

func checkCaption(caption string, kind domain.ImageKind) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown image kind %q: %w", kind, domain.ErrInvalidInput)
	}
	return requireText("caption", caption, 0, domain.MaxCaption)
}
