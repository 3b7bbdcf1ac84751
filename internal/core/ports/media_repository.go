package ports

import (
	"context"

	"github.com/airhost/ops/internal/core/domain"
)

type ImageUpdate struct {
	Caption *string
	Kind    *domain.ImageKind
}

type ImageRepository interface {
	Create(ctx context.Context, img *domain.Image) (*domain.Image, error)
	FindByID(ctx context.Context, id string) (*domain.Image, error)
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Image, error)
	Update(ctx context.Context, id string, upd ImageUpdate) (*domain.Image, error)
	Delete(ctx context.Context, id string) error
	// DeleteByOrder removes every image of an order and returns their ids.
	DeleteByOrder(ctx context.Context, orderID string) ([]string, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (*domain.Comment, error)
	FindByID(ctx context.Context, id string) (*domain.Comment, error)
	ListByImage(ctx context.Context, imageID string) ([]*domain.Comment, error)
	UpdateText(ctx context.Context, id, text string) (*domain.Comment, error)
	Delete(ctx context.Context, id string) error
	DeleteByImages(ctx context.Context, imageIDs []string) error
}

// BlobStore persists uploaded files and returns their public URL.
type BlobStore interface {
	Put(ctx context.Context, obj BlobObject) (string, error)
	Delete(ctx context.Context, key string) error
}
