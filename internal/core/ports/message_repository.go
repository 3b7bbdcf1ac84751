package ports

import (
	"context"
	"time"

	"github.com/airhost/ops/internal/core/domain"
)

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) (*domain.Message, error)
	// ListByOrder returns the conversation oldest first.
	ListByOrder(ctx context.Context, orderID string) ([]*domain.Message, error)
	DeleteByOrder(ctx context.Context, orderID string) error
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error)
	FindByID(ctx context.Context, id string) (*domain.Notification, error)
	// ListByUser returns up to limit notifications, newest first.
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.Notification, error)
	MarkRead(ctx context.Context, id string) (*domain.Notification, error)
}

// TokenDenylist records revoked JWT ids until the token would have expired.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
