package ports

import (
	"context"
	"time"

	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
)

// OrderUpdate carries the fields to change; nil fields are left untouched.
type OrderUpdate struct {
	Address *string
	Date    *time.Time
	Note    *string
	Status  *domain.OrderStatus
}

func (u OrderUpdate) Empty() bool {
	return u.Address == nil && u.Date == nil && u.Note == nil && u.Status == nil
}

type OrderRepository interface {
	Create(ctx context.Context, o *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns the orders matching scope, newest first.
	List(ctx context.Context, scope access.Scope) ([]*domain.Order, error)
	Update(ctx context.Context, id string, upd OrderUpdate) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
	// Claim assigns the order to workerID only if it is still unassigned (or
	// already theirs) and not completed. It returns domain.ErrConflict when
	// that condition no longer holds.
	Claim(ctx context.Context, id, workerID string) (*domain.Order, error)
	// Assign hands an uncompleted order to workerID and marks it in progress.
	Assign(ctx context.Context, id, workerID string) (*domain.Order, error)
	CountByStatus(ctx context.Context, statuses ...domain.OrderStatus) (int64, error)
}
