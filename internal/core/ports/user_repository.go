package ports

import (
	"context"

	"github.com/airhost/ops/internal/core/domain"
)

// UserUpdate carries the fields to change; nil fields are left untouched.
type UserUpdate struct {
	Name        *string
	Role        *domain.Role
	CanLandlord *bool
	CanService  *bool
	ActiveMode  *domain.Mode
	IsActive    *bool
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error)
	// CountActive counts active users holding role as their stored role.
	CountActive(ctx context.Context, role domain.Role) (int64, error)
}
