package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/airhost/ops/internal/core/domain"
)

// Fallback selects what happens when a non-admin holds no capability at all.
type Fallback int

const (
	// FallbackDeny rejects the request as unauthorized.
	FallbackDeny Fallback = iota
	// FallbackService treats the user as a worker.
	FallbackService
)

// ResolveEffectiveRole derives the role that governs a request.
// Admins are always ADMIN. Otherwise service mode wins when the user holds the
// service capability, then the landlord capability applies.
func ResolveEffectiveRole(u *domain.User, fallback Fallback) (domain.Role, error) {
	if u == nil {
		return "", domain.ErrUnauthorized
	}
	if u.Role == domain.RoleAdmin {
		return domain.RoleAdmin, nil
	}
	if u.ActiveMode == domain.ModeService && u.CanService {
		return domain.RoleService, nil
	}
	if u.CanLandlord {
		return domain.RoleLandlord, nil
	}
	if fallback == FallbackService {
		return domain.RoleService, nil
	}
	return "", fmt.Errorf("user %s holds no capability: %w", u.ID, domain.ErrUnauthorized)
}

// Actor is the authenticated principal of one request.
type Actor struct {
	UserID string
	Role   domain.Role
	User   *domain.User
}

// UserReader is the single lookup the resolver needs.
type UserReader interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// Resolver loads the acting user and computes its effective role.
type Resolver struct {
	users    UserReader
	fallback Fallback
}

func NewResolver(users UserReader, fallback Fallback) *Resolver {
	return &Resolver{users: users, fallback: fallback}
}

// Resolve returns the actor for userID. Unknown and deactivated users are
// unauthorized; store failures are returned as is.
func (r *Resolver) Resolve(ctx context.Context, userID string) (Actor, error) {
	if userID == "" {
		return Actor{}, domain.ErrUnauthorized
	}

	u, err := r.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return Actor{}, fmt.Errorf("user %s: %w", userID, domain.ErrUnauthorized)
		}
		return Actor{}, fmt.Errorf("resolve actor: %w", err)
	}
	if !u.IsActive {
		return Actor{}, fmt.Errorf("user %s is deactivated: %w", userID, domain.ErrUnauthorized)
	}

	role, err := ResolveEffectiveRole(u, r.fallback)
	if err != nil {
		return Actor{}, err
	}
	return Actor{UserID: u.ID, Role: role, User: u}, nil
}
