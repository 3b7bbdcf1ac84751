package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

type UserService struct {
	repo     ports.UserRepository
	fallback access.Fallback
	log      zerolog.Logger
}

func NewUserService(repo ports.UserRepository, fallback access.Fallback, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, fallback: fallback, log: log}
}

func (s *UserService) Me(_ context.Context, actor access.Actor) (*ports.Profile, error) {
	if actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	return profileOf(actor.User, actor.Role), nil
}

// SwitchMode persists the requested persona. Switching to the current mode is
// accepted and returns the same snapshot.
func (s *UserService) SwitchMode(ctx context.Context, actor access.Actor, mode domain.Mode) (*ports.Profile, error) {
	if actor.User == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := access.CheckModeSwitch(actor.User, mode); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, actor.UserID, ports.UserUpdate{ActiveMode: &mode})
	if err != nil {
		return nil, fmt.Errorf("switch mode: %w", err)
	}
	role, err := access.ResolveEffectiveRole(updated, s.fallback)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", actor.UserID).Str("mode", string(mode)).Msg("active mode switched")
	return profileOf(updated, role), nil
}

func (s *UserService) List(ctx context.Context, actor access.Actor) ([]*domain.User, error) {
	if !access.CanManageUsers(actor.Role) {
		return nil, fmt.Errorf("list users: %w", domain.ErrForbidden)
	}
	return s.repo.List(ctx)
}

// Create lets admins open accounts directly, admin accounts included.
func (s *UserService) Create(ctx context.Context, actor access.Actor, in ports.CreateUserInput) (*domain.User, error) {
	if !access.CanManageUsers(actor.Role) {
		return nil, fmt.Errorf("create user: %w", domain.ErrForbidden)
	}

	kind := string(in.Role)
	if in.Dual {
		kind = domain.RegisterDual
	}
	profile, ok := domain.ProfileFor(kind)
	if !ok {
		return nil, fmt.Errorf("unknown role %q: %w", in.Role, domain.ErrInvalidInput)
	}

	u, err := newUser(in.Name, in.Email, in.Password, profile)
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, u)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("admin_id", actor.UserID).Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user created by admin")
	return created, nil
}

func (s *UserService) Get(ctx context.Context, actor access.Actor, id string) (*domain.User, error) {
	if !access.CanViewUser(actor.Role, actor.UserID, id) {
		return nil, fmt.Errorf("view user: %w", domain.ErrForbidden)
	}
	return s.repo.FindByID(ctx, id)
}

// Update applies in to user id. Changing the stored role realigns the
// capability flags and active mode unless the same request sets them.
func (s *UserService) Update(ctx context.Context, actor access.Actor, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if err := access.CheckUserUpdate(actor.Role, actor.UserID, id, in.Privileged()); err != nil {
		return nil, err
	}
	if in.IsActive != nil && !*in.IsActive && id == actor.UserID {
		return nil, fmt.Errorf("cannot deactivate yourself: %w", domain.ErrInvalidOperation)
	}

	upd := ports.UserUpdate{
		CanLandlord: in.CanLandlord,
		CanService:  in.CanService,
		IsActive:    in.IsActive,
	}
	if in.Name != nil {
		name, err := requireText("name", *in.Name, 2, 100)
		if err != nil {
			return nil, err
		}
		upd.Name = &name
	}
	if in.Role != nil {
		profile, ok := domain.ProfileFor(string(*in.Role))
		if !ok {
			return nil, fmt.Errorf("unknown role %q: %w", *in.Role, domain.ErrInvalidInput)
		}
		upd.Role = &profile.Role
		if upd.CanLandlord == nil {
			upd.CanLandlord = &profile.CanLandlord
		}
		if upd.CanService == nil {
			upd.CanService = &profile.CanService
		}
		upd.ActiveMode = &profile.ActiveMode
	}
	if upd.Role != nil || upd.CanLandlord != nil || upd.CanService != nil {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := alignCapabilities(current, &upd); err != nil {
			return nil, err
		}
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.log.Info().Str("actor_id", actor.UserID).Str("user_id", id).Msg("user updated")
	return updated, nil
}

// alignCapabilities checks the flags upd leaves on u. A non-admin must keep
// at least one capability, and the active mode follows the one that remains.
func alignCapabilities(u *domain.User, upd *ports.UserUpdate) error {
	role, canLandlord, canService, mode := u.Role, u.CanLandlord, u.CanService, u.ActiveMode
	if upd.Role != nil {
		role = *upd.Role
	}
	if upd.CanLandlord != nil {
		canLandlord = *upd.CanLandlord
	}
	if upd.CanService != nil {
		canService = *upd.CanService
	}
	if upd.ActiveMode != nil {
		mode = *upd.ActiveMode
	}
	if role == domain.RoleAdmin {
		return nil
	}
	if !canLandlord && !canService {
		return fmt.Errorf("a non-admin user needs at least one capability: %w", domain.ErrInvalidInput)
	}

	aligned := mode
	switch {
	case mode == domain.ModeService && !canService:
		aligned = domain.ModeLandlord
	case mode == domain.ModeLandlord && !canLandlord:
		aligned = domain.ModeService
	}
	if aligned != mode || upd.ActiveMode != nil {
		upd.ActiveMode = &aligned
	}
	return nil
}

// Deactivate disables an account. It takes effect on the user's next request.
func (s *UserService) Deactivate(ctx context.Context, actor access.Actor, id string) error {
	inactive := false
	_, err := s.Update(ctx, actor, id, ports.UpdateUserInput{IsActive: &inactive})
	return err
}

func profileOf(u *domain.User, effective domain.Role) *ports.Profile {
	return &ports.Profile{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		CanLandlord:   u.HasLandlord(),
		CanService:    u.HasService(),
		ActiveMode:    u.ActiveMode,
		EffectiveRole: effective,
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}
