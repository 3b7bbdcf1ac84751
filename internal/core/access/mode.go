package access

import (
	"fmt"

	"github.com/airhost/ops/internal/core/domain"
)

// CheckModeSwitch validates a request to act as mode.
func CheckModeSwitch(u *domain.User, mode domain.Mode) error {
	if u.Role == domain.RoleAdmin {
		return fmt.Errorf("admins cannot switch mode: %w", domain.ErrInvalidOperation)
	}
	switch mode {
	case domain.ModeLandlord:
		if !u.CanLandlord {
			return fmt.Errorf("landlord mode not enabled for this account: %w", domain.ErrForbidden)
		}
	case domain.ModeService:
		if !u.CanService {
			return fmt.Errorf("service mode not enabled for this account: %w", domain.ErrForbidden)
		}
	default:
		return fmt.Errorf("unknown mode %q: %w", mode, domain.ErrInvalidInput)
	}
	return nil
}
