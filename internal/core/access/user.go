package access

import (
	"fmt"

	"github.com/airhost/ops/internal/core/domain"
)

func CanManageUsers(role domain.Role) bool {
	return Allowed(role, ResourceUser, ActionManage)
}

func CanReadStats(role domain.Role) bool {
	return Allowed(role, ResourceStats, ActionRead)
}

func CanViewUser(role domain.Role, userID, targetID string) bool {
	return CanManageUsers(role) || userID == targetID
}

// CheckUserUpdate lets users rename themselves. Every other field, and every
// other account, is admin only.
func CheckUserUpdate(role domain.Role, userID, targetID string, privileged bool) error {
	if CanManageUsers(role) {
		return nil
	}
	if userID != targetID {
		return fmt.Errorf("cannot modify another user: %w", domain.ErrForbidden)
	}
	if privileged {
		return fmt.Errorf("only admins can change roles or capabilities: %w", domain.ErrForbidden)
	}
	return nil
}
