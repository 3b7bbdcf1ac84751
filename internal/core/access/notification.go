package access

import "github.com/airhost/ops/internal/core/domain"

func CanSendNotification(role domain.Role) bool {
	return Allowed(role, ResourceNotification, ActionSend)
}

// CheckNotificationOwner hides foreign notifications behind not found.
func CheckNotificationOwner(userID string, n *domain.Notification) error {
	if n.UserID != userID {
		return domain.ErrNotificationNotFound
	}
	return nil
}

// CanReadNotification is the boolean form of CheckNotificationOwner.
func CanReadNotification(userID string, n *domain.Notification) bool {
	return CheckNotificationOwner(userID, n) == nil
}
