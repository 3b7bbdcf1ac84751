package access

import (
	"fmt"

	"github.com/airhost/ops/internal/core/domain"
)

// CanParticipateInChat is false for admins: the channel is private to the
// landlord and the worker.
func CanParticipateInChat(role domain.Role) bool {
	return Allowed(role, ResourceChat, ActionParticipate)
}

func IsChatParticipant(userID string, o *domain.Order) bool {
	return userID != "" && (o.LandlordID == userID || o.AssignedToID == userID)
}

// CheckChatAccess combines the role and participant checks.
func CheckChatAccess(role domain.Role, userID string, o *domain.Order) error {
	if !CanParticipateInChat(role) {
		return fmt.Errorf("role %s cannot use order chat: %w", role, domain.ErrForbidden)
	}
	if !IsChatParticipant(userID, o) {
		return fmt.Errorf("not a participant of this order: %w", domain.ErrForbidden)
	}
	return nil
}

// ChatRecipient returns the counterpart of senderID on o.
func ChatRecipient(senderID string, o *domain.Order) (string, error) {
	var recipient string
	switch senderID {
	case o.LandlordID:
		recipient = o.AssignedToID
	case o.AssignedToID:
		recipient = o.LandlordID
	}
	if recipient == "" || recipient == senderID {
		return "", domain.ErrNoRecipient
	}
	return recipient, nil
}
