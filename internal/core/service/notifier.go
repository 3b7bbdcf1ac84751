package service

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

// notifier records side-effect notifications. The triggering operation has
// already succeeded, so failures are logged and not returned.
type notifier struct {
	repo ports.NotificationRepository
	log  zerolog.Logger
}

func (n *notifier) notify(ctx context.Context, userID, message string) {
	if userID == "" {
		return
	}
	if utf8.RuneCountInString(message) > domain.MaxNotificationText {
		message = string([]rune(message)[:domain.MaxNotificationText])
	}
	_, err := n.repo.Create(ctx, &domain.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: utcNow(),
	})
	if err != nil {
		n.log.Warn().Err(err).Str("user_id", userID).Msg("failed to record notification")
	}
}
