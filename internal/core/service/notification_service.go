package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

const notificationPageSize = 20

type NotificationService struct {
	repo  ports.NotificationRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewNotificationService(repo ports.NotificationRepository, users ports.UserRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repo: repo, users: users, log: log}
}

// List returns the actor's latest notifications.
func (s *NotificationService) List(ctx context.Context, actor access.Actor) ([]*domain.Notification, error) {
	return s.repo.ListByUser(ctx, actor.UserID, notificationPageSize)
}

func (s *NotificationService) Send(ctx context.Context, actor access.Actor, userID, message string) (*domain.Notification, error) {
	if !access.CanSendNotification(actor.Role) {
		return nil, fmt.Errorf("send notification: %w", domain.ErrForbidden)
	}
	message, err := requireText("message", message, 1, domain.MaxNotificationText)
	if err != nil {
		return nil, err
	}
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	n, err := s.repo.Create(ctx, &domain.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: utcNow(),
	})
	if err != nil {
		return nil, fmt.Errorf("send notification: %w", err)
	}
	s.log.Info().Str("sender_id", actor.UserID).Str("user_id", userID).Msg("notification sent")
	return n, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, actor access.Actor, id string) (*domain.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := access.CheckNotificationOwner(actor.UserID, n); err != nil {
		return nil, err
	}
	if n.IsRead {
		return n, nil
	}
	return s.repo.MarkRead(ctx, id)
}
