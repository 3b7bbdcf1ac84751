package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
	"github.com/airhost/ops/internal/core/ports"
)

// MessageService is the private chat between an order's landlord and worker.
type MessageService struct {
	messages ports.MessageRepository
	orders   ports.OrderRepository
	notifier *notifier
	log      zerolog.Logger
}

func NewMessageService(messages ports.MessageRepository, orders ports.OrderRepository, notifications ports.NotificationRepository, log zerolog.Logger) *MessageService {
	return &MessageService{
		messages: messages,
		orders:   orders,
		notifier: &notifier{repo: notifications, log: log},
		log:      log,
	}
}

func (s *MessageService) List(ctx context.Context, actor access.Actor, orderID string) ([]*domain.Message, error) {
	if _, err := s.chatOrder(ctx, actor, orderID); err != nil {
		return nil, err
	}
	return s.messages.ListByOrder(ctx, orderID)
}

func (s *MessageService) Send(ctx context.Context, actor access.Actor, orderID, text string) (*domain.Message, error) {
	o, err := s.chatOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	recipient, err := access.ChatRecipient(actor.UserID, o)
	if err != nil {
		return nil, err
	}
	text, err = requireText("text", text, 1, domain.MaxMessageText)
	if err != nil {
		return nil, err
	}

	msg, err := s.messages.Create(ctx, &domain.Message{
		OrderID:     orderID,
		SenderID:    actor.UserID,
		RecipientID: recipient,
		Text:        text,
		CreatedAt:   utcNow(),
	})
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	s.notifier.notify(ctx, recipient, domain.NoticeNewMessage)
	return msg, nil
}

func (s *MessageService) chatOrder(ctx context.Context, actor access.Actor, orderID string) (*domain.Order, error) {
	if !access.CanParticipateInChat(actor.Role) {
		return nil, fmt.Errorf("order chat: %w", domain.ErrForbidden)
	}
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := access.CheckChatAccess(actor.Role, actor.UserID, o); err != nil {
		return nil, err
	}
	return o, nil
}
