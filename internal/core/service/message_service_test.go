package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/airhost/ops/internal/core/domain"
)

func newMessageFixture() (*MessageService, *stubMessageRepo, *stubNotificationRepo) {
	orders := newStubOrderRepo(pendingOrder("unassigned"), assignedOrder("o1", workerID, domain.StatusInProgress))
	msgs := &stubMessageRepo{}
	notes := &stubNotificationRepo{}
	return NewMessageService(msgs, orders, notes, discardLogger), msgs, notes
}

func TestMessageService_Send(t *testing.T) {
	svc, _, notes := newMessageFixture()
	ctx := context.Background()

	m, err := svc.Send(ctx, asLandlord, "o1", "Nøkkelen ligger i postkassen")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if m.SenderID != landlordID || m.RecipientID != workerID {
		t.Fatalf("unexpected routing: %+v", m)
	}
	if got := notes.forUser(workerID); len(got) != 1 || got[0] != domain.NoticeNewMessage {
		t.Fatalf("expected message notice, got %v", got)
	}

	reply, err := svc.Send(ctx, asWorker, "o1", "Takk")
	if err != nil || reply.RecipientID != landlordID {
		t.Fatalf("reply: %+v %v", reply, err)
	}
}

func TestMessageService_Rejections(t *testing.T) {
	svc, msgs, _ := newMessageFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"admin", func() error { _, err := svc.Send(ctx, asAdmin, "o1", "hei"); return err }, domain.ErrForbidden},
		{"outsider", func() error { _, err := svc.Send(ctx, asWorker2, "o1", "hei"); return err }, domain.ErrForbidden},
		{"no counterpart", func() error { _, err := svc.Send(ctx, asLandlord, "unassigned", "hei"); return err }, domain.ErrNoRecipient},
		{"empty text", func() error { _, err := svc.Send(ctx, asLandlord, "o1", " "); return err }, domain.ErrInvalidInput},
		{"too long", func() error { _, err := svc.Send(ctx, asLandlord, "o1", strings.Repeat("a", domain.MaxMessageText+1)); return err }, domain.ErrInvalidInput},
		{"missing order", func() error { _, err := svc.Send(ctx, asLandlord, "nope", "hei"); return err }, domain.ErrOrderNotFound},
		{"admin list", func() error { _, err := svc.List(ctx, asAdmin, "o1"); return err }, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
	if len(msgs.messages) != 0 {
		t.Fatalf("rejected sends must not store messages")
	}
}

func TestMessageService_List(t *testing.T) {
	svc, _, _ := newMessageFixture()
	ctx := context.Background()

	_, _ = svc.Send(ctx, asLandlord, "o1", "en")
	_, _ = svc.Send(ctx, asWorker, "o1", "to")

	list, err := svc.List(ctx, asWorker, "o1")
	if err != nil || len(list) != 2 || list[0].Text != "en" {
		t.Fatalf("unexpected conversation: %v %v", list, err)
	}
}
