package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/airhost/ops/internal/core/domain"
)

func TestNotificationService_Send(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo, newStubUserRepo(fixtureUsers()...), discardLogger)
	ctx := context.Background()

	n, err := svc.Send(ctx, asWorker, landlordID, "Vi kommer kl 10")
	if err != nil || n.UserID != landlordID || n.IsRead {
		t.Fatalf("send: %+v %v", n, err)
	}
	if _, err := svc.Send(ctx, asAdmin, workerID, "Husk nøkkel"); err != nil {
		t.Fatalf("admin send: %v", err)
	}
	if _, err := svc.Send(ctx, asLandlord, workerID, "Hei"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("landlord: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Send(ctx, asAdmin, "ghost", "Hei"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("unknown recipient: expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.Send(ctx, asAdmin, workerID, ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("empty: expected ErrInvalidInput, got %v", err)
	}
}

func TestNotificationService_ListLatest(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo, newStubUserRepo(fixtureUsers()...), discardLogger)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		_, _ = repo.Create(ctx, &domain.Notification{UserID: landlordID, Message: fmt.Sprintf("n%d", i)})
	}
	_, _ = repo.Create(ctx, &domain.Notification{UserID: workerID, Message: "other"})

	list, err := svc.List(ctx, asLandlord)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != notificationPageSize || list[0].Message != "n24" {
		t.Fatalf("expected latest %d, got %d starting %q", notificationPageSize, len(list), list[0].Message)
	}
}

func TestNotificationService_MarkRead(t *testing.T) {
	repo := &stubNotificationRepo{}
	svc := NewNotificationService(repo, newStubUserRepo(fixtureUsers()...), discardLogger)
	ctx := context.Background()

	n, _ := repo.Create(ctx, &domain.Notification{UserID: landlordID, Message: "hei"})

	if _, err := svc.MarkRead(ctx, asWorker, n.ID); !errors.Is(err, domain.ErrNotificationNotFound) {
		t.Fatalf("foreign: expected ErrNotificationNotFound, got %v", err)
	}
	if repo.items[0].IsRead {
		t.Fatalf("foreign mark must not mutate")
	}
	read, err := svc.MarkRead(ctx, asLandlord, n.ID)
	if err != nil || !read.IsRead {
		t.Fatalf("mark read: %+v %v", read, err)
	}
	if _, err := svc.MarkRead(ctx, asLandlord, n.ID); err != nil {
		t.Fatalf("mark read twice: %v", err)
	}
}

func TestStatsService(t *testing.T) {
	users := fixtureUsers()
	users[3].IsActive = false
	orders := newStubOrderRepo(
		pendingOrder("o1"),
		assignedOrder("o2", workerID, domain.StatusInProgress),
		assignedOrder("o3", workerID, domain.StatusCompleted),
	)
	svc := NewStatsService(orders, newStubUserRepo(users...))
	ctx := context.Background()

	st, err := svc.Stats(ctx, asAdmin)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.ActiveOrders != 2 || st.CompletedOrders != 1 || st.Landlords != 2 || st.Workers != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	if _, err := svc.Stats(ctx, asLandlord); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
