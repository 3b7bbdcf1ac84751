package service

import (
	"context"
	"errors"
	"testing"

	"github.com/airhost/ops/internal/core/domain"
)

func TestStatsService_Stats(t *testing.T) {
	orders := newStubOrderRepo(
		pendingOrder("pool"),
		assignedOrder("o1", workerID, domain.StatusInProgress),
		assignedOrder("o2", workerID, domain.StatusCompleted),
	)
	users := newStubUserRepo(fixtureUsers()...)
	svc := NewStatsService(orders, users)

	st, err := svc.Stats(context.Background(), asAdmin)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if st.ActiveOrders != 2 || st.CompletedOrders != 1 {
		t.Fatalf("expected 2 active and 1 completed, got %+v", st)
	}
	if st.Landlords != 2 || st.Workers != 2 {
		t.Fatalf("expected 2 landlords and 2 workers, got %+v", st)
	}

	for _, a := range []struct {
		name string
		role domain.Role
	}{{"landlord", domain.RoleLandlord}, {"worker", domain.RoleService}} {
		if _, err := svc.Stats(context.Background(), actorAs(a.role, "x")); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s: expected ErrForbidden, got %v", a.name, err)
		}
	}
}
