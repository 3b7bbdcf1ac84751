package mongo

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/airhost/ops/internal/core/access"
	"github.com/airhost/ops/internal/core/domain"
)

func TestScopeFilter(t *testing.T) {
	if f := scopeFilter(access.OrderScope(domain.RoleAdmin, "a")); len(f) != 0 {
		t.Fatalf("admin filter must be empty, got %v", f)
	}

	f := scopeFilter(access.OrderScope(domain.RoleLandlord, "l1"))
	if f["landlord_id"] != "l1" || len(f) != 1 {
		t.Fatalf("unexpected landlord filter: %v", f)
	}

	f = scopeFilter(access.OrderScope(domain.RoleService, "w1"))
	or, ok := f["$or"].(bson.A)
	if !ok || len(or) != 2 {
		t.Fatalf("worker filter must be a two-branch $or, got %v", f)
	}
	if mine := or[0].(bson.M); mine["assigned_to_id"] != "w1" {
		t.Fatalf("first branch must match own assignments, got %v", mine)
	}
	if pool := or[1].(bson.M); pool["status"] != string(domain.StatusPending) {
		t.Fatalf("second branch must match the pending pool, got %v", pool)
	}
}

func TestObjectID(t *testing.T) {
	if _, err := objectID("not-hex", domain.ErrOrderNotFound); err != domain.ErrOrderNotFound {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if oid, err := objectID("65a1b2c3d4e5f60718293a4b", domain.ErrOrderNotFound); err != nil || oid.Hex() != "65a1b2c3d4e5f60718293a4b" {
		t.Fatalf("unexpected result: %v %v", oid, err)
	}
}

func TestStartWork(t *testing.T) {
	now := time.Date(2026, 11, 1, 9, 0, 0, 0, time.UTC)
	set, ok := startWork("w1", now)["$set"].(bson.M)
	if !ok {
		t.Fatal("expected a $set update")
	}
	if set["assigned_to_id"] != "w1" {
		t.Fatalf("unexpected assignee: %v", set)
	}
	if set["status"] != string(domain.StatusInProgress) {
		t.Fatalf("claim and assign must move the order to IN_PROGRESS, got %v", set["status"])
	}
	if set["updated_at"] != now {
		t.Fatalf("unexpected updated_at: %v", set["updated_at"])
	}
}
