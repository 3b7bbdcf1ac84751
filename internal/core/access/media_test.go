package access

import (
	"testing"

	"github.com/airhost/ops/internal/core/domain"
)

func TestCanViewOrderMedia(t *testing.T) {
	pool := order(domain.StatusPending, "")
	assigned := order(domain.StatusInProgress, workerID)

	if CanViewOrderMedia(domain.RoleService, workerID, pool) {
		t.Fatalf("claim pool must not expose media")
	}
	if !CanViewOrder(domain.RoleService, workerID, pool) {
		t.Fatalf("claim pool should still be visible as an order")
	}
	if !CanViewOrderMedia(domain.RoleService, workerID, assigned) {
		t.Fatalf("assignee should see media")
	}
	if !CanViewOrderMedia(domain.RoleLandlord, landlordID, assigned) {
		t.Fatalf("owner should see media")
	}
	if CanViewOrderMedia(domain.RoleLandlord, otherID, assigned) {
		t.Fatalf("foreign landlord must not see media")
	}
	if !CanViewOrderMedia(domain.RoleAdmin, otherID, pool) {
		t.Fatalf("admin should see media")
	}
}

func TestCanUploadImage(t *testing.T) {
	assigned := order(domain.StatusInProgress, workerID)

	tests := []struct {
		name   string
		role   domain.Role
		userID string
		want   bool
	}{
		{"assignee", domain.RoleService, workerID, true},
		{"other worker", domain.RoleService, otherID, false},
		{"owner landlord", domain.RoleLandlord, landlordID, false},
		{"admin", domain.RoleAdmin, otherID, true},
	}
	for _, tt := range tests {
		if got := CanUploadImage(tt.role, tt.userID, assigned); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
	if CanUploadImage(domain.RoleService, "", order(domain.StatusPending, "")) {
		t.Fatalf("empty id must not match an unassigned order")
	}
}

func TestCanEditImageAndComment(t *testing.T) {
	img := &domain.Image{UploadedByID: workerID}
	c := &domain.Comment{UserID: landlordID}

	if !CanEditImage(domain.RoleService, workerID, img) || CanEditImage(domain.RoleLandlord, landlordID, img) {
		t.Fatalf("image ownership rule broken")
	}
	if !CanEditImage(domain.RoleAdmin, "admin", img) {
		t.Fatalf("admin should edit any image")
	}
	if !CanEditComment(domain.RoleLandlord, landlordID, c) || CanEditComment(domain.RoleService, workerID, c) {
		t.Fatalf("comment ownership rule broken")
	}
	if !CanEditComment(domain.RoleAdmin, "admin", c) {
		t.Fatalf("admin should edit any comment")
	}
}
