package access

import (
	"fmt"

	"github.com/airhost/ops/internal/core/domain"
)

// CanViewOrder: admins see everything, landlords their own orders, workers
// their assignments plus the unassigned pending pool.
func CanViewOrder(role domain.Role, userID string, o *domain.Order) bool {
	switch role {
	case domain.RoleAdmin:
		return true
	case domain.RoleLandlord:
		return o.LandlordID == userID
	case domain.RoleService:
		return o.AssignedToID == userID || inClaimPool(o)
	}
	return false
}

func inClaimPool(o *domain.Order) bool {
	return !o.IsAssigned() && o.Status == domain.StatusPending
}

// CheckClaim explains why a claim is refused, or returns nil.
// Re-claiming an order already assigned to the caller is allowed.
func CheckClaim(role domain.Role, userID string, o *domain.Order) error {
	if !Allowed(role, ResourceOrder, ActionClaim) {
		return fmt.Errorf("only service workers can claim orders: %w", domain.ErrForbidden)
	}
	if o.IsAssigned() && o.AssignedToID != userID {
		return fmt.Errorf("order already assigned: %w", domain.ErrConflict)
	}
	if o.Status == domain.StatusCompleted {
		return fmt.Errorf("order already completed: %w", domain.ErrInvalidOperation)
	}
	return nil
}

// CanClaimOrder is the boolean form of CheckClaim.
func CanClaimOrder(role domain.Role, userID string, o *domain.Order) bool {
	return CheckClaim(role, userID, o) == nil
}

// CanEditOrderDetails covers address, date and note.
func CanEditOrderDetails(role domain.Role, userID string, o *domain.Order) bool {
	return role == domain.RoleAdmin || (role == domain.RoleLandlord && o.LandlordID == userID)
}

// CheckStatusChange validates moving o to next. Admins may set any status,
// backwards included. The assigned worker may only step forward.
func CheckStatusChange(role domain.Role, userID string, o *domain.Order, next domain.OrderStatus) error {
	if !next.Valid() {
		return fmt.Errorf("unknown status %q: %w", next, domain.ErrInvalidInput)
	}
	if role == domain.RoleAdmin {
		return nil
	}
	if role != domain.RoleService || !o.IsAssigned() || o.AssignedToID != userID {
		return fmt.Errorf("only the assigned worker can change status: %w", domain.ErrForbidden)
	}
	if next != domain.StatusInProgress && next != domain.StatusCompleted {
		return fmt.Errorf("workers cannot set status %s: %w", next, domain.ErrInvalidOperation)
	}
	if !o.Status.CanAdvanceTo(next) {
		return fmt.Errorf("cannot move from %s to %s: %w", o.Status, next, domain.ErrInvalidOperation)
	}
	return nil
}

// CanDeleteOrder: admins always, owning landlords while the order is pending.
func CanDeleteOrder(role domain.Role, userID string, o *domain.Order) bool {
	if role == domain.RoleAdmin {
		return true
	}
	return role == domain.RoleLandlord && o.LandlordID == userID && o.Status == domain.StatusPending
}

// CheckAssign validates an admin handing o to worker.
func CheckAssign(role domain.Role, o *domain.Order, worker *domain.User) error {
	if !Allowed(role, ResourceOrder, ActionAssign) {
		return fmt.Errorf("only admins can assign orders: %w", domain.ErrForbidden)
	}
	if o.Status == domain.StatusCompleted {
		return fmt.Errorf("order already completed: %w", domain.ErrInvalidOperation)
	}
	if worker == nil || worker.Role == domain.RoleAdmin || !worker.CanService || !worker.IsActive {
		return fmt.Errorf("assignee must be an active service worker: %w", domain.ErrInvalidInput)
	}
	return nil
}

func CanCreateOrder(role domain.Role) bool {
	return Allowed(role, ResourceOrder, ActionCreate)
}

// OrderOwner returns the landlord a new order belongs to. Only admins may
// name a landlord other than themselves.
func OrderOwner(role domain.Role, userID, requestedLandlordID string) (string, error) {
	if !CanCreateOrder(role) {
		return "", fmt.Errorf("role %s cannot create orders: %w", role, domain.ErrForbidden)
	}
	if requestedLandlordID == "" || requestedLandlordID == userID {
		return userID, nil
	}
	if role != domain.RoleAdmin {
		return "", fmt.Errorf("cannot create orders for another landlord: %w", domain.ErrForbidden)
	}
	return requestedLandlordID, nil
}

// Scope is the list filter equivalent to CanViewOrder.
// The zero value matches every order.
type Scope struct {
	LandlordID string
	// WorkerID matches orders assigned to the worker or in the claim pool.
	WorkerID string
	// None matches nothing.
	None bool
}

func OrderScope(role domain.Role, userID string) Scope {
	switch role {
	case domain.RoleAdmin:
		return Scope{}
	case domain.RoleLandlord:
		return Scope{LandlordID: userID}
	case domain.RoleService:
		return Scope{WorkerID: userID}
	}
	return Scope{None: true}
}
