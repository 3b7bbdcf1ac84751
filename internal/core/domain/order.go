package domain

import "time"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "PENDING"
	StatusInProgress OrderStatus = "IN_PROGRESS"
	StatusCompleted  OrderStatus = "COMPLETED"
)

// nextStatus is the forward-only progression available to workers.
var nextStatus = map[OrderStatus]OrderStatus{
	StatusPending:    StatusInProgress,
	StatusInProgress: StatusCompleted,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// CanAdvanceTo reports whether next is s itself or the single step after s.
func (s OrderStatus) CanAdvanceTo(next OrderStatus) bool {
	return s == next || nextStatus[s] == next
}

// ServiceType is the kind of work an order asks for.
type ServiceType string

const (
	ServiceCleaning    ServiceType = "CLEANING"
	ServiceKeyHandling ServiceType = "KEY_HANDLING"
)

func (t ServiceType) Valid() bool {
	return t == ServiceCleaning || t == ServiceKeyHandling
}

const MaxOrderNote = 500

// Order is a unit of work tied to a rental address.
// AssignedToID is empty while the order is unassigned.
type Order struct {
	ID           string      `json:"id"`
	Type         ServiceType `json:"type"`
	Address      string      `json:"address"`
	Date         time.Time   `json:"date"`
	Note         string      `json:"note,omitempty"`
	LandlordID   string      `json:"landlord_id"`
	AssignedToID string      `json:"assigned_to_id,omitempty"`
	Status       OrderStatus `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func (o *Order) IsAssigned() bool {
	return o.AssignedToID != ""
}
