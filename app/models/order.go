package models

import "gorm.io/gorm"

// Order lifecycle states. Orders start pending; the shop moves them
// through the rest. delivered and cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// UpdatableStatuses are the values the shop may set on an existing order.
// pending is only ever assigned at creation.
var UpdatableStatuses = []string{StatusPreparing, StatusReady, StatusDelivered, StatusCancelled}

// QueueStatuses are the non-terminal states shown in the fulfillment queue.
var QueueStatuses = []string{StatusPending, StatusPreparing, StatusReady}

// Order is a purchase request placed by a client for campus delivery.
type Order struct {
	gorm.Model
	UserID    uint    `gorm:"not null;index" json:"user_id"`
	ShopID    uint    `gorm:"not null;index" json:"shop_id"`
	Total     float64 `gorm:"not null" json:"total"`
	Status    string  `gorm:"size:20;not null;default:pending;index" json:"status"`
	Building  string  `gorm:"size:100;not null" json:"building"`
	Classroom string  `gorm:"size:50;not null" json:"classroom"`
	Notes     string  `gorm:"type:text" json:"notes,omitempty"`
}

// IsValidStatusUpdate reports whether s is an allowed target status.
func IsValidStatusUpdate(s string) bool {
	for _, v := range UpdatableStatuses {
		if v == s {
			return true
		}
	}
	return false
}
