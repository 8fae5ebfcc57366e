package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Booking statuses. A booking always starts out Pending; Cancelled and
// Completed are terminal.
const (
	StatusPending   = "Pending"
	StatusConfirmed = "Confirmed"
	StatusCancelled = "Cancelled"
	StatusCompleted = "Completed"
)

// allowedTransitions is the enforced lifecycle graph.
var allowedTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// ValidStatus reports whether s is one of the four booking statuses.
func ValidStatus(s string) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether a booking may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsActiveStatus reports whether a booking in this status counts toward
// availability conflicts.
func IsActiveStatus(s string) bool {
	return s == StatusPending || s == StatusConfirmed
}

type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UserID        uint   `gorm:"index;column:user_id" json:"user_id"`
	RoomID        uint   `gorm:"index;column:room_id" json:"room_id"`
	ReferenceCode string `gorm:"uniqueIndex;size:64;column:reference_code" json:"reference_code"`

	// Date range is immutable after creation; there is no reschedule operation.
	CheckInDate  datatypes.Date `gorm:"index;column:check_in_date" json:"check_in_date"`
	CheckOutDate datatypes.Date `gorm:"column:check_out_date" json:"check_out_date"`

	TotalCost decimal.Decimal `gorm:"type:decimal(10,2);column:total_cost" json:"total_cost"`
	Status    string          `gorm:"index;size:32" json:"status"`

	User    User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Room    Room     `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	Payment *Payment `gorm:"foreignKey:BookingID" json:"payment,omitempty"`
}
