package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is written in the same transaction as its booking. Amount equals
// the booking's total cost at creation; there are no partial payments.
type Payment struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	BookingID uint            `gorm:"uniqueIndex;column:booking_id" json:"booking_id"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
