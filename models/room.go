package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Room struct {
	gorm.Model

	Price       decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Description string          `gorm:"type:text" json:"description"`
	ImageURL    string          `gorm:"size:512;column:image_url" json:"image_url,omitempty"`

	// Nullable so a room without a known location doesn't insert an empty FK.
	PostalCode *string `gorm:"size:10;column:postal_code" json:"postal_code,omitempty"`
	AdminID    uint    `gorm:"index;column:admin_id" json:"admin_id"`

	Location Location `gorm:"foreignKey:PostalCode;references:PostalCode" json:"location,omitempty"`
}
