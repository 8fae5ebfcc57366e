package models

// Location is static reference data keyed by postal code.
type Location struct {
	PostalCode string `gorm:"primaryKey;size:10;column:postal_code" json:"postal_code"`
	City       string `gorm:"size:100;index" json:"city"`
	Area       string `gorm:"size:100" json:"area"`
}
