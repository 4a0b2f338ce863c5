package models

import (
	"time"

	"gorm.io/gorm"
)

// Order status values. Orders move pending -> in_progress -> manufactured ->
// delivered; cancelled is terminal from any state.
const (
	StatusPending      = "pending"
	StatusInProgress   = "in_progress"
	StatusManufactured = "manufactured"
	StatusDelivered    = "delivered"
	StatusCancelled    = "cancelled"
)

// ValidStatuses lists every accepted order status.
var ValidStatuses = []string{
	StatusPending,
	StatusInProgress,
	StatusManufactured,
	StatusDelivered,
	StatusCancelled,
}

// IsValidStatus reports whether s is an accepted order status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// Order represents a customer order for manufactured CNC parts.
// All monetary fields are stored in EUR; Currency only selects the display
// currency and never affects stored amounts.
type Order struct {
	ID           uint           `gorm:"primaryKey" json:"-"`
	PublicID     string         `gorm:"uniqueIndex;not null" json:"id"` // external order reference
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Phone        string         `json:"phone"`
	Country      string         `json:"country"`
	City         string         `json:"city"`
	Street       string         `json:"street"`
	Currency     string         `gorm:"not null;default:'EUR'" json:"currency"` // ISO 4217 display currency
	TotalAmount  float64        `json:"total_amount"`                           // EUR
	ShippingCost float64        `json:"shipping_cost"`                          // EUR
	VATRate      float64        `json:"vat_rate"`                               // percent
	Status       string         `gorm:"not null;default:'pending'" json:"status"`
	Finalized    bool           `gorm:"not null;default:false" json:"finalized"`
	LineItems    []LineItem     `gorm:"foreignKey:OrderID" json:"material_details"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// DisplayCurrency returns the order's display currency, defaulting to EUR
// for legacy records that predate the currency column.
func (o *Order) DisplayCurrency() string {
	if o.Currency == "" {
		return "EUR"
	}
	return o.Currency
}
