package models

import (
	"time"

	"gorm.io/gorm"
)

// StatusChange records one status transition on an order, so staff can see
// when an order moved through the workflow and what it was before.
type StatusChange struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	OrderID    uint           `gorm:"not null;index" json:"order_id"` // foreign key to orders table
	Order      Order          `gorm:"foreignKey:OrderID" json:"-"`    // don't include full order in JSON
	FromStatus string         `gorm:"not null" json:"from_status"`
	ToStatus   string         `gorm:"not null" json:"to_status"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the StatusChange model
func (StatusChange) TableName() string {
	return "status_changes"
}
