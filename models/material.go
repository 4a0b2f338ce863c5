package models

import (
	"time"

	"gorm.io/gorm"
)

// Material represents an editable material/pricing record: the cost
// coefficients applied when quoting a part cut from this material at this
// thickness. All costs are in EUR.
type Material struct {
	ID         uint           `gorm:"primaryKey" json:"-"`
	PublicID   string         `gorm:"uniqueIndex;not null" json:"id"`
	Name       string         `gorm:"not null" json:"material"`
	Thickness  float64        `json:"thickness"`   // mm
	SetupPrice float64        `json:"setup_price"` // EUR per line
	CostFactor float64        `json:"cost_factor"` // EUR per meter of cut
	LoopCost   float64        `json:"loop_cost"`   // EUR per closed loop
	CostPerM2  float64        `json:"cost_per_m2"` // EUR per m²
	// No gorm default here: a column default would win over an explicit
	// false, since gorm omits zero values carrying a default tag from the
	// INSERT. CreateMaterial applies the true default instead.
	Stock      bool           `gorm:"not null" json:"stock"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Material model
func (Material) TableName() string {
	return "materials"
}
