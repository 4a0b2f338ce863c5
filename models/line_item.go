package models

import (
	"time"

	"gorm.io/gorm"
)

// LineItem represents one manufactured piece within an order: the raw
// geometry extracted from the customer's drawing plus the price-rate record
// that was applied to it. All monetary fields are stored in EUR.
//
// PricePerUnit and TotalPrice are computed upstream by the quoting pipeline
// and are passed through for display; they are not re-derived from the
// geometry here.
type LineItem struct {
	ID      uint  `gorm:"primaryKey" json:"-"`
	OrderID uint  `gorm:"not null;index" json:"-"` // foreign key to orders table
	Order   Order `gorm:"foreignKey:OrderID" json:"-"`

	// Geometry
	MaterialName      string  `json:"material_name"`
	Width             float64 `json:"width"`               // mm
	Height            float64 `json:"height"`              // mm
	SurfaceArea       float64 `json:"surface_area"`        // mm²
	CuttingLineLength float64 `json:"cutting_line_length"` // mm
	ClosedLoopCount   int     `json:"closed_loop_count"`
	// Quantity must be at least 1; legacy records that predate that rule can
	// still hold zero, which the pricing layer reports as an explicit error
	Quantity int `gorm:"not null" json:"quantity"`

	// Rate record
	Thickness          float64 `json:"thickness"`           // mm
	CostPerSquareMeter float64 `json:"cost_per_m2"`         // EUR per m²
	CuttingCostFactor  float64 `json:"cutting_cost_factor"` // EUR per meter of cut
	CostPerLoop        float64 `json:"cost_per_loop"`       // EUR per closed loop
	SetupPrice         float64 `json:"setup_price"`         // EUR, per line, split across quantity
	PricePerUnit       float64 `json:"price_per_unit"`      // EUR, precomputed upstream
	TotalPrice         float64 `json:"total_price"`         // EUR, precomputed upstream

	PreviewKey *string `json:"preview_key"`                  // nullable, storage key for the preview SVG
	PreviewURL *string `gorm:"-" json:"preview_url,omitempty"` // computed field, resolved URL for the preview

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the LineItem model
func (LineItem) TableName() string {
	return "line_items"
}
