package services

import (
	"github.com/flusk-cnc/flusk-admin-api/models"
)

// CostBreakdown holds the per-component costs derived from one line item's
// geometry and rate record. Every value is in EUR and unrounded; rounding to
// two decimals happens only when amounts are formatted for display, so
// repeated recomputation never compounds rounding error.
type CostBreakdown struct {
	SurfaceCost      float64 `json:"surface_cost"`
	CuttingCost      float64 `json:"cutting_cost"`
	LoopCost         float64 `json:"loop_cost"`
	SetupCostPerUnit float64 `json:"setup_cost_per_unit"`
	PricePerUnit     float64 `json:"price_per_unit"`
	TotalPrice       float64 `json:"total_price"`
}

// PricingError represents a pricing computation error
type PricingError struct {
	Code    string
	Message string
}

func (e *PricingError) Error() string {
	return e.Message
}

// ErrZeroQuantity is returned when a line item's setup cost cannot be split
// because its quantity is zero. Quantity must be at least 1; legacy records
// that violate this surface the error instead of an Inf/NaN cost.
var ErrZeroQuantity = &PricingError{
	Code:    "ZERO_QUANTITY",
	Message: "line item quantity must be at least 1",
}

// SurfaceCost returns the material cost of the piece's surface. Surface area
// is stored in mm² and the rate in EUR per m².
func SurfaceCost(item *models.LineItem) float64 {
	return (item.SurfaceArea / 1_000_000) * item.CostPerSquareMeter
}

// CuttingCost returns the cost of the cutting line. Length is stored in mm
// and the rate in EUR per meter.
func CuttingCost(item *models.LineItem) float64 {
	return (item.CuttingLineLength / 1000) * item.CuttingCostFactor
}

// LoopCost returns the cost of piercing the piece's closed loops.
func LoopCost(item *models.LineItem) float64 {
	return float64(item.ClosedLoopCount) * item.CostPerLoop
}

// SetupCostPerUnit returns the line's setup price split across its quantity.
// Returns ErrZeroQuantity when quantity is zero.
func SetupCostPerUnit(item *models.LineItem) (float64, error) {
	if item.Quantity == 0 {
		return 0, ErrZeroQuantity
	}
	return item.SetupPrice / float64(item.Quantity), nil
}

// ComputeBreakdown derives the full cost breakdown for one line item.
// PricePerUnit and TotalPrice are taken from the stored rate record as-is;
// the quoting pipeline computed them upstream and this layer only displays
// them. Partially populated items (mid-edit, legacy records) compute to
// zero-valued components rather than failing; only a zero quantity is an
// error.
func ComputeBreakdown(item *models.LineItem) (*CostBreakdown, error) {
	setupPerUnit, err := SetupCostPerUnit(item)
	if err != nil {
		return nil, err
	}

	return &CostBreakdown{
		SurfaceCost:      SurfaceCost(item),
		CuttingCost:      CuttingCost(item),
		LoopCost:         LoopCost(item),
		SetupCostPerUnit: setupPerUnit,
		PricePerUnit:     item.PricePerUnit,
		TotalPrice:       item.TotalPrice,
	}, nil
}
