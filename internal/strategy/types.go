// Package strategy provides multi-leg option strategy construction, P&L
// curves and net Greeks.
package strategy

import (
	"time"

	"options-analytics/internal/models"
)

// OptionLeg is a single option position inside a strategy. Quantity is in
// contracts of 100 underlying shares; Premium is the per-share premium paid
// or received, 0 when unknown.
type OptionLeg struct {
	Right      models.Right
	Position   models.PositionSide
	Strike     float64
	Expiration time.Time
	Quantity   int
	Premium    float64
}

// StockLeg is a share position inside a strategy. Quantity is in shares.
type StockLeg struct {
	Position   models.PositionSide
	Quantity   int
	EntryPrice float64
}

// Definition is a complete, immutable strategy template. Backtesting
// resolves strikes into derived copies; a template's legs are never mutated
// after construction.
type Definition struct {
	Name        string
	Type        string
	OptionLegs  []OptionLeg
	StockLegs   []StockLeg
	Description string
	Created     time.Time
}

// NearestExpiration returns the earliest option-leg expiration, or the zero
// time when the strategy holds no option legs.
func (d Definition) NearestExpiration() time.Time {
	var nearest time.Time
	for _, leg := range d.OptionLegs {
		if nearest.IsZero() || leg.Expiration.Before(nearest) {
			nearest = leg.Expiration
		}
	}
	return nearest
}

// TotalContracts returns the total option contract count across legs,
// counting short legs positively.
func (d Definition) TotalContracts() int {
	total := 0
	for _, leg := range d.OptionLegs {
		q := leg.Quantity
		if q < 0 {
			q = -q
		}
		total += q
	}
	return total
}

// PnLResult holds a strategy P&L curve evaluated over a price grid.
// Breakevens are sorted, deduplicated to cent precision.
type PnLResult struct {
	Prices     []float64
	Values     []float64
	MaxProfit  float64
	MaxLoss    float64
	Breakevens []float64
}

// Greeks holds net strategy sensitivities, scaled to position size (per-leg
// Greeks times quantity times 100, stock legs contributing share delta).
type Greeks struct {
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}
