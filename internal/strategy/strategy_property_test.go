package strategy

import (
	"sort"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"options-analytics/internal/models"
)

// Property: for any straddle strike and premiums, the expiry P&L curve yields
// breakevens that are sorted, unique, and bracketed by the price grid.
func TestProperty_BreakevensSortedUniqueInGrid(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)
	expiry := time.Date(2023, 7, 21, 0, 0, 0, 0, time.UTC)

	properties.Property("breakevens sorted, unique, inside grid", prop.ForAll(
		func(strike, callPrem, putPrem float64) bool {
			def := Straddle(strike, expiry, callPrem, putPrem, models.Long)
			grid := PriceGrid(strike, 0.5, 201)

			res, err := PnL(def, grid, 0, 0.20, 0.05)
			if err != nil {
				return false
			}
			if !sort.Float64sAreSorted(res.Breakevens) {
				return false
			}
			seen := make(map[float64]struct{}, len(res.Breakevens))
			for _, b := range res.Breakevens {
				if _, dup := seen[b]; dup {
					return false
				}
				seen[b] = struct{}{}
				if b < grid[0]-0.01 || b > grid[len(grid)-1]+0.01 {
					return false
				}
			}
			return true
		},
		gen.Float64Range(20, 500),
		gen.Float64Range(0.5, 20),
		gen.Float64Range(0.5, 20),
	))

	properties.TestingRun(t)
}
