package strategy

import (
	"math"
	"sort"

	"options-analytics/internal/errors"
	"options-analytics/internal/models"
	"options-analytics/internal/pricing"
)

// breakevenTolerance is the absolute P&L band treated as a zero crossing
// when scanning the curve.
const breakevenTolerance = 0.01

// OptionLegPnL evaluates a single option leg's P&L at each grid price. At
// expiry the leg is settled at intrinsic value; before expiry it is repriced
// with Black-Scholes. Long legs earn (value - premium), short legs earn
// (premium - value), scaled by quantity and the 100-share multiplier.
func OptionLegPnL(leg OptionLeg, prices []float64, timeToExpiry, sigma, riskFreeRate float64) ([]float64, error) {
	if !leg.Right.Valid() {
		return nil, errors.ErrInvalidOptionType
	}

	pnl := make([]float64, len(prices))
	for i, s := range prices {
		var value float64
		if timeToExpiry <= 0 {
			value = pricing.Intrinsic(s, leg.Strike, leg.Right)
		} else {
			var err error
			value, err = pricing.Price(pricing.Inputs{
				S: s, K: leg.Strike, T: timeToExpiry,
				R: riskFreeRate, Sigma: sigma, Right: leg.Right,
			})
			if err != nil {
				return nil, err
			}
		}

		perShare := value - leg.Premium
		if leg.Position == models.Short {
			perShare = leg.Premium - value
		}
		pnl[i] = perShare * float64(leg.Quantity) * 100
	}
	return pnl, nil
}

// StockLegPnL evaluates a stock leg's linear P&L at each grid price.
func StockLegPnL(leg StockLeg, prices []float64) []float64 {
	pnl := make([]float64, len(prices))
	for i, s := range prices {
		pnl[i] = (s - leg.EntryPrice) * float64(leg.Quantity) * leg.Position.Sign()
	}
	return pnl
}

// PnL computes the total strategy P&L curve over the price grid, along with
// max profit/loss and breakeven points. The result is recomputed per call and
// never cached.
func PnL(def Definition, prices []float64, timeToExpiry, sigma, riskFreeRate float64) (PnLResult, error) {
	total := make([]float64, len(prices))

	for _, leg := range def.OptionLegs {
		legPnL, err := OptionLegPnL(leg, prices, timeToExpiry, sigma, riskFreeRate)
		if err != nil {
			return PnLResult{}, err
		}
		for i := range total {
			total[i] += legPnL[i]
		}
	}
	for _, leg := range def.StockLegs {
		legPnL := StockLegPnL(leg, prices)
		for i := range total {
			total[i] += legPnL[i]
		}
	}

	maxProfit := math.Inf(-1)
	maxLoss := math.Inf(1)
	for _, v := range total {
		maxProfit = math.Max(maxProfit, v)
		maxLoss = math.Min(maxLoss, v)
	}
	if len(total) == 0 {
		maxProfit, maxLoss = 0, 0
	}

	return PnLResult{
		Prices:     prices,
		Values:     total,
		MaxProfit:  maxProfit,
		MaxLoss:    maxLoss,
		Breakevens: findBreakevens(prices, total, breakevenTolerance),
	}, nil
}

// Value computes the current market value of the strategy at a single
// underlying price: option legs at model value signed by position, stock
// legs at their running P&L. Leg premiums are ignored; this is the quantity
// the backtester compares against entry cost.
func Value(def Definition, price, timeToExpiry, sigma, riskFreeRate float64) (float64, error) {
	stripped := Definition{
		Name:       def.Name,
		Type:       def.Type,
		OptionLegs: make([]OptionLeg, len(def.OptionLegs)),
		StockLegs:  def.StockLegs,
	}
	for i, leg := range def.OptionLegs {
		leg.Premium = 0
		stripped.OptionLegs[i] = leg
	}

	res, err := PnL(stripped, []float64{price}, timeToExpiry, sigma, riskFreeRate)
	if err != nil {
		return 0, err
	}
	return res.Values[0], nil
}

// NetCost computes the net premium of entering the strategy at the given
// market state: positive for a net debit, negative for a net credit. Stock
// legs are excluded; only option premium flows are counted.
func NetCost(def Definition, price, timeToExpiry, sigma, riskFreeRate float64) (float64, error) {
	var total float64
	for _, leg := range def.OptionLegs {
		value, err := pricing.Price(pricing.Inputs{
			S: price, K: leg.Strike, T: timeToExpiry,
			R: riskFreeRate, Sigma: sigma, Right: leg.Right,
		})
		if err != nil {
			return 0, err
		}
		total += value * float64(leg.Quantity) * 100 * leg.Position.Sign()
	}
	return total, nil
}

// findBreakevens scans consecutive grid pairs for zero crossings of the P&L
// curve and linearly interpolates the crossing price. Results are rounded to
// cent precision, deduplicated and sorted ascending.
func findBreakevens(prices, pnl []float64, tolerance float64) []float64 {
	seen := make(map[float64]struct{})
	var breakevens []float64

	for i := 0; i+1 < len(pnl); i++ {
		crossesUp := pnl[i] <= tolerance && pnl[i+1] >= -tolerance
		crossesDown := pnl[i] >= -tolerance && pnl[i+1] <= tolerance
		if !crossesUp && !crossesDown {
			continue
		}
		slope := pnl[i+1] - pnl[i]
		if math.Abs(slope) <= 1e-10 {
			continue
		}
		ratio := -pnl[i] / slope
		price := prices[i] + ratio*(prices[i+1]-prices[i])
		rounded := math.Round(price*100) / 100
		if _, ok := seen[rounded]; ok {
			continue
		}
		seen[rounded] = struct{}{}
		breakevens = append(breakevens, rounded)
	}

	sort.Float64s(breakevens)
	return breakevens
}

// PriceGrid builds an evenly spaced grid of underlying prices centered on
// spot, spanning +/- widthPct on either side.
func PriceGrid(spot, widthPct float64, steps int) []float64 {
	if steps < 2 {
		steps = 2
	}
	lo := spot * (1 - widthPct)
	hi := spot * (1 + widthPct)
	step := (hi - lo) / float64(steps-1)

	grid := make([]float64, steps)
	for i := range grid {
		grid[i] = lo + float64(i)*step
	}
	return grid
}
