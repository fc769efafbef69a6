package strategy

import (
	"options-analytics/internal/pricing"
)

// NetGreeks aggregates position-scaled Greeks across all legs: each option
// leg contributes its single-option Greeks times +/-quantity times 100, and
// each stock leg contributes +/-quantity to delta only.
func NetGreeks(def Definition, spot, timeToExpiry, sigma, riskFreeRate float64) (Greeks, error) {
	var total Greeks

	for _, leg := range def.OptionLegs {
		in := pricing.Inputs{
			S: spot, K: leg.Strike, T: timeToExpiry,
			R: riskFreeRate, Sigma: sigma, Right: leg.Right,
		}
		g, err := pricing.Compute(in)
		if err != nil {
			return Greeks{}, err
		}

		multiplier := float64(leg.Quantity) * leg.Position.Sign() * 100
		total.Delta += g.Delta * multiplier
		total.Gamma += g.Gamma * multiplier
		total.Theta += g.Theta * multiplier
		total.Vega += g.Vega * multiplier
		total.Rho += g.Rho * multiplier
	}

	for _, leg := range def.StockLegs {
		total.Delta += float64(leg.Quantity) * leg.Position.Sign()
	}

	return total, nil
}
