package pricing

import (
	"time"

	"options-analytics/internal/models"
)

// ChainIV represents the implied volatility computed for one chain quote.
type ChainIV struct {
	Strike     float64
	Right      models.Right
	MidPrice   float64
	IV         float64
	ProviderIV float64
}

// ChainImpliedVols computes per-contract implied volatility for a chain
// snapshot, pricing each quote at its bid/ask midpoint. Quotes whose IV
// cannot be determined are omitted rather than reported as errors.
func ChainImpliedVols(chain models.ChainSnapshot, riskFreeRate, dividendYield float64, asOf time.Time) []ChainIV {
	t := TimeToExpiration(chain.Expiry, asOf)
	out := make([]ChainIV, 0, len(chain.Quotes))

	for _, q := range chain.Quotes {
		mid := q.Mid()
		iv, err := ImpliedVolatility(mid, chain.SpotPrice, q.Strike, t, riskFreeRate, q.Right, dividendYield)
		if err != nil {
			continue
		}
		out = append(out, ChainIV{
			Strike:     q.Strike,
			Right:      q.Right,
			MidPrice:   mid,
			IV:         iv,
			ProviderIV: q.IV,
		})
	}
	return out
}
