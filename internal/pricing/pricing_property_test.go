package pricing

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"options-analytics/internal/models"
)

// Property: for any valid market state, call and put prices satisfy put-call
// parity: C - P = S*e^(-qT) - K*e^(-rT) within floating tolerance.
func TestProperty_PutCallParity(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("put-call parity holds", prop.ForAll(
		func(s, k, tte, r, sigma, q float64) bool {
			call, err := Price(Inputs{S: s, K: k, T: tte, R: r, Sigma: sigma, Q: q, Right: models.Call})
			if err != nil {
				return false
			}
			put, err := Price(Inputs{S: s, K: k, T: tte, R: r, Sigma: sigma, Q: q, Right: models.Put})
			if err != nil {
				return false
			}
			want := s*math.Exp(-q*tte) - k*math.Exp(-r*tte)
			return math.Abs((call-put)-want) < 1e-6*math.Max(s, k)
		},
		gen.Float64Range(10, 500),
		gen.Float64Range(10, 500),
		gen.Float64Range(0.01, 3.0),
		gen.Float64Range(0.0, 0.15),
		gen.Float64Range(0.01, 2.0),
		gen.Float64Range(0.0, 0.05),
	))

	properties.TestingRun(t)
}

// Property: call delta stays within [0, 1] and put delta within [-1, 0] over
// the whole valid input domain, including the degenerate expiry region.
func TestProperty_DeltaBounds(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("call delta in [0,1], put delta in [-1,0]", prop.ForAll(
		func(s, k, tte, r, sigma float64) bool {
			callDelta, err := Delta(Inputs{S: s, K: k, T: tte, R: r, Sigma: sigma, Right: models.Call})
			if err != nil {
				return false
			}
			putDelta, err := Delta(Inputs{S: s, K: k, T: tte, R: r, Sigma: sigma, Right: models.Put})
			if err != nil {
				return false
			}
			return callDelta >= 0 && callDelta <= 1 && putDelta >= -1 && putDelta <= 0
		},
		gen.Float64Range(10, 500),
		gen.Float64Range(10, 500),
		gen.Float64Range(0, 3.0),
		gen.Float64Range(0.0, 0.15),
		gen.Float64Range(0, 2.0),
	))

	properties.TestingRun(t)
}

// Property: vega and gamma are non-negative everywhere; price is
// non-decreasing in volatility.
func TestProperty_VegaGammaNonNegative(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("vega >= 0 and gamma >= 0", prop.ForAll(
		func(s, k, tte, r, sigma float64) bool {
			for _, right := range []models.Right{models.Call, models.Put} {
				in := Inputs{S: s, K: k, T: tte, R: r, Sigma: sigma, Right: right}
				vega, err := Vega(in)
				if err != nil || vega < 0 {
					return false
				}
				gamma, err := Gamma(in)
				if err != nil || gamma < 0 {
					return false
				}
			}
			return true
		},
		gen.Float64Range(10, 500),
		gen.Float64Range(10, 500),
		gen.Float64Range(0, 3.0),
		gen.Float64Range(0.0, 0.15),
		gen.Float64Range(0, 2.0),
	))

	properties.Property("price non-decreasing in volatility", prop.ForAll(
		func(s, k, tte, r, sigma float64) bool {
			lo, err := Price(Inputs{S: s, K: k, T: tte, R: r, Sigma: sigma, Right: models.Call})
			if err != nil {
				return false
			}
			hi, err := Price(Inputs{S: s, K: k, T: tte, R: r, Sigma: sigma + 0.1, Right: models.Call})
			if err != nil {
				return false
			}
			return hi >= lo-1e-9
		},
		gen.Float64Range(10, 500),
		gen.Float64Range(10, 500),
		gen.Float64Range(0.01, 3.0),
		gen.Float64Range(0.0, 0.15),
		gen.Float64Range(0.01, 2.0),
	))

	properties.TestingRun(t)
}

// Property: pricing an option at a known volatility and inverting the price
// recovers that volatility within numerical tolerance.
func TestProperty_ImpliedVolatilityRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	parameters.Rng.Seed(time.Now().UnixNano())

	properties := gopter.NewProperties(parameters)

	properties.Property("iv(price(sigma)) ~= sigma", prop.ForAll(
		func(s, moneyness, tte, r, sigma float64, isCall bool) bool {
			k := s * moneyness
			right := models.Put
			if isCall {
				right = models.Call
			}

			in := Inputs{S: s, K: k, T: tte, R: r, Sigma: sigma, Right: right}
			price, err := Price(in)
			if err != nil {
				return false
			}
			// A European price below intrinsic (ITM puts under positive
			// rates) is not invertible; the solver reports it undeterminable.
			if price < Intrinsic(s, k, right) {
				return true
			}
			// Deep in/out-of-the-money low-vol options have near-zero vega;
			// the price carries almost no volatility information there and
			// the inversion is legitimately ill-conditioned.
			vega, _ := Vega(in)
			if vega < 1e-5 {
				return true
			}

			iv, err := ImpliedVolatility(price, s, k, tte, r, right, 0)
			if err != nil {
				return false
			}
			return math.Abs(iv-sigma) < 1e-3
		},
		gen.Float64Range(50, 200),
		gen.Float64Range(0.8, 1.2),
		gen.Float64Range(0.05, 2.0),
		gen.Float64Range(0.0, 0.10),
		gen.Float64Range(0.05, 2.0),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
