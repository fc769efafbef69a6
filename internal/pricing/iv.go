package pricing

import (
	"math"

	"options-analytics/internal/errors"
	"options-analytics/internal/models"
)

// Implied-volatility search bracket and convergence limits. The bracket
// covers 0.1% to 500% annualized volatility.
const (
	ivLow     = 0.001
	ivHigh    = 5.0
	ivMaxIter = 100
	ivTol     = 1e-8
)

// ImpliedVolatility solves for the volatility that reproduces marketPrice
// under the Black-Scholes model, using bisection over [0.001, 5.0].
//
// It returns ErrUndeterminableVolatility when the expiry has passed, the
// market price is non-positive or below intrinsic value, or no root is
// bracketed. Callers should treat that as "value unknown", not as a failure
// of the pricing inputs.
func ImpliedVolatility(marketPrice, s, k, t, r float64, right models.Right, q float64) (float64, error) {
	if !right.Valid() {
		return 0, errors.ErrInvalidOptionType
	}
	if t <= 0 || marketPrice <= 0 {
		return 0, errors.ErrUndeterminableVolatility
	}
	if marketPrice < Intrinsic(s, k, right) {
		return 0, errors.ErrUndeterminableVolatility
	}

	objective := func(sigma float64) float64 {
		price, _ := Price(Inputs{S: s, K: k, T: t, R: r, Sigma: sigma, Q: q, Right: right})
		return price - marketPrice
	}

	lo, hi := ivLow, ivHigh
	fLo, fHi := objective(lo), objective(hi)
	if fLo*fHi > 0 {
		// Price is monotone in volatility, so no sign change means no root
		// inside the bracket.
		return 0, errors.ErrUndeterminableVolatility
	}

	var mid float64
	for i := 0; i < ivMaxIter; i++ {
		mid = (lo + hi) / 2
		fMid := objective(mid)
		if math.Abs(fMid) < ivTol || (hi-lo)/2 < ivTol {
			break
		}
		if fLo*fMid < 0 {
			hi = mid
		} else {
			lo = mid
			fLo = fMid
		}
	}

	if mid < ivLow || mid > ivHigh || math.IsNaN(mid) {
		return 0, errors.ErrUndeterminableVolatility
	}
	return mid, nil
}
