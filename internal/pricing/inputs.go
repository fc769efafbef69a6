// Package pricing implements closed-form Black-Scholes valuation, Greeks and
// implied-volatility inversion for European options.
package pricing

import (
	"fmt"
	"hash/fnv"

	"options-analytics/internal/errors"
	"options-analytics/internal/models"
)

// Inputs holds the parameters for a single option valuation. It is an
// immutable value type constructed per call.
type Inputs struct {
	S     float64 // spot price
	K     float64 // strike price
	T     float64 // time to expiration in years
	R     float64 // risk-free rate (annual)
	Sigma float64 // volatility (annual)
	Q     float64 // dividend yield (annual)
	Right models.Right
}

// Validate checks the inputs against the valid pricing domain.
func (in Inputs) Validate() error {
	if in.S <= 0 {
		return errors.NewValidationError("spot", in.S, "must be positive")
	}
	if in.K <= 0 {
		return errors.NewValidationError("strike", in.K, "must be positive")
	}
	if in.T < 0 {
		return errors.NewValidationError("time_to_expiry", in.T, "must be non-negative")
	}
	if in.Sigma < 0 {
		return errors.NewValidationError("volatility", in.Sigma, "must be non-negative")
	}
	if in.Q < 0 {
		return errors.NewValidationError("dividend_yield", in.Q, "must be non-negative")
	}
	if !in.Right.Valid() {
		return errors.ErrInvalidOptionType
	}
	return nil
}

// Key returns a stable hash of the normalized inputs, suitable as a cache key
// for caller-owned memoization of pricing results.
func (in Inputs) Key() uint64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%.10f|%.10f|%.10f|%.10f|%.10f|%.10f|%s",
		in.S, in.K, in.T, in.R, in.Sigma, in.Q, in.Right)
	return h.Sum64()
}

// Greeks holds an option price together with its first- and second-order
// sensitivities. Theta is per calendar day; vega is per 1% absolute move in
// volatility; rho is per 1% absolute move in the risk-free rate.
type Greeks struct {
	Price float64
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}
