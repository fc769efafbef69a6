package pricing

import (
	"math"
	"time"

	"options-analytics/internal/errors"
	"options-analytics/internal/models"
)

const sqrt2Pi = 2.5066282746310002

// normCDF is the cumulative standard normal distribution function.
func normCDF(x float64) float64 {
	return 0.5 * math.Erfc(-x/math.Sqrt2)
}

// normPDF is the standard normal density function.
func normPDF(x float64) float64 {
	return math.Exp(-0.5*x*x) / sqrt2Pi
}

// d1 and d2 are the standard Black-Scholes auxiliary terms. Both return 0 in
// the degenerate T<=0 or sigma<=0 region, matching the piecewise handling in
// the pricing functions.
func d1(in Inputs) float64 {
	if in.T <= 0 || in.Sigma <= 0 {
		return 0
	}
	return (math.Log(in.S/in.K) + (in.R-in.Q+0.5*in.Sigma*in.Sigma)*in.T) /
		(in.Sigma * math.Sqrt(in.T))
}

func d2(in Inputs) float64 {
	if in.T <= 0 || in.Sigma <= 0 {
		return 0
	}
	return d1(in) - in.Sigma*math.Sqrt(in.T)
}

// Intrinsic returns the exercise value of the option at spot S.
func Intrinsic(s, k float64, right models.Right) float64 {
	if right == models.Call {
		return math.Max(s-k, 0)
	}
	return math.Max(k-s, 0)
}

// Price computes the Black-Scholes price of a European option with continuous
// dividend yield. At T<=0 it returns intrinsic value. For sigma<=0 with T>0
// it returns 0, not the discounted-intrinsic limit the model implies as
// sigma->0; callers that need a lower bound should price at a small positive
// sigma instead.
func Price(in Inputs) (float64, error) {
	if !in.Right.Valid() {
		return 0, errors.ErrInvalidOptionType
	}
	if in.T <= 0 {
		return Intrinsic(in.S, in.K, in.Right), nil
	}
	if in.Sigma <= 0 {
		return 0, nil
	}

	nd1, nd2 := d1(in), d2(in)
	var price float64
	switch in.Right {
	case models.Call:
		price = in.S*math.Exp(-in.Q*in.T)*normCDF(nd1) -
			in.K*math.Exp(-in.R*in.T)*normCDF(nd2)
	case models.Put:
		price = in.K*math.Exp(-in.R*in.T)*normCDF(-nd2) -
			in.S*math.Exp(-in.Q*in.T)*normCDF(-nd1)
	}
	return math.Max(price, 0), nil
}

// Delta computes the option's price sensitivity to the underlying. In the
// degenerate region it collapses to {0,1} for calls and {0,-1} for puts based
// on moneyness.
func Delta(in Inputs) (float64, error) {
	if !in.Right.Valid() {
		return 0, errors.ErrInvalidOptionType
	}
	if in.T <= 0 || in.Sigma <= 0 {
		if in.Right == models.Call {
			if in.S > in.K {
				return 1, nil
			}
			return 0, nil
		}
		if in.S < in.K {
			return -1, nil
		}
		return 0, nil
	}

	if in.Right == models.Call {
		return math.Exp(-in.Q*in.T) * normCDF(d1(in)), nil
	}
	return -math.Exp(-in.Q*in.T) * normCDF(-d1(in)), nil
}

// Gamma computes the delta sensitivity to the underlying. Gamma is identical
// for calls and puts.
func Gamma(in Inputs) (float64, error) {
	if !in.Right.Valid() {
		return 0, errors.ErrInvalidOptionType
	}
	if in.T <= 0 || in.Sigma <= 0 {
		return 0, nil
	}
	return math.Exp(-in.Q*in.T) * normPDF(d1(in)) /
		(in.S * in.Sigma * math.Sqrt(in.T)), nil
}

// Theta computes time decay per calendar day.
func Theta(in Inputs) (float64, error) {
	if !in.Right.Valid() {
		return 0, errors.ErrInvalidOptionType
	}
	if in.T <= 0 || in.Sigma <= 0 {
		return 0, nil
	}

	nd1, nd2 := d1(in), d2(in)
	term1 := -in.S * math.Exp(-in.Q*in.T) * normPDF(nd1) * in.Sigma /
		(2 * math.Sqrt(in.T))

	var term2, term3 float64
	switch in.Right {
	case models.Call:
		term2 = -in.R * in.K * math.Exp(-in.R*in.T) * normCDF(nd2)
		term3 = in.Q * in.S * math.Exp(-in.Q*in.T) * normCDF(nd1)
	case models.Put:
		term2 = in.R * in.K * math.Exp(-in.R*in.T) * normCDF(-nd2)
		term3 = -in.Q * in.S * math.Exp(-in.Q*in.T) * normCDF(-nd1)
	}
	return (term1 + term2 + term3) / 365.0, nil
}

// Vega computes the price sensitivity per 0.01 absolute move in volatility.
// Vega is identical for calls and puts.
func Vega(in Inputs) (float64, error) {
	if !in.Right.Valid() {
		return 0, errors.ErrInvalidOptionType
	}
	if in.T <= 0 || in.Sigma <= 0 {
		return 0, nil
	}
	return in.S * math.Exp(-in.Q*in.T) * normPDF(d1(in)) * math.Sqrt(in.T) / 100.0, nil
}

// Rho computes the price sensitivity per 0.01 absolute move in the risk-free
// rate.
func Rho(in Inputs) (float64, error) {
	if !in.Right.Valid() {
		return 0, errors.ErrInvalidOptionType
	}
	if in.T <= 0 || in.Sigma <= 0 {
		return 0, nil
	}

	nd2 := d2(in)
	if in.Right == models.Call {
		return in.K * in.T * math.Exp(-in.R*in.T) * normCDF(nd2) / 100.0, nil
	}
	return -in.K * in.T * math.Exp(-in.R*in.T) * normCDF(-nd2) / 100.0, nil
}

// Compute calculates the price and all Greeks in one call.
func Compute(in Inputs) (Greeks, error) {
	if err := in.Validate(); err != nil {
		return Greeks{}, err
	}

	price, _ := Price(in)
	delta, _ := Delta(in)
	gamma, _ := Gamma(in)
	theta, _ := Theta(in)
	vega, _ := Vega(in)
	rho, _ := Rho(in)

	return Greeks{
		Price: price,
		Delta: delta,
		Gamma: gamma,
		Theta: theta,
		Vega:  vega,
		Rho:   rho,
	}, nil
}

// TimeToExpiration returns the time between asOf and the expiration date in
// years, counting whole calendar days over 365 and floored at zero. Partial
// days do not count, so an intraday asOf prices like the prior midnight's
// remaining day count.
func TimeToExpiration(expiration, asOf time.Time) float64 {
	days := math.Floor(expiration.Sub(asOf).Hours() / 24)
	return math.Max(days/365.0, 0)
}
