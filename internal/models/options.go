package models

import "time"

// ChainSnapshot represents an option chain snapshot for a single expiry.
type ChainSnapshot struct {
	Symbol    string
	SpotPrice float64
	Expiry    time.Time
	Quotes    []ChainQuote
}

// ChainQuote represents one quoted contract in a chain snapshot.
type ChainQuote struct {
	Strike float64
	Right  Right
	Bid    float64
	Ask    float64
	Last   float64
	IV     float64 // provider-supplied implied volatility, 0 when absent
	Greeks *QuoteGreeks
}

// Mid returns the bid/ask midpoint, falling back to the last trade when the
// quote is one-sided or empty.
func (q ChainQuote) Mid() float64 {
	if q.Bid > 0 && q.Ask > 0 {
		return (q.Bid + q.Ask) / 2
	}
	return q.Last
}

// QuoteGreeks represents provider-supplied Greeks on a chain quote.
type QuoteGreeks struct {
	Delta float64
	Gamma float64
	Theta float64
	Vega  float64
	Rho   float64
}
