// Package models provides domain models shared across the analytics engine.
package models

import (
	"time"
)

// Right represents whether an option is a call or a put.
type Right string

const (
	Call Right = "call"
	Put  Right = "put"
)

// Valid reports whether the right is one of the two known values.
func (r Right) Valid() bool {
	return r == Call || r == Put
}

// PositionSide represents the direction of a position.
type PositionSide string

const (
	Long  PositionSide = "long"
	Short PositionSide = "short"
)

// Valid reports whether the side is one of the two known values.
func (p PositionSide) Valid() bool {
	return p == Long || p == Short
}

// Sign returns +1 for long positions and -1 for short positions.
func (p PositionSide) Sign() float64 {
	if p == Short {
		return -1
	}
	return 1
}

// Candle represents daily OHLCV data for one trading date.
type Candle struct {
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// SameDay reports whether the candle falls on the given calendar date.
func (c Candle) SameDay(t time.Time) bool {
	y1, m1, d1 := c.Date.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Closes extracts the close prices from a candle series.
func Closes(candles []Candle) []float64 {
	out := make([]float64, len(candles))
	for i, c := range candles {
		out[i] = c.Close
	}
	return out
}
