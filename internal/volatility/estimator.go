// Package volatility implements historical-volatility estimators over daily
// candle series.
package volatility

import (
	"math"
	"time"

	"options-analytics/internal/errors"
	"options-analytics/internal/models"
)

// Method identifies a historical-volatility estimator.
type Method string

const (
	MethodSimple      Method = "simple"
	MethodEWMA        Method = "ewma"
	MethodParkinson   Method = "parkinson"
	MethodGarmanKlass Method = "garman_klass"
)

// Trading-day annualization factor and EWMA decay.
const (
	tradingDaysPerYear = 252
	ewmaLambda         = 0.94
)

// Estimate is the result of a volatility calculation.
type Estimate struct {
	Method       Method
	PeriodDays   int
	Volatility   float64 // annualized, as a fraction
	WindowStart  time.Time
	WindowEnd    time.Time
	Observations int
}

// logReturns computes consecutive log returns over a price series.
func logReturns(prices []float64) []float64 {
	if len(prices) < 2 {
		return nil
	}
	out := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		out = append(out, math.Log(prices[i]/prices[i-1]))
	}
	return out
}

// window tail-slices the series to the most recent n candles. Estimators
// assume the series is already ordered by date.
func window(candles []models.Candle, n int) []models.Candle {
	return candles[len(candles)-n:]
}

// checkWindow validates availability and, when ohlc is set, that the range
// fields needed by the high/low estimators are populated.
func checkWindow(candles []models.Candle, period int, ohlc bool) error {
	if period <= 0 {
		return errors.NewValidationError("period", period, "must be positive")
	}
	if len(candles) < period+1 {
		return errors.ErrInsufficientData
	}
	if ohlc {
		for _, c := range window(candles, period) {
			if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
				return errors.ErrInvalidInput
			}
		}
	}
	return nil
}

// Simple computes close-to-close historical volatility: the sample standard
// deviation of log returns over the window, annualized by sqrt(252).
func Simple(candles []models.Candle, period int) (Estimate, error) {
	if err := checkWindow(candles, period, false); err != nil {
		return Estimate{}, err
	}

	w := window(candles, period+1)
	returns := logReturns(models.Closes(w))
	if len(returns) < 2 {
		return Estimate{}, errors.ErrInsufficientData
	}

	annual := stdDev(returns) * math.Sqrt(tradingDaysPerYear)
	return Estimate{
		Method:       MethodSimple,
		PeriodDays:   period,
		Volatility:   annual,
		WindowStart:  w[0].Date,
		WindowEnd:    w[len(w)-1].Date,
		Observations: len(returns),
	}, nil
}

// EWMA computes exponentially-weighted volatility with decay lambda=0.94.
// The most recent return carries the largest weight; weights are normalized
// to sum to one.
func EWMA(candles []models.Candle, period int) (Estimate, error) {
	if err := checkWindow(candles, period, false); err != nil {
		return Estimate{}, err
	}

	w := window(candles, period+1)
	returns := logReturns(models.Closes(w))
	if len(returns) < 2 {
		return Estimate{}, errors.ErrInsufficientData
	}

	n := len(returns)
	weights := make([]float64, n)
	var weightSum float64
	for i := range weights {
		weights[i] = math.Pow(ewmaLambda, float64(n-1-i))
		weightSum += weights[i]
	}
	for i := range weights {
		weights[i] /= weightSum
	}

	var weightedMean float64
	for i, r := range returns {
		weightedMean += weights[i] * r
	}
	var weightedVar float64
	for i, r := range returns {
		diff := r - weightedMean
		weightedVar += weights[i] * diff * diff
	}

	return Estimate{
		Method:       MethodEWMA,
		PeriodDays:   period,
		Volatility:   math.Sqrt(weightedVar * tradingDaysPerYear),
		WindowStart:  w[0].Date,
		WindowEnd:    w[len(w)-1].Date,
		Observations: n,
	}, nil
}

// Parkinson computes the high/low range estimator:
// variance = mean(ln(H/L)^2) / (4 ln 2), annualized by 252.
func Parkinson(candles []models.Candle, period int) (Estimate, error) {
	if err := checkWindow(candles, period, true); err != nil {
		return Estimate{}, err
	}

	w := window(candles, period)
	var sumSq float64
	for _, c := range w {
		hl := math.Log(c.High / c.Low)
		sumSq += hl * hl
	}
	variance := sumSq / float64(len(w)) / (4 * math.Ln2)

	return Estimate{
		Method:       MethodParkinson,
		PeriodDays:   period,
		Volatility:   math.Sqrt(variance * tradingDaysPerYear),
		WindowStart:  w[0].Date,
		WindowEnd:    w[len(w)-1].Date,
		Observations: len(w),
	}, nil
}

// GarmanKlass computes the OHLC estimator combining the high/low range with
// an open/close correction term, annualized by 252.
func GarmanKlass(candles []models.Candle, period int) (Estimate, error) {
	if err := checkWindow(candles, period, true); err != nil {
		return Estimate{}, err
	}

	w := window(candles, period)
	var sum float64
	for _, c := range w {
		hl := math.Log(c.High / c.Low)
		oc := math.Log(c.Close / c.Open)
		sum += 0.5*hl*hl - (2*math.Ln2-1)*oc*oc
	}
	variance := sum / float64(len(w))

	// A strongly trending window can push the open/close term past the
	// range term and leave a negative variance estimate.
	if variance < 0 {
		return Estimate{}, errors.ErrInsufficientData
	}

	return Estimate{
		Method:       MethodGarmanKlass,
		PeriodDays:   period,
		Volatility:   math.Sqrt(variance * tradingDaysPerYear),
		WindowStart:  w[0].Date,
		WindowEnd:    w[len(w)-1].Date,
		Observations: len(w),
	}, nil
}

// estimatorFor maps a method to its implementation.
func estimatorFor(method Method) func([]models.Candle, int) (Estimate, error) {
	switch method {
	case MethodEWMA:
		return EWMA
	case MethodParkinson:
		return Parkinson
	case MethodGarmanKlass:
		return GarmanKlass
	default:
		return Simple
	}
}

// MultiPeriod runs one estimator across an ordered set of lookback windows.
// Periods with insufficient history are silently omitted, so the result may
// be shorter than the requested period list.
func MultiPeriod(candles []models.Candle, method Method, periods []int) []Estimate {
	estimate := estimatorFor(method)
	out := make([]Estimate, 0, len(periods))
	for _, period := range periods {
		est, err := estimate(candles, period)
		if err != nil {
			continue
		}
		out = append(out, est)
	}
	return out
}

// PercentileRank reports where current ranks against a rolling series of the
// simple estimator computed over the trailing lookback window, scaled to
// [0, 100]. It returns ErrInsufficientData when the history is shorter than
// lookback+window rows.
func PercentileRank(current float64, candles []models.Candle, lookback, window int) (float64, error) {
	if lookback <= 0 || window <= 0 {
		return 0, errors.NewValidationError("lookback/window", lookback, "must be positive")
	}
	if len(candles) < lookback+window {
		return 0, errors.ErrInsufficientData
	}

	tail := candles[len(candles)-(lookback+window):]
	var rolling []float64
	for i := window; i < len(tail); i++ {
		est, err := Simple(tail[i-window:i+1], window)
		if err != nil {
			continue
		}
		rolling = append(rolling, est.Volatility)
	}
	if len(rolling) == 0 {
		return 0, errors.ErrInsufficientData
	}

	below := 0
	for _, v := range rolling {
		if v < current {
			below++
		}
	}
	return float64(below) / float64(len(rolling)) * 100, nil
}

// stdDev computes the sample standard deviation (n-1 denominator).
func stdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var m float64
	for _, v := range values {
		m += v
	}
	m /= float64(len(values))

	var variance float64
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}
