package backtest

import (
	"math"
)

// aggregate computes performance metrics over the closed trades. Zero trades
// produces a fully zero-valued result with an empty, non-nil trade slice.
func aggregate(trades []TradeResult, config Config) *Result {
	if trades == nil {
		trades = []TradeResult{}
	}
	result := &Result{
		Config: config,
		Trades: trades,
	}
	if len(trades) == 0 {
		return result
	}

	var (
		totalPnL    float64
		totalCost   float64
		wins        []float64
		losses      []float64
		commissions float64
	)
	for _, t := range trades {
		totalPnL += t.PnL
		totalCost += math.Abs(t.StrategyCost)
		commissions += t.Commission
		if t.PnL > 0 {
			wins = append(wins, t.PnL)
		} else if t.PnL < 0 {
			losses = append(losses, t.PnL)
		}
	}

	result.WinRate = float64(len(wins)) / float64(len(trades))
	result.AvgWin = mean(wins)
	result.AvgLoss = mean(losses)
	result.TotalCommissions = commissions
	result.MaxDrawdown = maxDrawdown(trades)
	result.SharpeRatio = sharpeRatio(trades)

	totalWins := sum(wins)
	totalLosses := math.Abs(sum(losses))
	if totalLosses > 0 {
		result.ProfitFactor = totalWins / totalLosses
	} else {
		result.ProfitFactor = math.Inf(1)
	}

	avgCapital := totalCost / float64(len(trades))
	if avgCapital > 0 {
		result.TotalReturn = totalPnL / avgCapital * 100
	}

	return result
}

// maxDrawdown is the minimum of cumulative P&L minus its running maximum,
// reported as a non-positive dollar amount.
func maxDrawdown(trades []TradeResult) float64 {
	var cumulative, runningMax, worst float64
	for _, t := range trades {
		cumulative += t.PnL
		runningMax = math.Max(runningMax, cumulative)
		worst = math.Min(worst, cumulative-runningMax)
	}
	return worst
}

// sharpeRatio annualizes the mean percentage return per trade by the
// trade frequency implied by the average holding period. It is 0 whenever
// the ratio is undefined: fewer than two trades, zero return dispersion, or
// a zero average holding period.
func sharpeRatio(trades []TradeResult) float64 {
	if len(trades) < 2 {
		return 0
	}

	returns := make([]float64, len(trades))
	var totalDays float64
	for i, t := range trades {
		returns[i] = t.PnLPercent
		totalDays += float64(t.DaysHeld)
	}

	meanDays := totalDays / float64(len(trades))
	if meanDays <= 0 {
		return 0
	}
	std := stdDev(returns)
	if std == 0 {
		return 0
	}

	tradesPerYear := 365.0 / meanDays
	return mean(returns) * math.Sqrt(tradesPerYear) / std
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var variance float64
	for _, v := range values {
		diff := v - m
		variance += diff * diff
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}
