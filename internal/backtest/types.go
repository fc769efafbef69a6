// Package backtest implements walk-forward simulation of option strategies
// over historical daily candles.
package backtest

import (
	"time"
)

// ExitReason identifies which condition closed a simulated trade.
type ExitReason string

const (
	ExitExpiration   ExitReason = "expiration"
	ExitProfitTarget ExitReason = "profit_target"
	ExitStopLoss     ExitReason = "stop_loss"
	ExitDaysToExpiry ExitReason = "days_to_expiry"
)

// Config holds backtest parameters. ProfitTarget and StopLoss are fractions
// of the absolute entry cost; a zero value disables the corresponding exit.
type Config struct {
	StartDate              time.Time
	EndDate                time.Time
	EntryFrequencyDays     int
	ProfitTarget           float64
	StopLoss               float64
	MinDaysToExpiry        int
	RiskFreeRate           float64
	VolatilityLookbackDays int
	CommissionPerContract  float64
}

// Validate checks the config for a runnable date range and sane knobs.
func (c Config) Validate() error {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return errConfig("start and end dates are required")
	}
	if c.EndDate.Before(c.StartDate) {
		return errConfig("end date must not precede start date")
	}
	if c.EntryFrequencyDays <= 0 {
		return errConfig("entry frequency must be positive")
	}
	if c.VolatilityLookbackDays <= 0 {
		return errConfig("volatility lookback must be positive")
	}
	if c.ProfitTarget < 0 || c.StopLoss < 0 {
		return errConfig("profit target and stop loss must be non-negative")
	}
	if c.MinDaysToExpiry < 0 {
		return errConfig("min days to expiry must be non-negative")
	}
	if c.CommissionPerContract < 0 {
		return errConfig("commission must be non-negative")
	}
	return nil
}

// TradeResult records one completed simulated trade. MFE and MAE are the
// maximum favorable and adverse excursions of unrealized P&L during the
// holding period, before commissions.
type TradeResult struct {
	EntryDate       time.Time
	ExitDate        time.Time
	EntryPrice      float64
	ExitPrice       float64
	StrategyCost    float64
	PnL             float64
	PnLPercent      float64
	DaysHeld        int
	ExitReason      ExitReason
	MFE             float64
	MAE             float64
	EntryVolatility float64
	EntryDelta      float64
	EntryTheta      float64
	Commission      float64
}

// Result holds the full output of a backtest run. A run that produced no
// trades is a valid zero-valued result, never an error.
type Result struct {
	Config           Config
	Trades           []TradeResult
	TotalReturn      float64
	WinRate          float64
	AvgWin           float64
	AvgLoss          float64
	MaxDrawdown      float64
	SharpeRatio      float64
	ProfitFactor     float64
	TotalCommissions float64
}
