package backtest

import (
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"options-analytics/internal/errors"
	"options-analytics/internal/logging"
	"options-analytics/internal/models"
	"options-analytics/internal/pricing"
	"options-analytics/internal/strategy"
	"options-analytics/internal/volatility"
)

// Template strikes at or below this value are treated as spot multipliers
// (1.0 = at the money); larger values are absolute dollar strikes.
const relativeStrikeCutoff = 10.0

func errConfig(msg string) error {
	return errors.Wrap(errors.ErrConfigInvalid, msg)
}

// Engine runs walk-forward strategy simulations over a fixed candle series.
// It owns no shared mutable state; each Run is independent.
type Engine struct {
	candles []models.Candle
	logger  zerolog.Logger
}

// NewEngine creates an engine over the given daily series. The series is
// sorted by date once up front.
func NewEngine(candles []models.Candle, logger zerolog.Logger) *Engine {
	sorted := make([]models.Candle, len(candles))
	copy(sorted, candles)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return &Engine{candles: sorted, logger: logger}
}

// Run simulates the strategy template across the configured date range.
// Entries that lack volatility history or market dates are skipped; the walk
// always completes with a fully-populated (possibly zero-trade) result.
func (e *Engine) Run(template strategy.Definition, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	trades := make([]TradeResult, 0)
	cursor := config.StartDate

	for !cursor.After(config.EndDate) {
		entryIdx := e.firstIndexOnOrAfter(cursor)
		if entryIdx < 0 {
			break
		}

		entry := e.candles[entryIdx]
		resolved := resolveTemplate(template, entry.Close)

		trade, err := e.executeTrade(resolved, entryIdx, config)
		if err != nil {
			e.logger.Debug().
				Err(err).
				Time("entry_date", entry.Date).
				Msg("skipping entry")
		} else {
			trades = append(trades, *trade)
			logging.LogBacktestTrade(e.logger, template.Name,
				trade.EntryDate, trade.ExitDate, trade.PnL, string(trade.ExitReason))
		}

		cursor = cursor.AddDate(0, 0, config.EntryFrequencyDays)
	}

	result := aggregate(trades, config)
	e.logger.Info().
		Str("strategy", template.Name).
		Int("trades", len(result.Trades)).
		Float64("win_rate", result.WinRate).
		Float64("total_return", result.TotalReturn).
		Msg("backtest complete")
	return result, nil
}

// firstIndexOnOrAfter returns the index of the first candle dated on or
// after t, or -1 when the series is exhausted.
func (e *Engine) firstIndexOnOrAfter(t time.Time) int {
	idx := sort.Search(len(e.candles), func(i int) bool {
		return !e.candles[i].Date.Before(t)
	})
	if idx == len(e.candles) {
		return -1
	}
	return idx
}

// resolveTemplate produces a derived copy of the template with strikes
// resolved against the entry-day close. The template itself is never
// mutated. Resolved strikes are rounded to the nearest $0.50.
func resolveTemplate(template strategy.Definition, spot float64) strategy.Definition {
	resolved := strategy.Definition{
		Name:        template.Name,
		Type:        template.Type,
		Description: template.Description,
		Created:     template.Created,
		OptionLegs:  make([]strategy.OptionLeg, len(template.OptionLegs)),
		StockLegs:   make([]strategy.StockLeg, len(template.StockLegs)),
	}

	for i, leg := range template.OptionLegs {
		strike := leg.Strike
		if strike <= relativeStrikeCutoff {
			strike = spot * strike
		}
		strike = math.Round(strike*2) / 2

		leg.Strike = strike
		leg.Premium = 0
		resolved.OptionLegs[i] = leg
	}
	for i, leg := range template.StockLegs {
		leg.EntryPrice = spot
		resolved.StockLegs[i] = leg
	}
	return resolved
}

// executeTrade walks a single trade from entry through exit.
func (e *Engine) executeTrade(def strategy.Definition, entryIdx int, config Config) (*TradeResult, error) {
	entry := e.candles[entryIdx]
	expiration := def.NearestExpiration()
	if expiration.IsZero() {
		return nil, errors.NewValidationError("option_legs", 0, "strategy has no option legs")
	}

	entryTTE := pricing.TimeToExpiration(expiration, entry.Date)
	if entryTTE <= 0 {
		return nil, errors.ErrInsufficientData
	}

	// Entry-day volatility over the trailing lookback; trades without
	// enough history are skipped, never fatal.
	history := e.candles[:entryIdx+1]
	vol, err := volatility.Simple(history, config.VolatilityLookbackDays)
	if err != nil {
		return nil, err
	}
	entryVol := vol.Volatility

	cost, err := strategy.NetCost(def, entry.Close, entryTTE, entryVol, config.RiskFreeRate)
	if err != nil {
		return nil, err
	}
	greeks, err := strategy.NetGreeks(def, entry.Close, entryTTE, entryVol, config.RiskFreeRate)
	if err != nil {
		return nil, err
	}

	var (
		exitIdx    = -1
		exitReason = ExitExpiration
		mfe        float64
		mae        float64
	)

	// HOLDING: reprice each subsequent trading day at the entry-day
	// volatility until an exit condition fires or expiration arrives.
	for i := entryIdx + 1; i < len(e.candles); i++ {
		day := e.candles[i]
		if day.Date.After(expiration) {
			break
		}

		tte := pricing.TimeToExpiration(expiration, day.Date)
		value, err := strategy.Value(def, day.Close, tte, entryVol, config.RiskFreeRate)
		if err != nil {
			return nil, err
		}
		unrealized := value - cost

		mfe = math.Max(mfe, unrealized)
		mae = math.Min(mae, unrealized)

		if reason, ok := checkExit(unrealized, cost, tte, config); ok {
			exitIdx = i
			exitReason = reason
			break
		}
	}

	// No condition fired: settle at the last available price at or before
	// expiration.
	if exitIdx < 0 {
		for i := len(e.candles) - 1; i >= entryIdx; i-- {
			if !e.candles[i].Date.After(expiration) {
				exitIdx = i
				break
			}
		}
		if exitIdx < 0 {
			return nil, errors.ErrInsufficientData
		}
		exitReason = ExitExpiration
	}

	exit := e.candles[exitIdx]
	exitTTE := pricing.TimeToExpiration(expiration, exit.Date)
	exitValue, err := strategy.Value(def, exit.Close, exitTTE, entryVol, config.RiskFreeRate)
	if err != nil {
		return nil, err
	}

	commission := float64(def.TotalContracts()) * config.CommissionPerContract * 2
	pnl := exitValue - cost - commission

	// Capital at risk: the debit paid, or for net credit strategies a
	// floor of 1000 so small credits do not blow up the percentage.
	capital := math.Abs(cost)
	if cost <= 0 {
		capital = math.Max(capital, 1000)
	}
	pnlPercent := pnl / capital * 100

	daysHeld := int(exit.Date.Sub(entry.Date).Hours() / 24)

	return &TradeResult{
		EntryDate:       entry.Date,
		ExitDate:        exit.Date,
		EntryPrice:      entry.Close,
		ExitPrice:       exit.Close,
		StrategyCost:    cost,
		PnL:             pnl,
		PnLPercent:      pnlPercent,
		DaysHeld:        daysHeld,
		ExitReason:      exitReason,
		MFE:             mfe,
		MAE:             mae,
		EntryVolatility: entryVol,
		EntryDelta:      greeks.Delta,
		EntryTheta:      greeks.Theta,
		Commission:      commission,
	}, nil
}

// checkExit evaluates the exit conditions in priority order: profit target,
// stop loss, then the minimum days-to-expiry threshold. First match wins.
func checkExit(unrealized, cost, tte float64, config Config) (ExitReason, bool) {
	if config.ProfitTarget > 0 && unrealized >= config.ProfitTarget*math.Abs(cost) {
		return ExitProfitTarget, true
	}
	if config.StopLoss > 0 && unrealized <= -config.StopLoss*math.Abs(cost) {
		return ExitStopLoss, true
	}
	if tte <= float64(config.MinDaysToExpiry)/365.0 {
		return ExitDaysToExpiry, true
	}
	return "", false
}
