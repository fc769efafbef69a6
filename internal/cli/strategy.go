package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"options-analytics/internal/logging"
	"options-analytics/internal/models"
	"options-analytics/internal/strategy"
)

// floatAt returns values[i] or 0 when the slice is too short. Premiums are
// optional on every builder; missing ones default to zero.
func floatAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

// buildStrategy dispatches to the named builder, validating strike counts.
func buildStrategy(typ string, strikes, premiums []float64, expiration time.Time, side models.PositionSide, right models.Right, spot float64, shares int) (strategy.Definition, error) {
	need := func(n int) error {
		if len(strikes) != n {
			return fmt.Errorf("%s needs %d strike(s), got %d", typ, n, len(strikes))
		}
		return nil
	}

	switch typ {
	case "long_call":
		if err := need(1); err != nil {
			return strategy.Definition{}, err
		}
		return strategy.LongCall(strikes[0], expiration, floatAt(premiums, 0)), nil
	case "long_put":
		if err := need(1); err != nil {
			return strategy.Definition{}, err
		}
		return strategy.LongPut(strikes[0], expiration, floatAt(premiums, 0)), nil
	case "covered_call":
		if err := need(1); err != nil {
			return strategy.Definition{}, err
		}
		return strategy.CoveredCall(spot, strikes[0], expiration, shares, floatAt(premiums, 0)), nil
	case "straddle":
		if err := need(1); err != nil {
			return strategy.Definition{}, err
		}
		return strategy.Straddle(strikes[0], expiration, floatAt(premiums, 0), floatAt(premiums, 1), side), nil
	case "strangle":
		if err := need(2); err != nil {
			return strategy.Definition{}, err
		}
		// strikes are call then put
		return strategy.Strangle(strikes[0], strikes[1], expiration, floatAt(premiums, 0), floatAt(premiums, 1), side), nil
	case "bull_call_spread":
		if err := need(2); err != nil {
			return strategy.Definition{}, err
		}
		return strategy.BullCallSpread(strikes[0], strikes[1], expiration, floatAt(premiums, 0), floatAt(premiums, 1)), nil
	case "bear_put_spread":
		if err := need(2); err != nil {
			return strategy.Definition{}, err
		}
		return strategy.BearPutSpread(strikes[0], strikes[1], expiration, floatAt(premiums, 0), floatAt(premiums, 1)), nil
	case "iron_condor":
		if err := need(4); err != nil {
			return strategy.Definition{}, err
		}
		return strategy.IronCondor(strikes[0], strikes[1], strikes[2], strikes[3], expiration), nil
	case "butterfly":
		if err := need(2); err != nil {
			return strategy.Definition{}, err
		}
		// strikes are center then wing width
		return strategy.ButterflySpread(strikes[0], strikes[1], expiration, right), nil
	default:
		return strategy.Definition{}, fmt.Errorf("unknown strategy type %q", typ)
	}
}

// newStrategyCmd creates the strategy command for P&L analysis.
func newStrategyCmd(app *App) *cobra.Command {
	var (
		typ      string
		strikes  []float64
		premiums []float64
		spot     float64
		days     int
		sigma    float64
		rate     float64
		short    bool
		right    string
		shares   int
		atExpiry bool
	)

	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Analyze a multi-leg option strategy",
		Long: `Builds a named strategy from strikes and premiums, evaluates its P&L
curve over a price grid around spot, and reports max profit, max loss,
breakevens and net Greeks.

Strategy types: long_call, long_put, covered_call, straddle, strangle,
bull_call_spread, bear_put_spread, iron_condor, butterfly.`,
		Example: `  options-analytics strategy --type straddle --strikes 100 --premiums 3.33,2.92 --spot 100 --days 30 --vol 0.20
  options-analytics strategy --type iron_condor --strikes 90,95,105,110 --spot 100 --days 45 --vol 0.25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cmd)

			r, err := parseRight(right)
			if err != nil {
				return err
			}
			side := models.Long
			if short {
				side = models.Short
			}
			if rate < 0 {
				rate = app.Config.Analytics.RiskFreeRate
			}

			expiration := time.Now().AddDate(0, 0, days)
			def, err := buildStrategy(typ, strikes, premiums, expiration, side, r, spot, shares)
			if err != nil {
				return err
			}

			tte := float64(days) / 365.0
			if atExpiry {
				tte = 0
			}
			grid := strategy.PriceGrid(spot, app.Config.Analytics.GridWidthPct, app.Config.Analytics.GridSteps)
			pnl, err := strategy.PnL(def, grid, tte, sigma, rate)
			if err != nil {
				return err
			}
			greeks, err := strategy.NetGreeks(def, spot, float64(days)/365.0, sigma, rate)
			if err != nil {
				return err
			}

			strategyLogger := logging.WithStrategy(app.Logger, def.Name)
			strategyLogger.Debug().
				Float64("max_profit", pnl.MaxProfit).
				Float64("max_loss", pnl.MaxLoss).
				Msg("analyzed strategy")

			if out.IsJSON() {
				return out.JSON(map[string]interface{}{
					"name":       def.Name,
					"type":       def.Type,
					"max_profit": pnl.MaxProfit,
					"max_loss":   pnl.MaxLoss,
					"breakevens": pnl.Breakevens,
					"greeks":     greeks,
				})
			}

			out.Bold("%s", def.Name)
			out.Printf("  %s\n", def.Description)
			out.Printf("  Max profit: %s\n", FormatPnL(pnl.MaxProfit))
			out.Printf("  Max loss:   %s\n", FormatPnL(pnl.MaxLoss))
			if len(pnl.Breakevens) > 0 {
				points := make([]string, len(pnl.Breakevens))
				for i, b := range pnl.Breakevens {
					points[i] = FormatPrice(b)
				}
				out.Printf("  Breakevens: %s\n", strings.Join(points, ", "))
			} else {
				out.Printf("  Breakevens: none in grid\n")
			}
			out.Printf("  Net Greeks: %s\n", FormatGreeks(greeks.Delta, greeks.Gamma, greeks.Theta, greeks.Vega, greeks.Rho))
			return nil
		},
	}

	cmd.Flags().StringVar(&typ, "type", "", "Strategy type")
	cmd.Flags().Float64SliceVar(&strikes, "strikes", nil, "Strikes (order depends on type; butterfly: center,wing)")
	cmd.Flags().Float64SliceVar(&premiums, "premiums", nil, "Per-share premiums matching the legs (optional)")
	cmd.Flags().Float64Var(&spot, "spot", 0, "Underlying spot price")
	cmd.Flags().IntVar(&days, "days", 30, "Days to expiration")
	cmd.Flags().Float64Var(&sigma, "vol", 0.20, "Annualized volatility for repricing")
	cmd.Flags().Float64Var(&rate, "rate", -1, "Risk-free rate (default from config)")
	cmd.Flags().BoolVar(&short, "short", false, "Short side for straddle/strangle")
	cmd.Flags().StringVar(&right, "right", "call", "Option right for butterfly: call or put")
	cmd.Flags().IntVar(&shares, "shares", 100, "Share count for covered_call")
	cmd.Flags().BoolVar(&atExpiry, "at-expiry", false, "Evaluate the P&L curve at expiration")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("strikes")
	cmd.MarkFlagRequired("spot")

	return cmd
}
