package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"options-analytics/internal/logging"
	"options-analytics/internal/models"
	"options-analytics/internal/volatility"
)

// newVolCmd creates the vol command for historical volatility estimation.
func newVolCmd(app *App) *cobra.Command {
	var (
		symbol   string
		method   string
		period   int
		periods  []int
		lookback int
		rank     bool
	)

	cmd := &cobra.Command{
		Use:   "vol",
		Short: "Estimate historical volatility from stored candles",
		Example: `  options-analytics vol --symbol SPY --period 30
  options-analytics vol --symbol SPY --method garman_klass --period 20
  options-analytics vol --symbol SPY --periods 10,20,30,60 --rank`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("data store unavailable")
			}

			candles, err := app.Store.GetAllCandles(context.Background(), symbol)
			if err != nil {
				return err
			}
			if len(candles) == 0 {
				return fmt.Errorf("no candles stored for %s (run 'data import' first)", symbol)
			}

			m := volatility.Method(strings.ToLower(method))
			switch m {
			case volatility.MethodSimple, volatility.MethodEWMA,
				volatility.MethodParkinson, volatility.MethodGarmanKlass:
			default:
				return fmt.Errorf("unknown method %q", method)
			}

			if len(periods) > 0 {
				estimates := volatility.MultiPeriod(candles, m, periods)
				if out.IsJSON() {
					return out.JSON(estimates)
				}
				out.Bold("%s historical volatility (%s)", symbol, m)
				for _, est := range estimates {
					out.Printf("  %3dd: %s  (%s to %s)\n",
						est.PeriodDays, FormatIV(est.Volatility),
						FormatDate(est.WindowStart), FormatDate(est.WindowEnd))
				}
				return nil
			}

			est, err := estimateOne(candles, m, period)
			if err != nil {
				return err
			}
			logging.LogEstimate(app.Logger, symbol, string(est.Method), period, est.Volatility)

			var pct float64
			havePct := false
			if rank {
				pct, err = volatility.PercentileRank(est.Volatility, candles, lookback, period)
				if err != nil {
					app.Logger.Debug().Err(err).Msg("percentile rank unavailable")
				} else {
					havePct = true
				}
			}

			if out.IsJSON() {
				payload := map[string]interface{}{
					"symbol":   symbol,
					"estimate": est,
				}
				if havePct {
					payload["percentile_rank"] = pct
				}
				return out.JSON(payload)
			}

			out.Bold("%s %dd historical volatility (%s)", symbol, period, m)
			out.Printf("  Volatility:   %s\n", FormatIV(est.Volatility))
			out.Printf("  Window:       %s to %s (%d obs)\n",
				FormatDate(est.WindowStart), FormatDate(est.WindowEnd), est.Observations)
			if havePct {
				out.Printf("  Percentile:   %.0f over %d days\n", pct, lookback)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "Underlying symbol")
	cmd.Flags().StringVar(&method, "method", "simple", "Estimator: simple, ewma, parkinson, garman_klass")
	cmd.Flags().IntVar(&period, "period", 30, "Lookback period in trading days")
	cmd.Flags().IntSliceVar(&periods, "periods", nil, "Multiple lookback periods (overrides --period)")
	cmd.Flags().IntVar(&lookback, "lookback", 252, "Percentile-rank lookback in trading days")
	cmd.Flags().BoolVar(&rank, "rank", false, "Show percentile rank against rolling history")
	cmd.MarkFlagRequired("symbol")

	return cmd
}

func estimateOne(candles []models.Candle, m volatility.Method, period int) (volatility.Estimate, error) {
	switch m {
	case volatility.MethodEWMA:
		return volatility.EWMA(candles, period)
	case volatility.MethodParkinson:
		return volatility.Parkinson(candles, period)
	case volatility.MethodGarmanKlass:
		return volatility.GarmanKlass(candles, period)
	default:
		return volatility.Simple(candles, period)
	}
}
