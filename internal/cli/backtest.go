package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"options-analytics/internal/backtest"
	"options-analytics/internal/logging"
	"options-analytics/internal/models"
)

// newBacktestCmd creates the backtest command.
func newBacktestCmd(app *App) *cobra.Command {
	var (
		symbol       string
		typ          string
		strikes      []float64
		startStr     string
		endStr       string
		expiryStr    string
		freq         int
		profitTarget float64
		stopLoss     float64
		minDTE       int
		lookback     int
		commission   float64
		rate         float64
		short        bool
		right        string
		save         bool
	)

	cmd := &cobra.Command{
		Use:   "backtest",
		Short: "Walk-forward backtest of a strategy over stored candles",
		Long: `Runs the strategy template repeatedly over historical daily bars:
every entry-frequency days a new position is opened with strikes resolved
against that day's close, held until a profit target, stop loss, minimum
days-to-expiry or expiration closes it, then aggregated into summary
metrics.

Strikes at or below 10 are treated as spot multipliers (1.0 = at the
money); larger values are absolute dollar strikes.`,
		Example: `  options-analytics backtest --symbol SPY --type straddle --strikes 1.0 --start 2020-01-01 --end 2023-12-31
  options-analytics backtest --symbol SPY --type iron_condor --strikes 0.90,0.95,1.05,1.10 --start 2021-01-01 --end 2023-12-31 --profit-target 0.5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("data store unavailable")
			}

			start, err := time.Parse("2006-01-02", startStr)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			end, err := time.Parse("2006-01-02", endStr)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			expiry := end
			if expiryStr != "" {
				expiry, err = time.Parse("2006-01-02", expiryStr)
				if err != nil {
					return fmt.Errorf("invalid --expiry: %w", err)
				}
			}

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

			template, err := buildStrategy(typ, strikes, nil, expiry, side, r, 0, 100)
			if err != nil {
				return err
			}

			candles, err := app.Store.GetAllCandles(context.Background(), symbol)
			if err != nil {
				return err
			}
			if len(candles) == 0 {
				return fmt.Errorf("no candles stored for %s (run 'data import' first)", symbol)
			}

			config := backtest.Config{
				StartDate:              start,
				EndDate:                end,
				EntryFrequencyDays:     freq,
				ProfitTarget:           profitTarget,
				StopLoss:               stopLoss,
				MinDaysToExpiry:        minDTE,
				RiskFreeRate:           rate,
				VolatilityLookbackDays: lookback,
				CommissionPerContract:  commission,
			}

			engine := backtest.NewEngine(candles, logging.WithSymbol(app.Logger, symbol))
			result, err := engine.Run(template, config)
			if err != nil {
				return err
			}

			if save {
				if err := app.Store.SaveBacktestRun(context.Background(), symbol, template.Name, result); err != nil {
					app.Logger.Warn().Err(err).Msg("failed to save backtest run")
				} else {
					out.Info("Saved backtest run for %s", symbol)
				}
			}

			if out.IsJSON() {
				return out.JSON(result)
			}

			printBacktestResult(out, symbol, template.Name, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "Underlying symbol")
	cmd.Flags().StringVar(&typ, "type", "", "Strategy type (see 'strategy --help')")
	cmd.Flags().Float64SliceVar(&strikes, "strikes", nil, "Template strikes; values <= 10 are spot multipliers")
	cmd.Flags().StringVar(&startStr, "start", "", "Backtest start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endStr, "end", "", "Backtest end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&expiryStr, "expiry", "", "Option expiration date (YYYY-MM-DD, default end date)")
	cmd.Flags().IntVar(&freq, "frequency", 0, "Days between entries (default from config)")
	cmd.Flags().Float64Var(&profitTarget, "profit-target", -1, "Exit at this fraction of entry cost (default from config)")
	cmd.Flags().Float64Var(&stopLoss, "stop-loss", -1, "Exit at this loss fraction of entry cost (default from config)")
	cmd.Flags().IntVar(&minDTE, "min-dte", -1, "Force exit this many days before expiry (default from config)")
	cmd.Flags().IntVar(&lookback, "lookback", 0, "Volatility lookback days (default from config)")
	cmd.Flags().Float64Var(&commission, "commission", -1, "Commission per contract per side (default from config)")
	cmd.Flags().Float64Var(&rate, "rate", -1, "Risk-free rate (default from config)")
	cmd.Flags().BoolVar(&short, "short", false, "Short side for straddle/strangle")
	cmd.Flags().StringVar(&right, "right", "call", "Option right for butterfly")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the run to the local database")
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("type")
	cmd.MarkFlagRequired("strikes")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		bt := app.Config.Backtest
		if freq == 0 {
			freq = bt.EntryFrequencyDays
		}
		if profitTarget < 0 {
			profitTarget = bt.ProfitTarget
		}
		if stopLoss < 0 {
			stopLoss = bt.StopLoss
		}
		if minDTE < 0 {
			minDTE = bt.MinDaysToExpiry
		}
		if lookback == 0 {
			lookback = bt.VolatilityLookbackDays
		}
		if commission < 0 {
			commission = bt.CommissionPerContract
		}
		return nil
	}

	return cmd
}

func printBacktestResult(out *Output, symbol, name string, result *backtest.Result) {
	out.Bold("%s backtest: %s", symbol, name)
	out.Printf("  Trades:        %d\n", len(result.Trades))
	out.Printf("  Win rate:      %.1f%%\n", result.WinRate*100)
	out.Printf("  Total return:  %s\n", FormatPercent(result.TotalReturn))
	out.Printf("  Avg win:       %s\n", FormatPnL(result.AvgWin))
	out.Printf("  Avg loss:      %s\n", FormatPnL(result.AvgLoss))
	out.Printf("  Max drawdown:  %s\n", FormatPnL(result.MaxDrawdown))
	out.Printf("  Sharpe ratio:  %.2f\n", result.SharpeRatio)
	out.Printf("  Profit factor: %.2f\n", result.ProfitFactor)
	out.Printf("  Commissions:   %s\n", FormatPrice(result.TotalCommissions))

	if len(result.Trades) == 0 {
		return
	}
	out.Println()
	out.Dim("  %s %s %s %s %s",
		PadRight("Entry", 12), PadRight("Exit", 12),
		PadLeft("P&L", 10), PadLeft("P&L %", 8), "Reason")
	for _, t := range result.Trades {
		out.Printf("  %s %s %s %s %s\n",
			PadRight(FormatDate(t.EntryDate), 12),
			PadRight(FormatDate(t.ExitDate), 12),
			PadLeft(FormatPnL(t.PnL), 10),
			PadLeft(fmt.Sprintf("%.1f%%", t.PnLPercent), 8),
			string(t.ExitReason))
	}
}
