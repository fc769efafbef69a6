package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"options-analytics/internal/store"
)

// newDataCmd creates the data command group for managing stored candles.
func newDataCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Manage stored historical candle data",
	}

	cmd.AddCommand(newDataImportCmd(app))
	cmd.AddCommand(newDataShowCmd(app))

	return cmd
}

func newDataImportCmd(app *App) *cobra.Command {
	var (
		symbol string
		file   string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import daily OHLCV candles from a CSV file",
		Long: `Imports a daily OHLCV CSV export into the local database. The file
must carry a header row: date,open,high,low,close,volume with dates in
YYYY-MM-DD format. Existing rows for the same symbol and date are
overwritten.`,
		Example: `  options-analytics data import --symbol SPY --file spy_daily.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cmd)
			if app.Store == nil {
				return fmt.Errorf("data store unavailable")
			}

			candles, err := store.LoadCandlesCSV(file)
			if err != nil {
				return err
			}
			if len(candles) == 0 {
				return fmt.Errorf("no rows found in %s", file)
			}

			if err := app.Store.SaveCandles(context.Background(), symbol, candles); err != nil {
				return err
			}

			app.Logger.Info().
				Str("symbol", symbol).
				Int("candles", len(candles)).
				Msg("imported candles")

			if out.IsJSON() {
				return out.JSON(map[string]interface{}{
					"symbol":   symbol,
					"imported": len(candles),
					"from":     candles[0].Date,
					"to":       candles[len(candles)-1].Date,
				})
			}
			out.Success("Imported %d candles for %s (%s to %s)",
				len(candles), symbol,
				FormatDate(candles[0].Date), FormatDate(candles[len(candles)-1].Date))
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "Symbol to store the candles under")
	cmd.Flags().StringVar(&file, "file", "", "Path to the CSV file")
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newDataShowCmd(app *App) *cobra.Command {
	var (
		symbol string
		last   int
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show stored candles for a symbol",
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
				return fmt.Errorf("no candles stored for %s", symbol)
			}

			if last > 0 && len(candles) > last {
				candles = candles[len(candles)-last:]
			}

			if out.IsJSON() {
				return out.JSON(candles)
			}

			out.Bold("%s (%d candles)", symbol, len(candles))
			out.Dim("  %s %s %s %s %s %s",
				PadRight("Date", 12),
				PadLeft("Open", 9), PadLeft("High", 9),
				PadLeft("Low", 9), PadLeft("Close", 9),
				PadLeft("Volume", 12))
			for _, c := range candles {
				out.Printf("  %s %s %s %s %s %s\n",
					PadRight(FormatDate(c.Date), 12),
					PadLeft(fmt.Sprintf("%.2f", c.Open), 9),
					PadLeft(fmt.Sprintf("%.2f", c.High), 9),
					PadLeft(fmt.Sprintf("%.2f", c.Low), 9),
					PadLeft(fmt.Sprintf("%.2f", c.Close), 9),
					PadLeft(fmt.Sprintf("%d", c.Volume), 12))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&symbol, "symbol", "", "Symbol to show")
	cmd.Flags().IntVar(&last, "last", 20, "Show only the most recent N candles (0 for all)")
	cmd.MarkFlagRequired("symbol")

	return cmd
}
