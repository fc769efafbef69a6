package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"options-analytics/internal/models"
	"options-analytics/internal/pricing"
)

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// parseRight maps a user-supplied option type string to a Right.
func parseRight(s string) (models.Right, error) {
	switch strings.ToLower(s) {
	case "call", "c":
		return models.Call, nil
	case "put", "p":
		return models.Put, nil
	default:
		return "", fmt.Errorf("invalid option type %q (use call or put)", s)
	}
}

// newPriceCmd creates the price command for single-option valuation.
func newPriceCmd(app *App) *cobra.Command {
	var (
		spot     float64
		strike   float64
		days     int
		rate     float64
		sigma    float64
		dividend float64
		right    string
	)

	cmd := &cobra.Command{
		Use:   "price",
		Short: "Price a European option and show its Greeks",
		Example: `  options-analytics price --spot 100 --strike 100 --days 30 --vol 0.20
  options-analytics price --spot 150 --strike 145 --days 45 --vol 0.25 --type put`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cmd)

			r, err := parseRight(right)
			if err != nil {
				return err
			}
			if rate < 0 {
				rate = app.Config.Analytics.RiskFreeRate
			}
			if dividend < 0 {
				dividend = app.Config.Analytics.DividendYield
			}

			in := pricing.Inputs{
				S:     spot,
				K:     strike,
				T:     float64(days) / 365.0,
				R:     rate,
				Sigma: sigma,
				Q:     dividend,
				Right: r,
			}
			greeks, err := pricing.Compute(in)
			if err != nil {
				return err
			}

			app.Logger.Debug().
				Float64("spot", spot).
				Float64("strike", strike).
				Int("days", days).
				Float64("sigma", sigma).
				Str("right", string(r)).
				Float64("price", greeks.Price).
				Msg("priced option")

			if out.IsJSON() {
				return out.JSON(map[string]interface{}{
					"spot":   spot,
					"strike": strike,
					"days":   days,
					"type":   string(r),
					"price":  greeks.Price,
					"delta":  greeks.Delta,
					"gamma":  greeks.Gamma,
					"theta":  greeks.Theta,
					"vega":   greeks.Vega,
					"rho":    greeks.Rho,
				})
			}

			out.Bold("%s $%g (%dd)", titleCase(string(r)), strike, days)
			out.Printf("  Price: %s\n", FormatPrice(greeks.Price))
			out.Printf("  Delta: %8.4f\n", greeks.Delta)
			out.Printf("  Gamma: %8.4f\n", greeks.Gamma)
			out.Printf("  Theta: %8.4f /day\n", greeks.Theta)
			out.Printf("  Vega:  %8.4f /1%% vol\n", greeks.Vega)
			out.Printf("  Rho:   %8.4f /1%% rate\n", greeks.Rho)
			return nil
		},
	}

	cmd.Flags().Float64Var(&spot, "spot", 0, "Underlying spot price")
	cmd.Flags().Float64Var(&strike, "strike", 0, "Option strike price")
	cmd.Flags().IntVar(&days, "days", 30, "Days to expiration")
	cmd.Flags().Float64Var(&rate, "rate", -1, "Risk-free rate (default from config)")
	cmd.Flags().Float64Var(&sigma, "vol", 0.20, "Annualized volatility")
	cmd.Flags().Float64Var(&dividend, "dividend", -1, "Dividend yield (default from config)")
	cmd.Flags().StringVar(&right, "type", "call", "Option type: call or put")
	cmd.MarkFlagRequired("spot")
	cmd.MarkFlagRequired("strike")

	return cmd
}

// newIVCmd creates the iv command for implied-volatility inversion.
func newIVCmd(app *App) *cobra.Command {
	var (
		price    float64
		spot     float64
		strike   float64
		days     int
		rate     float64
		dividend float64
		right    string
	)

	cmd := &cobra.Command{
		Use:   "iv",
		Short: "Solve for the implied volatility of a market price",
		Example: `  options-analytics iv --price 3.33 --spot 100 --strike 100 --days 30`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cmd)

			r, err := parseRight(right)
			if err != nil {
				return err
			}
			if rate < 0 {
				rate = app.Config.Analytics.RiskFreeRate
			}
			if dividend < 0 {
				dividend = app.Config.Analytics.DividendYield
			}

			t := float64(days) / 365.0
			iv, err := pricing.ImpliedVolatility(price, spot, strike, t, rate, r, dividend)
			if err != nil {
				return err
			}

			if out.IsJSON() {
				return out.JSON(map[string]interface{}{
					"price":              price,
					"spot":               spot,
					"strike":             strike,
					"days":               days,
					"type":               string(r),
					"implied_volatility": iv,
				})
			}

			out.Bold("%s $%g (%dd) @ %s", titleCase(string(r)), strike, days, FormatPrice(price))
			out.Printf("  Implied volatility: %s\n", FormatIV(iv))
			return nil
		},
	}

	cmd.Flags().Float64Var(&price, "price", 0, "Observed market price")
	cmd.Flags().Float64Var(&spot, "spot", 0, "Underlying spot price")
	cmd.Flags().Float64Var(&strike, "strike", 0, "Option strike price")
	cmd.Flags().IntVar(&days, "days", 30, "Days to expiration")
	cmd.Flags().Float64Var(&rate, "rate", -1, "Risk-free rate (default from config)")
	cmd.Flags().Float64Var(&dividend, "dividend", -1, "Dividend yield (default from config)")
	cmd.Flags().StringVar(&right, "type", "call", "Option type: call or put")
	cmd.MarkFlagRequired("price")
	cmd.MarkFlagRequired("spot")
	cmd.MarkFlagRequired("strike")

	return cmd
}
