package cli

import (
	"fmt"
	"strings"
	"time"
)

// FormatPrice formats a dollar price with two decimals.
func FormatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}

// FormatPercent formats a percentage with sign.
func FormatPercent(value float64) string {
	sign := ""
	if value > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%.2f%%", sign, value)
}

// FormatPnL formats a P&L amount with the sign ahead of the dollar symbol.
func FormatPnL(pnl float64) string {
	switch {
	case pnl > 0:
		return fmt.Sprintf("+$%.2f", pnl)
	case pnl < 0:
		return fmt.Sprintf("-$%.2f", -pnl)
	default:
		return "$0.00"
	}
}

// FormatIV formats an implied/historical volatility fraction as a percentage.
func FormatIV(iv float64) string {
	return fmt.Sprintf("%.1f%%", iv*100)
}

// FormatGreeks formats the standard Greeks on one line.
func FormatGreeks(delta, gamma, theta, vega, rho float64) string {
	return fmt.Sprintf("Δ %.4f  Γ %.4f  Θ %.4f  V %.4f  ρ %.4f", delta, gamma, theta, vega, rho)
}

// FormatDate formats a date.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// PadRight pads a string to the given length with spaces on the right.
func PadRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// PadLeft pads a string to the given length with spaces on the left.
func PadLeft(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return strings.Repeat(" ", length-len(s)) + s
}
