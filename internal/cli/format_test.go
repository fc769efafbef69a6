package cli

import (
	"testing"
	"time"
)

func TestFormatPrice(t *testing.T) {
	if got := FormatPrice(3.333); got != "$3.33" {
		t.Errorf("FormatPrice = %q, want $3.33", got)
	}
}

func TestFormatPercentSigns(t *testing.T) {
	if got := FormatPercent(12.5); got != "+12.50%" {
		t.Errorf("FormatPercent = %q, want +12.50%%", got)
	}
	if got := FormatPercent(-3.2); got != "-3.20%" {
		t.Errorf("FormatPercent = %q, want -3.20%%", got)
	}
	if got := FormatPercent(0); got != "0.00%" {
		t.Errorf("FormatPercent = %q, want 0.00%%", got)
	}
}

func TestFormatPnL(t *testing.T) {
	if got := FormatPnL(150); got != "+$150.00" {
		t.Errorf("FormatPnL = %q, want +$150.00", got)
	}
	if got := FormatPnL(-626); got != "-$626.00" {
		t.Errorf("FormatPnL = %q, want -$626.00", got)
	}
}

func TestFormatIV(t *testing.T) {
	if got := FormatIV(0.255); got != "25.5%" {
		t.Errorf("FormatIV = %q, want 25.5%%", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2023, 6, 16, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2023-06-16" {
		t.Errorf("FormatDate = %q, want 2023-06-16", got)
	}
}

func TestPadding(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadLeft("ab", 5); got != "   ab" {
		t.Errorf("PadLeft = %q", got)
	}
	if got := PadRight("abcdef", 3); got != "abcdef" {
		t.Errorf("PadRight overflow = %q", got)
	}
}

func TestParseRight(t *testing.T) {
	for _, s := range []string{"call", "CALL", "c"} {
		r, err := parseRight(s)
		if err != nil || string(r) != "call" {
			t.Errorf("parseRight(%q) = %v, %v", s, r, err)
		}
	}
	if _, err := parseRight("straddle"); err == nil {
		t.Error("parseRight accepted invalid type")
	}
}
