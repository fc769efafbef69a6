package pricing

import (
	"math"
	"testing"
	"time"

	"options-analytics/internal/models"
)

func TestChainImpliedVolsSkipsBadQuotes(t *testing.T) {
	asOf := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	expiry := asOf.AddDate(0, 0, 30)
	tte := TimeToExpiration(expiry, asOf)

	fair, err := Price(Inputs{S: 100, K: 100, T: tte, R: 0.05, Sigma: 0.25, Right: models.Call})
	if err != nil {
		t.Fatalf("Price returned error: %v", err)
	}

	chain := models.ChainSnapshot{
		Symbol:    "SPY",
		SpotPrice: 100,
		Expiry:    expiry,
		Quotes: []models.ChainQuote{
			{Strike: 100, Right: models.Call, Bid: fair - 0.01, Ask: fair + 0.01, IV: 0.26},
			// Mid below intrinsic: undeterminable, must be skipped.
			{Strike: 80, Right: models.Call, Bid: 1.0, Ask: 2.0},
			// Empty quote falls back to last trade of zero: skipped.
			{Strike: 120, Right: models.Call},
		},
	}

	out := ChainImpliedVols(chain, 0.05, 0, asOf)
	if len(out) != 1 {
		t.Fatalf("ChainImpliedVols returned %d rows, want 1", len(out))
	}
	if math.Abs(out[0].IV-0.25) > 1e-3 {
		t.Errorf("IV = %.4f, want ~0.25", out[0].IV)
	}
	if out[0].ProviderIV != 0.26 {
		t.Errorf("ProviderIV = %v, want 0.26", out[0].ProviderIV)
	}
}

func TestChainQuoteMid(t *testing.T) {
	q := models.ChainQuote{Bid: 1.0, Ask: 2.0, Last: 9}
	if q.Mid() != 1.5 {
		t.Errorf("Mid = %v, want 1.5", q.Mid())
	}
	oneSided := models.ChainQuote{Ask: 2.0, Last: 1.8}
	if oneSided.Mid() != 1.8 {
		t.Errorf("one-sided Mid = %v, want last trade 1.8", oneSided.Mid())
	}
}
