package strategy

import (
	"math"
	"testing"
	"time"

	"options-analytics/internal/models"
)

var testExpiry = time.Date(2023, 7, 21, 0, 0, 0, 0, time.UTC)

func TestLongStraddleAtExpiry(t *testing.T) {
	def := Straddle(100, testExpiry, 3.33, 2.93, models.Long)
	grid := PriceGrid(100, 0.30, 121)

	res, err := PnL(def, grid, 0, 0.20, 0.05)
	if err != nil {
		t.Fatalf("PnL returned error: %v", err)
	}

	if len(res.Breakevens) != 2 {
		t.Fatalf("breakevens = %v, want two points", res.Breakevens)
	}
	if math.Abs(res.Breakevens[0]-93.74) > 0.26 {
		t.Errorf("lower breakeven = %.2f, want ~93.74", res.Breakevens[0])
	}
	if math.Abs(res.Breakevens[1]-106.26) > 0.26 {
		t.Errorf("upper breakeven = %.2f, want ~106.26", res.Breakevens[1])
	}

	// Worst case at the strike: both premiums expire worthless.
	if math.Abs(res.MaxLoss-(-626)) > 1 {
		t.Errorf("max loss = %.2f, want ~-626", res.MaxLoss)
	}
	// Upside within the grid comes from the call wing at the top of the grid.
	wingGain := (130 - 100 - 6.26) * 100
	if math.Abs(res.MaxProfit-wingGain) > 1 {
		t.Errorf("max profit = %.2f, want ~%.2f", res.MaxProfit, wingGain)
	}
}

func TestOptionLegPnLAtExpiry(t *testing.T) {
	prices := []float64{90, 100, 110}

	long := OptionLeg{Right: models.Call, Position: models.Long, Strike: 100, Expiration: testExpiry, Quantity: 1, Premium: 3}
	pnl, err := OptionLegPnL(long, prices, 0, 0.20, 0.05)
	if err != nil {
		t.Fatalf("OptionLegPnL returned error: %v", err)
	}
	want := []float64{-300, -300, 700}
	for i := range want {
		if math.Abs(pnl[i]-want[i]) > 1e-9 {
			t.Errorf("long call pnl[%d] = %v, want %v", i, pnl[i], want[i])
		}
	}

	short := long
	short.Position = models.Short
	pnl, err = OptionLegPnL(short, prices, 0, 0.20, 0.05)
	if err != nil {
		t.Fatalf("OptionLegPnL returned error: %v", err)
	}
	want = []float64{300, 300, -700}
	for i := range want {
		if math.Abs(pnl[i]-want[i]) > 1e-9 {
			t.Errorf("short call pnl[%d] = %v, want %v", i, pnl[i], want[i])
		}
	}
}

func TestOptionLegPnLInvalidRight(t *testing.T) {
	leg := OptionLeg{Right: models.Right("swap"), Position: models.Long, Strike: 100, Quantity: 1}
	if _, err := OptionLegPnL(leg, []float64{100}, 0, 0.20, 0.05); err == nil {
		t.Error("expected error for invalid right")
	}
}

func TestStockLegPnL(t *testing.T) {
	long := StockLeg{Position: models.Long, Quantity: 100, EntryPrice: 50}
	pnl := StockLegPnL(long, []float64{45, 50, 55})
	want := []float64{-500, 0, 500}
	for i := range want {
		if pnl[i] != want[i] {
			t.Errorf("long stock pnl[%d] = %v, want %v", i, pnl[i], want[i])
		}
	}

	short := StockLeg{Position: models.Short, Quantity: 100, EntryPrice: 50}
	pnl = StockLegPnL(short, []float64{45, 55})
	if pnl[0] != 500 || pnl[1] != -500 {
		t.Errorf("short stock pnl = %v, want [500 -500]", pnl)
	}
}

func TestFindBreakevensLinearCurve(t *testing.T) {
	// A linear curve crossing zero at exactly 97.5.
	prices := []float64{90, 95, 100, 105}
	pnl := make([]float64, len(prices))
	for i, p := range prices {
		pnl[i] = (p - 97.5) * 10
	}

	breakevens := findBreakevens(prices, pnl, breakevenTolerance)
	if len(breakevens) != 1 {
		t.Fatalf("breakevens = %v, want one point", breakevens)
	}
	if math.Abs(breakevens[0]-97.5) > 1e-9 {
		t.Errorf("breakeven = %v, want 97.5", breakevens[0])
	}
}

func TestFindBreakevensSkipsFlatCurve(t *testing.T) {
	prices := []float64{90, 100, 110}
	flat := []float64{0, 0, 0}
	if got := findBreakevens(prices, flat, breakevenTolerance); len(got) != 0 {
		t.Errorf("flat curve breakevens = %v, want none", got)
	}
}

func TestNetCostSigns(t *testing.T) {
	debit := LongCall(100, testExpiry, 0)
	cost, err := NetCost(debit, 100, 30.0/365.0, 0.20, 0.05)
	if err != nil {
		t.Fatalf("NetCost returned error: %v", err)
	}
	if cost <= 0 {
		t.Errorf("long call net cost = %v, want positive debit", cost)
	}

	credit := Straddle(100, testExpiry, 0, 0, models.Short)
	cost, err = NetCost(credit, 100, 30.0/365.0, 0.20, 0.05)
	if err != nil {
		t.Fatalf("NetCost returned error: %v", err)
	}
	if cost >= 0 {
		t.Errorf("short straddle net cost = %v, want negative credit", cost)
	}
}

func TestValueIgnoresPremiums(t *testing.T) {
	withPremium := LongCall(100, testExpiry, 5.0)
	withoutPremium := LongCall(100, testExpiry, 0)

	a, err := Value(withPremium, 105, 30.0/365.0, 0.20, 0.05)
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	b, err := Value(withoutPremium, 105, 30.0/365.0, 0.20, 0.05)
	if err != nil {
		t.Fatalf("Value returned error: %v", err)
	}
	if a != b {
		t.Errorf("Value with premium %v != without %v", a, b)
	}
}

func TestPriceGrid(t *testing.T) {
	grid := PriceGrid(100, 0.30, 121)
	if len(grid) != 121 {
		t.Fatalf("grid length = %d, want 121", len(grid))
	}
	if math.Abs(grid[0]-70) > 1e-9 || math.Abs(grid[120]-130) > 1e-9 {
		t.Errorf("grid span = [%v, %v], want [70, 130]", grid[0], grid[120])
	}
	if math.Abs(grid[60]-100) > 1e-9 {
		t.Errorf("grid midpoint = %v, want 100", grid[60])
	}
}

func TestNetGreeksStraddleNearZeroDelta(t *testing.T) {
	def := Straddle(100, testExpiry, 0, 0, models.Long)
	greeks, err := NetGreeks(def, 100, 30.0/365.0, 0.20, 0.05)
	if err != nil {
		t.Fatalf("NetGreeks returned error: %v", err)
	}
	// Call and put deltas nearly offset at the money; gamma and vega stack.
	if math.Abs(greeks.Delta) > 20 {
		t.Errorf("ATM straddle delta = %v, want near zero", greeks.Delta)
	}
	if greeks.Gamma <= 0 || greeks.Vega <= 0 {
		t.Errorf("straddle gamma/vega = %v/%v, want positive", greeks.Gamma, greeks.Vega)
	}
	if greeks.Theta >= 0 {
		t.Errorf("long straddle theta = %v, want negative", greeks.Theta)
	}
}

func TestNetGreeksStockLegAddsDeltaOnly(t *testing.T) {
	def := Definition{
		StockLegs: []StockLeg{{Position: models.Long, Quantity: 100, EntryPrice: 50}},
	}
	greeks, err := NetGreeks(def, 50, 0.1, 0.20, 0.05)
	if err != nil {
		t.Fatalf("NetGreeks returned error: %v", err)
	}
	if greeks.Delta != 100 {
		t.Errorf("stock delta = %v, want 100", greeks.Delta)
	}
	if greeks.Gamma != 0 || greeks.Vega != 0 || greeks.Theta != 0 || greeks.Rho != 0 {
		t.Errorf("stock leg contributed non-delta Greeks: %+v", greeks)
	}
}
