package strategy

import (
	"fmt"
	"time"

	"options-analytics/internal/models"
)

// Builders return fully-populated immutable definitions from caller-supplied
// strikes, expirations and premiums. They perform no pricing.

// LongCall creates a single-leg long call strategy.
func LongCall(strike float64, expiration time.Time, premium float64) Definition {
	return Definition{
		Name: fmt.Sprintf("Long Call $%g", strike),
		Type: "long_call",
		OptionLegs: []OptionLeg{{
			Right:      models.Call,
			Position:   models.Long,
			Strike:     strike,
			Expiration: expiration,
			Quantity:   1,
			Premium:    premium,
		}},
		Description: fmt.Sprintf("Long call with $%g strike, expires %s", strike, expiration.Format("2006-01-02")),
		Created:     time.Now(),
	}
}

// LongPut creates a single-leg long put strategy.
func LongPut(strike float64, expiration time.Time, premium float64) Definition {
	return Definition{
		Name: fmt.Sprintf("Long Put $%g", strike),
		Type: "long_put",
		OptionLegs: []OptionLeg{{
			Right:      models.Put,
			Position:   models.Long,
			Strike:     strike,
			Expiration: expiration,
			Quantity:   1,
			Premium:    premium,
		}},
		Description: fmt.Sprintf("Long put with $%g strike, expires %s", strike, expiration.Format("2006-01-02")),
		Created:     time.Now(),
	}
}

// CoveredCall creates a long stock position with a short call against it.
// One contract is written per 100 shares.
func CoveredCall(stockPrice, callStrike float64, expiration time.Time, stockQuantity int, callPremium float64) Definition {
	return Definition{
		Name: fmt.Sprintf("Covered Call $%g", callStrike),
		Type: "covered_call",
		OptionLegs: []OptionLeg{{
			Right:      models.Call,
			Position:   models.Short,
			Strike:     callStrike,
			Expiration: expiration,
			Quantity:   stockQuantity / 100,
			Premium:    callPremium,
		}},
		StockLegs: []StockLeg{{
			Position:   models.Long,
			Quantity:   stockQuantity,
			EntryPrice: stockPrice,
		}},
		Description: fmt.Sprintf("Long %d shares, short call $%g", stockQuantity, callStrike),
		Created:     time.Now(),
	}
}

// Straddle creates a call and put at the same strike, long or short.
func Straddle(strike float64, expiration time.Time, callPremium, putPremium float64, side models.PositionSide) Definition {
	label := "Long"
	if side == models.Short {
		label = "Short"
	}
	return Definition{
		Name: fmt.Sprintf("%s Straddle $%g", label, strike),
		Type: "straddle",
		OptionLegs: []OptionLeg{
			{Right: models.Call, Position: side, Strike: strike, Expiration: expiration, Quantity: 1, Premium: callPremium},
			{Right: models.Put, Position: side, Strike: strike, Expiration: expiration, Quantity: 1, Premium: putPremium},
		},
		Description: fmt.Sprintf("%s straddle at $%g strike", label, strike),
		Created:     time.Now(),
	}
}

// Strangle creates an out-of-the-money call and put pair, long or short.
func Strangle(callStrike, putStrike float64, expiration time.Time, callPremium, putPremium float64, side models.PositionSide) Definition {
	label := "Long"
	if side == models.Short {
		label = "Short"
	}
	return Definition{
		Name: fmt.Sprintf("%s Strangle $%g/$%g", label, putStrike, callStrike),
		Type: "strangle",
		OptionLegs: []OptionLeg{
			{Right: models.Call, Position: side, Strike: callStrike, Expiration: expiration, Quantity: 1, Premium: callPremium},
			{Right: models.Put, Position: side, Strike: putStrike, Expiration: expiration, Quantity: 1, Premium: putPremium},
		},
		Description: fmt.Sprintf("%s strangle: $%g put / $%g call", label, putStrike, callStrike),
		Created:     time.Now(),
	}
}

// BullCallSpread creates a long call at the lower strike and a short call at
// the higher strike.
func BullCallSpread(longStrike, shortStrike float64, expiration time.Time, longPremium, shortPremium float64) Definition {
	return Definition{
		Name: fmt.Sprintf("Bull Call Spread $%g/$%g", longStrike, shortStrike),
		Type: "bull_call_spread",
		OptionLegs: []OptionLeg{
			{Right: models.Call, Position: models.Long, Strike: longStrike, Expiration: expiration, Quantity: 1, Premium: longPremium},
			{Right: models.Call, Position: models.Short, Strike: shortStrike, Expiration: expiration, Quantity: 1, Premium: shortPremium},
		},
		Description: fmt.Sprintf("Long $%g call, short $%g call", longStrike, shortStrike),
		Created:     time.Now(),
	}
}

// BearPutSpread creates a long put at the higher strike and a short put at
// the lower strike.
func BearPutSpread(longStrike, shortStrike float64, expiration time.Time, longPremium, shortPremium float64) Definition {
	return Definition{
		Name: fmt.Sprintf("Bear Put Spread $%g/$%g", longStrike, shortStrike),
		Type: "bear_put_spread",
		OptionLegs: []OptionLeg{
			{Right: models.Put, Position: models.Long, Strike: longStrike, Expiration: expiration, Quantity: 1, Premium: longPremium},
			{Right: models.Put, Position: models.Short, Strike: shortStrike, Expiration: expiration, Quantity: 1, Premium: shortPremium},
		},
		Description: fmt.Sprintf("Long $%g put, short $%g put", longStrike, shortStrike),
		Created:     time.Now(),
	}
}

// IronCondor creates a four-leg range-bound strategy: a put spread below and
// a call spread above the current price.
func IronCondor(putLongStrike, putShortStrike, callShortStrike, callLongStrike float64, expiration time.Time) Definition {
	return Definition{
		Name: fmt.Sprintf("Iron Condor $%g/$%g/$%g/$%g", putLongStrike, putShortStrike, callShortStrike, callLongStrike),
		Type: "iron_condor",
		OptionLegs: []OptionLeg{
			{Right: models.Put, Position: models.Long, Strike: putLongStrike, Expiration: expiration, Quantity: 1},
			{Right: models.Put, Position: models.Short, Strike: putShortStrike, Expiration: expiration, Quantity: 1},
			{Right: models.Call, Position: models.Short, Strike: callShortStrike, Expiration: expiration, Quantity: 1},
			{Right: models.Call, Position: models.Long, Strike: callLongStrike, Expiration: expiration, Quantity: 1},
		},
		Description: fmt.Sprintf("Iron condor with strikes %g/%g/%g/%g", putLongStrike, putShortStrike, callShortStrike, callLongStrike),
		Created:     time.Now(),
	}
}

// ButterflySpread creates a long/short/long ladder centered on centerStrike
// with wings wingWidth away, in calls or puts.
func ButterflySpread(centerStrike, wingWidth float64, expiration time.Time, right models.Right) Definition {
	lower := centerStrike - wingWidth
	upper := centerStrike + wingWidth
	label := "Call"
	if right == models.Put {
		label = "Put"
	}
	return Definition{
		Name: fmt.Sprintf("%s Butterfly $%g/$%g/$%g", label, lower, centerStrike, upper),
		Type: "butterfly_spread",
		OptionLegs: []OptionLeg{
			{Right: right, Position: models.Long, Strike: lower, Expiration: expiration, Quantity: 1},
			{Right: right, Position: models.Short, Strike: centerStrike, Expiration: expiration, Quantity: 2},
			{Right: right, Position: models.Long, Strike: upper, Expiration: expiration, Quantity: 1},
		},
		Description: fmt.Sprintf("%s butterfly centered at $%g with $%g wings", label, centerStrike, wingWidth),
		Created:     time.Now(),
	}
}
