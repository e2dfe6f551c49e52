package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	half = decimal.RequireFromString("0.5")
	one  = decimal.NewFromInt(1)

	// roundDownCeiling is the largest fraction that rounds to the half mark.
	// Fractions in (0.49, 0.5) round up to the next whole number.
	// TODO: confirm the (0.49, 0.5) band with the pricing owner; it may have been meant as < 0.5.
	roundDownCeiling = decimal.RequireFromString("0.49")
)

// CustomRound snaps a price onto the {N, N+0.5} grid.
//
//	fraction == 0          -> unchanged
//	fraction <= 0.49       -> N + 0.5
//	fraction == 0.5        -> unchanged
//	anything else          -> N + 1
//
// The fraction is taken from the shortest decimal form of the price, so 10.49
// has fraction 0.49 exactly rather than its binary approximation.
func CustomRound(price float64) float64 {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return price
	}

	p := decimal.NewFromFloat(price)
	whole := p.Floor()
	frac := p.Sub(whole)

	switch {
	case frac.IsZero():
		return price
	case frac.LessThanOrEqual(roundDownCeiling):
		return whole.Add(half).InexactFloat64()
	case frac.Equal(half):
		return price
	default:
		return whole.Add(one).InexactFloat64()
	}
}
