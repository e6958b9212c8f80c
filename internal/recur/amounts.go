package recur

import "github.com/shopspring/decimal"

// relative deviation allowed around the mean charge amount. Tolerates small
// tax/FX movement on a fixed price while rejecting variable spend at the
// same store.
var maxDeviation = decimal.NewFromFloat(0.05)

// AmountsConsistent reports whether a group's charge amounts are stable
// enough to represent one subscription or bill. Requires at least 2 amounts;
// a zero mean is degenerate and fails.
func AmountsConsistent(amounts []decimal.Decimal) bool {
	if len(amounts) < 2 {
		return false
	}
	mean := Mean(amounts)
	if mean.IsZero() {
		return false
	}
	absMean := mean.Abs()
	for _, a := range amounts {
		if a.Sub(mean).Abs().Div(absMean).Cmp(maxDeviation) > 0 {
			return false
		}
	}
	return true
}

// Mean returns the arithmetic mean of amounts, zero for an empty slice.
func Mean(amounts []decimal.Decimal) decimal.Decimal {
	if len(amounts) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, a := range amounts {
		sum = sum.Add(a)
	}
	return sum.Div(decimal.NewFromInt(int64(len(amounts))))
}
