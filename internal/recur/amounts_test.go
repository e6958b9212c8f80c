package recur

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func decs(ss ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(ss))
	for i, s := range ss {
		out[i] = decimal.RequireFromString(s)
	}
	return out
}

func TestAmountsConsistentNeedsTwoAmounts(t *testing.T) {
	t.Parallel()
	require.False(t, AmountsConsistent(nil))
	require.False(t, AmountsConsistent(decs("15.99")))
}

func TestAmountsConsistentConstant(t *testing.T) {
	t.Parallel()
	require.True(t, AmountsConsistent(decs("15.99", "15.99", "15.99")))
}

func TestAmountsConsistentSmallDrift(t *testing.T) {
	t.Parallel()
	// ~2% movement, e.g. a tax change mid-year.
	require.True(t, AmountsConsistent(decs("10.00", "10.20", "9.90")))
}

func TestAmountsConsistentRejectsLargeDeviation(t *testing.T) {
	t.Parallel()
	require.False(t, AmountsConsistent(decs("10.00", "10.00", "12.00")))
}

func TestAmountsConsistentZeroMean(t *testing.T) {
	t.Parallel()
	require.False(t, AmountsConsistent(decs("5.00", "-5.00")))
}

func TestAmountsConsistentNegativeGroup(t *testing.T) {
	t.Parallel()
	// Consistency is sign-agnostic; the positive-amount rule is enforced at
	// upsert time, not here.
	require.True(t, AmountsConsistent(decs("-9.99", "-9.99")))
}

func TestMean(t *testing.T) {
	t.Parallel()
	require.True(t, Mean(nil).IsZero())
	require.Equal(t, "10.1", Mean(decs("10.00", "10.20")).String())
}
