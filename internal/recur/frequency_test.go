package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func days(ss ...string) []time.Time {
	out := make([]time.Time, len(ss))
	for i, s := range ss {
		out[i] = d(s)
	}
	return out
}

func TestClassifyFrequencyNeedsThreeDates(t *testing.T) {
	t.Parallel()
	for _, dates := range [][]time.Time{nil, days("2024-01-01"), days("2024-01-01", "2024-01-08")} {
		_, _, ok := ClassifyFrequency(dates)
		require.False(t, ok)
	}
}

func TestClassifyFrequencyWeekly(t *testing.T) {
	t.Parallel()
	f, interval, ok := ClassifyFrequency(days("2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22"))
	require.True(t, ok)
	require.Equal(t, Weekly, f)
	require.Equal(t, 7, interval)
}

func TestClassifyFrequencyWeeklyUnsortedInput(t *testing.T) {
	t.Parallel()
	f, interval, ok := ClassifyFrequency(days("2024-01-15", "2024-01-01", "2024-01-22", "2024-01-08"))
	require.True(t, ok)
	require.Equal(t, Weekly, f)
	require.Equal(t, 7, interval)
}

func TestClassifyFrequencyBiweekly(t *testing.T) {
	t.Parallel()
	f, interval, ok := ClassifyFrequency(days("2024-01-05", "2024-01-19", "2024-02-02", "2024-02-17"))
	require.True(t, ok)
	require.Equal(t, Biweekly, f)
	require.Equal(t, 14, interval)
}

func TestClassifyFrequencyMonthlyWithBillingDrift(t *testing.T) {
	t.Parallel()
	// 31, 31 and 30 day gaps: typical month-end drift.
	f, interval, ok := ClassifyFrequency(days("2024-01-01", "2024-02-01", "2024-03-03", "2024-04-02"))
	require.True(t, ok)
	require.Equal(t, Monthly, f)
	require.Equal(t, 30, interval)
}

func TestClassifyFrequencyAnnually(t *testing.T) {
	t.Parallel()
	f, interval, ok := ClassifyFrequency(days("2022-03-15", "2023-03-15", "2024-03-14"))
	require.True(t, ok)
	require.Equal(t, Annually, f)
	require.Equal(t, 365, interval)
}

func TestClassifyFrequencyIrregularGaps(t *testing.T) {
	t.Parallel()
	// Gaps of 19 and 55 days: the mean lands in the monthly bucket but the
	// individual gaps blow past the tolerance.
	_, _, ok := ClassifyFrequency(days("2024-01-01", "2024-01-20", "2024-03-15"))
	require.False(t, ok)
}

func TestClassifyFrequencyMeanBetweenBuckets(t *testing.T) {
	t.Parallel()
	// ~90 day gaps (quarterly) fall between monthly and annual buckets.
	_, _, ok := ClassifyFrequency(days("2024-01-01", "2024-04-01", "2024-07-01"))
	require.False(t, ok)
}

func TestClassifyFrequencyWeeklyToleranceEdge(t *testing.T) {
	t.Parallel()
	// 6 and 8 day gaps are inside the +-1 weekly window.
	f, _, ok := ClassifyFrequency(days("2024-01-01", "2024-01-07", "2024-01-15"))
	require.True(t, ok)
	require.Equal(t, Weekly, f)

	// A 5 day gap is not, even though the mean stays weekly.
	_, _, ok = ClassifyFrequency(days("2024-01-01", "2024-01-06", "2024-01-14"))
	require.False(t, ok)
}

func TestIntervalDays(t *testing.T) {
	t.Parallel()
	require.Equal(t, 7, IntervalDays(Weekly))
	require.Equal(t, 14, IntervalDays(Biweekly))
	require.Equal(t, 30, IntervalDays(Monthly))
	require.Equal(t, 365, IntervalDays(Annually))
	require.Equal(t, 0, IntervalDays(Frequency("fortnightly")))
}
