package recur

import (
	"math"
	"sort"
	"time"
)

// Frequency is an inferred billing cadence.
type Frequency string

const (
	Weekly   Frequency = "weekly"
	Biweekly Frequency = "biweekly"
	Monthly  Frequency = "monthly"
	Annually Frequency = "annually"
)

// IntervalDays returns the nominal interval for a cadence, or 0 for an
// unknown frequency value.
func IntervalDays(f Frequency) int {
	switch f {
	case Weekly:
		return 7
	case Biweekly:
		return 14
	case Monthly:
		return 30
	case Annually:
		return 365
	}
	return 0
}

// cadence buckets keyed by mean day-gap range. The monthly window is wide on
// purpose: it has to absorb 28-31 day billing drift. Changing these values
// changes which charges classify as recurring.
type bucket struct {
	minMean   float64 // exclusive, except annually
	maxMean   float64 // inclusive
	frequency Frequency
	nominal   int
	tolerance int
}

var buckets = []bucket{
	{math.Inf(-1), 10, Weekly, 7, 1},
	{10, 18, Biweekly, 14, 2},
	{18, 45, Monthly, 30, 3},
	{350, 380, Annually, 365, 10},
}

// ClassifyFrequency infers a cadence from observed occurrence dates.
// It needs at least 3 dates; the mean consecutive gap selects a candidate
// bucket and every individual gap must sit within that bucket's tolerance of
// the nominal interval, otherwise the spacing is too erratic to be a real
// subscription. Returns the cadence, its nominal interval in days, and
// whether a cadence matched.
func ClassifyFrequency(dates []time.Time) (Frequency, int, bool) {
	if len(dates) < 3 {
		return "", 0, false
	}
	sorted := make([]time.Time, len(dates))
	copy(sorted, dates)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	gaps := make([]int, 0, len(sorted)-1)
	sum := 0
	for i := 1; i < len(sorted); i++ {
		gap := int(math.Round(sorted[i].Sub(sorted[i-1]).Hours() / 24))
		gaps = append(gaps, gap)
		sum += gap
	}
	mean := float64(sum) / float64(len(gaps))

	for _, b := range buckets {
		if b.frequency == Annually {
			if mean < b.minMean || mean > b.maxMean {
				continue
			}
		} else if mean <= b.minMean || mean > b.maxMean {
			continue
		}
		for _, gap := range gaps {
			if gap < b.nominal-b.tolerance || gap > b.nominal+b.tolerance {
				return "", 0, false
			}
		}
		return b.frequency, b.nominal, true
	}
	return "", 0, false
}
