package dataprocessing

import (
	"math"
	"sort"
)

// Median returns the middle value, or the mean of the two middle values for an
// even count. It returns 0 for no values. values is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := sortedCopy(values)
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Quantile returns the q-th quantile (0..1) of sorted using linear interpolation
// between closest ranks
func Quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}

	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}

	index := q * float64(n-1)
	lower := int(math.Floor(index))
	upper := int(math.Ceil(index))

	if lower == upper {
		return sorted[lower]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// FiveNumberSummary returns min, first quartile, median, third quartile and max
func FiveNumberSummary(values []float64) (min, q1, median, q3, max float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}
	sorted := sortedCopy(values)
	return sorted[0], Quantile(sorted, 0.25), Quantile(sorted, 0.5), Quantile(sorted, 0.75), sorted[len(sorted)-1]
}

// percent returns part/whole as 0-100, or 0 when whole is zero
func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

func sortedCopy(values []float64) []float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return sorted
}
