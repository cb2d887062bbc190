package sim

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// percentileAt returns the value at fraction p of the sorted ascending data:
// sorted[floor(p·len)], clamped to the last element. Callers must pass data
// already sorted; the empty case is guarded upstream.
func percentileAt(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Floor(p * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

// meanStd returns the mean and sample standard deviation of the data.
func meanStd(data []float64) (mean, std float64) {
	if len(data) == 0 {
		return 0, 0
	}
	mean = stat.Mean(data, nil)
	if len(data) > 1 {
		std = stat.StdDev(data, nil)
	}
	return mean, std
}
