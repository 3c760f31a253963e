package selector

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Strategy names one of the three ways the tuner reduces a configuration's
// samples to a single comparable figure.
type Strategy int

const (
	FastestAbs Strategy = iota
	FastestMean
	FastestMedian
)

func (s Strategy) String() string {
	switch s {
	case FastestMean:
		return "fastestMean"
	case FastestMedian:
		return "fastestMedian"
	default:
		return "fastestAbs"
	}
}

// Reduce collapses samples (one wall-clock measurement per repeated run of
// the same configuration) into a single figure of merit under s. samples
// must be non-empty.
func (s Strategy) Reduce(samples []time.Duration) time.Duration {
	values := make([]float64, len(samples))
	for i, d := range samples {
		values[i] = float64(d)
	}

	switch s {
	case FastestMean:
		return time.Duration(stat.Mean(values, nil))
	case FastestMedian:
		sorted := append([]float64(nil), values...)
		sort.Float64s(sorted)
		return time.Duration(stat.Quantile(0.5, stat.Empirical, sorted, nil))
	default:
		min := samples[0]
		for _, d := range samples[1:] {
			if d < min {
				min = d
			}
		}
		return min
	}
}
