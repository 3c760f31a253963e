package geom

import (
	"gonum.org/v1/gonum/stat"
)

// LoadEstimate is a per-cell (or per-slice) estimated cost, produced by one
// of AutoPas' load estimators and consumed by the balanced-sliced traversal
// to size slices so that aggregated load is equal across threads.
type LoadEstimate float64

// SquaredParticlesPerCell estimates load as the squared particle count of a
// cell, the cheapest load estimator and the one used when none of the
// functor-aware estimators apply.
func SquaredParticlesPerCell(n int) LoadEstimate {
	return LoadEstimate(n * n)
}

// BalanceSlices partitions n items with the given per-item loads into
// nSlices contiguous slices whose aggregate load is as equal as possible,
// each slice getting at least one item, as required by the balanced-sliced
// traversal. It reports the starting index of every slice, of length
// nSlices+1 (a trailing sentinel equal to n).
func BalanceSlices(loads []LoadEstimate, nSlices int) []int {
	n := len(loads)
	if nSlices > n {
		nSlices = n
	}
	if nSlices < 1 {
		nSlices = 1
	}

	total := 0.0
	for _, l := range loads {
		total += float64(l)
	}
	target := total / float64(nSlices)

	bounds := make([]int, 0, nSlices+1)
	bounds = append(bounds, 0)
	acc := 0.0
	start := 0
	for s := 1; s < nSlices; s++ {
		// Guarantee every remaining slice gets at least one cell.
		maxStart := n - (nSlices - s)
		for start < maxStart {
			acc += float64(loads[start])
			start++
			if acc >= target*float64(s) {
				break
			}
		}
		bounds = append(bounds, start)
	}
	bounds = append(bounds, n)
	return bounds
}

// LoadVariance reports the sample variance (n-1 denominator, as computed by
// gonum's stat.Variance) of a set of per-slice aggregate loads, a measure
// of how evenly BalanceSlices spread load across threads.
func LoadVariance(perSlice []float64) float64 {
	if len(perSlice) < 2 {
		return 0
	}
	return stat.Variance(perSlice, nil)
}
