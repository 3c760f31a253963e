package mpi

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Similarity computes the per-rank similarity metric s = homogeneity +
// w*maxDensity over a rank's owned-cell particle counts, grounded on
// the corpus's gonum/stat-based simulation summary statistics
// (stat.Mean/stat.StdDev). homogeneity is 1/(1+coefficient of variation):
// a rank whose density is uniform across its owned cells scores near 1,
// a lumpy one scores near 0.
func Similarity(cellCounts []float64, w float64) float64 {
	if len(cellCounts) == 0 {
		return 0
	}
	mean := stat.Mean(cellCounts, nil)
	maxDensity := cellCounts[0]
	for _, c := range cellCounts {
		if c > maxDensity {
			maxDensity = c
		}
	}
	if mean == 0 {
		return w * maxDensity
	}
	cv := stat.StdDev(cellCounts, nil) / mean
	homogeneity := 1 / (1 + cv)
	return homogeneity + w*maxDensity
}

// Bucket splits ranks into similarity buckets: sort every rank's
// already-gathered similarity value, take first differences, and start a
// new bucket wherever the normalized difference exceeds threshold. Returns
// each rank's bucket id, indexed by rank.
func Bucket(similarities []float64, threshold float64) []int {
	type ranked struct {
		rank int
		s    float64
	}
	ranks := make([]ranked, len(similarities))
	for i, s := range similarities {
		ranks[i] = ranked{rank: i, s: s}
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i].s < ranks[j].s })

	buckets := make([]int, len(similarities))
	id := 0
	for i, r := range ranks {
		if i > 0 {
			prev := ranks[i-1].s
			diff := r.s - prev
			norm := diff
			if prev != 0 {
				norm = diff / math.Abs(prev)
			}
			if norm > threshold {
				id++
			}
		}
		buckets[r.rank] = id
	}
	return buckets
}

// SplitByBucket splits comm into one sub-communicator per bucket id,
// grouping ranks that share tuning measurements.
func SplitByBucket(comm Communicator, bucket int) Communicator {
	return comm.Split(bucket, comm.Rank())
}
