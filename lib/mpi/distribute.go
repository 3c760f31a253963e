package mpi

import (
	autopaserr "github.com/mansfield-lab/autopas/lib/error"

	"github.com/mansfield-lab/autopas/lib/selector"
)

// Block partitions a finite enumerated search space into ranks near-equal
// contiguous blocks and returns rank's block, per the distribution
// function's C >= R case.
func Block(space []selector.Configuration, rank, ranks int) []selector.Configuration {
	n := len(space)
	if ranks < 1 {
		ranks = 1
	}
	base, extra := n/ranks, n%ranks
	start := 0
	for r := 0; r < rank; r++ {
		w := base
		if r < extra {
			w++
		}
		start += w
	}
	width := base
	if rank < extra {
		width++
	}
	if start+width > n {
		width = n - start
	}
	if width < 0 {
		width = 0
	}
	return space[start : start+width]
}

// IntervalSlot computes rank's sub-interval of a cell-size-factor interval
// [lo, hi] when paired with nonCSFCount other enumerated configurations,
// per the distribution function's interval case: blockSize contiguous
// slots per non-csf configuration, rank r_offset within its block getting
// one 1/blockSize-wide slice of the interval.
func IntervalSlot(lo, hi float64, nonCSFCount, ranks, rank int) (configIndex int, slotLo, slotHi float64) {
	if nonCSFCount < 1 {
		nonCSFCount = 1
	}
	blockSize := ceilDiv(ranks, nonCSFCount)
	if blockSize < 1 {
		blockSize = 1
	}
	configIndex = rank / blockSize
	rOffset := rank % blockSize
	width := (hi - lo) / float64(blockSize)
	slotLo = lo + float64(rOffset)*width
	slotHi = lo + float64(rOffset+1)*width
	return
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

// Distribute assigns rank its slice of the search space: a contiguous
// block of nonCSFSpace when csf is a finite set (its values are already
// expanded into nonCSFSpace by Enumerate), or one interval slot of a
// single representative configuration's cell-size factor when csf is an
// interval. Fails per the distribution function's C == 0 case.
func Distribute(nonCSFSpace []selector.Configuration, csf selector.NumberSet, rank, ranks int) ([]selector.Configuration, error) {
	if len(nonCSFSpace) == 0 {
		return nil, autopaserr.Newf("mpi: distribution function called with an empty search space")
	}
	if !csf.Interval {
		return Block(nonCSFSpace, rank, ranks), nil
	}

	idx, slotLo, _ := IntervalSlot(csf.Lo, csf.Hi, len(nonCSFSpace), ranks, rank)
	if idx >= len(nonCSFSpace) {
		return nil, nil
	}
	cfg := nonCSFSpace[idx]
	cfg.CellSizeFactor = slotLo
	return []selector.Configuration{cfg}, nil
}
