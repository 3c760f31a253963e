package mpi

import (
	"math"
	"testing"

	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/selector"
	"github.com/mansfield-lab/autopas/lib/traversal"
)

func fakeSpace(n int) []selector.Configuration {
	space := make([]selector.Configuration, n)
	for i := range space {
		space[i] = selector.Configuration{
			Container:      container.LinkedCells,
			Traversal:      traversal.C01,
			DataLayout:     traversal.AoS,
			CellSizeFactor: float64(i),
		}
	}
	return space
}

func TestBlockCoversWholeSpaceExactly(t *testing.T) {
	for _, ranks := range []int{1, 2, 3, 5, 7} {
		space := fakeSpace(17)
		seen := make(map[float64]bool)
		total := 0
		for rank := 0; rank < ranks; rank++ {
			block := Block(space, rank, ranks)
			total += len(block)
			for _, cfg := range block {
				if seen[cfg.CellSizeFactor] {
					t.Fatalf("ranks=%d: configuration %v assigned to more than one rank", ranks, cfg)
				}
				seen[cfg.CellSizeFactor] = true
			}
		}
		if total != len(space) {
			t.Errorf("ranks=%d: blocks covered %d of %d configurations", ranks, total, len(space))
		}
	}
}

func TestIntervalSlotPartitionsWithoutGaps(t *testing.T) {
	lo, hi := 1.0, 2.0
	nonCSFCount, ranks := 2, 6
	prevHi := make(map[int]float64)
	for rank := 0; rank < ranks; rank++ {
		idx, slotLo, slotHi := IntervalSlot(lo, hi, nonCSFCount, ranks, rank)
		if slotLo < lo || slotHi > hi || slotLo > slotHi {
			t.Errorf("rank %d: slot [%g, %g] outside [%g, %g]", rank, slotLo, slotHi, lo, hi)
		}
		if prev, ok := prevHi[idx]; ok && slotLo != prev {
			t.Errorf("rank %d: slot starts at %g, but configuration %d's previous slot ends at %g", rank, slotLo, idx, prev)
		} else if !ok && slotLo != lo {
			t.Errorf("rank %d: first slot of configuration %d starts at %g, want %g", rank, idx, slotLo, lo)
		}
		prevHi[idx] = slotHi
	}
	for idx, end := range prevHi {
		if math.Abs(end-hi) > 1e-12 {
			t.Errorf("configuration %d: slots end at %g, want %g", idx, end, hi)
		}
	}
}

func TestDistributeFailsOnEmptySpace(t *testing.T) {
	_, err := Distribute(nil, selector.FiniteSet(1.0), 0, 4)
	if err == nil {
		t.Fatal("expected an error distributing an empty search space")
	}
}
