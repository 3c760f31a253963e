package traversal

import (
	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/functor"
	"github.com/mansfield-lab/autopas/lib/thread"
)

// C01Traversal gives every owned cell its own colour: every cell runs
// fully in parallel, scanning all 26 neighbour offsets but writing only
// into its own particles. Newton-3 is never used, per the applicability
// rule: symmetric writes across colours here would race.
type C01Traversal struct {
	base
	lc *container.LinkedCellsContainer
	f  functor.Functor

	cells [][3]int
}

// NewC01 creates a c01 traversal over lc using functor f.
func NewC01(lc *container.LinkedCellsContainer, f functor.Functor, layout DataLayout) *C01Traversal {
	return &C01Traversal{
		base: base{containerOption: container.LinkedCells, dataLayout: layout, newton3: Newton3Disabled},
		lc:   lc, f: f,
	}
}

func (t *C01Traversal) Option() Option { return C01 }

// IsApplicable reports true for any non-empty grid: c01 has no minimum
// width requirement, but it is incompatible with Newton-3, which this
// traversal never offers regardless of the caller's request.
func (t *C01Traversal) IsApplicable(dims [3]int, threads int) bool {
	return dims[0] > 0 && dims[1] > 0 && dims[2] > 0
}

func (t *C01Traversal) InitTraversal() {
	t.cells = t.cells[:0]
	t.lc.EachOwnedCell(func(idx [3]int) { t.cells = append(t.cells, idx) })
	if t.dataLayout == SoA {
		loadAllCells(t.lc, t.f)
	}
}

func (t *C01Traversal) TraverseParticlePairs() {
	thread.ParallelFor(len(t.cells), thread.DefaultChunkSize, func(i int) {
		processOwnedCellAll26(t.lc, t.f, t.dataLayout, t.cells[i])
	})
}

func (t *C01Traversal) EndTraversal() {
	if t.dataLayout == SoA {
		extractAllCells(t.lc)
	}
}
