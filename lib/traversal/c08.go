package traversal

import (
	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/functor"
	"github.com/mansfield-lab/autopas/lib/thread"
)

// C08Traversal colours owned cells by 2x2x2 super-cell (8 colours). Cells
// of the same colour are processed concurrently, each running the own-cell
// pass plus the 13 forward offsets; two cells sharing a colour are always
// at least two cells apart along some axis, so their forward-offset
// targets never collide, making Newton-3's symmetric write safe.
type C08Traversal struct {
	base
	lc *container.LinkedCellsContainer
	f  functor.Functor

	colours [8][][3]int
}

// NewC08 creates a c08 traversal over lc using functor f.
func NewC08(lc *container.LinkedCellsContainer, f functor.Functor, layout DataLayout, newton3 Newton3Option) *C08Traversal {
	return &C08Traversal{
		base: base{containerOption: container.LinkedCells, dataLayout: layout, newton3: newton3},
		lc:   lc, f: f,
	}
}

func (t *C08Traversal) Option() Option { return C08 }

// IsApplicable requires the owned grid to be at least 2 cells wide in
// every dimension, per the component design's c08 rule.
func (t *C08Traversal) IsApplicable(dims [3]int, threads int) bool {
	return dims[0] >= 2 && dims[1] >= 2 && dims[2] >= 2
}

func (t *C08Traversal) InitTraversal() {
	for k := range t.colours {
		t.colours[k] = t.colours[k][:0]
	}
	t.lc.EachOwnedCell(func(idx [3]int) {
		x, y, z := idx[0]-1, idx[1]-1, idx[2]-1
		colour := (x % 2) | (y%2)<<1 | (z%2)<<2
		t.colours[colour] = append(t.colours[colour], idx)
	})
	if t.dataLayout == SoA {
		loadAllCells(t.lc, t.f)
	}
}

func (t *C08Traversal) TraverseParticlePairs() {
	n3 := t.newton3.Bool()
	for _, cells := range t.colours {
		thread.ParallelFor(len(cells), thread.DefaultChunkSize, func(i int) {
			processOwnedCellForward(t.lc, t.f, t.dataLayout, n3, cells[i])
		})
	}
}

func (t *C08Traversal) EndTraversal() {
	if t.dataLayout == SoA {
		extractAllCells(t.lc)
	}
}
