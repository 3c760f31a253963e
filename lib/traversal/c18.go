package traversal

import (
	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/functor"
	"github.com/mansfield-lab/autopas/lib/thread"
)

// C18Traversal colours owned cells with an 18-way scheme (3-wide along two
// axes, 2-wide along the third), a middle ground between c01's per-cell
// colouring and c08's 8-colour super-cells.
type C18Traversal struct {
	base
	lc *container.LinkedCellsContainer
	f  functor.Functor

	colours [18][][3]int
}

// NewC18 creates a c18 traversal over lc using functor f.
func NewC18(lc *container.LinkedCellsContainer, f functor.Functor, layout DataLayout, newton3 Newton3Option) *C18Traversal {
	return &C18Traversal{
		base: base{containerOption: container.LinkedCells, dataLayout: layout, newton3: newton3},
		lc:   lc, f: f,
	}
}

func (t *C18Traversal) Option() Option { return C18 }

// IsApplicable requires the owned grid to be at least 2 cells wide in
// every dimension, the same minimum c08 needs since both walk the same 13
// forward offsets.
func (t *C18Traversal) IsApplicable(dims [3]int, threads int) bool {
	return dims[0] >= 2 && dims[1] >= 2 && dims[2] >= 2
}

func (t *C18Traversal) InitTraversal() {
	for k := range t.colours {
		t.colours[k] = t.colours[k][:0]
	}
	t.lc.EachOwnedCell(func(idx [3]int) {
		x, y, z := idx[0]-1, idx[1]-1, idx[2]-1
		colour := (x % 3) + 3*(y%3) + 9*(z%2)
		t.colours[colour] = append(t.colours[colour], idx)
	})
	if t.dataLayout == SoA {
		loadAllCells(t.lc, t.f)
	}
}

func (t *C18Traversal) TraverseParticlePairs() {
	n3 := t.newton3.Bool()
	for _, cells := range t.colours {
		thread.ParallelFor(len(cells), thread.DefaultChunkSize, func(i int) {
			processOwnedCellForward(t.lc, t.f, t.dataLayout, n3, cells[i])
		})
	}
}

func (t *C18Traversal) EndTraversal() {
	if t.dataLayout == SoA {
		extractAllCells(t.lc)
	}
}
