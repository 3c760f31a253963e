package traversal

import (
	"sync"

	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/functor"
	"github.com/mansfield-lab/autopas/lib/thread"
)

// vlProcess drives one owned particle's pre-built neighbour list: a
// Newton-3 traversal calls the functor once per entry (the list already
// records each pair exactly once); a non-Newton-3 traversal calls it
// twice, with the arguments reversed the second time, since each entry's
// pair is otherwise only ever visited from the owner's side.
func vlProcess(f functor.Functor, n3 bool, l container.VerletNeighborList) {
	for _, q := range l.Neighbors {
		if q.IsDummy() {
			continue
		}
		f.AoSFunctor(l.Owner, q, n3)
		if !n3 {
			f.AoSFunctor(q, l.Owner, n3)
		}
	}
}

// VLPC01Traversal walks a plain VerletListsContainer's flat neighbour
// lists sequentially. Newton-3 is disallowed: a parallel schedule over
// individual owner lists cannot in general guarantee that two
// concurrently processed owners never share a partner, since the
// container has no per-cell grouping to colour by (that grouping is what
// VLCC01Traversal below adds).
type VLPC01Traversal struct {
	base
	c *container.VerletListsContainer
	f functor.Functor
}

// NewVLPC01 creates a Verlet Lists traversal over c using functor f.
func NewVLPC01(c *container.VerletListsContainer, f functor.Functor) *VLPC01Traversal {
	return &VLPC01Traversal{
		base: base{containerOption: container.VerletLists, dataLayout: AoS, newton3: Newton3Disabled},
		c:    c, f: f,
	}
}

func (t *VLPC01Traversal) Option() Option                          { return VLPC01 }
func (t *VLPC01Traversal) IsApplicable(dims [3]int, threads int) bool { return true }
func (t *VLPC01Traversal) InitTraversal()                           {}
func (t *VLPC01Traversal) EndTraversal()                            {}

func (t *VLPC01Traversal) TraverseParticlePairs() {
	for _, l := range t.c.Lists() {
		if l.Owner.IsDummy() {
			continue
		}
		vlProcess(t.f, false, l)
	}
}

// VLCC01Traversal walks a VerletListsCellsContainer's neighbour lists
// grouped by owning cell, in parallel, with the owned cells shared out
// across goroutines by thread.ParallelFor.
// Newton-3 is disallowed for the same reason c01 disallows it: a
// symmetric write into a neighbour's force could land in a cell owned by
// a concurrently running goroutine.
type VLCC01Traversal struct {
	base
	c *container.VerletListsCellsContainer
	f functor.Functor

	cells [][3]int
}

// NewVLCC01 creates a Verlet Lists Cells c01-style traversal over c using
// functor f.
func NewVLCC01(c *container.VerletListsCellsContainer, f functor.Functor) *VLCC01Traversal {
	return &VLCC01Traversal{
		base: base{containerOption: container.VerletListsCells, dataLayout: AoS, newton3: Newton3Disabled},
		c:    c, f: f,
	}
}

func (t *VLCC01Traversal) Option() Option { return VLCC01 }
func (t *VLCC01Traversal) IsApplicable(dims [3]int, threads int) bool {
	return dims[0] > 0 && dims[1] > 0 && dims[2] > 0
}

func (t *VLCC01Traversal) InitTraversal() {
	t.cells = t.cells[:0]
	t.c.LinkedCells().EachOwnedCell(func(idx [3]int) { t.cells = append(t.cells, idx) })
}

func (t *VLCC01Traversal) EndTraversal() {}

func (t *VLCC01Traversal) TraverseParticlePairs() {
	lists := t.c.Lists()
	thread.ParallelFor(len(t.cells), thread.DefaultChunkSize, func(i int) {
		for _, li := range t.c.ListIndicesInCell(t.cells[i]) {
			l := lists[li]
			if l.Owner.IsDummy() {
				continue
			}
			vlProcess(t.f, false, l)
		}
	})
}

// VLCSlicedTraversal parallelizes a VerletListsCellsContainer by cutting
// the backing grid's longest dimension into per-thread slices, the same
// boundary-lock discipline SlicedTraversal uses for linked cells, which
// lets it support Newton-3.
type VLCSlicedTraversal struct {
	base
	c *container.VerletListsCellsContainer
	f functor.Functor

	dim    int
	bounds []int
}

// NewVLCSliced creates a sliced Verlet Lists Cells traversal over c using
// functor f.
func NewVLCSliced(c *container.VerletListsCellsContainer, f functor.Functor, newton3 Newton3Option) *VLCSlicedTraversal {
	return &VLCSlicedTraversal{
		base: base{containerOption: container.VerletListsCells, dataLayout: AoS, newton3: newton3},
		c:    c, f: f,
	}
}

func (t *VLCSlicedTraversal) Option() Option { return VLCSliced }

func (t *VLCSlicedTraversal) IsApplicable(dims [3]int, threads int) bool {
	return dims[longestDim(dims)] >= 2*threads
}

func (t *VLCSlicedTraversal) InitTraversal() {
	dims := t.c.LinkedCells().Dims()
	t.dim = longestDim(dims)
	threads := thread.Count()
	if threads > dims[t.dim] {
		threads = dims[t.dim]
	}
	t.bounds = evenBounds(dims[t.dim], threads)
}

func (t *VLCSlicedTraversal) EndTraversal() {}

func (t *VLCSlicedTraversal) TraverseParticlePairs() {
	lc := t.c.LinkedCells()
	lists := t.c.Lists()
	threads := len(t.bounds) - 1
	n3 := t.newton3.Bool()
	locks := make([]sync.Mutex, threads-1)

	process := func(rel int) {
		for _, idx := range planeCells(lc, t.dim, rel) {
			for _, li := range t.c.ListIndicesInCell(idx) {
				l := lists[li]
				if l.Owner.IsDummy() {
					continue
				}
				vlProcess(t.f, n3, l)
			}
		}
	}

	var wg sync.WaitGroup
	wg.Add(threads)
	for s := 0; s < threads; s++ {
		go func(s int) {
			defer wg.Done()
			lo, hi := t.bounds[s], t.bounds[s+1]
			for rel := lo; rel < hi; rel++ {
				switch {
				case rel == lo && s > 0:
					locks[s-1].Lock()
					process(rel)
					locks[s-1].Unlock()
				case rel == hi-1 && s < threads-1:
					locks[s].Lock()
					process(rel)
					locks[s].Unlock()
				default:
					process(rel)
				}
			}
		}(s)
	}
	wg.Wait()
}
