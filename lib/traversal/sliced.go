package traversal

import (
	"sync"

	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/functor"
	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/thread"
)

// longestDim returns the index of the longest of the three grid dimensions,
// the axis every sliced variant cuts.
func longestDim(dims [3]int) int {
	dim := 0
	for d := 1; d < 3; d++ {
		if dims[d] > dims[dim] {
			dim = d
		}
	}
	return dim
}

// planeCells returns the halo-inclusive indices of every owned cell whose
// coordinate along dim equals rel (an owned-relative, 0-based plane index).
func planeCells(lc *container.LinkedCellsContainer, dim, rel int) [][3]int {
	dims := lc.Dims()
	other := [2]int{}
	k := 0
	for d := 0; d < 3; d++ {
		if d != dim {
			other[k] = d
			k++
		}
	}
	var out [][3]int
	var idx [3]int
	idx[dim] = rel + 1
	for a := 1; a <= dims[other[0]]; a++ {
		idx[other[0]] = a
		for b := 1; b <= dims[other[1]]; b++ {
			idx[other[1]] = b
			out = append(out, idx)
		}
	}
	return out
}

func evenBounds(n, k int) []int {
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}
	bounds := make([]int, k+1)
	base, extra := n/k, n%k
	pos := 0
	for s := 0; s < k; s++ {
		bounds[s] = pos
		width := base
		if s < extra {
			width++
		}
		pos += width
	}
	bounds[k] = n
	return bounds
}

func processPlaneCells(lc *container.LinkedCellsContainer, f functor.Functor, layout DataLayout, n3 bool, cells [][3]int) {
	for _, idx := range cells {
		processOwnedCellForward(lc, f, layout, n3, idx)
	}
}

// SlicedTraversal cuts the longest owned dimension into one slice per
// thread; slices run concurrently, each processed plane by plane along the
// cut axis, with a mutex guarding the shared boundary between adjacent
// slices' first/last planes.
type SlicedTraversal struct {
	base
	lc *container.LinkedCellsContainer
	f  functor.Functor

	dim    int
	bounds []int
}

// NewSliced creates a lock-based sliced traversal over lc using functor f.
func NewSliced(lc *container.LinkedCellsContainer, f functor.Functor, layout DataLayout, newton3 Newton3Option) *SlicedTraversal {
	return &SlicedTraversal{
		base: base{containerOption: container.LinkedCells, dataLayout: layout, newton3: newton3},
		lc:   lc, f: f,
	}
}

func (t *SlicedTraversal) Option() Option { return Sliced }

// IsApplicable requires at least 2*threads cells along the cut dimension,
// per the component design's sliced rule.
func (t *SlicedTraversal) IsApplicable(dims [3]int, threads int) bool {
	return dims[longestDim(dims)] >= 2*threads
}

func (t *SlicedTraversal) InitTraversal() {
	dims := t.lc.Dims()
	t.dim = longestDim(dims)
	threads := thread.Count()
	if threads > dims[t.dim] {
		threads = dims[t.dim]
	}
	t.bounds = evenBounds(dims[t.dim], threads)
	if t.dataLayout == SoA {
		loadAllCells(t.lc, t.f)
	}
}

func (t *SlicedTraversal) TraverseParticlePairs() {
	threads := len(t.bounds) - 1
	n3 := t.newton3.Bool()
	locks := make([]sync.Mutex, threads-1)

	var wg sync.WaitGroup
	wg.Add(threads)
	for s := 0; s < threads; s++ {
		go func(s int) {
			defer wg.Done()
			lo, hi := t.bounds[s], t.bounds[s+1]
			for rel := lo; rel < hi; rel++ {
				cells := planeCells(t.lc, t.dim, rel)
				switch {
				case rel == lo && s > 0:
					locks[s-1].Lock()
					processPlaneCells(t.lc, t.f, t.dataLayout, n3, cells)
					locks[s-1].Unlock()
				case rel == hi-1 && s < threads-1:
					locks[s].Lock()
					processPlaneCells(t.lc, t.f, t.dataLayout, n3, cells)
					locks[s].Unlock()
				default:
					processPlaneCells(t.lc, t.f, t.dataLayout, n3, cells)
				}
			}
		}(s)
	}
	wg.Wait()
}

func (t *SlicedTraversal) EndTraversal() {
	if t.dataLayout == SoA {
		extractAllCells(t.lc)
	}
}

// SlicedC02Traversal is the lock-free sliced variant: slices are
// two-coloured (even/odd index) so that concurrently processed slices are
// never adjacent, removing the need for a boundary mutex.
type SlicedC02Traversal struct {
	base
	lc *container.LinkedCellsContainer
	f  functor.Functor

	dim    int
	bounds []int
}

// NewSlicedC02 creates a coloured sliced traversal over lc using functor f.
func NewSlicedC02(lc *container.LinkedCellsContainer, f functor.Functor, layout DataLayout, newton3 Newton3Option) *SlicedC02Traversal {
	return &SlicedC02Traversal{
		base: base{containerOption: container.LinkedCells, dataLayout: layout, newton3: newton3},
		lc:   lc, f: f,
	}
}

func (t *SlicedC02Traversal) Option() Option { return SlicedC02 }

func (t *SlicedC02Traversal) IsApplicable(dims [3]int, threads int) bool {
	return dims[longestDim(dims)] >= 2*threads
}

func (t *SlicedC02Traversal) InitTraversal() {
	dims := t.lc.Dims()
	t.dim = longestDim(dims)
	threads := thread.Count()
	if threads > dims[t.dim] {
		threads = dims[t.dim]
	}
	t.bounds = evenBounds(dims[t.dim], threads)
	if t.dataLayout == SoA {
		loadAllCells(t.lc, t.f)
	}
}

func (t *SlicedC02Traversal) TraverseParticlePairs() {
	threads := len(t.bounds) - 1
	n3 := t.newton3.Bool()
	for colour := 0; colour < 2; colour++ {
		var wg sync.WaitGroup
		for s := colour; s < threads; s += 2 {
			wg.Add(1)
			go func(s int) {
				defer wg.Done()
				lo, hi := t.bounds[s], t.bounds[s+1]
				for rel := lo; rel < hi; rel++ {
					processPlaneCells(t.lc, t.f, t.dataLayout, n3, planeCells(t.lc, t.dim, rel))
				}
			}(s)
		}
		wg.Wait()
	}
}

func (t *SlicedC02Traversal) EndTraversal() {
	if t.dataLayout == SoA {
		extractAllCells(t.lc)
	}
}

// BalancedSlicedTraversal sizes slices unevenly, using a load estimator, so
// that aggregate load per slice is as equal as possible; slices are then
// assigned round-robin to threads and processed with the same boundary-lock
// discipline as SlicedTraversal.
type BalancedSlicedTraversal struct {
	base
	lc        *container.LinkedCellsContainer
	f         functor.Functor
	estimator LoadEstimator

	dim    int
	bounds []int
}

// NewBalancedSliced creates a balanced-sliced traversal over lc using
// functor f and the given load estimator.
func NewBalancedSliced(lc *container.LinkedCellsContainer, f functor.Functor, layout DataLayout, newton3 Newton3Option, estimator LoadEstimator) *BalancedSlicedTraversal {
	return &BalancedSlicedTraversal{
		base:      base{containerOption: container.LinkedCells, dataLayout: layout, newton3: newton3},
		lc:        lc, f: f, estimator: estimator,
	}
}

func (t *BalancedSlicedTraversal) Option() Option { return BalancedSliced }

func (t *BalancedSlicedTraversal) IsApplicable(dims [3]int, threads int) bool {
	return dims[longestDim(dims)] >= 2*threads
}

func (t *BalancedSlicedTraversal) InitTraversal() {
	dims := t.lc.Dims()
	t.dim = longestDim(dims)
	threads := thread.Count()
	if threads > dims[t.dim] {
		threads = dims[t.dim]
	}

	loads := make([]geom.LoadEstimate, dims[t.dim])
	for rel := 0; rel < dims[t.dim]; rel++ {
		var n int
		for _, idx := range planeCells(t.lc, t.dim, rel) {
			n += t.lc.CellAt(idx).Len()
		}
		loads[rel] = geom.SquaredParticlesPerCell(n)
	}
	t.bounds = geom.BalanceSlices(loads, threads)

	if t.dataLayout == SoA {
		loadAllCells(t.lc, t.f)
	}
}

func (t *BalancedSlicedTraversal) TraverseParticlePairs() {
	threads := len(t.bounds) - 1
	n3 := t.newton3.Bool()
	locks := make([]sync.Mutex, threads-1)

	var wg sync.WaitGroup
	wg.Add(threads)
	for s := 0; s < threads; s++ {
		go func(s int) {
			defer wg.Done()
			lo, hi := t.bounds[s], t.bounds[s+1]
			for rel := lo; rel < hi; rel++ {
				cells := planeCells(t.lc, t.dim, rel)
				switch {
				case rel == lo && s > 0:
					locks[s-1].Lock()
					processPlaneCells(t.lc, t.f, t.dataLayout, n3, cells)
					locks[s-1].Unlock()
				case rel == hi-1 && s < threads-1:
					locks[s].Lock()
					processPlaneCells(t.lc, t.f, t.dataLayout, n3, cells)
					locks[s].Unlock()
				default:
					processPlaneCells(t.lc, t.f, t.dataLayout, n3, cells)
				}
			}
		}(s)
	}
	wg.Wait()
}

func (t *BalancedSlicedTraversal) EndTraversal() {
	if t.dataLayout == SoA {
		extractAllCells(t.lc)
	}
}
