package traversal

import (
	"sync"

	"github.com/mansfield-lab/autopas/lib/cell"
	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/functor"
	"github.com/mansfield-lab/autopas/lib/thread"
)

// clusterCell wraps a cluster's particles in a throwaway Cell so it can go
// through the shared cell.Load/cell.Extract SoA adapter; a Cluster has no
// cell structure of its own since its SoA view lives in its tower's
// buffer in the original design, generalized here to a per-cluster
// mirror.
func clusterCell(cl *container.Cluster) *cell.Cell {
	c := cell.New()
	for _, p := range cl.Particles {
		c.Add(p)
	}
	return c
}

func processCluster(f functor.ClusterFunctor, n3 bool, cl *container.Cluster) {
	c := clusterCell(cl)
	s := cell.Load(c, f.SoALoader())
	f.ProcessCluster(s, n3)
	cell.Extract(c, s)
}

func processClusterPair(f functor.ClusterFunctor, n3 bool, a, b *container.Cluster) {
	ca, cb := clusterCell(a), clusterCell(b)
	sa := cell.Load(ca, f.SoALoader())
	sb := cell.Load(cb, f.SoALoader())
	f.ProcessClusterPair(sa, sb, n3)
	cell.Extract(ca, sa)
	cell.Extract(cb, sb)
}

// VCLC01Traversal is the naive Verlet Cluster Lists traversal: clusters
// are partitioned into contiguous, load-balanced ranges (one per thread)
// via ClusterThreadPartition, and Newton-3 is disallowed so that a
// cluster's neighbour-pair processing only ever writes into clusters its
// own thread owns.
type VCLC01Traversal struct {
	base
	c *container.VerletClusterListsContainer
	f functor.ClusterFunctor
}

// NewVCLC01 creates a naive Verlet Cluster Lists traversal over c using
// cluster functor f.
func NewVCLC01(c *container.VerletClusterListsContainer, f functor.ClusterFunctor) *VCLC01Traversal {
	return &VCLC01Traversal{
		base: base{containerOption: container.VerletClusterLists, dataLayout: SoA, newton3: Newton3Disabled},
		c:    c, f: f,
	}
}

func (t *VCLC01Traversal) Option() Option                          { return VCLC01 }
func (t *VCLC01Traversal) IsApplicable(dims [3]int, threads int) bool { return true }
func (t *VCLC01Traversal) InitTraversal()                           {}
func (t *VCLC01Traversal) EndTraversal()                            {}

func (t *VCLC01Traversal) TraverseParticlePairs() {
	parts := t.c.ClusterThreadPartition(thread.Count())
	var wg sync.WaitGroup
	wg.Add(len(parts))
	for _, part := range parts {
		go func(part []*container.Cluster) {
			defer wg.Done()
			for _, cl := range part {
				processCluster(t.f, false, cl)
				for _, nb := range cl.Neighbors {
					processClusterPair(t.f, false, cl, nb)
				}
			}
		}(part)
	}
	wg.Wait()
}

// VCLSlicedTraversal parallelizes Verlet Cluster Lists by cutting the
// tower grid's x-axis into per-thread slices, with a boundary lock
// guarding the shared column between adjacent slices, allowing Newton-3.
type VCLSlicedTraversal struct {
	base
	c *container.VerletClusterListsContainer
	f functor.ClusterFunctor

	byX     [][]*container.Tower
	index   map[*container.Cluster]int
	bounds  []int
}

// NewVCLSliced creates a sliced Verlet Cluster Lists traversal over c
// using cluster functor f.
func NewVCLSliced(c *container.VerletClusterListsContainer, f functor.ClusterFunctor, newton3 Newton3Option) *VCLSlicedTraversal {
	return &VCLSlicedTraversal{
		base: base{containerOption: container.VerletClusterLists, dataLayout: SoA, newton3: newton3},
		c:    c, f: f,
	}
}

func (t *VCLSlicedTraversal) Option() Option { return VCLSliced }

func (t *VCLSlicedTraversal) IsApplicable(dims [3]int, threads int) bool {
	return dims[0] >= 2*threads
}

func (t *VCLSlicedTraversal) InitTraversal() {
	dims := t.c.Dims()
	towers := t.c.Towers()

	t.byX = make([][]*container.Tower, dims[0])
	for _, tw := range towers {
		if tw.X >= 0 && tw.X < dims[0] {
			t.byX[tw.X] = append(t.byX[tw.X], tw)
		}
	}

	t.index = make(map[*container.Cluster]int)
	idx := 0
	for _, tw := range towers {
		for _, cl := range tw.Clusters {
			t.index[cl] = idx
			idx++
		}
	}

	threads := thread.Count()
	if threads > dims[0] {
		threads = dims[0]
	}
	t.bounds = evenBounds(dims[0], threads)
}

func (t *VCLSlicedTraversal) EndTraversal() {}

func (t *VCLSlicedTraversal) processColumn(x int, n3 bool) {
	for _, tw := range t.byX[x] {
		for _, cl := range tw.Clusters {
			processCluster(t.f, n3, cl)
			for _, nb := range cl.Neighbors {
				if t.index[nb] < t.index[cl] {
					continue // the lower-indexed cluster already processed this pair
				}
				processClusterPair(t.f, n3, cl, nb)
			}
		}
	}
}

func (t *VCLSlicedTraversal) TraverseParticlePairs() {
	threads := len(t.bounds) - 1
	n3 := t.newton3.Bool()
	locks := make([]sync.Mutex, threads-1)

	var wg sync.WaitGroup
	wg.Add(threads)
	for s := 0; s < threads; s++ {
		go func(s int) {
			defer wg.Done()
			lo, hi := t.bounds[s], t.bounds[s+1]
			for x := lo; x < hi; x++ {
				switch {
				case x == lo && s > 0:
					locks[s-1].Lock()
					t.processColumn(x, n3)
					locks[s-1].Unlock()
				case x == hi-1 && s < threads-1:
					locks[s].Lock()
					t.processColumn(x, n3)
					locks[s].Unlock()
				default:
					t.processColumn(x, n3)
				}
			}
		}(s)
	}
	wg.Wait()
}
