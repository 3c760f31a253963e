package traversal

import (
	"github.com/mansfield-lab/autopas/lib/cell"
	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/functor"
)

// leafCell wraps a leaf's particle slots in a throwaway Cell so it can go
// through the shared cell.Load/cell.Extract SoA adapter, the same trick
// clusterCell uses for Verlet clusters: a leaf has no persistent SoA
// mirror of its own.
func leafCell(n *container.OctNode) *cell.Cell {
	c := cell.New()
	for _, p := range n.Particles() {
		c.Add(p)
	}
	return c
}

func processLeaf(f functor.CellFunctor, l *cell.Cell) {
	s := cell.Load(l, f.SoALoader())
	f.ProcessCell(s, true)
	cell.Extract(l, s)
}

func processLeafPair(f functor.CellFunctor, a, b *cell.Cell) {
	sa := cell.Load(a, f.SoALoader())
	sb := cell.Load(b, f.SoALoader())
	f.SoAFunctorPair(sa, sb, true)
	cell.Extract(a, sa)
	cell.Extract(b, sb)
}

// OTC01Traversal implements the octree traversal: for every owned leaf L,
// process L's intra-leaf pairs, then every same-tree owned leaf neighbour
// N with id(L) < id(N), then every halo-tree leaf N intersecting L's box
// grown by the interaction length with id(L) < id(N).
//
// The traversal is deliberately sequential. Two owned leaves that are each
// other's geometric neighbours can be visited by different goroutines at
// the same moment; the id(L) < id(N) rule stops a pair being processed
// twice but does nothing to stop leaf N being written into by L's
// goroutine while N's own goroutine is simultaneously reading or writing
// it as "the current leaf". Colouring the octree's leaves the way c08
// colours a grid would remove the race, but the tree has no fixed grid to
// colour cells by, so this variant takes the same honest simplification
// as VLPC01Traversal instead.
type OTC01Traversal struct {
	base
	c *container.OctreeContainer
	f functor.CellFunctor
}

// NewOTC01 creates an octree traversal over c using cell functor f.
func NewOTC01(c *container.OctreeContainer, f functor.CellFunctor) *OTC01Traversal {
	return &OTC01Traversal{
		base: base{containerOption: container.Octree, dataLayout: SoA, newton3: Newton3Enabled},
		c:    c, f: f,
	}
}

func (t *OTC01Traversal) Option() Option                            { return OTC01 }
func (t *OTC01Traversal) IsApplicable(dims [3]int, threads int) bool { return true }

func (t *OTC01Traversal) InitTraversal() {
	t.c.PrepareTraversal()
}

func (t *OTC01Traversal) EndTraversal() {}

func (t *OTC01Traversal) TraverseParticlePairs() {
	owned := t.c.OwnedTree()
	halo := t.c.HaloTree()
	interactionLength := t.c.InteractionLength()

	owned.EachLeaf(func(l *container.OctNode) {
		lc := leafCell(l)
		processLeaf(t.f, lc)

		for _, n := range owned.Neighbors(l, interactionLength) {
			if n.ID() <= l.ID() {
				continue
			}
			processLeafPair(t.f, lc, leafCell(n))
		}

		region := l.Box().GrowBy(interactionLength)
		for _, n := range halo.LeavesNear(region) {
			if n.ID() <= l.ID() {
				continue
			}
			processLeafPair(t.f, lc, leafCell(n))
		}
	})
}
