package container

import (
	autopaserr "github.com/mansfield-lab/autopas/lib/error"
	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/particle"
)

// OctNode is one node of an octree arena. Children and Parent are indices
// into the owning OctreeContainer's node arena rather than pointers, per
// the index-into-a-stable-arena design note: a structural rebuild
// invalidates every index at once by discarding the arena, instead of
// leaving dangling pointers.
type OctNode struct {
	box       geom.Box
	parent    int    // -1 for the root
	children  [8]int // -1 for a leaf's non-existent children
	particles []*particle.Particle
	id        int // assigned at traversal time, -1 until then
}

func (n *OctNode) isLeaf() bool { return n.children[0] == -1 }

// IsLeaf reports whether n has no children.
func (n *OctNode) IsLeaf() bool { return n.isLeaf() }

// Box returns n's spatial extent.
func (n *OctNode) Box() geom.Box { return n.box }

// Particles returns n's particle slots (only meaningful for a leaf).
func (n *OctNode) Particles() []*particle.Particle { return n.particles }

// ID returns n's traversal-assigned id (-1 until PrepareTraversal runs).
func (n *OctNode) ID() int { return n.id }

// OctTree is one of the container's two trees (owned or halo).
type OctTree struct {
	nodes             []*OctNode
	splitThreshold    int
	interactionLength float64
}

func newOctree(box geom.Box, splitThreshold int, interactionLength float64) *OctTree {
	t := &OctTree{splitThreshold: splitThreshold, interactionLength: interactionLength}
	t.nodes = append(t.nodes, &OctNode{box: box, parent: -1, children: [8]int{-1, -1, -1, -1, -1, -1, -1, -1}, id: -1})
	return t
}

func (t *OctTree) root() *OctNode { return t.nodes[0] }

// EachLeaf calls f with every leaf node of t.
func (t *OctTree) EachLeaf(f func(n *OctNode)) {
	t.eachLeaf(func(idx int) { f(t.nodes[idx]) })
}

// Neighbors returns every leaf of t other than n whose box overlaps n's
// box grown by grow (sharing volume, per geom.Box.Intersects), for the
// ot_* traversal family's leaf-neighbour queries.
func (t *OctTree) Neighbors(n *OctNode, grow float64) []*OctNode {
	var out []*OctNode
	for _, leaf := range t.LeavesNear(n.box.GrowBy(grow)) {
		if leaf != n {
			out = append(out, leaf)
		}
	}
	return out
}

// LeavesNear returns every leaf of t whose box intersects region. Unlike
// Neighbors it takes the region directly rather than a node of t, so it
// also serves the octree traversal's owned-leaf-against-halo-tree query,
// where the leaf being tested belongs to a different tree entirely.
func (t *OctTree) LeavesNear(region geom.Box) []*OctNode {
	var out []*OctNode
	var walk func(cur int)
	walk = func(cur int) {
		node := t.nodes[cur]
		if !node.box.Intersects(region) {
			return
		}
		if node.isLeaf() {
			out = append(out, node)
			return
		}
		for _, c := range node.children {
			walk(c)
		}
	}
	walk(0)
	return out
}

// insert walks down to the leaf containing p and appends it, splitting the
// leaf if it now holds more than splitThreshold particles and splitting
// would not shrink a half-edge below t.interactionLength (open question
// (b): the container builds its trees with cellSizeFactor times the
// interaction length as that bound, and NewOctree rejects
// cellSizeFactor < 1).
func (t *OctTree) insert(p *particle.Particle) {
	idx := 0
	for {
		n := t.nodes[idx]
		if n.isLeaf() {
			n.particles = append(n.particles, p)
			if len(n.particles) > t.splitThreshold && t.canSplit(n) {
				t.split(idx)
			}
			return
		}
		idx = t.childIndexFor(n, p.Pos)
	}
}

func (t *OctTree) canSplit(n *OctNode) bool {
	halfEdge := n.box.Edge()[0] / 4 // after split, half-edge of a child is edge/4
	return halfEdge >= t.interactionLength
}

// childIndexFor returns which of n's 8 octants pos falls in, creating the
// octant boundary at n's box's midpoint.
func (t *OctTree) childIndexFor(n *OctNode, pos geom.Vec3) int {
	mid := n.box.Min.Add(n.box.Max).Scale(0.5)
	oct := 0
	for d := 0; d < 3; d++ {
		if pos[d] >= mid[d] {
			oct |= 1 << uint(d)
		}
	}
	return n.children[oct]
}

// split promotes leaf idx into an inner node with 8 children in standard
// octant order (bit 0 = x half, bit 1 = y half, bit 2 = z half).
func (t *OctTree) split(idx int) {
	n := t.nodes[idx]
	mid := n.box.Min.Add(n.box.Max).Scale(0.5)

	for oct := 0; oct < 8; oct++ {
		childBox := geom.Box{Min: n.box.Min, Max: mid}
		for d := 0; d < 3; d++ {
			if oct&(1<<uint(d)) != 0 {
				childBox.Min[d] = mid[d]
				childBox.Max[d] = n.box.Max[d]
			}
		}
		child := &OctNode{box: childBox, parent: idx, children: [8]int{-1, -1, -1, -1, -1, -1, -1, -1}, id: -1}
		t.nodes = append(t.nodes, child)
		n.children[oct] = len(t.nodes) - 1
	}

	moving := n.particles
	n.particles = nil
	for _, p := range moving {
		oct := 0
		for d := 0; d < 3; d++ {
			if p.Pos[d] >= mid[d] {
				oct |= 1 << uint(d)
			}
		}
		t.nodes[n.children[oct]].particles = append(t.nodes[n.children[oct]].particles, p)
	}
}

// assignLeafIDs numbers every leaf in arena order (the order eachLeaf
// visits them) starting from startID, and returns the next unused id.
func (t *OctTree) assignLeafIDs(startID int) int {
	id := startID
	for i, n := range t.nodes {
		if n.isLeaf() {
			t.nodes[i].id = id
			id++
		}
	}
	return id
}

// eachLeaf calls f with the index of every leaf node.
func (t *OctTree) eachLeaf(f func(idx int)) {
	for i, n := range t.nodes {
		if n.isLeaf() {
			f(i)
		}
	}
}

// neighbors returns every other leaf of t whose box overlaps the leaf at
// idx's box grown by grow: walk down from the root (the common ancestor
// of any two leaves in the same tree) to every leaf whose box shares
// volume with that region (a box that only touches it is not included,
// per geom.Box.Intersects), which is a pure tree traversal requiring no
// external spatial index.
func (t *OctTree) neighbors(idx int, grow float64) []int {
	n := t.nodes[idx]
	region := n.box.GrowBy(grow)
	var out []int
	var walk func(cur int)
	walk = func(cur int) {
		node := t.nodes[cur]
		if !node.box.Intersects(region) {
			return
		}
		if node.isLeaf() {
			if cur != idx {
				out = append(out, cur)
			}
			return
		}
		for _, c := range node.children {
			walk(c)
		}
	}
	walk(0) // root is always node 0
	return out
}

// OctreeContainer maintains two trees, one for owned particles and one for
// halo particles, per the octree geometry design.
type OctreeContainer struct {
	box               geom.Box
	cutoff, skin      float64
	cellSizeFactor    float64
	splitThreshold    int
	owned, halo       *OctTree
	dirty             bool
	pendingOwned      []*particle.Particle
	pendingHalo       []*particle.Particle
}

// NewOctree creates an Octree container. Per open question (b), csf must
// be >= 1: the leaf split criterion compares a candidate half-edge against
// cellSizeFactor times the interaction length, and csf < 1 is rejected.
func NewOctree(box geom.Box, cutoff, skin, cellSizeFactor float64, splitThreshold int) (*OctreeContainer, error) {
	if cellSizeFactor < 1 {
		return nil, autopaserr.Newf("octree requires cellSizeFactor >= 1, got %g", cellSizeFactor)
	}
	interactionLength := cellSizeFactor * (cutoff + skin)
	c := &OctreeContainer{
		box: box, cutoff: cutoff, skin: skin,
		cellSizeFactor: cellSizeFactor, splitThreshold: splitThreshold,
	}
	c.owned = newOctree(box, splitThreshold, interactionLength)
	c.halo = newOctree(haloBox(box, cutoff+skin), splitThreshold, interactionLength)
	return c, nil
}

func (c *OctreeContainer) Option() Option            { return Octree }
func (c *OctreeContainer) Box() geom.Box              { return c.box }
func (c *OctreeContainer) Cutoff() float64            { return c.cutoff }
func (c *OctreeContainer) Skin() float64              { return c.skin }
func (c *OctreeContainer) InteractionLength() float64 { return c.cutoff + c.skin }
func (c *OctreeContainer) Dims() [3]int               { return [3]int{1, 1, 1} }

func (c *OctreeContainer) AddParticle(p *particle.Particle) error {
	if !c.box.Contains(p.Pos) {
		return autopaserr.Newf("owned particle %d added at %v is outside the owned box %v", p.ID, p.Pos, c.box)
	}
	p.State = particle.Owned
	c.pendingOwned = append(c.pendingOwned, p)
	c.dirty = true
	return nil
}

func (c *OctreeContainer) AddHaloParticle(p *particle.Particle) error {
	hb := haloBox(c.box, c.InteractionLength())
	if !hb.Contains(p.Pos) || c.box.Contains(p.Pos) {
		return autopaserr.Newf("halo particle %d added at %v is not inside the halo shell", p.ID, p.Pos)
	}
	p.State = particle.Halo
	c.pendingHalo = append(c.pendingHalo, p)
	c.dirty = true
	return nil
}

func (c *OctreeContainer) rebuild() {
	interactionLength := c.cellSizeFactor * c.InteractionLength()

	var ownedParticles []*particle.Particle
	c.owned.eachLeaf(func(idx int) {
		for _, p := range c.owned.nodes[idx].particles {
			if !p.IsDummy() {
				ownedParticles = append(ownedParticles, p)
			}
		}
	})
	ownedParticles = append(ownedParticles, c.pendingOwned...)
	c.pendingOwned = c.pendingOwned[:0]

	c.owned = newOctree(c.box, c.splitThreshold, interactionLength)
	for _, p := range ownedParticles {
		if c.box.Contains(p.Pos) {
			c.owned.insert(p)
		}
	}

	var haloParticles []*particle.Particle
	c.halo.eachLeaf(func(idx int) {
		for _, p := range c.halo.nodes[idx].particles {
			if !p.IsDummy() {
				haloParticles = append(haloParticles, p)
			}
		}
	})
	haloParticles = append(haloParticles, c.pendingHalo...)
	c.pendingHalo = c.pendingHalo[:0]
	c.halo = newOctree(haloBox(c.box, c.InteractionLength()), c.splitThreshold, interactionLength)
	for _, p := range haloParticles {
		c.halo.insert(p)
	}

	c.dirty = false
}

func (c *OctreeContainer) UpdateContainer() []*particle.Particle {
	if c.dirty {
		c.rebuild()
	}
	var kept, leaving []*particle.Particle
	c.owned.eachLeaf(func(idx int) {
		for _, p := range c.owned.nodes[idx].particles {
			if p.IsDummy() {
				continue
			}
			if c.box.Contains(p.Pos) {
				kept = append(kept, p)
			} else {
				leaving = append(leaving, p)
			}
		}
	})
	c.pendingOwned = kept
	c.pendingHalo = c.pendingHalo[:0]
	c.owned = newOctree(c.box, c.splitThreshold, c.cellSizeFactor*c.InteractionLength())
	c.dirty = true
	c.rebuild()
	c.halo = newOctree(haloBox(c.box, c.InteractionLength()), c.splitThreshold, c.cellSizeFactor*c.InteractionLength())
	return leaving
}

func (c *OctreeContainer) DeleteHaloParticles() {
	c.halo = newOctree(haloBox(c.box, c.InteractionLength()), c.splitThreshold, c.cellSizeFactor*c.InteractionLength())
	c.pendingHalo = c.pendingHalo[:0]
}

func (c *OctreeContainer) Iterate(behavior IterationBehavior, f func(*particle.Particle)) {
	if c.dirty {
		c.rebuild()
	}
	if behavior&(IterOwned|IterDummy) != 0 {
		c.owned.eachLeaf(func(idx int) {
			for _, p := range c.owned.nodes[idx].particles {
				if behavior.matches(p.State) {
					f(p)
				}
			}
		})
	}
	if behavior&IterHalo != 0 {
		c.halo.eachLeaf(func(idx int) {
			for _, p := range c.halo.nodes[idx].particles {
				if behavior.matches(p.State) {
					f(p)
				}
			}
		})
	}
}

func (c *OctreeContainer) RegionIterate(min, max geom.Vec3, behavior IterationBehavior, f func(*particle.Particle)) error {
	if min[0] > max[0] || min[1] > max[1] || min[2] > max[2] {
		return autopaserr.Newf("region iterator called with min %v > max %v", min, max)
	}
	hb := haloBox(c.box, c.InteractionLength())
	cmin, cmax := geom.ClampBox(min, max, hb)
	c.Iterate(behavior, func(p *particle.Particle) {
		for d := 0; d < 3; d++ {
			if p.Pos[d] < cmin[d] || p.Pos[d] > cmax[d] {
				return
			}
		}
		f(p)
	})
	return nil
}

func (c *OctreeContainer) IteratePairwise(t Traversal) error {
	if t.ContainerOption() != Octree {
		return autopaserr.Newf("traversal is bound to container %v, but this container is %v", t.ContainerOption(), Octree)
	}
	if c.dirty {
		c.rebuild()
	}
	t.InitTraversal()
	t.TraverseParticlePairs()
	t.EndTraversal()
	return nil
}

func (c *OctreeContainer) RebuildNeighborLists(t Traversal) {}

// PrepareTraversal assigns every owned leaf a unique id, then every halo
// leaf an id continuing after the owned ones, per the octree traversal
// contract's id-assignment step.
func (c *OctreeContainer) PrepareTraversal() {
	next := c.owned.assignLeafIDs(0)
	c.halo.assignLeafIDs(next)
}

// OwnedTree and HaloTree expose the two trees to the ot_* traversal family.
func (c *OctreeContainer) OwnedTree() *OctTree { return c.owned }
func (c *OctreeContainer) HaloTree() *OctTree  { return c.halo }
