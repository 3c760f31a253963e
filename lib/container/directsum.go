package container

import (
	autopaserr "github.com/mansfield-lab/autopas/lib/error"
	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/particle"
)

// DirectSumContainer is the simplest container: one cell for owned
// particles, one for halo particles, with every pair of owned particles
// (and every owned-halo pair) a traversal candidate. It is also the
// reference implementation the force-equivalence testable property is
// checked against, alongside linked-cells c08.
type DirectSumContainer struct {
	box               geom.Box
	cutoff, skin      float64
	owned, halo       []*particle.Particle
	dirty             bool
}

// NewDirectSum creates a Direct Sum container over box with the given
// cutoff and verlet skin (the skin only matters for the halo box's size;
// Direct Sum itself never builds a neighbour list).
func NewDirectSum(box geom.Box, cutoff, skin float64) *DirectSumContainer {
	return &DirectSumContainer{box: box, cutoff: cutoff, skin: skin}
}

func (c *DirectSumContainer) Option() Option { return DirectSum }
func (c *DirectSumContainer) Box() geom.Box  { return c.box }
func (c *DirectSumContainer) Cutoff() float64 { return c.cutoff }
func (c *DirectSumContainer) Skin() float64   { return c.skin }
func (c *DirectSumContainer) InteractionLength() float64 { return c.cutoff + c.skin }
func (c *DirectSumContainer) Dims() [3]int    { return [3]int{1, 1, 1} }

func (c *DirectSumContainer) AddParticle(p *particle.Particle) error {
	if !c.box.Contains(p.Pos) {
		return autopaserr.Newf("owned particle %d added at %v is outside the owned box %v", p.ID, p.Pos, c.box)
	}
	p.State = particle.Owned
	c.owned = append(c.owned, p)
	c.dirty = true
	return nil
}

func (c *DirectSumContainer) AddHaloParticle(p *particle.Particle) error {
	hb := haloBox(c.box, c.InteractionLength())
	if !hb.Contains(p.Pos) || c.box.Contains(p.Pos) {
		return autopaserr.Newf("halo particle %d added at %v is not inside the halo shell", p.ID, p.Pos)
	}
	p.State = particle.Halo
	c.halo = append(c.halo, p)
	c.dirty = true
	return nil
}

func (c *DirectSumContainer) UpdateContainer() []*particle.Particle {
	var leaving []*particle.Particle
	kept := c.owned[:0]
	for _, p := range c.owned {
		if p.IsDummy() {
			continue
		}
		if c.box.Contains(p.Pos) {
			kept = append(kept, p)
		} else {
			leaving = append(leaving, p)
		}
	}
	c.owned = kept
	c.halo = c.halo[:0]
	c.dirty = false
	return leaving
}

func (c *DirectSumContainer) DeleteHaloParticles() { c.halo = c.halo[:0] }

func (c *DirectSumContainer) Iterate(behavior IterationBehavior, f func(*particle.Particle)) {
	if behavior&IterOwned != 0 {
		for _, p := range c.owned {
			if !p.IsDummy() {
				f(p)
			}
		}
	}
	if behavior&IterHalo != 0 {
		for _, p := range c.halo {
			if !p.IsDummy() {
				f(p)
			}
		}
	}
}

func (c *DirectSumContainer) RegionIterate(min, max geom.Vec3, behavior IterationBehavior, f func(*particle.Particle)) error {
	if min[0] > max[0] || min[1] > max[1] || min[2] > max[2] {
		return autopaserr.Newf("region iterator called with min %v > max %v", min, max)
	}
	hb := haloBox(c.box, c.InteractionLength())
	cmin, cmax := geom.ClampBox(min, max, hb)
	inRegion := func(p *particle.Particle) bool {
		for d := 0; d < 3; d++ {
			if p.Pos[d] < cmin[d] || p.Pos[d] > cmax[d] {
				return false
			}
		}
		return true
	}
	c.Iterate(behavior, func(p *particle.Particle) {
		if inRegion(p) {
			f(p)
		}
	})
	return nil
}

func (c *DirectSumContainer) IteratePairwise(t Traversal) error {
	if t.ContainerOption() != DirectSum {
		return autopaserr.Newf("traversal is bound to container %v, but this container is %v", t.ContainerOption(), DirectSum)
	}
	if c.dirty {
		c.compact()
	}
	t.InitTraversal()
	t.TraverseParticlePairs()
	t.EndTraversal()
	return nil
}

func (c *DirectSumContainer) RebuildNeighborLists(t Traversal) {}

func (c *DirectSumContainer) compact() {
	kept := c.owned[:0]
	for _, p := range c.owned {
		if !p.IsDummy() {
			kept = append(kept, p)
		}
	}
	c.owned = kept
	c.dirty = false
}

// Owned exposes the owned-particle slice for the c08-style single-loop
// traversals that pair every particle with every other candidate.
func (c *DirectSumContainer) Owned() []*particle.Particle { return c.owned }

// Halo exposes the halo-particle slice.
func (c *DirectSumContainer) Halo() []*particle.Particle { return c.halo }
