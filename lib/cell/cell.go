/*Package cell implements AutoPas' L0 cell abstraction: an ordered bag of
particles plus an optional columnar SoA mirror. Iteration filters dummies
the way the container's iterate/regionIterate contract requires.
*/
package cell

import "github.com/mansfield-lab/autopas/lib/particle"

// Cell is an ordered bag of particles occupying one region of space. A
// Cell is AoS-only until Load populates its SoA mirror; the mirror is only
// guaranteed consistent between a Load and the matching Extract, per the
// SoA-mirror design note.
type Cell struct {
	particles []*particle.Particle
	soa       *SoA
}

// New creates an empty cell.
func New() *Cell { return &Cell{} }

// Add appends p to the cell. Structural dirtiness (recompaction, SoA
// invalidation) is the container's responsibility, not the cell's; Cell
// itself is a dumb ordered container.
func (c *Cell) Add(p *particle.Particle) {
	c.particles = append(c.particles, p)
}

// Len returns the number of particle slots, including any dummies.
func (c *Cell) Len() int { return len(c.particles) }

// At returns the particle at index i, which may be a dummy.
func (c *Cell) At(i int) *particle.Particle { return c.particles[i] }

// All returns the cell's backing slice. Callers must not retain it across
// a structural rebuild: indices into it are invalidated exactly like the
// index-into-arena design note describes for Verlet/octree back-references.
func (c *Cell) All() []*particle.Particle { return c.particles }

// Each calls f for every non-dummy particle in the cell, in insertion
// order, implementing single-cell iteration that skips dummies per the
// cell contract.
func (c *Cell) Each(f func(*particle.Particle)) {
	for _, p := range c.particles {
		if p.IsDummy() {
			continue
		}
		f(p)
	}
}

// Compact removes dummy particles in place, preserving relative order of
// the survivors. This is the "lazy compaction at next rebuild" mechanism
// the deletion-during-iteration contract requires.
func (c *Cell) Compact() {
	n := 0
	for _, p := range c.particles {
		if p.IsDummy() {
			continue
		}
		c.particles[n] = p
		n++
	}
	c.particles = c.particles[:n]
}

// MarkDummy turns the particle at index i into a dummy without shifting
// any other index, so that a mutating iterator can delete while iterating
// without invalidating the indices of particles it hasn't visited yet.
func (c *Cell) MarkDummy(i int) {
	c.particles[i].State = particle.Dummy
}

// Clear empties the cell (used by DeleteHaloParticles).
func (c *Cell) Clear() { c.particles = c.particles[:0] }

// SoA returns the cell's SoA mirror, or nil if one has never been loaded.
func (c *Cell) SoA() *SoA { return c.soa }

// SetSoA installs s as the cell's SoA mirror; called by Load.
func (c *Cell) SetSoA(s *SoA) { c.soa = s }

// DropSoA discards the SoA mirror, matching the "scoped resource owned by
// the traversal" design note: EndTraversal calls this after Extract so a
// later AoS mutation can never be read through a stale SoA buffer.
func (c *Cell) DropSoA() { c.soa = nil }
