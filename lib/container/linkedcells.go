package container

import (
	"github.com/mansfield-lab/autopas/lib/cell"
	"github.com/mansfield-lab/autopas/lib/cuckoo"
	autopaserr "github.com/mansfield-lab/autopas/lib/error"
	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/particle"
)

// LinkedCellsContainer partitions the owned box into a regular 3-D grid
// whose cell edge is cellSizeFactor*interactionLength (clamped to at least
// one cell per dimension), with a single layer of halo cells prepended and
// appended in every dimension. Cell (0,0,0) of the halo-inclusive grid is
// the lower halo corner, per the linked-cells geometry rule.
type LinkedCellsContainer struct {
	box                    geom.Box
	cutoff, skin           float64
	cellSizeFactor         float64
	cells                  []*cell.Cell
	dims                   [3]int // owned-only dims
	fullDims               [3]int // halo-inclusive dims (dims + 2 in each axis)
	cellEdge               geom.Vec3
	pending                []*particle.Particle // deferred inserts (owned+halo)
	pendingHalo            []bool
	dirty                  bool
}

// NewLinkedCells creates a Linked Cells container. cellSizeFactor scales
// the cell edge relative to the interaction length; the grid always has at
// least one owned cell per dimension.
func NewLinkedCells(box geom.Box, cutoff, skin, cellSizeFactor float64) *LinkedCellsContainer {
	c := &LinkedCellsContainer{box: box, cutoff: cutoff, skin: skin, cellSizeFactor: cellSizeFactor}
	c.rebuildGrid()
	return c
}

func (c *LinkedCellsContainer) Option() Option             { return LinkedCells }
func (c *LinkedCellsContainer) Box() geom.Box               { return c.box }
func (c *LinkedCellsContainer) Cutoff() float64             { return c.cutoff }
func (c *LinkedCellsContainer) Skin() float64               { return c.skin }
func (c *LinkedCellsContainer) InteractionLength() float64  { return c.cutoff + c.skin }
func (c *LinkedCellsContainer) Dims() [3]int                { return c.dims }
func (c *LinkedCellsContainer) CellEdge() geom.Vec3         { return c.cellEdge }
func (c *LinkedCellsContainer) FullDims() [3]int            { return c.fullDims }

// rebuildGrid (re)computes the grid geometry from the current box and
// cell-size factor and allocates fresh, empty cells.
func (c *LinkedCellsContainer) rebuildGrid() {
	edge := c.cellSizeFactor * c.InteractionLength()
	span := c.box.Edge()
	for d := 0; d < 3; d++ {
		c.dims[d] = geom.CellsAlongDim(span[d], edge)
		c.fullDims[d] = c.dims[d] + 2
		c.cellEdge[d] = span[d] / float64(c.dims[d])
	}
	n := c.fullDims[0] * c.fullDims[1] * c.fullDims[2]
	c.cells = make([]*cell.Cell, n)
	for i := range c.cells {
		c.cells[i] = cell.New()
	}
}

// cellIndex3 returns the halo-inclusive 3-index of the cell containing p,
// clamped into range (the halo layer is exactly one cell thick, so any
// particle actually inside the halo box lands in range; anything further
// out is a caller error caught by AddHaloParticle's box check).
func (c *LinkedCellsContainer) cellIndex3(p geom.Vec3) [3]int {
	var idx [3]int
	for d := 0; d < 3; d++ {
		rel := (p[d] - c.box.Min[d]) / c.cellEdge[d]
		i := int(rel) + 1 // +1 for the lower halo layer
		if rel < 0 {
			i = 0
		}
		if i >= c.fullDims[d] {
			i = c.fullDims[d] - 1
		}
		idx[d] = i
	}
	return idx
}

func (c *LinkedCellsContainer) flatten(idx [3]int) int {
	return idx[0] + c.fullDims[0]*(idx[1]+c.fullDims[1]*idx[2])
}

// CellAt returns the cell at the given halo-inclusive 3-index.
func (c *LinkedCellsContainer) CellAt(idx [3]int) *cell.Cell {
	return c.cells[c.flatten(idx)]
}

// isOwnedIndex reports whether the halo-inclusive index refers to an
// owned (not halo) cell.
func (c *LinkedCellsContainer) isOwnedIndex(idx [3]int) bool {
	for d := 0; d < 3; d++ {
		if idx[d] < 1 || idx[d] > c.dims[d] {
			return false
		}
	}
	return true
}

func (c *LinkedCellsContainer) AddParticle(p *particle.Particle) error {
	if !c.box.Contains(p.Pos) {
		return autopaserr.Newf("owned particle %d added at %v is outside the owned box %v", p.ID, p.Pos, c.box)
	}
	p.State = particle.Owned
	c.pending = append(c.pending, p)
	c.pendingHalo = append(c.pendingHalo, false)
	c.dirty = true
	return nil
}

func (c *LinkedCellsContainer) AddHaloParticle(p *particle.Particle) error {
	hb := haloBox(c.box, c.InteractionLength())
	if !hb.Contains(p.Pos) || c.box.Contains(p.Pos) {
		return autopaserr.Newf("halo particle %d added at %v is not inside the halo shell", p.ID, p.Pos)
	}
	p.State = particle.Halo
	c.pending = append(c.pending, p)
	c.pendingHalo = append(c.pendingHalo, true)
	c.dirty = true
	return nil
}

// binner adapts LinkedCellsContainer's pending insert queue to
// cuckoo.Interface so a single O(N) pass distributes every pending insert
// (and every surviving previously-binned particle) into its cell.
type binner struct {
	c    *LinkedCellsContainer
	part []*particle.Particle
}

func (b *binner) Length() int { return len(b.part) }
func (b *binner) Bin(i int) int {
	return b.c.flatten(b.c.cellIndex3(b.part[i].Pos))
}
func (b *binner) Put(i, j int) {
	b.c.cells[j].Add(b.part[i])
}

// Rebuild flushes every pending insertion and re-bins every surviving
// particle into the grid. It is called by IteratePairwise/
// RebuildNeighborLists whenever the container is structurally dirty.
func (c *LinkedCellsContainer) Rebuild() {
	all := make([]*particle.Particle, 0, len(c.pending))
	for _, cl := range c.cells {
		cl.Compact()
		all = append(all, cl.All()...)
		cl.Clear()
	}
	all = append(all, c.pending...)
	c.pending = c.pending[:0]
	c.pendingHalo = c.pendingHalo[:0]

	cuckoo.Sort(&binner{c: c, part: all})
	c.dirty = false
}

func (c *LinkedCellsContainer) UpdateContainer() []*particle.Particle {
	if c.dirty {
		c.Rebuild()
	}
	var leaving []*particle.Particle
	for _, cl := range c.cells {
		for i := 0; i < cl.Len(); i++ {
			p := cl.At(i)
			if p.IsDummy() {
				continue
			}
			if p.IsHalo() {
				cl.MarkDummy(i)
				continue
			}
			if !c.box.Contains(p.Pos) {
				leaving = append(leaving, p)
				cl.MarkDummy(i)
			}
		}
		cl.Compact()
	}
	c.dirty = false
	return leaving
}

func (c *LinkedCellsContainer) DeleteHaloParticles() {
	kept, keptHalo := c.pending[:0], c.pendingHalo[:0]
	for i, p := range c.pending {
		if !c.pendingHalo[i] {
			kept = append(kept, p)
			keptHalo = append(keptHalo, false)
		}
	}
	c.pending, c.pendingHalo = kept, keptHalo
	for _, cl := range c.cells {
		for i := 0; i < cl.Len(); i++ {
			if cl.At(i).IsHalo() {
				cl.MarkDummy(i)
			}
		}
		cl.Compact()
	}
}

func (c *LinkedCellsContainer) Iterate(behavior IterationBehavior, f func(*particle.Particle)) {
	if c.dirty {
		c.Rebuild()
	}
	for _, cl := range c.cells {
		cl.Each(func(p *particle.Particle) {
			if behavior.matches(p.State) {
				f(p)
			}
		})
	}
}

func (c *LinkedCellsContainer) RegionIterate(min, max geom.Vec3, behavior IterationBehavior, f func(*particle.Particle)) error {
	if min[0] > max[0] || min[1] > max[1] || min[2] > max[2] {
		return autopaserr.Newf("region iterator called with min %v > max %v", min, max)
	}
	if c.dirty {
		c.Rebuild()
	}
	hb := haloBox(c.box, c.InteractionLength())
	cmin, cmax := geom.ClampBox(min, max, hb)
	lo, hi := c.cellIndex3(cmin), c.cellIndex3(cmax)
	var idx [3]int
	for idx[2] = lo[2]; idx[2] <= hi[2]; idx[2]++ {
		for idx[1] = lo[1]; idx[1] <= hi[1]; idx[1]++ {
			for idx[0] = lo[0]; idx[0] <= hi[0]; idx[0]++ {
				c.CellAt(idx).Each(func(p *particle.Particle) {
					if !behavior.matches(p.State) {
						return
					}
					for d := 0; d < 3; d++ {
						if p.Pos[d] < cmin[d] || p.Pos[d] > cmax[d] {
							return
						}
					}
					f(p)
				})
			}
		}
	}
	return nil
}

func (c *LinkedCellsContainer) IteratePairwise(t Traversal) error {
	if t.ContainerOption() != LinkedCells {
		return autopaserr.Newf("traversal is bound to container %v, but this container is %v", t.ContainerOption(), LinkedCells)
	}
	if c.dirty {
		c.Rebuild()
	}
	t.InitTraversal()
	t.TraverseParticlePairs()
	t.EndTraversal()
	return nil
}

func (c *LinkedCellsContainer) RebuildNeighborLists(t Traversal) {}

// ForwardOffsets13 returns the 13 canonical forward-neighbour cell offsets
// used by every cell-based colouring: for an interior cell, its own cell
// plus these 13 give the 14 half-space neighbours (26 total minus the 13
// that are the mirror image, since each unordered pair is only walked
// once).
func ForwardOffsets13() [][3]int {
	return [][3]int{
		{1, 0, 0}, {-1, 1, 0}, {0, 1, 0}, {1, 1, 0},
		{-1, -1, 1}, {0, -1, 1}, {1, -1, 1},
		{-1, 0, 1}, {0, 0, 1}, {1, 0, 1},
		{-1, 1, 1}, {0, 1, 1}, {1, 1, 1},
	}
}

// AllOffsets26 returns every one of the 26 neighbour-cell offsets, used by
// c01 (no Newton-3, so both directions of every pair must be walked from
// each cell independently).
func AllOffsets26() [][3]int {
	offsets := make([][3]int, 0, 26)
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				offsets = append(offsets, [3]int{dx, dy, dz})
			}
		}
	}
	return offsets
}

// EachOwnedCell calls f with the halo-inclusive index of every owned cell.
func (c *LinkedCellsContainer) EachOwnedCell(f func(idx [3]int)) {
	var idx [3]int
	for idx[2] = 1; idx[2] <= c.dims[2]; idx[2]++ {
		for idx[1] = 1; idx[1] <= c.dims[1]; idx[1]++ {
			for idx[0] = 1; idx[0] <= c.dims[0]; idx[0]++ {
				f(idx)
			}
		}
	}
}

// InBounds reports whether idx is a valid halo-inclusive cell index.
func (c *LinkedCellsContainer) InBounds(idx [3]int) bool {
	for d := 0; d < 3; d++ {
		if idx[d] < 0 || idx[d] >= c.fullDims[d] {
			return false
		}
	}
	return true
}

// EachCell calls f with the halo-inclusive index of every cell, owned and
// halo alike, for the SoA load/extract passes that must mirror boundary
// halo cells too.
func (c *LinkedCellsContainer) EachCell(f func(idx [3]int, cl *cell.Cell)) {
	var idx [3]int
	for idx[2] = 0; idx[2] < c.fullDims[2]; idx[2]++ {
		for idx[1] = 0; idx[1] < c.fullDims[1]; idx[1]++ {
			for idx[0] = 0; idx[0] < c.fullDims[0]; idx[0]++ {
				f(idx, c.CellAt(idx))
			}
		}
	}
}
