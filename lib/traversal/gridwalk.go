package traversal

import (
	"github.com/mansfield-lab/autopas/lib/cell"
	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/functor"
)

// loadAllCells loads every cell of lc (owned and halo) into its SoA mirror,
// the shared InitTraversal step every SoA linked-cells traversal needs:
// forward offsets from a boundary owned cell reach into halo cells, so the
// halo layer must be mirrored too even though it is never written to.
func loadAllCells(lc *container.LinkedCellsContainer, f functor.Functor) {
	lc.EachCell(func(_ [3]int, c *cell.Cell) {
		cell.Load(c, f.SoALoader())
	})
}

// extractAllCells drains every cell's SoA force column back to AoS and
// drops the mirror, the shared EndTraversal step.
func extractAllCells(lc *container.LinkedCellsContainer) {
	lc.EachCell(func(_ [3]int, c *cell.Cell) {
		if s := c.SoA(); s != nil {
			cell.Extract(c, s)
			c.DropSoA()
		}
	})
}

// processSingleCell computes every intra-cell pair once, calling the
// functor a second time with reversed arguments when Newton-3 is off (the
// only direction a lone cell's own pairs need, since no other goroutine
// ever touches this cell's particles concurrently).
func processSingleCell(f functor.Functor, layout DataLayout, n3 bool, c *cell.Cell) {
	if layout == SoA {
		f.SoAFunctorSingle(c.SoA(), n3)
		return
	}
	particles := c.All()
	for i := 0; i < len(particles); i++ {
		if particles[i].IsDummy() {
			continue
		}
		for j := i + 1; j < len(particles); j++ {
			if particles[j].IsDummy() {
				continue
			}
			f.AoSFunctor(particles[i], particles[j], n3)
			if !n3 {
				f.AoSFunctor(particles[j], particles[i], n3)
			}
		}
	}
}

// processCellPairForward computes every pair between two distinct cells
// reached via a forward-only offset. Safe under concurrent execution of
// other same-coloured cells because the colouring/slicing scheme guarantees
// no two concurrently processed cells share a forward-offset target.
func processCellPairForward(f functor.Functor, layout DataLayout, n3 bool, a, b *cell.Cell) {
	if layout == SoA {
		f.SoAFunctorPair(a.SoA(), b.SoA(), n3)
		return
	}
	for _, p := range a.All() {
		if p.IsDummy() {
			continue
		}
		for _, q := range b.All() {
			if q.IsDummy() {
				continue
			}
			f.AoSFunctor(p, q, n3)
			if !n3 {
				f.AoSFunctor(q, p, n3)
			}
		}
	}
}

// processCellPairAsymmetric writes only into a's particles, never b's: the
// c01 colouring's one legal cross-cell operation, since c01 runs every cell
// fully in parallel with no colour barrier. b's own turn (using the mirror
// offset from b back towards a) supplies the missing direction.
func processCellPairAsymmetric(f functor.Functor, layout DataLayout, a, b *cell.Cell) {
	if layout == SoA {
		f.SoAFunctorPair(a.SoA(), b.SoA(), false)
		return
	}
	for _, p := range a.All() {
		if p.IsDummy() {
			continue
		}
		for _, q := range b.All() {
			if q.IsDummy() {
				continue
			}
			f.AoSFunctor(p, q, false)
		}
	}
}

// processOwnedCellForward runs the own-cell pass plus the 13 forward
// offsets rooted at the owned cell idx, used by c08, c18, sliced and
// balanced-sliced.
func processOwnedCellForward(lc *container.LinkedCellsContainer, f functor.Functor, layout DataLayout, n3 bool, idx [3]int) {
	home := lc.CellAt(idx)
	processSingleCell(f, layout, n3, home)
	for _, off := range container.ForwardOffsets13() {
		nb := [3]int{idx[0] + off[0], idx[1] + off[1], idx[2] + off[2]}
		if !lc.InBounds(nb) {
			continue
		}
		processCellPairForward(f, layout, n3, home, lc.CellAt(nb))
	}
}

// processOwnedCellAll26 runs the own-cell pass plus all 26 offsets rooted
// at the owned cell idx, writing only into idx's own particles, used by
// c01.
func processOwnedCellAll26(lc *container.LinkedCellsContainer, f functor.Functor, layout DataLayout, idx [3]int) {
	home := lc.CellAt(idx)
	processSingleCell(f, layout, false, home)
	for _, off := range container.AllOffsets26() {
		nb := [3]int{idx[0] + off[0], idx[1] + off[1], idx[2] + off[2]}
		if !lc.InBounds(nb) {
			continue
		}
		processCellPairAsymmetric(f, layout, home, lc.CellAt(nb))
	}
}
