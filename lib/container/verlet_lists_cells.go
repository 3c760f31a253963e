package container

import (
	autopaserr "github.com/mansfield-lab/autopas/lib/error"
	"github.com/mansfield-lab/autopas/lib/geom"
)

// VerletListsCellsContainer is the Verlet Lists variant whose neighbour
// lists are grouped by owning cell rather than kept as one flat slice, so
// the vlc_*/vlp_* traversal family can walk "for each owned cell, for each
// of its particles, for each of its neighbours" without an extra lookup.
// It reuses VerletListsContainer's rebuild policy and validity check
// verbatim; only the neighbour-list storage shape differs.
type VerletListsCellsContainer struct {
	*VerletListsContainer
	byCell map[[3]int][]int // halo-inclusive cell index -> indices into Lists()
}

// NewVerletListsCells creates a Verlet Lists Cells container.
func NewVerletListsCells(box geom.Box, cutoff, skin float64, rebuildFrequency int) *VerletListsCellsContainer {
	return &VerletListsCellsContainer{VerletListsContainer: NewVerletLists(box, cutoff, skin, rebuildFrequency)}
}

func (v *VerletListsCellsContainer) Option() Option { return VerletListsCells }

// Rebuild rebuilds the underlying flat neighbour lists, then re-derives the
// per-cell grouping used by the vlc_* traversals.
func (v *VerletListsCellsContainer) Rebuild() {
	v.VerletListsContainer.Rebuild()
	v.byCell = make(map[[3]int][]int)
	for i, l := range v.Lists() {
		idx := v.lc.cellIndex3(l.Owner.Pos)
		v.byCell[idx] = append(v.byCell[idx], i)
	}
}

func (v *VerletListsCellsContainer) IteratePairwise(t Traversal) error {
	if t.ContainerOption() != VerletListsCells {
		return autopaserr.Newf("traversal is bound to container %v, but this container is %v", t.ContainerOption(), VerletListsCells)
	}
	if v.NeedsRebuild() {
		v.Rebuild()
	}
	t.InitTraversal()
	t.TraverseParticlePairs()
	t.EndTraversal()
	v.step++
	return nil
}

func (v *VerletListsCellsContainer) RebuildNeighborLists(t Traversal) { v.Rebuild() }

// ListIndicesInCell returns the indices into Lists() of every neighbour
// list owned by a particle in the given halo-inclusive cell.
func (v *VerletListsCellsContainer) ListIndicesInCell(idx [3]int) []int {
	return v.byCell[idx]
}

// LinkedCells exposes the backing grid for traversals that need cell
// geometry (dims, EachOwnedCell) directly.
func (v *VerletListsCellsContainer) LinkedCells() *LinkedCellsContainer { return v.lc }
