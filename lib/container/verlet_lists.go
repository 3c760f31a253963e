package container

import (
	autopaserr "github.com/mansfield-lab/autopas/lib/error"
	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/particle"
)

// VerletNeighborList holds, for one owned particle, pointers to every
// candidate partner within cutoff+skin at the time of the last rebuild.
type VerletNeighborList struct {
	Owner     *particle.Particle
	Neighbors []*particle.Particle
	BuiltPos  geom.Vec3
}

// VerletListsContainer wraps a Linked Cells container with a per-particle
// neighbour list built at cutoff+skin, rebuilt according to the rebuild
// policy in the neighbour-list-maintenance design (skin displacement
// check, rebuildFrequency cap, forced rebuild on UpdateContainer).
type VerletListsContainer struct {
	lc                *LinkedCellsContainer
	rebuildFrequency  int
	step              int
	lists             []VerletNeighborList
	builtOnce         bool
}

// NewVerletLists creates a Verlet Lists container. rebuildFrequency caps
// the number of pairwise iterations between unconditional rebuilds.
func NewVerletLists(box geom.Box, cutoff, skin float64, rebuildFrequency int) *VerletListsContainer {
	return &VerletListsContainer{
		lc:               NewLinkedCells(box, cutoff, skin, 1.0),
		rebuildFrequency: rebuildFrequency,
	}
}

func (v *VerletListsContainer) Option() Option            { return VerletLists }
func (v *VerletListsContainer) Box() geom.Box              { return v.lc.Box() }
func (v *VerletListsContainer) Cutoff() float64            { return v.lc.Cutoff() }
func (v *VerletListsContainer) Skin() float64              { return v.lc.Skin() }
func (v *VerletListsContainer) InteractionLength() float64 { return v.lc.InteractionLength() }
func (v *VerletListsContainer) Dims() [3]int               { return v.lc.Dims() }

func (v *VerletListsContainer) AddParticle(p *particle.Particle) error     { return v.lc.AddParticle(p) }
func (v *VerletListsContainer) AddHaloParticle(p *particle.Particle) error { return v.lc.AddHaloParticle(p) }
func (v *VerletListsContainer) DeleteHaloParticles()                       { v.lc.DeleteHaloParticles() }
func (v *VerletListsContainer) Iterate(behavior IterationBehavior, f func(*particle.Particle)) {
	v.lc.Iterate(behavior, f)
}
func (v *VerletListsContainer) RegionIterate(min, max geom.Vec3, behavior IterationBehavior, f func(*particle.Particle)) error {
	return v.lc.RegionIterate(min, max, behavior, f)
}

func (v *VerletListsContainer) UpdateContainer() []*particle.Particle {
	leaving := v.lc.UpdateContainer()
	// An explicit updateContainer always forces the next rebuild.
	v.step = 0
	v.builtOnce = false
	return leaving
}

// NeedsRebuild reports whether the next IteratePairwise/
// RebuildNeighborLists call must perform a full rebuild, per the rebuild
// policy: first iteration, rebuildFrequency cadence, or a failed validity
// check.
func (v *VerletListsContainer) NeedsRebuild() bool {
	if !v.builtOnce {
		return true
	}
	if v.rebuildFrequency > 0 && v.step%v.rebuildFrequency == 0 {
		return true
	}
	return !v.CheckNeighborListsAreValid()
}

// CheckNeighborListsAreValid implements the validity check: the list
// remains valid iff no particle has moved more than skin from its
// build-time position.
func (v *VerletListsContainer) CheckNeighborListsAreValid() bool {
	if !v.builtOnce {
		return false
	}
	skin := v.Skin()
	for _, l := range v.lists {
		if l.Owner.IsDummy() {
			continue
		}
		if l.Owner.Pos.Dist(l.BuiltPos) > skin {
			return false
		}
	}
	return true
}

// Rebuild performs the neighbour-list build algorithm: for each owned
// particle, enumerate the 13 forward neighbouring cells plus its own and
// collect every partner within cutoff+skin. Every unordered pair is
// recorded in exactly one list: a cross-cell pair only in the list of the
// particle whose home cell reached the other via a forward offset, and an
// own-cell pair only in the list of whichever of the two comes first in
// owned-particle order. Halo particles have no list of their own, so an
// owned particle's list also takes halo partners from the 13 backward
// cells. A Newton-3 traversal can then call the functor
// once per list entry; a non-Newton-3 traversal calls it twice, once with
// the arguments reversed.
func (v *VerletListsContainer) Rebuild() {
	v.lc.Rebuild()
	interactionLenSq := v.InteractionLength() * v.InteractionLength()

	var owned []*particle.Particle
	v.lc.Iterate(IterOwned, func(p *particle.Particle) { owned = append(owned, p) })

	ownedIndex := make(map[*particle.Particle]int, len(owned))
	for i, p := range owned {
		ownedIndex[p] = i
	}

	lists := make([]VerletNeighborList, len(owned))
	offsets := ForwardOffsets13()

	for i, p := range owned {
		lists[i] = VerletNeighborList{Owner: p, BuiltPos: p.Pos}
		home := v.lc.cellIndex3(p.Pos)

		v.lc.CellAt(home).Each(func(q *particle.Particle) {
			if q == p {
				return
			}
			if j, ok := ownedIndex[q]; ok && j < i {
				return
			}
			if p.Pos.DistSq(q.Pos) <= interactionLenSq {
				lists[i].Neighbors = append(lists[i].Neighbors, q)
			}
		})

		for _, off := range offsets {
			nb := [3]int{home[0] + off[0], home[1] + off[1], home[2] + off[2]}
			if !v.lc.InBounds(nb) {
				continue
			}
			v.lc.CellAt(nb).Each(func(q *particle.Particle) {
				if p.Pos.DistSq(q.Pos) <= interactionLenSq {
					lists[i].Neighbors = append(lists[i].Neighbors, q)
				}
			})
		}

		for _, off := range offsets {
			nb := [3]int{home[0] - off[0], home[1] - off[1], home[2] - off[2]}
			if !v.lc.InBounds(nb) {
				continue
			}
			v.lc.CellAt(nb).Each(func(q *particle.Particle) {
				if q.IsHalo() && p.Pos.DistSq(q.Pos) <= interactionLenSq {
					lists[i].Neighbors = append(lists[i].Neighbors, q)
				}
			})
		}
	}

	v.lists = lists
	v.builtOnce = true
	v.step = 0
}

// Lists returns the current per-particle neighbour lists.
func (v *VerletListsContainer) Lists() []VerletNeighborList { return v.lists }

func (v *VerletListsContainer) IteratePairwise(t Traversal) error {
	if t.ContainerOption() != VerletLists {
		return autopaserr.Newf("traversal is bound to container %v, but this container is %v", t.ContainerOption(), VerletLists)
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

func (v *VerletListsContainer) RebuildNeighborLists(t Traversal) {
	v.Rebuild()
}
