/*Package container implements AutoPas' L1 spatial-index layer: the
Container interface and its four concrete realizations (Direct Sum, Linked
Cells, the Verlet family, and Octree).
*/
package container

import (
	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/particle"
)

// Option names one of the four concrete container families. It doubles as
// the "container tag" IteratePairwise checks a traversal against.
type Option int

const (
	DirectSum Option = iota
	LinkedCells
	VerletLists
	VerletListsCells
	VerletClusterLists
	Octree
)

func (o Option) String() string {
	switch o {
	case DirectSum:
		return "directSum"
	case LinkedCells:
		return "linkedCells"
	case VerletLists:
		return "verletLists"
	case VerletListsCells:
		return "verletListsCells"
	case VerletClusterLists:
		return "verletClusterLists"
	case Octree:
		return "octree"
	default:
		return "unknown"
	}
}

// IterationBehavior selects which ownership states an iterator yields.
type IterationBehavior int

const (
	IterOwned IterationBehavior = 1 << iota
	IterHalo
	IterDummy
)

const (
	IterOwnedOrHalo      = IterOwned | IterHalo
	IterOwnedHaloOrDummy = IterOwned | IterHalo | IterDummy
)

func (b IterationBehavior) matches(s particle.OwnershipState) bool {
	switch s {
	case particle.Owned:
		return b&IterOwned != 0
	case particle.Halo:
		return b&IterHalo != 0
	default:
		return b&IterDummy != 0
	}
}

// Traversal is the subset of the traversal contract a Container needs to
// drive one pairwise iteration. lib/traversal.Traversal satisfies this.
type Traversal interface {
	ContainerOption() Option
	InitTraversal()
	TraverseParticlePairs()
	EndTraversal()
	IsApplicable(dims [3]int, threads int) bool
}

// Container is the spatial index every AutoPas container implements.
type Container interface {
	// Option reports which concrete family this container belongs to, for
	// the traversal-binding tag check in IteratePairwise.
	Option() Option

	AddParticle(p *particle.Particle) error
	AddHaloParticle(p *particle.Particle) error

	// UpdateContainer removes every owned particle no longer inside the
	// owned box (and every halo particle, unconditionally) and returns the
	// ones that left the owned box to the caller.
	UpdateContainer() []*particle.Particle

	// DeleteHaloParticles clears every halo particle in bulk.
	DeleteHaloParticles()

	Iterate(behavior IterationBehavior, f func(*particle.Particle))
	RegionIterate(min, max geom.Vec3, behavior IterationBehavior, f func(*particle.Particle)) error

	// IteratePairwise binds t to this container's internal state and runs
	// InitTraversal/TraverseParticlePairs/EndTraversal.
	IteratePairwise(t Traversal) error

	// RebuildNeighborLists is a no-op for every container except the
	// Verlet family.
	RebuildNeighborLists(t Traversal)

	Box() geom.Box
	Cutoff() float64
	Skin() float64
	InteractionLength() float64

	// Dims reports the number of grid cells along each dimension for
	// containers with a regular grid (Linked Cells and its Verlet
	// derivatives); DirectSum and Octree report {1,1,1}.
	Dims() [3]int
}

// haloBox returns the halo-inclusive box (owned box grown by interaction
// length), the region every halo particle must lie within per the
// container invariants.
func haloBox(owned geom.Box, interactionLength float64) geom.Box {
	return owned.GrowBy(interactionLength)
}
