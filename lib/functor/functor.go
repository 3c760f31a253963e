/*Package functor defines the pairwise-interaction kernel contract AutoPas
traversals call into. The concrete force law (Lennard-Jones or otherwise)
is an external collaborator per the engine's scope; this package only
fixes the shape every traversal is written against.
*/
package functor

import (
	"github.com/mansfield-lab/autopas/lib/cell"
	"github.com/mansfield-lab/autopas/lib/particle"
)

// Functor is the pluggable pairwise-interaction kernel plus its
// data-layout adapters. A traversal calls exactly one of the AoS/SoA
// kernels per candidate pair (or per SoA batch), never more than once per
// data-layout combination that the traversal declares.
type Functor interface {
	// AoSFunctor adds the interaction's force contribution between p and q
	// in place. When newton3 is true the implementation must also add the
	// symmetric contribution to q; when false the traversal will call
	// AoSFunctor a second time with the arguments reversed.
	AoSFunctor(p, q *particle.Particle, newton3 bool)

	// SoAFunctorSingle computes every pairwise interaction within a single
	// cell's SoA buffer (the intra-cell part of a c01/c08/c18 traversal).
	SoAFunctorSingle(c *cell.SoA, newton3 bool)
	// SoAFunctorPair computes every interaction between two distinct
	// cells' SoA buffers.
	SoAFunctorPair(a, b *cell.SoA, newton3 bool)
	// SoAFunctorVerlet computes interactions between the particles at
	// indices [iFrom, iTo) of c's SoA buffer and their pre-built neighbour
	// lists, for the vlc_*/vlp_* traversal family.
	SoAFunctorVerlet(c *cell.SoA, neighbors [][]int, iFrom, iTo int, newton3 bool)

	// SoALoader and SoAExtractor are the functor's chosen set of extra
	// attribute names to mirror into/out of a cell's SoA buffer, beyond
	// the fixed position/velocity/force columns every SoA carries.
	SoALoader() []string
	SoAExtractor() []string

	// AllowsNewton3 and AllowsNonNewton3 report which Newton-3 modes this
	// functor supports; the selector filters the search space accordingly.
	AllowsNewton3() bool
	AllowsNonNewton3() bool
	// IsRelevantForTuning reports whether this functor's cost should be
	// measured during tuning at all. Nothing in lib/selector consults it:
	// the tuner samples every configuration whatever it reports.
	IsRelevantForTuning() bool
}

// ClusterFunctor is implemented by functors used with Verlet cluster-list
// traversals, which operate on whole clusters rather than raw SoA ranges.
type ClusterFunctor interface {
	Functor
	// ProcessCluster computes the intra-cluster interactions of a single
	// cluster's SoA buffer.
	ProcessCluster(c *cell.SoA, newton3 bool)
	// ProcessClusterPair computes interactions between two distinct
	// clusters' SoA buffers.
	ProcessClusterPair(a, b *cell.SoA, newton3 bool)
}

// CellFunctor is implemented by functors used with octree traversals,
// which process a leaf against itself and against neighbouring leaves.
type CellFunctor interface {
	Functor
	// ProcessCell computes every intra-leaf interaction.
	ProcessCell(c *cell.SoA, newton3 bool)
}
