package selector

import (
	autopaserr "github.com/mansfield-lab/autopas/lib/error"

	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/traversal"
)

// NumberSet is a finite set or a closed interval of cell-size factors, the
// two shapes a caller's configuration surface can hand the selector.
type NumberSet struct {
	Finite   []float64
	Interval bool
	Lo, Hi   float64
}

// FiniteSet builds a NumberSet from an explicit list of allowed values.
func FiniteSet(values ...float64) NumberSet {
	return NumberSet{Finite: values}
}

// IntervalSet builds a NumberSet spanning [lo, hi].
func IntervalSet(lo, hi float64) NumberSet {
	return NumberSet{Interval: true, Lo: lo, Hi: hi}
}

// containerTraversals is the fixed compatibility table between a container
// option and the traversal options it can drive. Every concrete traversal
// constructor already binds itself to one container type, so this table is
// the search space's view of the same constraint container.Traversal
// enforces structurally.
var containerTraversals = map[container.Option][]traversal.Option{
	container.DirectSum:          {traversal.DSSequential},
	container.LinkedCells:        {traversal.C01, traversal.C08, traversal.C18, traversal.Sliced, traversal.SlicedC02, traversal.BalancedSliced},
	container.VerletLists:        {traversal.VLPC01},
	container.VerletListsCells:   {traversal.VLCC01, traversal.VLCSliced},
	container.VerletClusterLists: {traversal.VCLC01, traversal.VCLSliced},
	container.Octree:             {traversal.OTC01},
}

// CompatibleTraversals returns the traversal options c can drive.
func CompatibleTraversals(c container.Option) []traversal.Option {
	return containerTraversals[c]
}

// IsCompatible reports whether t is one of c's compatible traversals.
func IsCompatible(c container.Option, t traversal.Option) bool {
	for _, opt := range containerTraversals[c] {
		if opt == t {
			return true
		}
	}
	return false
}

// applicableLoadEstimators returns the load estimators a traversal option
// accepts. Only BalancedSliced consumes one; every other traversal is
// fixed at NoLoadEstimator.
func applicableLoadEstimators(t traversal.Option, allowed []traversal.LoadEstimator) []traversal.LoadEstimator {
	if t != traversal.BalancedSliced {
		return []traversal.LoadEstimator{traversal.NoLoadEstimator}
	}
	var out []traversal.LoadEstimator
	for _, e := range allowed {
		if e != traversal.NoLoadEstimator {
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		out = append(out, traversal.SquaredParticlesPerCellEstimator)
	}
	return out
}

// Enumerate constructs the Cartesian product of containers, layouts and
// newton3 options, then filters it: for each container keep only its
// compatible traversals, then for each (container, traversal) keep only
// its applicable load estimators. A csf NumberSet in interval form
// contributes a single dummy value (its lower bound) to the enumerated
// list, per the component design's "treat interval as one dummy value at
// enumeration time, subdivide later per rank" rule; a finite set expands
// fully.
func Enumerate(containers []container.Option, layouts []traversal.DataLayout, newton3s []traversal.Newton3Option, loadEstimators []traversal.LoadEstimator, csf NumberSet) ([]Configuration, error) {
	csfValues := csf.Finite
	if csf.Interval {
		csfValues = []float64{csf.Lo}
	}
	if len(csfValues) == 0 {
		return nil, autopaserr.Newf("selector: cell-size factor set is empty")
	}

	var out []Configuration
	for _, c := range containers {
		for _, t := range containerTraversals[c] {
			for _, le := range applicableLoadEstimators(t, loadEstimators) {
				for _, layout := range layouts {
					for _, n3 := range newton3s {
						for _, csfVal := range csfValues {
							out = append(out, Configuration{
								Container:      c,
								Traversal:      t,
								LoadEstimator:  le,
								DataLayout:     layout,
								Newton3:        n3,
								CellSizeFactor: csfVal,
							})
						}
					}
				}
			}
		}
	}

	if len(out) == 0 {
		return nil, autopaserr.Newf("selector: search space is empty after filtering")
	}
	return out, nil
}
