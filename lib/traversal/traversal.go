/*Package traversal implements AutoPas' L2 layer: ordered walks over a
container's cells or neighbour lists that invoke a functor on every
candidate pair, encoding the parallel schedule, colouring/locking
discipline, and data layout described by the component design.
*/
package traversal

import (
	"github.com/mansfield-lab/autopas/lib/container"
)

// DataLayout selects whether a traversal drives the functor's AoS or SoA
// kernels.
type DataLayout int

const (
	AoS DataLayout = iota
	SoA
)

func (d DataLayout) String() string {
	if d == SoA {
		return "soa"
	}
	return "aos"
}

// Newton3Option selects whether a traversal exploits Newton's third law to
// halve the pair-visit count.
type Newton3Option int

const (
	Newton3Disabled Newton3Option = iota
	Newton3Enabled
)

// Bool reports the option as a plain bool, the form the functor contract
// takes.
func (n Newton3Option) Bool() bool { return n == Newton3Enabled }

func (n Newton3Option) String() string {
	if n == Newton3Enabled {
		return "enabled"
	}
	return "disabled"
}

// LoadEstimator names the cost model a balanced-sliced traversal uses to
// size its slices.
type LoadEstimator int

const (
	NoLoadEstimator LoadEstimator = iota
	SquaredParticlesPerCellEstimator
	NeighborListLengthEstimator
)

func (l LoadEstimator) String() string {
	switch l {
	case SquaredParticlesPerCellEstimator:
		return "squaredParticlesPerCell"
	case NeighborListLengthEstimator:
		return "neighborListLength"
	default:
		return "none"
	}
}

// Option names one of the concrete traversal algorithms, the second
// component (after container.Option) of the Configuration tuple.
type Option int

const (
	DSSequential Option = iota
	C01
	C08
	C18
	Sliced
	SlicedC02
	BalancedSliced
	VLCC01
	VLCSliced
	VLPC01
	VCLC01
	VCLSliced
	OTC01
)

func (o Option) String() string {
	switch o {
	case DSSequential:
		return "ds_sequential"
	case C01:
		return "c01"
	case C08:
		return "c08"
	case C18:
		return "c18"
	case Sliced:
		return "sliced"
	case SlicedC02:
		return "sliced_c02"
	case BalancedSliced:
		return "balanced_sliced"
	case VLCC01:
		return "vlc_c01"
	case VLCSliced:
		return "vlc_sliced"
	case VLPC01:
		return "vlp_c01"
	case VCLC01:
		return "vcl_c01"
	case VCLSliced:
		return "vcl_sliced"
	case OTC01:
		return "ot_c01"
	default:
		return "unknown"
	}
}

// Traversal is the full contract a concrete traversal implements: the
// subset container.Container needs to drive one pairwise iteration, plus
// the Configuration-tuple accessors the selector needs to enumerate and
// filter the search space.
type Traversal interface {
	container.Traversal
	Option() Option
	DataLayout() DataLayout
	UseNewton3() bool
}

// base holds the three fields common to every concrete traversal
// (which container family it is bound to, its data layout, its Newton-3
// setting) so each traversal type only implements the parts that actually
// differ.
type base struct {
	containerOption container.Option
	dataLayout      DataLayout
	newton3         Newton3Option
}

func (b base) ContainerOption() container.Option { return b.containerOption }
func (b base) DataLayout() DataLayout            { return b.dataLayout }
func (b base) UseNewton3() bool                  { return b.newton3.Bool() }
