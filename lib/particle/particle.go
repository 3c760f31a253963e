/*Package particle defines AutoPas' particle record and ownership model
(the L0 layer). The fixed position/velocity/force/id/type fields are
grounded on guppy's `lib.RockstarParticle` (ID + [3]float attributes); the
open-ended, functor-addressable attribute set is grounded on
`lib/particles.Particles`/`Field`, generalized from a snapshot-file's named
columns to a single particle's extra SoA-addressable fields.
*/
package particle

import "github.com/mansfield-lab/autopas/lib/geom"

// OwnershipState classifies a particle relative to a container's owned box.
type OwnershipState int

const (
	// Dummy particles are placeholders (Verlet-cluster padding, deleted
	// octree-leaf slots) that must never be visible to iteration modes
	// other than the explicit owned|halo|dummy mode.
	Dummy OwnershipState = iota
	Owned
	Halo
)

func (s OwnershipState) String() string {
	switch s {
	case Owned:
		return "owned"
	case Halo:
		return "halo"
	default:
		return "dummy"
	}
}

// ID is the opaque, caller-assigned particle identifier. Uniqueness is a
// caller contract; AutoPas never inspects the bit pattern of an ID.
type ID uint64

// Particle is AutoPas' unit of data: a point with position, velocity and
// accumulated force, an id, a type id, and an ownership state. Extra
// SoA-addressable attributes a functor needs (e.g. per-type sigma/epsilon
// or an internal energy) are carried in Attrs rather than hard-coded here,
// mirroring how guppy's Particles map keeps every attribute a first-class,
// independently-typed Field.
type Particle struct {
	Pos, Vel, Force geom.Vec3
	ID              ID
	TypeID          int
	State           OwnershipState

	Attrs AttributeSet
}

// New creates an owned particle at rest with no accumulated force.
func New(id ID, typeID int, pos geom.Vec3) *Particle {
	return &Particle{Pos: pos, ID: id, TypeID: typeID, State: Owned}
}

// ResetForce zeroes the accumulated force, as done at the start of every
// pairwise iteration before the functor accumulates new contributions.
func (p *Particle) ResetForce() { p.Force = geom.Vec3{} }

// IsOwned, IsHalo and IsDummy are the three ownership predicates used
// throughout container/traversal iteration filtering.
func (p *Particle) IsOwned() bool { return p.State == Owned }
func (p *Particle) IsHalo() bool  { return p.State == Halo }
func (p *Particle) IsDummy() bool { return p.State == Dummy }
