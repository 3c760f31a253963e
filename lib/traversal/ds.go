package traversal

import (
	"github.com/mansfield-lab/autopas/lib/cell"
	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/functor"
	"github.com/mansfield-lab/autopas/lib/particle"
)

// DSSequentialTraversal is the only traversal Direct Sum supports: every
// owned particle is paired against every particle that follows it in the
// owned list (Newton-3) or against every other owned particle plus every
// halo particle (non-Newton-3), and every owned particle is paired against
// every halo particle exactly once regardless of the Newton-3 setting.
type DSSequentialTraversal struct {
	base
	c *container.DirectSumContainer
	f functor.Functor

	ownedSoA *cell.SoA
	haloSoA  *cell.SoA
}

// NewDSSequential creates a Direct Sum traversal over c using functor f.
func NewDSSequential(c *container.DirectSumContainer, f functor.Functor, layout DataLayout, newton3 Newton3Option) *DSSequentialTraversal {
	return &DSSequentialTraversal{
		base: base{containerOption: container.DirectSum, dataLayout: layout, newton3: newton3},
		c:    c, f: f,
	}
}

func (t *DSSequentialTraversal) Option() Option { return DSSequential }

// IsApplicable reports true unconditionally: Direct Sum has no grid
// geometry for a colouring/slicing scheme to depend on, and its one
// traversal supports both data layouts and both Newton-3 settings.
func (t *DSSequentialTraversal) IsApplicable(dims [3]int, threads int) bool { return true }

func (t *DSSequentialTraversal) InitTraversal() {
	if t.dataLayout != SoA {
		return
	}
	ownedCell, haloCell := asAoSCells(t.c.Owned()), asAoSCells(t.c.Halo())
	t.ownedSoA = cell.Load(ownedCell, t.f.SoALoader())
	t.haloSoA = cell.Load(haloCell, t.f.SoALoader())
}

func (t *DSSequentialTraversal) TraverseParticlePairs() {
	if t.dataLayout == SoA {
		t.f.SoAFunctorSingle(t.ownedSoA, t.newton3.Bool())
		t.f.SoAFunctorPair(t.ownedSoA, t.haloSoA, t.newton3.Bool())
		return
	}

	owned, halo := t.c.Owned(), t.c.Halo()
	n3 := t.newton3.Bool()
	for i := 0; i < len(owned); i++ {
		if owned[i].IsDummy() {
			continue
		}
		for j := i + 1; j < len(owned); j++ {
			if owned[j].IsDummy() {
				continue
			}
			t.f.AoSFunctor(owned[i], owned[j], n3)
			if !n3 {
				t.f.AoSFunctor(owned[j], owned[i], n3)
			}
		}
		for _, q := range halo {
			if q.IsDummy() {
				continue
			}
			t.f.AoSFunctor(owned[i], q, n3)
			if !n3 {
				t.f.AoSFunctor(q, owned[i], n3)
			}
		}
	}
}

func (t *DSSequentialTraversal) EndTraversal() {
	if t.dataLayout != SoA {
		return
	}
	ownedCell, haloCell := asAoSCells(t.c.Owned()), asAoSCells(t.c.Halo())
	cell.Extract(ownedCell, t.ownedSoA)
	cell.Extract(haloCell, t.haloSoA)
	t.ownedSoA, t.haloSoA = nil, nil
}

// asAoSCells wraps a flat particle slice in a throwaway Cell so it can go
// through the shared cell.Load/cell.Extract SoA adapter; Direct Sum has no
// cell structure of its own to reuse.
func asAoSCells(particles []*particle.Particle) *cell.Cell {
	c := cell.New()
	for _, p := range particles {
		c.Add(p)
	}
	return c
}
