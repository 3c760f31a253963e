package container

import (
	"testing"

	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/particle"
)

func TestDirectSumAddParticleRejectsOutsideBox(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{1, 1, 1}}
	c := NewDirectSum(box, 0.1, 0.0)

	if err := c.AddParticle(particle.New(0, 0, geom.Vec3{0.5, 0.5, 0.5})); err != nil {
		t.Fatalf("AddParticle inside box: %v", err)
	}
	if err := c.AddParticle(particle.New(1, 0, geom.Vec3{2, 2, 2})); err == nil {
		t.Errorf("AddParticle outside box: want error, got nil")
	}
}

func TestDirectSumAddHaloParticleRequiresShell(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{1, 1, 1}}
	c := NewDirectSum(box, 0.2, 0.1)

	// inside the owned box: not a halo particle.
	if err := c.AddHaloParticle(particle.New(0, 0, geom.Vec3{0.5, 0.5, 0.5})); err == nil {
		t.Errorf("AddHaloParticle inside owned box: want error, got nil")
	}
	// within interaction length of the owned box: a valid halo particle.
	if err := c.AddHaloParticle(particle.New(1, 0, geom.Vec3{1.2, 0.5, 0.5})); err != nil {
		t.Errorf("AddHaloParticle within shell: %v", err)
	}
	// far beyond the interaction length: rejected.
	if err := c.AddHaloParticle(particle.New(2, 0, geom.Vec3{5, 5, 5})); err == nil {
		t.Errorf("AddHaloParticle far outside shell: want error, got nil")
	}
}

func TestDirectSumUpdateContainerReturnsLeavers(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{1, 1, 1}}
	c := NewDirectSum(box, 0.1, 0.0)

	stay := particle.New(0, 0, geom.Vec3{0.5, 0.5, 0.5})
	leave := particle.New(1, 0, geom.Vec3{0.9, 0.9, 0.9})
	if err := c.AddParticle(stay); err != nil {
		t.Fatalf("AddParticle: %v", err)
	}
	if err := c.AddParticle(leave); err != nil {
		t.Fatalf("AddParticle: %v", err)
	}
	if err := c.AddHaloParticle(particle.New(2, 0, geom.Vec3{1.05, 0.5, 0.5})); err != nil {
		t.Fatalf("AddHaloParticle: %v", err)
	}

	leave.Pos = geom.Vec3{1.5, 1.5, 1.5}
	leavers := c.UpdateContainer()

	if len(leavers) != 1 || leavers[0] != leave {
		t.Fatalf("UpdateContainer leavers = %v, want [%v]", leavers, leave)
	}
	if len(c.Owned()) != 1 || c.Owned()[0] != stay {
		t.Errorf("Owned() after update = %v, want [%v]", c.Owned(), stay)
	}
	if len(c.Halo()) != 0 {
		t.Errorf("Halo() after update = %v, want empty (UpdateContainer clears halo unconditionally)", c.Halo())
	}
}

func TestDirectSumRegionIterateClampsToHaloBox(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{1, 1, 1}}
	c := NewDirectSum(box, 0.1, 0.0)
	inner := particle.New(0, 0, geom.Vec3{0.5, 0.5, 0.5})
	if err := c.AddParticle(inner); err != nil {
		t.Fatalf("AddParticle: %v", err)
	}

	var seen []particle.ID
	err := c.RegionIterate(geom.Vec3{0.3, 0.3, 0.3}, geom.Vec3{100, 100, 100}, IterOwnedOrHalo, func(p *particle.Particle) {
		seen = append(seen, p.ID)
	})
	if err != nil {
		t.Fatalf("RegionIterate: %v", err)
	}
	if len(seen) != 1 || seen[0] != inner.ID {
		t.Errorf("RegionIterate saw %v, want [%d] (region clamped to the halo box, not the raw request)", seen, inner.ID)
	}

	err = c.RegionIterate(geom.Vec3{1, 1, 1}, geom.Vec3{0, 0, 0}, IterOwnedOrHalo, func(*particle.Particle) {})
	if err == nil {
		t.Errorf("RegionIterate with min > max: want error, got nil")
	}
}

func TestDirectSumDeleteHaloParticles(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{1, 1, 1}}
	c := NewDirectSum(box, 0.2, 0.0)
	if err := c.AddHaloParticle(particle.New(0, 0, geom.Vec3{1.1, 0.5, 0.5})); err != nil {
		t.Fatalf("AddHaloParticle: %v", err)
	}
	c.DeleteHaloParticles()
	if len(c.Halo()) != 0 {
		t.Errorf("Halo() after DeleteHaloParticles = %v, want empty", c.Halo())
	}
}
