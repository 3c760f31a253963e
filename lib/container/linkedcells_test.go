package container

import (
	"testing"

	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/particle"
)

func TestLinkedCellsRebuildGridDimensions(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{10, 10, 10}}
	c := NewLinkedCells(box, 1.0, 0.0, 1.0)

	if c.Dims() != [3]int{10, 10, 10} {
		t.Errorf("Dims() = %v, want {10,10,10}", c.Dims())
	}
	if c.FullDims() != [3]int{12, 12, 12} {
		t.Errorf("FullDims() = %v, want {12,12,12} (one halo layer each side)", c.FullDims())
	}
}

func TestLinkedCellsAddParticleAndIterate(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{4, 4, 4}}
	c := NewLinkedCells(box, 1.0, 0.0, 1.0)

	owned := particle.New(0, 0, geom.Vec3{0.5, 0.5, 0.5})
	if err := c.AddParticle(owned); err != nil {
		t.Fatalf("AddParticle: %v", err)
	}
	halo := particle.New(1, 0, geom.Vec3{4.5, 0.5, 0.5})
	if err := c.AddHaloParticle(halo); err != nil {
		t.Fatalf("AddHaloParticle: %v", err)
	}

	var owned3, all3 int
	c.Iterate(IterOwned, func(*particle.Particle) { owned3++ })
	c.Iterate(IterOwnedOrHalo, func(*particle.Particle) { all3++ })
	if owned3 != 1 {
		t.Errorf("Iterate(IterOwned) visited %d particles, want 1", owned3)
	}
	if all3 != 2 {
		t.Errorf("Iterate(IterOwnedOrHalo) visited %d particles, want 2", all3)
	}
}

func TestLinkedCellsAddParticleRejectsOutsideBox(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{4, 4, 4}}
	c := NewLinkedCells(box, 1.0, 0.0, 1.0)
	if err := c.AddParticle(particle.New(0, 0, geom.Vec3{10, 10, 10})); err == nil {
		t.Errorf("AddParticle outside box: want error, got nil")
	}
}

func TestLinkedCellsUpdateContainerMovesLeavers(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{4, 4, 4}}
	c := NewLinkedCells(box, 1.0, 0.0, 1.0)

	stay := particle.New(0, 0, geom.Vec3{0.5, 0.5, 0.5})
	leave := particle.New(1, 0, geom.Vec3{3.5, 3.5, 3.5})
	if err := c.AddParticle(stay); err != nil {
		t.Fatalf("AddParticle: %v", err)
	}
	if err := c.AddParticle(leave); err != nil {
		t.Fatalf("AddParticle: %v", err)
	}
	if err := c.AddHaloParticle(particle.New(2, 0, geom.Vec3{4.5, 0.5, 0.5})); err != nil {
		t.Fatalf("AddHaloParticle: %v", err)
	}

	leave.Pos = geom.Vec3{9, 9, 9}
	leavers := c.UpdateContainer()
	if len(leavers) != 1 || leavers[0] != leave {
		t.Fatalf("UpdateContainer leavers = %v, want [%v]", leavers, leave)
	}

	var remaining []particle.ID
	c.Iterate(IterOwnedOrHalo, func(p *particle.Particle) { remaining = append(remaining, p.ID) })
	if len(remaining) != 1 || remaining[0] != stay.ID {
		t.Errorf("particles remaining after UpdateContainer = %v, want [%d] (halo cleared, leaver dropped)", remaining, stay.ID)
	}
}

func TestLinkedCellsDeleteHaloParticles(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{4, 4, 4}}
	c := NewLinkedCells(box, 1.0, 0.0, 1.0)
	if err := c.AddHaloParticle(particle.New(0, 0, geom.Vec3{4.5, 0.5, 0.5})); err != nil {
		t.Fatalf("AddHaloParticle: %v", err)
	}
	c.DeleteHaloParticles()
	var count int
	c.Iterate(IterOwnedOrHalo, func(*particle.Particle) { count++ })
	if count != 0 {
		t.Errorf("particles after DeleteHaloParticles = %d, want 0", count)
	}
}

func TestLinkedCellsRegionIterateRespectsBounds(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{4, 4, 4}}
	c := NewLinkedCells(box, 1.0, 0.0, 1.0)
	near := particle.New(0, 0, geom.Vec3{0.5, 0.5, 0.5})
	far := particle.New(1, 0, geom.Vec3{3.5, 3.5, 3.5})
	if err := c.AddParticle(near); err != nil {
		t.Fatalf("AddParticle: %v", err)
	}
	if err := c.AddParticle(far); err != nil {
		t.Fatalf("AddParticle: %v", err)
	}

	var seen []particle.ID
	err := c.RegionIterate(geom.Vec3{0, 0, 0}, geom.Vec3{1, 1, 1}, IterOwnedOrHalo, func(p *particle.Particle) {
		seen = append(seen, p.ID)
	})
	if err != nil {
		t.Fatalf("RegionIterate: %v", err)
	}
	if len(seen) != 1 || seen[0] != near.ID {
		t.Errorf("RegionIterate saw %v, want [%d]", seen, near.ID)
	}

	if err := c.RegionIterate(geom.Vec3{1, 1, 1}, geom.Vec3{0, 0, 0}, IterOwnedOrHalo, func(*particle.Particle) {}); err == nil {
		t.Errorf("RegionIterate with min > max: want error, got nil")
	}
}

// TestLinkedCellsHaloOnlyContainer covers the boundary scenario where a
// container never receives an owned particle at all: owned must iterate
// as empty while halo still yields every particle that was inserted.
func TestLinkedCellsHaloOnlyContainer(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{4, 4, 4}}
	c := NewLinkedCells(box, 1.0, 0.2, 1.0)

	halos := []*particle.Particle{
		particle.New(0, 0, geom.Vec3{4.5, 0.5, 0.5}),
		particle.New(1, 0, geom.Vec3{-0.5, 2.0, 2.0}),
		particle.New(2, 0, geom.Vec3{2.0, 4.9, 2.0}),
	}
	for _, p := range halos {
		if err := c.AddHaloParticle(p); err != nil {
			t.Fatalf("AddHaloParticle(%v): %v", p.Pos, err)
		}
	}

	var owned []particle.ID
	c.Iterate(IterOwned, func(p *particle.Particle) { owned = append(owned, p.ID) })
	if len(owned) != 0 {
		t.Errorf("Iterate(IterOwned) on a halo-only container = %v, want empty", owned)
	}

	var seenHalo []particle.ID
	c.Iterate(IterHalo, func(p *particle.Particle) { seenHalo = append(seenHalo, p.ID) })
	if len(seenHalo) != len(halos) {
		t.Fatalf("Iterate(IterHalo) saw %d particles, want %d", len(seenHalo), len(halos))
	}
	for _, p := range halos {
		found := false
		for _, id := range seenHalo {
			if id == p.ID {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Iterate(IterHalo) missing particle %d", p.ID)
		}
	}
}

// TestLinkedCellsBoundaryGrid reproduces the "10^3 grid around boundary"
// scenario: particles placed at the ten canonical per-axis offsets
// {bmin-c-s+eps, bmin-c, bmin-s/4, bmin, bmin+s/4, bmax-s/4, bmax,
// bmax+s/4, bmax+c, bmax+c+s-eps} combined across all three axes. Only
// the triples drawn from {bmin, bmin+s/4, bmax-s/4} land inside
// [bmin,bmax) in every dimension and so must be added as owned; every
// other combination must be added as halo.
func TestLinkedCellsBoundaryGrid(t *testing.T) {
	const (
		bmin = 0.0
		bmax = 4.0
		c    = 1.0
		s    = 0.2
		eps  = 1e-6
	)
	values := [10]float64{
		bmin - c - s + eps,
		bmin - c,
		bmin - s/4,
		bmin,
		bmin + s/4,
		bmax - s/4,
		bmax,
		bmax + s/4,
		bmax + c,
		bmax + c + s - eps,
	}
	// insideIdx marks which of the ten canonical values fall inside
	// [bmin,bmax); a triple is owned only if every axis draws from this
	// set.
	insideIdx := map[int]bool{3: true, 4: true, 5: true}

	box := geom.Box{Min: geom.Vec3{bmin, bmin, bmin}, Max: geom.Vec3{bmax, bmax, bmax}}
	cont := NewLinkedCells(box, c, s, 1.0)

	ownedWant, haloWant := 0, 0
	for ix := 0; ix < 10; ix++ {
		for iy := 0; iy < 10; iy++ {
			for iz := 0; iz < 10; iz++ {
				pos := geom.Vec3{values[ix], values[iy], values[iz]}
				owned := insideIdx[ix] && insideIdx[iy] && insideIdx[iz]
				if owned {
					ownedWant++
					if err := cont.AddParticle(particle.New(particle.ID(ownedWant+haloWant), 0, pos)); err != nil {
						t.Fatalf("AddParticle(%v), expected owned: %v", pos, err)
					}
				} else {
					haloWant++
					if err := cont.AddHaloParticle(particle.New(particle.ID(ownedWant+haloWant), 0, pos)); err != nil {
						t.Fatalf("AddHaloParticle(%v), expected halo: %v", pos, err)
					}
				}
			}
		}
	}

	var ownedGot, haloGot int
	cont.Iterate(IterOwned, func(*particle.Particle) { ownedGot++ })
	cont.Iterate(IterHalo, func(*particle.Particle) { haloGot++ })
	if ownedGot != ownedWant {
		t.Errorf("Iterate(IterOwned) count = %d, want %d", ownedGot, ownedWant)
	}
	if haloGot != haloWant {
		t.Errorf("Iterate(IterHalo) count = %d, want %d", haloGot, haloWant)
	}
}
