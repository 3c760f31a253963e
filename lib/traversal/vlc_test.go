package traversal

import (
	"testing"

	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/particle"
)

// seedGridParticles returns a perAxis^3 grid of particles spanning box,
// without adding them to any container: the Verlet containers below wrap
// their own internal Linked Cells container, so tests add particles
// straight to that.
func seedGridParticles(box geom.Box, perAxis int) []*particle.Particle {
	var out []*particle.Particle
	id := particle.ID(0)
	edge := box.Edge()
	for x := 0; x < perAxis; x++ {
		for y := 0; y < perAxis; y++ {
			for z := 0; z < perAxis; z++ {
				pos := geom.Vec3{
					box.Min[0] + (float64(x)+0.5)*edge[0]/float64(perAxis),
					box.Min[1] + (float64(y)+0.5)*edge[1]/float64(perAxis),
					box.Min[2] + (float64(z)+0.5)*edge[2]/float64(perAxis),
				}
				out = append(out, particle.New(id, 0, pos))
				id++
			}
		}
	}
	return out
}

// checkDoubledBruteForce is for the Verlet traversals that always disable
// Newton-3: vlProcess calls the functor once per direction for every
// list entry, and each unordered pair is recorded in exactly one list, so
// every in-cutoff pair is visited exactly twice.
func checkDoubledBruteForce(t *testing.T, fn *countingCellFunctor, want map[[2]posKey]bool) {
	t.Helper()
	for k, n := range fn.pairs {
		if !want[k] {
			t.Errorf("pair %v processed but is outside the cutoff", k)
			continue
		}
		if n != 2 {
			t.Errorf("pair %v visited %d times, want exactly 2 (Newton-3 disabled)", k, n)
		}
	}
	for k := range want {
		if fn.pairs[k] == 0 {
			t.Errorf("pair %v within cutoff was never visited", k)
		}
	}
}

func TestVLPC01TraversalMatchesBruteForce(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{6, 6, 6}}
	cutoff := 1.0
	c := container.NewVerletLists(box, cutoff, 0.2, 5)
	particles := seedGridParticles(box, 4)
	for _, p := range particles {
		if err := c.AddParticle(p); err != nil {
			t.Fatalf("AddParticle: %v", err)
		}
	}

	fn := newCountingCellFunctor(cutoff)
	tr := NewVLPC01(c, fn)
	if err := c.IteratePairwise(tr); err != nil {
		t.Fatalf("IteratePairwise: %v", err)
	}

	checkDoubledBruteForce(t, fn, bruteForcePairs(particles, cutoff))
}

func TestVLCC01TraversalMatchesBruteForce(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{6, 6, 6}}
	cutoff := 1.0
	c := container.NewVerletListsCells(box, cutoff, 0.2, 5)
	particles := seedGridParticles(box, 4)
	for _, p := range particles {
		if err := c.AddParticle(p); err != nil {
			t.Fatalf("AddParticle: %v", err)
		}
	}

	fn := newCountingCellFunctor(cutoff)
	tr := NewVLCC01(c, fn)
	if err := c.IteratePairwise(tr); err != nil {
		t.Fatalf("IteratePairwise: %v", err)
	}

	checkDoubledBruteForce(t, fn, bruteForcePairs(particles, cutoff))
}

func TestVLCSlicedTraversalMatchesBruteForce(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{8, 6, 6}}
	cutoff := 1.0
	c := container.NewVerletListsCells(box, cutoff, 0.2, 5)
	particles := seedGridParticles(box, 4)
	for _, p := range particles {
		if err := c.AddParticle(p); err != nil {
			t.Fatalf("AddParticle: %v", err)
		}
	}

	fn := newCountingCellFunctor(cutoff)
	tr := NewVLCSliced(c, fn, Newton3Enabled)
	if err := c.IteratePairwise(tr); err != nil {
		t.Fatalf("IteratePairwise: %v", err)
	}

	checkExactlyBruteForce(t, fn, particles, cutoff)
}
