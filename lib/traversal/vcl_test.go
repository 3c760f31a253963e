package traversal

import (
	"testing"

	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/geom"
)

// VCLC01 processes each cluster's intra-cluster pairs exactly once (one
// pass per cluster) but every cross-cluster neighbour pair twice, once
// from each cluster's own perspective, since it disables Newton-3 and
// applies no id-ordering dedup the way VCLSlicedTraversal does.
func TestVCLC01TraversalMatchesBruteForce(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{6, 6, 6}}
	cutoff := 1.0
	c := container.NewVerletClusterLists(box, cutoff, 0.2, 4, 5)
	particles := seedGridParticles(box, 4)
	for _, p := range particles {
		if err := c.AddParticle(p); err != nil {
			t.Fatalf("AddParticle: %v", err)
		}
	}

	fn := newCountingCellFunctor(cutoff)
	tr := NewVCLC01(c, fn)
	if err := c.IteratePairwise(tr); err != nil {
		t.Fatalf("IteratePairwise: %v", err)
	}

	want := bruteForcePairs(particles, cutoff)
	for k, n := range fn.pairs {
		if !want[k] {
			t.Errorf("pair %v processed but is outside the cutoff", k)
			continue
		}
		if n != 1 && n != 2 {
			t.Errorf("pair %v visited %d times, want 1 or 2", k, n)
		}
	}
	for k := range want {
		if fn.pairs[k] == 0 {
			t.Errorf("pair %v within cutoff was never visited", k)
		}
	}
}

func TestVCLSlicedTraversalMatchesBruteForce(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{8, 6, 6}}
	cutoff := 1.0
	c := container.NewVerletClusterLists(box, cutoff, 0.2, 4, 5)
	particles := seedGridParticles(box, 4)
	for _, p := range particles {
		if err := c.AddParticle(p); err != nil {
			t.Fatalf("AddParticle: %v", err)
		}
	}

	fn := newCountingCellFunctor(cutoff)
	tr := NewVCLSliced(c, fn, Newton3Enabled)
	if err := c.IteratePairwise(tr); err != nil {
		t.Fatalf("IteratePairwise: %v", err)
	}

	checkExactlyBruteForce(t, fn, particles, cutoff)
}
