package traversal

import (
	"testing"

	"github.com/mansfield-lab/autopas/lib/cell"
	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/particle"
)

func seedGrid(t *testing.T, c *container.LinkedCellsContainer, box geom.Box, perAxis int) []*particle.Particle {
	t.Helper()
	var particles []*particle.Particle
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
				p := particle.New(id, 0, pos)
				id++
				if err := c.AddParticle(p); err != nil {
					t.Fatalf("AddParticle: %v", err)
				}
				particles = append(particles, p)
			}
		}
	}
	return particles
}

func checkExactlyBruteForce(t *testing.T, fn *countingCellFunctor, particles []*particle.Particle, cutoff float64) {
	t.Helper()
	want := bruteForcePairs(particles, cutoff)
	for k, n := range fn.pairs {
		if n != 1 {
			t.Errorf("pair %v visited %d times, want exactly once", k, n)
		}
		if !want[k] {
			t.Errorf("pair %v processed but is outside the cutoff", k)
		}
	}
	for k := range want {
		if fn.pairs[k] != 1 {
			t.Errorf("pair %v within cutoff was never visited", k)
		}
	}
}

// c08 is only run with Newton3 enabled here: with it disabled, the
// AoSFunctor/SoAFunctorPair contract calls the functor once per direction
// of every candidate pair (see gridwalk.go's processSingleCell/
// processCellPairForward), so a plain visit counter would see each pair
// twice regardless of correctness. Newton3-enabled coverage is what
// distinguishes "visited" from "double-counted".
func TestC08TraversalMatchesBruteForce(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{6, 6, 6}}
	cutoff := 1.0

	for _, layout := range []DataLayout{AoS, SoA} {
		c := container.NewLinkedCells(box, cutoff, 0.0, 1.0)
		particles := seedGrid(t, c, box, 4)

		fn := newCountingCellFunctor(cutoff)
		tr := NewC08(c, fn, layout, Newton3Enabled)
		if err := c.IteratePairwise(tr); err != nil {
			t.Fatalf("IteratePairwise: %v", err)
		}
		checkExactlyBruteForce(t, fn, particles, cutoff)
	}
}

// c01 never uses Newton-3 (each cell writes only into its own particles),
// so a pair of owned particles in two different cells is visited twice,
// once from each cell's own "asymmetric" pass, and a pair inside one cell
// is visited twice through processSingleCell's reversed second call. Only
// a pair whose partner sits in a halo cell is visited once, from the
// owned side.
func TestC01TraversalMatchesBruteForce(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{6, 6, 6}}
	cutoff := 1.0
	c := container.NewLinkedCells(box, cutoff, 0.0, 1.0)
	particles := seedGrid(t, c, box, 4)

	fn := newCountingCellFunctor(cutoff)
	tr := NewC01(c, fn, AoS)
	if err := c.IteratePairwise(tr); err != nil {
		t.Fatalf("IteratePairwise: %v", err)
	}
	// Owned-owned pairs are visited twice and owned-halo pairs once (see
	// above), so either count is legitimate.
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

// aosCallCounter only counts raw AoSFunctor invocations, unlike
// countingCellFunctor which dedups by unordered pair; this scenario
// asserts a call count, not a pair count, and every call happens whether
// or not the two particles are actually within cutoff, since cutoff
// filtering is the functor's job, not the traversal's.
type aosCallCounter struct{ calls int }

func (f *aosCallCounter) AoSFunctor(p, q *particle.Particle, newton3 bool) { f.calls++ }
func (f *aosCallCounter) SoAFunctorSingle(c *cell.SoA, newton3 bool)       {}
func (f *aosCallCounter) SoAFunctorPair(a, b *cell.SoA, newton3 bool)      {}
func (f *aosCallCounter) SoAFunctorVerlet(c *cell.SoA, neighbors [][]int, iFrom, iTo int, newton3 bool) {
}
func (f *aosCallCounter) SoALoader() []string       { return nil }
func (f *aosCallCounter) SoAExtractor() []string    { return nil }
func (f *aosCallCounter) AllowsNewton3() bool       { return true }
func (f *aosCallCounter) AllowsNonNewton3() bool    { return true }
func (f *aosCallCounter) IsRelevantForTuning() bool { return true }

// forwardOffsetPairCount returns the number of valid (base cell, forward
// neighbour cell) pairs a c08 traversal visits on an n*n*n owned grid,
// one particle per cell: for each of the 13 canonical forward offsets, a
// base cell at position p only has a valid target if p+offset stays
// inside [0,n) on every axis, which clips the count on the axes where
// that offset is nonzero.
func forwardOffsetPairCount(n int) int {
	total := 0
	for _, off := range container.ForwardOffsets13() {
		mult := 1
		for _, d := range off {
			if d < 0 {
				d = -d
			}
			mult *= n - d
		}
		total += mult
	}
	return total
}

// TestC08TraversalCallCountOnUnitGrid reproduces the concrete end-to-end
// scenario of a unit cube subdivided into a 10^3 linked-cells grid with
// one particle per cell and cutoff equal to one cell width: a c08
// traversal with Newton-3 invokes the AoS functor once per (base cell,
// forward neighbour) pair, since every owned cell is a valid base cell
// and Newton-3 collapses each pair to a single call. That total is not
// (n-1)^3*13: only 4 of the 13 forward offsets are full space diagonals
// clipped on all three axes, the rest are clipped on one or two axes and
// so keep a factor of n from the untouched axis; forwardOffsetPairCount
// sums the exact per-offset clipping instead of assuming every offset
// clips identically.
func TestC08TraversalCallCountOnUnitGrid(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{10, 10, 10}}
	cutoff := 1.0
	c := container.NewLinkedCells(box, cutoff, 0.0, 1.0)
	seedGrid(t, c, box, 10)

	fn := &aosCallCounter{}
	tr := NewC08(c, fn, AoS, Newton3Enabled)
	if err := c.IteratePairwise(tr); err != nil {
		t.Fatalf("IteratePairwise: %v", err)
	}

	want := forwardOffsetPairCount(10)
	if fn.calls != want {
		t.Errorf("AoSFunctor call count = %d, want %d", fn.calls, want)
	}
}

func TestSlicedTraversalMatchesBruteForce(t *testing.T) {
	box := geom.Box{Min: geom.Vec3{0, 0, 0}, Max: geom.Vec3{8, 6, 6}}
	cutoff := 1.0
	c := container.NewLinkedCells(box, cutoff, 0.0, 1.0)
	particles := seedGrid(t, c, box, 4)

	fn := newCountingCellFunctor(cutoff)
	tr := NewSliced(c, fn, AoS, Newton3Enabled)
	if err := c.IteratePairwise(tr); err != nil {
		t.Fatalf("IteratePairwise: %v", err)
	}
	checkExactlyBruteForce(t, fn, particles, cutoff)
}
