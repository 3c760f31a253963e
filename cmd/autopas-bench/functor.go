package main

import (
	"math"

	"github.com/mansfield-lab/autopas/lib/cell"
	"github.com/mansfield-lab/autopas/lib/particle"
)

// lennardJones is the synthetic pairwise kernel that gives the tuning
// state machine something real to measure. It is a stand-in for the
// caller-supplied functor the engine's scope treats as an external
// collaborator; a real integration links this package against its own
// force law instead.
type lennardJones struct {
	cutoffSq   float64
	epsilon    float64
	sigma6     float64
	sigma12    float64
}

func newLennardJones(cutoff, epsilon, sigma float64) *lennardJones {
	s6 := math.Pow(sigma, 6)
	return &lennardJones{
		cutoffSq: cutoff * cutoff,
		epsilon:  epsilon,
		sigma6:   s6,
		sigma12:  s6 * s6,
	}
}

func (f *lennardJones) force(dx, dy, dz float64) (fx, fy, fz float64, ok bool) {
	distSq := dx*dx + dy*dy + dz*dz
	if distSq > f.cutoffSq || distSq == 0 {
		return 0, 0, 0, false
	}
	invSq := 1 / distSq
	inv6 := invSq * invSq * invSq
	scalar := 24 * f.epsilon * inv6 * (2*f.sigma12*inv6 - f.sigma6) * invSq
	return scalar * dx, scalar * dy, scalar * dz, true
}

func (f *lennardJones) AoSFunctor(p, q *particle.Particle, newton3 bool) {
	dx, dy, dz := p.Pos[0]-q.Pos[0], p.Pos[1]-q.Pos[1], p.Pos[2]-q.Pos[2]
	fx, fy, fz, ok := f.force(dx, dy, dz)
	if !ok {
		return
	}
	p.Force[0] += fx
	p.Force[1] += fy
	p.Force[2] += fz
	if newton3 {
		q.Force[0] -= fx
		q.Force[1] -= fy
		q.Force[2] -= fz
	}
}

func (f *lennardJones) SoAFunctorSingle(c *cell.SoA, newton3 bool) {
	n := c.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			f.soaPair(c, i, c, j, newton3)
		}
	}
}

func (f *lennardJones) SoAFunctorPair(a, b *cell.SoA, newton3 bool) {
	for i := 0; i < a.Len(); i++ {
		for j := 0; j < b.Len(); j++ {
			f.soaPair(a, i, b, j, newton3)
		}
	}
}

func (f *lennardJones) SoAFunctorVerlet(c *cell.SoA, neighbors [][]int, iFrom, iTo int, newton3 bool) {
	for i := iFrom; i < iTo; i++ {
		for _, j := range neighbors[i] {
			f.soaPair(c, i, c, j, newton3)
		}
	}
}

func (f *lennardJones) soaPair(a *cell.SoA, i int, b *cell.SoA, j int, newton3 bool) {
	dx, dy, dz := a.X[i]-b.X[j], a.Y[i]-b.Y[j], a.Z[i]-b.Z[j]
	fx, fy, fz, ok := f.force(dx, dy, dz)
	if !ok {
		return
	}
	a.FX[i] += fx
	a.FY[i] += fy
	a.FZ[i] += fz
	if newton3 {
		b.FX[j] -= fx
		b.FY[j] -= fy
		b.FZ[j] -= fz
	}
}

func (f *lennardJones) SoALoader() []string    { return nil }
func (f *lennardJones) SoAExtractor() []string { return nil }

func (f *lennardJones) AllowsNewton3() bool    { return true }
func (f *lennardJones) AllowsNonNewton3() bool { return true }
func (f *lennardJones) IsRelevantForTuning() bool { return true }

func (f *lennardJones) ProcessCluster(c *cell.SoA, newton3 bool)          { f.SoAFunctorSingle(c, newton3) }
func (f *lennardJones) ProcessClusterPair(a, b *cell.SoA, newton3 bool)   { f.SoAFunctorPair(a, b, newton3) }
func (f *lennardJones) ProcessCell(c *cell.SoA, newton3 bool)             { f.SoAFunctorSingle(c, newton3) }
