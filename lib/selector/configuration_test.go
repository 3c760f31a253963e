package selector

import (
	"testing"

	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/traversal"
)

func TestConfigurationRoundTrip(t *testing.T) {
	cases := []Configuration{
		{Container: container.DirectSum, Traversal: traversal.DSSequential, LoadEstimator: traversal.NoLoadEstimator, DataLayout: traversal.AoS, Newton3: traversal.Newton3Disabled, CellSizeFactor: 1.0},
		{Container: container.LinkedCells, Traversal: traversal.BalancedSliced, LoadEstimator: traversal.SquaredParticlesPerCellEstimator, DataLayout: traversal.SoA, Newton3: traversal.Newton3Enabled, CellSizeFactor: 1.75},
		{Container: container.Octree, Traversal: traversal.OTC01, LoadEstimator: traversal.NoLoadEstimator, DataLayout: traversal.SoA, Newton3: traversal.Newton3Enabled, CellSizeFactor: 2.5},
	}

	for _, want := range cases {
		buf := want.Serialize()
		if len(buf) != RecordSize {
			t.Fatalf("serialized record has length %d, want %d", len(buf), RecordSize)
		}
		got := DeserializeConfiguration(buf)
		if got != want {
			t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
		}
	}
}

func TestEnumerateFiltersIncompatibleTraversals(t *testing.T) {
	space, err := Enumerate(
		[]container.Option{container.DirectSum, container.LinkedCells},
		[]traversal.DataLayout{traversal.AoS, traversal.SoA},
		[]traversal.Newton3Option{traversal.Newton3Disabled, traversal.Newton3Enabled},
		[]traversal.LoadEstimator{traversal.SquaredParticlesPerCellEstimator},
		FiniteSet(1.0),
	)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	for _, cfg := range space {
		if !IsCompatible(cfg.Container, cfg.Traversal) {
			t.Errorf("enumerated incompatible pair %v/%v", cfg.Container, cfg.Traversal)
		}
		if cfg.Traversal != traversal.BalancedSliced && cfg.LoadEstimator != traversal.NoLoadEstimator {
			t.Errorf("non-balanced-sliced traversal %v got load estimator %v", cfg.Traversal, cfg.LoadEstimator)
		}
	}
}

func TestEnumerateEmptySpaceFails(t *testing.T) {
	_, err := Enumerate(nil, []traversal.DataLayout{traversal.AoS}, []traversal.Newton3Option{traversal.Newton3Disabled}, nil, FiniteSet(1.0))
	if err == nil {
		t.Fatal("expected an error for an empty container set")
	}
}

func TestEnumerateIntervalUsesLowerBoundAsDummy(t *testing.T) {
	space, err := Enumerate(
		[]container.Option{container.DirectSum},
		[]traversal.DataLayout{traversal.AoS},
		[]traversal.Newton3Option{traversal.Newton3Disabled},
		nil,
		IntervalSet(0.5, 3.0),
	)
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if len(space) != 1 {
		t.Fatalf("interval set should enumerate to a single dummy value, got %d entries", len(space))
	}
	if space[0].CellSizeFactor != 0.5 {
		t.Errorf("dummy cell-size factor = %g, want the interval's lower bound 0.5", space[0].CellSizeFactor)
	}
}
