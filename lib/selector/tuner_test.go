package selector

import (
	"testing"
	"time"

	"github.com/mansfield-lab/autopas/lib/container"
	"github.com/mansfield-lab/autopas/lib/traversal"
)

func twoConfigSpace() []Configuration {
	return []Configuration{
		{Container: container.DirectSum, Traversal: traversal.DSSequential, DataLayout: traversal.AoS, CellSizeFactor: 1.0},
		{Container: container.LinkedCells, Traversal: traversal.C01, DataLayout: traversal.AoS, CellSizeFactor: 1.0},
	}
}

func TestTunerPicksFastestConfiguration(t *testing.T) {
	space := twoConfigSpace()
	tuner := NewTuner(space, FastestAbs, 2, 4)

	slow := space[0]
	fast := space[1]

	for tuner.State() != Committed {
		cfg := tuner.NextConfiguration()
		var sample time.Duration
		switch cfg {
		case slow:
			sample = 10 * time.Millisecond
		case fast:
			sample = time.Millisecond
		default:
			t.Fatalf("unexpected configuration %v", cfg)
		}
		tuner.RecordSample(sample)
	}

	got, ok := tuner.Committed()
	if !ok {
		t.Fatal("tuner never committed a configuration")
	}
	if got != fast {
		t.Errorf("committed %v, want the faster configuration %v", got, fast)
	}
}

func TestTunerRecordFailureExcludesConfiguration(t *testing.T) {
	space := twoConfigSpace()
	tuner := NewTuner(space, FastestAbs, 1, 4)

	broken := space[0]
	healthy := space[1]

	for tuner.State() != Committed {
		cfg := tuner.NextConfiguration()
		if cfg == broken {
			tuner.RecordFailure()
		} else {
			tuner.RecordSample(time.Millisecond)
		}
	}

	got, ok := tuner.Committed()
	if !ok || got != healthy {
		t.Errorf("committed %v (ok=%v), want the healthy configuration %v", got, ok, healthy)
	}
}

func TestIsTuningIterationRespectsInterval(t *testing.T) {
	space := twoConfigSpace()
	tuner := NewTuner(space, FastestAbs, 1, 3)

	if !tuner.IsTuningIteration() {
		t.Fatal("iteration 0 should be a tuning iteration")
	}
	for tuner.State() != Committed {
		cfg := tuner.NextConfiguration()
		tuner.RecordSample(time.Millisecond)
		_ = cfg
	}
	if tuner.IsTuningIteration() {
		t.Fatal("iteration right after commit should not be a tuning iteration")
	}
}
