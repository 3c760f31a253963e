package selector

import (
	"math"
	"time"
)

// State names one node of the tuning state machine.
type State int

const (
	Idle State = iota
	TuningEnumerate
	TuningSampling
	Committed
)

func (s State) String() string {
	switch s {
	case TuningEnumerate:
		return "tuning(enumerate)"
	case TuningSampling:
		return "tuning(sampling)"
	case Committed:
		return "committed"
	default:
		return "idle"
	}
}

// infiniteMeasurement marks a configuration that failed or became
// inapplicable during sampling. commit skips every configuration carrying
// it, so such a configuration is never chosen.
const infiniteMeasurement = time.Duration(math.MaxInt64)

// Tuner drives the idle -> tuning(enumerate) -> tuning(sampling) ->
// committed state machine over a fixed search space. It does not run
// samples itself: the caller constructs the container/traversal/functor
// named by NextConfiguration, measures its own wall clock, and reports the
// result back with RecordSample or RecordFailure.
type Tuner struct {
	space          []Configuration
	strategy       Strategy
	numSamples     int
	tuningInterval int

	state State
	step  int

	queue   []Configuration
	results map[Configuration]time.Duration
	samples []time.Duration

	committed     Configuration
	haveCommitted bool
}

// NewTuner creates a Tuner over the given search space. numSamples is the
// number of wall-clock samples collected per configuration before it is
// reduced via strategy (spec default: 3). tuningInterval is the period of
// automatic re-tuning: a tuning phase starts on every iteration whose
// index (counting every iteration, tuning ones included) is a multiple of
// tuningInterval.
func NewTuner(space []Configuration, strategy Strategy, numSamples, tuningInterval int) *Tuner {
	if numSamples < 1 {
		numSamples = 1
	}
	return &Tuner{
		space:          append([]Configuration(nil), space...),
		strategy:       strategy,
		numSamples:     numSamples,
		tuningInterval: tuningInterval,
		state:          Idle,
		results:        make(map[Configuration]time.Duration),
	}
}

// State reports the tuner's current state-machine node.
func (t *Tuner) State() State { return t.state }

// IsTuningIteration answers the tuner's own question at the start of the
// current iteration: true every tuningInterval iterations, or while a
// tuning phase already in progress still has configurations queued.
func (t *Tuner) IsTuningIteration() bool {
	if t.state == TuningEnumerate || t.state == TuningSampling {
		return true
	}
	return t.tuningInterval > 0 && t.step%t.tuningInterval == 0
}

// NextConfiguration returns the configuration the caller must run this
// iteration: the next one queued for sampling during a tuning phase, or
// the last committed configuration otherwise. Advances the iteration
// counter as a side effect, so it must be called exactly once per
// iteration.
func (t *Tuner) NextConfiguration() Configuration {
	tuning := t.IsTuningIteration()
	t.step++

	if !tuning {
		return t.committed
	}
	switch t.state {
	case Idle, Committed:
		t.beginEnumerate()
		fallthrough
	case TuningEnumerate:
		t.beginSampling()
	}
	return t.queue[0]
}

func (t *Tuner) beginEnumerate() {
	t.queue = append([]Configuration(nil), t.space...)
	t.results = make(map[Configuration]time.Duration, len(t.space))
	t.state = TuningEnumerate
}

func (t *Tuner) beginSampling() {
	t.state = TuningSampling
	t.samples = t.samples[:0]
}

// RecordSample reports one wall-clock measurement for the configuration
// last returned by NextConfiguration. Once numSamples measurements have
// accumulated the tuner reduces them via its strategy and moves on to the
// next queued configuration, committing a winner once the queue drains.
func (t *Tuner) RecordSample(d time.Duration) {
	t.samples = append(t.samples, d)
	if len(t.samples) < t.numSamples {
		return
	}
	t.results[t.queue[0]] = t.strategy.Reduce(t.samples)
	t.advance()
}

// RecordFailure marks the configuration last returned by NextConfiguration
// as failed or inapplicable (e.g. a traversal that stopped being
// applicable because the box shrank): it receives an infinite measurement
// and is short-circuited out of sampling immediately, without waiting for
// the remaining numSamples repeats.
func (t *Tuner) RecordFailure() {
	t.results[t.queue[0]] = infiniteMeasurement
	t.advance()
}

func (t *Tuner) advance() {
	t.queue = t.queue[1:]
	t.samples = t.samples[:0]
	if len(t.queue) == 0 {
		t.commit()
	}
}

func (t *Tuner) commit() {
	best := infiniteMeasurement
	var winner Configuration
	found := false
	for cfg, d := range t.results {
		if d == infiniteMeasurement {
			continue
		}
		if !found || d < best {
			best, winner, found = d, cfg, true
		}
	}
	if found {
		t.committed = winner
		t.haveCommitted = true
	}
	t.state = Committed
}

// Committed returns the most recently committed configuration and whether
// any tuning phase has committed one (a phase in which every configuration
// failed commits nothing).
func (t *Tuner) Committed() (Configuration, bool) { return t.committed, t.haveCommitted }

// Reset aborts whatever tuning phase is in progress and falls back to
// idle, honouring the requirement that the tuner be restartable after an
// exception thrown mid-sampling. The last committed configuration, if
// any, is preserved.
func (t *Tuner) Reset() {
	t.state = Idle
	t.queue = nil
	t.samples = nil
	t.results = make(map[Configuration]time.Duration)
}
