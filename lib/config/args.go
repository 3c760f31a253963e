/*Package config implements AutoPas' Configuration surface (spec §6):
RawArgs holds unprocessed, possibly-unset values the way guppy's
lib/parse.go RawArgs does, and Process turns them into an Args, the
concrete option sets, cutoff/skin/sampling/tuning parameters and box that
every other package is parameterized by. Command-line and config-file
parsing are layered the way guppy.go's main() layers ParseCommandLine ->
ParseConfigFile -> Overwrite -> Process; the config file itself is parsed
with gopkg.in/gcfg.v1.
*/
package config

import (
	"github.com/mansfield-lab/autopas/lib/container"
	autopaserr "github.com/mansfield-lab/autopas/lib/error"
	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/selector"
	"github.com/mansfield-lab/autopas/lib/traversal"
)

// Args is the processed Configuration surface: the option sets and scalar
// parameters every layer above lib/config reads from.
type Args struct {
	Containers     []container.Option
	Traversals     []traversal.Option
	DataLayouts    []traversal.DataLayout
	Newton3Options []traversal.Newton3Option
	LoadEstimators []traversal.LoadEstimator
	CellSizeFactor selector.NumberSet

	Cutoff                 float64
	VerletSkin             float64
	VerletRebuildFrequency int
	VerletClusterSize      int

	NumSamples       int
	TuningInterval   int
	TuningStrategy   selector.Strategy
	SelectorStrategy selector.Strategy

	Box geom.Box
}

// Process validates raw and turns it into an Args, per §7's "invalid
// configuration" taxonomy: a region with min > max, or an option set that
// resolves to an empty enumerated search space, fails loudly by returning
// a descriptive error rather than panicking (library code never calls
// os.Exit; only cmd/autopas-bench's main does that).
func (raw *RawArgs) Process() (*Args, error) {
	containers, err := parseContainers(raw.Containers)
	if err != nil {
		return nil, err
	}
	traversals, err := parseTraversals(raw.Traversals)
	if err != nil {
		return nil, err
	}
	layouts, err := parseDataLayouts(raw.DataLayouts)
	if err != nil {
		return nil, err
	}
	newton3s, err := parseNewton3Options(raw.Newton3Options)
	if err != nil {
		return nil, err
	}
	estimators, err := parseLoadEstimators(raw.LoadEstimators)
	if err != nil {
		return nil, err
	}
	csf, err := raw.cellSizeFactorSet()
	if err != nil {
		return nil, err
	}
	tuningStrategy, err := parseStrategy(raw.TuningStrategy)
	if err != nil {
		return nil, err
	}
	selectorStrategy, err := parseStrategy(raw.SelectorStrategy)
	if err != nil {
		return nil, err
	}

	for d := 0; d < 3; d++ {
		if raw.BoxMin[d] > raw.BoxMax[d] {
			return nil, autopaserr.Newf("config: box min %v is greater than box max %v along axis %d", raw.BoxMin, raw.BoxMax, d)
		}
	}

	args := &Args{
		Containers:             containers,
		Traversals:             traversals,
		DataLayouts:            layouts,
		Newton3Options:         newton3s,
		LoadEstimators:         estimators,
		CellSizeFactor:         csf,
		Cutoff:                 raw.Cutoff,
		VerletSkin:             raw.VerletSkin,
		VerletRebuildFrequency: raw.VerletRebuildFrequency,
		VerletClusterSize:      raw.VerletClusterSize,
		NumSamples:             raw.NumSamples,
		TuningInterval:         raw.TuningInterval,
		TuningStrategy:         tuningStrategy,
		SelectorStrategy:       selectorStrategy,
		Box:                    geom.Box{Min: raw.BoxMin, Max: raw.BoxMax},
	}

	// Enumerate purely to catch an empty search space early, per §7: the
	// caller learns about a bad option combination at configuration time
	// rather than on the first tuning iteration.
	if _, err := selector.Enumerate(args.Containers, args.DataLayouts, args.Newton3Options, args.LoadEstimators, args.CellSizeFactor); err != nil {
		return nil, err
	}

	return args, nil
}

func (raw *RawArgs) cellSizeFactorSet() (selector.NumberSet, error) {
	if raw.CellSizeInterval {
		if raw.CellSizeIntervalLo > raw.CellSizeIntervalHi {
			return selector.NumberSet{}, autopaserr.Newf("config: cell-size interval [%g, %g] has lo > hi", raw.CellSizeIntervalLo, raw.CellSizeIntervalHi)
		}
		return selector.IntervalSet(raw.CellSizeIntervalLo, raw.CellSizeIntervalHi), nil
	}
	if len(raw.CellSizeFactors) == 0 {
		return selector.NumberSet{}, autopaserr.Newf("config: no cell-size factors given")
	}
	return selector.FiniteSet(raw.CellSizeFactors...), nil
}
