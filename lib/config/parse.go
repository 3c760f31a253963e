package config

import (
	"fmt"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/mansfield-lab/autopas/lib/container"
	autopaserr "github.com/mansfield-lab/autopas/lib/error"
	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/selector"
	"github.com/mansfield-lab/autopas/lib/traversal"
)

// RawArgs stores the unprocessed values a caller assigned to each
// configuration field, mirroring guppy's RawArgs/Args split: string-typed
// option lists here, resolved to the real enums by Process only after
// ParseConfigFile and Overwrite have both had a chance to touch them.
type RawArgs struct {
	Containers     []string
	Traversals     []string
	DataLayouts    []string
	Newton3Options []string
	LoadEstimators []string

	CellSizeFactors    []float64
	CellSizeInterval   bool
	CellSizeIntervalLo float64
	CellSizeIntervalHi float64

	Cutoff                 float64
	VerletSkin             float64
	VerletRebuildFrequency int
	VerletClusterSize      int

	NumSamples       int
	TuningInterval   int
	TuningStrategy   string
	SelectorStrategy string

	BoxMin, BoxMax geom.Vec3
}

// gcfgFile is the .cfg section/key layout gcfg parses a configuration file
// into, before it is folded into a RawArgs.
type gcfgFile struct {
	AutoPas struct {
		Container      []string
		Traversal      []string
		DataLayout     []string
		Newton3        []string
		LoadEstimator  []string
		CellSizeFactor []float64

		Cutoff                 float64
		VerletSkin             float64
		VerletRebuildFrequency int
		VerletClusterSize      int

		NumSamples       int
		TuningInterval   int
		TuningStrategy   string
		SelectorStrategy string
	}
	Box struct {
		// Min and Max are comma-separated "x,y,z" triples: gcfg resolves
		// unknown struct field types by string value only, so the box
		// corners are parsed by hand in ParseConfigFile rather than taught
		// to gcfg as a new scalar type.
		Min string
		Max string
	}
}

// ParseConfigFile parses a gcfg-format configuration file into a RawArgs.
func ParseConfigFile(fileName string) (*RawArgs, error) {
	var file gcfgFile
	if err := gcfg.ReadFileInto(&file, fileName); err != nil {
		return nil, autopaserr.Newf("config: reading %s: %v", fileName, err)
	}

	boxMin, err := parseVec3(file.Box.Min)
	if err != nil {
		return nil, err
	}
	boxMax, err := parseVec3(file.Box.Max)
	if err != nil {
		return nil, err
	}

	raw := &RawArgs{
		Containers:             file.AutoPas.Container,
		Traversals:             file.AutoPas.Traversal,
		DataLayouts:            file.AutoPas.DataLayout,
		Newton3Options:         file.AutoPas.Newton3,
		LoadEstimators:         file.AutoPas.LoadEstimator,
		CellSizeFactors:        file.AutoPas.CellSizeFactor,
		Cutoff:                 file.AutoPas.Cutoff,
		VerletSkin:             file.AutoPas.VerletSkin,
		VerletRebuildFrequency: file.AutoPas.VerletRebuildFrequency,
		VerletClusterSize:      file.AutoPas.VerletClusterSize,
		NumSamples:             file.AutoPas.NumSamples,
		TuningInterval:         file.AutoPas.TuningInterval,
		TuningStrategy:         file.AutoPas.TuningStrategy,
		SelectorStrategy:       file.AutoPas.SelectorStrategy,
		BoxMin:                 boxMin,
		BoxMax:                 boxMax,
	}
	return raw, nil
}

func parseVec3(s string) (geom.Vec3, error) {
	if s == "" {
		return geom.Vec3{}, nil
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geom.Vec3{}, autopaserr.Newf("config: box corner %q is not a comma-separated x,y,z triple", s)
	}
	var v geom.Vec3
	for d, p := range parts {
		var f float64
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%g", &f); err != nil {
			return geom.Vec3{}, autopaserr.Newf("config: box corner %q: %v", s, err)
		}
		v[d] = f
	}
	return v, nil
}

// Overwrite copies every non-zero field of other into raw, letting a
// caller's explicit command-line flags win over whatever a config file
// set, mirroring guppy's RawArgs.Overwrite.
func (raw *RawArgs) Overwrite(other *RawArgs) {
	if len(other.Containers) > 0 {
		raw.Containers = other.Containers
	}
	if len(other.Traversals) > 0 {
		raw.Traversals = other.Traversals
	}
	if len(other.DataLayouts) > 0 {
		raw.DataLayouts = other.DataLayouts
	}
	if len(other.Newton3Options) > 0 {
		raw.Newton3Options = other.Newton3Options
	}
	if len(other.LoadEstimators) > 0 {
		raw.LoadEstimators = other.LoadEstimators
	}
	if len(other.CellSizeFactors) > 0 {
		raw.CellSizeFactors = other.CellSizeFactors
		raw.CellSizeInterval = false
	}
	if other.CellSizeInterval {
		raw.CellSizeInterval = true
		raw.CellSizeIntervalLo = other.CellSizeIntervalLo
		raw.CellSizeIntervalHi = other.CellSizeIntervalHi
	}
	if other.Cutoff != 0 {
		raw.Cutoff = other.Cutoff
	}
	if other.VerletSkin != 0 {
		raw.VerletSkin = other.VerletSkin
	}
	if other.VerletRebuildFrequency != 0 {
		raw.VerletRebuildFrequency = other.VerletRebuildFrequency
	}
	if other.VerletClusterSize != 0 {
		raw.VerletClusterSize = other.VerletClusterSize
	}
	if other.NumSamples != 0 {
		raw.NumSamples = other.NumSamples
	}
	if other.TuningInterval != 0 {
		raw.TuningInterval = other.TuningInterval
	}
	if other.TuningStrategy != "" {
		raw.TuningStrategy = other.TuningStrategy
	}
	if other.SelectorStrategy != "" {
		raw.SelectorStrategy = other.SelectorStrategy
	}
	if other.BoxMin != (geom.Vec3{}) || other.BoxMax != (geom.Vec3{}) {
		raw.BoxMin, raw.BoxMax = other.BoxMin, other.BoxMax
	}
}

func parseContainers(names []string) ([]container.Option, error) {
	out := make([]container.Option, 0, len(names))
	for _, n := range names {
		switch strings.ToLower(n) {
		case "directsum":
			out = append(out, container.DirectSum)
		case "linkedcells":
			out = append(out, container.LinkedCells)
		case "verletlists":
			out = append(out, container.VerletLists)
		case "verletlistscells":
			out = append(out, container.VerletListsCells)
		case "verletclusterlists":
			out = append(out, container.VerletClusterLists)
		case "octree":
			out = append(out, container.Octree)
		default:
			return nil, autopaserr.Newf("config: unknown container option %q", n)
		}
	}
	return out, nil
}

func parseTraversals(names []string) ([]traversal.Option, error) {
	out := make([]traversal.Option, 0, len(names))
	for _, n := range names {
		switch strings.ToLower(n) {
		case "ds_sequential":
			out = append(out, traversal.DSSequential)
		case "c01":
			out = append(out, traversal.C01)
		case "c08":
			out = append(out, traversal.C08)
		case "c18":
			out = append(out, traversal.C18)
		case "sliced":
			out = append(out, traversal.Sliced)
		case "sliced_c02":
			out = append(out, traversal.SlicedC02)
		case "balanced_sliced":
			out = append(out, traversal.BalancedSliced)
		case "vlc_c01":
			out = append(out, traversal.VLCC01)
		case "vlc_sliced":
			out = append(out, traversal.VLCSliced)
		case "vlp_c01":
			out = append(out, traversal.VLPC01)
		case "vcl_c01":
			out = append(out, traversal.VCLC01)
		case "vcl_sliced":
			out = append(out, traversal.VCLSliced)
		case "ot_c01":
			out = append(out, traversal.OTC01)
		default:
			return nil, autopaserr.Newf("config: unknown traversal option %q", n)
		}
	}
	return out, nil
}

func parseDataLayouts(names []string) ([]traversal.DataLayout, error) {
	out := make([]traversal.DataLayout, 0, len(names))
	for _, n := range names {
		switch strings.ToLower(n) {
		case "aos":
			out = append(out, traversal.AoS)
		case "soa":
			out = append(out, traversal.SoA)
		default:
			return nil, autopaserr.Newf("config: unknown data layout option %q", n)
		}
	}
	return out, nil
}

func parseNewton3Options(names []string) ([]traversal.Newton3Option, error) {
	out := make([]traversal.Newton3Option, 0, len(names))
	for _, n := range names {
		switch strings.ToLower(n) {
		case "disabled":
			out = append(out, traversal.Newton3Disabled)
		case "enabled":
			out = append(out, traversal.Newton3Enabled)
		default:
			return nil, autopaserr.Newf("config: unknown newton3 option %q", n)
		}
	}
	return out, nil
}

func parseLoadEstimators(names []string) ([]traversal.LoadEstimator, error) {
	out := make([]traversal.LoadEstimator, 0, len(names))
	for _, n := range names {
		switch strings.ToLower(n) {
		case "none":
			out = append(out, traversal.NoLoadEstimator)
		case "squaredparticlespercell":
			out = append(out, traversal.SquaredParticlesPerCellEstimator)
		case "neighborlistlength":
			out = append(out, traversal.NeighborListLengthEstimator)
		default:
			return nil, autopaserr.Newf("config: unknown load estimator option %q", n)
		}
	}
	if len(out) == 0 {
		out = append(out, traversal.NoLoadEstimator)
	}
	return out, nil
}

func parseStrategy(name string) (selector.Strategy, error) {
	switch strings.ToLower(name) {
	case "", "fastestabs":
		return selector.FastestAbs, nil
	case "fastestmean":
		return selector.FastestMean, nil
	case "fastestmedian":
		return selector.FastestMedian, nil
	default:
		return 0, autopaserr.Newf("config: unknown strategy %q", name)
	}
}
