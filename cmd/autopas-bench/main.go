/*Command autopas-bench is a small synthetic benchmark exercising the
tuning state machine end to end, the way guppy.go's main() gave guppy's
library packages a reachable entry point: it seeds a container with random
particles, asks lib/selector.Tuner for the next configuration to sample,
builds and runs it, and reports back how long the run took, until the
tuner commits to a configuration. When -checkpoint names a file, it then
writes the sampled timings there with lib/checkpoint.
*/
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/mansfield-lab/autopas/lib/checkpoint"
	"github.com/mansfield-lab/autopas/lib/config"
	"github.com/mansfield-lab/autopas/lib/container"
	autopaserr "github.com/mansfield-lab/autopas/lib/error"
	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/mpi"
	"github.com/mansfield-lab/autopas/lib/particle"
	"github.com/mansfield-lab/autopas/lib/selector"
	"github.com/mansfield-lab/autopas/lib/traversal"
)

func main() {
	configFile := flag.String("config", "", "gcfg configuration file (optional)")
	numParticles := flag.Int("particles", 2000, "number of particles to seed the benchmark box with")
	checkpointOut := flag.String("checkpoint", "", "file to write sampled timings to (optional)")
	flag.Parse()

	if err := run(*configFile, *numParticles, *checkpointOut); err != nil {
		log.Fatalf("autopas-bench: %v", err)
	}
}

func run(configFile string, numParticles int, checkpointOut string) error {
	raw := defaultRawArgs()
	if configFile != "" {
		fileRaw, err := config.ParseConfigFile(configFile)
		if err != nil {
			return err
		}
		raw.Overwrite(fileRaw)
	}

	args, err := raw.Process()
	if err != nil {
		return err
	}

	comm := mpi.NewDegenerate()

	space, err := selector.Enumerate(args.Containers, args.DataLayouts, args.Newton3Options, args.LoadEstimators, args.CellSizeFactor)
	if err != nil {
		return err
	}
	log.Printf("search space has %d configurations", len(space))

	tuner := selector.NewTuner(space, args.SelectorStrategy, args.NumSamples, args.TuningInterval)
	fn := newLennardJones(args.Cutoff, 1.0, 1.0)

	particles := seedParticles(args.Box, numParticles, 1)

	var records []checkpoint.Record
	for tuner.State() != selector.Committed {
		cfg := tuner.NextConfiguration()
		d, err := sample(args, cfg, fn, particles)
		if err != nil {
			log.Printf("configuration %s failed: %v", cfg, err)
			tuner.RecordFailure()
			continue
		}
		tuner.RecordSample(d)
		records = append(records, checkpoint.Record{Configuration: cfg, Time: d})
	}

	best, ok := tuner.Committed()
	if !ok {
		autopaserr.Internal("tuner: exhausted the search space without committing")
	}

	globalBest := best
	if comm.Size() > 1 {
		localTime := time.Duration(0)
		for _, r := range records {
			if r.Configuration == best {
				localTime = r.Time
				break
			}
		}
		globalBest = mpi.Optimize(comm, best, localTime)
	}

	fmt.Printf("committed configuration: %s\n", globalBest)

	if checkpointOut != "" {
		f, err := os.Create(checkpointOut)
		if err != nil {
			return autopaserr.Newf("autopas-bench: creating checkpoint file: %v", err)
		}
		defer f.Close()
		if err := checkpoint.Write(f, records); err != nil {
			return err
		}
	}
	return nil
}

func defaultRawArgs() *config.RawArgs {
	return &config.RawArgs{
		Containers:             []string{"directsum", "linkedcells"},
		Traversals:             []string{"ds_sequential", "c01", "c08", "sliced"},
		DataLayouts:            []string{"aos", "soa"},
		Newton3Options:         []string{"enabled", "disabled"},
		LoadEstimators:         []string{"none"},
		CellSizeFactors:        []float64{1.0},
		Cutoff:                 1.5,
		VerletSkin:             0.3,
		VerletRebuildFrequency: 10,
		VerletClusterSize:      4,
		NumSamples:             3,
		TuningInterval:         100,
		TuningStrategy:         "fastestMean",
		SelectorStrategy:       "fastestAbs",
		BoxMin:                 geom.Vec3{0, 0, 0},
		BoxMax:                 geom.Vec3{10, 10, 10},
	}
}

func seedParticles(box geom.Box, n int, seed int64) []*particle.Particle {
	r := rand.New(rand.NewSource(seed))
	out := make([]*particle.Particle, n)
	for i := range out {
		pos := geom.Vec3{
			box.Min[0] + r.Float64()*(box.Max[0]-box.Min[0]),
			box.Min[1] + r.Float64()*(box.Max[1]-box.Min[1]),
			box.Min[2] + r.Float64()*(box.Max[2]-box.Min[2]),
		}
		out[i] = particle.New(particle.ID(i), 0, pos)
	}
	return out
}

// sample builds the container/traversal pair named by cfg, populates it
// with particles, runs one pairwise iteration and returns how long that
// took. Only the container/traversal pairings actually implemented in
// this package's build func are runnable; every other configuration in
// the enumerated search space reports a failure back to the tuner rather
// than being silently skipped, since the tuner only moves past a queued
// configuration once RecordSample or RecordFailure has reported on it.
func sample(args *config.Args, cfg selector.Configuration, fn *lennardJones, particles []*particle.Particle) (time.Duration, error) {
	c, t, err := build(args, cfg, fn)
	if err != nil {
		return 0, err
	}
	for _, p := range particles {
		if err := c.AddParticle(p); err != nil {
			return 0, err
		}
	}

	start := time.Now()
	if err := c.IteratePairwise(t); err != nil {
		return 0, err
	}
	elapsed := time.Since(start)

	c.DeleteHaloParticles()
	for _, p := range particles {
		p.ResetForce()
	}
	return elapsed, nil
}

func build(args *config.Args, cfg selector.Configuration, fn *lennardJones) (container.Container, container.Traversal, error) {
	switch cfg.Container {
	case container.DirectSum:
		c := container.NewDirectSum(args.Box, args.Cutoff, args.VerletSkin)
		t := traversal.NewDSSequential(c, fn, cfg.DataLayout, cfg.Newton3)
		return c, t, nil
	case container.LinkedCells:
		c := container.NewLinkedCells(args.Box, args.Cutoff, args.VerletSkin, cfg.CellSizeFactor)
		switch cfg.Traversal {
		case traversal.C01:
			return c, traversal.NewC01(c, fn, cfg.DataLayout), nil
		case traversal.C08:
			return c, traversal.NewC08(c, fn, cfg.DataLayout, cfg.Newton3), nil
		case traversal.C18:
			return c, traversal.NewC18(c, fn, cfg.DataLayout, cfg.Newton3), nil
		case traversal.Sliced:
			return c, traversal.NewSliced(c, fn, cfg.DataLayout, cfg.Newton3), nil
		case traversal.SlicedC02:
			return c, traversal.NewSlicedC02(c, fn, cfg.DataLayout, cfg.Newton3), nil
		}
	}
	return nil, nil, autopaserr.Newf("autopas-bench: no driver wired for configuration %s", cfg)
}
