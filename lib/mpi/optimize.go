package mpi

import (
	"time"

	"github.com/mansfield-lab/autopas/lib/selector"
)

// Optimize implements the two-step configuration optimise: every rank
// contributes its local best (config, time); an all-reduce picks the
// global minimum time (ties broken by lowest rank, per AllReduceMinLoc's
// contract), then the winning rank's serialised configuration is
// broadcast to every other rank.
func Optimize(comm Communicator, localBest selector.Configuration, localTime time.Duration) selector.Configuration {
	_, owner := comm.AllReduceMinLoc(float64(localTime))

	record := localBest.Serialize()
	buf := make([]byte, selector.RecordSize)
	if comm.Rank() == owner {
		copy(buf, record[:])
	}
	comm.Bcast(buf, owner)

	var out [selector.RecordSize]byte
	copy(out[:], buf)
	return selector.DeserializeConfiguration(out)
}
