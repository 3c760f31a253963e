package mpi

// Degenerate is the non-MPI Communicator: rank 0 of size 1, exactly as
// spec'd for a non-MPI build. Bcast is a no-op (there is no other rank to
// copy to or from), AllReduceMinLoc returns value unchanged with owner 0,
// AllGather returns a single-element slice, and Split always returns the
// same Degenerate instance since there is nothing to partition.
type Degenerate struct{}

// NewDegenerate creates the single-rank fallback communicator.
func NewDegenerate() Degenerate { return Degenerate{} }

func (Degenerate) Rank() int { return 0 }
func (Degenerate) Size() int { return 1 }

func (Degenerate) Bcast(buf []byte, root int) {}

func (Degenerate) AllReduceMinLoc(value float64) (float64, int) { return value, 0 }

func (Degenerate) AllGather(value float64) []float64 { return []float64{value} }

func (d Degenerate) Split(color, key int) Communicator { return d }
