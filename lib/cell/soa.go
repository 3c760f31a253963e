package cell

// SoA is a cell's columnar mirror of its AoS particle data, keyed by
// attribute name. This generalizes guppy's `particles.Particles` (a
// map[string]Field over a whole snapshot) down to a single cell's worth of
// position/velocity/force plus whatever attributes the functor's SoALoader
// chooses to extract; the Field interface's Len/Data/Transfer trio is
// replaced here by fixed-width float64 columns since a SoA mirror never
// needs Particles' cross-file heterogeneous-type transfer machinery.
type SoA struct {
	// Owner indices: OwnerIdx[k] is the index into the source cell's AoS
	// slice that column entry k mirrors, so Extract can write results back
	// to the right particle even after Compact renumbers survivors.
	OwnerIdx []int

	X, Y, Z    []float64
	VX, VY, VZ []float64
	FX, FY, FZ []float64

	// Extra holds functor-declared scalar attributes (e.g. "epsilon",
	// "sigma") beyond the fixed nine SoA columns above.
	Extra map[string][]float64
}

// NewSoA allocates a SoA mirror with capacity for n particles and the
// given extra attribute names.
func NewSoA(n int, extraNames []string) *SoA {
	s := &SoA{
		OwnerIdx: make([]int, 0, n),
		X:        make([]float64, 0, n),
		Y:        make([]float64, 0, n),
		Z:        make([]float64, 0, n),
		VX:       make([]float64, 0, n),
		VY:       make([]float64, 0, n),
		VZ:       make([]float64, 0, n),
		FX:       make([]float64, 0, n),
		FY:       make([]float64, 0, n),
		FZ:       make([]float64, 0, n),
	}
	if len(extraNames) > 0 {
		s.Extra = make(map[string][]float64, len(extraNames))
		for _, name := range extraNames {
			s.Extra[name] = make([]float64, 0, n)
		}
	}
	return s
}

// Len returns the number of mirrored particles.
func (s *SoA) Len() int { return len(s.OwnerIdx) }

// Load populates a fresh SoA mirror from c's non-dummy particles, using
// extraNames to pick which functor attributes get their own column. This
// is the SoALoader half of the functor's data-layout adapter contract.
func Load(c *Cell, extraNames []string) *SoA {
	s := NewSoA(c.Len(), extraNames)
	for i, p := range c.particles {
		if p.IsDummy() {
			continue
		}
		s.OwnerIdx = append(s.OwnerIdx, i)
		s.X = append(s.X, p.Pos[0])
		s.Y = append(s.Y, p.Pos[1])
		s.Z = append(s.Z, p.Pos[2])
		s.VX = append(s.VX, p.Vel[0])
		s.VY = append(s.VY, p.Vel[1])
		s.VZ = append(s.VZ, p.Vel[2])
		s.FX = append(s.FX, p.Force[0])
		s.FY = append(s.FY, p.Force[1])
		s.FZ = append(s.FZ, p.Force[2])
		for _, name := range extraNames {
			v, _ := p.Attrs.Get(name)
			s.Extra[name] = append(s.Extra[name], v)
		}
	}
	c.SetSoA(s)
	return s
}

// Extract drains a SoA mirror's force column (the only column a functor is
// permitted to mutate) back into the owning cell's AoS particles. This is
// the SoAExtractor half of the contract; it is the only direction data
// flows back out of a SoA buffer, matching "AoS and SoA are kept
// consistent only between an explicit load and extract".
func Extract(c *Cell, s *SoA) {
	for k, idx := range s.OwnerIdx {
		p := c.particles[idx]
		p.Force = [3]float64{s.FX[k], s.FY[k], s.FZ[k]}
	}
}

// AttributeNames returns the names of s's extra attribute columns, sorted
// is not guaranteed; callers that need determinism should sort themselves.
func (s *SoA) AttributeNames() []string {
	names := make([]string, 0, len(s.Extra))
	for name := range s.Extra {
		names = append(names, name)
	}
	return names
}
