package container

import (
	"sort"

	autopaserr "github.com/mansfield-lab/autopas/lib/error"
	"github.com/mansfield-lab/autopas/lib/geom"
	"github.com/mansfield-lab/autopas/lib/particle"
)

// Cluster is clusterSize consecutive particles of one tower, sorted along
// z. The final cluster of a tower is padded with dummies so that every
// cluster has exactly clusterSize slots, per the verlet-cluster-lists
// geometry.
type Cluster struct {
	Particles []*particle.Particle
	Neighbors []*Cluster
}

// Tower holds every particle in one xy-column, split into fixed-size
// clusters along z.
type Tower struct {
	X, Y     int // tower grid indices
	Clusters []*Cluster
}

// VerletClusterListsContainer implements the tower/cluster geometry of the
// verlet-cluster-lists design: the xy-plane is divided into towers, each
// tower split into clusterSize-particle clusters along z, with a
// cluster-neighbour list built the same way a Verlet list is (every
// partner within cutoff+skin of any member).
type VerletClusterListsContainer struct {
	box                 geom.Box
	cutoff, skin        float64
	clusterSize         int
	towerEdge           float64
	towerDims           [2]int
	towers              []*Tower
	owned               []*particle.Particle
	halo                []*particle.Particle
	dummyDist           float64
	builtOnce           bool
	rebuildFrequency    int
	step                int
	builtPositions      map[particle.ID]geom.Vec3
}

// NewVerletClusterLists creates a Verlet Cluster Lists container with the
// given cluster size (particles per cluster along z; 4 is the size used by
// the reference SIMD-width-driven implementation this design follows).
func NewVerletClusterLists(box geom.Box, cutoff, skin float64, clusterSize, rebuildFrequency int) *VerletClusterListsContainer {
	return &VerletClusterListsContainer{
		box: box, cutoff: cutoff, skin: skin,
		clusterSize:      clusterSize,
		dummyDist:        cutoff + skin + 1,
		rebuildFrequency: rebuildFrequency,
		builtPositions:   map[particle.ID]geom.Vec3{},
	}
}

func (v *VerletClusterListsContainer) Option() Option            { return VerletClusterLists }
func (v *VerletClusterListsContainer) Box() geom.Box              { return v.box }
func (v *VerletClusterListsContainer) Cutoff() float64            { return v.cutoff }
func (v *VerletClusterListsContainer) Skin() float64              { return v.skin }
func (v *VerletClusterListsContainer) InteractionLength() float64 { return v.cutoff + v.skin }
func (v *VerletClusterListsContainer) Dims() [3]int               { return [3]int{v.towerDims[0], v.towerDims[1], 1} }

func (v *VerletClusterListsContainer) AddParticle(p *particle.Particle) error {
	if !v.box.Contains(p.Pos) {
		return autopaserr.Newf("owned particle %d added at %v is outside the owned box %v", p.ID, p.Pos, v.box)
	}
	p.State = particle.Owned
	v.owned = append(v.owned, p)
	return nil
}

func (v *VerletClusterListsContainer) AddHaloParticle(p *particle.Particle) error {
	hb := haloBox(v.box, v.InteractionLength())
	if !hb.Contains(p.Pos) || v.box.Contains(p.Pos) {
		return autopaserr.Newf("halo particle %d added at %v is not inside the halo shell", p.ID, p.Pos)
	}
	p.State = particle.Halo
	v.halo = append(v.halo, p)
	return nil
}

// UpdateHaloParticle looks up an existing halo particle by id within
// skin/2 of the incoming position and updates it in place, or appends a
// new halo particle if none is found. This resolves the open question
// noted for the early Verlet-cluster container ("updateHaloParticle...
// unimplemented") the way the design note there recommends: a lookup by
// id within a skin/2 region around the incoming position.
func (v *VerletClusterListsContainer) UpdateHaloParticle(p *particle.Particle) {
	half := v.Skin() / 2
	for _, q := range v.halo {
		if q.ID == p.ID && q.Pos.Dist(p.Pos) <= half {
			q.Pos, q.Vel = p.Pos, p.Vel
			return
		}
	}
	p.State = particle.Halo
	v.halo = append(v.halo, p)
}

func (v *VerletClusterListsContainer) UpdateContainer() []*particle.Particle {
	var leaving []*particle.Particle
	kept := v.owned[:0]
	for _, p := range v.owned {
		if v.box.Contains(p.Pos) {
			kept = append(kept, p)
		} else {
			leaving = append(leaving, p)
		}
	}
	v.owned = kept
	v.halo = v.halo[:0]
	v.builtOnce = false
	v.step = 0
	return leaving
}

func (v *VerletClusterListsContainer) DeleteHaloParticles() { v.halo = v.halo[:0] }

func (v *VerletClusterListsContainer) Iterate(behavior IterationBehavior, f func(*particle.Particle)) {
	if behavior&IterOwned != 0 {
		for _, p := range v.owned {
			f(p)
		}
	}
	if behavior&IterHalo != 0 {
		for _, p := range v.halo {
			f(p)
		}
	}
	if behavior&IterDummy != 0 {
		for _, t := range v.towers {
			for _, cl := range t.Clusters {
				for _, p := range cl.Particles {
					if p.IsDummy() {
						f(p)
					}
				}
			}
		}
	}
}

func (v *VerletClusterListsContainer) RegionIterate(min, max geom.Vec3, behavior IterationBehavior, f func(*particle.Particle)) error {
	if min[0] > max[0] || min[1] > max[1] || min[2] > max[2] {
		return autopaserr.Newf("region iterator called with min %v > max %v", min, max)
	}
	hb := haloBox(v.box, v.InteractionLength())
	cmin, cmax := geom.ClampBox(min, max, hb)
	v.Iterate(behavior, func(p *particle.Particle) {
		for d := 0; d < 3; d++ {
			if p.Pos[d] < cmin[d] || p.Pos[d] > cmax[d] {
				return
			}
		}
		f(p)
	})
	return nil
}

func (v *VerletClusterListsContainer) NeedsRebuild() bool {
	if !v.builtOnce {
		return true
	}
	if v.rebuildFrequency > 0 && v.step%v.rebuildFrequency == 0 {
		return true
	}
	half := v.Skin() / 2
	for _, p := range v.owned {
		if built, ok := v.builtPositions[p.ID]; ok && p.Pos.Dist(built) > half {
			return true
		}
	}
	return false
}

// Rebuild re-derives the tower/cluster geometry from scratch: assign every
// owned particle to a tower, sort each tower along z, split into
// clusterSize clusters padding the last with dummies, then build the
// cluster-neighbour lists.
func (v *VerletClusterListsContainer) Rebuild() {
	span := v.box.Edge()
	interactionLen := v.InteractionLength()
	v.towerDims[0] = geom.CellsAlongDim(span[0], interactionLen)
	v.towerDims[1] = geom.CellsAlongDim(span[1], interactionLen)
	v.towerEdge = span[0] / float64(v.towerDims[0])

	towerOf := make(map[[2]int]*Tower)
	get := func(tx, ty int) *Tower {
		key := [2]int{tx, ty}
		t, ok := towerOf[key]
		if !ok {
			t = &Tower{X: tx, Y: ty}
			towerOf[key] = t
		}
		return t
	}

	for _, p := range v.owned {
		tx := int((p.Pos[0] - v.box.Min[0]) / v.towerEdge)
		ty := int((p.Pos[1] - v.box.Min[1]) / v.towerEdge)
		t := get(tx, ty)
		t.Clusters = append(t.Clusters, &Cluster{Particles: []*particle.Particle{p}})
	}

	v.towers = v.towers[:0]
	v.builtPositions = make(map[particle.ID]geom.Vec3, len(v.owned))
	for _, t := range towerOf {
		var members []*particle.Particle
		for _, cl := range t.Clusters {
			members = append(members, cl.Particles...)
		}
		sort.Slice(members, func(i, j int) bool { return members[i].Pos[2] < members[j].Pos[2] })

		clusters := make([]*Cluster, 0, (len(members)+v.clusterSize-1)/v.clusterSize)
		for i := 0; i < len(members); i += v.clusterSize {
			end := i + v.clusterSize
			var slice []*particle.Particle
			if end <= len(members) {
				slice = members[i:end]
			} else {
				slice = append([]*particle.Particle{}, members[i:]...)
				for k := len(slice); k < v.clusterSize; k++ {
					slice = append(slice, v.newDummy(k))
				}
			}
			clusters = append(clusters, &Cluster{Particles: slice})
		}
		t.Clusters = clusters
		v.towers = append(v.towers, t)

		for _, p := range members {
			v.builtPositions[p.ID] = p.Pos
		}
	}

	v.buildClusterNeighbors()
	v.builtOnce = true
	v.step = 0
}

// newDummy places a padding particle at z = k*dummyDist, far enough away
// that it can never interact with a real particle.
func (v *VerletClusterListsContainer) newDummy(k int) *particle.Particle {
	return &particle.Particle{
		Pos:   geom.Vec3{0, 0, float64(k) * v.dummyDist},
		State: particle.Dummy,
	}
}

// buildClusterNeighbors builds, for every cluster, pointers to every other
// cluster containing at least one partner within cutoff+skin of at least
// one of its members, per the Verlet-cluster-lists rebuild algorithm.
func (v *VerletClusterListsContainer) buildClusterNeighbors() {
	interactionLenSq := v.InteractionLength() * v.InteractionLength()
	var all []*Cluster
	for _, t := range v.towers {
		all = append(all, t.Clusters...)
	}
	for _, c := range all {
		c.Neighbors = c.Neighbors[:0]
	}
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if clustersInteract(all[i], all[j], interactionLenSq) {
				all[i].Neighbors = append(all[i].Neighbors, all[j])
				all[j].Neighbors = append(all[j].Neighbors, all[i])
			}
		}
	}
}

func clustersInteract(a, b *Cluster, interactionLenSq float64) bool {
	for _, p := range a.Particles {
		if p.IsDummy() {
			continue
		}
		for _, q := range b.Particles {
			if q.IsDummy() {
				continue
			}
			if p.Pos.DistSq(q.Pos) <= interactionLenSq {
				return true
			}
		}
	}
	return false
}

// ClusterThreadPartition assigns contiguous ranges of clusters to nThreads
// threads so that each thread receives approximately equal aggregate
// neighbour count, per the cluster-thread-partition design.
func (v *VerletClusterListsContainer) ClusterThreadPartition(nThreads int) [][]*Cluster {
	var all []*Cluster
	for _, t := range v.towers {
		all = append(all, t.Clusters...)
	}
	if nThreads < 1 {
		nThreads = 1
	}
	if nThreads > len(all) {
		nThreads = len(all)
	}
	if nThreads == 0 {
		return nil
	}
	loads := make([]float64, len(all))
	for i, c := range all {
		loads[i] = float64(len(c.Neighbors) + 1)
	}
	total := 0.0
	for _, l := range loads {
		total += l
	}
	target := total / float64(nThreads)

	parts := make([][]*Cluster, 0, nThreads)
	start, acc := 0, 0.0
	for i := 0; i < len(all); i++ {
		acc += loads[i]
		remainingThreads := nThreads - len(parts) - 1
		if acc >= target && len(all)-i-1 >= remainingThreads {
			parts = append(parts, all[start:i+1])
			start = i + 1
			acc = 0
		}
	}
	if start < len(all) {
		parts = append(parts, all[start:])
	}
	return parts
}

func (v *VerletClusterListsContainer) IteratePairwise(t Traversal) error {
	if t.ContainerOption() != VerletClusterLists {
		return autopaserr.Newf("traversal is bound to container %v, but this container is %v", t.ContainerOption(), VerletClusterLists)
	}
	if v.NeedsRebuild() {
		v.Rebuild()
	}
	t.InitTraversal()
	t.TraverseParticlePairs()
	t.EndTraversal()
	v.step++
	return nil
}

func (v *VerletClusterListsContainer) RebuildNeighborLists(t Traversal) { v.Rebuild() }

// Towers exposes the tower list for the vcl_* traversal family.
func (v *VerletClusterListsContainer) Towers() []*Tower { return v.towers }
