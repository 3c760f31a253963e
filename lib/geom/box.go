/*Package geom contains the small vector and box geometry AutoPas' containers
and traversals are built on: the owned/halo box pair, interaction length,
and the boundary-intersection tests grounded on guppy's own
`go/sim_stats.go` (`Bounds`, `Intersect`, `BallToBounds`), generalized from
guppy's periodic-box halo test to AutoPas' non-periodic owned/halo model.
*/
package geom

import "math"

// Vec3 is a point or vector in R^3.
type Vec3 [3]float64

// Add returns v + w.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v - w.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// Dot returns the dot product of v and w.
func (v Vec3) Dot(w Vec3) float64 {
	return v[0]*w[0] + v[1]*w[1] + v[2]*w[2]
}

// DistSq returns the squared centre-to-centre distance between v and w.
func (v Vec3) DistSq(w Vec3) float64 {
	d := v.Sub(w)
	return d.Dot(d)
}

// Dist returns the centre-to-centre distance between v and w.
func (v Vec3) Dist(w Vec3) float64 {
	return math.Sqrt(v.DistSq(w))
}

// Box is an axis-aligned box, [Min, Max).
type Box struct {
	Min, Max Vec3
}

// Contains reports whether p lies in [b.Min, b.Max) in every dimension.
func (b Box) Contains(p Vec3) bool {
	for d := 0; d < 3; d++ {
		if p[d] < b.Min[d] || p[d] >= b.Max[d] {
			return false
		}
	}
	return true
}

// Edge returns the box's extent in each dimension.
func (b Box) Edge() Vec3 {
	return b.Max.Sub(b.Min)
}

// GrowBy returns b expanded outward by r in every dimension, the way an
// owned box is grown by the interaction length to produce a halo box.
func (b Box) GrowBy(r float64) Box {
	rv := Vec3{r, r, r}
	return Box{Min: b.Min.Sub(rv), Max: b.Max.Add(rv)}
}

// Intersects reports whether b and other share any volume, following the
// same one-way-interval-overlap decomposition as guppy's Bounds.Intersect,
// but without guppy's periodic wraparound (AutoPas containers own a single
// non-periodic sub-domain per node, per the Non-goals of the engine's
// scope).
func (b Box) Intersects(other Box) bool {
	for d := 0; d < 3; d++ {
		if b.Max[d] <= other.Min[d] || other.Max[d] <= b.Min[d] {
			return false
		}
	}
	return true
}

// ClampPoint clamps p into b component-wise.
func ClampPoint(p, min, max Vec3) Vec3 {
	out := p
	for d := 0; d < 3; d++ {
		if out[d] < min[d] {
			out[d] = min[d]
		}
		if out[d] > max[d] {
			out[d] = max[d]
		}
	}
	return out
}

// ClampBox clamps the region [regionMin, regionMax] so that it lies inside
// bound; this is how region iterators clamp a caller-supplied region to the
// halo box per the container contract.
func ClampBox(regionMin, regionMax Vec3, bound Box) (Vec3, Vec3) {
	return ClampPoint(regionMin, bound.Min, bound.Max),
		ClampPoint(regionMax, bound.Min, bound.Max)
}

// CellsAlongDim returns how many grid cells of the given edge length fit
// along span, clamped to at least one cell per the linked-cells geometry
// rule.
func CellsAlongDim(span, cellEdge float64) int {
	n := int(math.Floor(span / cellEdge))
	if n < 1 {
		n = 1
	}
	return n
}
