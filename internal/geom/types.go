// Package geom is the planar polygon kernel (spec component C1):
// area, bbox, centroid, point-in-polygon, ring normalization, boolean
// ops, and the axis-aligned offset primitive. Everything above this
// package works in orb's Point/Ring/Polygon/MultiPolygon shapes so the
// host boundary can marshal straight to/from GeoJSON.
package geom

import "github.com/paulmach/orb"

// Minimum polygon area (m²) kept after a boolean operation; anything
// smaller is considered a sliver and dropped.
const MinSliverAreaM2 = 2.0

// Tolerance (m²) used when testing building-envelope and
// building-building overlap.
const OverlapToleranceM2 = 0.5

// SqMToSqFt converts planar square metres to square feet.
const SqMToSqFt = 10.7639

// FeetToMetres converts a distance in feet to metres.
const FeetToMetres = 0.3048

// NamedRoad is a road centreline with an optional display name, as
// GeoJSON LineString features commonly carry one in properties.name.
type NamedRoad struct {
	Name string
	Line orb.LineString
}

// Bbox returns the axis-aligned bounding box of a ring.
func Bbox(r orb.Ring) orb.Bound {
	if len(r) == 0 {
		return orb.Bound{}
	}
	b := orb.Bound{Min: r[0], Max: r[0]}
	for _, p := range r[1:] {
		if p[0] < b.Min[0] {
			b.Min[0] = p[0]
		}
		if p[1] < b.Min[1] {
			b.Min[1] = p[1]
		}
		if p[0] > b.Max[0] {
			b.Max[0] = p[0]
		}
		if p[1] > b.Max[1] {
			b.Max[1] = p[1]
		}
	}
	return b
}

// PolygonBbox returns the bbox across outer + holes of a polygon.
func PolygonBbox(p orb.Polygon) orb.Bound {
	if len(p) == 0 {
		return orb.Bound{}
	}
	b := Bbox(p[0])
	for _, ring := range p[1:] {
		b = UnionBound(b, Bbox(ring))
	}
	return b
}

// MultiBbox returns the bbox across every member of a multipolygon.
func MultiBbox(mp orb.MultiPolygon) orb.Bound {
	var b orb.Bound
	first := true
	for _, p := range mp {
		pb := PolygonBbox(p)
		if first {
			b = pb
			first = false
			continue
		}
		b = UnionBound(b, pb)
	}
	return b
}

// UnionBound returns the smallest bound containing both inputs.
func UnionBound(a, b orb.Bound) orb.Bound {
	return orb.Bound{
		Min: orb.Point{minF(a.Min[0], b.Min[0]), minF(a.Min[1], b.Min[1])},
		Max: orb.Point{maxF(a.Max[0], b.Max[0]), maxF(a.Max[1], b.Max[1])},
	}
}

// BoundCentre returns the centre point of a bound.
func BoundCentre(b orb.Bound) orb.Point {
	return orb.Point{(b.Min[0] + b.Max[0]) / 2, (b.Min[1] + b.Max[1]) / 2}
}

// BoundWidth and BoundHeight return the x/y extents of a bound.
func BoundWidth(b orb.Bound) float64  { return b.Max[0] - b.Min[0] }
func BoundHeight(b orb.Bound) float64 { return b.Max[1] - b.Min[1] }

// OffsetAxisAligned expands (delta > 0) or shrinks (delta < 0) an
// axis-aligned rectangle by delta on every side. This is the v1
// contract from spec.md §4.1: exact only for axis-aligned rectangles;
// general polygon offset goes through the half-plane intersection in
// package setback, not through this primitive.
func OffsetAxisAligned(b orb.Bound, delta float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{b.Min[0] - delta, b.Min[1] - delta},
		Max: orb.Point{b.Max[0] + delta, b.Max[1] + delta},
	}
}

// BoundToPolygon turns a bound into a closed CCW 4-point ring polygon.
func BoundToPolygon(b orb.Bound) orb.Polygon {
	ring := orb.Ring{
		{b.Min[0], b.Min[1]},
		{b.Max[0], b.Min[1]},
		{b.Max[0], b.Max[1]},
		{b.Min[0], b.Max[1]},
		{b.Min[0], b.Min[1]},
	}
	return orb.Polygon{ring}
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
