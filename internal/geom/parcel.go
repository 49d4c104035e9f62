package geom

import "github.com/paulmach/orb"

// ParcelMetrics is the pure C2 computation: area (sqft), perimeter (m)
// and bbox from a parcel polygon.
type ParcelMetrics struct {
	AreaSqFt  float64
	AreaM2    float64
	Perimeter float64
	Bounds    orb.Bound
}

// ComputeParcelMetrics implements spec.md §4.2.
func ComputeParcelMetrics(p orb.Polygon) ParcelMetrics {
	if len(p) == 0 {
		return ParcelMetrics{}
	}
	areaM2 := PolygonArea(p)
	return ParcelMetrics{
		AreaSqFt:  areaM2 * SqMToSqFt,
		AreaM2:    areaM2,
		Perimeter: Perimeter(p[0]),
		Bounds:    PolygonBbox(p),
	}
}

// LineIntersection finds the intersection of infinite lines through
// (p1,p2) and (p3,p4). ok is false when the lines are parallel
// (|denominator| < 1e-12), matching spec.md §4.3 step 3's fallback
// condition (caller falls back to the midpoint of the two anchors).
func LineIntersection(p1, p2, p3, p4 orb.Point) (orb.Point, bool) {
	x1, y1 := p1[0], p1[1]
	x2, y2 := p2[0], p2[1]
	x3, y3 := p3[0], p3[1]
	x4, y4 := p4[0], p4[1]

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	if denom > -1e-12 && denom < 1e-12 {
		return orb.Point{}, false
	}

	a := x1*y2 - y1*x2
	b := x3*y4 - y3*x4
	px := (a*(x3-x4) - (x1-x2)*b) / denom
	py := (a*(y3-y4) - (y1-y2)*b) / denom
	return orb.Point{px, py}, true
}

// Midpoint returns the midpoint of a and b.
func Midpoint(a, b orb.Point) orb.Point {
	return orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}
