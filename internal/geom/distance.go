package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// Distance is the Euclidean distance between two planar points.
func Distance(a, b orb.Point) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	return math.Sqrt(dx*dx + dy*dy)
}

// PointToSegmentDistance is the minimum distance from p to the segment a-b.
func PointToSegmentDistance(p, a, b orb.Point) float64 {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	lenSq := dx*dx + dy*dy
	if lenSq < 1e-12 {
		return Distance(p, a)
	}
	t := ((p[0]-a[0])*dx + (p[1]-a[1])*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := orb.Point{a[0] + t*dx, a[1] + t*dy}
	return Distance(p, proj)
}

// PointToPolylineDistance is the minimum perpendicular distance from p
// to any segment of line.
func PointToPolylineDistance(p orb.Point, line orb.LineString) float64 {
	if len(line) == 0 {
		return math.Inf(1)
	}
	if len(line) == 1 {
		return Distance(p, line[0])
	}
	best := math.Inf(1)
	for i := 0; i < len(line)-1; i++ {
		d := PointToSegmentDistance(p, line[i], line[i+1])
		if d < best {
			best = d
		}
	}
	return best
}

// PointToRingDistance is the minimum distance from p to any edge of a ring.
func PointToRingDistance(p orb.Point, r orb.Ring) float64 {
	return PointToPolylineDistance(p, orb.LineString(r))
}

// MinPolygonDistance approximates the distance between two polygons by
// their bbox-centroid distance. spec.md §9 explicitly sanctions this
// as a known approximation in place of a true minimum-distance
// computation between boundaries.
func MinPolygonDistance(a, b orb.Polygon) float64 {
	ca := BoundCentre(PolygonBbox(a))
	cb := BoundCentre(PolygonBbox(b))
	return Distance(ca, cb)
}

// EdgeNormalOutward returns the outward-pointing unit normal of edge
// a->b, assuming the ring is wound CCW (so the outward normal is a
// clockwise rotation of the edge direction).
func EdgeNormalOutward(a, b orb.Point) orb.Point {
	dx := b[0] - a[0]
	dy := b[1] - a[1]
	length := math.Sqrt(dx*dx + dy*dy)
	if length < 1e-12 {
		return orb.Point{0, 0}
	}
	// rotate direction (dx,dy) by -90deg: (dy, -dx)
	return orb.Point{dy / length, -dx / length}
}

// DotPoint is the 2D dot product.
func DotPoint(a, b orb.Point) float64 {
	return a[0]*b[0] + a[1]*b[1]
}
