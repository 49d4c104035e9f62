package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// SignedArea returns the shoelace-formula signed area of a ring.
// Positive means counter-clockwise winding.
func SignedArea(r orb.Ring) float64 {
	n := len(r)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n-1; i++ {
		a, b := r[i], r[(i+1)%n]
		sum += a[0]*b[1] - b[0]*a[1]
	}
	// ring may or may not repeat the first point as the last; close the loop
	if r[0] != r[n-1] {
		a, b := r[n-1], r[0]
		sum += a[0]*b[1] - b[0]*a[1]
	}
	return sum / 2
}

// Area returns the unsigned area of a ring.
func Area(r orb.Ring) float64 {
	return math.Abs(SignedArea(r))
}

// PolygonArea returns outer ring area minus the area of every hole.
func PolygonArea(p orb.Polygon) float64 {
	if len(p) == 0 {
		return 0
	}
	total := Area(p[0])
	for _, hole := range p[1:] {
		total -= Area(hole)
	}
	if total < 0 {
		return 0
	}
	return total
}

// MultiPolygonArea sums PolygonArea across every member.
func MultiPolygonArea(mp orb.MultiPolygon) float64 {
	total := 0.0
	for _, p := range mp {
		total += PolygonArea(p)
	}
	return total
}

// Perimeter sums the Euclidean length of a ring's edges. Per spec.md
// §4.2, only the outer ring contributes to a parcel's perimeter.
func Perimeter(r orb.Ring) float64 {
	n := len(r)
	if n < 2 {
		return 0
	}
	total := 0.0
	for i := 0; i < n-1; i++ {
		total += Distance(r[i], r[i+1])
	}
	if r[0] != r[n-1] {
		total += Distance(r[n-1], r[0])
	}
	return total
}

// Centroid returns the area-weighted centroid of a ring.
func Centroid(r orb.Ring) orb.Point {
	n := len(r)
	if n < 3 {
		if n == 0 {
			return orb.Point{}
		}
		return r[0]
	}
	cx, cy, area := 0.0, 0.0, 0.0
	for i := 0; i < n-1; i++ {
		a, b := r[i], r[(i+1)%n]
		cross := a[0]*b[1] - b[0]*a[1]
		area += cross
		cx += (a[0] + b[0]) * cross
		cy += (a[1] + b[1]) * cross
	}
	if r[0] != r[n-1] {
		a, b := r[n-1], r[0]
		cross := a[0]*b[1] - b[0]*a[1]
		area += cross
		cx += (a[0] + b[0]) * cross
		cy += (a[1] + b[1]) * cross
	}
	area /= 2
	if math.Abs(area) < 1e-12 {
		return averagePoint(r)
	}
	cx /= 6 * area
	cy /= 6 * area
	return orb.Point{cx, cy}
}

// PolygonCentroid uses the outer ring's centroid (holes are small
// relative to the footprints this engine deals with and centroid is
// only ever used as a rotation pivot or rough label position).
func PolygonCentroid(p orb.Polygon) orb.Point {
	if len(p) == 0 {
		return orb.Point{}
	}
	return Centroid(p[0])
}

func averagePoint(r orb.Ring) orb.Point {
	if len(r) == 0 {
		return orb.Point{}
	}
	sx, sy := 0.0, 0.0
	for _, p := range r {
		sx += p[0]
		sy += p[1]
	}
	n := float64(len(r))
	return orb.Point{sx / n, sy / n}
}

// PointInRing uses ray casting to decide if pt lies inside r (boundary
// points are treated as inside).
func PointInRing(pt orb.Point, r orb.Ring) bool {
	n := len(r)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		xi, yi := r[i][0], r[i][1]
		xj, yj := r[j][0], r[j][1]
		if onSegment(pt, r[i], r[j]) {
			return true
		}
		if (yi > pt[1]) != (yj > pt[1]) {
			xint := (xj-xi)*(pt[1]-yi)/(yj-yi) + xi
			if pt[0] < xint {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func onSegment(p, a, b orb.Point) bool {
	cross := (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
	if math.Abs(cross) > 1e-9 {
		return false
	}
	dot := (p[0]-a[0])*(b[0]-a[0]) + (p[1]-a[1])*(b[1]-a[1])
	if dot < 0 {
		return false
	}
	sqLen := (b[0]-a[0])*(b[0]-a[0]) + (b[1]-a[1])*(b[1]-a[1])
	return dot <= sqLen
}

// PointInPolygon is true inside the outer ring and outside every hole.
func PointInPolygon(pt orb.Point, p orb.Polygon) bool {
	if len(p) == 0 || !PointInRing(pt, p[0]) {
		return false
	}
	for _, hole := range p[1:] {
		if PointInRing(pt, hole) {
			return false
		}
	}
	return true
}

// PolygonContainsPoly is true if every vertex of every ring of inner
// lies inside outer (used by the building clamp's containment test).
func PolygonContainsPoly(outer, inner orb.Polygon) bool {
	for _, ring := range inner {
		for _, pt := range ring {
			if !PointInPolygon(pt, outer) {
				return false
			}
		}
	}
	return true
}

// EnsureCCW reverses a ring if it winds clockwise.
func EnsureCCW(r orb.Ring) orb.Ring {
	if SignedArea(r) < 0 {
		return reverse(r)
	}
	return r
}

// EnsureCW reverses a ring if it winds counter-clockwise.
func EnsureCW(r orb.Ring) orb.Ring {
	if SignedArea(r) > 0 {
		return reverse(r)
	}
	return r
}

func reverse(r orb.Ring) orb.Ring {
	out := make(orb.Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// CloseRing appends the first point if the ring isn't already closed,
// satisfying invariant I1 (≥4 closing-duplicated points per ring).
func CloseRing(r orb.Ring) orb.Ring {
	if len(r) == 0 {
		return r
	}
	if r[0] == r[len(r)-1] {
		return r
	}
	out := make(orb.Ring, len(r)+1)
	copy(out, r)
	out[len(r)] = r[0]
	return out
}

// NormalizePolygon closes every ring and fixes winding: outer CCW,
// holes CW, as footprint.go's typology generators require.
func NormalizePolygon(p orb.Polygon) orb.Polygon {
	if len(p) == 0 {
		return p
	}
	out := make(orb.Polygon, len(p))
	out[0] = CloseRing(EnsureCCW(p[0]))
	for i, hole := range p[1:] {
		out[i+1] = CloseRing(EnsureCW(hole))
	}
	return out
}

// NormalizeToPolygon selects the largest-area member of a MultiPolygon,
// per spec.md §3's MultiPolygon-normalization rule.
func NormalizeToPolygon(mp orb.MultiPolygon) orb.Polygon {
	var best orb.Polygon
	bestArea := -1.0
	for _, p := range mp {
		a := PolygonArea(p)
		if a > bestArea {
			bestArea = a
			best = p
		}
	}
	return best
}

// FilterSlivers drops polygons below minArea from a MultiPolygon.
func FilterSlivers(mp orb.MultiPolygon, minArea float64) orb.MultiPolygon {
	out := make(orb.MultiPolygon, 0, len(mp))
	for _, p := range mp {
		if PolygonArea(p) >= minArea {
			out = append(out, p)
		}
	}
	return out
}

// ToMultiPolygon wraps a single polygon.
func ToMultiPolygon(p orb.Polygon) orb.MultiPolygon {
	if len(p) == 0 {
		return orb.MultiPolygon{}
	}
	return orb.MultiPolygon{p}
}
