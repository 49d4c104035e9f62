package geom

import (
	"math"

	"github.com/paulmach/orb"
)

// RotatePoint rotates p by theta radians (CCW positive) about origin.
func RotatePoint(p, origin orb.Point, theta float64) orb.Point {
	s, c := math.Sin(theta), math.Cos(theta)
	dx := p[0] - origin[0]
	dy := p[1] - origin[1]
	return orb.Point{
		origin[0] + dx*c - dy*s,
		origin[1] + dx*s + dy*c,
	}
}

// TranslatePoint shifts p by (dx, dy).
func TranslatePoint(p orb.Point, dx, dy float64) orb.Point {
	return orb.Point{p[0] + dx, p[1] + dy}
}

// RotateRing rotates every vertex of a ring about origin.
func RotateRing(r orb.Ring, origin orb.Point, theta float64) orb.Ring {
	out := make(orb.Ring, len(r))
	for i, p := range r {
		out[i] = RotatePoint(p, origin, theta)
	}
	return out
}

// RotatePolygon rotates every ring of a polygon about origin.
func RotatePolygon(p orb.Polygon, origin orb.Point, theta float64) orb.Polygon {
	out := make(orb.Polygon, len(p))
	for i, r := range p {
		out[i] = RotateRing(r, origin, theta)
	}
	return out
}

// RotateMultiPolygon rotates every member polygon about origin.
func RotateMultiPolygon(mp orb.MultiPolygon, origin orb.Point, theta float64) orb.MultiPolygon {
	out := make(orb.MultiPolygon, len(mp))
	for i, p := range mp {
		out[i] = RotatePolygon(p, origin, theta)
	}
	return out
}

// TranslateRing shifts every vertex of a ring by (dx, dy).
func TranslateRing(r orb.Ring, dx, dy float64) orb.Ring {
	out := make(orb.Ring, len(r))
	for i, p := range r {
		out[i] = TranslatePoint(p, dx, dy)
	}
	return out
}

// TranslatePolygon shifts every ring of a polygon by (dx, dy).
func TranslatePolygon(p orb.Polygon, dx, dy float64) orb.Polygon {
	out := make(orb.Polygon, len(p))
	for i, r := range p {
		out[i] = TranslateRing(r, dx, dy)
	}
	return out
}

// RotateBound rotates a rectangle's four corners about origin and
// returns the result as a polygon (a rotated rectangle is no longer
// axis-aligned, so it can't be represented as a Bound).
func RotateBound(b orb.Bound, origin orb.Point, theta float64) orb.Polygon {
	return RotatePolygon(BoundToPolygon(b), origin, theta)
}
