package geom_test

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
	"pgregory.net/rapid"

	"github.com/meridian-civic/siteplan/internal/geom"
)

// TestPropertyRectangleAreaMatchesWidthTimesHeight exercises P1-style
// invariants: a rectangle's computed area always matches its
// width*height regardless of where it's placed or how large it is.
func TestPropertyRectangleAreaMatchesWidthTimesHeight(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Float64Range(0.1, 1000).Draw(t, "w")
		h := rapid.Float64Range(0.1, 1000).Draw(t, "h")
		x := rapid.Float64Range(-1000, 1000).Draw(t, "x")
		y := rapid.Float64Range(-1000, 1000).Draw(t, "y")

		p := orb.Polygon{{
			{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}, {x, y},
		}}

		got := geom.PolygonArea(p)
		want := w * h
		if diff := got - want; diff > 1e-6 || diff < -1e-6 {
			t.Fatalf("area = %v, want %v", got, want)
		}
	})
}

// TestPropertyCentroidIsAlwaysInsideConvexRectangle covers the
// centroid/containment pairing P-series invariants exercise: a convex
// polygon's centroid is always inside itself.
func TestPropertyCentroidIsAlwaysInsideConvexRectangle(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Float64Range(1, 500).Draw(t, "w")
		h := rapid.Float64Range(1, 500).Draw(t, "h")
		x := rapid.Float64Range(-500, 500).Draw(t, "x")
		y := rapid.Float64Range(-500, 500).Draw(t, "y")

		p := orb.Polygon{{
			{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}, {x, y},
		}}

		c := geom.PolygonCentroid(p)
		if !geom.PointInPolygon(c, p) {
			t.Fatalf("centroid %v not inside rectangle %v", c, p)
		}
	})
}

// TestPropertyNormalizedRingAlwaysClosed checks invariant I1: every
// ring NormalizePolygon returns starts and ends on the same point.
func TestPropertyNormalizedRingAlwaysClosed(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(3, 12).Draw(t, "n")
		ring := make(orb.Ring, 0, n)
		for i := 0; i < n; i++ {
			angle := float64(i) / float64(n) * 6.283185307179586
			ring = append(ring, orb.Point{100 * math.Cos(angle), 100 * math.Sin(angle)})
		}
		p := geom.NormalizePolygon(orb.Polygon{ring})
		r := p[0]
		if r[0] != r[len(r)-1] {
			t.Fatalf("ring not closed: %v", r)
		}
	})
}
