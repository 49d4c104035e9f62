package geom_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-civic/siteplan/internal/geom"
)

func square(side float64) orb.Polygon {
	return orb.Polygon{{
		{0, 0}, {side, 0}, {side, side}, {0, side}, {0, 0},
	}}
}

func TestPolygonArea(t *testing.T) {
	assert.InDelta(t, 100.0, geom.PolygonArea(square(10)), 1e-9)
}

func TestPolygonAreaWithHole(t *testing.T) {
	p := square(10)
	hole := geom.EnsureCW(orb.Ring{{2, 2}, {4, 2}, {4, 4}, {2, 4}, {2, 2}})
	p = append(p, hole)
	assert.InDelta(t, 100.0-4.0, geom.PolygonArea(p), 1e-9)
}

func TestPointInPolygon(t *testing.T) {
	p := square(10)
	assert.True(t, geom.PointInPolygon(orb.Point{5, 5}, p))
	assert.False(t, geom.PointInPolygon(orb.Point{15, 5}, p))
}

func TestPointInPolygonHoleExcluded(t *testing.T) {
	p := square(10)
	hole := geom.EnsureCW(orb.Ring{{2, 2}, {4, 2}, {4, 4}, {2, 4}, {2, 2}})
	p = append(p, hole)
	assert.False(t, geom.PointInPolygon(orb.Point{3, 3}, p))
	assert.True(t, geom.PointInPolygon(orb.Point{1, 1}, p))
}

func TestPolygonContainsPoly(t *testing.T) {
	outer := square(10)
	inner := orb.Polygon{{{2, 2}, {4, 2}, {4, 4}, {2, 4}, {2, 2}}}
	assert.True(t, geom.PolygonContainsPoly(outer, inner))

	straddling := orb.Polygon{{{8, 8}, {12, 8}, {12, 12}, {8, 12}, {8, 8}}}
	assert.False(t, geom.PolygonContainsPoly(outer, straddling))
}

func TestCentroidOfSquareIsCenter(t *testing.T) {
	c := geom.PolygonCentroid(square(10))
	assert.InDelta(t, 5, c[0], 1e-9)
	assert.InDelta(t, 5, c[1], 1e-9)
}

func TestNormalizePolygonClosesRing(t *testing.T) {
	open := orb.Polygon{{{0, 0}, {10, 0}, {10, 10}, {0, 10}}}
	normalized := geom.NormalizePolygon(open)
	ring := normalized[0]
	require.True(t, len(ring) >= 4)
	assert.Equal(t, ring[0], ring[len(ring)-1])
}

func TestFilterSliversDropsTinyPolygons(t *testing.T) {
	mp := orb.MultiPolygon{square(10), square(0.1)}
	filtered := geom.FilterSlivers(mp, geom.MinSliverAreaM2)
	assert.Len(t, filtered, 1)
}
