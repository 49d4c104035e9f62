package footprint_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"github.com/meridian-civic/siteplan/internal/footprint"
	"github.com/meridian-civic/siteplan/internal/geom"
	"github.com/meridian-civic/siteplan/internal/model"
)

func TestBuildBarIsRectangle(t *testing.T) {
	p := footprint.Build(model.Bar, orb.Point{0, 0}, 0, footprint.Dims{WidthM: 20, DepthM: 10})
	assert.Len(t, p[0], 5) // closed rectangle ring
	assert.InDelta(t, 200, geom.PolygonArea(p), 1e-6)
}

func TestBuildLShapeHasSixVertices(t *testing.T) {
	p := footprint.Build(model.LShape, orb.Point{0, 0}, 0, footprint.Dims{WidthM: 40, DepthM: 20, WingW: 15, WingD: 10})
	assert.Len(t, p[0], 7) // 6 distinct vertices, closed
	fullRect := 40.0 * 20.0
	notch := 15.0 * 10.0
	assert.InDelta(t, fullRect-notch, geom.PolygonArea(p), 1e-6)
}

func TestBuildUShapeHasEightVertices(t *testing.T) {
	p := footprint.Build(model.UShape, orb.Point{0, 0}, 0, footprint.Dims{WidthM: 40, DepthM: 30, CourtW: 10, CourtD: 15})
	assert.Len(t, p[0], 9)
}

func TestBuildCourtyardWrapHasHole(t *testing.T) {
	p := footprint.Build(model.CourtyardWrap, orb.Point{0, 0}, 0, footprint.Dims{WidthM: 50, DepthM: 40, CourtW: 10, CourtD: 10})
	assert.Len(t, p, 2) // outer ring plus the courtyard hole
	assert.InDelta(t, 50*40-10*10, geom.PolygonArea(p), 1e-6)
}

func TestEffectiveFloorsFloorsAtOne(t *testing.T) {
	assert.Equal(t, 1, footprint.EffectiveFloors(model.BuildingSpec{Floors: 0}))
	assert.Equal(t, 5, footprint.EffectiveFloors(model.BuildingSpec{Floors: 5}))
}

func TestEffectiveFloorsAddsPodiumFloors(t *testing.T) {
	got := footprint.EffectiveFloors(model.BuildingSpec{Type: model.Podium, Floors: 2, PodiumFloors: 6})
	assert.Equal(t, 8, got)
}

func TestFromSpecUsesSpecDimensions(t *testing.T) {
	spec := model.BuildingSpec{Type: model.Bar, Anchor: orb.Point{10, 10}, WidthM: 30, DepthM: 15}
	p := footprint.FromSpec(spec)
	assert.InDelta(t, 450, geom.PolygonArea(p), 1e-6)
}
