package scene_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"github.com/meridian-civic/siteplan/internal/model"
	"github.com/meridian-civic/siteplan/internal/scene"
)

func envelopeSquare(side float64) orb.Polygon {
	return orb.Polygon{{
		{0, 0}, {side, 0}, {side, side}, {0, side}, {0, 0},
	}}
}

func TestAssembleIncludesBuildingElements(t *testing.T) {
	env := envelopeSquare(100)
	buildings := []model.BuildingSpec{
		{ID: "bldg-a", Type: model.Bar, Anchor: orb.Point{30, 30}, WidthM: 20, DepthM: 10, Floors: 3},
	}
	sc := scene.Assemble(env, buildings, model.ParkingSolution{})

	found := false
	for _, el := range sc.Elements {
		if el.ID == "bldg-a" {
			found = true
			assert.Equal(t, model.ElementBuilding, el.Type)
			assert.Equal(t, 3, el.Properties.Floors)
		}
	}
	assert.True(t, found)
}

func TestAssembleProducesGreenspaceForLeftoverArea(t *testing.T) {
	env := envelopeSquare(100)
	buildings := []model.BuildingSpec{
		{ID: "bldg-a", Type: model.Bar, Anchor: orb.Point{20, 20}, WidthM: 10, DepthM: 10},
	}
	sc := scene.Assemble(env, buildings, model.ParkingSolution{})

	found := false
	for _, el := range sc.Elements {
		if el.Type == model.ElementGreenspace {
			found = true
		}
	}
	assert.True(t, found)
}
