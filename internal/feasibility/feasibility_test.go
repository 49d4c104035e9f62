package feasibility_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"github.com/meridian-civic/siteplan/internal/feasibility"
	"github.com/meridian-civic/siteplan/internal/model"
)

func envelopeSquare(side float64) orb.Polygon {
	return orb.Polygon{{
		{0, 0}, {side, 0}, {side, side}, {0, side}, {0, 0},
	}}
}

func TestEvaluateFlagsFarExceeded(t *testing.T) {
	env := envelopeSquare(100)
	buildings := []model.BuildingSpec{
		{ID: "a", Type: model.Bar, Anchor: orb.Point{50, 50}, WidthM: 90, DepthM: 90, Floors: 10},
	}
	metrics := feasibility.Evaluate(feasibility.Input{
		Envelope:     env,
		SiteAreaSqFt: 10000,
		Buildings:    buildings,
		Zoning:       model.ZoningLimits{MaxFar: 1.0, MaxCoveragePct: 50},
	})

	assert.False(t, metrics.ZoningCompliant)
	found := false
	for _, v := range metrics.Violations {
		if v.Code == model.FarExceeded {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEvaluateFlagsBuildingOverlap(t *testing.T) {
	env := envelopeSquare(200)
	buildings := []model.BuildingSpec{
		{ID: "a", Type: model.Bar, Anchor: orb.Point{50, 50}, WidthM: 40, DepthM: 40},
		{ID: "b", Type: model.Bar, Anchor: orb.Point{55, 50}, WidthM: 40, DepthM: 40},
	}
	metrics := feasibility.Evaluate(feasibility.Input{
		Envelope:     env,
		SiteAreaSqFt: 40000,
		Buildings:    buildings,
		Zoning:       model.ZoningLimits{MaxFar: 10, MaxCoveragePct: 100},
	})

	found := false
	for _, v := range metrics.Violations {
		if v.Code == model.BuildingOverlap {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEvaluateFlagsBuildingOutsideEnvelope(t *testing.T) {
	env := envelopeSquare(50)
	buildings := []model.BuildingSpec{
		{ID: "a", Type: model.Bar, Anchor: orb.Point{45, 25}, WidthM: 40, DepthM: 10},
	}
	metrics := feasibility.Evaluate(feasibility.Input{
		Envelope:     env,
		SiteAreaSqFt: 2500,
		Buildings:    buildings,
		Zoning:       model.ZoningLimits{MaxFar: 10, MaxCoveragePct: 100},
	})

	found := false
	for _, v := range metrics.Violations {
		if v.Code == model.BuildingOutsideEnvelope {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEvaluateCompliantLayoutHasNoErrors(t *testing.T) {
	env := envelopeSquare(200)
	buildings := []model.BuildingSpec{
		{ID: "a", Type: model.Bar, Anchor: orb.Point{100, 100}, WidthM: 30, DepthM: 15, Floors: 3},
	}
	metrics := feasibility.Evaluate(feasibility.Input{
		Envelope:     env,
		SiteAreaSqFt: 40000,
		Buildings:    buildings,
		Zoning:       model.ZoningLimits{MaxFar: 10, MaxCoveragePct: 100},
	})
	assert.True(t, metrics.ZoningCompliant)
}
