package clamp_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"

	"github.com/meridian-civic/siteplan/internal/clamp"
	"github.com/meridian-civic/siteplan/internal/model"
)

func envelopeSquare(side float64) orb.Polygon {
	return orb.Polygon{{
		{0, 0}, {side, 0}, {side, side}, {0, side}, {0, 0},
	}}
}

func TestClampReturnsUnchangedWhenAlreadyFeasible(t *testing.T) {
	env := envelopeSquare(100)
	spec := model.BuildingSpec{ID: "a", Type: model.Bar, Anchor: orb.Point{50, 50}, WidthM: 20, DepthM: 10}
	out := clamp.Clamp(spec, env, nil, true, true)
	assert.Equal(t, spec.Anchor, out.Anchor)
	assert.Equal(t, spec.WidthM, out.WidthM)
}

func TestClampMovesAnchorInsideEnvelope(t *testing.T) {
	env := envelopeSquare(100)
	spec := model.BuildingSpec{ID: "a", Type: model.Bar, Anchor: orb.Point{-500, -500}, WidthM: 20, DepthM: 10}
	out := clamp.Clamp(spec, env, nil, true, true)
	assert.True(t, clamp.Feasible(out, env, nil, true))
}

func TestClampRespectsLockedPosition(t *testing.T) {
	env := envelopeSquare(100)
	spec := model.BuildingSpec{
		ID: "a", Type: model.Bar, Anchor: orb.Point{-500, -500}, WidthM: 20, DepthM: 10,
		Locked: model.LockedFields{Position: true},
	}
	out := clamp.Clamp(spec, env, nil, true, true)
	assert.Equal(t, spec.Anchor, out.Anchor)
}

func TestClampAvoidsOverlapInFullMode(t *testing.T) {
	env := envelopeSquare(100)
	other := orb.Polygon{{{0, 0}, {60, 0}, {60, 60}, {0, 60}, {0, 0}}}
	spec := model.BuildingSpec{ID: "b", Type: model.Bar, Anchor: orb.Point{30, 30}, WidthM: 20, DepthM: 10}

	out := clamp.Clamp(spec, env, []orb.Polygon{other}, false, true)
	assert.True(t, clamp.Feasible(out, env, []orb.Polygon{other}, false))
}
