package parking_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-civic/siteplan/internal/model"
	"github.com/meridian-civic/siteplan/internal/parking"
)

func envelopeSquare(side float64) orb.Polygon {
	return orb.Polygon{{
		{0, 0}, {side, 0}, {side, side}, {0, side}, {0, 0},
	}}
}

func TestSolveProducesStallsInOpenEnvelope(t *testing.T) {
	env := envelopeSquare(60)
	spec := model.ParkingSpec{
		StallWFt:    9,
		StallDFt:    18,
		AisleWFt:    24,
		TargetRatio: 1.0,
	}
	sol := parking.Solve(env, nil, spec)
	assert.Greater(t, sol.StallsAchieved, 0)
	assert.GreaterOrEqual(t, sol.ChosenAngleDeg, 0.0)
}

func TestSolveReturnsEmptyWhenNoRoomLeft(t *testing.T) {
	env := envelopeSquare(20)
	building := envelopeSquare(20) // building covers the entire envelope
	spec := model.ParkingSpec{StallWFt: 9, StallDFt: 18, AisleWFt: 24, TargetRatio: 1.0}

	sol := parking.Solve(env, []orb.Polygon{building}, spec)
	assert.Equal(t, 0, sol.StallsAchieved)
}

func TestSolveAccessPointLiesOnEnvelopeBoundary(t *testing.T) {
	env := envelopeSquare(80)
	spec := model.ParkingSpec{StallWFt: 9, StallDFt: 18, AisleWFt: 24, TargetRatio: 1.0}
	sol := parking.Solve(env, nil, spec)
	require.NotNil(t, sol.Circulation)
	// all four edges tie at 80 m, so the first edge (0,0)-(80,0) wins
	assert.InDelta(t, 40, sol.AccessPoint[0], 1e-9)
	assert.InDelta(t, 0, sol.AccessPoint[1], 1e-9)
}
