package optimizer_test

import (
	"context"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-civic/siteplan/internal/model"
	"github.com/meridian-civic/siteplan/internal/optimizer"
)

func envelopeSquare(side float64) orb.Polygon {
	return orb.Polygon{{
		{0, 0}, {side, 0}, {side, side}, {0, side}, {0, 0},
	}}
}

func TestOptimizeProducesFeasibleLayout(t *testing.T) {
	env := envelopeSquare(100)
	res, err := optimizer.Optimize(context.Background(), optimizer.Params{
		Envelope: env,
		Design: model.DesignConfig{
			TargetFAR:         1.0,
			TargetCoveragePct: 30,
			NumBuildings:      2,
			BuildingTypology:  model.Bar,
			Parking: model.ParkingSpec{
				StallWFt: 9, StallDFt: 18, AisleWFt: 24, TargetRatio: 0.5,
			},
		},
		Zoning:        model.ZoningLimits{MaxFar: 3, MaxCoveragePct: 60},
		SiteAreaSqFt:  100 * 100 / (0.3048 * 0.3048),
		Seed:          42,
		MaxIterations: 50,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, res.Buildings)
	assert.LessOrEqual(t, len(res.Buildings), 2)
	for _, b := range res.Buildings {
		assert.NotEmpty(t, b.ID)
	}
}

func TestOptimizeIsDeterministicForFixedSeed(t *testing.T) {
	env := envelopeSquare(80)
	design := model.DesignConfig{
		TargetFAR: 1.0, TargetCoveragePct: 30, NumBuildings: 1, BuildingTypology: model.Bar,
		Parking: model.ParkingSpec{StallWFt: 9, StallDFt: 18, AisleWFt: 24, TargetRatio: 0.5},
	}
	zoning := model.ZoningLimits{MaxFar: 3, MaxCoveragePct: 60}

	run := func() optimizer.Result {
		res, err := optimizer.Optimize(context.Background(), optimizer.Params{
			Envelope: env, Design: design, Zoning: zoning,
			SiteAreaSqFt: 6889, Seed: 7, MaxIterations: 30,
		})
		require.NoError(t, err)
		return res
	}

	a := run()
	b := run()
	assert.Equal(t, a.Buildings[0].Anchor, b.Buildings[0].Anchor)
}

func TestOptimizeRespectsCancellation(t *testing.T) {
	env := envelopeSquare(80)
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := optimizer.Optimize(ctx, optimizer.Params{
		Envelope: env,
		Design:   model.DesignConfig{NumBuildings: 1, BuildingTypology: model.Bar},
		Zoning:   model.ZoningLimits{MaxFar: 3, MaxCoveragePct: 60},
		SiteAreaSqFt: 6400, Seed: 1, MaxIterations: 1000,
	})
	assert.Error(t, err)
}
