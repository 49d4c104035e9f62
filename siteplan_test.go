package siteplan_test

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	siteplan "github.com/meridian-civic/siteplan"
)

func rectParcel(w, h float64) orb.Polygon {
	return orb.Polygon{{
		{0, 0}, {w, 0}, {w, h}, {0, h}, {0, 0},
	}}
}

func TestComputeEnvelopeEndToEnd(t *testing.T) {
	parcel := rectParcel(200*0.3048, 100*0.3048)
	env, err := siteplan.ComputeEnvelope(parcel, nil, siteplan.SetbackFeet{FrontFt: 20, SideFt: 10, RearFt: 15})
	require.NoError(t, err)
	assert.Greater(t, env.AreaM2, 0.0)
}

func TestOptimizeEndToEnd(t *testing.T) {
	parcel := rectParcel(300*0.3048, 150*0.3048)
	env, err := siteplan.ComputeEnvelope(parcel, nil, siteplan.SetbackFeet{FrontFt: 20, SideFt: 10, RearFt: 15})
	require.NoError(t, err)

	design := siteplan.DesignConfig{
		TargetFAR:         1.5,
		TargetCoveragePct: 35,
		NumBuildings:      2,
		BuildingTypology:  siteplan.Bar,
	}
	parking := siteplan.ParkingSpec{StallWFt: 9, StallDFt: 18, AisleWFt: 24, TargetRatio: 1.0}
	zoning := siteplan.ZoningConfig{MaxFar: 3, MaxCoveragePct: 60}

	res, err := siteplan.Optimize(context.Background(), env, zoning, design, parking,
		siteplan.WithSeed(99),
		siteplan.WithMaxIterations(40),
	)
	require.NoError(t, err)
	assert.Len(t, res.Buildings, 2)
}

func TestProFormaComputesPositiveNOIForReasonableInputs(t *testing.T) {
	result := siteplan.ProForma(siteplan.ProFormaInputs{
		TotalGFASqFt: 80000,
		SiteAreaSqFt: 40000,
		UnitMix: []siteplan.UnitMixEntry{
			{Type: siteplan.OneBR, Count: 90, RentPerMonth: 1900},
		},
		LandCost: 1000000,
	})
	assert.Greater(t, result.NOI, 0.0)
}
