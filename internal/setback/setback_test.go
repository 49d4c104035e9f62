package setback_test

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-civic/siteplan/internal/geom"
	"github.com/meridian-civic/siteplan/internal/setback"
)

func rectParcel(w, h float64) orb.Polygon {
	return orb.Polygon{{
		{0, 0}, {w, 0}, {w, h}, {0, h}, {0, 0},
	}}
}

func TestClassifyEdgesFindsFrontAdjacentToRoad(t *testing.T) {
	parcel := rectParcel(100, 60)
	road := geom.NamedRoad{
		Name: "Main St",
		Line: orb.LineString{{-10, -5}, {110, -5}},
	}

	edges, err := setback.ClassifyEdges(parcel, []geom.NamedRoad{road})
	require.NoError(t, err)

	var front *setback.Edge
	for i := range edges {
		if edges[i].Class == setback.Front {
			front = &edges[i]
		}
	}
	require.NotNil(t, front)
	assert.Equal(t, "Main St", front.RoadName)
}

func TestClassifyEdgesNoRoadPicksLongestEdgeAsFront(t *testing.T) {
	parcel := rectParcel(100, 40)
	edges, err := setback.ClassifyEdges(parcel, nil)
	require.NoError(t, err)

	var front *setback.Edge
	for i := range edges {
		if edges[i].Class == setback.Front {
			front = &edges[i]
		}
	}
	require.NotNil(t, front)
	assert.Empty(t, front.RoadName)
	assert.InDelta(t, 100, geom.Distance(front.A, front.B), 1e-9)
}

func TestComputeEnvelopeShrinksRectangle(t *testing.T) {
	parcel := rectParcel(200*geom.FeetToMetres, 100*geom.FeetToMetres)
	env, err := setback.ComputeEnvelope(parcel, nil, setback.Feet{FrontFt: 20, SideFt: 10, RearFt: 15})
	require.NoError(t, err)
	assert.Less(t, env.AreaM2, geom.PolygonArea(parcel))
	assert.Greater(t, env.AreaM2, 0.0)
}

func TestComputeEnvelopeCollapsesOnOversizedSetback(t *testing.T) {
	parcel := rectParcel(30*geom.FeetToMetres, 30*geom.FeetToMetres)
	_, err := setback.ComputeEnvelope(parcel, nil, setback.Feet{FrontFt: 40, SideFt: 40, RearFt: 40})
	require.Error(t, err)
}
