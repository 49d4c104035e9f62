package siteplan

import (
	"github.com/paulmach/orb"

	"github.com/meridian-civic/siteplan/internal/feasibility"
	"github.com/meridian-civic/siteplan/internal/footprint"
	"github.com/meridian-civic/siteplan/internal/geom"
	"github.com/meridian-civic/siteplan/internal/parking"
)

// EvaluateResult is Evaluate's output: the full feasibility metrics
// record plus the parking solve it was computed against.
type EvaluateResult struct {
	Metrics Metrics
	Parking ParkingSolution
}

// Evaluate checks a candidate building layout against env and zoning
// (component C7), always solving parking fresh from parkingSpec.
func Evaluate(env *Envelope, buildings []BuildingSpec, parkingSpec ParkingSpec, zoning ZoningConfig) (*EvaluateResult, error) {
	footprints := make([]orb.Polygon, len(buildings))
	for i, b := range buildings {
		footprints[i] = footprint.FromSpec(b)
	}

	ps := parking.Solve(env.Polygon, footprints, parkingSpec)

	metrics := feasibility.Evaluate(feasibility.Input{
		Envelope:     env.Polygon,
		SiteAreaSqFt: env.AreaM2 * geom.SqMToSqFt,
		Buildings:    buildings,
		Parking:      ps,
		Zoning:       zoning,
		TargetRatio:  parkingSpec.TargetRatio,
	})

	return &EvaluateResult{Metrics: metrics, Parking: ps}, nil
}
