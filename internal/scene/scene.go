// Package scene implements spec component C10: assemble a finalized
// layout into the typed Element graph that callers render or
// serialize. The metrics record is computed by package feasibility,
// not here.
package scene

import (
	"fmt"

	"github.com/ctessum/polyclip-go"
	"github.com/paulmach/orb"

	"github.com/meridian-civic/siteplan/internal/footprint"
	"github.com/meridian-civic/siteplan/internal/geom"
	"github.com/meridian-civic/siteplan/internal/model"
)

// minGreenspaceSqFt filters slivers left over from the iterative
// difference chain below.
const minGreenspaceSqFt = 100.0

// maxGreenspaceSteps bounds the iterative boolean-difference chain so a
// pathological envelope can't loop forever if polyclip-go's Vatti
// implementation overflows on a malformed input.
const maxGreenspaceSteps = 64

// Assemble builds the rendering-ready Scene for one finalized layout:
// buildings, parking bays/aisles, circulation, and the leftover
// greenspace, each as a typed Element.
func Assemble(envelope orb.Polygon, buildings []model.BuildingSpec, parking model.ParkingSolution) model.Scene {
	var elements []model.Element

	occupied := orb.MultiPolygon{}
	for _, b := range buildings {
		fp := footprint.FromSpec(b)
		occupied = append(occupied, fp)
		elements = append(elements, model.Element{
			ID:       b.ID,
			Type:     model.ElementBuilding,
			Geometry: fp,
			Properties: model.ElementProperties{
				AreaSqFt: geom.PolygonArea(fp) * geom.SqMToSqFt,
				Floors:   footprint.EffectiveFloors(b),
			},
		})
	}

	for i, bay := range parking.Bays {
		occupied = append(occupied, bay)
		elements = append(elements, model.Element{
			ID:       fmt.Sprintf("parking-bay-%d", i),
			Type:     model.ElementParkingBay,
			Geometry: bay,
			Properties: model.ElementProperties{
				AreaSqFt:      geom.PolygonArea(bay) * geom.SqMToSqFt,
				ParkingSpaces: estimateStalls(bay, parking),
			},
		})
	}

	for i, aisle := range parking.Aisles {
		occupied = append(occupied, aisle)
		elements = append(elements, model.Element{
			ID:       fmt.Sprintf("parking-aisle-%d", i),
			Type:     model.ElementParkingAisle,
			Geometry: aisle,
			Properties: model.ElementProperties{
				AreaSqFt: geom.PolygonArea(aisle) * geom.SqMToSqFt,
			},
		})
	}

	for i, circ := range parking.Circulation {
		occupied = append(occupied, circ)
		elements = append(elements, model.Element{
			ID:       fmt.Sprintf("circulation-%d", i),
			Type:     model.ElementCirculation,
			Geometry: circ,
			Properties: model.ElementProperties{
				AreaSqFt: geom.PolygonArea(circ) * geom.SqMToSqFt,
			},
		})
	}

	for i, green := range greenspace(envelope, occupied) {
		elements = append(elements, model.Element{
			ID:       fmt.Sprintf("greenspace-%d", i),
			Type:     model.ElementGreenspace,
			Geometry: green,
			Properties: model.ElementProperties{
				AreaSqFt: geom.PolygonArea(green) * geom.SqMToSqFt,
				Color:    "#7fb069",
			},
		})
	}

	return model.Scene{Elements: elements}
}

// estimateStalls apportions the solver's total achieved-stall count
// across bay polygons by area share. The parking solver does not merge
// bays: each bay polygon it emits is one stall rectangle, capped at
// parking.MaxOutputPolys.
func estimateStalls(bay orb.Polygon, parking model.ParkingSolution) int {
	total := geom.MultiPolygonArea(append(orb.MultiPolygon{}, parking.Bays...))
	if total <= 0 {
		return 0
	}
	share := geom.PolygonArea(bay) / total
	return int(share*float64(parking.StallsAchieved) + 0.5)
}

// greenspace subtracts every occupied footprint from the envelope one
// at a time, degrading gracefully (no greenspace at all) if the
// boolean-op backend ever reports overflow.
func greenspace(envelope orb.Polygon, occupied orb.MultiPolygon) orb.MultiPolygon {
	remaining := orb.MultiPolygon{envelope}
	steps := occupied
	if len(steps) > maxGreenspaceSteps {
		steps = steps[:maxGreenspaceSteps]
	}
	for _, obstacle := range steps {
		next, ok := geom.SafeBooleanOp(remaining, orb.MultiPolygon{obstacle}, polyclip.DIFFERENCE)
		if !ok {
			return orb.MultiPolygon{}
		}
		remaining = next
	}
	return geom.FilterSlivers(remaining, minGreenspaceSqFt/geom.SqMToSqFt)
}
