// Package feasibility implements spec component C7: a pure function
// that checks a candidate layout against its zoning envelope and
// records every exceedance as a typed violation.
package feasibility

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/meridian-civic/siteplan/internal/footprint"
	"github.com/meridian-civic/siteplan/internal/geom"
	"github.com/meridian-civic/siteplan/internal/model"
	"github.com/meridian-civic/siteplan/internal/unitmix"
)

// groundFloorHeightFt and upperFloorHeightFt derive a building's total
// height in feet from its effective floor count.
const groundFloorHeightFt = 14.0
const upperFloorHeightFt = 10.0

// Input bundles everything Evaluate needs for one candidate layout.
type Input struct {
	Envelope     orb.Polygon
	SiteAreaSqFt float64
	Buildings    []model.BuildingSpec
	Parking      model.ParkingSolution
	Zoning       model.ZoningLimits
	TargetRatio  float64 // parking stalls required per unit
}

// Evaluate runs every check in spec order (FAR, coverage, parking
// shortfall, height, density, impervious surface, open space, building
// overlap, building containment) and returns the full metrics record.
func Evaluate(in Input) model.Metrics {
	footprints := make([]orb.Polygon, len(in.Buildings))
	floors := make([]int, len(in.Buildings))
	footprintAreaSqFt := 0.0
	gfaSqFt := 0.0
	for i, b := range in.Buildings {
		fp := footprint.FromSpec(b)
		footprints[i] = fp
		floors[i] = footprint.EffectiveFloors(b)
		areaM2 := geom.PolygonArea(fp)
		footprintAreaSqFt += areaM2 * geom.SqMToSqFt
		gfaSqFt += areaM2 * geom.SqMToSqFt * float64(floors[i])
	}

	var mix []model.UnitMixEntry
	for _, b := range in.Buildings {
		if len(b.UnitMix) > 0 {
			mix = append(mix, b.UnitMix...)
		}
	}
	totalUnits := unitmix.TotalUnits(mix)
	if totalUnits == 0 {
		totalUnits = unitmix.TotalUnitsFromGFA(gfaSqFt)
	}

	far := safeDiv(gfaSqFt, in.SiteAreaSqFt)
	coveragePct := safeDiv(footprintAreaSqFt, in.SiteAreaSqFt) * 100

	stallsProvided := in.Parking.StallsAchieved
	stallsRequired := int(math.Ceil(in.TargetRatio * float64(totalUnits)))
	parkingRatio := 0.0
	if totalUnits > 0 {
		parkingRatio = float64(stallsProvided) / float64(totalUnits)
	}

	parkingAreaSqFt := geom.MultiPolygonArea(in.Parking.Bays)*geom.SqMToSqFt +
		geom.MultiPolygonArea(in.Parking.Aisles)*geom.SqMToSqFt +
		geom.MultiPolygonArea(in.Parking.Circulation)*geom.SqMToSqFt
	imperviousPct := safeDiv(footprintAreaSqFt+parkingAreaSqFt, in.SiteAreaSqFt) * 100
	openSpacePct := 100 - imperviousPct
	if openSpacePct < 0 {
		openSpacePct = 0
	}

	var violations, warnings []model.FeasibilityViolation

	if far > in.Zoning.MaxFar {
		violations = append(violations, model.FeasibilityViolation{
			Code:     model.FarExceeded,
			Message:  fmt.Sprintf("FAR %.3f exceeds max %.3f", far, in.Zoning.MaxFar),
			Delta:    far - in.Zoning.MaxFar,
			Severity: model.SeverityError,
		})
	}

	if coveragePct > in.Zoning.MaxCoveragePct {
		violations = append(violations, model.FeasibilityViolation{
			Code:     model.CoverageExceeded,
			Message:  fmt.Sprintf("coverage %.1f%% exceeds max %.1f%%", coveragePct, in.Zoning.MaxCoveragePct),
			Delta:    coveragePct - in.Zoning.MaxCoveragePct,
			Severity: model.SeverityError,
		})
	}

	if in.Zoning.MinParkingRatio > 0 && parkingRatio < in.Zoning.MinParkingRatio {
		violations = append(violations, model.FeasibilityViolation{
			Code:     model.ParkingShortfall,
			Message:  fmt.Sprintf("%d stalls provided, %d required", stallsProvided, stallsRequired),
			Delta:    float64(stallsRequired - stallsProvided),
			Severity: model.SeverityError,
		})
	}

	if in.Zoning.MaxHeightFt != nil {
		maxHeight := 0.0
		for _, f := range floors {
			h := groundFloorHeightFt + math.Max(0, float64(f-1))*upperFloorHeightFt
			if h > maxHeight {
				maxHeight = h
			}
		}
		if maxHeight > *in.Zoning.MaxHeightFt {
			violations = append(violations, model.FeasibilityViolation{
				Code:     model.HeightExceeded,
				Message:  fmt.Sprintf("height %.0fft exceeds max %.0fft", maxHeight, *in.Zoning.MaxHeightFt),
				Delta:    maxHeight - *in.Zoning.MaxHeightFt,
				Severity: model.SeverityError,
			})
		}
	}

	if in.Zoning.MaxDensityDuPerAcre != nil {
		acres := in.SiteAreaSqFt / 43560.0
		density := safeDiv(float64(totalUnits), acres)
		if density > *in.Zoning.MaxDensityDuPerAcre {
			violations = append(violations, model.FeasibilityViolation{
				Code:     model.DensityExceeded,
				Message:  fmt.Sprintf("density %.1f du/ac exceeds max %.1f du/ac", density, *in.Zoning.MaxDensityDuPerAcre),
				Delta:    density - *in.Zoning.MaxDensityDuPerAcre,
				Severity: model.SeverityError,
			})
		}
	}

	if in.Zoning.MaxImperviousPct != nil && imperviousPct > *in.Zoning.MaxImperviousPct {
		violations = append(violations, model.FeasibilityViolation{
			Code:     model.ImperviousExceeded,
			Message:  fmt.Sprintf("impervious %.1f%% exceeds max %.1f%%", imperviousPct, *in.Zoning.MaxImperviousPct),
			Delta:    imperviousPct - *in.Zoning.MaxImperviousPct,
			Severity: model.SeverityWarning,
		})
	}

	if in.Zoning.MinOpenSpacePct != nil && openSpacePct < *in.Zoning.MinOpenSpacePct {
		warnings = append(warnings, model.FeasibilityViolation{
			Code:     model.OpenSpaceInsufficient,
			Message:  fmt.Sprintf("open space %.1f%% below min %.1f%%", openSpacePct, *in.Zoning.MinOpenSpacePct),
			Delta:    *in.Zoning.MinOpenSpacePct - openSpacePct,
			Severity: model.SeverityWarning,
		})
	}

	overlapIDs := make(map[string]bool)
	overlapAreaSqM := 0.0
	for i := 0; i < len(footprints); i++ {
		for j := i + 1; j < len(footprints); j++ {
			overlap := geom.Intersection(geom.ToMultiPolygon(footprints[i]), geom.ToMultiPolygon(footprints[j]))
			if area := geom.MultiPolygonArea(overlap); area > geom.OverlapToleranceM2 {
				overlapIDs[in.Buildings[i].ID] = true
				overlapIDs[in.Buildings[j].ID] = true
				overlapAreaSqM += area
			}
		}
	}
	if len(overlapIDs) > 0 {
		violations = append(violations, model.FeasibilityViolation{
			Code:     model.BuildingOverlap,
			Message:  fmt.Sprintf("%d buildings overlap each other by %.1fm² total", len(overlapIDs), overlapAreaSqM),
			Delta:    overlapAreaSqM,
			Severity: model.SeverityError,
		})
	}

	for i, fp := range footprints {
		fpArea := geom.PolygonArea(fp)
		inside := geom.MultiPolygonArea(geom.Intersection(geom.ToMultiPolygon(in.Envelope), geom.ToMultiPolygon(fp)))
		outside := fpArea - inside
		if outside > geom.OverlapToleranceM2 {
			violations = append(violations, model.FeasibilityViolation{
				Code:     model.BuildingOutsideEnvelope,
				Message:  fmt.Sprintf("building %s extends %.1fm² outside the setback envelope", in.Buildings[i].ID, outside),
				Delta:    outside,
				Severity: model.SeverityError,
			})
		}
	}

	compliant := true
	for _, v := range violations {
		if v.Severity == model.SeverityError {
			compliant = false
			break
		}
	}

	return model.Metrics{
		FAR:             far,
		CoveragePct:     coveragePct,
		ParkingRatio:    parkingRatio,
		AchievedUnits:   totalUnits,
		UnitMixSummary:  unitmix.Summary(mix),
		OpenSpacePct:    openSpacePct,
		ParkingAngleDeg: in.Parking.ChosenAngleDeg,
		StallsProvided:  stallsProvided,
		StallsRequired:  stallsRequired,
		ZoningCompliant: compliant,
		Violations:      violations,
		Warnings:        warnings,
	}
}

func safeDiv(n, d float64) float64 {
	if d == 0 {
		return 0
	}
	return n / d
}
