// Package optimizer implements spec component C9: a simulated-annealing
// search over building placement, rotation, size and building count,
// scored by a cheap geometry-only function during the inner loop
// and a full finance-aware function at finalization.
package optimizer

import (
	"context"
	"math"
	"math/rand"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/meridian-civic/siteplan/internal/clamp"
	"github.com/meridian-civic/siteplan/internal/feasibility"
	"github.com/meridian-civic/siteplan/internal/footprint"
	"github.com/meridian-civic/siteplan/internal/geom"
	"github.com/meridian-civic/siteplan/internal/model"
	"github.com/meridian-civic/siteplan/internal/parking"
	"github.com/meridian-civic/siteplan/internal/proforma"
	"github.com/meridian-civic/siteplan/internal/unitmix"
)

// ErrCancelled is returned when ctx is cancelled mid-search. The
// accompanying Result is the zero value: the best layout found before
// cancellation is not returned, and Metrics.Cancelled is not set.
var ErrCancelled = errors.New("optimizer: cancelled")

// mutation magnitudes, spec.md §4.9.
const (
	moveMinM        = 5.0
	moveMaxM        = 20.0
	resizeJitterM   = 10.0
	resizeFloorM    = 5.0
	rotateJitterRad = math.Pi / 6
	addJitterM      = 20.0
)

// subScoreWeights weights the seven [0,1] sub-scores spec.md §4.9's
// table combines into a single fast- or full-path score, also in [0,1].
type subScoreWeights struct {
	unitCount          float64
	parkingCompliance  float64
	farUtilization     float64
	coverageCompliance float64
	openSpace          float64
	noViolations       float64
	yieldProxy         float64
}

var defaultWeights = subScoreWeights{
	unitCount:          0.25,
	parkingCompliance:  0.20,
	farUtilization:     0.15,
	coverageCompliance: 0.10,
	openSpace:          0.05,
	noViolations:       0.15,
	yieldProxy:         0.10,
}

// Params bundles everything one Optimize call needs.
type Params struct {
	Envelope      orb.Polygon
	Design        model.DesignConfig
	Zoning        model.ZoningLimits
	Market        model.MarketAssumptions
	SiteAreaSqFt  float64
	LandCost      float64
	Seed          int64
	MaxIterations int
	Progress      func(iter int, bestScore float64)
}

// Alternative is one of the best-of-4 distinct layouts kept alongside
// the winner, for callers that want to present a short list of options.
type Alternative struct {
	Buildings []model.BuildingSpec
	Score     float64
}

// Result is Optimize's full output, ready to hand to scene assembly.
type Result struct {
	Buildings    []model.BuildingSpec
	Metrics      model.Metrics
	ProForma     model.ProFormaResult
	Parking      model.ParkingSolution
	Alternatives []Alternative
}

const (
	tStart = 1.0
	tEnd   = 0.01
)

// Optimize runs the simulated-annealing search described in spec.md
// §4.9. ctx is polled at each iteration boundary only; the parking
// solver and the finalize step do not check it. A cancelled context
// returns ErrCancelled.
func Optimize(ctx context.Context, p Params) (Result, error) {
	rng := rand.New(rand.NewSource(p.Seed))

	cur := initialLayout(p.Envelope, p.Design)
	cur = clampAll(cur, p.Envelope, true, false)
	curScore := fastScore(cur, p.Envelope, p.Design, p.Zoning, p.SiteAreaSqFt)

	best := cloneLayout(cur)
	bestScore := curScore
	var alts []Alternative

	maxIter := p.MaxIterations
	if maxIter <= 0 {
		maxIter = 1
	}

	for k := 0; k < maxIter; k++ {
		if err := ctx.Err(); err != nil {
			return Result{}, errors.Wrap(ErrCancelled, err.Error())
		}

		temp := tStart * math.Pow(tEnd/tStart, float64(k)/float64(maxIter))

		cand := mutate(cur, rng, p.Envelope, p.Design)
		cand = clampAll(cand, p.Envelope, true, false)
		candScore := fastScore(cand, p.Envelope, p.Design, p.Zoning, p.SiteAreaSqFt)

		delta := candScore - curScore
		if delta > 0 || rng.Float64() < math.Exp(delta/temp) {
			cur = cand
			curScore = candScore
			if curScore > bestScore {
				best = cloneLayout(cur)
				bestScore = curScore
				alts = updateAlternatives(alts, best, bestScore)
			}
		}

		if p.Progress != nil && k%50 == 0 {
			p.Progress(k, bestScore)
		}
	}
	if p.Progress != nil {
		p.Progress(maxIter, bestScore)
	}

	return finalize(best, bestScore, alts, p), nil
}

// promotedCandidate is one layout run through the full scoring path.
type promotedCandidate struct {
	buildings []model.BuildingSpec
	score     float64
	metrics   model.Metrics
	pf        model.ProFormaResult
	ps        model.ParkingSolution
}

// finalize promotes best plus up to three distinct alternatives through
// the full scoring path (spec.md §4.9) and returns the highest-scoring
// one as the winner, alongside the original fast-path alternatives list.
func finalize(best []model.BuildingSpec, bestScore float64, alts []Alternative, p Params) Result {
	promote := func(layout []model.BuildingSpec) promotedCandidate {
		final := clampAll(layout, p.Envelope, false, true)
		score, metrics, pf, ps := fullScore(final, p.Envelope, p.Design, p.Zoning, p.Market, p.SiteAreaSqFt, p.LandCost)
		return promotedCandidate{buildings: final, score: score, metrics: metrics, pf: pf, ps: ps}
	}

	candidates := []promotedCandidate{promote(best)}
	for _, a := range alts {
		if len(candidates) > 3 {
			break
		}
		if math.Abs(a.Score-bestScore) < 0.01 {
			continue
		}
		candidates = append(candidates, promote(a.Buildings))
	}

	winner := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > winner.score {
			winner = c
		}
	}

	return Result{
		Buildings:    winner.buildings,
		Metrics:      winner.metrics,
		ProForma:     winner.pf,
		Parking:      winner.ps,
		Alternatives: alts,
	}
}

func cloneLayout(layout []model.BuildingSpec) []model.BuildingSpec {
	out := make([]model.BuildingSpec, len(layout))
	for i, b := range layout {
		out[i] = b.Clone()
	}
	return out
}

func clampAll(layout []model.BuildingSpec, envelope orb.Polygon, skipOverlap, full bool) []model.BuildingSpec {
	out := make([]model.BuildingSpec, len(layout))
	others := make([]orb.Polygon, 0, len(layout))
	for i, b := range layout {
		clamped := clamp.Clamp(b, envelope, others, skipOverlap, full)
		out[i] = clamped
		others = append(others, footprint.FromSpec(clamped))
	}
	return out
}

// initialLayout places design.NumBuildings buildings evenly spaced
// along the envelope's longest edge (at fractions (i+0.5)/n), each
// moved 20 m from the edge toward the envelope bbox centre.
func initialLayout(envelope orb.Polygon, design model.DesignConfig) []model.BuildingSpec {
	outer := envelope[0]
	var a, b orb.Point
	bestLen := -1.0
	for i := 0; i < len(outer)-1; i++ {
		l := geom.Distance(outer[i], outer[i+1])
		if l > bestLen {
			bestLen = l
			a, b = outer[i], outer[i+1]
		}
	}

	n := design.NumBuildings
	if n < 1 {
		n = 1
	}
	typ := design.BuildingTypology
	if typ == "" {
		typ = model.Bar
	}

	centre := geom.BoundCentre(geom.PolygonBbox(envelope))
	dx, dy := b[0]-a[0], b[1]-a[1]
	length := math.Hypot(dx, dy)
	ux, uy := 1.0, 0.0
	if length > 1e-9 {
		ux, uy = dx/length, dy/length
	}
	rotation := math.Atan2(uy, ux)

	buildings := make([]model.BuildingSpec, n)
	for i := 0; i < n; i++ {
		t := (float64(i) + 0.5) / float64(n)
		along := orb.Point{a[0] + dx*t, a[1] + dy*t}
		// nudge inward from the edge toward the envelope centre
		toCentre := orb.Point{centre[0] - along[0], centre[1] - along[1]}
		cl := math.Hypot(toCentre[0], toCentre[1])
		inset := 20.0
		if cl > 1e-9 {
			along = orb.Point{
				along[0] + toCentre[0]/cl*inset,
				along[1] + toCentre[1]/cl*inset,
			}
		}
		buildings[i] = model.BuildingSpec{
			ID:          idFor(i),
			Type:        typ,
			Anchor:      along,
			RotationRad: rotation,
			Floors:      4,
		}
	}
	return buildings
}

func idFor(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if i < len(letters) {
		return "bldg-" + string(letters[i])
	}
	return "bldg-" + string(rune('a'+i%26)) + string(rune('0'+i/26))
}

// mutate applies one of spec.md §4.9's five move types, chosen by a
// single uniform draw; locked fields are left untouched (a mutation
// that targets a locked field returns the building unchanged).
func mutate(layout []model.BuildingSpec, rng *rand.Rand, envelope orb.Polygon, design model.DesignConfig) []model.BuildingSpec {
	out := cloneLayout(layout)
	if len(out) == 0 {
		return out
	}
	r := rng.Float64()
	switch {
	case r < 0.35:
		mutateMove(out, rng)
	case r < 0.60:
		mutateResize(out, rng)
	case r < 0.80:
		mutateRotate(out, rng)
	case r < 0.90 && len(out) < maxBuildings(design):
		out = mutateAdd(out, rng, envelope, design)
	case r >= 0.90 && len(out) > 1:
		out = mutateRemove(out, rng)
	default:
		mutateMove(out, rng)
	}
	return out
}

func maxBuildings(design model.DesignConfig) int {
	if design.NumBuildings < 1 {
		return 1
	}
	return design.NumBuildings
}

func mutateMove(layout []model.BuildingSpec, rng *rand.Rand) {
	idx := rng.Intn(len(layout))
	b := &layout[idx]
	if b.Locked.Position {
		return
	}
	magnitude := moveMinM + rng.Float64()*(moveMaxM-moveMinM)
	angle := rng.Float64() * 2 * math.Pi
	b.Anchor = orb.Point{
		b.Anchor[0] + math.Cos(angle)*magnitude,
		b.Anchor[1] + math.Sin(angle)*magnitude,
	}
}

func mutateResize(layout []model.BuildingSpec, rng *rand.Rand) {
	idx := rng.Intn(len(layout))
	b := &layout[idx]
	if b.Locked.Dimensions {
		return
	}
	b.WidthM = math.Max(resizeFloorM, b.WidthM+(rng.Float64()*2-1)*resizeJitterM)
	b.DepthM = math.Max(resizeFloorM, b.DepthM+(rng.Float64()*2-1)*resizeJitterM)
}

func mutateRotate(layout []model.BuildingSpec, rng *rand.Rand) {
	idx := rng.Intn(len(layout))
	b := &layout[idx]
	if b.Locked.Rotation {
		return
	}
	b.RotationRad += (rng.Float64()*2 - 1) * rotateJitterRad
}

func mutateAdd(layout []model.BuildingSpec, rng *rand.Rand, envelope orb.Polygon, design model.DesignConfig) []model.BuildingSpec {
	centre := geom.BoundCentre(geom.PolygonBbox(envelope))
	typ := design.BuildingTypology
	if typ == "" {
		typ = model.Bar
	}
	newBuilding := model.BuildingSpec{
		ID:   nextID(layout),
		Type: typ,
		Anchor: orb.Point{
			centre[0] + (rng.Float64()*2-1)*addJitterM,
			centre[1] + (rng.Float64()*2-1)*addJitterM,
		},
		Floors: 4,
	}
	return append(layout, newBuilding)
}

func mutateRemove(layout []model.BuildingSpec, rng *rand.Rand) []model.BuildingSpec {
	idx := rng.Intn(len(layout))
	return append(layout[:idx:idx], layout[idx+1:]...)
}

func nextID(layout []model.BuildingSpec) string {
	used := make(map[string]bool, len(layout))
	for _, b := range layout {
		used[b.ID] = true
	}
	for i := 0; ; i++ {
		id := idFor(i)
		if !used[id] {
			return id
		}
	}
}

// updateAlternatives keeps up to 4 distinct layouts (scores at least
// 0.01 apart), highest score first.
func updateAlternatives(alts []Alternative, layout []model.BuildingSpec, score float64) []Alternative {
	for _, a := range alts {
		if math.Abs(a.Score-score) < 0.01 {
			return alts
		}
	}
	alts = append(alts, Alternative{Buildings: cloneLayout(layout), Score: score})
	for i := 1; i < len(alts); i++ {
		j := i
		for j > 0 && alts[j-1].Score < alts[j].Score {
			alts[j-1], alts[j] = alts[j], alts[j-1]
			j--
		}
	}
	if len(alts) > 4 {
		alts = alts[:4]
	}
	return alts
}

// subScoreValues holds the seven spec.md §4.9 sub-scores, each already
// clamped to [0,1], ready to combine into a single [0,1] score.
type subScoreValues struct {
	unitCount          float64
	parkingCompliance  float64
	farUtilization     float64
	coverageCompliance float64
	openSpace          float64
	noViolations       float64
	yieldProxy         float64
}

// combineSubScores applies the fixed weights from the §4.9 table. Since
// every sub-score lies in [0,1] and the weights sum to 1, the result is
// always in [0,1] (property P9).
func combineSubScores(s subScoreValues) float64 {
	w := defaultWeights
	return s.unitCount*w.unitCount +
		s.parkingCompliance*w.parkingCompliance +
		s.farUtilization*w.farUtilization +
		s.coverageCompliance*w.coverageCompliance +
		s.openSpace*w.openSpace +
		s.noViolations*w.noViolations +
		s.yieldProxy*w.yieldProxy
}

// sharedSubScores computes the five sub-scores that are identical
// between the fast and full paths; only yieldProxy differs.
func sharedSubScores(units int, siteAreaSqFt, far, maxFar, coveragePct, maxCoveragePct, openFraction float64, stallsProvided, stallsRequired int) (unitCount, parkingCompliance, farUtilization, coverageCompliance, openSpace float64) {
	maxReasonableUnits := math.Max(1, math.Floor(siteAreaSqFt*3*unitmix.NetLeasableFraction/unitmix.AvgUnitSqFt))
	unitCount = math.Min(1, float64(units)/maxReasonableUnits)

	parkingCompliance = 1.0
	if stallsRequired > 0 {
		r := float64(stallsProvided) / float64(stallsRequired)
		switch {
		case r >= 1:
			parkingCompliance = 1
		case r >= 0.5:
			parkingCompliance = (r - 0.5) / 0.5
		default:
			parkingCompliance = 0
		}
	}

	farUtilization = 0.0
	if maxFar > 0 && far <= maxFar {
		farUtilization = far / maxFar
	}

	coverageCompliance = 1.0
	switch {
	case maxCoveragePct <= 0:
		if coveragePct > 0 {
			coverageCompliance = 0
		}
	case coveragePct > maxCoveragePct:
		coverageCompliance = math.Max(0, 1-(coveragePct-maxCoveragePct)/maxCoveragePct)
	}

	openSpace = math.Max(0, math.Min(1, 2*openFraction))
	return
}

func hasErrorViolation(violations []model.FeasibilityViolation) bool {
	for _, v := range violations {
		if v.Severity == model.SeverityError {
			return true
		}
	}
	return false
}

func openFraction(footprintSqFt float64, ps model.ParkingSolution, siteAreaSqFt float64) float64 {
	parkingAreaSqFt := geom.MultiPolygonArea(ps.Bays)*geom.SqMToSqFt +
		geom.MultiPolygonArea(ps.Aisles)*geom.SqMToSqFt +
		geom.MultiPolygonArea(ps.Circulation)*geom.SqMToSqFt
	return 1 - (footprintSqFt+parkingAreaSqFt)/math.Max(1, siteAreaSqFt)
}

// fastScore is the inner-loop objective described in spec.md §4.9: build
// footprints and a default unit mix, solve parking against a capped
// stall count, check feasibility, then combine the seven weighted
// sub-scores into a single value in [0,1].
func fastScore(layout []model.BuildingSpec, envelope orb.Polygon, design model.DesignConfig, zoning model.ZoningLimits, siteAreaSqFt float64) float64 {
	footprints := make([]orb.Polygon, len(layout))
	footprintSqFt := 0.0
	var mix []model.UnitMixEntry
	for i, b := range layout {
		fp := footprint.FromSpec(b)
		footprints[i] = fp
		areaSqFt := geom.PolygonArea(fp) * geom.SqMToSqFt
		footprintSqFt += areaSqFt
		buildingGFA := areaSqFt * float64(footprint.EffectiveFloors(b))
		if len(b.UnitMix) > 0 {
			mix = append(mix, b.UnitMix...)
		} else {
			mix = append(mix, unitmix.Default(buildingGFA)...)
		}
	}
	estUnits := unitmix.TotalUnits(mix)

	parkingSpec := design.Parking
	if parkingSpec.TargetRatio > 0 {
		parkingSpec.MaxStalls = int(math.Ceil(float64(estUnits) * parkingSpec.TargetRatio * 1.1))
	}
	ps := parking.Solve(envelope, footprints, parkingSpec)

	metrics := feasibility.Evaluate(feasibility.Input{
		Envelope:     envelope,
		SiteAreaSqFt: siteAreaSqFt,
		Buildings:    layout,
		Parking:      ps,
		Zoning:       zoning,
		TargetRatio:  design.Parking.TargetRatio,
	})

	unitCount, parkingCompliance, farUtilization, coverageCompliance, openSp :=
		sharedSubScores(metrics.AchievedUnits, siteAreaSqFt, metrics.FAR, zoning.MaxFar, metrics.CoveragePct, zoning.MaxCoveragePct,
			openFraction(footprintSqFt, ps, siteAreaSqFt), metrics.StallsProvided, metrics.StallsRequired)

	noViolations := 0.0
	if !hasErrorViolation(metrics.Violations) {
		noViolations = 1
	}

	return combineSubScores(subScoreValues{
		unitCount:          unitCount,
		parkingCompliance:  parkingCompliance,
		farUtilization:     farUtilization,
		coverageCompliance: coverageCompliance,
		openSpace:          openSp,
		noViolations:       noViolations,
		yieldProxy:         0.5*farUtilization + 0.5*unitCount,
	})
}

// fullEvaluate runs the finance-aware scoring path: real parking solve,
// full feasibility check, and pro forma — used only at finalization.
func fullEvaluate(layout []model.BuildingSpec, envelope orb.Polygon, design model.DesignConfig, zoning model.ZoningLimits, market model.MarketAssumptions, siteAreaSqFt, landCost float64) (model.Metrics, model.ProFormaResult, model.ParkingSolution) {
	var footprints []orb.Polygon
	gfaSqFt := 0.0
	var mix []model.UnitMixEntry
	for _, b := range layout {
		fp := footprint.FromSpec(b)
		footprints = append(footprints, fp)
		area := geom.PolygonArea(fp) * geom.SqMToSqFt * float64(footprint.EffectiveFloors(b))
		gfaSqFt += area
		if len(b.UnitMix) > 0 {
			mix = append(mix, b.UnitMix...)
		} else {
			mix = append(mix, unitmix.Default(area)...)
		}
	}

	ps := parking.Solve(envelope, footprints, design.Parking)

	metrics := feasibility.Evaluate(feasibility.Input{
		Envelope:     envelope,
		SiteAreaSqFt: siteAreaSqFt,
		Buildings:    layout,
		Parking:      ps,
		Zoning:       zoning,
		TargetRatio:  design.Parking.TargetRatio,
	})

	surfaceStalls := ps.StallsAchieved
	pf := proforma.Compute(model.ProFormaInputs{
		TotalGFASqFt: gfaSqFt,
		SiteAreaSqFt: siteAreaSqFt,
		UnitMix:      mix,
		SurfaceStalls: surfaceStalls,
		LandCost:     landCost,
		Market:       market,
	})

	return metrics, pf, ps
}

// fullScore mirrors fastScore's seven sub-scores but substitutes a real
// yieldOnCost (from the §4.8 pro forma) for the fast path's yieldProxy
// proxy. Used only at finalization, for the best plus up to three
// distinct alternatives (spec.md §4.9).
func fullScore(layout []model.BuildingSpec, envelope orb.Polygon, design model.DesignConfig, zoning model.ZoningLimits, market model.MarketAssumptions, siteAreaSqFt, landCost float64) (float64, model.Metrics, model.ProFormaResult, model.ParkingSolution) {
	metrics, pf, ps := fullEvaluate(layout, envelope, design, zoning, market, siteAreaSqFt, landCost)

	footprintSqFt := 0.0
	for _, b := range layout {
		footprintSqFt += geom.PolygonArea(footprint.FromSpec(b)) * geom.SqMToSqFt
	}

	unitCount, parkingCompliance, farUtilization, coverageCompliance, openSp :=
		sharedSubScores(metrics.AchievedUnits, siteAreaSqFt, metrics.FAR, zoning.MaxFar, metrics.CoveragePct, zoning.MaxCoveragePct,
			openFraction(footprintSqFt, ps, siteAreaSqFt), metrics.StallsProvided, metrics.StallsRequired)

	noViolations := 0.0
	if !hasErrorViolation(metrics.Violations) {
		noViolations = 1
	}

	score := combineSubScores(subScoreValues{
		unitCount:          unitCount,
		parkingCompliance:  parkingCompliance,
		farUtilization:     farUtilization,
		coverageCompliance: coverageCompliance,
		openSpace:          openSp,
		noViolations:       noViolations,
		yieldProxy:         math.Min(1, math.Max(0, pf.YieldOnCost/0.08)),
	})
	return score, metrics, pf, ps
}
