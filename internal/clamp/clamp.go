// Package clamp implements spec component C5: move/shrink a building
// footprint to fit inside the envelope and avoid overlapping other
// buildings, via a fixed ladder of strategies, first success wins.
package clamp

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/meridian-civic/siteplan/internal/footprint"
	"github.com/meridian-civic/siteplan/internal/geom"
	"github.com/meridian-civic/siteplan/internal/model"
)

// maxGridRings bounds the step-4 grid search so a pathological envelope
// can't make the clamp spin forever; past this many concentric rings we
// fall through to the shrink strategy instead.
const maxGridRings = 60

// minDimM is the floor applied to width/depth while shrinking.
const minDimM = 8.0

// lastResortDimM is the final-fallback square's side length.
const lastResortDimM = 10.0

// Feasible reports whether spec's footprint satisfies spec.md §4.5(a)
// and, unless skipOverlap, §4.5(b): every vertex inside the envelope,
// and (in full mode) empty intersection with every other footprint
// beyond the 0.5 m² tolerance.
func Feasible(spec model.BuildingSpec, envelope orb.Polygon, others []orb.Polygon, skipOverlap bool) bool {
	fp := footprint.FromSpec(spec)
	if !geom.PolygonContainsPoly(envelope, fp) {
		return false
	}
	if skipOverlap {
		return true
	}
	return !overlapsAny(fp, others)
}

func overlapsAny(fp orb.Polygon, others []orb.Polygon) bool {
	for _, other := range others {
		inter := geom.Intersection(geom.ToMultiPolygon(fp), geom.ToMultiPolygon(other))
		if geom.MultiPolygonArea(inter) > geom.OverlapToleranceM2 {
			return true
		}
	}
	return false
}

// Clamp runs the strategy ladder described in spec.md §4.5. skipOverlap
// selects the fast inner-SA-loop mode (bbox/containment only, no
// boolean overlap test); full additionally runs the step-4 grid search.
// Real overlap is tested only when skipOverlap is false, whatever full is.
func Clamp(spec model.BuildingSpec, envelope orb.Polygon, others []orb.Polygon, skipOverlap, full bool) model.BuildingSpec {
	if Feasible(spec, envelope, others, skipOverlap) {
		return spec
	}

	centre := geom.BoundCentre(geom.PolygonBbox(envelope))
	minDim := math.Min(spec.WidthM, spec.DepthM)
	if minDim <= 0 {
		minDim = minDimM
	}

	// 2. move anchor to envelope bbox centre
	if !spec.Locked.Position {
		cand := spec
		cand.Anchor = centre
		if Feasible(cand, envelope, others, skipOverlap) {
			return cand
		}
	}

	// 3. nudge from original anchor toward envelope centre
	if !spec.Locked.Position {
		step := 0.1 * minDim
		dist := geom.Distance(spec.Anchor, centre)
		if dist > 1e-9 && step > 1e-9 {
			for d := step; d <= dist; d += step {
				t := d / dist
				cand := spec
				cand.Anchor = lerp(spec.Anchor, centre, t)
				if Feasible(cand, envelope, others, skipOverlap) {
					return cand
				}
			}
		}
	}

	// 4. full mode only: concentric square-ring grid search around the
	// original anchor, spiralling outward (mirrors the teacher's
	// spiral-inward building placement sweep, run in reverse).
	if full && !spec.Locked.Position {
		step := math.Max(0.5, 0.1*minDim)
		orig := spec.Anchor
		for ring := 1; ring <= maxGridRings; ring++ {
			half := float64(ring) * step
			for dx := -half; dx <= half+1e-9; dx += step {
				for _, dy := range [2]float64{-half, half} {
					cand := spec
					cand.Anchor = orb.Point{orig[0] + dx, orig[1] + dy}
					if Feasible(cand, envelope, others, skipOverlap) {
						return cand
					}
				}
			}
			for dy := -half + step; dy <= half-step+1e-9; dy += step {
				for _, dx := range [2]float64{-half, half} {
					cand := spec
					cand.Anchor = orb.Point{orig[0] + dx, orig[1] + dy}
					if Feasible(cand, envelope, others, skipOverlap) {
						return cand
					}
				}
			}
		}
	}

	// 5. shrink at envelope centre
	if !spec.Locked.Dimensions {
		for _, scale := range []float64{0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3} {
			cand := spec
			if !spec.Locked.Position {
				cand.Anchor = centre
			}
			cand.WidthM = math.Max(minDimM, spec.WidthM*scale)
			cand.DepthM = math.Max(minDimM, spec.DepthM*scale)
			if spec.WingWidth > 0 {
				cand.WingWidth = spec.WingWidth * scale
			}
			if spec.WingDepth > 0 {
				cand.WingDepth = spec.WingDepth * scale
			}
			if spec.CourtyardWidth > 0 {
				cand.CourtyardWidth = spec.CourtyardWidth * scale
			}
			if spec.CourtyardDepth > 0 {
				cand.CourtyardDepth = spec.CourtyardDepth * scale
			}
			if Feasible(cand, envelope, others, skipOverlap) {
				return cand
			}
		}
	}

	// 6. last resort: a fixed 10x10m square at the envelope centre,
	// rotation zero, locked fields still respected.
	cand := spec
	if !spec.Locked.Position {
		cand.Anchor = centre
	}
	if !spec.Locked.Dimensions {
		cand.WidthM = lastResortDimM
		cand.DepthM = lastResortDimM
		cand.WingWidth, cand.WingDepth = 0, 0
		cand.CourtyardWidth, cand.CourtyardDepth = 0, 0
	}
	if !spec.Locked.Rotation {
		cand.RotationRad = 0
	}
	return cand
}

func lerp(a, b orb.Point, t float64) orb.Point {
	return orb.Point{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t}
}
