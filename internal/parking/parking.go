// Package parking implements spec component C6: pack parking stalls
// into the leftover envelope area around the buildings, and connect
// them with a circulation spine back to an access point at the
// midpoint of the envelope's longest edge.
package parking

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/meridian-civic/siteplan/internal/geom"
	"github.com/meridian-civic/siteplan/internal/model"
)

// MainDriveWidthM is the width of the circulation spine's main drive
// (24 ft, spec.md §4.6).
const MainDriveWidthM = 7.3152

// ConnectionThresholdM is how close an aisle's bbox centre must be to
// the main drive's bbox centre (geom.MinPolygonDistance) before it's
// considered already connected, rather than needing its own connector
// segment (5 ft).
const ConnectionThresholdM = 1.524

// MaxOutputPolys caps how many distinct bay/aisle polygons a solution
// may carry; beyond this, only the largest are kept and the rest are
// dropped. Polygons are not merged.
const MaxOutputPolys = 50

// MinPolyAreaM2 discards slivers left over from strip packing.
const MinPolyAreaM2 = 2.0

var defaultTrialAnglesDeg = []float64{0, 30, 45, 60, 90, 120, 135, 150}

// Solve runs the trial-angle sweep and horizontal strip packer, then
// attaches a circulation spine, and returns the full parking solution
// for one envelope (spec.md §4.6).
func Solve(envelope orb.Polygon, buildings []orb.Polygon, spec model.ParkingSpec) model.ParkingSolution {
	clearance := spec.ClearanceM
	if clearance <= 0 {
		clearance = math.Max(spec.StallDFt, spec.StallWFt) * geom.FeetToMetres
	}

	candidates := clearRegion(envelope, buildings, clearance)
	if geom.MultiPolygonArea(candidates) < MinPolyAreaM2 {
		return model.ParkingSolution{}
	}

	angles := spec.TrialAnglesDeg
	if len(angles) == 0 {
		angles = defaultTrialAnglesDeg
	}

	stallW := spec.StallWFt * geom.FeetToMetres
	stallD := spec.StallDFt * geom.FeetToMetres
	aisleW := spec.AisleWFt * geom.FeetToMetres

	var best packResult
	bestScore := math.Inf(-1)
	for _, angleDeg := range angles {
		res := packAtAngle(candidates, angleDeg, stallW, stallD, aisleW)
		score := float64(res.stalls) - 2*float64(res.islandCount) - 0.001*res.wastedArea
		if score > bestScore {
			bestScore = score
			best = res
		}
	}

	if spec.MaxStalls > 0 && best.stalls > spec.MaxStalls {
		best = trimToCap(best, spec.MaxStalls)
	}

	accessPoint, mainDrive := circulationSpine(envelope)
	connectors, connected := connectAisles(best.aisles, mainDrive, envelope)

	circulation := append(orb.MultiPolygon{}, mainDrive)
	circulation = append(circulation, connectors...)

	bays := capOutputPolys(best.bays)
	aisles := capOutputPolys(best.aisles)

	return model.ParkingSolution{
		Bays:              bays,
		Aisles:            aisles,
		Circulation:       circulation,
		StallsAchieved:    best.stalls,
		ChosenAngleDeg:    best.angleDeg,
		AccessPoint:       accessPoint,
		IsFullyConnected:  connected,
		CirculationAreaM2: geom.MultiPolygonArea(circulation),
	}
}

// clearRegion subtracts every building's clearance-expanded bbox from
// the envelope, using the axis-aligned offset spec.md §4.1 sanctions
// (a full Minkowski buffer is out of scope for this solver). Each
// subtraction may split a piece into several; every piece above
// MinPolyAreaM2 is kept as its own candidate rather than collapsing to
// the single largest one, so the trial-angle sweep packs every
// packable leftover region, not just the biggest.
func clearRegion(envelope orb.Polygon, buildings []orb.Polygon, clearance float64) orb.MultiPolygon {
	region := orb.MultiPolygon{envelope}
	for _, b := range buildings {
		expanded := geom.OffsetAxisAligned(geom.PolygonBbox(b), clearance)
		obstacle := geom.BoundToPolygon(expanded)
		region = geom.Difference(region, orb.MultiPolygon{obstacle})
	}
	return geom.FilterSlivers(region, MinPolyAreaM2)
}

type packResult struct {
	angleDeg    float64
	bays        orb.MultiPolygon
	aisles      orb.MultiPolygon
	stalls      int
	islandCount int
	wastedArea  float64
}

// packAtAngle rotates every candidate piece into a local frame where
// the trial angle is axis-aligned, lays down horizontal double-loaded
// strips (stall / aisle / stall) across the union bbox, intersecting
// each strip with every candidate piece in turn, and rotates the
// result back.
func packAtAngle(region orb.MultiPolygon, angleDeg, stallW, stallD, aisleW float64) packResult {
	rad := -angleDeg * math.Pi / 180
	local := geom.RotateMultiPolygon(region, orb.Point{0, 0}, rad)
	b := geom.MultiBbox(local)

	stripH := 2*stallD + aisleW
	var bays, aisles orb.MultiPolygon
	stalls := 0
	islands := 0
	totalArea := geom.MultiPolygonArea(local)
	usedArea := 0.0

	y := b.Min[1]
	for y+stripH <= b.Max[1]+1e-9 {
		rowBottom := orb.Polygon{{
			{b.Min[0], y}, {b.Max[0], y}, {b.Max[0], y + stallD}, {b.Min[0], y + stallD}, {b.Min[0], y},
		}}
		rowAisle := orb.Polygon{{
			{b.Min[0], y + stallD}, {b.Max[0], y + stallD}, {b.Max[0], y + stallD + aisleW}, {b.Min[0], y + stallD + aisleW}, {b.Min[0], y + stallD},
		}}
		rowTop := orb.Polygon{{
			{b.Min[0], y + stallD + aisleW}, {b.Max[0], y + stallD + aisleW}, {b.Max[0], y + stripH}, {b.Min[0], y + stripH}, {b.Min[0], y + stallD + aisleW},
		}}

		rowStalls := 0
		var rowAisles orb.MultiPolygon
		for _, piece := range local {
			bottomPiece := clipToRegion(rowBottom, piece)
			if geom.PolygonArea(bottomPiece) > 0 {
				n, rowBays := fillStalls(bottomPiece, stallW, stallD)
				rowStalls += n
				bays = append(bays, rowBays...)
			}
			topPiece := clipToRegion(rowTop, piece)
			if geom.PolygonArea(topPiece) > 0 {
				n, rowBays := fillStalls(topPiece, stallW, stallD)
				rowStalls += n
				bays = append(bays, rowBays...)
			}
			if aislePiece := clipToRegion(rowAisle, piece); geom.PolygonArea(aislePiece) > 0 {
				rowAisles = append(rowAisles, aislePiece)
			}
		}

		if rowStalls == 0 {
			islands++
		} else {
			stalls += rowStalls
			usedArea += float64(rowStalls) * stallW * stallD
			for _, a := range rowAisles {
				aisles = append(aisles, a)
				usedArea += geom.PolygonArea(a)
			}
		}
		y += stripH
	}

	// rotate results back to world space
	fwd := angleDeg * math.Pi / 180
	for i := range bays {
		bays[i] = geom.RotatePolygon(bays[i], orb.Point{0, 0}, fwd)
	}
	for i := range aisles {
		aisles[i] = geom.RotatePolygon(aisles[i], orb.Point{0, 0}, fwd)
	}

	return packResult{
		angleDeg:    angleDeg,
		bays:        bays,
		aisles:      aisles,
		stalls:      stalls,
		islandCount: islands,
		wastedArea:  math.Max(0, totalArea-usedArea),
	}
}

// fillStalls walks a horizontal strip (already clipped to one candidate
// piece) left to right placing stallW-wide stalls, keeping only those
// whose center still lies inside the clipped strip.
func fillStalls(strip orb.Polygon, stallW, stallD float64) (int, orb.MultiPolygon) {
	b := geom.PolygonBbox(strip)
	count := 0
	var bays orb.MultiPolygon
	x := b.Min[0]
	for x+stallW <= b.Max[0]+1e-9 {
		stall := orb.Polygon{{
			{x, b.Min[1]}, {x + stallW, b.Min[1]}, {x + stallW, b.Min[1] + stallD}, {x, b.Min[1] + stallD}, {x, b.Min[1]},
		}}
		centre := orb.Point{x + stallW/2, b.Min[1] + stallD/2}
		if geom.PointInPolygon(centre, strip) {
			bays = append(bays, stall)
			count++
		}
		x += stallW
	}
	return count, bays
}

func clipToRegion(strip, region orb.Polygon) orb.Polygon {
	inter := geom.Intersection(geom.ToMultiPolygon(strip), geom.ToMultiPolygon(region))
	return geom.NormalizeToPolygon(inter)
}

func trimToCap(r packResult, cap int) packResult {
	if len(r.bays) <= cap {
		return r
	}
	kept := r.bays[:cap]
	r.bays = kept
	r.stalls = cap
	return r
}

// circulationSpine picks the access point as the midpoint of the
// envelope's longest edge, and builds the main drive as a
// MainDriveWidthM-wide rectangle running from that point, along the
// inward normal, to the opposite side of the envelope bbox — clipped
// to the envelope, per spec.md §4.6 step 4.
func circulationSpine(envelope orb.Polygon) (orb.Point, orb.Polygon) {
	outer := envelope[0]
	var bestA, bestB orb.Point
	bestLen := -1.0
	for i := 0; i < len(outer)-1; i++ {
		l := geom.Distance(outer[i], outer[i+1])
		if l > bestLen {
			bestLen = l
			bestA, bestB = outer[i], outer[i+1]
		}
	}
	access := orb.Point{(bestA[0] + bestB[0]) / 2, (bestA[1] + bestB[1]) / 2}

	inward := geom.EdgeNormalOutward(bestB, bestA)
	eb := geom.PolygonBbox(envelope)
	reach := math.Hypot(geom.BoundWidth(eb), geom.BoundHeight(eb))
	far := orb.Point{access[0] + inward[0]*reach, access[1] + inward[1]*reach}

	drive := driveRectangle(access, far, MainDriveWidthM)
	drive = clipToEnvelope(drive, envelope)
	return access, drive
}

// clipToEnvelope intersects a rectangle with envelope and keeps the
// largest resulting piece, since a convex clip of a single rectangle
// against a (possibly concave) envelope yields at most one piece of
// any real size.
func clipToEnvelope(poly orb.Polygon, envelope orb.Polygon) orb.Polygon {
	inter := geom.Intersection(geom.ToMultiPolygon(poly), geom.ToMultiPolygon(envelope))
	if len(inter) == 0 {
		return poly
	}
	return geom.NormalizeToPolygon(inter)
}

// driveRectangle builds a width-wide rectangle whose centerline runs
// from a to b.
func driveRectangle(a, b orb.Point, width float64) orb.Polygon {
	dx, dy := b[0]-a[0], b[1]-a[1]
	length := math.Hypot(dx, dy)
	if length < 1e-9 {
		return orb.Polygon{{a, a, a, a, a}}
	}
	ux, uy := dx/length, dy/length
	nx, ny := -uy*width/2, ux*width/2
	return orb.Polygon{{
		{a[0] + nx, a[1] + ny},
		{b[0] + nx, b[1] + ny},
		{b[0] - nx, b[1] - ny},
		{a[0] - nx, a[1] - ny},
		{a[0] + nx, a[1] + ny},
	}}
}

// connectAisles adds a connector polygon, the same width as the main
// drive, from each aisle centroid to the drive's centroid whenever the
// aisle isn't already within ConnectionThresholdM, using the
// spec-sanctioned bbox-centroid distance approximation
// (geom.MinPolygonDistance) rather than true polygon-to-polygon
// distance. isFullyConnected reports whether every aisle was already
// within threshold before any connector was added.
func connectAisles(aisles orb.MultiPolygon, mainDrive orb.Polygon, envelope orb.Polygon) (orb.MultiPolygon, bool) {
	var connectors orb.MultiPolygon
	allConnected := true
	driveCentre := geom.BoundCentre(geom.PolygonBbox(mainDrive))
	for _, aisle := range aisles {
		d := geom.MinPolygonDistance(aisle, mainDrive)
		if d <= ConnectionThresholdM {
			continue
		}
		allConnected = false
		from := geom.BoundCentre(geom.PolygonBbox(aisle))
		connector := driveRectangle(from, driveCentre, MainDriveWidthM)
		connectors = append(connectors, clipToEnvelope(connector, envelope))
	}
	return connectors, allConnected
}

// capOutputPolys drops polygons below MinPolyAreaM2 and, if the
// remaining count still exceeds MaxOutputPolys, keeps only the largest
// MaxOutputPolys by area.
func capOutputPolys(polys orb.MultiPolygon) orb.MultiPolygon {
	var kept orb.MultiPolygon
	for _, p := range polys {
		if geom.PolygonArea(p) >= MinPolyAreaM2 {
			kept = append(kept, p)
		}
	}
	if len(kept) <= MaxOutputPolys {
		return kept
	}
	// simple selection: sort by area descending via insertion, then truncate
	areas := make([]float64, len(kept))
	for i, p := range kept {
		areas[i] = geom.PolygonArea(p)
	}
	for i := 1; i < len(kept); i++ {
		j := i
		for j > 0 && areas[j-1] < areas[j] {
			areas[j-1], areas[j] = areas[j], areas[j-1]
			kept[j-1], kept[j] = kept[j], kept[j-1]
			j--
		}
	}
	return kept[:MaxOutputPolys]
}
