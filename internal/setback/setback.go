// Package setback implements spec component C3: classify parcel edges
// against roads, then build the buildable envelope by shifting each
// edge-line inward by its class-specific setback and re-intersecting,
// rather than by a uniform buffer (spec.md §9 Design Notes: the
// axis-aligned offset primitive in package geom is insufficient for
// real parcels).
package setback

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"

	"github.com/meridian-civic/siteplan/internal/geom"
)

// EdgeClass is the classification of a parcel edge relative to roads.
type EdgeClass int

const (
	Side EdgeClass = iota
	Front
	Rear
)

func (c EdgeClass) String() string {
	switch c {
	case Front:
		return "front"
	case Rear:
		return "rear"
	default:
		return "side"
	}
}

// frontRoadThresholdM is 200 ft in metres: an edge closer than this to
// any road is eligible to be classed FRONT.
const frontRoadThresholdM = 60.96

// collapseAreaM2 is the minimum acceptable envelope area.
const collapseAreaM2 = 1.0

// Feet is a per-class setback specification, expressed in feet on the
// config surface per spec.md §6 (the boundary layer converts to metres).
type Feet struct {
	FrontFt float64
	SideFt  float64
	RearFt  float64
}

func (f Feet) metres() (front, side, rear float64) {
	return f.FrontFt * geom.FeetToMetres, f.SideFt * geom.FeetToMetres, f.RearFt * geom.FeetToMetres
}

// Edge carries the classification and geometry of one outer-ring edge.
type Edge struct {
	Index    int
	A, B     orb.Point
	Mid      orb.Point
	Normal   orb.Point // outward unit normal
	Class    EdgeClass
	RoadName string
	RoadDist float64
}

// Envelope is the buildable region plus the classified edges it was
// derived from.
type Envelope struct {
	Polygon orb.Polygon
	Edges   []Edge
	AreaM2  float64
}

// ErrCollapsed is returned when the setback solver cannot produce an
// envelope of at least 1 m², or when the parcel has fewer than 3 usable
// edges.
type ErrCollapsed struct {
	Reason string
}

func (e *ErrCollapsed) Error() string {
	return fmt.Sprintf("collapsed envelope: %s", e.Reason)
}

// ClassifyEdges implements spec.md §4.3's edge classification step in
// isolation, useful for callers (and tests) that only want edge roles
// without building the envelope.
func ClassifyEdges(parcel orb.Polygon, roads []geom.NamedRoad) ([]Edge, error) {
	if len(parcel) == 0 || len(parcel[0]) < 4 {
		return nil, &ErrCollapsed{Reason: "parcel has fewer than 3 edges"}
	}
	outer := geom.CloseRing(geom.EnsureCCW(parcel[0]))
	n := len(outer) - 1
	if n < 3 {
		return nil, &ErrCollapsed{Reason: "parcel has fewer than 3 edges"}
	}

	edges := make([]Edge, n)
	for i := 0; i < n; i++ {
		a, b := outer[i], outer[i+1]
		edges[i] = Edge{
			Index:  i,
			A:      a,
			B:      b,
			Mid:    geom.Midpoint(a, b),
			Normal: geom.EdgeNormalOutward(a, b),
		}
	}

	// find the closest edge to any road, within threshold
	for i := range edges {
		edges[i].RoadDist = math.Inf(1)
		for _, road := range roads {
			d := geom.PointToPolylineDistance(edges[i].Mid, road.Line)
			if d < edges[i].RoadDist {
				edges[i].RoadDist = d
				edges[i].RoadName = road.Name
			}
		}
	}

	bestIdx := -1
	bestDist := math.Inf(1)
	for i := range edges {
		if edges[i].RoadDist < frontRoadThresholdM && edges[i].RoadDist < bestDist {
			bestDist = edges[i].RoadDist
			bestIdx = i
		}
	}

	if bestIdx == -1 {
		// no road within threshold: longest edge is FRONT
		longest := -1.0
		for i := range edges {
			l := geom.Distance(edges[i].A, edges[i].B)
			if l > longest {
				longest = l
				bestIdx = i
			}
			edges[i].RoadName = "" // not treated as a road-adjacent front
		}
	}
	edges[bestIdx].Class = Front
	frontNormal := edges[bestIdx].Normal
	frontMid := edges[bestIdx].Mid

	// rear: maximize dist(mid_i, mid_front) - 1000*dot(n_i, n_front)
	rearIdx := -1
	rearScore := math.Inf(-1)
	for i := range edges {
		if i == bestIdx {
			continue
		}
		score := geom.Distance(edges[i].Mid, frontMid) - 1000*geom.DotPoint(edges[i].Normal, frontNormal)
		if score > rearScore {
			rearScore = score
			rearIdx = i
		}
	}
	if rearIdx >= 0 {
		edges[rearIdx].Class = Rear
	}

	return edges, nil
}

// ComputeEnvelope implements spec.md §4.3 in full: classify edges,
// shift each edge-line inward by its class setback, intersect
// consecutive shifted lines for new vertices, then trim the result
// against the original parcel and keep the largest piece.
func ComputeEnvelope(parcel orb.Polygon, roads []geom.NamedRoad, setbacks Feet) (*Envelope, error) {
	edges, err := ClassifyEdges(parcel, roads)
	if err != nil {
		return nil, err
	}

	frontM, sideM, rearM := setbacks.metres()
	anySetback := frontM > 0 || sideM > 0 || rearM > 0

	setbackFor := func(c EdgeClass) float64 {
		switch c {
		case Front:
			return frontM
		case Rear:
			return rearM
		default:
			return sideM
		}
	}

	n := len(edges)
	shiftedA := make([]orb.Point, n)
	shiftedB := make([]orb.Point, n)
	for i, e := range edges {
		setback := setbackFor(e.Class)
		// inward normal is the negation of the outward normal
		dx, dy := -e.Normal[0]*setback, -e.Normal[1]*setback
		shiftedA[i] = geom.TranslatePoint(e.A, dx, dy)
		shiftedB[i] = geom.TranslatePoint(e.B, dx, dy)
	}

	newRing := make(orb.Ring, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		pt, ok := geom.LineIntersection(shiftedA[i], shiftedB[i], shiftedA[j], shiftedB[j])
		if !ok {
			pt = geom.Midpoint(shiftedB[i], shiftedA[j])
		}
		newRing[i] = pt
	}
	newRing = geom.CloseRing(geom.EnsureCCW(newRing))
	candidate := orb.Polygon{newRing}

	original := geom.ToMultiPolygon(geom.NormalizePolygon(parcel))
	trimmed := geom.Intersection(geom.ToMultiPolygon(candidate), original)
	best := geom.NormalizeToPolygon(trimmed)
	bestArea := geom.PolygonArea(best)

	originalArea := geom.PolygonArea(geom.NormalizePolygon(parcel))
	if bestArea < collapseAreaM2 || (anySetback && bestArea >= originalArea) {
		return nil, &ErrCollapsed{Reason: "setbacks consumed the entire parcel (or produced no shrinkage)"}
	}

	return &Envelope{Polygon: best, Edges: edges, AreaM2: bestArea}, nil
}

// SortEdgesByIndex is a small convenience used by tests / callers that
// want edges back in ring order after classification touches them.
func SortEdgesByIndex(edges []Edge) {
	sort.Slice(edges, func(a, b int) bool { return edges[a].Index < edges[b].Index })
}
