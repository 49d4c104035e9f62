package geom

import (
	"github.com/ctessum/polyclip-go"
	"github.com/paulmach/orb"
)

// Union, Difference and Intersection all accept Polygon or MultiPolygon
// shaped inputs (already normalized to MultiPolygon by the caller) and
// return a MultiPolygon, preserving holes, per spec.md §4.1. Boolean
// operations on empty or degenerate inputs yield an empty MultiPolygon
// rather than raising an exception, matching spec.md §4.1's failure
// contract.
func Union(a, b orb.MultiPolygon) orb.MultiPolygon {
	return booleanOp(a, b, polyclip.UNION)
}

func Difference(a, b orb.MultiPolygon) orb.MultiPolygon {
	return booleanOp(a, b, polyclip.DIFFERENCE)
}

func Intersection(a, b orb.MultiPolygon) orb.MultiPolygon {
	return booleanOp(a, b, polyclip.INTERSECTION)
}

// booleanOp runs the requested op through polyclip-go's Vatti-algorithm
// clipper -- spec.md §9 calls out that a full Martinez-Rueda/Vatti
// implementation (or equivalent) is required for correctness on the
// union/difference/intersection boundary, rather than a naive bbox
// overlap test. It recovers from the clipper panicking on degenerate
// input (spec.md §7's NumericOverflow) and returns an empty result in
// that case; callers that need to know the op aborted use
// SafeBooleanOp below.
func booleanOp(a, b orb.MultiPolygon, op polyclip.Op) (result orb.MultiPolygon) {
	defer func() {
		if recover() != nil {
			result = orb.MultiPolygon{}
		}
	}()
	if len(a) == 0 && op != polyclip.UNION {
		return orb.MultiPolygon{}
	}
	subject := toClipPolygon(a)
	clip := toClipPolygon(b)
	if len(subject) == 0 && len(clip) == 0 {
		return orb.MultiPolygon{}
	}
	out := subject.Construct(op, clip)
	return fromClipPolygon(out)
}

// SafeBooleanOp exposes whether the clipper completed without
// recovering from a panic, so callers (scene assembly's greenspace
// synthesis) can drop to "no greenspace" rather than propagate an error.
func SafeBooleanOp(a, b orb.MultiPolygon, op polyclip.Op) (result orb.MultiPolygon, ok bool) {
	defer func() {
		if recover() != nil {
			result = orb.MultiPolygon{}
			ok = false
		}
	}()
	// booleanOp swallows clipper panics, so the clip runs here directly
	// for the deferred recover above to see them.
	if len(a) == 0 && op != polyclip.UNION {
		return orb.MultiPolygon{}, true
	}
	subject := toClipPolygon(a)
	clip := toClipPolygon(b)
	if len(subject) == 0 && len(clip) == 0 {
		return orb.MultiPolygon{}, true
	}
	return fromClipPolygon(subject.Construct(op, clip)), true
}

func toClipPolygon(mp orb.MultiPolygon) polyclip.Polygon {
	poly := polyclip.Polygon{}
	for _, p := range mp {
		for _, ring := range p {
			contour := polyclip.Contour{}
			n := len(ring)
			if n > 1 && ring[0] == ring[n-1] {
				n-- // polyclip contours are implicitly closed
			}
			for i := 0; i < n; i++ {
				contour.Add(polyclip.Point{X: ring[i][0], Y: ring[i][1]})
			}
			if len(contour) >= 3 {
				poly = append(poly, contour)
			}
		}
	}
	return poly
}

// fromClipPolygon regroups the clipper's flat contour list back into a
// MultiPolygon: CCW contours become outer rings, CW contours become
// holes assigned to whichever outer ring contains one of their points.
func fromClipPolygon(cp polyclip.Polygon) orb.MultiPolygon {
	outers := []orb.Ring{}
	holes := []orb.Ring{}
	for _, contour := range cp {
		ring := contourToRing(contour)
		if len(ring) < 4 {
			continue
		}
		if SignedArea(ring) >= 0 {
			outers = append(outers, ring)
		} else {
			holes = append(holes, ring)
		}
	}

	polys := make([]orb.Polygon, len(outers))
	for i, o := range outers {
		polys[i] = orb.Polygon{o}
	}
	for _, h := range holes {
		if len(h) == 0 {
			continue
		}
		owner := -1
		ownerArea := -1.0
		for i, o := range outers {
			if PointInRing(h[0], o) {
				a := Area(o)
				if owner == -1 || a < ownerArea {
					owner = i
					ownerArea = a
				}
			}
		}
		if owner >= 0 {
			polys[owner] = append(polys[owner], h)
		}
		// a hole with no enclosing outer ring is a clipper artifact of a
		// degenerate input; dropping it matches the "no exceptions for
		// empty geometry" failure contract.
	}

	mp := make(orb.MultiPolygon, 0, len(polys))
	for _, p := range polys {
		if PolygonArea(p) > 0 {
			mp = append(mp, NormalizePolygon(p))
		}
	}
	return mp
}

func contourToRing(c polyclip.Contour) orb.Ring {
	if len(c) == 0 {
		return nil
	}
	ring := make(orb.Ring, 0, len(c)+1)
	for _, pt := range c {
		ring = append(ring, orb.Point{pt.X, pt.Y})
	}
	return CloseRing(ring)
}
