// Package footprint implements spec component C4: turn a parametric
// building spec into a polygon for each of the five typologies. Each
// typology is built in a local frame centred on the anchor, then
// rotated and translated into place — geometry is always derived on
// demand from the spec, never stored, so the optimizer's mutation
// space stays low-dimensional (spec.md §9 Design Notes).
package footprint

import (
	"github.com/paulmach/orb"

	"github.com/meridian-civic/siteplan/internal/geom"
	"github.com/meridian-civic/siteplan/internal/model"
)

// Typology aliases model.Typology so callers that only need footprint
// generation don't have to import model directly.
type Typology = model.Typology

const (
	Bar           = model.Bar
	LShape        = model.LShape
	Podium        = model.Podium
	UShape        = model.UShape
	CourtyardWrap = model.CourtyardWrap
)

// Dims holds every dimension a typology might need; fields not
// applicable to a given typology are ignored. Zero values mean "use
// the default" (Spec applies feet-defaults, converted via 0.3048, only
// when the spec omits a dimension).
type Dims struct {
	WidthM   float64
	DepthM   float64
	WingW    float64 // L-shape wing width
	WingD    float64 // L-shape wing depth
	CourtW   float64 // U-shape / courtyard-wrap inner court width
	CourtD   float64 // U-shape / courtyard-wrap inner court depth
}

// defaults in feet, converted via geom.FeetToMetres, applied only when
// the corresponding Dims field is zero.
const ft = geom.FeetToMetres

func withDefaults(t Typology, d Dims) Dims {
	if d.WidthM == 0 {
		switch t {
		case Bar:
			d.WidthM = 200 * ft
		case LShape:
			d.WidthM = 150 * ft
		case Podium:
			d.WidthM = 200 * ft
		case UShape:
			d.WidthM = 200 * ft
		case CourtyardWrap:
			d.WidthM = 200 * ft
		}
	}
	if d.DepthM == 0 {
		switch t {
		case Bar:
			d.DepthM = 60 * ft
		case LShape:
			d.DepthM = 60 * ft
		case Podium:
			d.DepthM = 100 * ft
		case UShape:
			d.DepthM = 120 * ft
		case CourtyardWrap:
			d.DepthM = 150 * ft
		}
	}
	if d.WingW == 0 {
		d.WingW = 80 * ft
	}
	if d.WingD == 0 {
		d.WingD = 60 * ft
	}
	if d.CourtW == 0 {
		if t == UShape {
			d.CourtW = 100 * ft
		} else {
			d.CourtW = 120 * ft
		}
	}
	if d.CourtD == 0 {
		if t == UShape {
			d.CourtD = 60 * ft
		} else {
			d.CourtD = 70 * ft
		}
	}
	return d
}

// Build constructs a footprint polygon for the given typology, anchored
// at anchor with rotation rotationRad (radians, CCW). Vertex counts per
// spec.md §4.4: bar/podium = 4, L-shape = 6, U-shape = 8,
// courtyard-wrap = 4 outer + 4 inner (hole).
func Build(t Typology, anchor orb.Point, rotationRad float64, dims Dims) orb.Polygon {
	d := withDefaults(t, dims)

	var local orb.Polygon
	switch t {
	case LShape:
		local = lShapeLocal(d)
	case UShape:
		local = uShapeLocal(d)
	case CourtyardWrap:
		local = courtyardWrapLocal(d)
	default: // Bar, Podium: geometrically identical rectangles
		local = rectLocal(d.WidthM, d.DepthM)
	}

	rotated := geom.RotatePolygon(local, orb.Point{0, 0}, rotationRad)
	return geom.NormalizePolygon(geom.TranslatePolygon(rotated, anchor[0], anchor[1]))
}

// rectLocal is a width x depth rectangle centred on the origin.
func rectLocal(w, dth float64) orb.Polygon {
	hw, hd := w/2, dth/2
	return orb.Polygon{{
		{-hw, -hd}, {hw, -hd}, {hw, hd}, {-hw, hd}, {-hw, -hd},
	}}
}

// lShapeLocal is a bar with an extra wing removed from one corner,
// producing 6 vertices.
func lShapeLocal(d Dims) orb.Polygon {
	hw, hd := d.WidthM/2, d.DepthM/2
	// notch cut from the top-right corner, sized WingW x WingD
	notchX := hw - d.WingW
	notchY := hd - d.WingD
	return orb.Polygon{{
		{-hw, -hd},
		{hw, -hd},
		{hw, notchY},
		{notchX, notchY},
		{notchX, hd},
		{-hw, hd},
		{-hw, -hd},
	}}
}

// uShapeLocal cuts a rectangular courtyard notch out of the middle of
// one long edge, producing 8 vertices.
func uShapeLocal(d Dims) orb.Polygon {
	hw, hd := d.WidthM/2, d.DepthM/2
	cw, cd := d.CourtW/2, d.CourtD
	return orb.Polygon{{
		{-hw, -hd},
		{hw, -hd},
		{hw, hd},
		{cw, hd},
		{cw, hd - cd},
		{-cw, hd - cd},
		{-cw, hd},
		{-hw, hd},
		{-hw, -hd},
	}}
}

// courtyardWrapLocal is an outer rectangle with a fully enclosed inner
// rectangular hole (the courtyard).
func courtyardWrapLocal(d Dims) orb.Polygon {
	outer := rectLocal(d.WidthM, d.DepthM)[0]
	hole := geom.EnsureCW(rectLocal(d.CourtW, d.CourtD)[0])
	return orb.Polygon{outer, hole}
}

// FromSpec builds the footprint polygon for a BuildingSpec, pulling its
// typology dimensions out of the spec's optional fields.
func FromSpec(spec model.BuildingSpec) orb.Polygon {
	dims := Dims{
		WidthM: spec.WidthM,
		DepthM: spec.DepthM,
		WingW:  spec.WingWidth,
		WingD:  spec.WingDepth,
		CourtW: spec.CourtyardWidth,
		CourtD: spec.CourtyardDepth,
	}
	return Build(spec.Type, spec.Anchor, spec.RotationRad, dims)
}

// EffectiveFloors returns the floor count used for GFA/FAR math: the
// spec's Floors field, floored at 1 per invariant I6
// (max(1, floors_i)), plus podium-only additional floors.
func EffectiveFloors(spec model.BuildingSpec) int {
	floors := spec.Floors
	if floors < 1 {
		floors = 1
	}
	if spec.Type == model.Podium {
		floors += spec.PodiumFloors
	}
	return floors
}

// GFA (gross floor area, m²) is footprint area times floors, matching
// FAR's definition (spec.md I6). Podium's extra PodiumFloors affects
// GFA via the caller's floor count, not the footprint itself.
func GFA(p orb.Polygon, floors int) float64 {
	if floors < 1 {
		floors = 1
	}
	return geom.PolygonArea(p) * float64(floors)
}
