// Package siteplan computes a deterministic, zoning-aware site plan for
// an urban infill parcel: the buildable envelope after setbacks, an
// optimized building/parking layout, a feasibility check against
// zoning limits, and a development pro forma.
//
// The package is pure and single-threaded per call — ComputeEnvelope,
// Optimize, Evaluate and ProForma share no state and are safe to call
// concurrently on independent inputs (see cmd/siteplan for a host-level
// errgroup example).
package siteplan

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/meridian-civic/siteplan/internal/geom"
	"github.com/meridian-civic/siteplan/internal/model"
	"github.com/meridian-civic/siteplan/internal/setback"
)

// Re-exported data model. Callers never need to import internal/model
// directly; these aliases are the package's only public surface for
// shared types.
type (
	NamedRoad        = geom.NamedRoad
	Envelope         = setback.Envelope
	EnvelopeEdge     = setback.Edge
	SetbackFeet      = setback.Feet
	Typology         = model.Typology
	LockedFields     = model.LockedFields
	BuildingSpec     = model.BuildingSpec
	UnitType         = model.UnitType
	UnitMixEntry     = model.UnitMixEntry
	ParkingSolution  = model.ParkingSolution
	ZoningConfig     = model.ZoningLimits
	ParkingSpec      = model.ParkingSpec
	DesignConfig     = model.DesignConfig
	Metrics          = model.Metrics
	FeasibilityViolation = model.FeasibilityViolation
	ViolationCode    = model.ViolationCode
	Severity         = model.Severity
	MarketAssumptions = model.MarketAssumptions
	ProFormaInputs   = model.ProFormaInputs
	ProFormaResult   = model.ProFormaResult
	Scene            = model.Scene
	Element          = model.Element
	ElementType      = model.ElementType
)

const (
	Bar           = model.Bar
	LShape        = model.LShape
	Podium        = model.Podium
	UShape        = model.UShape
	CourtyardWrap = model.CourtyardWrap
)

// ComputeEnvelope runs the half-plane-intersection setback solver
// (component C3) over parcel, classifying each edge against roads and
// shifting it inward by the matching setback distance.
func ComputeEnvelope(parcel orb.Polygon, roads []NamedRoad, setbacks SetbackFeet) (*Envelope, error) {
	env, err := setback.ComputeEnvelope(parcel, roads, setbacks)
	if err != nil {
		return nil, errors.Wrap(err, "compute envelope")
	}
	return env, nil
}
