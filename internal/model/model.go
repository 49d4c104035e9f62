// Package model holds the data-model types shared across every
// component (spec.md §3) — BuildingSpec, ParkingSolution,
// FeasibilityViolation, Element, and the config structs. It is a
// leaf package so every other internal package, and the root siteplan
// package, can depend on it without an import cycle; siteplan re-
// exports these as the public API surface.
package model

import "github.com/paulmach/orb"

// Typology is the building typology. It lives here because model must
// stay a leaf package; package footprint re-exports it as
// footprint.Typology (a type alias) along with the five constants.
type Typology string

const (
	Bar           Typology = "bar"
	LShape        Typology = "l-shape"
	Podium        Typology = "podium"
	UShape        Typology = "u-shape"
	CourtyardWrap Typology = "courtyard-wrap"
)

// LockedFields marks which fields of a BuildingSpec a mutation (or the
// clamp) must never touch.
type LockedFields struct {
	Position   bool
	Rotation   bool
	Dimensions bool
}

// BuildingSpec is the unit of optimization (spec.md §3). Geometry is
// always derived on demand from this struct via package footprint.
type BuildingSpec struct {
	ID          string
	Type        Typology
	Anchor      orb.Point
	RotationRad float64
	WidthM      float64
	DepthM      float64
	Floors      int

	// optional typology dimensions, metres; zero means "use default"
	WingWidth      float64
	WingDepth      float64
	CourtyardWidth float64
	CourtyardDepth float64
	PodiumFloors   int

	UnitMix []UnitMixEntry
	Locked  LockedFields
}

// Clone returns a deep-enough copy for the optimizer to mutate freely
// without aliasing the original (BuildingSpec has no reference fields
// besides the UnitMix slice).
func (b BuildingSpec) Clone() BuildingSpec {
	if b.UnitMix != nil {
		mix := make([]UnitMixEntry, len(b.UnitMix))
		copy(mix, b.UnitMix)
		b.UnitMix = mix
	}
	return b
}

// UnitType is one of the four residential unit categories.
type UnitType string

const (
	Studio UnitType = "studio"
	OneBR  UnitType = "1br"
	TwoBR  UnitType = "2br"
	ThreeBR UnitType = "3br"
)

// UnitMixEntry describes one slice of a building's program.
type UnitMixEntry struct {
	Type          UnitType
	Count         int
	AvgSqFt       float64
	RentPerMonth  float64
}

// ParkingSolution is the C6 parking-bay solver's output.
type ParkingSolution struct {
	Bays             orb.MultiPolygon
	Aisles           orb.MultiPolygon
	Circulation      orb.MultiPolygon
	StallsAchieved   int
	ChosenAngleDeg   float64
	AccessPoint      orb.Point
	IsFullyConnected bool
	CirculationAreaM2 float64
}

// Severity classifies a FeasibilityViolation.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ViolationCode enumerates spec.md §3's nine violation codes.
type ViolationCode string

const (
	FarExceeded            ViolationCode = "farExceeded"
	CoverageExceeded       ViolationCode = "coverageExceeded"
	ParkingShortfall       ViolationCode = "parkingShortfall"
	HeightExceeded         ViolationCode = "heightExceeded"
	DensityExceeded        ViolationCode = "densityExceeded"
	ImperviousExceeded     ViolationCode = "imperviousExceeded"
	OpenSpaceInsufficient  ViolationCode = "openSpaceInsufficient"
	BuildingOverlap        ViolationCode = "buildingOverlap"
	BuildingOutsideEnvelope ViolationCode = "buildingOutsideEnvelope"
)

// FeasibilityViolation is one zoning or geometric exceedance.
type FeasibilityViolation struct {
	Code     ViolationCode
	Message  string
	Delta    float64
	Severity Severity
}

// ElementType is the typed kind of a scene Element.
type ElementType string

const (
	ElementBuilding     ElementType = "building"
	ElementParkingBay   ElementType = "parking-bay"
	ElementParkingAisle ElementType = "parking-aisle"
	ElementCirculation  ElementType = "circulation"
	ElementGreenspace   ElementType = "greenspace"
)

// ElementProperties carries the per-element metadata spec.md §3 lists.
type ElementProperties struct {
	AreaSqFt       float64
	Floors         int    `json:",omitempty"`
	ParkingSpaces  int    `json:",omitempty"`
	Color          string `json:",omitempty"`
}

// Element is one typed geometric node in the rendering-ready scene graph.
type Element struct {
	ID         string
	Type       ElementType
	Geometry   orb.Polygon
	Properties ElementProperties
}

// Scene is the full typed element list spec.md §4.10 describes.
type Scene struct {
	Elements []Element
}

// ZoningLimits (spec.md §3 PlanConfig.zoning).
type ZoningLimits struct {
	MaxFar              float64
	MaxCoveragePct      float64
	MinParkingRatio     float64
	MaxHeightFt         *float64
	MaxDensityDuPerAcre *float64
	MaxImperviousPct    *float64
	MinOpenSpacePct     *float64
	FrontSetbackFt      float64
	SideSetbackFt       float64
	RearSetbackFt       float64
}

// ParkingSpec (spec.md §3 PlanConfig.design.parking), units in feet on
// the config surface except TrialAnglesDeg (already degrees).
type ParkingSpec struct {
	StallWFt        float64
	StallDFt        float64
	AisleWFt        float64
	TargetRatio     float64
	AdaPct          float64
	EvPct           float64
	TrialAnglesDeg  []float64
	ClearanceM      float64 // optional; 0 means "use max(stallD, stallW)"
	MaxStalls       int     // optional cap; 0 means "no cap"
}

// DesignConfig (spec.md §3 PlanConfig.design).
type DesignConfig struct {
	TargetFAR         float64
	TargetCoveragePct float64
	NumBuildings      int
	BuildingTypology  Typology
	Parking           ParkingSpec
}

// Metrics is the feasibility/scene-assembler metrics record.
type Metrics struct {
	FAR              float64
	CoveragePct      float64
	ParkingRatio     float64
	AchievedUnits    int
	UnitMixSummary   string
	OpenSpacePct     float64
	ParkingAngleDeg  float64
	StallsProvided   int
	StallsRequired   int
	ZoningCompliant  bool
	Violations       []FeasibilityViolation
	Warnings         []FeasibilityViolation
	Cancelled        bool
}

// MarketAssumptions is the pro-forma's configurable rate set; zero
// fields fall back to spec.md §4.8's named defaults (see proforma.Defaults).
type MarketAssumptions struct {
	VacancyRate      float64
	OpexRatio        float64
	InterestRate     float64
	CapRate          float64
	EquityPct        float64
	ConstructionType string // "wood-frame" | "steel" | "concrete"
	SiteWorkPerSqFt  float64
	SurfaceStallCost float64
	StructuredStallCost float64
	SoftCostPct      float64
	ContingencyPct   float64
	FinancingMonths  float64
}

// ProFormaInputs is §4.8's input struct.
type ProFormaInputs struct {
	TotalGFASqFt     float64
	SiteAreaSqFt     float64
	UnitMix          []UnitMixEntry
	SurfaceStalls    int
	StructuredStalls int
	LandCost         float64
	Market           MarketAssumptions
}

// ProFormaResult is §4.8's output struct.
type ProFormaResult struct {
	GrossPotentialRent float64
	VacancyLoss        float64
	EGI                float64
	OpEx               float64
	NOI                float64

	HardCost        float64
	SoftCost        float64
	Contingency     float64
	Financing       float64
	TotalDevelopmentCost float64

	YieldOnCost     float64
	StabilizedValue float64
	Profit          float64
	EquityMultiple  float64
	CashOnCash      float64
	CostPerUnit     float64
	CostPerSqFt     float64
}
