// Package proforma implements spec component C8: revenue, cost and
// return calculations from GFA and unit mix.
package proforma

import "github.com/meridian-civic/siteplan/internal/model"

// Defaults fills any zero field of MarketAssumptions with spec.md
// §4.8's named constants.
func Defaults(m model.MarketAssumptions) model.MarketAssumptions {
	if m.VacancyRate == 0 {
		m.VacancyRate = 0.05
	}
	if m.OpexRatio == 0 {
		m.OpexRatio = 0.35
	}
	if m.InterestRate == 0 {
		m.InterestRate = 0.06
	}
	if m.CapRate == 0 {
		m.CapRate = 0.055
	}
	if m.EquityPct == 0 {
		m.EquityPct = 0.35
	}
	if m.ConstructionType == "" {
		m.ConstructionType = "wood-frame"
	}
	if m.SiteWorkPerSqFt == 0 {
		m.SiteWorkPerSqFt = 15
	}
	if m.SurfaceStallCost == 0 {
		m.SurfaceStallCost = 5000
	}
	if m.StructuredStallCost == 0 {
		m.StructuredStallCost = 25000
	}
	if m.SoftCostPct == 0 {
		m.SoftCostPct = 0.20
	}
	if m.ContingencyPct == 0 {
		m.ContingencyPct = 0.05
	}
	if m.FinancingMonths == 0 {
		m.FinancingMonths = 18
	}
	return m
}

func constructionRatePerSqFt(t string) float64 {
	switch t {
	case "steel":
		return 210
	case "concrete":
		return 260
	default: // wood-frame, and the default for any unrecognized type
		return 165
	}
}

// safeDiv returns 0 when the denominator is zero, per spec.md §4.8's
// division-by-zero policy.
func safeDiv(n, d float64) float64 {
	if d == 0 {
		return 0
	}
	return n / d
}

// Compute implements spec.md §4.8 end to end.
func Compute(in model.ProFormaInputs) model.ProFormaResult {
	m := Defaults(in.Market)

	gpr := 0.0
	totalUnits := 0
	for _, u := range in.UnitMix {
		gpr += float64(u.Count) * u.RentPerMonth * 12
		totalUnits += u.Count
	}

	vacancyLoss := gpr * m.VacancyRate
	egi := gpr - vacancyLoss
	opex := egi * m.OpexRatio
	noi := egi - opex

	hard := in.TotalGFASqFt*constructionRatePerSqFt(m.ConstructionType) +
		in.SiteAreaSqFt*m.SiteWorkPerSqFt +
		float64(in.SurfaceStalls)*m.SurfaceStallCost +
		float64(in.StructuredStalls)*m.StructuredStallCost

	soft := hard * m.SoftCostPct
	contingency := (hard + soft) * m.ContingencyPct
	financing := (hard + soft + contingency) * m.InterestRate * (m.FinancingMonths / 12)
	total := in.LandCost + hard + soft + contingency + financing

	yieldOnCost := safeDiv(noi, total)
	stabilizedValue := safeDiv(noi, m.CapRate)
	profit := stabilizedValue - total
	equityBasis := total * m.EquityPct
	equityMultiple := safeDiv(stabilizedValue, equityBasis)
	cashOnCash := safeDiv(noi, equityBasis)
	costPerUnit := safeDiv(total, float64(totalUnits))
	costPerSqFt := safeDiv(total, in.TotalGFASqFt)

	return model.ProFormaResult{
		GrossPotentialRent:   gpr,
		VacancyLoss:          vacancyLoss,
		EGI:                  egi,
		OpEx:                 opex,
		NOI:                  noi,
		HardCost:             hard,
		SoftCost:             soft,
		Contingency:          contingency,
		Financing:            financing,
		TotalDevelopmentCost: total,
		YieldOnCost:          yieldOnCost,
		StabilizedValue:      stabilizedValue,
		Profit:               profit,
		EquityMultiple:       equityMultiple,
		CashOnCash:           cashOnCash,
		CostPerUnit:          costPerUnit,
		CostPerSqFt:          costPerSqFt,
	}
}
