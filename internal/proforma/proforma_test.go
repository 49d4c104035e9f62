package proforma_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-civic/siteplan/internal/model"
	"github.com/meridian-civic/siteplan/internal/proforma"
)

func TestComputeAppliesDefaultsWhenMarketIsZeroValue(t *testing.T) {
	in := model.ProFormaInputs{
		TotalGFASqFt: 50000,
		SiteAreaSqFt: 20000,
		UnitMix: []model.UnitMixEntry{
			{Type: model.OneBR, Count: 50, RentPerMonth: 1800},
		},
		LandCost: 500000,
	}
	result := proforma.Compute(in)

	assert.Greater(t, result.GrossPotentialRent, 0.0)
	assert.Greater(t, result.HardCost, 0.0)
	assert.Greater(t, result.TotalDevelopmentCost, result.HardCost)
}

func TestComputeSafeDivByZeroUnits(t *testing.T) {
	in := model.ProFormaInputs{TotalGFASqFt: 1000, SiteAreaSqFt: 1000}
	result := proforma.Compute(in)
	assert.Equal(t, 0.0, result.CostPerUnit)
}

func TestDefaultsFillsOnlyZeroFields(t *testing.T) {
	m := proforma.Defaults(model.MarketAssumptions{VacancyRate: 0.1})
	assert.Equal(t, 0.1, m.VacancyRate)
	assert.Equal(t, 0.35, m.OpexRatio)
	assert.Equal(t, "wood-frame", m.ConstructionType)
}

func TestConstructionTypeAffectsHardCost(t *testing.T) {
	base := model.ProFormaInputs{TotalGFASqFt: 10000, SiteAreaSqFt: 10000}
	wood := proforma.Compute(base)

	steel := base
	steel.Market.ConstructionType = "steel"
	steelResult := proforma.Compute(steel)

	assert.Greater(t, steelResult.HardCost, wood.HardCost)
}
