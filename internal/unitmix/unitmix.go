// Package unitmix generates the default unit-mix distribution spec.md
// §3 describes for buildings that don't specify one explicitly, and
// centralizes the single "720 sqft/unit" constant spec.md §9's Open
// Question 2 asks implementations to pick once and reuse everywhere
// (default mix generation, the feasibility fallback, and the SA
// optimizer's maxReasonableUnits bound all import this constant rather
// than each re-deriving it).
package unitmix

import (
	"math"
	"strconv"

	"github.com/meridian-civic/siteplan/internal/model"
)

// AvgUnitSqFt is the weighted-average net unit size (sqft) used to
// convert leasable area into a unit count.
const AvgUnitSqFt = 720.0

// NetLeasableFraction is the share of GFA that is net leasable area.
const NetLeasableFraction = 0.85

// defaultDistribution is spec.md §3's fixed default split.
var defaultDistribution = []struct {
	typ     model.UnitType
	pct     float64
	avgSqFt float64
	rent    float64
}{
	{model.Studio, 0.10, 500, 1450},
	{model.OneBR, 0.40, 700, 1850},
	{model.TwoBR, 0.35, 950, 2450},
	{model.ThreeBR, 0.15, 1300, 3100},
}

// TotalUnitsFromGFA converts gross floor area (sqft) into a unit count
// via the net-leasable fraction and the shared avg-unit-size constant.
// This is also the feasibility evaluator's fallback formula
// (spec.md §4.7): max(1, floor(gfaSqFt*0.85/720)).
func TotalUnitsFromGFA(gfaSqFt float64) int {
	units := int(math.Floor(gfaSqFt * NetLeasableFraction / AvgUnitSqFt))
	if units < 1 {
		units = 1
	}
	return units
}

// Default builds a unit mix for the given GFA using spec.md §3's fixed
// distribution (studio 10%, 1br 40%, 2br 35%, 3br 15%).
func Default(gfaSqFt float64) []model.UnitMixEntry {
	total := TotalUnitsFromGFA(gfaSqFt)
	mix := make([]model.UnitMixEntry, 0, len(defaultDistribution))
	assigned := 0
	for i, d := range defaultDistribution {
		count := int(math.Round(float64(total) * d.pct))
		if i == len(defaultDistribution)-1 {
			// last bucket absorbs rounding drift so counts sum to total
			count = total - assigned
			if count < 0 {
				count = 0
			}
		}
		assigned += count
		mix = append(mix, model.UnitMixEntry{
			Type:         d.typ,
			Count:        count,
			AvgSqFt:      d.avgSqFt,
			RentPerMonth: d.rent,
		})
	}
	return mix
}

// TotalUnits sums Count across a mix.
func TotalUnits(mix []model.UnitMixEntry) int {
	total := 0
	for _, e := range mix {
		total += e.Count
	}
	return total
}

// Summary renders a short human-readable "12 studio, 30 1br, ..." string
// for the metrics record.
func Summary(mix []model.UnitMixEntry) string {
	out := ""
	for _, e := range mix {
		if e.Count == 0 {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += strconv.Itoa(e.Count) + " " + string(e.Type)
	}
	if out == "" {
		return "0 units"
	}
	return out
}
