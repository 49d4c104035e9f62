package siteplan

import "github.com/meridian-civic/siteplan/internal/proforma"

// ProForma runs component C8's revenue/cost/return model over in, using
// spec.md §4.8's named market-assumption defaults for any field in
// in.Market left at its zero value.
func ProForma(in ProFormaInputs) ProFormaResult {
	return proforma.Compute(in)
}
