package unitmix_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridian-civic/siteplan/internal/unitmix"
)

func TestTotalUnitsFromGFAMatchesFallbackFormula(t *testing.T) {
	got := unitmix.TotalUnitsFromGFA(100000)
	assert.Equal(t, 118, got) // floor(100000*0.85/720) = 118
}

func TestTotalUnitsFromGFANeverBelowOne(t *testing.T) {
	assert.Equal(t, 1, unitmix.TotalUnitsFromGFA(0))
	assert.Equal(t, 1, unitmix.TotalUnitsFromGFA(100))
}

func TestDefaultMixSumsToTotal(t *testing.T) {
	mix := unitmix.Default(100000)
	assert.Equal(t, unitmix.TotalUnitsFromGFA(100000), unitmix.TotalUnits(mix))
}

func TestSummaryOmitsZeroBuckets(t *testing.T) {
	mix := unitmix.Default(500) // tiny GFA -> total units == 1, only the last bucket non-zero
	summary := unitmix.Summary(mix)
	assert.NotEmpty(t, summary)
	assert.Equal(t, "1 3br", summary)
}
