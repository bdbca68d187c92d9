package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"EdgeFinder/internal/model"
)

func intPtr(v int) *int { return &v }

func TestCompareMacro(t *testing.T) {
	tests := []struct {
		base, quote, want int
	}{
		{6, 0, 6},
		{0, 6, 0},
		{3, 3, 3},
		{0, 0, 3},
		{5, 3, 5},
		{2, 4, 1},
		{6, 1, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompareMacro(tt.base, tt.quote), "CompareMacro(%d, %d)", tt.base, tt.quote)
	}
}

func TestCompareMacro_AlwaysInRange(t *testing.T) {
	for a := -3; a <= 9; a++ {
		for b := -3; b <= 9; b++ {
			got := CompareMacro(a, b)
			assert.GreaterOrEqual(t, got, MacroScoreMin)
			assert.LessOrEqual(t, got, MacroScoreMax)
		}
	}
}

func TestCountryScore(t *testing.T) {
	table := model.EconomicTable{
		"Japan": {Country: "Japan", Score: intPtr(4)},
		"Canada": {Country: "Canada", Values: map[model.Indicator]float64{
			model.GDPGrowth:    1.2,
			model.InterestRate: 4.5,
		}},
	}

	jp := CountryScore(table, "Japan")
	assert.True(t, jp.Found)
	assert.Equal(t, 4, jp.Score)

	ca := CountryScore(table, "Canada")
	assert.True(t, ca.Found)
	assert.Equal(t, 2, ca.Score)

	missing := CountryScore(table, "Atlantis")
	assert.False(t, missing.Found)
	assert.Equal(t, 0, missing.Score)
}
