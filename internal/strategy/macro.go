package strategy

import "EdgeFinder/internal/model"

const (
	MacroScoreMin = 0
	MacroScoreMax = 6
	// macroMidpoint recentres the score difference so equal economies compare at 3.
	macroMidpoint = 3
)

// CompareMacro turns two per-country scores into one comparative score in [0, 6].
func CompareMacro(baseScore, quoteScore int) int {
	return clamp(baseScore-quoteScore+macroMidpoint, MacroScoreMin, MacroScoreMax)
}

// CountryScore returns the score of country, deriving it from the
// indicators when the row carries no precomputed score. Absent countries
// score 0.
func CountryScore(table model.EconomicTable, country string) model.CountryScore {
	row, ok := table.Lookup(country)
	if !ok {
		return model.CountryScore{Country: country}
	}
	cs := model.CountryScore{Country: country, Found: true, Row: row}
	if row.Score != nil {
		cs.Score = *row.Score
	} else {
		cs.Score = ScoreEconomicRow(row)
	}
	return cs
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
