package strategy

import "EdgeFinder/internal/model"

// economicRule awards one point when the indicator passes its threshold.
// Missing values fall back to a default that always fails the test.
type economicRule struct {
	Indicator model.Indicator
	Default   float64
	Passes    func(v float64) bool
}

var economicRules = []economicRule{
	{model.GDPGrowth, 0, func(v float64) bool { return v > 0.5 }},
	{model.InterestRate, 0, func(v float64) bool { return v > 2 }},
	{model.InflationRate, 100, func(v float64) bool { return v < 3 }},
	{model.JoblessRate, 100, func(v float64) bool { return v < 5 }},
	{model.GovBudget, -100, func(v float64) bool { return v > -5 }},
	{model.DebtToGDP, 1000, func(v float64) bool { return v < 100 }},
}

// ScoreEconomicRow scores one country's indicators from 0 to 6.
func ScoreEconomicRow(row model.EconomicIndicators) int {
	score := 0
	for _, r := range economicRules {
		v, ok := row.Value(r.Indicator)
		if !ok {
			v = r.Default
		}
		if r.Passes(v) {
			score++
		}
	}
	return score
}
