package model

// Indicator names one macroeconomic column of the reference data.
type Indicator string

const (
	GDPGrowth     Indicator = "GDP Growth"
	InterestRate  Indicator = "Interest Rate"
	InflationRate Indicator = "Inflation Rate"
	JoblessRate   Indicator = "Jobless Rate"
	GovBudget     Indicator = "Gov. Budget"
	DebtToGDP     Indicator = "Debt/GDP"
)

// Indicators lists the six indicators in display order.
var Indicators = []Indicator{GDPGrowth, InterestRate, InflationRate, JoblessRate, GovBudget, DebtToGDP}

// EconomicIndicators is one country's row of macro data.
// A missing map key means the field was absent in the source.
type EconomicIndicators struct {
	Country string
	Values  map[Indicator]float64
	// Score is the precomputed 0..6 score, nil when it must be derived.
	Score *int
}

// Value returns the indicator value and whether it was present.
func (e EconomicIndicators) Value(ind Indicator) (float64, bool) {
	v, ok := e.Values[ind]
	return v, ok
}

// EconomicTable maps a country name to its unique row.
type EconomicTable map[string]EconomicIndicators

// Lookup returns the row for country, if any.
func (t EconomicTable) Lookup(country string) (EconomicIndicators, bool) {
	r, ok := t[country]
	return r, ok
}
