package model

// CountryScore is one side of the macro comparison.
type CountryScore struct {
	Country string
	Score   int
	// Found is false when the country had no row; Score is then 0.
	Found bool
	Row   EconomicIndicators
}

// Evaluation is everything computed for one pair selection.
type Evaluation struct {
	Pair Pair

	InstitutionalBase  SentimentStats
	InstitutionalQuote SentimentStats
	RetailBase         SentimentStats
	RetailQuote        SentimentStats

	BaseEconomy  CountryScore
	QuoteEconomy CountryScore
	MacroScore   int // comparative score, 0..6

	TechBias    Label
	CandleCount int

	// SentimentPercent is the retail long percentage fed to the aggregator, nil when unused.
	SentimentPercent *float64

	Result BiasResult
}

// Sentiment returns the four sentiment rows in table order.
func (e *Evaluation) Sentiment() []SentimentStats {
	return []SentimentStats{e.InstitutionalBase, e.InstitutionalQuote, e.RetailBase, e.RetailQuote}
}
