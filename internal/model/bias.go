package model

// Label is a directional market-lean label.
type Label string

const (
	StrongBullish Label = "Strong Bullish"
	Bullish       Label = "Bullish"
	Neutral       Label = "Neutral"
	Bearish       Label = "Bearish"
	StrongBearish Label = "Strong Bearish"
)

// TraderClass selects which long/short pair of a positioning record is read.
type TraderClass string

const (
	Institutional TraderClass = "Institutional"
	Retail        TraderClass = "Retail"
)

// SentimentStats is the positioning summary for one currency and trader class.
type SentimentStats struct {
	Currency   string
	Class      TraderClass
	Longs      int
	Shorts     int
	Net        int
	Bias       Label
	// ReportBias is the institutional label published with the positioning
	// report. Empty for retail rows and when the report carried none.
	ReportBias Label
}

// Contribution records the points one scoring step added to the raw score.
type Contribution struct {
	Name   string
	Points int
}

// BiasResult is the final output of the bias aggregator.
type BiasResult struct {
	Label         Label
	RawScore      int
	Confidence    float64 // RawScore / 5
	Commentary    string
	Contributions []Contribution
}
