package strategy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"EdgeFinder/internal/model"
)

// ErrUnknownPair is returned when a pair selector is not in the registry.
var ErrUnknownPair = errors.New("unknown currency pair")

// MaxRawScore is the raw score reached when every step holds.
const MaxRawScore = 5

// biasInputs are the four signals the aggregator folds together.
type biasInputs struct {
	SentimentPercent *float64
	CotBias          model.Label
	MacroScore       int
	TechBias         model.Label
}

// biasStep adds Points to the raw score when Holds is true.
type biasStep struct {
	Name   string
	Points int
	Holds  func(in biasInputs) bool
}

var biasSteps = []biasStep{
	// Crowd net short reads as a contrarian bullish signal.
	{"Retail sentiment", 1, func(in biasInputs) bool {
		return in.SentimentPercent != nil && *in.SentimentPercent < 50
	}},
	{"COT", 1, func(in biasInputs) bool { return in.CotBias == model.Bullish }},
	{"Technical", 1, func(in biasInputs) bool { return in.TechBias == model.Bullish }},
	{"Macro", 1, func(in biasInputs) bool { return in.MacroScore >= 3 }},
	{"Macro strong", 1, func(in biasInputs) bool { return in.MacroScore >= 5 }},
}

// LabelTiers maps a raw score to a label, highest tier first.
var LabelTiers = []struct {
	MinScore int
	Label    model.Label
}{
	{4, model.StrongBullish},
	{3, model.Bullish},
	{2, model.Neutral},
	{1, model.Bearish},
}

// DefaultLabel applies to raw scores below every tier.
const DefaultLabel = model.StrongBearish

func mapLabel(rawScore int) model.Label {
	for _, t := range LabelTiers {
		if rawScore >= t.MinScore {
			return t.Label
		}
	}
	return DefaultLabel
}

// AggregateBias folds retail sentiment, institutional bias, the macro
// comparison and the technical label into the final bias.
// sentimentPercent is the retail long percentage and may be nil.
func AggregateBias(sentimentPercent *float64, cotBias model.Label, macroScore int, techBias model.Label) model.BiasResult {
	in := biasInputs{
		SentimentPercent: sentimentPercent,
		CotBias:          cotBias,
		MacroScore:       macroScore,
		TechBias:         techBias,
	}

	raw := 0
	contributions := make([]model.Contribution, 0, len(biasSteps))
	for _, s := range biasSteps {
		c := model.Contribution{Name: s.Name}
		if s.Holds(in) {
			c.Points = s.Points
			raw += s.Points
		}
		contributions = append(contributions, c)
	}

	label := mapLabel(raw)
	return model.BiasResult{
		Label:         label,
		RawScore:      raw,
		Confidence:    float64(raw) / MaxRawScore,
		Contributions: contributions,
		Commentary: fmt.Sprintf("Bias is %s based on retail: %s%%, COT: %s, Macro score: %d, Tech: %s",
			label, formatPercent(sentimentPercent), cotBias, macroScore, techBias),
	}
}

// formatPercent renders p the way the report has always shown it:
// "None" when absent and floats always carrying a decimal point.
func formatPercent(p *float64) string {
	if p == nil {
		return "None"
	}
	s := strconv.FormatFloat(*p, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// SentimentSource selects what feeds the retail sentiment step.
type SentimentSource string

const (
	// SentimentNone leaves the retail step out, as the dashboard always did.
	SentimentNone SentimentSource = "none"
	// SentimentRetail uses the base currency's retail long percentage.
	SentimentRetail SentimentSource = "retail"
)

// Valid reports whether s is a known source.
func (s SentimentSource) Valid() bool {
	return s == SentimentNone || s == SentimentRetail
}

// EvaluateOptions tunes EvaluateBias.
type EvaluateOptions struct {
	SentimentSource SentimentSource
}

// Engine evaluates pairs known to its registry.
type Engine struct {
	Registry *model.PairRegistry
	Options  EvaluateOptions
}

// NewEngine creates an Engine. A nil registry means the default pairs.
func NewEngine(registry *model.PairRegistry, opts EvaluateOptions) *Engine {
	if registry == nil {
		registry = model.DefaultRegistry()
	}
	if opts.SentimentSource == "" {
		opts.SentimentSource = SentimentNone
	}
	return &Engine{Registry: registry, Options: opts}
}

// EvaluateBias runs the whole scoring pass for the default pairs and options.
func EvaluateBias(pairSelector string, positioning model.PositioningTable, economic model.EconomicTable, candles model.CandleSeries) (*model.Evaluation, error) {
	return NewEngine(nil, EvaluateOptions{}).EvaluateBias(pairSelector, positioning, economic, candles)
}

// EvaluateBias resolves the pair and runs every estimator followed by the aggregator.
// The only error is an unknown pair selector.
func (e *Engine) EvaluateBias(pairSelector string, positioning model.PositioningTable, economic model.EconomicTable, candles model.CandleSeries) (*model.Evaluation, error) {
	pair, ok := e.Registry.Lookup(pairSelector)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPair, pairSelector)
	}

	ev := &model.Evaluation{
		Pair:               pair,
		InstitutionalBase:  ResolveSentiment(positioning, pair.BaseCurrency, model.Institutional),
		InstitutionalQuote: ResolveSentiment(positioning, pair.QuoteCurrency, model.Institutional),
		RetailBase:         ResolveSentiment(positioning, pair.BaseCurrency, model.Retail),
		RetailQuote:        ResolveSentiment(positioning, pair.QuoteCurrency, model.Retail),
		BaseEconomy:        CountryScore(economic, pair.BaseCountry),
		QuoteEconomy:       CountryScore(economic, pair.QuoteCountry),
		TechBias:           TechnicalBias(candles),
		CandleCount:        len(candles),
	}
	ev.MacroScore = CompareMacro(ev.BaseEconomy.Score, ev.QuoteEconomy.Score)

	if e.Options.SentimentSource == SentimentRetail {
		ev.SentimentPercent = RetailLongPercent(positioning, pair.BaseCurrency)
	}

	ev.Result = AggregateBias(ev.SentimentPercent, ev.InstitutionalBase.Bias, ev.MacroScore, ev.TechBias)
	return ev, nil
}
