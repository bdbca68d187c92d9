package notifier

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"EdgeFinder/internal/model"
)

func sampleEvaluation() *model.Evaluation {
	five, two := 5, 2
	return &model.Evaluation{
		Pair:               model.Pair{Symbol: "EUR_USD", BaseCurrency: "EUR", QuoteCurrency: "USD", BaseCountry: "Euro Area", QuoteCountry: "United States"},
		InstitutionalBase:  model.SentimentStats{Currency: "EUR", Class: model.Institutional, Longs: 100, Shorts: 40, Net: 60, Bias: model.Bullish, ReportBias: model.Bearish},
		InstitutionalQuote: model.SentimentStats{Currency: "USD", Class: model.Institutional, Longs: 40, Shorts: 100, Net: -60, Bias: model.Bearish},
		RetailBase:         model.SentimentStats{Currency: "EUR", Class: model.Retail, Bias: model.Neutral},
		RetailQuote:        model.SentimentStats{Currency: "USD", Class: model.Retail, Longs: 10, Shorts: 10, Bias: model.Bearish},
		BaseEconomy: model.CountryScore{Country: "Euro Area", Score: 5, Found: true, Row: model.EconomicIndicators{
			Country: "Euro Area", Score: &five, Values: map[model.Indicator]float64{model.GDPGrowth: 0.4},
		}},
		QuoteEconomy: model.CountryScore{Country: "United States", Score: 2, Found: true, Row: model.EconomicIndicators{
			Country: "United States", Score: &two, Values: map[model.Indicator]float64{model.GDPGrowth: 2.5, model.DebtToGDP: 123.3},
		}},
		MacroScore:  6,
		TechBias:    model.Bullish,
		CandleCount: 100,
		Result: model.BiasResult{
			Label:      model.StrongBullish,
			RawScore:   4,
			Confidence: 0.8,
			Commentary: "Bias is Strong Bullish based on retail: None%, COT: Bullish, Macro score: 6, Tech: Bullish",
			Contributions: []model.Contribution{
				{Name: "Retail sentiment"}, {Name: "COT", Points: 1}, {Name: "Technical", Points: 1},
				{Name: "Macro", Points: 1}, {Name: "Macro strong", Points: 1},
			},
		},
	}
}

func TestFormatBiasReport_HTML(t *testing.T) {
	out := FormatBiasReport(sampleEvaluation(), HTML)

	assert.Contains(t, out, "<b>EdgeFinder EUR_USD</b>")
	assert.Contains(t, out, "Strong Bullish")
	assert.Contains(t, out, "80% (4/5)")
	assert.Contains(t, out, "Euro Area Score: 5 / United States Score: 2")
	assert.Contains(t, out, "Bullish (100 candles)")
	assert.Contains(t, out, "<pre>")
	assert.Contains(t, out, "OANDA:EURUSD")
	assert.Contains(t, out, "Macro strong: +1")
}

func TestFormatBiasReport_Plain(t *testing.T) {
	out := FormatBiasReport(sampleEvaluation(), Plain)
	assert.NotContains(t, out, "<b>")
	assert.NotContains(t, out, "<pre>")
	assert.Contains(t, out, "Economic Comparison")
}

func TestFormatBiasReport_SkipsEconomicTableWhenCountryMissing(t *testing.T) {
	ev := sampleEvaluation()
	ev.QuoteEconomy = model.CountryScore{Country: "United States"}
	out := FormatBiasReport(ev, Plain)
	assert.NotContains(t, out, "Economic Comparison")
	assert.Contains(t, out, "United States Score: 0")
}

func TestEconomicTable(t *testing.T) {
	table := EconomicTable(sampleEvaluation())
	lines := strings.Split(table, "\n")
	assert.Len(t, lines, 1+len(model.Indicators))
	assert.Contains(t, lines[1], "0.40")
	assert.Contains(t, lines[1], "2.50")
	assert.Contains(t, lines[6], "n/a")
	assert.Contains(t, lines[6], "123.30")
}

func TestSentimentTable(t *testing.T) {
	lines := strings.Split(SentimentTable(sampleEvaluation()), "\n")
	assert.Len(t, lines, 5)
	assert.Contains(t, lines[1], "🔵")
	assert.Contains(t, lines[2], "🔴")
	assert.Contains(t, lines[3], "⚫")
	assert.Contains(t, lines[3], "Neutral")
}

func TestSentimentTable_ShowsReportBias(t *testing.T) {
	lines := strings.Split(SentimentTable(sampleEvaluation()), "\n")
	assert.Contains(t, lines[0], "Report")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[1]), "Bullish  Bearish"), lines[1])
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[2]), "-"), lines[2])
	assert.True(t, strings.HasSuffix(strings.TrimSpace(lines[3]), "-"), lines[3])
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░░░░░░░", progressBar(0))
	assert.Equal(t, "████████░░", progressBar(0.8))
	assert.Equal(t, "██████████", progressBar(1))
}

func TestFormatPairList(t *testing.T) {
	out := FormatPairList(model.DefaultPairs, HTML)
	assert.Contains(t, out, "EUR_GBP (Euro Area / United Kingdom)")
	assert.Equal(t, len(model.DefaultPairs)+1, strings.Count(out, "\n"))
}
