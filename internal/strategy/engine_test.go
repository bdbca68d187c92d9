package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EdgeFinder/internal/model"
)

func floatPtr(v float64) *float64 { return &v }

func TestAggregateBias_AllSignalsBullish(t *testing.T) {
	res := AggregateBias(floatPtr(40), model.Bullish, 5, model.Bullish)
	assert.Equal(t, 5, res.RawScore)
	assert.Equal(t, model.StrongBullish, res.Label)
	assert.Equal(t, 1.0, res.Confidence)
	assert.Equal(t, "Bias is Strong Bullish based on retail: 40.0%, COT: Bullish, Macro score: 5, Tech: Bullish", res.Commentary)
	require.Len(t, res.Contributions, 5)
	for _, c := range res.Contributions {
		assert.Equal(t, 1, c.Points, c.Name)
	}
}

func TestAggregateBias_NothingHolds(t *testing.T) {
	res := AggregateBias(nil, model.Bearish, 0, model.Bearish)
	assert.Equal(t, 0, res.RawScore)
	assert.Equal(t, model.StrongBearish, res.Label)
	assert.Equal(t, 0.0, res.Confidence)
	assert.Equal(t, "Bias is Strong Bearish based on retail: None%, COT: Bearish, Macro score: 0, Tech: Bearish", res.Commentary)
}

func TestAggregateBias_Steps(t *testing.T) {
	tests := []struct {
		name      string
		sentiment *float64
		cot       model.Label
		macro     int
		tech      model.Label
		raw       int
		label     model.Label
	}{
		{"crowd short only", floatPtr(49.9), model.Bearish, 0, model.Bearish, 1, model.Bearish},
		{"crowd at fifty does not count", floatPtr(50), model.Bearish, 0, model.Bearish, 0, model.StrongBearish},
		{"crowd long", floatPtr(72.5), model.Neutral, 2, model.Neutral, 0, model.StrongBearish},
		{"neutral cot does not count", nil, model.Neutral, 0, model.Bullish, 1, model.Bearish},
		{"macro midpoint", nil, model.Bearish, 3, model.Bearish, 1, model.Bearish},
		{"macro four", nil, model.Bearish, 4, model.Bearish, 1, model.Bearish},
		{"macro five stacks", nil, model.Bearish, 5, model.Bearish, 2, model.Neutral},
		{"macro six stacks", nil, model.Bearish, 6, model.Bearish, 2, model.Neutral},
		{"cot tech macro", nil, model.Bullish, 3, model.Bullish, 3, model.Bullish},
		{"cot tech strong macro", nil, model.Bullish, 6, model.Bullish, 4, model.StrongBullish},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AggregateBias(tt.sentiment, tt.cot, tt.macro, tt.tech)
			assert.Equal(t, tt.raw, res.RawScore)
			assert.Equal(t, tt.label, res.Label)
			assert.InDelta(t, float64(tt.raw)/5, res.Confidence, 1e-12)
		})
	}
}

func TestMapLabel_AllBoundaries(t *testing.T) {
	tests := []struct {
		raw   int
		label model.Label
	}{
		{5, model.StrongBullish},
		{4, model.StrongBullish},
		{3, model.Bullish},
		{2, model.Neutral},
		{1, model.Bearish},
		{0, model.StrongBearish},
		{-1, model.StrongBearish},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.label, mapLabel(tt.raw), "raw %d", tt.raw)
	}
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "None", formatPercent(nil))
	assert.Equal(t, "40.0", formatPercent(floatPtr(40)))
	assert.Equal(t, "62.5", formatPercent(floatPtr(62.5)))
	assert.Equal(t, "0.0", formatPercent(floatPtr(0)))
	assert.Equal(t, "33.3", formatPercent(floatPtr(33.3)))
}

func economicFixture() model.EconomicTable {
	return model.EconomicTable{
		"Euro Area":     {Country: "Euro Area", Score: intPtr(5)},
		"United States": {Country: "United States", Score: intPtr(2)},
		"Japan":         {Country: "Japan", Values: healthyEconomy()},
	}
}

func TestEvaluateBias_EURUSD(t *testing.T) {
	closes := []float64{1.08, 1.081, 1.079, 1.082, 1.083, 1.085, 1.084, 1.086, 1.088, 1.09}
	ev, err := EvaluateBias("EUR_USD", positioningFixture(), economicFixture(), seriesFromCloses(closes...))
	require.NoError(t, err)

	assert.Equal(t, "EUR", ev.Pair.BaseCurrency)
	assert.Equal(t, model.Bullish, ev.InstitutionalBase.Bias)
	assert.Equal(t, model.Bearish, ev.InstitutionalQuote.Bias)
	assert.Equal(t, model.Retail, ev.RetailBase.Class)
	assert.Equal(t, 5, ev.BaseEconomy.Score)
	assert.Equal(t, 2, ev.QuoteEconomy.Score)
	assert.Equal(t, 6, ev.MacroScore)
	assert.Equal(t, model.Bullish, ev.TechBias)
	assert.Equal(t, 10, ev.CandleCount)
	assert.Nil(t, ev.SentimentPercent)

	// cot + tech + macro>=3 + macro>=5
	assert.Equal(t, 4, ev.Result.RawScore)
	assert.Equal(t, model.StrongBullish, ev.Result.Label)
	assert.InDelta(t, 0.8, ev.Result.Confidence, 1e-12)
	assert.Equal(t, "Bias is Strong Bullish based on retail: None%, COT: Bullish, Macro score: 6, Tech: Bullish", ev.Result.Commentary)

	rows := ev.Sentiment()
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"EUR", "USD", "EUR", "USD"}, []string{rows[0].Currency, rows[1].Currency, rows[2].Currency, rows[3].Currency})
}

func TestEvaluateBias_MissingDataDegrades(t *testing.T) {
	ev, err := EvaluateBias("usd/chf", nil, nil, nil)
	require.NoError(t, err)

	for _, s := range ev.Sentiment() {
		assert.Equal(t, model.Neutral, s.Bias)
		assert.Zero(t, s.Net)
	}
	assert.False(t, ev.BaseEconomy.Found)
	assert.False(t, ev.QuoteEconomy.Found)
	assert.Equal(t, 3, ev.MacroScore)
	assert.Equal(t, model.Neutral, ev.TechBias)
	assert.Equal(t, 1, ev.Result.RawScore)
	assert.Equal(t, model.Bearish, ev.Result.Label)
}

func TestEvaluateBias_UnknownPair(t *testing.T) {
	_, err := EvaluateBias("XAU_USD", nil, nil, nil)
	assert.ErrorIs(t, err, ErrUnknownPair)
}

func TestEngine_RetailSentimentSource(t *testing.T) {
	engine := NewEngine(nil, EvaluateOptions{SentimentSource: SentimentRetail})
	ev, err := engine.EvaluateBias("EURJPY", positioningFixture(), economicFixture(), nil)
	require.NoError(t, err)

	require.NotNil(t, ev.SentimentPercent)
	assert.Equal(t, 30.0, *ev.SentimentPercent)
	// retail<50 + cot; Euro Area 5 vs Japan 6 gives macro 2.
	assert.Equal(t, 2, ev.MacroScore)
	assert.Equal(t, 2, ev.Result.RawScore)
	assert.Equal(t, model.Neutral, ev.Result.Label)
	assert.Contains(t, ev.Result.Commentary, "retail: 30.0%")
}

func TestEngine_CustomPair(t *testing.T) {
	reg := model.DefaultRegistry()
	reg.Register(model.Pair{Symbol: "nzd_jpy", BaseCurrency: "NZD", QuoteCurrency: "JPY", BaseCountry: "New Zealand", QuoteCountry: "Japan"})
	engine := NewEngine(reg, EvaluateOptions{})

	ev, err := engine.EvaluateBias("NZD_JPY", positioningFixture(), economicFixture(), nil)
	require.NoError(t, err)
	assert.Equal(t, "NZD_JPY", ev.Pair.Symbol)
	assert.Equal(t, model.Neutral, ev.InstitutionalBase.Bias)
	// New Zealand absent (0) vs Japan 6.
	assert.Equal(t, 0, ev.MacroScore)
}
