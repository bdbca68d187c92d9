package strategy

import (
	"math"

	"EdgeFinder/internal/model"
)

// ResolveSentiment summarises the positioning of one currency for one trader class.
// A currency with no record is Neutral with zero counts; a record with a net
// of zero is Bearish.
func ResolveSentiment(table model.PositioningTable, currency string, class model.TraderClass) model.SentimentStats {
	stats := model.SentimentStats{Currency: currency, Class: class}
	rec, ok := table.Lookup(currency)
	if !ok {
		stats.Bias = model.Neutral
		return stats
	}
	stats.Longs, stats.Shorts = rec.Counts(class)
	if class == model.Institutional {
		stats.ReportBias = rec.Bias
	}
	stats.Net = stats.Longs - stats.Shorts
	if stats.Net > 0 {
		stats.Bias = model.Bullish
	} else {
		stats.Bias = model.Bearish
	}
	return stats
}

// RetailLongPercent returns the retail long share of currency in percent,
// rounded to one decimal. It returns nil when the currency has no record and
// 50 when the record holds no retail positions at all.
func RetailLongPercent(table model.PositioningTable, currency string) *float64 {
	rec, ok := table.Lookup(currency)
	if !ok {
		return nil
	}
	total := rec.RetLongs + rec.RetShorts
	pct := 50.0
	if total != 0 {
		pct = math.Round(float64(rec.RetLongs)/float64(total)*1000) / 10
	}
	return &pct
}
