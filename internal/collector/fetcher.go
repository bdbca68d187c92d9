package collector

import (
	"context"
	"time"

	"EdgeFinder/internal/model"
)

// CandleFetcher defines the interface for fetching candles for an instrument
// such as "EUR_USD" at an OANDA-style granularity ("H4", "D", ...).
type CandleFetcher interface {
	FetchCandles(ctx context.Context, instrument, granularity string, count int) (model.CandleSeries, error)
	Name() string
}

// Granularities lists the OANDA candle granularities and their bar length.
var Granularities = map[string]time.Duration{
	"M1":  time.Minute,
	"M5":  5 * time.Minute,
	"M15": 15 * time.Minute,
	"M30": 30 * time.Minute,
	"H1":  time.Hour,
	"H2":  2 * time.Hour,
	"H4":  4 * time.Hour,
	"H6":  6 * time.Hour,
	"H8":  8 * time.Hour,
	"H12": 12 * time.Hour,
	"D":   24 * time.Hour,
	"W":   7 * 24 * time.Hour,
}

// ValidGranularity reports whether g is a supported granularity.
func ValidGranularity(g string) bool {
	_, ok := Granularities[g]
	return ok
}
