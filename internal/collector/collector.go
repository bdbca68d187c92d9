package collector

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"EdgeFinder/internal/metrics"
	"EdgeFinder/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price   float64
	Candles model.CandleSeries
	Err     error
	Calls   int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchCandles(_ context.Context, _ string, granularity string, count int) (model.CandleSeries, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Candles != nil {
		return m.Candles, nil
	}
	step, ok := Granularities[granularity]
	if !ok {
		step = 4 * time.Hour
	}
	return generateMockCandles(m.Price, count, step), nil
}

func generateMockCandles(basePrice float64, count int, step time.Duration) model.CandleSeries {
	series := make(model.CandleSeries, count)
	end := time.Now().UTC().Truncate(step)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		series[i] = model.Candle{
			Time:  end.Add(-time.Duration(count-i) * step),
			Open:  p * 0.999,
			High:  p * 1.002,
			Low:   p * 0.998,
			Close: p,
		}
	}
	return series
}

// Collector fetches candles for pairs, falling back to a secondary source.
type Collector struct {
	Primary     CandleFetcher
	Fallback    CandleFetcher // may be nil
	Granularity string
	Count       int
}

// NewCollector creates a new Collector.
func NewCollector(primary, fallback CandleFetcher, granularity string, count int) *Collector {
	return &Collector{Primary: primary, Fallback: fallback, Granularity: granularity, Count: count}
}

// Candles returns the candle series for pair. It never fails: when every
// source errors the series is empty and the technical bias reads Neutral.
func (c *Collector) Candles(ctx context.Context, pair model.Pair) model.CandleSeries {
	for _, f := range []CandleFetcher{c.Primary, c.Fallback} {
		if f == nil {
			continue
		}
		series, err := f.FetchCandles(ctx, pair.Symbol, c.Granularity, c.Count)
		if err != nil {
			metrics.CandleFetchFailures.WithLabelValues(f.Name()).Inc()
			log.Warn().Err(err).Str("source", f.Name()).Str("pair", pair.Symbol).Msg("candle fetch failed")
			continue
		}
		log.Debug().Str("source", f.Name()).Str("pair", pair.Symbol).Int("candles", len(series)).Msg("candles fetched")
		return series
	}
	return model.CandleSeries{}
}
