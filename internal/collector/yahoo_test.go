package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EdgeFinder/internal/model"
)

const yahooResponse = `{"chart":{"result":[{
  "timestamp":[1709251200,1709254800,1709258400,1709262000,1709265600,1709269200],
  "indicators":{"quote":[{
    "open":  [1.0800,1.0810,1.0820,1.0830,null,1.0850],
    "high":  [1.0815,1.0825,1.0835,1.0845,null,1.0865],
    "low":   [1.0795,1.0805,1.0815,1.0825,null,1.0845],
    "close": [1.0810,1.0820,1.0830,1.0840,null,1.0860],
    "volume":[0,0,0,0,null,0]
  }]}}],"error":null}}`

func TestYahooFetcher_FetchCandles(t *testing.T) {
	var gotPath, gotInterval string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInterval = r.URL.Query().Get("interval")
		_, _ = w.Write([]byte(yahooResponse))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL

	series, err := f.FetchCandles(context.Background(), "EUR_USD", "H1", 3)
	require.NoError(t, err)
	assert.Equal(t, "/v8/finance/chart/EURUSD=X", gotPath)
	assert.Equal(t, "60m", gotInterval)
	require.Len(t, series, 3, "null bar skipped, trimmed to count")
	assert.Equal(t, 1.0860, series[2].Close)

	series, err = f.FetchCandles(context.Background(), "EUR_USD", "H4", 100)
	require.NoError(t, err)
	// 00:00-04:00 UTC bucket holds four bars, 04:00 bucket the last one.
	require.Len(t, series, 2)
	assert.Equal(t, 1.0800, series[0].Open)
	assert.Equal(t, 1.0840, series[0].Close)
	assert.Equal(t, 1.0845, series[0].High)
	assert.Equal(t, 1.0795, series[0].Low)
}

func TestYahooFetcher_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher("")
	f.BaseURL = srv.URL

	_, err := f.FetchCandles(context.Background(), "EUR_USD", "H4", 10)
	assert.ErrorContains(t, err, "No data found")

	_, err = f.FetchCandles(context.Background(), "EUR_USD", "S5", 10)
	assert.ErrorContains(t, err, "unsupported granularity")
}

func TestYahooSymbol(t *testing.T) {
	assert.Equal(t, "EURUSD=X", yahooSymbol("EUR_USD"))
	assert.Equal(t, "USDJPY=X", yahooSymbol("usd/jpy"))
}

func TestAggregateBars(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	var bars model.CandleSeries
	for i := 0; i < 8; i++ {
		p := float64(i + 1)
		bars = append(bars, model.Candle{Time: start.Add(time.Duration(i) * time.Hour), Open: p, High: p + 0.5, Low: p - 0.5, Close: p, Volume: 1})
	}

	out := aggregateBars(bars, 4*time.Hour)
	require.Len(t, out, 2)
	assert.Equal(t, model.Candle{Time: start, Open: 1, High: 4.5, Low: 0.5, Close: 4, Volume: 4}, out[0])
	assert.Equal(t, model.Candle{Time: start.Add(4 * time.Hour), Open: 5, High: 8.5, Low: 4.5, Close: 8, Volume: 4}, out[1])

	assert.Nil(t, aggregateBars(nil, time.Hour))
}

func TestAggregateBars_BucketsOnUTC(t *testing.T) {
	ny := time.FixedZone("EST", -5*3600)
	// 19:00..22:00 EST on Feb 29 is 00:00..03:00 UTC on Mar 1.
	start := time.Date(2024, 2, 29, 19, 0, 0, 0, ny)
	var bars model.CandleSeries
	for i := 0; i < 4; i++ {
		bars = append(bars, model.Candle{Time: start.Add(time.Duration(i) * time.Hour), Open: 1, High: 1, Low: 1, Close: 1})
	}

	out := aggregateBars(bars, 4*time.Hour)
	require.Len(t, out, 1)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), out[0].Time)
}
