package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"EdgeFinder/internal/model"
)

// YahooFetcher implements CandleFetcher using the Yahoo Finance chart API.
type YahooFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewYahooFetcher creates a new Yahoo Finance fetcher.
func NewYahooFetcher(proxyURL string) *YahooFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooFetcher{
		BaseURL: "https://query1.finance.yahoo.com",
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

// yahooSymbol maps "EUR_USD" to Yahoo's FX ticker "EURUSD=X".
func yahooSymbol(instrument string) string {
	return strings.ReplaceAll(model.NormalizeSymbol(instrument), "_", "") + "=X"
}

// yahooQuery is how a granularity is served by the chart API: an interval,
// a range long enough to cover typical counts, and how many bars to merge.
type yahooQuery struct {
	Interval string
	Range    string
	Merge    time.Duration
}

var yahooQueries = map[string]yahooQuery{
	"M1":  {"1m", "5d", 0},
	"M5":  {"5m", "1mo", 0},
	"M15": {"15m", "1mo", 0},
	"M30": {"30m", "1mo", 0},
	"H1":  {"60m", "3mo", 0},
	"H2":  {"60m", "6mo", 2 * time.Hour},
	"H4":  {"60m", "6mo", 4 * time.Hour},
	"H6":  {"60m", "1y", 6 * time.Hour},
	"H8":  {"60m", "1y", 8 * time.Hour},
	"H12": {"60m", "1y", 12 * time.Hour},
	"D":   {"1d", "2y", 0},
	"W":   {"1wk", "5y", 0},
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func at(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}

// FetchCandles returns up to count candles, oldest first.
func (f *YahooFetcher) FetchCandles(ctx context.Context, instrument, granularity string, count int) (model.CandleSeries, error) {
	q, ok := yahooQueries[granularity]
	if !ok {
		return nil, fmt.Errorf("yahoo: unsupported granularity %q", granularity)
	}
	series, err := f.fetchChart(ctx, yahooSymbol(instrument), q.Interval, q.Range)
	if err != nil {
		return nil, err
	}
	if q.Merge > 0 {
		series = aggregateBars(series, q.Merge)
	}
	if count > 0 && len(series) > count {
		series = series[len(series)-count:]
	}
	return series, nil
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string) (model.CandleSeries, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		f.BaseURL, url.PathEscape(symbol), interval, rng)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	series := make(model.CandleSeries, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		c := at(quote.Close, i)
		if c == 0 {
			continue // null bar, market closed
		}
		series = append(series, model.Candle{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   at(quote.Open, i),
			High:   at(quote.High, i),
			Low:    at(quote.Low, i),
			Close:  c,
			Volume: at(quote.Volume, i),
		})
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Time.Before(series[j].Time) })
	return series, nil
}

// aggregateBars merges consecutive bars into buckets of the given length
// truncated on UTC. OANDA anchors its H2..H12 candles to 17:00 New York, so
// bucket edges can sit an hour or more off from the primary source.
func aggregateBars(bars model.CandleSeries, period time.Duration) model.CandleSeries {
	if len(bars) == 0 {
		return nil
	}
	var out model.CandleSeries
	var cur model.Candle
	var bucket time.Time
	started := false

	for _, b := range bars {
		key := b.Time.UTC().Truncate(period)
		if !started || !key.Equal(bucket) {
			if started {
				out = append(out, cur)
			}
			bucket = key
			cur = model.Candle{Time: key, Open: b.Open, High: b.High, Low: b.Low, Close: b.Close, Volume: b.Volume}
			started = true
			continue
		}
		if b.High > cur.High {
			cur.High = b.High
		}
		if b.Low < cur.Low {
			cur.Low = b.Low
		}
		cur.Close = b.Close
		cur.Volume += b.Volume
	}
	out = append(out, cur)
	return out
}
