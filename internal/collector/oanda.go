package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"EdgeFinder/internal/model"
)

// OandaFetcher implements CandleFetcher using the OANDA v3 REST API.
type OandaFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
	Limiter *rate.Limiter
	Breaker *gobreaker.CircuitBreaker
}

// NewOandaFetcher creates a fetcher with optional proxy support.
func NewOandaFetcher(baseURL, apiKey, proxyURL string) *OandaFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	st := gobreaker.Settings{
		Name:     "oanda",
		Interval: 60 * time.Second,
		Timeout:  60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}
	return &OandaFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		// OANDA allows 120 requests per second per connection; stay well below it.
		Limiter: rate.NewLimiter(rate.Limit(10), 10),
		Breaker: gobreaker.NewCircuitBreaker(st),
	}
}

func (f *OandaFetcher) Name() string { return "oanda" }

// oandaCandles is the response shape of /v3/instruments/{instrument}/candles.
type oandaCandles struct {
	Instrument string `json:"instrument"`
	Candles    []struct {
		Complete bool   `json:"complete"`
		Time     string `json:"time"`
		Volume   int64  `json:"volume"`
		Mid      *struct {
			O string `json:"o"`
			H string `json:"h"`
			L string `json:"l"`
			C string `json:"c"`
		} `json:"mid"`
	} `json:"candles"`
	ErrorMessage string `json:"errorMessage"`
}

// FetchCandles returns the complete mid-price candles, oldest first.
func (f *OandaFetcher) FetchCandles(ctx context.Context, instrument, granularity string, count int) (model.CandleSeries, error) {
	if err := f.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("oanda rate limit: %w", err)
	}
	out, err := f.Breaker.Execute(func() (interface{}, error) {
		return f.fetch(ctx, instrument, granularity, count)
	})
	if err != nil {
		return nil, err
	}
	return out.(model.CandleSeries), nil
}

func (f *OandaFetcher) fetch(ctx context.Context, instrument, granularity string, count int) (model.CandleSeries, error) {
	q := url.Values{}
	q.Set("granularity", granularity)
	q.Set("count", strconv.Itoa(count))
	q.Set("price", "M")
	endpoint := fmt.Sprintf("%s/v3/instruments/%s/candles?%s", f.BaseURL, url.PathEscape(instrument), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch candles: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read candles: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch candles: status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload oandaCandles
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode candles: %w", err)
	}
	if payload.Candles == nil {
		return nil, fmt.Errorf("oanda: no candles in response: %s", payload.ErrorMessage)
	}

	series := make(model.CandleSeries, 0, len(payload.Candles))
	for _, c := range payload.Candles {
		if !c.Complete || c.Mid == nil {
			continue
		}
		ts, err := time.Parse(time.RFC3339Nano, c.Time)
		if err != nil {
			return nil, fmt.Errorf("parse candle time %q: %w", c.Time, err)
		}
		candle := model.Candle{Time: ts, Volume: float64(c.Volume)}
		prices := []struct {
			raw string
			dst *float64
		}{
			{c.Mid.O, &candle.Open},
			{c.Mid.H, &candle.High},
			{c.Mid.L, &candle.Low},
			{c.Mid.C, &candle.Close},
		}
		for _, p := range prices {
			v, err := strconv.ParseFloat(p.raw, 64)
			if err != nil {
				return nil, fmt.Errorf("parse candle price %q: %w", p.raw, err)
			}
			*p.dst = v
		}
		series = append(series, candle)
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Time.Before(series[j].Time) })
	return series, nil
}
