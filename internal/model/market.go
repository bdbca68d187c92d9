package model

import "time"

// Candle represents a single mid-price bar.
type Candle struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// CandleSeries is a chronologically ordered run of candles, oldest first.
// It may be empty when the upstream source had nothing to offer.
type CandleSeries []Candle

// Latest returns the most recent candle and false if the series is empty.
func (s CandleSeries) Latest() (Candle, bool) {
	if len(s) == 0 {
		return Candle{}, false
	}
	return s[len(s)-1], true
}
