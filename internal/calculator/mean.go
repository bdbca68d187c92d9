package calculator

import (
	"errors"

	"EdgeFinder/internal/model"
)

// ErrNoData is returned when a calculation is asked to reduce an empty input.
var ErrNoData = errors.New("no data")

// Mean computes the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrNoData
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// ExtractCloses returns the closing prices of series in order.
func ExtractCloses(series model.CandleSeries) []float64 {
	closes := make([]float64, len(series))
	for i, c := range series {
		closes[i] = c.Close
	}
	return closes
}
