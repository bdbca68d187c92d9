package strategy

import (
	"EdgeFinder/internal/calculator"
	"EdgeFinder/internal/model"
)

// MinTechnicalCandles is the shortest series the technical estimator will judge.
const MinTechnicalCandles = 10

// TechnicalBias reduces a candle series to a trend label by comparing the
// latest close with the mean close of the whole series.
// Series shorter than MinTechnicalCandles are Neutral. A latest close equal
// to the mean is Bearish.
func TechnicalBias(series model.CandleSeries) model.Label {
	if len(series) < MinTechnicalCandles {
		return model.Neutral
	}
	mean, err := calculator.Mean(calculator.ExtractCloses(series))
	if err != nil {
		return model.Neutral
	}
	latest, _ := series.Latest()
	if latest.Close > mean {
		return model.Bullish
	}
	return model.Bearish
}
