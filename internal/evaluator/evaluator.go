// Package evaluator wires reference data and candles into the bias engine
// for one pair selection at a time.
package evaluator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"EdgeFinder/internal/metrics"
	"EdgeFinder/internal/model"
	"EdgeFinder/internal/refdata"
	"EdgeFinder/internal/strategy"
)

// CandleSource supplies the candle series for a pair and never fails.
type CandleSource interface {
	Candles(ctx context.Context, pair model.Pair) model.CandleSeries
}

// TableLoader reads the reference tables.
type TableLoader func() (*refdata.Tables, error)

// FileLoader returns a TableLoader reading path on every call.
func FileLoader(path string) TableLoader {
	return func() (*refdata.Tables, error) { return refdata.Load(path) }
}

// Evaluator runs a full evaluation per pair selection. Nothing is cached
// between calls: reference tables and candles are read fresh every time.
type Evaluator struct {
	Engine  *strategy.Engine
	Tables  TableLoader
	Candles CandleSource
}

// New creates an Evaluator.
func New(engine *strategy.Engine, tables TableLoader, candles CandleSource) *Evaluator {
	return &Evaluator{Engine: engine, Tables: tables, Candles: candles}
}

// Evaluate resolves the pair, loads the reference tables, fetches candles
// and scores the bias.
func (e *Evaluator) Evaluate(ctx context.Context, selector string) (*model.Evaluation, error) {
	pair, ok := e.Engine.Registry.Lookup(selector)
	if !ok {
		return nil, fmt.Errorf("%w: %q", strategy.ErrUnknownPair, selector)
	}

	tables, err := e.Tables()
	if err != nil {
		return nil, fmt.Errorf("load reference tables: %w", err)
	}
	candles := e.Candles.Candles(ctx, pair)

	ev, err := e.Engine.EvaluateBias(pair.Symbol, tables.Positioning, tables.Economic, candles)
	if err != nil {
		return nil, err
	}
	metrics.ObserveEvaluation(ev)
	log.Info().
		Str("pair", pair.Symbol).
		Str("bias", string(ev.Result.Label)).
		Float64("confidence", ev.Result.Confidence).
		Int("macro", ev.MacroScore).
		Str("tech", string(ev.TechBias)).
		Msg("bias evaluated")
	return ev, nil
}
