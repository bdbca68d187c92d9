package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"EdgeFinder/internal/collector"
	"EdgeFinder/internal/config"
	"EdgeFinder/internal/evaluator"
	"EdgeFinder/internal/logging"
	"EdgeFinder/internal/strategy"
)

// Execute builds the command tree and runs it.
func Execute(ctx context.Context) error {
	var cfgPath string
	var cfg *config.Config

	root := &cobra.Command{
		Use:           "edgefinder",
		Short:         "Composite directional bias for currency pairs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				return err
			}
			c, err := config.Load(config.Path(cfgPath))
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := c.Validate(); err != nil {
				return fmt.Errorf("config validation: %w", err)
			}
			logging.Setup(c.LogLevel, c.LogFormat)
			cfg = c
			return nil
		},
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "",
		"path to the YAML config (default $CONFIG_PATH or "+config.DefaultPath+")")

	cfgFn := func() *config.Config { return cfg }
	root.AddCommand(evaluateCmd(cfgFn), pairsCmd(cfgFn), serveCmd(cfgFn))
	return root.ExecuteContext(ctx)
}

// newEvaluator wires the candle sources, reference loader and engine.
func newEvaluator(cfg *config.Config) *evaluator.Evaluator {
	var primary collector.CandleFetcher
	if cfg.Oanda.APIKey != "" {
		primary = collector.NewOandaFetcher(cfg.Oanda.BaseURL, cfg.Oanda.APIKey, cfg.Proxy)
	} else {
		log.Warn().Msg("OANDA_API_KEY not set, using the fallback candle source only")
	}
	var fallback collector.CandleFetcher
	if cfg.Candles.Fallback || primary == nil {
		fallback = collector.NewYahooFetcher(cfg.Proxy)
	}
	col := collector.NewCollector(primary, fallback, cfg.Candles.Granularity, cfg.Candles.Count)

	engine := strategy.NewEngine(cfg.Registry(), cfg.EvaluateOptions())
	log.Debug().
		Str("reference", cfg.Reference.Path).
		Str("sentiment_source", cfg.Bias.SentimentSource).
		Msg("evaluator ready")
	return evaluator.New(engine, evaluator.FileLoader(cfg.Reference.Path), col)
}
