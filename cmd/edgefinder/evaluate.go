package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"EdgeFinder/internal/config"
	"EdgeFinder/internal/notifier"
)

func evaluateCmd(cfg func() *config.Config) *cobra.Command {
	var (
		pair  string
		plain bool
	)
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the bias for one pair and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := newEvaluator(cfg()).Evaluate(cmd.Context(), pair)
			if err != nil {
				return err
			}
			style := notifier.HTML
			if plain {
				style = notifier.Plain
			}
			fmt.Fprintln(cmd.OutOrStdout(), notifier.FormatBiasReport(ev, style))
			return nil
		},
	}
	cmd.Flags().StringVar(&pair, "pair", "EUR_USD", "pair to evaluate (EUR_USD, eurusd, EUR/USD)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print without Telegram HTML markup")
	return cmd
}

func pairsCmd(cfg func() *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "pairs",
		Short: "List the pairs that can be evaluated",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), notifier.FormatPairList(cfg().Registry().Pairs(), notifier.Plain))
			return nil
		},
	}
}
