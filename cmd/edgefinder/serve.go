package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"EdgeFinder/internal/config"
	"EdgeFinder/internal/metrics"
	"EdgeFinder/internal/notifier"
	"EdgeFinder/internal/scheduler"
)

func serveCmd(cfg func() *config.Config) *cobra.Command {
	var runOnStart bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Evaluate watched pairs on a schedule and answer Telegram commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := cfg()
			ctx := cmd.Context()
			log.Info().Msg("EdgeFinder starting...")

			ev := newEvaluator(c)

			var tn *notifier.TelegramNotifier
			var sender scheduler.Sender
			if c.TelegramEnabled() {
				tn = notifier.NewTelegramNotifier(c.Telegram.BotToken, c.Telegram.ChatID, c.Proxy)
				sender = tn
			} else {
				log.Warn().Msg("telegram not configured, reports are only logged")
			}

			sched := scheduler.NewScheduler(ctx, ev, sender, c.Registry(), c.Schedule.Watch)
			if err := sched.Register(c.Schedule.EvalCron); err != nil {
				return err
			}
			sched.Start()
			defer sched.Stop()

			if tn != nil {
				go tn.StartPolling(ctx, sched.HandleCommand)
				log.Info().Msg("telegram polling started")
			}

			if c.MetricsAddr != "" {
				srv := metrics.Serve(c.MetricsAddr)
				log.Info().Str("addr", c.MetricsAddr).Msg("metrics server started")
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
			}

			if runOnStart || os.Getenv("RUN_ON_START") == "true" {
				log.Info().Msg("running evaluation now")
				go sched.RunNow()
			}

			log.Info().Str("cron", c.Schedule.EvalCron).Msg("EdgeFinder is running. Press Ctrl+C to stop.")
			<-ctx.Done()
			log.Info().Msg("shutdown signal received, stopping...")
			return nil
		},
	}
	cmd.Flags().BoolVar(&runOnStart, "run-on-start", false, "evaluate watched pairs immediately")
	return cmd
}
