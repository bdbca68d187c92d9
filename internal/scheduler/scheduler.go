package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"EdgeFinder/internal/model"
	"EdgeFinder/internal/notifier"
	"EdgeFinder/internal/strategy"
)

// Evaluator computes the bias for a pair selector.
type Evaluator interface {
	Evaluate(ctx context.Context, selector string) (*model.Evaluation, error)
}

// Sender delivers a report. A nil Sender disables notifications.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages cron evaluation of watched pairs and answers commands.
type Scheduler struct {
	Cron      *cron.Cron
	Evaluator Evaluator
	Notifier  Sender
	Registry  *model.PairRegistry
	Watch     []string
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, ev Evaluator, sender Sender, reg *model.PairRegistry, watch []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Evaluator: ev,
		Notifier:  sender,
		Registry:  reg,
		Watch:     watch,
		Ctx:       ctx,
	}
}

// Register adds the watched-pair evaluation on evalCron.
func (s *Scheduler) Register(evalCron string) error {
	if _, err := s.Cron.AddFunc(evalCron, s.evaluateWatched); err != nil {
		return fmt.Errorf("register evaluation task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("pairs", len(s.Watch)).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Info().Msg("scheduler stopped")
}

// RunNow evaluates the watched pairs immediately.
func (s *Scheduler) RunNow() {
	s.evaluateWatched()
}

// evaluateWatched scores every watched pair. A failing pair does not stop
// the others.
func (s *Scheduler) evaluateWatched() {
	runID := uuid.NewString()
	logger := log.With().Str("run", runID).Logger()
	logger.Info().Strs("pairs", s.Watch).Msg("evaluation run started")

	failed := 0
	for _, sel := range s.Watch {
		ev, err := s.Evaluator.Evaluate(s.Ctx, sel)
		if err != nil {
			failed++
			logger.Error().Err(err).Str("pair", sel).Msg("evaluation failed")
			continue
		}
		s.trySend(notifier.FormatBiasReport(ev, notifier.HTML))
	}
	logger.Info().Int("failed", failed).Msg("evaluation run finished")
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// Group chats append the bot name: /bias@EdgeFinderBot
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	switch strings.TrimPrefix(name, "/") {
	case "bias":
		if len(fields) < 2 {
			return "Usage: /bias EUR_USD"
		}
		ev, err := s.Evaluator.Evaluate(ctx, fields[1])
		if errors.Is(err, strategy.ErrUnknownPair) {
			return fmt.Sprintf("Unknown pair %s. Send /pairs for the list.", html.EscapeString(fields[1]))
		}
		if err != nil {
			log.Error().Err(err).Str("pair", fields[1]).Msg("command evaluation failed")
			return "Evaluation failed, check the logs."
		}
		return notifier.FormatBiasReport(ev, notifier.HTML)
	case "pairs":
		return notifier.FormatPairList(s.Registry.Pairs(), notifier.HTML)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		log.Debug().Msg("telegram disabled, report not sent")
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
