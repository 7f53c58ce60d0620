// Package scheduler owns the calendar loop. It decides when a check runs and
// nothing else; the check itself is an injected function so the pipeline
// stays independently testable.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
)

// RunFunc is one scheduled invocation of the pipeline.
type RunFunc func(ctx context.Context)

// Scheduler triggers the run once immediately on Start and then daily at the
// configured time.
type Scheduler struct {
	cron   *cron.Cron
	run    RunFunc
	logger *slog.Logger
	spec   string
}

type Option func(*Scheduler)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

func New(runTime string, run RunFunc, opts ...Option) (*Scheduler, error) {
	if run == nil {
		return nil, errors.New("run function is required")
	}
	spec, err := CronSpec(runTime)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		cron:   cron.New(),
		run:    run,
		logger: slog.New(slog.DiscardHandler),
		spec:   spec,
	}
	for _, opt := range opts {
		opt(s)
	}

	if _, err := s.cron.AddFunc(spec, func() {
		s.run(context.Background())
	}); err != nil {
		return nil, fmt.Errorf("schedule daily run: %w", err)
	}
	return s, nil
}

// Start performs the initial check and then hands off to the cron loop. The
// cron loop runs on its own goroutine; Start returns once it is armed.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.InfoContext(ctx, "scheduler started", "cron", s.spec)

	s.logger.InfoContext(ctx, "running initial check")
	s.run(ctx)

	s.cron.Start()
}

// Stop halts the cron loop and waits for any in-flight run to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// CronSpec converts an "HH:MM" run time into a standard cron expression.
func CronSpec(runTime string) (string, error) {
	hhmm := strings.SplitN(runTime, ":", 2)
	if len(hhmm) != 2 {
		return "", fmt.Errorf("run time %q is not in HH:MM form", runTime)
	}
	hour, err := strconv.Atoi(hhmm[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("run time %q has invalid hour", runTime)
	}
	minute, err := strconv.Atoi(hhmm[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("run time %q has invalid minute", runTime)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
