// Package pipeline composes one password expiration check: directory query,
// expiration evaluation, warning-window filtering, and notification dispatch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"passwatch/internal/directory"
	"passwatch/internal/expiry"
	"passwatch/internal/notify"
	"passwatch/internal/platform/metrics"
)

// Searcher is the directory collaborator.
type Searcher interface {
	Users(ctx context.Context) ([]directory.UserRecord, error)
}

// Dispatcher delivers the dispatch set and reports every attempt.
type Dispatcher interface {
	Dispatch(ctx context.Context, alerts []expiry.Alert) *notify.Report
}

// Service drives one check per invocation. It holds no state between runs;
// policy and window are fixed at construction for the process lifetime.
type Service struct {
	dir        Searcher
	dispatcher Dispatcher
	policy     expiry.Policy
	window     expiry.Window
	logger     *slog.Logger
	metrics    *metrics.Metrics
	now        func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithNow injects the clock, so runs are testable without time mocking.
func WithNow(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func New(dir Searcher, dispatcher Dispatcher, policy expiry.Policy, window expiry.Window, opts ...Option) (*Service, error) {
	if dir == nil {
		return nil, errors.New("directory searcher is required")
	}
	if dispatcher == nil {
		return nil, errors.New("dispatcher is required")
	}
	if policy.MaxAgeDays <= 0 {
		return nil, fmt.Errorf("password max age must be positive, got %d", policy.MaxAgeDays)
	}

	s := &Service{
		dir:        dir,
		dispatcher: dispatcher,
		policy:     policy,
		window:     window,
		logger:     slog.New(slog.DiscardHandler),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// RunOnce performs one full check. A directory failure abandons the run and
// is returned to the caller; the next scheduled invocation is the retry.
// Delivery failures never surface here, they live in the report.
func (s *Service) RunOnce(ctx context.Context) (*notify.Report, error) {
	now := s.now()
	if s.metrics != nil {
		s.metrics.ChecksTotal.Inc()
	}
	s.logger.InfoContext(ctx, "starting password expiration check")

	records, err := s.dir.Users(ctx)
	if err != nil {
		if s.metrics != nil {
			s.metrics.CheckFailures.Inc()
		}
		return nil, fmt.Errorf("query directory: %w", err)
	}

	var due []expiry.Alert
	for _, rec := range records {
		alert, ok := expiry.Evaluate(rec, s.policy, now)
		if !ok || !s.window.Contains(alert.DaysRemaining) {
			continue
		}
		due = append(due, alert)
	}

	if s.metrics != nil {
		s.metrics.AlertsFound.Add(float64(len(due)))
		s.metrics.LastCheckAlerts.Set(float64(len(due)))
	}

	if len(due) == 0 {
		s.logger.InfoContext(ctx, "no users found with expiring passwords")
	}

	report := s.dispatcher.Dispatch(ctx, due)

	for _, alert := range due {
		s.logger.InfoContext(ctx, "notified user",
			"run_id", report.RunID,
			"username", alert.Username,
			"display_name", alert.DisplayName,
			"days_remaining", alert.DaysRemaining,
		)
	}
	s.logger.InfoContext(ctx, "password expiration check completed",
		"run_id", report.RunID,
		"users_due", len(due),
		"emails_sent", report.Succeeded("email"),
		"emails_attempted", report.Attempted("email"),
		"failures", len(report.Failures()),
	)

	return report, nil
}
