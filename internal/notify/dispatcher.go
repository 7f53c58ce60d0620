package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"passwatch/internal/expiry"
	"passwatch/internal/platform/metrics"
)

const defaultConcurrency = 4

// Dispatcher turns a dispatch set of alerts into delivery attempts across all
// channels. Attempts are independent of each other and run concurrently up to
// a configured bound; correctness does not depend on the concurrency, only
// latency does.
type Dispatcher struct {
	users       []UserChannel
	broadcasts  []BroadcastChannel
	logger      *slog.Logger
	metrics     *metrics.Metrics
	concurrency int
}

type Option func(*Dispatcher)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) {
		d.metrics = m
	}
}

// WithConcurrency bounds parallel delivery attempts within one dispatch.
func WithConcurrency(n int) Option {
	return func(d *Dispatcher) {
		d.concurrency = n
	}
}

func New(users []UserChannel, broadcasts []BroadcastChannel, opts ...Option) (*Dispatcher, error) {
	if len(users) == 0 && len(broadcasts) == 0 {
		return nil, errors.New("at least one channel is required")
	}

	d := &Dispatcher{
		users:       users,
		broadcasts:  broadcasts,
		logger:      slog.New(slog.DiscardHandler),
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.concurrency < 1 {
		return nil, fmt.Errorf("concurrency must be at least 1, got %d", d.concurrency)
	}
	return d, nil
}

// Dispatch delivers the alert set to every channel and reports each attempt.
// An empty alert set produces an empty report with no delivery attempts.
func (d *Dispatcher) Dispatch(ctx context.Context, alerts []expiry.Alert) *Report {
	report := &Report{RunID: uuid.New()}
	if len(alerts) == 0 {
		return report
	}

	var mu sync.Mutex
	record := func(o Outcome) {
		mu.Lock()
		report.Outcomes = append(report.Outcomes, o)
		mu.Unlock()
		if d.metrics != nil && !o.Skipped {
			d.metrics.ObserveDelivery(o.Channel, o.Succeeded)
		}
	}

	groups := expiry.GroupByDays(alerts)

	var g errgroup.Group
	g.SetLimit(d.concurrency)

	for _, ch := range d.users {
		if !ch.Enabled() {
			record(Outcome{Channel: ch.Name(), Skipped: true, Succeeded: true})
			continue
		}
		for _, alert := range alerts {
			g.Go(func() error {
				err := d.attempt(ctx, func(ctx context.Context) error {
					return ch.Send(ctx, alert)
				})
				if err != nil {
					d.logger.ErrorContext(ctx, "delivery failed",
						"run_id", report.RunID,
						"channel", ch.Name(),
						"recipient", alert.Email,
						"error", err,
					)
				}
				record(Outcome{
					Channel:   ch.Name(),
					Recipient: alert.Email,
					Succeeded: err == nil,
					Err:       errString(err),
				})
				return nil
			})
		}
	}

	for _, ch := range d.broadcasts {
		if !ch.Enabled() {
			record(Outcome{Channel: ch.Name(), Broadcast: true, Skipped: true, Succeeded: true})
			continue
		}
		g.Go(func() error {
			err := d.attempt(ctx, func(ctx context.Context) error {
				return ch.SendSummary(ctx, groups, len(alerts))
			})
			if err != nil {
				d.logger.ErrorContext(ctx, "broadcast delivery failed",
					"run_id", report.RunID,
					"channel", ch.Name(),
					"error", err,
				)
			}
			record(Outcome{
				Channel:   ch.Name(),
				Broadcast: true,
				Succeeded: err == nil,
				Err:       errString(err),
			})
			return nil
		})
	}

	// Goroutines never return errors; failures live in the report.
	_ = g.Wait()
	return report
}

// attempt contains one delivery, converting a panic in a transport into an
// ordinary failure so sibling attempts keep running.
func (d *Dispatcher) attempt(ctx context.Context, fn func(context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("delivery panicked: %v", r)
		}
	}()
	return fn(ctx)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
