// Package notify fans a set of alerts out to the configured delivery
// channels. Every attempt is isolated: one recipient's or one channel's
// failure never prevents any other delivery and never aborts the run.
package notify

import (
	"context"

	"github.com/google/uuid"

	"passwatch/internal/expiry"
)

// UserChannel addresses individuals: one delivery attempt per alert.
type UserChannel interface {
	Name() string
	Enabled() bool
	Send(ctx context.Context, alert expiry.Alert) error
}

// BroadcastChannel receives one aggregated summary per run instead of one
// message per affected user.
type BroadcastChannel interface {
	Name() string
	Enabled() bool
	SendSummary(ctx context.Context, groups []expiry.Group, total int) error
}

// Outcome records one delivery attempt. Failed attempts are terminal within
// the run; the next scheduled run is the retry mechanism.
type Outcome struct {
	Channel   string
	Recipient string // mail address for user channels, empty for broadcasts
	Broadcast bool
	Skipped   bool // channel disabled in configuration
	Succeeded bool
	Err       string
}

// Report aggregates the outcomes of one dispatch.
type Report struct {
	RunID    uuid.UUID
	Outcomes []Outcome
}

// Attempted counts real delivery attempts on the named channel; skipped
// (disabled) channels do not count.
func (r *Report) Attempted(channel string) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Channel == channel && !o.Skipped {
			n++
		}
	}
	return n
}

// Succeeded counts successful attempts on the named channel.
func (r *Report) Succeeded(channel string) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Channel == channel && !o.Skipped && o.Succeeded {
			n++
		}
	}
	return n
}

// Failures returns every failed outcome, for summary logging.
func (r *Report) Failures() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if !o.Succeeded {
			failed = append(failed, o)
		}
	}
	return failed
}
