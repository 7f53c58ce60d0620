// Package expiry holds the decision logic of the pipeline: converting raw
// directory records into alerts and deciding which alerts are due today.
package expiry

import "time"

// Policy is the password age policy applied to every account.
type Policy struct {
	MaxAgeDays int
}

// Alert is one user whose password expiration has been computed. Alerts live
// only for the duration of a single pipeline run and are never persisted.
type Alert struct {
	Username      string
	DisplayName   string
	Email         string
	DaysRemaining int
	ExpiresAt     time.Time
	LastSetAt     time.Time
}

// Window is the set of days-remaining values that trigger notification,
// together with the message text configured for each value.
type Window struct {
	days           map[int]struct{}
	messages       map[int]string
	defaultMessage string
}

// NewWindow builds a Window from configuration. The maps are copied so the
// window stays immutable for the run even if the caller mutates its inputs.
func NewWindow(days []int, messages map[int]string, defaultMessage string) Window {
	w := Window{
		days:           make(map[int]struct{}, len(days)),
		messages:       make(map[int]string, len(messages)),
		defaultMessage: defaultMessage,
	}
	for _, d := range days {
		w.days[d] = struct{}{}
	}
	for d, msg := range messages {
		w.messages[d] = msg
	}
	return w
}

// Contains reports whether an alert with the given days-remaining value is
// due for notification. Values outside the window are silently dropped by the
// pipeline; that is not an error.
func (w Window) Contains(daysRemaining int) bool {
	_, ok := w.days[daysRemaining]
	return ok
}

// Message returns the configured text for the given days-remaining value,
// falling back to the default message when no specific entry exists.
func (w Window) Message(daysRemaining int) string {
	if msg, ok := w.messages[daysRemaining]; ok {
		return msg
	}
	return w.defaultMessage
}
