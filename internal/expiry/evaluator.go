package expiry

import (
	"time"

	"passwatch/internal/directory"
)

const day = 24 * time.Hour

// Evaluate computes the expiration state of one directory record against the
// policy. It returns false for accounts that cannot be notified: no mail
// address, or a pwdLastSet of zero (password never explicitly set).
//
// Evaluate always produces an Alert when the guards pass, even when the
// days-remaining value lies outside every warning window. Filtering against
// the window is the separate Window.Contains step, so "compute" and "decide"
// stay independently testable.
func Evaluate(rec directory.UserRecord, policy Policy, now time.Time) (Alert, bool) {
	if rec.Mail == "" || rec.PwdLastSet == 0 {
		return Alert{}, false
	}

	lastSet := directory.FromFiletime(rec.PwdLastSet)
	expiresAt := lastSet.AddDate(0, 0, policy.MaxAgeDays)

	return Alert{
		Username:      rec.Username,
		DisplayName:   rec.DisplayName,
		Email:         rec.Mail,
		DaysRemaining: daysBetween(now, expiresAt),
		ExpiresAt:     expiresAt,
		LastSetAt:     lastSet,
	}, true
}

// daysBetween counts whole calendar days from now until t, flooring so that a
// partial day counts toward the earlier day. Already-expired passwords come
// out negative.
func daysBetween(now, t time.Time) int {
	d := t.Sub(now)
	days := int(d / day)
	if d < 0 && d%day != 0 {
		days--
	}
	return days
}
