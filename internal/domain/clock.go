// Package domain clock.go contains the pure expiry-clock functions. They take
// explicit "now" arguments so callers (and tests) control time; no timer state
// lives here.
package domain

import "strconv"

// LabelExpiring is the terminal countdown label for a post whose expiry has
// already passed but which has not been pruned yet.
const LabelExpiring = "Expiring..."

// IsExpired reports whether expiry (epoch ms) has been reached at now.
func IsExpired(expiry, now int64) bool { return expiry <= now }

// Remaining classifies the time left until expiry (both epoch ms):
//   - already past: LabelExpiring
//   - under a minute: whole seconds, e.g. "30s"
//   - otherwise: minutes rounded up, e.g. 61s left reports "2m"
//
// The ceiling rounding is deliberate: a post never shows "0m" while time
// remains.
func Remaining(expiry, now int64) string {
	if expiry < now {
		return LabelExpiring
	}
	secondsLeft := (expiry - now) / 1000
	if secondsLeft < 60 {
		return strconv.FormatInt(secondsLeft, 10) + "s"
	}
	minutes := (secondsLeft + 59) / 60
	return strconv.FormatInt(minutes, 10) + "m"
}
