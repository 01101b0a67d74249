// Package clock resolves "today" for density effective-window checks (§4.8).
// Batch runs must be reproducible given the same inputs and the same
// reference snapshot, so the wall-clock date is overridable via
// CANON_TODAY rather than always read from time.Now() (§9 Open Question).
package clock

import (
	"os"
	"strings"
	"time"
)

const envTodayOverride = "CANON_TODAY"

// Today returns the date used to evaluate density effective windows. If
// CANON_TODAY is set to an RFC3339 timestamp (or a bare YYYY-MM-DD date),
// that date is used; otherwise the current UTC date is used.
func Today() time.Time {
	if raw := strings.TrimSpace(os.Getenv(envTodayOverride)); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			return truncateToDate(t)
		}
		if t, err := time.Parse("2006-01-02", raw); err == nil {
			return t
		}
	}
	return truncateToDate(time.Now().UTC())
}

func truncateToDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
