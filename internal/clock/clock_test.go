package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTodayParsesRFC3339Override(t *testing.T) {
	t.Setenv(envTodayOverride, "2026-03-05T08:00:00Z")
	got := Today()
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestTodayParsesBareDateOverride(t *testing.T) {
	t.Setenv(envTodayOverride, "2026-03-05")
	got := Today()
	assert.Equal(t, time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC), got)
}

func TestTodayFallsBackToNowWhenUnset(t *testing.T) {
	t.Setenv(envTodayOverride, "")
	got := Today()
	now := time.Now().UTC()
	assert.Equal(t, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), got)
}

func TestTodayIgnoresUnparseableOverride(t *testing.T) {
	t.Setenv(envTodayOverride, "not-a-date")
	got := Today()
	now := time.Now().UTC()
	assert.Equal(t, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), got)
}
