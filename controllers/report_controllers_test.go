package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStartOfDayKeepsLocation(t *testing.T) {
	wib := time.FixedZone("WIB", 7*3600)
	now := time.Date(2026, time.August, 30, 1, 30, 0, 0, wib)

	got := startOfDay(now)

	assert.Equal(t, time.Date(2026, time.August, 30, 0, 0, 0, 0, wib), got)
	assert.Equal(t, wib, got.Location())
	// UTC truncation would land on the previous local day for early mornings
	assert.NotEqual(t, now.Truncate(24*time.Hour), got)
}

func TestStartOfDayUTC(t *testing.T) {
	now := time.Date(2026, time.August, 30, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC), startOfDay(now))
}
