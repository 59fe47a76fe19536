package workday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDisplayedElapsed(t *testing.T) {
	now := time.Date(2024, 6, 10, 10, 0, 0, 0, time.UTC)
	start := now.Add(-90 * time.Second)

	idle := Session{Date: "2024-06-10", DurationSeconds: 120}
	assert.Equal(t, 120, idle.DisplayedElapsed(now))

	active := Session{Date: "2024-06-10", DurationSeconds: 120, IsActive: true, StartTime: &start}
	assert.Equal(t, 210, active.DisplayedElapsed(now))

	// Inconsistent row (active without start) falls back to accumulated.
	broken := Session{Date: "2024-06-10", DurationSeconds: 45, IsActive: true}
	assert.Equal(t, 45, broken.DisplayedElapsed(now))

	// A start in the future never subtracts.
	future := now.Add(time.Minute)
	skewed := Session{DurationSeconds: 30, IsActive: true, StartTime: &future}
	assert.Equal(t, 30, skewed.DisplayedElapsed(now))
}

func TestEmptyDay(t *testing.T) {
	rec := EmptyDay("2024-06-10")
	assert.Equal(t, "2024-06-10", rec.Date)
	assert.NotNil(t, rec.Tasks)
	assert.Empty(t, rec.Tasks)
	assert.Equal(t, "2024-06-10", rec.Session.Date)
	assert.False(t, rec.Session.IsActive)
	assert.Zero(t, rec.Session.DurationSeconds)
}
