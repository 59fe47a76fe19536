package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusday-backend/internal/timeutil"
	"focusday-backend/internal/workday"
)

// fakeDays serves canned day records like the store would.
type fakeDays struct {
	records map[string]workday.DayRecord
}

func (f *fakeDays) FetchRange(_ context.Context, _ int, dates []string) (map[string]workday.DayRecord, error) {
	out := map[string]workday.DayRecord{}
	for _, d := range dates {
		if rec, ok := f.records[d]; ok {
			out[d] = rec
		}
	}
	return out, nil
}

func (f *fakeDays) FetchAll(_ context.Context, _ int) (map[string]workday.DayRecord, error) {
	out := map[string]workday.DayRecord{}
	for k, v := range f.records {
		out[k] = v
	}
	return out, nil
}

func dayWithDuration(key string, seconds int, active bool) workday.DayRecord {
	rec := workday.EmptyDay(key)
	rec.Session.DurationSeconds = seconds
	rec.Session.IsActive = active
	return rec
}

func keyAgo(now time.Time, daysBack int) string {
	return timeutil.DayKey(now.AddDate(0, 0, -daysBack))
}

func TestStreakNoRecords(t *testing.T) {
	e := &Engine{Days: &fakeDays{records: map[string]workday.DayRecord{}}}
	streak, err := e.Streak(context.Background(), 1, time.Now())
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestStreakConsecutiveDays(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.Local)
	records := map[string]workday.DayRecord{}
	// 4 consecutive worked days ending today, then a zero day.
	for i := 0; i < 4; i++ {
		records[keyAgo(now, i)] = dayWithDuration(keyAgo(now, i), 1200, false)
	}
	records[keyAgo(now, 4)] = dayWithDuration(keyAgo(now, 4), 0, false)
	records[keyAgo(now, 5)] = dayWithDuration(keyAgo(now, 5), 7200, false)

	assert.Equal(t, 4, ComputeStreak(records, now))
}

func TestStreakTodayActiveZeroDuration(t *testing.T) {
	// Durations [1800, 0, 3600] oldest to newest before today; today is
	// running with nothing accumulated yet. Today counts via isActive,
	// yesterday via 3600, and the zero day breaks the chain before the
	// 1800s day is reached.
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)
	records := map[string]workday.DayRecord{
		keyAgo(now, 0): dayWithDuration(keyAgo(now, 0), 0, true),
		keyAgo(now, 1): dayWithDuration(keyAgo(now, 1), 3600, false),
		keyAgo(now, 2): dayWithDuration(keyAgo(now, 2), 0, false),
		keyAgo(now, 3): dayWithDuration(keyAgo(now, 3), 1800, false),
	}

	assert.Equal(t, 2, ComputeStreak(records, now))
}

func TestStreakActiveYesterdayDoesNotCount(t *testing.T) {
	// isActive only rescues *today*; a stale running flag on a prior day
	// with zero duration does not extend the streak.
	now := time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)
	records := map[string]workday.DayRecord{
		keyAgo(now, 0): dayWithDuration(keyAgo(now, 0), 600, false),
		keyAgo(now, 1): dayWithDuration(keyAgo(now, 1), 0, true),
		keyAgo(now, 2): dayWithDuration(keyAgo(now, 2), 900, false),
	}

	assert.Equal(t, 1, ComputeStreak(records, now))
}

func TestStreakTodayIdleStartsFromYesterday(t *testing.T) {
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.Local)
	records := map[string]workday.DayRecord{
		keyAgo(now, 1): dayWithDuration(keyAgo(now, 1), 3600, false),
		keyAgo(now, 2): dayWithDuration(keyAgo(now, 2), 3600, false),
	}

	// No record for today at all: streak survives on yesterday's chain.
	assert.Equal(t, 2, ComputeStreak(records, now))
}

func TestStreakGapBreaks(t *testing.T) {
	now := time.Date(2024, 6, 10, 8, 0, 0, 0, time.Local)
	records := map[string]workday.DayRecord{
		keyAgo(now, 0): dayWithDuration(keyAgo(now, 0), 100, false),
		// day 1 missing entirely
		keyAgo(now, 2): dayWithDuration(keyAgo(now, 2), 100, false),
	}

	assert.Equal(t, 1, ComputeStreak(records, now))
}

func TestRecentDaysFillsGaps(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	records := map[string]workday.DayRecord{
		keyAgo(now, 0): dayWithDuration(keyAgo(now, 0), 300, false),
		keyAgo(now, 3): dayWithDuration(keyAgo(now, 3), 900, false),
	}
	e := &Engine{Days: &fakeDays{records: records}}

	days, err := e.RecentDays(context.Background(), 1, now, 7)
	require.NoError(t, err)
	require.Len(t, days, 7)

	// Ascending order, ending today.
	for i := 1; i < len(days); i++ {
		assert.Less(t, days[i-1].Date, days[i].Date)
	}
	assert.Equal(t, timeutil.DayKey(now), days[6].Date)

	// Gaps synthesized as empty placeholders.
	assert.Equal(t, 0, days[5].Session.DurationSeconds)
	assert.Empty(t, days[5].Tasks)
	assert.Equal(t, 900, days[3].Session.DurationSeconds)
	assert.Equal(t, 300, days[6].Session.DurationSeconds)
}

func TestTotals(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	done := workday.Task{ID: "a", Text: "x", Completed: true}
	open := workday.Task{ID: "b", Text: "y"}

	rec1 := dayWithDuration(keyAgo(now, 0), 5400, false)
	rec1.Tasks = []workday.Task{done, open}
	rec2 := dayWithDuration(keyAgo(now, 1), 1800, false)
	rec2.Tasks = []workday.Task{done, done}

	hours, tasks := ComputeTotals(map[string]workday.DayRecord{
		rec1.Date: rec1,
		rec2.Date: rec2,
	})
	assert.InDelta(t, 2.0, hours, 1e-9)
	assert.Equal(t, 3, tasks)
}

func TestCurrent(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	rec := dayWithDuration(keyAgo(now, 0), 7200, false)
	rec.Tasks = []workday.Task{{ID: "a", Completed: true}}
	e := &Engine{Days: &fakeDays{records: map[string]workday.DayRecord{rec.Date: rec}}}

	st, err := e.Current(context.Background(), 1, now)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Streak)
	assert.InDelta(t, 2.0, st.TotalHours, 1e-9)
	assert.Equal(t, 1, st.CompletedTasks)
}
