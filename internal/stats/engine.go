package stats

import (
	"context"
	"time"

	"focusday-backend/internal/achievements"
	"focusday-backend/internal/timeutil"
	"focusday-backend/internal/workday"
)

// DayReader is the read side of the day record store.
type DayReader interface {
	FetchRange(ctx context.Context, owner int, dates []string) (map[string]workday.DayRecord, error)
	FetchAll(ctx context.Context, owner int) (map[string]workday.DayRecord, error)
}

// Engine aggregates day records into streaks, windows and lifetime totals.
// All computation is pure over the fetched map; the store is only read.
type Engine struct {
	Days DayReader
}

// RecentDays returns exactly n day records in ascending order ending with
// now's day, synthesizing empty placeholders for days absent from the
// store. Store gaps never shrink the window.
func (e *Engine) RecentDays(ctx context.Context, owner int, now time.Time, n int) ([]workday.DayRecord, error) {
	keys := timeutil.RecentKeys(now, n)
	fetched, err := e.Days.FetchRange(ctx, owner, keys)
	if err != nil {
		return nil, err
	}

	days := make([]workday.DayRecord, 0, n)
	for _, key := range keys {
		if rec, ok := fetched[key]; ok {
			days = append(days, rec)
		} else {
			days = append(days, workday.EmptyDay(key))
		}
	}
	return days, nil
}

// Current computes the full stat set from a single store read.
func (e *Engine) Current(ctx context.Context, owner int, now time.Time) (achievements.Stats, error) {
	all, err := e.Days.FetchAll(ctx, owner)
	if err != nil {
		return achievements.Stats{}, err
	}

	hours, tasks := ComputeTotals(all)
	return achievements.Stats{
		Streak:         ComputeStreak(all, now),
		TotalHours:     hours,
		CompletedTasks: tasks,
	}, nil
}

// Streak is the consecutive-day count ending today (or yesterday, when
// today has no work yet).
func (e *Engine) Streak(ctx context.Context, owner int, now time.Time) (int, error) {
	all, err := e.Days.FetchAll(ctx, owner)
	if err != nil {
		return 0, err
	}
	return ComputeStreak(all, now), nil
}

// ComputeStreak walks backward from now's day. Today counts when its
// session has accumulated duration or is currently running; every prior
// day counts only on duration > 0. One zero day breaks the chain — no
// grace days.
func ComputeStreak(records map[string]workday.DayRecord, now time.Time) int {
	streak := 0
	if rec, ok := records[timeutil.DayKey(now)]; ok {
		if rec.Session.DurationSeconds > 0 || rec.Session.IsActive {
			streak = 1
		}
	}

	day := now.AddDate(0, 0, -1)
	for {
		rec, ok := records[timeutil.DayKey(day)]
		if !ok || rec.Session.DurationSeconds <= 0 {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// ComputeTotals sums lifetime focus hours and completed tasks over every
// stored day record.
func ComputeTotals(records map[string]workday.DayRecord) (totalHours float64, completedTasks int) {
	totalSeconds := 0
	for _, rec := range records {
		totalSeconds += rec.Session.DurationSeconds
		for _, t := range rec.Tasks {
			if t.Completed {
				completedTasks++
			}
		}
	}
	return float64(totalSeconds) / 3600, completedTasks
}
