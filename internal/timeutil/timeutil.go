// Package timeutil holds the pure date and duration helpers the rest of
// the app keys on. Day keys are local-time YYYY-MM-DD strings; given the
// same instant and zone the output is stable, which the streak walk
// depends on.
package timeutil

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// DayKey returns t's calendar date in t's location as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// TodayKey is the canonical lookup key for the current day.
func TodayKey() string {
	return DayKey(time.Now())
}

// ParseDayKey parses a YYYY-MM-DD key. The zero time and an error are
// returned for anything else.
func ParseDayKey(key string) (time.Time, error) {
	return time.Parse(dayLayout, key)
}

// RecentKeys returns n day keys in ascending order ending with today's.
func RecentKeys(today time.Time, n int) []string {
	keys := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, DayKey(today.AddDate(0, 0, -i)))
	}
	return keys
}

// FormatElapsed renders seconds as "1h 5m 3s", dropping leading zero
// units. Zero renders as "0s".
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatDurationShort is the coarser variant used in summaries: seconds
// are dropped, minutes always shown when there are no hours.
func FormatDurationShort(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
