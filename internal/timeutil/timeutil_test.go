package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{9, "9s"},
		{59, "59s"},
		{60, "1m 0s"},
		{65, "1m 5s"},
		{3599, "59m 59s"},
		{3600, "1h 0m 0s"},
		{3903, "1h 5m 3s"},
		{7322, "2h 2m 2s"},
		{-5, "0s"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatElapsed(c.seconds), "seconds=%d", c.seconds)
	}
}

func TestFormatDurationShort(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "0m"},
		{59, "0m"},
		{60, "1m"},
		{2700, "45m"},
		{3900, "1h 5m"},
		{7200, "2h 0m"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, FormatDurationShort(c.seconds), "seconds=%d", c.seconds)
	}
}

func TestDayKeyRoundTrip(t *testing.T) {
	day := time.Date(2024, 3, 7, 23, 59, 59, 0, time.Local)
	key := DayKey(day)
	assert.Equal(t, "2024-03-07", key)

	parsed, err := ParseDayKey(key)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-07", DayKey(parsed))

	_, err = ParseDayKey("07/03/2024")
	assert.Error(t, err)
}

func TestRecentKeys(t *testing.T) {
	today := time.Date(2024, 3, 3, 12, 0, 0, 0, time.UTC)

	keys := RecentKeys(today, 5)
	require.Len(t, keys, 5)
	assert.Equal(t, []string{
		"2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02", "2024-03-03",
	}, keys)

	// Always ends with the reference day.
	assert.Equal(t, DayKey(today), keys[len(keys)-1])

	assert.Empty(t, RecentKeys(today, 0))
}
