package quotes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogNotEmpty(t *testing.T) {
	require.NotEmpty(t, catalog)
	for i, q := range catalog {
		assert.NotEmpty(t, q.Text, "quote %d", i)
		assert.NotEmpty(t, q.Author, "quote %d", i)
	}
}

func TestForDayStableWithinDay(t *testing.T) {
	morning := time.Date(2024, 6, 10, 0, 0, 1, 0, time.Local)
	evening := time.Date(2024, 6, 10, 23, 59, 59, 0, time.Local)
	assert.Equal(t, ForDay(morning), ForDay(evening))
}

func TestForDayRollsOver(t *testing.T) {
	// Consecutive days pick consecutive catalog entries, so somewhere in
	// a window longer than the catalog the quote must change.
	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)
	changed := false
	for i := 1; i <= len(catalog); i++ {
		if ForDay(base.AddDate(0, 0, i)) != ForDay(base) {
			changed = true
			break
		}
	}
	assert.True(t, changed)
}
