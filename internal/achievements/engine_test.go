package achievements

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusday-backend/internal/analytics"
	"focusday-backend/internal/logger"
)

func TestMain(m *testing.M) {
	_, _ = logger.Init(logger.Config{Level: "error"})
	os.Exit(m.Run())
}

// fakeUnlocks mimics the store's conflict-as-success contract in memory.
type fakeUnlocks struct {
	unlocked   map[string]bool
	loseRace   bool // every insert reports an already-existing row
	failInsert error
}

func newFakeUnlocks() *fakeUnlocks {
	return &fakeUnlocks{unlocked: map[string]bool{}}
}

func (f *fakeUnlocks) UnlockedIDs(context.Context, int) (map[string]bool, error) {
	out := map[string]bool{}
	for k := range f.unlocked {
		out[k] = true
	}
	return out, nil
}

func (f *fakeUnlocks) Unlock(_ context.Context, _ int, id string) (bool, error) {
	if f.failInsert != nil {
		return false, f.failInsert
	}
	if f.loseRace || f.unlocked[id] {
		return false, nil
	}
	f.unlocked[id] = true
	return true, nil
}

func TestCatalogShape(t *testing.T) {
	require.Len(t, Catalog, 15)

	perCategory := map[Category]int{}
	seen := map[string]bool{}
	for _, a := range Catalog {
		perCategory[a.Category]++
		assert.False(t, seen[a.ID], "duplicate id %s", a.ID)
		seen[a.ID] = true
		assert.Greater(t, a.Requirement, 0)
		assert.NotEmpty(t, a.Name)
		assert.NotEmpty(t, a.Description)
	}
	assert.Equal(t, 5, perCategory[CategoryStreak])
	assert.Equal(t, 5, perCategory[CategoryTime])
	assert.Equal(t, 5, perCategory[CategoryTasks])

	a, ok := ByID("streak_7")
	require.True(t, ok)
	assert.Equal(t, 7, a.Requirement)
	_, ok = ByID("nope")
	assert.False(t, ok)
}

func TestEvaluateUnlocksByCategory(t *testing.T) {
	store := newFakeUnlocks()
	e := &Engine{Store: store, Events: analytics.Nop{}}

	newly, err := e.Evaluate(context.Background(), 1, Stats{Streak: 7, TotalHours: 10.5, CompletedTasks: 9})
	require.NoError(t, err)

	ids := map[string]bool{}
	for _, a := range newly {
		ids[a.ID] = true
	}
	// streak 7 covers streak_3 and streak_7; 10.5h covers time_10; 9
	// tasks unlock nothing.
	assert.Equal(t, map[string]bool{"streak_3": true, "streak_7": true, "time_10": true}, ids)
}

func TestEvaluateIdempotent(t *testing.T) {
	store := newFakeUnlocks()
	e := &Engine{Store: store, Events: analytics.Nop{}}
	st := Stats{Streak: 3, TotalHours: 50, CompletedTasks: 100}

	first, err := e.Evaluate(context.Background(), 1, st)
	require.NoError(t, err)
	assert.NotEmpty(t, first)

	second, err := e.Evaluate(context.Background(), 1, st)
	require.NoError(t, err)
	assert.Empty(t, second, "second evaluation with identical stats must unlock nothing")
}

func TestEvaluateLostRaceIsSilent(t *testing.T) {
	store := newFakeUnlocks()
	store.loseRace = true
	e := &Engine{Store: store, Events: analytics.Nop{}}

	newly, err := e.Evaluate(context.Background(), 1, Stats{Streak: 100})
	require.NoError(t, err)
	assert.Empty(t, newly, "a conflicting insert is already-satisfied, not a new unlock")
}

func TestEvaluateStoreFailureSurfaces(t *testing.T) {
	store := newFakeUnlocks()
	store.failInsert = errors.New("connection reset")
	e := &Engine{Store: store, Events: analytics.Nop{}}

	_, err := e.Evaluate(context.Background(), 1, Stats{Streak: 3})
	assert.Error(t, err)
}

func TestProgress(t *testing.T) {
	streak3, _ := ByID("streak_3")
	time10, _ := ByID("time_10")
	tasks50, _ := ByID("tasks_50")

	cases := []struct {
		name string
		a    Achievement
		st   Stats
		want float64
	}{
		{"zero", streak3, Stats{}, 0},
		{"halfway", time10, Stats{TotalHours: 5}, 50},
		{"exact", streak3, Stats{Streak: 3}, 100},
		{"clamped past requirement", tasks50, Stats{CompletedTasks: 500}, 100},
		{"fractional hours", time10, Stats{TotalHours: 2.5}, 25},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.InDelta(t, c.want, Progress(c.a, c.st), 1e-9)
		})
	}
}
