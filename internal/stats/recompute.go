package stats

import (
	"context"
	"time"

	"focusday-backend/internal/achievements"
)

// Recomputer ties the aggregation engine to achievement evaluation: every
// stats recomputation is also an unlock check, mirroring how the app
// re-evaluates after each task or session mutation.
type Recomputer struct {
	Engine       *Engine
	Achievements *achievements.Engine
}

// Recompute returns the current stats and whatever the evaluation newly
// unlocked.
func (r *Recomputer) Recompute(ctx context.Context, owner int, now time.Time) (achievements.Stats, []achievements.Achievement, error) {
	st, err := r.Engine.Current(ctx, owner, now)
	if err != nil {
		return achievements.Stats{}, nil, err
	}
	newly, err := r.Achievements.Evaluate(ctx, owner, st)
	if err != nil {
		return st, newly, err
	}
	return st, newly, nil
}

// Current satisfies achievements.StatsSource without evaluating.
func (r *Recomputer) Current(ctx context.Context, owner int, now time.Time) (achievements.Stats, error) {
	return r.Engine.Current(ctx, owner, now)
}

// CheckUnlocks satisfies workday.UnlockChecker: mutation handlers call it
// after a successful persist so qualifying achievements unlock right away.
func (r *Recomputer) CheckUnlocks(ctx context.Context, owner int, now time.Time) ([]achievements.Achievement, error) {
	_, newly, err := r.Recompute(ctx, owner, now)
	return newly, err
}
