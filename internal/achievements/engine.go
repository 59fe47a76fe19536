package achievements

import (
	"context"

	"focusday-backend/internal/analytics"
	"focusday-backend/internal/logger"
)

// Stats is the aggregated input the evaluation runs against.
type Stats struct {
	Streak         int     `json:"streak"`
	TotalHours     float64 `json:"total_hours"`
	CompletedTasks int     `json:"completed_tasks"`
}

// UnlockStore is the slice of persistence the engine needs.
type UnlockStore interface {
	UnlockedIDs(ctx context.Context, owner int) (map[string]bool, error)
	Unlock(ctx context.Context, owner int, achievementID string) (bool, error)
}

// Engine compares aggregated stats against the catalog and persists new
// unlocks. Safe to run on every stats recomputation: the catalog is 15
// entries and already-unlocked ids are skipped up front.
type Engine struct {
	Store  UnlockStore
	Events analytics.Sink
}

func qualifies(a Achievement, st Stats) bool {
	switch a.Category {
	case CategoryStreak:
		return st.Streak >= a.Requirement
	case CategoryTime:
		return st.TotalHours >= float64(a.Requirement)
	case CategoryTasks:
		return st.CompletedTasks >= a.Requirement
	}
	return false
}

// Evaluate unlocks every qualifying catalog entry not yet unlocked and
// returns the newly unlocked ones. Concurrent evaluations cannot double
// an unlock: the store reports a conflicting insert as already satisfied
// and no event is emitted for it.
func (e *Engine) Evaluate(ctx context.Context, owner int, st Stats) ([]Achievement, error) {
	unlocked, err := e.Store.UnlockedIDs(ctx, owner)
	if err != nil {
		return nil, err
	}

	var newly []Achievement
	for _, a := range Catalog {
		if unlocked[a.ID] || !qualifies(a, st) {
			continue
		}

		inserted, err := e.Store.Unlock(ctx, owner, a.ID)
		if err != nil {
			return newly, err
		}
		if !inserted {
			continue // lost the race, other evaluation owns the event
		}

		newly = append(newly, a)
		logger.L().Info("achievement_unlocked", "user_id", owner, "achievement_id", a.ID)
		e.Events.Log(ctx, analytics.Envelope{UserID: owner}, "achievement_unlocked", map[string]any{
			"achievement_id": a.ID,
			"category":       a.Category,
			"requirement":    a.Requirement,
		}, "")
	}
	return newly, nil
}

// Progress is the percent toward an achievement, clamped at 100.
func Progress(a Achievement, st Stats) float64 {
	var current float64
	switch a.Category {
	case CategoryStreak:
		current = float64(st.Streak)
	case CategoryTime:
		current = st.TotalHours
	case CategoryTasks:
		current = float64(st.CompletedTasks)
	}
	if a.Requirement <= 0 {
		return 100
	}
	p := current / float64(a.Requirement) * 100
	if p > 100 {
		return 100
	}
	return p
}
