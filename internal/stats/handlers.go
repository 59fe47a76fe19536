package stats

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"focusday-backend/internal/achievements"
	"focusday-backend/internal/analytics"
	"focusday-backend/internal/goal"
	"focusday-backend/internal/timeutil"
)

// GoalSource supplies the owner's daily focus target in minutes.
type GoalSource interface {
	Minutes(ctx context.Context, owner int) (int, error)
}

// StatsHandler serves the aggregated dashboard numbers. Achievement
// evaluation runs on every call, so unlocks earned since the last
// mutation surface here too.
func StatsHandler(rec *Recomputer, goals GoalSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := analytics.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		now := time.Now()

		st, newly, err := rec.Recompute(r.Context(), uid, now)
		if err != nil {
			http.Error(w, "stats error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		today, err := rec.Engine.RecentDays(r.Context(), uid, now, 1)
		if err != nil {
			http.Error(w, "stats error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		sess := today[0].Session
		displayed := sess.DisplayedElapsed(now)

		goalMinutes, err := goals.Minutes(r.Context(), uid)
		if err != nil {
			http.Error(w, "goal error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		if newly == nil {
			// [] rather than null in the response
			newly = []achievements.Achievement{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"streak":          st.Streak,
			"total_hours":     st.TotalHours,
			"completed_tasks": st.CompletedTasks,
			"today": map[string]any{
				"date":              today[0].Date,
				"duration":          sess.DurationSeconds,
				"is_active":         sess.IsActive,
				"displayed_elapsed": displayed,
				"elapsed_label":     timeutil.FormatElapsed(displayed),
			},
			"goal": map[string]any{
				"daily_focus_minutes": goalMinutes,
				"progress":            goal.Progress(goalMinutes, displayed/60),
			},
			"newly_unlocked": newly,
		})
	}
}

// RecentDaysHandler serves the chart window: exactly count records,
// oldest first, today last.
func RecentDaysHandler(e *Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := analytics.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		count := 7
		if v := r.URL.Query().Get("count"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 31 {
				http.Error(w, "count must be 1..31", http.StatusBadRequest)
				return
			}
			count = n
		}

		days, err := e.RecentDays(r.Context(), uid, time.Now(), count)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(days)
	}
}
