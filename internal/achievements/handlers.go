package achievements

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"focusday-backend/internal/analytics"
)

// StatsSource supplies the current aggregated stats for progress bars.
type StatsSource interface {
	Current(ctx context.Context, owner int, now time.Time) (Stats, error)
}

type catalogEntry struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
	Progress   float64    `json:"progress"`
}

// ListHandler returns the full catalog annotated with the owner's unlock
// state and progress percentages.
func ListHandler(store *Store, source StatsSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := analytics.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		st, err := source.Current(r.Context(), uid, time.Now())
		if err != nil {
			http.Error(w, "stats error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		unlocked, err := store.UnlockedList(r.Context(), uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		unlockedAt := map[string]time.Time{}
		for _, u := range unlocked {
			unlockedAt[u.AchievementID] = u.UnlockedAt
		}

		entries := make([]catalogEntry, 0, len(Catalog))
		for _, a := range Catalog {
			e := catalogEntry{Achievement: a, Progress: Progress(a, st)}
			if at, ok := unlockedAt[a.ID]; ok {
				e.Unlocked = true
				t := at
				e.UnlockedAt = &t
			}
			entries = append(entries, e)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"achievements": entries,
			"stats":        st,
		})
	}
}
