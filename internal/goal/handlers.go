package goal

import (
	"encoding/json"
	"errors"
	"net/http"

	"focusday-backend/internal/analytics"
)

func GetHandler(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := analytics.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		minutes, err := store.Minutes(r.Context(), uid)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"daily_focus_minutes": minutes,
		})
	}
}

func UpdateHandler(store *Store, sink analytics.Sink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := analytics.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			DailyFocusMinutes int `json:"daily_focus_minutes"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := store.Update(r.Context(), uid, body.DailyFocusMinutes); err != nil {
			if errors.Is(err, ErrOutOfRange) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		env := analytics.FromRequest(r)
		env.UserID = uid
		sink.Log(r.Context(), env, "goal_updated", map[string]any{
			"daily_focus_minutes": body.DailyFocusMinutes,
		}, analytics.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"daily_focus_minutes": body.DailyFocusMinutes,
		})
	}
}
