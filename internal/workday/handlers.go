package workday

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"focusday-backend/internal/achievements"
	"focusday-backend/internal/analytics"
	"focusday-backend/internal/logger"
	"focusday-backend/internal/timeutil"
)

// Recorder is the store surface the handlers need; *Store implements it.
type Recorder interface {
	FetchRange(ctx context.Context, owner int, dates []string) (map[string]DayRecord, error)
	AddTask(ctx context.Context, owner int, day, text string) (Task, error)
	ToggleTask(ctx context.Context, owner int, taskID string) (Task, error)
	DeleteTask(ctx context.Context, owner int, taskID string) error
	SessionFor(ctx context.Context, owner int, day string) (Session, error)
	StartSession(ctx context.Context, owner int, day string, now time.Time) (Session, error)
	StopSession(ctx context.Context, owner int, day string, now time.Time) (Session, error)
}

// UnlockChecker re-evaluates achievements after a mutation that can move
// the streak, total hours or completed-task count.
type UnlockChecker interface {
	CheckUnlocks(ctx context.Context, owner int, now time.Time) ([]achievements.Achievement, error)
}

// ----------------------
//     DAY HANDLERS
// ----------------------

// GetDayHandler returns one day record; days with no stored activity come
// back as empty placeholders, not 404s.
func GetDayHandler(store Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := analytics.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		day := r.URL.Query().Get("date")
		if day == "" {
			day = timeutil.TodayKey()
		} else if _, err := timeutil.ParseDayKey(day); err != nil {
			http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		records, err := store.FetchRange(r.Context(), uid, []string{day})
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}
		rec, ok := records[day]
		if !ok {
			rec = EmptyDay(day)
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rec)
	}
}

// ----------------------
//     TASK HANDLERS
// ----------------------

// GetTasksHandler lists today's tasks, newest first.
func GetTasksHandler(store Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := analytics.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		day := timeutil.TodayKey()
		records, err := store.FetchRange(r.Context(), uid, []string{day})
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		tasks := []Task{}
		if rec, ok := records[day]; ok {
			tasks = rec.Tasks
		}
		for i, j := 0, len(tasks)-1; i < j; i, j = i+1, j-1 {
			tasks[i], tasks[j] = tasks[j], tasks[i]
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(tasks)
	}
}

func CreateTaskHandler(store Recorder, sink analytics.Sink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := analytics.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			Text string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		task, err := store.AddTask(r.Context(), uid, timeutil.TodayKey(), body.Text)
		if err != nil {
			if errors.Is(err, ErrEmptyText) {
				http.Error(w, "text is required", http.StatusBadRequest)
				return
			}
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		env := analytics.FromRequest(r)
		env.UserID = uid
		sink.Log(r.Context(), env, "task_created", map[string]any{
			"task_id":  task.ID,
			"text_len": len(task.Text),
		}, analytics.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(task)
	}
}

func ToggleTaskHandler(store Recorder, sink analytics.Sink, checker UnlockChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := analytics.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			TaskID string `json:"task_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.TaskID == "" {
			http.Error(w, "task_id required", http.StatusBadRequest)
			return
		}

		task, err := store.ToggleTask(r.Context(), uid, body.TaskID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "task not found", http.StatusNotFound)
				return
			}
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		env := analytics.FromRequest(r)
		env.UserID = uid
		event := "task_uncompleted"
		if task.Completed {
			event = "task_completed"
		}
		sink.Log(r.Context(), env, event, map[string]any{
			"task_id": task.ID,
		}, analytics.SourceEventKeyFromRequest(r))

		newly, err := checker.CheckUnlocks(r.Context(), uid, time.Now())
		if err != nil {
			// Unlocks can catch up on the next stats read.
			logger.L().Warn("unlock check failed", "user_id", uid, "err", err)
			newly = nil
		}
		if newly == nil {
			newly = []achievements.Achievement{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"task":           task,
			"newly_unlocked": newly,
		})
	}
}

func DeleteTaskHandler(store Recorder, sink analytics.Sink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := analytics.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var body struct {
			TaskID string `json:"task_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.TaskID == "" {
			http.Error(w, "task_id required", http.StatusBadRequest)
			return
		}

		if err := store.DeleteTask(r.Context(), uid, body.TaskID); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "task not found", http.StatusNotFound)
				return
			}
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		env := analytics.FromRequest(r)
		env.UserID = uid
		sink.Log(r.Context(), env, "task_deleted", map[string]any{
			"task_id": body.TaskID,
		}, analytics.SourceEventKeyFromRequest(r))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

// ----------------------
//   SESSION HANDLERS
// ----------------------

// GetSessionHandler reports today's session along with what a ticking
// display should show right now.
func GetSessionHandler(store Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := analytics.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		now := time.Now()
		sess, err := store.SessionFor(r.Context(), uid, timeutil.DayKey(now))
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		writeSession(w, sess, now)
	}
}

func StartSessionHandler(store Recorder, sink analytics.Sink) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := analytics.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		now := time.Now()
		sess, err := store.StartSession(r.Context(), uid, timeutil.DayKey(now), now)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		env := analytics.FromRequest(r)
		env.UserID = uid
		sink.Log(r.Context(), env, "session_started", map[string]any{
			"date": sess.Date,
		}, analytics.SourceEventKeyFromRequest(r))

		writeSession(w, sess, now)
	}
}

func StopSessionHandler(store Recorder, sink analytics.Sink, checker UnlockChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := analytics.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		now := time.Now()
		sess, err := store.StopSession(r.Context(), uid, timeutil.DayKey(now), now)
		if err != nil {
			http.Error(w, "db error: "+err.Error(), http.StatusInternalServerError)
			return
		}

		env := analytics.FromRequest(r)
		env.UserID = uid
		sink.Log(r.Context(), env, "session_stopped", map[string]any{
			"date":         sess.Date,
			"duration_sec": sess.DurationSeconds,
		}, analytics.SourceEventKeyFromRequest(r))

		newly, err := checker.CheckUnlocks(r.Context(), uid, now)
		if err != nil {
			logger.L().Warn("unlock check failed", "user_id", uid, "err", err)
			newly = nil
		}
		if newly == nil {
			newly = []achievements.Achievement{}
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"session":           sess,
			"displayed_elapsed": sess.DisplayedElapsed(now),
			"elapsed_label":     timeutil.FormatElapsed(sess.DurationSeconds),
			"newly_unlocked":    newly,
		})
	}
}

func writeSession(w http.ResponseWriter, sess Session, now time.Time) {
	displayed := sess.DisplayedElapsed(now)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"session":           sess,
		"displayed_elapsed": displayed,
		"elapsed_label":     timeutil.FormatElapsed(displayed),
	})
}
