package workday

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"focusday-backend/internal/timeutil"
)

// Store persists day records (tasks + work sessions) in Postgres. All
// queries are owner-filtered; read paths are side-effect-free.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// FetchRange returns the day records for the given day keys. Days with no
// stored tasks and no session row are omitted from the result.
func (s *Store) FetchRange(ctx context.Context, owner int, dates []string) (map[string]DayRecord, error) {
	if len(dates) == 0 {
		return map[string]DayRecord{}, nil
	}

	records := map[string]DayRecord{}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, day, text, completed, created_at
		FROM tasks
		WHERE user_id = $1 AND day = ANY($2::date[])
		ORDER BY created_at, id
	`, owner, pq.Array(dates))
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	if err := collectTasks(rows, records); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT day, start_time, end_time, duration_seconds, is_active
		FROM work_sessions
		WHERE user_id = $1 AND day = ANY($2::date[])
	`, owner, pq.Array(dates))
	if err != nil {
		return nil, fmt.Errorf("fetch sessions: %w", err)
	}
	if err := collectSessions(rows, records); err != nil {
		return nil, err
	}

	return records, nil
}

// FetchAll returns every stored day record of the owner, keyed by day.
func (s *Store) FetchAll(ctx context.Context, owner int) (map[string]DayRecord, error) {
	records := map[string]DayRecord{}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, day, text, completed, created_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at, id
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("fetch tasks: %w", err)
	}
	if err := collectTasks(rows, records); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx, `
		SELECT day, start_time, end_time, duration_seconds, is_active
		FROM work_sessions
		WHERE user_id = $1
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("fetch sessions: %w", err)
	}
	if err := collectSessions(rows, records); err != nil {
		return nil, err
	}

	return records, nil
}

func collectTasks(rows *sql.Rows, records map[string]DayRecord) error {
	defer rows.Close()
	for rows.Next() {
		var (
			t   Task
			day time.Time
		)
		if err := rows.Scan(&t.ID, &day, &t.Text, &t.Completed, &t.CreatedAt); err != nil {
			return fmt.Errorf("scan task: %w", err)
		}
		key := timeutil.DayKey(day)
		rec, ok := records[key]
		if !ok {
			rec = EmptyDay(key)
		}
		rec.Tasks = append(rec.Tasks, t)
		records[key] = rec
	}
	return rows.Err()
}

func collectSessions(rows *sql.Rows, records map[string]DayRecord) error {
	defer rows.Close()
	for rows.Next() {
		var (
			sess Session
			day  time.Time
		)
		if err := rows.Scan(&day, &sess.StartTime, &sess.EndTime, &sess.DurationSeconds, &sess.IsActive); err != nil {
			return fmt.Errorf("scan session: %w", err)
		}
		key := timeutil.DayKey(day)
		sess.Date = key
		rec, ok := records[key]
		if !ok {
			rec = EmptyDay(key)
		}
		rec.Session = sess
		records[key] = rec
	}
	return rows.Err()
}

// AddTask creates a task on the given day. Text must be non-empty after
// trimming.
func (s *Store) AddTask(ctx context.Context, owner int, day, text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrEmptyText
	}

	t := Task{ID: uuid.NewString(), Text: text}
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO tasks (id, user_id, day, text)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, t.ID, owner, day, text).Scan(&t.CreatedAt)
	if err != nil {
		return Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

// ToggleTask flips the completed flag of the owner's task.
func (s *Store) ToggleTask(ctx context.Context, owner int, taskID string) (Task, error) {
	var t Task
	err := s.db.QueryRowContext(ctx, `
		UPDATE tasks
		SET completed = NOT completed
		WHERE id = $1 AND user_id = $2
		RETURNING id, text, completed, created_at
	`, taskID, owner).Scan(&t.ID, &t.Text, &t.Completed, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return Task{}, ErrNotFound
	}
	if err != nil {
		return Task{}, fmt.Errorf("toggle task: %w", err)
	}
	return t, nil
}

// DeleteTask removes the owner's task.
func (s *Store) DeleteTask(ctx context.Context, owner int, taskID string) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM tasks WHERE id = $1 AND user_id = $2
	`, taskID, owner)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SessionFor reads the session row of (owner, day), or an empty session
// if none exists yet.
func (s *Store) SessionFor(ctx context.Context, owner int, day string) (Session, error) {
	sess := Session{Date: day}
	err := s.db.QueryRowContext(ctx, `
		SELECT start_time, end_time, duration_seconds, is_active
		FROM work_sessions
		WHERE user_id = $1 AND day = $2
	`, owner, day).Scan(&sess.StartTime, &sess.EndTime, &sess.DurationSeconds, &sess.IsActive)
	if err == sql.ErrNoRows {
		return Session{Date: day}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("fetch session: %w", err)
	}
	return sess, nil
}

// StartSession opens the day's session. Valid only while idle: a start on
// an already-active session is a no-op returning the current state. The
// row lock serializes racing start/stop calls on the same day.
func (s *Store) StartSession(ctx context.Context, owner int, day string, now time.Time) (Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	// Create the row lazily on first start for this day.
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO work_sessions (user_id, day)
		VALUES ($1, $2)
		ON CONFLICT (user_id, day) DO NOTHING
	`, owner, day); err != nil {
		return Session{}, fmt.Errorf("ensure session row: %w", err)
	}

	sess, err := lockSession(ctx, tx, owner, day)
	if err != nil {
		return Session{}, err
	}

	if sess.IsActive {
		return sess, tx.Commit()
	}

	start := now.UTC()
	if _, err := tx.ExecContext(ctx, `
		UPDATE work_sessions
		SET start_time = $3, is_active = TRUE
		WHERE user_id = $1 AND day = $2
	`, owner, day, start); err != nil {
		return Session{}, fmt.Errorf("start session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("commit: %w", err)
	}

	sess.StartTime = &start
	sess.IsActive = true
	return sess, nil
}

// StopSession closes the day's open session, folding the elapsed interval
// into the cumulative duration. A stop with no open start is a no-op.
func (s *Store) StopSession(ctx context.Context, owner int, day string, now time.Time) (Session, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	sess, err := lockSession(ctx, tx, owner, day)
	if err != nil {
		if err == sql.ErrNoRows {
			// Never started today: nothing to stop.
			return Session{Date: day}, nil
		}
		return Session{}, err
	}

	if !sess.IsActive || sess.StartTime == nil {
		return sess, tx.Commit()
	}

	end := now.UTC()
	elapsed := int(end.Sub(*sess.StartTime).Seconds())
	if elapsed < 0 {
		elapsed = 0
	}
	total := sess.DurationSeconds + elapsed

	if _, err := tx.ExecContext(ctx, `
		UPDATE work_sessions
		SET start_time = NULL, end_time = $3, duration_seconds = $4, is_active = FALSE
		WHERE user_id = $1 AND day = $2
	`, owner, day, end, total); err != nil {
		return Session{}, fmt.Errorf("stop session: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("commit: %w", err)
	}

	sess.StartTime = nil
	sess.EndTime = &end
	sess.DurationSeconds = total
	sess.IsActive = false
	return sess, nil
}

func lockSession(ctx context.Context, tx *sql.Tx, owner int, day string) (Session, error) {
	sess := Session{Date: day}
	err := tx.QueryRowContext(ctx, `
		SELECT start_time, end_time, duration_seconds, is_active
		FROM work_sessions
		WHERE user_id = $1 AND day = $2
		FOR UPDATE
	`, owner, day).Scan(&sess.StartTime, &sess.EndTime, &sess.DurationSeconds, &sess.IsActive)
	if err == sql.ErrNoRows {
		return Session{}, err
	}
	if err != nil {
		return Session{}, fmt.Errorf("lock session: %w", err)
	}
	return sess, nil
}
