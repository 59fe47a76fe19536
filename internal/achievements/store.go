package achievements

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// Store persists unlock rows. The (user_id, achievement_id) primary key
// is the idempotence guard: a duplicate insert conflicts and is reported
// as "already unlocked", never as an error.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Unlocked is one persisted unlock.
type Unlocked struct {
	AchievementID string    `json:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// UnlockedIDs returns the owner's unlocked achievement ids as a set.
func (s *Store) UnlockedIDs(ctx context.Context, owner int) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT achievement_id FROM user_achievements WHERE user_id = $1
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("fetch unlocked: %w", err)
	}
	defer rows.Close()

	ids := map[string]bool{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan unlocked: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

// UnlockedList returns the owner's unlocks with timestamps.
func (s *Store) UnlockedList(ctx context.Context, owner int) ([]Unlocked, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT achievement_id, unlocked_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY unlocked_at
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("fetch unlocked: %w", err)
	}
	defer rows.Close()

	var out []Unlocked
	for rows.Next() {
		var u Unlocked
		if err := rows.Scan(&u.AchievementID, &u.UnlockedAt); err != nil {
			return nil, fmt.Errorf("scan unlocked: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Unlock records an unlock once. The second of two racing inserts sees
// the conflict and reports inserted=false with no error — the named
// retry-as-success contract.
func (s *Store) Unlock(ctx context.Context, owner int, achievementID string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO user_achievements (user_id, achievement_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`, owner, achievementID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return false, nil
		}
		return false, fmt.Errorf("insert unlock: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
