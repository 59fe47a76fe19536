// Package goal tracks the per-owner daily focus target in minutes and
// the progress percentage toward it.
package goal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DefaultMinutes is used until the owner sets a goal of their own.
const DefaultMinutes = 60

// ErrOutOfRange rejects goals outside 1..1440 minutes.
var ErrOutOfRange = errors.New("daily goal must be between 1 and 1440 minutes")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Minutes returns the owner's goal, or the default when none is stored.
func (s *Store) Minutes(ctx context.Context, owner int) (int, error) {
	var minutes int
	err := s.db.QueryRowContext(ctx, `
		SELECT daily_focus_minutes FROM user_goals WHERE user_id = $1
	`, owner).Scan(&minutes)
	if err == sql.ErrNoRows {
		return DefaultMinutes, nil
	}
	if err != nil {
		return 0, fmt.Errorf("fetch goal: %w", err)
	}
	return minutes, nil
}

// Update validates and upserts the owner's goal. Validation failures
// reach no persistence.
func (s *Store) Update(ctx context.Context, owner, minutes int) error {
	if err := Validate(minutes); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_goals (user_id, daily_focus_minutes)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET daily_focus_minutes = EXCLUDED.daily_focus_minutes
	`, owner, minutes)
	if err != nil {
		return fmt.Errorf("upsert goal: %w", err)
	}
	return nil
}

func Validate(minutes int) error {
	if minutes < 1 || minutes > 1440 {
		return ErrOutOfRange
	}
	return nil
}

// Progress is the clamped percent of the goal covered by currentMinutes.
// A zero (or unset) goal counts as always satisfied.
func Progress(goalMinutes, currentMinutes int) float64 {
	if goalMinutes <= 0 {
		return 100
	}
	p := float64(currentMinutes) / float64(goalMinutes) * 100
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
