// Copyright (c) 2026 Revelate Operations.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/DrewRevelate/revelate-website-sub000/metrics"
	"github.com/DrewRevelate/revelate-website-sub000/models"
)

// Store owns the poll definition and response tables. The *sql.DB handle is
// injected at construction; the store never opens or closes it.
type Store struct {
	db *sql.DB
	m  *metrics.Metrics
}

func NewStore(db *sql.DB, m *metrics.Metrics) *Store {
	return &Store{db: db, m: m}
}

// EnsureDefinition creates the poll and its ordered options in one
// transaction, or returns without touching anything if the poll id already
// exists. Options are deliberately NOT re-synced on repeat calls: changing a
// live poll's option set would orphan recorded response-option joins.
func (s *Store) EnsureDefinition(ctx context.Context, def models.PollDefinition, options []models.PollOption) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin ensure definition: %w", err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, `SELECT id FROM poll_definition WHERE id = $1`, def.ID).Scan(&existing)
	if err == nil {
		return false, nil
	}
	if err != sql.ErrNoRows {
		return false, fmt.Errorf("check poll exists: %w", err)
	}

	createdAt := def.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO poll_definition (id, title, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, def.ID, def.Title, def.Description, def.IsActive, createdAt)
	if err != nil {
		// Concurrent ensure for the same id: the other caller won, same outcome.
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert poll definition: %w", err)
	}

	for i, opt := range options {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO poll_option (id, poll_id, label, display_order)
			VALUES ($1, $2, $3, $4)
		`, opt.ID, def.ID, opt.Label, i)
		if err != nil {
			return false, fmt.Errorf("insert poll option %q: %w", opt.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit ensure definition: %w", err)
	}

	slog.Info("poll definition created", "poll_id", def.ID, "options", len(options))
	return true, nil
}

// GetDefinition returns the poll and its options in display order.
func (s *Store) GetDefinition(ctx context.Context, pollID string) (*models.PollWithOptions, error) {
	var poll models.PollDefinition
	var description sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, description, is_active, created_at
		FROM poll_definition
		WHERE id = $1
	`, pollID).Scan(&poll.ID, &poll.Title, &description, &poll.IsActive, &poll.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query poll definition: %w", err)
	}
	poll.Description = description.String

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, poll_id, label, display_order
		FROM poll_option
		WHERE poll_id = $1
		ORDER BY display_order
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("query poll options: %w", err)
	}
	defer rows.Close()

	options := []models.PollOption{}
	for rows.Next() {
		var opt models.PollOption
		if err := rows.Scan(&opt.ID, &opt.PollID, &opt.Label, &opt.DisplayOrder); err != nil {
			return nil, fmt.Errorf("scan poll option: %w", err)
		}
		options = append(options, opt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate poll options: %w", err)
	}

	return &models.PollWithOptions{Poll: poll, Options: options}, nil
}

// SetActive flips the poll's active flag. The returned bool distinguishes a
// real change from a no-op (flag already in the requested state); a missing
// poll is ErrPollNotFound so callers can surface 404 instead of a silent 200.
func (s *Store) SetActive(ctx context.Context, pollID string, active bool) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE poll_definition SET is_active = $1 WHERE id = $2 AND is_active <> $1
	`, active, pollID)
	if err != nil {
		return false, fmt.Errorf("update poll active flag: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if affected > 0 {
		slog.Info("poll active flag changed", "poll_id", pollID, "active", active)
		return true, nil
	}

	var exists bool
	err = s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM poll_definition WHERE id = $1)
	`, pollID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check poll exists: %w", err)
	}
	if !exists {
		return false, ErrPollNotFound
	}
	return false, nil
}

// ClearResponses deletes every response and its option joins for the poll in
// one transaction. The definition itself is untouched. Returns the number of
// responses deleted; 0 is a valid result, not an error.
func (s *Store) ClearResponses(ctx context.Context, pollID string) (int64, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM poll_definition WHERE id = $1)
	`, pollID).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check poll exists: %w", err)
	}
	if !exists {
		return 0, ErrPollNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin clear responses: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM poll_response_option
		WHERE response_id IN (SELECT id FROM poll_response WHERE poll_id = $1)
	`, pollID)
	if err != nil {
		return 0, fmt.Errorf("delete response options: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM poll_response WHERE poll_id = $1`, pollID)
	if err != nil {
		return 0, fmt.Errorf("delete responses: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit clear responses: %w", err)
	}

	s.m.RecordResponsesCleared(deleted)
	slog.Info("poll responses cleared", "poll_id", pollID, "deleted", deleted)
	return deleted, nil
}
