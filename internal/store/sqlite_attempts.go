package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/trigtutor/backend/internal/domain/attempt"
)

// ============================================================================
// Attempts
// ============================================================================

// InsertAttempt appends a single attempt row without touching the owning
// user's counters. It assigns a.ID and, when zero, a.Timestamp.
func (s *SQLiteStore) InsertAttempt(ctx context.Context, a *attempt.Attempt) error {
	return insertAttempt(ctx, s.db, a)
}

// RecordAttempts appends every attempt and applies it to the owning user's
// counters inside one transaction. Any failure rolls the whole set back. A
// missing user yields ErrNotFound.
func (s *SQLiteStore) RecordAttempts(ctx context.Context, attempts []*attempt.Attempt) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, a := range attempts {
		if err := recordAttempt(ctx, tx, a); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func recordAttempt(ctx context.Context, tx *sqlx.Tx, a *attempt.Attempt) error {
	var exists int
	err := tx.GetContext(ctx, &exists, "SELECT 1 FROM users WHERE id = ?", a.UserID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("user %d: %w", a.UserID, ErrNotFound)
	}
	if err != nil {
		return err
	}

	if err := insertAttempt(ctx, tx, a); err != nil {
		return err
	}

	correct := boolToInt(a.Correct)
	_, err = tx.ExecContext(ctx, `
		UPDATE users SET
			correct_answers = correct_answers + ?,
			wrong_answers = wrong_answers + ?,
			total_prompts = total_prompts + 1,
			total_time_seconds = total_time_seconds + ?,
			most_topic = ?
		WHERE id = ?
	`, correct, 1-correct, a.TimeSeconds, a.Topic, a.UserID)
	return classify(err)
}

func insertAttempt(ctx context.Context, ex sqlx.ExecerContext, a *attempt.Attempt) error {
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	a.Timestamp = a.Timestamp.UTC().Truncate(time.Second)

	result, err := ex.ExecContext(ctx,
		"INSERT INTO attempts (user_id, topic, correct, time_seconds, question, timestamp) VALUES (?, ?, ?, ?, ?, ?)",
		a.UserID, a.Topic, boolToInt(a.Correct), a.TimeSeconds, a.Question, a.Timestamp.Format(timeLayout),
	)
	if err != nil {
		return classify(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	a.ID = id
	return nil
}

// LastQuestion returns the question of the user's most recent attempt, or
// ErrNotFound when there is none.
func (s *SQLiteStore) LastQuestion(ctx context.Context, userID int64) (string, error) {
	var q string
	err := s.db.GetContext(ctx, &q,
		"SELECT question FROM attempts WHERE user_id = ? ORDER BY id DESC LIMIT 1", userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return q, err
}

// ListAttempts returns the user's most recent attempts, newest first.
func (s *SQLiteStore) ListAttempts(ctx context.Context, userID int64, limit int) ([]attempt.Attempt, error) {
	attempts := []attempt.Attempt{}
	err := s.db.SelectContext(ctx, &attempts, `
		SELECT id, user_id, topic, correct, time_seconds, question, timestamp
		FROM attempts
		WHERE user_id = ?
		ORDER BY id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	return attempts, nil
}
