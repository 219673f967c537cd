package store

import (
	"context"
	"fmt"

	"github.com/trigtutor/backend/internal/domain/progress"
)

// ============================================================================
// Aggregates (read-only)
// ============================================================================

// DailyProgress groups the user's attempts of the trailing days window by
// calendar date, most recent date first.
func (s *SQLiteStore) DailyProgress(ctx context.Context, userID int64, days int) ([]progress.DailyProgress, error) {
	rows := []progress.DailyProgress{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT
			DATE(timestamp) AS date,
			COUNT(*) AS total_attempts,
			SUM(correct) AS correct_attempts,
			AVG(time_seconds) AS avg_time
		FROM attempts
		WHERE user_id = ? AND timestamp >= DATE('now', ?)
		GROUP BY DATE(timestamp)
		ORDER BY date DESC
	`, userID, fmt.Sprintf("-%d days", days))
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// TopicBreakdown groups all of the user's attempts by topic, most practised
// topic first.
func (s *SQLiteStore) TopicBreakdown(ctx context.Context, userID int64) ([]progress.TopicStats, error) {
	rows := []progress.TopicStats{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT
			topic,
			COUNT(*) AS total_attempts,
			SUM(correct) AS correct_attempts,
			AVG(time_seconds) AS avg_time,
			SUM(correct) * 100.0 / COUNT(*) AS success_rate
		FROM attempts
		WHERE user_id = ?
		GROUP BY topic
		ORDER BY total_attempts DESC, topic ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// WeeklyActivity groups the user's attempts of the trailing weeks window by
// year and week number, most recent week first. SQLite date modifiers have
// no week unit, so the window is expressed in days.
func (s *SQLiteStore) WeeklyActivity(ctx context.Context, userID int64, weeks int) ([]progress.WeeklyActivity, error) {
	rows := []progress.WeeklyActivity{}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT
			CAST(strftime('%Y', timestamp) AS INTEGER) AS year,
			CAST(strftime('%W', timestamp) AS INTEGER) AS week_number,
			COUNT(*) AS total_attempts,
			SUM(correct) AS correct_attempts,
			AVG(time_seconds) AS avg_time
		FROM attempts
		WHERE user_id = ? AND timestamp >= DATE('now', ?)
		GROUP BY year, week_number
		ORDER BY year DESC, week_number DESC
	`, userID, fmt.Sprintf("-%d days", weeks*7))
	if err != nil {
		return nil, err
	}
	return rows, nil
}
