// internal/service/analytics.go
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/trigtutor/backend/internal/domain/attempt"
	"github.com/trigtutor/backend/internal/domain/progress"
	"github.com/trigtutor/backend/internal/domain/user"
	"github.com/trigtutor/backend/internal/store"
)

// Windows bounds the trailing ranges used by the analytics reads.
type Windows struct {
	ProgressDays    int
	WeeklyWeeks     int
	LeaderboardSize int
}

var DefaultWindows = Windows{
	ProgressDays:    30,
	WeeklyWeeks:     12,
	LeaderboardSize: 10,
}

const defaultAttemptHistory = 20

// Analytics serves read-only views over users and their attempts.
//
// Every method returns an empty value alongside a non-nil error: nil for
// single objects and an empty, non-nil slice for lists. Errors are logged
// here so callers may ignore them and render the empty value.
type Analytics struct {
	store   store.Store
	windows Windows
	logger  *slog.Logger
}

// NewAnalytics creates an Analytics. Zero or negative windows fall back to
// DefaultWindows.
func NewAnalytics(s store.Store, w Windows, logger *slog.Logger) *Analytics {
	if w.ProgressDays <= 0 {
		w.ProgressDays = DefaultWindows.ProgressDays
	}
	if w.WeeklyWeeks <= 0 {
		w.WeeklyWeeks = DefaultWindows.WeeklyWeeks
	}
	if w.LeaderboardSize <= 0 {
		w.LeaderboardSize = DefaultWindows.LeaderboardSize
	}
	return &Analytics{store: s, windows: w, logger: logger}
}

func (a *Analytics) Windows() Windows {
	return a.windows
}

// UserStats returns the user's counters with derived accuracy and pacing.
func (a *Analytics) UserStats(ctx context.Context, userID int64) (*user.Stats, error) {
	u, err := a.store.GetUser(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		a.logger.Warn("stats for unknown user", "user_id", userID)
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, a.fail("user stats", err, "user_id", userID)
	}
	s := user.ComputeStats(*u)
	return &s, nil
}

// AllUsersStats returns stats for every user, busiest first.
func (a *Analytics) AllUsersStats(ctx context.Context) ([]user.Stats, error) {
	users, err := a.store.ListUsers(ctx)
	if err != nil {
		return []user.Stats{}, a.fail("all users stats", err)
	}
	stats := make([]user.Stats, len(users))
	for i, u := range users {
		stats[i] = user.ComputeStats(u)
	}
	return stats, nil
}

// UserProgress returns per-day totals over the trailing days window, most
// recent day first. days <= 0 uses the configured window.
func (a *Analytics) UserProgress(ctx context.Context, userID int64, days int) ([]progress.DailyProgress, error) {
	if days <= 0 {
		days = a.windows.ProgressDays
	}
	rows, err := a.store.DailyProgress(ctx, userID, days)
	if err != nil {
		return []progress.DailyProgress{}, a.fail("user progress", err, "user_id", userID)
	}
	for i := range rows {
		rows[i].Round()
	}
	return rows, nil
}

// UserTopicStats returns per-topic totals, most practised topic first.
func (a *Analytics) UserTopicStats(ctx context.Context, userID int64) ([]progress.TopicStats, error) {
	rows, err := a.store.TopicBreakdown(ctx, userID)
	if err != nil {
		return []progress.TopicStats{}, a.fail("user topic stats", err, "user_id", userID)
	}
	for i := range rows {
		rows[i].Round()
	}
	return rows, nil
}

// Leaderboard ranks users with at least one prompt by accuracy, then by
// volume. limit <= 0 uses the configured size.
func (a *Analytics) Leaderboard(ctx context.Context, limit int) ([]progress.RankEntry, error) {
	if limit <= 0 {
		limit = a.windows.LeaderboardSize
	}
	users, err := a.store.ListRankedUsers(ctx, limit)
	if err != nil {
		return []progress.RankEntry{}, a.fail("leaderboard", err)
	}
	return progress.Rank(users), nil
}

// WeeklyActivity returns per-week totals over the configured weeks window,
// most recent week first.
func (a *Analytics) WeeklyActivity(ctx context.Context, userID int64) ([]progress.WeeklyActivity, error) {
	rows, err := a.store.WeeklyActivity(ctx, userID, a.windows.WeeklyWeeks)
	if err != nil {
		return []progress.WeeklyActivity{}, a.fail("weekly activity", err, "user_id", userID)
	}
	for i := range rows {
		rows[i].Round()
	}
	return rows, nil
}

// RecentAttempts returns the user's latest attempts, newest first.
func (a *Analytics) RecentAttempts(ctx context.Context, userID int64, limit int) ([]attempt.Attempt, error) {
	if limit <= 0 {
		limit = defaultAttemptHistory
	}
	rows, err := a.store.ListAttempts(ctx, userID, limit)
	if err != nil {
		return []attempt.Attempt{}, a.fail("recent attempts", err, "user_id", userID)
	}
	return rows, nil
}

func (a *Analytics) fail(op string, err error, attrs ...any) error {
	a.logger.Error("analytics query failed", append(attrs, "op", op, "error", err)...)
	return &StorageError{Op: op, Err: err}
}
