package store

import (
	"context"
	"errors"

	"github.com/trigtutor/backend/internal/domain/attempt"
	"github.com/trigtutor/backend/internal/domain/progress"
	"github.com/trigtutor/backend/internal/domain/user"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("already exists")
	ErrConstraint = errors.New("constraint violation")
)

// Store is the persistence layer behind the services.
type Store interface {
	Ping(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, u *user.User) error
	GetUser(ctx context.Context, id int64) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)
	ListUsers(ctx context.Context) ([]user.User, error)
	ListRankedUsers(ctx context.Context, limit int) ([]user.User, error)

	// Attempts
	InsertAttempt(ctx context.Context, a *attempt.Attempt) error
	RecordAttempts(ctx context.Context, attempts []*attempt.Attempt) error
	LastQuestion(ctx context.Context, userID int64) (string, error)
	ListAttempts(ctx context.Context, userID int64, limit int) ([]attempt.Attempt, error)

	// Aggregates
	DailyProgress(ctx context.Context, userID int64, days int) ([]progress.DailyProgress, error)
	TopicBreakdown(ctx context.Context, userID int64) ([]progress.TopicStats, error)
	WeeklyActivity(ctx context.Context, userID int64, weeks int) ([]progress.WeeklyActivity, error)
}

// Compile-time check: *SQLiteStore satisfies the Store interface.
var _ Store = (*SQLiteStore)(nil)
