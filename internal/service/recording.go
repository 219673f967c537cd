// internal/service/recording.go
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trigtutor/backend/internal/domain/attempt"
	"github.com/trigtutor/backend/internal/store"
)

var (
	// ErrInvalidAttempt is returned when the input was rejected before any write.
	ErrInvalidAttempt = attempt.ErrInvalid
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// StorageError wraps a failure of the persistence layer so callers can tell
// it apart from bad input.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Recorded collapses a recording outcome to a success flag.
func Recorded(err error) bool {
	return err == nil
}

// Recorder appends attempts and keeps the owning user's counters in step.
type Recorder struct {
	store  store.Store
	logger *slog.Logger
}

func NewRecorder(s store.Store, logger *slog.Logger) *Recorder {
	return &Recorder{store: s, logger: logger}
}

// RecordAttempt validates in, then inserts the attempt and increments the
// user's counters in one transaction. Nothing is written on failure.
func (r *Recorder) RecordAttempt(ctx context.Context, in attempt.Input) error {
	if err := in.Validate(); err != nil {
		r.logger.Warn("rejected attempt", "user_id", in.UserID, "error", err)
		return err
	}

	a := in.ToAttempt()
	if err := r.store.RecordAttempts(ctx, []*attempt.Attempt{a}); err != nil {
		return r.classify("record attempt", err, "user_id", in.UserID)
	}

	r.logger.Debug("attempt recorded",
		"attempt_id", a.ID,
		"user_id", a.UserID,
		"topic", a.Topic,
		"correct", a.Correct,
	)
	return nil
}

// RecordAttemptsBatch validates every entry before writing anything, then
// records them all in a single transaction. Either every entry is applied
// or none is.
func (r *Recorder) RecordAttemptsBatch(ctx context.Context, inputs []attempt.Input) error {
	if len(inputs) == 0 {
		return nil
	}

	attempts := make([]*attempt.Attempt, len(inputs))
	for i, in := range inputs {
		if err := in.Validate(); err != nil {
			err = fmt.Errorf("entry %d: %w", i, err)
			r.logger.Warn("rejected attempt batch", "size", len(inputs), "error", err)
			return err
		}
		attempts[i] = in.ToAttempt()
	}

	if err := r.store.RecordAttempts(ctx, attempts); err != nil {
		return r.classify("record attempt batch", err, "size", len(inputs))
	}

	r.logger.Info("attempt batch recorded", "size", len(attempts))
	return nil
}

// classify maps store errors onto the recording error kinds and logs them.
func (r *Recorder) classify(op string, err error, attrs ...any) error {
	if errors.Is(err, store.ErrNotFound) {
		r.logger.Warn("attempt for unknown user", append(attrs, "error", err)...)
		return fmt.Errorf("%w: %v", ErrUserNotFound, err)
	}
	r.logger.Error("failed to record attempt", append(attrs, "op", op, "error", err)...)
	return &StorageError{Op: op, Err: err}
}
