package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/trigtutor/backend/internal/domain/attempt"
	"github.com/trigtutor/backend/internal/domain/user"
	"github.com/trigtutor/backend/internal/service"
	"github.com/trigtutor/backend/internal/store"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newUser(t *testing.T, s store.Store, name string) *user.User {
	t.Helper()
	u := user.New(name, name+"@example.com", "hash")
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return u
}

func mustGetUser(t *testing.T, s store.Store, id int64) *user.User {
	t.Helper()
	u, err := s.GetUser(context.Background(), id)
	if err != nil {
		t.Fatalf("failed to get user: %v", err)
	}
	return u
}

func TestRecordAttempt_IncrementsCounters(t *testing.T) {
	s := newTestStore(t)
	rec := service.NewRecorder(s, discardLogger())
	ctx := context.Background()
	u := newUser(t, s, "ada")

	if err := rec.RecordAttempt(ctx, attempt.Input{UserID: u.ID, Topic: "Equations", Correct: true, TimeSeconds: 12}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := mustGetUser(t, s, u.ID)
	if got.TotalPrompts != 1 || got.CorrectAnswers != 1 || got.WrongAnswers != 0 {
		t.Errorf("unexpected counters after correct attempt: %+v", got)
	}

	if err := rec.RecordAttempt(ctx, attempt.Input{UserID: u.ID, Topic: "Graphs"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got = mustGetUser(t, s, u.ID)
	if got.TotalPrompts != 2 || got.CorrectAnswers != 1 || got.WrongAnswers != 1 {
		t.Errorf("unexpected counters after wrong attempt: %+v", got)
	}
	if got.TotalTimeSeconds != 12 {
		t.Errorf("expected 12 seconds, got %d", got.TotalTimeSeconds)
	}
	if got.MostTopic != "Graphs" {
		t.Errorf("expected most_topic to hold the last topic, got %q", got.MostTopic)
	}
}

func TestRecordAttempt_CounterInvariant(t *testing.T) {
	s := newTestStore(t)
	rec := service.NewRecorder(s, discardLogger())
	u := newUser(t, s, "ada")

	for i := 0; i < 7; i++ {
		in := attempt.Input{UserID: u.ID, Topic: "Ratios", Correct: i%3 == 0, TimeSeconds: int64(i)}
		if err := rec.RecordAttempt(context.Background(), in); err != nil {
			t.Fatalf("attempt %d: unexpected error: %v", i, err)
		}
	}

	got := mustGetUser(t, s, u.ID)
	if got.TotalPrompts != got.CorrectAnswers+got.WrongAnswers {
		t.Errorf("total_prompts %d != correct %d + wrong %d", got.TotalPrompts, got.CorrectAnswers, got.WrongAnswers)
	}
	if got.TotalPrompts != 7 {
		t.Errorf("expected 7 prompts, got %d", got.TotalPrompts)
	}
}

func TestRecordAttempt_RejectsInvalidInput(t *testing.T) {
	s := newTestStore(t)
	rec := service.NewRecorder(s, discardLogger())
	u := newUser(t, s, "ada")

	tests := []struct {
		name string
		in   attempt.Input
	}{
		{"negative time", attempt.Input{UserID: u.ID, Topic: "Equations", TimeSeconds: -1}},
		{"blank topic", attempt.Input{UserID: u.ID, Topic: "   "}},
		{"zero user", attempt.Input{UserID: 0, Topic: "Equations"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := rec.RecordAttempt(context.Background(), tt.in)
			if !errors.Is(err, service.ErrInvalidAttempt) {
				t.Errorf("expected ErrInvalidAttempt, got %v", err)
			}
			if service.Recorded(err) {
				t.Error("expected Recorded to be false")
			}
		})
	}

	got := mustGetUser(t, s, u.ID)
	if got.TotalPrompts != 0 || got.TotalTimeSeconds != 0 {
		t.Errorf("expected untouched counters, got %+v", got)
	}
	attempts, _ := s.ListAttempts(context.Background(), u.ID, 10)
	if len(attempts) != 0 {
		t.Errorf("expected empty attempt log, got %d rows", len(attempts))
	}
}

func TestRecordAttempt_UnknownUserWritesNothing(t *testing.T) {
	s := newTestStore(t)
	rec := service.NewRecorder(s, discardLogger())

	err := rec.RecordAttempt(context.Background(), attempt.Input{UserID: 404, Topic: "Equations"})
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	attempts, _ := s.ListAttempts(context.Background(), 404, 10)
	if len(attempts) != 0 {
		t.Errorf("expected no orphaned attempts, got %d", len(attempts))
	}
}

func TestRecordAttempt_StorageFailure(t *testing.T) {
	rec := service.NewRecorder(&failingStore{err: errors.New("disk I/O error")}, discardLogger())

	err := rec.RecordAttempt(context.Background(), attempt.Input{UserID: 1, Topic: "Equations"})

	var se *service.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StorageError, got %T: %v", err, err)
	}
	if se.Op != "record attempt" {
		t.Errorf("unexpected op %q", se.Op)
	}
}

func TestRecordAttemptsBatch_AllApplied(t *testing.T) {
	s := newTestStore(t)
	rec := service.NewRecorder(s, discardLogger())
	a := newUser(t, s, "ada")
	b := newUser(t, s, "bob")

	err := rec.RecordAttemptsBatch(context.Background(), []attempt.Input{
		{UserID: a.ID, Topic: "Equations", Correct: true, TimeSeconds: 3},
		{UserID: b.ID, Topic: "Graphs", Correct: false, TimeSeconds: 4},
		{UserID: a.ID, Topic: "Graphs", Correct: false, TimeSeconds: 5},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	gotA := mustGetUser(t, s, a.ID)
	if gotA.TotalPrompts != 2 || gotA.CorrectAnswers != 1 || gotA.TotalTimeSeconds != 8 {
		t.Errorf("unexpected counters for a: %+v", gotA)
	}
	gotB := mustGetUser(t, s, b.ID)
	if gotB.TotalPrompts != 1 || gotB.WrongAnswers != 1 {
		t.Errorf("unexpected counters for b: %+v", gotB)
	}
}

func TestRecordAttemptsBatch_InvalidEntryRollsBack(t *testing.T) {
	s := newTestStore(t)
	rec := service.NewRecorder(s, discardLogger())
	u := newUser(t, s, "ada")

	err := rec.RecordAttemptsBatch(context.Background(), []attempt.Input{
		{UserID: u.ID, Topic: "Equations", Correct: true, TimeSeconds: 3},
		{UserID: u.ID, Topic: "Equations", Correct: true, TimeSeconds: -5},
		{UserID: u.ID, Topic: "Graphs", Correct: true, TimeSeconds: 3},
	})
	if !errors.Is(err, service.ErrInvalidAttempt) {
		t.Fatalf("expected ErrInvalidAttempt, got %v", err)
	}

	got := mustGetUser(t, s, u.ID)
	if got.TotalPrompts != 0 || got.CorrectAnswers != 0 || got.TotalTimeSeconds != 0 {
		t.Errorf("expected untouched counters, got %+v", got)
	}
	attempts, _ := s.ListAttempts(context.Background(), u.ID, 10)
	if len(attempts) != 0 {
		t.Errorf("expected empty attempt log, got %d rows", len(attempts))
	}
}

func TestRecordAttemptsBatch_UnknownUserRollsBack(t *testing.T) {
	s := newTestStore(t)
	rec := service.NewRecorder(s, discardLogger())
	u := newUser(t, s, "ada")

	err := rec.RecordAttemptsBatch(context.Background(), []attempt.Input{
		{UserID: u.ID, Topic: "Equations", Correct: true},
		{UserID: u.ID + 1, Topic: "Equations", Correct: true},
	})
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if got := mustGetUser(t, s, u.ID); got.TotalPrompts != 0 {
		t.Errorf("expected rollback, got %d prompts", got.TotalPrompts)
	}
}

func TestRecordAttemptsBatch_Empty(t *testing.T) {
	rec := service.NewRecorder(&failingStore{err: errors.New("unused")}, discardLogger())
	if err := rec.RecordAttemptsBatch(context.Background(), nil); err != nil {
		t.Errorf("expected nil for empty batch, got %v", err)
	}
}
