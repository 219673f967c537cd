package attempt

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid marks input that was rejected before anything was written.
var ErrInvalid = errors.New("invalid attempt")

// Topics recorded by the tutor routes that do not carry a user-chosen topic.
const (
	TopicDefault          = "Fundamentals"
	TopicTutorHelp        = "tutor_help"
	TopicLessonGeneration = "lesson_generation"
	TopicQuizGeneration   = "quiz_generation"
	TopicGraphGeneration  = "graph_generation"
)

// Attempt is one completed interaction. Rows are append-only.
type Attempt struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Topic       string    `db:"topic" json:"topic"`
	Correct     bool      `db:"correct" json:"correct"`
	TimeSeconds int64     `db:"time_seconds" json:"time_seconds"`
	Question    string    `db:"question" json:"question"`
	Timestamp   time.Time `db:"timestamp" json:"timestamp"`
}

// Input describes an interaction to record.
type Input struct {
	UserID      int64
	Topic       string
	Correct     bool
	TimeSeconds int64
	Question    string
	Timestamp   time.Time // zero means "now"
}

// Validate checks the input shape. The returned error wraps ErrInvalid.
func (in Input) Validate() error {
	if in.UserID <= 0 {
		return fmt.Errorf("%w: user id must be positive, got %d", ErrInvalid, in.UserID)
	}
	if strings.TrimSpace(in.Topic) == "" {
		return fmt.Errorf("%w: topic must be a non-empty string", ErrInvalid)
	}
	if in.TimeSeconds < 0 {
		return fmt.Errorf("%w: time seconds cannot be negative, got %d", ErrInvalid, in.TimeSeconds)
	}
	return nil
}

// ToAttempt builds the row to insert. Call Validate first.
func (in Input) ToAttempt() *Attempt {
	return &Attempt{
		UserID:      in.UserID,
		Topic:       strings.TrimSpace(in.Topic),
		Correct:     in.Correct,
		TimeSeconds: in.TimeSeconds,
		Question:    in.Question,
		Timestamp:   in.Timestamp,
	}
}
