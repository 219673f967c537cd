package attempt_test

import (
	"errors"
	"testing"

	"github.com/trigtutor/backend/internal/domain/attempt"
)

func TestValidate_OK(t *testing.T) {
	in := attempt.Input{UserID: 1, Topic: "Equations", Correct: true, TimeSeconds: 20}
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	cases := map[string]attempt.Input{
		"zero user":     {UserID: 0, Topic: "Equations"},
		"negative user": {UserID: -3, Topic: "Equations"},
		"empty topic":   {UserID: 1, Topic: ""},
		"blank topic":   {UserID: 1, Topic: "   "},
		"negative time": {UserID: 1, Topic: "Equations", TimeSeconds: -1},
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			err := in.Validate()
			if !errors.Is(err, attempt.ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestToAttempt_TrimsTopic(t *testing.T) {
	a := attempt.Input{UserID: 7, Topic: " Graphs ", Correct: true, TimeSeconds: 30, Question: "sin(x)"}.ToAttempt()

	if a.Topic != "Graphs" {
		t.Errorf("expected topic %q, got %q", "Graphs", a.Topic)
	}
	if a.UserID != 7 || !a.Correct || a.TimeSeconds != 30 || a.Question != "sin(x)" {
		t.Errorf("unexpected attempt: %+v", a)
	}
	if a.ID != 0 {
		t.Errorf("expected unassigned id, got %d", a.ID)
	}
}
