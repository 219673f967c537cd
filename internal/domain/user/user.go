package user

import (
	"math"
	"strings"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

// User is an account plus its running aggregate counters. The counters are
// only ever changed by the recording service.
type User struct {
	ID               int64  `db:"id" json:"id"`
	Name             string `db:"name" json:"name"`
	Email            string `db:"email" json:"email"`
	PasswordHash     string `db:"password" json:"-"`
	Role             Role   `db:"role" json:"role"`
	TotalPrompts     int64  `db:"total_prompts" json:"total_prompts"`
	CorrectAnswers   int64  `db:"correct_answers" json:"correct_answers"`
	WrongAnswers     int64  `db:"wrong_answers" json:"wrong_answers"`
	TotalTimeSeconds int64  `db:"total_time_seconds" json:"total_time_seconds"`
	MostTopic        string `db:"most_topic" json:"most_topic"` // last recorded topic, not the mode
}

// New creates a student with zeroed counters.
func New(name, email, passwordHash string) *User {
	return &User{
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         RoleStudent,
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// TotalAttempts is correct + wrong, which equals TotalPrompts for any user
// whose counters were only touched by the recorder.
func (u *User) TotalAttempts() int64 {
	return u.CorrectAnswers + u.WrongAnswers
}

// Stats is the dashboard view of a user: the stored counters plus derived
// accuracy and pacing figures.
type Stats struct {
	User
	Accuracy           float64 `json:"accuracy"`
	AvgTimePerQuestion float64 `json:"avgTimePerQuestion"`
	TotalAttempts      int64   `json:"totalAttempts"`
}

// ComputeStats derives accuracy (percent) and average time per question,
// both rounded to two decimals. A user without attempts gets zeros.
func ComputeStats(u User) Stats {
	total := u.TotalAttempts()
	s := Stats{User: u, TotalAttempts: total}
	if total > 0 {
		s.Accuracy = Round2(float64(u.CorrectAnswers) / float64(total) * 100)
	}
	if u.TotalPrompts > 0 {
		s.AvgTimePerQuestion = Round2(float64(u.TotalTimeSeconds) / float64(u.TotalPrompts))
	}
	return s
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
