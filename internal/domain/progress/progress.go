package progress

import "github.com/trigtutor/backend/internal/domain/user"

// DailyProgress aggregates one calendar day (UTC) of attempts.
type DailyProgress struct {
	Date            string  `db:"date" json:"date"` // YYYY-MM-DD
	TotalAttempts   int64   `db:"total_attempts" json:"total_attempts"`
	CorrectAttempts int64   `db:"correct_attempts" json:"correct_attempts"`
	AvgTime         float64 `db:"avg_time" json:"avg_time"`
}

// TopicStats aggregates every attempt a user made on one topic.
type TopicStats struct {
	Topic           string  `db:"topic" json:"topic"`
	TotalAttempts   int64   `db:"total_attempts" json:"total_attempts"`
	CorrectAttempts int64   `db:"correct_attempts" json:"correct_attempts"`
	AvgTime         float64 `db:"avg_time" json:"avg_time"`
	SuccessRate     float64 `db:"success_rate" json:"success_rate"`
}

// WeeklyActivity aggregates one week of attempts. WeekNumber follows
// strftime('%W'): weeks start on Monday and days before the first Monday of
// the year fall in week 0.
type WeeklyActivity struct {
	Year            int     `db:"year" json:"year"`
	WeekNumber      int     `db:"week_number" json:"week_number"`
	TotalAttempts   int64   `db:"total_attempts" json:"total_attempts"`
	CorrectAttempts int64   `db:"correct_attempts" json:"correct_attempts"`
	AvgTime         float64 `db:"avg_time" json:"avg_time"`
}

// RankEntry is one leaderboard row.
type RankEntry struct {
	Rank             int     `json:"rank"`
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	TotalPrompts     int64   `json:"total_prompts"`
	CorrectAnswers   int64   `json:"correct_answers"`
	WrongAnswers     int64   `json:"wrong_answers"`
	Accuracy         float64 `json:"accuracy"`
	TotalTimeSeconds int64   `json:"total_time_seconds"`
}

// Rank turns users already ordered by accuracy and volume into ranked entries.
func Rank(users []user.User) []RankEntry {
	entries := make([]RankEntry, len(users))
	for i, u := range users {
		s := user.ComputeStats(u)
		entries[i] = RankEntry{
			Rank:             i + 1,
			ID:               u.ID,
			Name:             u.Name,
			Email:            u.Email,
			TotalPrompts:     u.TotalPrompts,
			CorrectAnswers:   u.CorrectAnswers,
			WrongAnswers:     u.WrongAnswers,
			Accuracy:         s.Accuracy,
			TotalTimeSeconds: u.TotalTimeSeconds,
		}
	}
	return entries
}

// Round applies two-decimal rounding to the averaged fields.
func (d *DailyProgress) Round() {
	d.AvgTime = user.Round2(d.AvgTime)
}

func (t *TopicStats) Round() {
	t.AvgTime = user.Round2(t.AvgTime)
	t.SuccessRate = user.Round2(t.SuccessRate)
}

func (w *WeeklyActivity) Round() {
	w.AvgTime = user.Round2(w.AvgTime)
}
