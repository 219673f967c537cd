package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/trigtutor/backend/internal/service"
)

// Analytics reads degrade to an empty list when storage fails; the failure
// is already logged by the service.

// queryInt returns the named query parameter as an int, or 0 when it is
// absent or malformed.
func queryInt(r *http.Request, name string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		return 0
	}
	return v
}

// userStats returns the caller's counters with accuracy and pacing.
// @Summary      My stats
// @Tags         Stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=user.Stats}
// @Failure      404  {object}  Envelope
// @Failure      500  {object}  Envelope
// @Router       /api/stats/user/stats [get]
func (h *Handler) userStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.analytics.UserStats(r.Context(), userID)
	if errors.Is(err, service.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, "User stats not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to get user stats")
		return
	}
	respondOK(w, stats)
}

// userProgress returns per-day totals.
// @Summary      My daily progress
// @Tags         Stats
// @Produce      json
// @Security     BearerAuth
// @Param        days  query     int  false  "Trailing window in days (default 30)"
// @Success      200   {object}  Envelope{data=[]progress.DailyProgress}
// @Router       /api/stats/user/progress [get]
func (h *Handler) userProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	rows, _ := h.analytics.UserProgress(r.Context(), userID, queryInt(r, "days"))
	respondOK(w, rows)
}

// userTopics returns per-topic totals.
// @Summary      My topic breakdown
// @Tags         Stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=[]progress.TopicStats}
// @Router       /api/stats/user/topics [get]
func (h *Handler) userTopics(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	rows, _ := h.analytics.UserTopicStats(r.Context(), userID)
	respondOK(w, rows)
}

// weeklyActivity returns per-week totals.
// @Summary      My weekly activity
// @Tags         Stats
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=[]progress.WeeklyActivity}
// @Router       /api/stats/user/weekly-activity [get]
func (h *Handler) weeklyActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	rows, _ := h.analytics.WeeklyActivity(r.Context(), userID)
	respondOK(w, rows)
}

// recentAttempts returns the caller's latest attempts.
// @Summary      My recent attempts
// @Tags         Stats
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum rows (default 20)"
// @Success      200    {object}  Envelope{data=[]attempt.Attempt}
// @Router       /api/stats/user/attempts [get]
func (h *Handler) recentAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	rows, _ := h.analytics.RecentAttempts(r.Context(), userID, queryInt(r, "limit"))
	respondOK(w, rows)
}

// leaderboard ranks active users.
// @Summary      Leaderboard
// @Tags         Stats
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 10)"
// @Success      200    {object}  Envelope{data=[]progress.RankEntry}
// @Router       /api/stats/leaderboard [get]
func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request) {
	rows, _ := h.analytics.Leaderboard(r.Context(), queryInt(r, "limit"))
	respondOK(w, rows)
}

// adminUsers lists every user's stats.
// @Summary      All users (admin)
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Envelope{data=[]user.Stats}
// @Failure      403  {object}  Envelope
// @Router       /api/stats/admin/users [get]
func (h *Handler) adminUsers(w http.ResponseWriter, r *http.Request) {
	stats, _ := h.analytics.AllUsersStats(r.Context())
	respondOK(w, stats)
}
