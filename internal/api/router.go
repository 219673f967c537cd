// internal/api/router.go
package api

import (
	"net/http"
	"time"
)

// HealthResponse reports gateway status.
type HealthResponse struct {
	Status        string `json:"status" example:"Server is running"`
	Timestamp     string `json:"timestamp" example:"2024-01-01T12:00:00Z"`
	PythonService string `json:"python_service" example:"http://localhost:7000"`
	Environment   string `json:"environment" example:"development"`
}

// RegisterRoutes mounts every /api route on mux.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	authed := h.requireAuth
	admin := func(next http.HandlerFunc) http.HandlerFunc {
		return h.requireAuth(h.requireAdmin(next))
	}
	gated := func(next http.HandlerFunc) http.HandlerFunc {
		return h.rateLimit(h.requireDB(next))
	}

	mux.HandleFunc("GET /api/health", h.health)

	// Auth
	mux.HandleFunc("POST /api/auth/register", gated(h.register))
	mux.HandleFunc("POST /api/auth/login", gated(h.login))
	mux.HandleFunc("GET /api/user/me", authed(h.me))

	// Stats
	mux.HandleFunc("GET /api/stats/user/stats", authed(h.userStats))
	mux.HandleFunc("GET /api/stats/user/progress", authed(h.userProgress))
	mux.HandleFunc("GET /api/stats/user/topics", authed(h.userTopics))
	mux.HandleFunc("GET /api/stats/user/weekly-activity", authed(h.weeklyActivity))
	mux.HandleFunc("GET /api/stats/user/attempts", authed(h.recentAttempts))
	mux.HandleFunc("GET /api/stats/leaderboard", authed(h.leaderboard))

	// Admin
	mux.HandleFunc("GET /api/stats/admin/users", admin(h.adminUsers))
	mux.HandleFunc("GET /api/stats/admin/users/export", admin(h.exportUsers))
	mux.HandleFunc("POST /api/stats/admin/attempts/import", admin(h.importAttempts))

	// Tutor (recorded)
	mux.HandleFunc("POST /api/solve", authed(h.solve))
	mux.HandleFunc("POST /api/tutor-help", authed(h.tutorHelp))
	mux.HandleFunc("POST /api/generate-lesson", authed(h.generateLesson))
	mux.HandleFunc("POST /api/generate-quiz", authed(h.generateQuiz))
	mux.HandleFunc("POST /api/generate-graph", authed(h.generateGraph))

	// Tutor (passthrough)
	mux.HandleFunc("GET /api/lesson-topics", authed(h.passthrough(h.tutor.LessonTopics, "lesson topics")))
	mux.HandleFunc("GET /api/lesson-stats", authed(h.passthrough(h.tutor.LessonStats, "lesson stats")))
	mux.HandleFunc("POST /api/quiz-question-answer", authed(h.quizQuestionAnswer))
	mux.HandleFunc("POST /api/quiz-progress", authed(h.quizProgress))
	mux.HandleFunc("GET /api/quiz-topics", authed(h.passthrough(h.tutor.QuizTopics, "quiz topics")))
	mux.HandleFunc("GET /api/popular-quiz-topics", authed(h.passthrough(h.tutor.PopularQuizTopics, "popular quiz topics")))
	mux.HandleFunc("GET /api/quiz-stats", authed(h.passthrough(h.tutor.QuizStats, "quiz stats")))
	mux.HandleFunc("POST /api/process-image", authed(h.processImage))

	// Conversations
	mux.HandleFunc("POST /api/conversations/new", authed(h.passthrough(h.tutor.CreateConversation, "new conversation")))
	mux.HandleFunc("GET /api/conversations", authed(h.passthrough(h.tutor.ListConversations, "conversations")))
	mux.HandleFunc("GET /api/conversations/{conversationID}", authed(h.getConversation))
	mux.HandleFunc("DELETE /api/conversations/{conversationID}", authed(h.deleteConversation))

	mux.HandleFunc("/api/", notFound)
}

// health reports that the gateway is up.
// @Summary      Health check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  Envelope{data=HealthResponse}
// @Router       /api/health [get]
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondOK(w, HealthResponse{
		Status:        "Server is running",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		PythonService: h.tutor.BaseURL(),
		Environment:   h.environment,
	})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, "API endpoint not found")
}
