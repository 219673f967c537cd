package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/trigtutor/backend/internal/domain/attempt"
	"github.com/trigtutor/backend/internal/store"
	"github.com/trigtutor/backend/internal/tutor"
)

// confidenceThreshold is the solver confidence above which a solve counts
// as a correct attempt.
const confidenceThreshold = 0.7

var disagreementPhrases = []string{
	"wrong", "are you sure", "not right", "try again", "incorrect", "that's wrong",
}

// studentDisagreed reports whether msg pushes back on the previous answer.
func studentDisagreed(msg string) bool {
	s := strings.ToLower(msg)
	for _, p := range disagreementPhrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// ── Request / Response types ────────────────────────────────────────────────

type SolveRequest struct {
	Question    string `json:"question" example:"Solve sin(x) = 0.5 for 0 <= x < 360"`
	Topic       string `json:"topic,omitempty" example:"Equations"`
	TimeSeconds int64  `json:"time_seconds,omitempty" example:"42"`
}

func (r *SolveRequest) Validate() error {
	if n := utf8.RuneCountInString(strings.TrimSpace(r.Question)); n < 1 || n > 1000 {
		return errors.New("question must be between 1 and 1000 characters")
	}
	if utf8.RuneCountInString(r.Topic) > 100 {
		return errors.New("topic must be at most 100 characters")
	}
	if r.TimeSeconds < 0 {
		return errors.New("time_seconds cannot be negative")
	}
	return nil
}

type SolveResponse struct {
	FinalAnswer   string  `json:"final_answer"`
	SolutionSteps []any   `json:"solution_steps"`
	HasGraph      bool    `json:"has_graph"`
	GraphImage    *string `json:"graph_image"`
}

type TutorHelpRequest struct {
	Problem string `json:"problem" example:"Prove sin^2 x + cos^2 x = 1"`
	Context string `json:"context,omitempty"`
}

func (r *TutorHelpRequest) Validate() error {
	if strings.TrimSpace(r.Problem) == "" {
		return errors.New("problem is required")
	}
	return nil
}

type TutorHelpResponse struct {
	FinalAnswer   string  `json:"final_answer"`
	SolutionSteps []any   `json:"solution_steps"`
	Hints         []any   `json:"hints"`
	HasGraph      bool    `json:"has_graph"`
	GraphImage    *string `json:"graph_image"`
}

type TopicRequest struct {
	Topic string `json:"topic" example:"Unit circle"`
}

func (r *TopicRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return errors.New("topic is required")
	}
	return nil
}

type QuizRequest struct {
	Topic        string `json:"topic" example:"Identities"`
	NumQuestions int    `json:"num_questions,omitempty" example:"5"`
}

func (r *QuizRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return errors.New("topic is required")
	}
	if r.NumQuestions < 0 {
		return errors.New("num_questions cannot be negative")
	}
	return nil
}

type GraphRequest struct {
	Expression string `json:"expression,omitempty" example:"sin(x)"`
	Question   string `json:"question,omitempty"`
}

func (r *GraphRequest) Validate() error {
	if strings.TrimSpace(r.Expression) == "" && strings.TrimSpace(r.Question) == "" {
		return errors.New("expression or question is required")
	}
	return nil
}

func orEmpty(v []any) []any {
	if v == nil {
		return []any{}
	}
	return v
}

// record stores one attempt for the caller. Recording is best effort: a
// failure is logged by the recorder and never changes the response.
func (h *Handler) record(r *http.Request, userID int64, topic string, correct bool, timeSeconds int64, question string) {
	ctx := context.WithoutCancel(r.Context())
	h.recorder.RecordAttempt(ctx, attempt.Input{
		UserID:      userID,
		Topic:       topic,
		Correct:     correct,
		TimeSeconds: timeSeconds,
		Question:    question,
	})
}

// ── Solver ──────────────────────────────────────────────────────────────────

// solve sends a problem to the solver and records the attempt.
// @Summary      Solve a problem
// @Description  When the question disputes the previous answer ("that's wrong", "try again", ...) the caller's last question is solved again.
// @Tags         Tutor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      SolveRequest  true  "Problem"
// @Success      200   {object}  Envelope{data=SolveResponse}
// @Failure      400   {object}  Envelope
// @Failure      502   {object}  Envelope
// @Router       /api/solve [post]
func (h *Handler) solve(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	var req SolveRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = attempt.TopicDefault
	}

	question := req.Question
	if studentDisagreed(question) {
		last, err := h.store.LastQuestion(r.Context(), userID)
		switch {
		case err == nil && last != "":
			question = last
		case err != nil && !errors.Is(err, store.ErrNotFound):
			h.logger.Warn("failed to load last question", "user_id", userID, "error", err)
		}
	}

	result, err := h.tutor.Solve(r.Context(), question)
	if err != nil {
		h.handleTutorError(w, err, "AI Tutor failed to solve the problem")
		return
	}

	h.record(r, userID, topic, result.Confidence > confidenceThreshold, req.TimeSeconds, question)

	resp := SolveResponse{
		FinalAnswer:   result.FinalAnswer,
		SolutionSteps: orEmpty(result.SolutionSteps),
		HasGraph:      result.HasGraph,
		GraphImage:    result.GraphImage,
	}
	if resp.FinalAnswer == "" {
		resp.FinalAnswer = "No solution available"
	}
	respondOK(w, resp)
}

// tutorHelp asks for a guided walkthrough.
// @Summary      Tutor help
// @Tags         Tutor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      TutorHelpRequest  true  "Problem"
// @Success      200   {object}  Envelope{data=TutorHelpResponse}
// @Failure      400   {object}  Envelope
// @Failure      502   {object}  Envelope
// @Router       /api/tutor-help [post]
func (h *Handler) tutorHelp(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	var req TutorHelpRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.tutor.TutorHelp(r.Context(), req.Problem, req.Context)
	if err != nil {
		h.handleTutorError(w, err, "Failed to get tutor help")
		return
	}

	h.record(r, userID, attempt.TopicTutorHelp, true, 0, req.Problem)

	resp := TutorHelpResponse{
		FinalAnswer:   result.FinalAnswer,
		SolutionSteps: orEmpty(result.SolutionSteps),
		Hints:         orEmpty(result.Hints),
		HasGraph:      result.HasGraph,
		GraphImage:    result.GraphImage,
	}
	if resp.FinalAnswer == "" {
		resp.FinalAnswer = "I'll help you solve this step by step:"
	}
	respondOK(w, resp)
}

// ── Lessons ─────────────────────────────────────────────────────────────────

// generateLesson builds a lesson for a topic.
// @Summary      Generate a lesson
// @Tags         Lessons
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      TopicRequest  true  "Lesson topic"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      502   {object}  Envelope
// @Router       /api/generate-lesson [post]
func (h *Handler) generateLesson(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	var req TopicRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	raw, err := h.tutor.GenerateLesson(r.Context(), req.Topic)
	if err != nil {
		h.handleTutorError(w, err, "Failed to generate lesson")
		return
	}

	h.record(r, userID, attempt.TopicLessonGeneration, true, 0, "Lesson: "+req.Topic)
	respondOK(w, raw)
}

// ── Quizzes ─────────────────────────────────────────────────────────────────

// generateQuiz builds a quiz for a topic.
// @Summary      Generate a quiz
// @Tags         Quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      QuizRequest  true  "Quiz topic and size"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      502   {object}  Envelope
// @Router       /api/generate-quiz [post]
func (h *Handler) generateQuiz(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	var req QuizRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if req.NumQuestions == 0 {
		req.NumQuestions = 5
	}

	raw, err := h.tutor.GenerateQuiz(r.Context(), req.Topic, req.NumQuestions)
	if err != nil {
		h.handleTutorError(w, err, "Failed to generate quiz")
		return
	}

	h.record(r, userID, attempt.TopicQuizGeneration, true, 0, "Quiz: "+req.Topic)
	respondOK(w, raw)
}

// quizQuestionAnswer reveals one question's answer.
// @Summary      Quiz answer
// @Tags         Quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      tutor.QuizRef  true  "Quiz and question IDs"
// @Success      200   {object}  Envelope
// @Router       /api/quiz-question-answer [post]
func (h *Handler) quizQuestionAnswer(w http.ResponseWriter, r *http.Request) {
	var ref tutor.QuizRef
	if !decodeJSON(w, r, &ref) {
		return
	}
	raw, err := h.tutor.QuizQuestionAnswer(r.Context(), ref)
	if err != nil {
		h.handleTutorError(w, err, "Failed to get question answer")
		return
	}
	respondOK(w, raw)
}

// quizProgress reports progress through a quiz.
// @Summary      Quiz progress
// @Tags         Quizzes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      tutor.QuizRef  true  "Quiz ID"
// @Success      200   {object}  Envelope
// @Router       /api/quiz-progress [post]
func (h *Handler) quizProgress(w http.ResponseWriter, r *http.Request) {
	var ref tutor.QuizRef
	if !decodeJSON(w, r, &ref) {
		return
	}
	raw, err := h.tutor.QuizProgress(r.Context(), ref.QuizID)
	if err != nil {
		h.handleTutorError(w, err, "Failed to get quiz progress")
		return
	}
	respondOK(w, raw)
}

// ── Graphs and OCR ──────────────────────────────────────────────────────────

// generateGraph plots an expression.
// @Summary      Generate a graph
// @Tags         Graphs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      GraphRequest  true  "Expression or question"
// @Success      200   {object}  Envelope
// @Failure      400   {object}  Envelope
// @Failure      502   {object}  Envelope
// @Router       /api/generate-graph [post]
func (h *Handler) generateGraph(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.currentUserID(w, r)
	if !ok {
		return
	}
	var req GraphRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	raw, err := h.tutor.Graph(r.Context(), req.Expression, req.Question)
	if err != nil {
		h.handleTutorError(w, err, "Failed to generate graph")
		return
	}

	h.record(r, userID, attempt.TopicGraphGeneration, true, 0, "Graph: "+req.Expression)
	respondOK(w, raw)
}

// processImage extracts text from an uploaded image.
// @Summary      Read a problem from an image
// @Tags         OCR
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        image  formData  file  true  "Image of the problem"
// @Success      200    {object}  Envelope
// @Failure      400    {object}  Envelope
// @Router       /api/process-image [post]
func (h *Handler) processImage(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		respondError(w, http.StatusBadRequest, "expected a multipart/form-data upload")
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxUploadSize)
	raw, err := h.tutor.ProcessImage(r.Context(), contentType, body)
	if err != nil {
		h.handleTutorError(w, err, "Failed to process image")
		return
	}
	respondOK(w, raw)
}

// ── Read-only passthroughs ──────────────────────────────────────────────────

// passthrough serves a tutor read that takes no input.
func (h *Handler) passthrough(call func(ctx context.Context) (json.RawMessage, error), what string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := call(r.Context())
		if err != nil {
			h.handleTutorError(w, err, fmt.Sprintf("Failed to get %s", what))
			return
		}
		respondOK(w, raw)
	}
}

// ── Conversations ───────────────────────────────────────────────────────────

// getConversation loads one conversation.
// @Summary      Get a conversation
// @Tags         Conversations
// @Produce      json
// @Security     BearerAuth
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  Envelope
// @Router       /api/conversations/{conversationID} [get]
func (h *Handler) getConversation(w http.ResponseWriter, r *http.Request) {
	raw, err := h.tutor.GetConversation(r.Context(), r.PathValue("conversationID"))
	if err != nil {
		h.handleTutorError(w, err, "Failed to get conversation")
		return
	}
	respondOK(w, raw)
}

// deleteConversation removes one conversation.
// @Summary      Delete a conversation
// @Tags         Conversations
// @Produce      json
// @Security     BearerAuth
// @Param        conversationID  path      string  true  "Conversation ID"
// @Success      200             {object}  Envelope
// @Router       /api/conversations/{conversationID} [delete]
func (h *Handler) deleteConversation(w http.ResponseWriter, r *http.Request) {
	raw, err := h.tutor.DeleteConversation(r.Context(), r.PathValue("conversationID"))
	if err != nil {
		h.handleTutorError(w, err, "Failed to delete conversation")
		return
	}
	respondOK(w, raw)
}
