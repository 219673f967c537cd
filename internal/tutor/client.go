// Package tutor talks to the Python tutor service that solves problems and
// generates lessons, quizzes and graphs.
package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client calls the tutor service over HTTP.
type Client struct {
	baseURL string       // e.g. "http://localhost:7000"
	client  *http.Client // reused across calls
}

// ServiceError is returned when the tutor service answered with a non-2xx
// status or could not be reached at all (Status 0).
type ServiceError struct {
	Status  int
	Message string
	Wrapped error
}

func (e *ServiceError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("tutor service: %s: %v", e.Message, e.Wrapped)
	}
	return fmt.Sprintf("tutor service returned status %d: %s", e.Status, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Wrapped
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the service root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ============================================================================
// Solver
// ============================================================================

type SolveResult struct {
	FinalAnswer   string  `json:"final_answer"`
	SolutionSteps []any   `json:"solution_steps"`
	Confidence    float64 `json:"confidence"`
	HasGraph      bool    `json:"has_graph"`
	GraphImage    *string `json:"graph_image"`
}

func (c *Client) Solve(ctx context.Context, question string) (*SolveResult, error) {
	var out SolveResult
	if err := c.call(ctx, http.MethodPost, "/solve", map[string]string{"question": question}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type HelpResult struct {
	FinalAnswer   string  `json:"final_answer"`
	SolutionSteps []any   `json:"solution_steps"`
	Hints         []any   `json:"hints"`
	HasGraph      bool    `json:"has_graph"`
	GraphImage    *string `json:"graph_image"`
}

func (c *Client) TutorHelp(ctx context.Context, problem, helpContext string) (*HelpResult, error) {
	body := map[string]string{"problem": problem, "context": helpContext}
	var out HelpResult
	if err := c.call(ctx, http.MethodPost, "/tutor-help", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ============================================================================
// Lessons, quizzes and graphs (passed through untouched)
// ============================================================================

func (c *Client) GenerateLesson(ctx context.Context, topic string) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodPost, "/generate_lesson", map[string]string{"topic": topic})
}

func (c *Client) LessonTopics(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/lesson_topics", nil)
}

func (c *Client) LessonStats(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/lesson_stats", nil)
}

func (c *Client) GenerateQuiz(ctx context.Context, topic string, numQuestions int) (json.RawMessage, error) {
	body := map[string]any{"topic": topic, "num_questions": numQuestions}
	return c.raw(ctx, http.MethodPost, "/generate_quiz", body)
}

// QuizRef identifies a quiz and optionally one of its questions. IDs are
// kept raw since the service mixes numbers and strings.
type QuizRef struct {
	QuizID     json.RawMessage `json:"quiz_id"`
	QuestionID json.RawMessage `json:"question_id,omitempty"`
}

func (c *Client) QuizQuestionAnswer(ctx context.Context, ref QuizRef) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodPost, "/quiz_question_answer", ref)
}

func (c *Client) QuizProgress(ctx context.Context, quizID json.RawMessage) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodPost, "/quiz_progress", QuizRef{QuizID: quizID})
}

func (c *Client) QuizTopics(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/quiz_topics", nil)
}

func (c *Client) PopularQuizTopics(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/popular_quiz_topics", nil)
}

func (c *Client) QuizStats(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/quiz_stats", nil)
}

func (c *Client) Graph(ctx context.Context, expression, question string) (json.RawMessage, error) {
	body := map[string]string{"expression": expression, "question": question}
	return c.raw(ctx, http.MethodPost, "/graph", body)
}

// ProcessImage forwards a multipart upload as is. contentType must carry the
// multipart boundary of body.
func (c *Client) ProcessImage(ctx context.Context, contentType string, body io.Reader) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/process-image", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	var out json.RawMessage
	if err := c.send(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ============================================================================
// Conversations
// ============================================================================

func (c *Client) CreateConversation(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodPost, "/conversations/new", nil)
}

func (c *Client) ListConversations(ctx context.Context) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/conversations", nil)
}

func (c *Client) GetConversation(ctx context.Context, id string) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodGet, "/conversations/"+url.PathEscape(id), nil)
}

func (c *Client) DeleteConversation(ctx context.Context, id string) (json.RawMessage, error) {
	return c.raw(ctx, http.MethodDelete, "/conversations/"+url.PathEscape(id), nil)
}

// ============================================================================
// HTTP plumbing
// ============================================================================

func (c *Client) raw(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.call(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// call sends body as JSON (when non-nil) and decodes the response into out.
func (c *Client) call(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &ServiceError{Message: "request failed", Wrapped: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ServiceError{Status: resp.StatusCode, Message: "failed to read response", Wrapped: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServiceError{Status: resp.StatusCode, Message: errorMessage(data, resp.Status)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &ServiceError{Status: resp.StatusCode, Message: "invalid JSON in response", Wrapped: err}
	}
	return nil
}

// errorMessage pulls the "error" field out of a failure body, falling back
// to the HTTP status text.
func errorMessage(data []byte, fallback string) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return fallback
}
