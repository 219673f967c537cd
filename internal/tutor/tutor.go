package tutor

import (
	"context"
	"encoding/json"
	"io"
)

// Service is the tutor backend the HTTP layer depends on.
// Implementations may call the Python service or return canned results (for tests).
type Service interface {
	BaseURL() string

	Solve(ctx context.Context, question string) (*SolveResult, error)
	TutorHelp(ctx context.Context, problem, helpContext string) (*HelpResult, error)

	GenerateLesson(ctx context.Context, topic string) (json.RawMessage, error)
	LessonTopics(ctx context.Context) (json.RawMessage, error)
	LessonStats(ctx context.Context) (json.RawMessage, error)

	GenerateQuiz(ctx context.Context, topic string, numQuestions int) (json.RawMessage, error)
	QuizQuestionAnswer(ctx context.Context, ref QuizRef) (json.RawMessage, error)
	QuizProgress(ctx context.Context, quizID json.RawMessage) (json.RawMessage, error)
	QuizTopics(ctx context.Context) (json.RawMessage, error)
	PopularQuizTopics(ctx context.Context) (json.RawMessage, error)
	QuizStats(ctx context.Context) (json.RawMessage, error)

	Graph(ctx context.Context, expression, question string) (json.RawMessage, error)
	ProcessImage(ctx context.Context, contentType string, body io.Reader) (json.RawMessage, error)

	CreateConversation(ctx context.Context) (json.RawMessage, error)
	ListConversations(ctx context.Context) (json.RawMessage, error)
	GetConversation(ctx context.Context, id string) (json.RawMessage, error)
	DeleteConversation(ctx context.Context, id string) (json.RawMessage, error)
}

// Compile-time check: *Client satisfies the Service interface.
var _ Service = (*Client)(nil)
