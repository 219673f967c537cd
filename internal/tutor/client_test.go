package tutor_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/trigtutor/backend/internal/tutor"
)

func newClient(t *testing.T, h http.HandlerFunc) *tutor.Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return tutor.NewClient(srv.URL, 5*time.Second)
}

func TestSolve_SendsQuestionAndDecodes(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/solve" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["question"] != "sin(30)" {
			t.Errorf("unexpected question %q", body["question"])
		}
		w.Write([]byte(`{"success":true,"final_answer":"0.5","solution_steps":["step"],"confidence":0.9}`))
	})

	res, err := c.Solve(context.Background(), "sin(30)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.FinalAnswer != "0.5" || res.Confidence != 0.9 || len(res.SolutionSteps) != 1 {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestCall_ServiceErrorCarriesMessage(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Please provide a topic"}`))
	})

	_, err := c.GenerateLesson(context.Background(), "")

	var se *tutor.ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected *ServiceError, got %T: %v", err, err)
	}
	if se.Status != http.StatusBadRequest || se.Message != "Please provide a topic" {
		t.Errorf("unexpected error: %+v", se)
	}
}

func TestCall_NonJSONFailureFallsBackToStatus(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.QuizTopics(context.Background())

	var se *tutor.ServiceError
	if !errors.As(err, &se) || se.Status != http.StatusBadGateway {
		t.Fatalf("expected 502 ServiceError, got %v", err)
	}
	if !strings.Contains(se.Message, "502") {
		t.Errorf("expected status text in message, got %q", se.Message)
	}
}

func TestCall_Unreachable(t *testing.T) {
	c := tutor.NewClient("http://127.0.0.1:1", time.Second)

	_, err := c.LessonTopics(context.Background())

	var se *tutor.ServiceError
	if !errors.As(err, &se) || se.Status != 0 || se.Wrapped == nil {
		t.Fatalf("expected transport ServiceError, got %v", err)
	}
}

func TestPassthroughPaths(t *testing.T) {
	var got []string
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"ok":true}`))
	})
	ctx := context.Background()

	c.LessonStats(ctx)
	c.GenerateQuiz(ctx, "identities", 5)
	c.QuizQuestionAnswer(ctx, tutor.QuizRef{QuizID: json.RawMessage(`1`), QuestionID: json.RawMessage(`"q2"`)})
	c.QuizProgress(ctx, json.RawMessage(`1`))
	c.PopularQuizTopics(ctx)
	c.QuizStats(ctx)
	c.Graph(ctx, "sin(x)", "")
	c.CreateConversation(ctx)
	c.ListConversations(ctx)
	c.GetConversation(ctx, "abc")
	c.DeleteConversation(ctx, "abc")

	want := []string{
		"GET /lesson_stats",
		"POST /generate_quiz",
		"POST /quiz_question_answer",
		"POST /quiz_progress",
		"GET /popular_quiz_topics",
		"GET /quiz_stats",
		"POST /graph",
		"POST /conversations/new",
		"GET /conversations",
		"GET /conversations/abc",
		"DELETE /conversations/abc",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d calls, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("call %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestGenerateLesson_ReturnsRawBody(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title":"Unit circle","sections":[1,2]}`))
	})

	raw, err := c.GenerateLesson(context.Background(), "unit circle")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != `{"title":"Unit circle","sections":[1,2]}` {
		t.Errorf("unexpected body %s", raw)
	}
}

func TestProcessImage_ForwardsMultipart(t *testing.T) {
	c := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "multipart/form-data; boundary=xyz" {
			t.Errorf("unexpected content type %q", ct)
		}
		b, _ := io.ReadAll(r.Body)
		if string(b) != "payload" {
			t.Errorf("unexpected body %q", b)
		}
		w.Write([]byte(`{"success":true,"extracted_text":"tan x"}`))
	})

	raw, err := c.ProcessImage(context.Background(), "multipart/form-data; boundary=xyz", strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(raw), "tan x") {
		t.Errorf("unexpected body %s", raw)
	}
}
