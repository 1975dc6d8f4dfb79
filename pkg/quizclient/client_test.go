package quizclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func quizPayload() map[string]interface{} {
	return map[string]interface{}{
		"code":    200,
		"message": "success",
		"data": map[string]interface{}{
			"quiz": map[string]interface{}{
				"id":           "quiz-1",
				"lessonId":     "lesson-1",
				"title":        "Checkpoint",
				"passingScore": 70,
				"questions": []map[string]interface{}{
					{
						"id":           "q1",
						"questionText": "First?",
						"answers": []map[string]interface{}{
							{"id": "a1", "questionId": "q1", "answerText": "yes"},
							{"id": "a2", "questionId": "q1", "answerText": "no"},
						},
					},
					{
						"id":           "q2",
						"questionText": "Second?",
						"answers": []map[string]interface{}{
							{"id": "a3", "questionId": "q2", "answerText": "yes"},
							{"id": "a4", "questionId": "q2", "answerText": "no"},
						},
					},
				},
			},
			"attempt": nil,
		},
	}
}

func newQuizServer(t *testing.T, submitStatus *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/lessons/lesson-1/quiz":
			json.NewEncoder(w).Encode(quizPayload())
		case r.Method == http.MethodPost && r.URL.Path == "/functions/submit-quiz":
			status := int(atomic.LoadInt32(submitStatus))
			if status != http.StatusOK {
				w.WriteHeader(status)
				json.NewEncoder(w).Encode(map[string]interface{}{"code": status, "message": "nope"})
				return
			}
			var req struct {
				QuizID          string            `json:"quiz_id"`
				SelectedAnswers map[string]string `json:"selected_answers"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Errorf("bad submit body: %v", err)
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"score":    1,
				"maxScore": 2,
				"passed":   false,
				"attempt":  map[string]interface{}{"id": "attempt-1", "quizId": req.QuizID, "score": 1, "maxScore": 2},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestLoadQuizReachesReady(t *testing.T) {
	status := int32(http.StatusOK)
	server := newQuizServer(t, &status)
	defer server.Close()

	client := New(server.URL, "token")
	if client.State() != StateLoading {
		t.Fatalf("new client should be loading, got %s", client.State())
	}

	if err := client.LoadQuiz(context.Background(), "lesson-1"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if client.State() != StateReady {
		t.Fatalf("expected ready, got %s", client.State())
	}
	if len(client.Quiz().Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(client.Quiz().Questions))
	}
}

func TestSelectAnswerGatesSubmit(t *testing.T) {
	status := int32(http.StatusOK)
	server := newQuizServer(t, &status)
	defer server.Close()

	client := New(server.URL, "token")
	if err := client.LoadQuiz(context.Background(), "lesson-1"); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if client.IsAllAnswered() {
		t.Fatal("nothing selected yet")
	}
	if err := client.SelectAnswer("q1", "a1"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if client.IsAllAnswered() {
		t.Fatal("one of two questions answered")
	}
	if err := client.SelectAnswer("q2", "a3"); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	if !client.IsAllAnswered() {
		t.Fatal("all questions answered")
	}

	// Re-selecting overwrites, it does not duplicate.
	if err := client.SelectAnswer("q1", "a2"); err != nil {
		t.Fatalf("reselect failed: %v", err)
	}
	if got := client.Selections()["q1"]; got != "a2" {
		t.Fatalf("expected overwrite to a2, got %s", got)
	}
}

func TestSubmitCompletes(t *testing.T) {
	status := int32(http.StatusOK)
	server := newQuizServer(t, &status)
	defer server.Close()

	client := New(server.URL, "token")
	if err := client.LoadQuiz(context.Background(), "lesson-1"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	client.SelectAnswer("q1", "a1")
	client.SelectAnswer("q2", "a3")

	result, err := client.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if client.State() != StateCompleted {
		t.Fatalf("expected completed, got %s", client.State())
	}
	if result.Score != 1 || result.MaxScore != 2 || result.Passed {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Attempt == nil || result.Attempt.ID != "attempt-1" {
		t.Fatalf("expected attempt record, got %+v", result.Attempt)
	}

	// Completed with passed=false still requires an explicit Reset.
	if _, err := client.Submit(context.Background()); err != ErrCompleted {
		t.Fatalf("expected ErrCompleted, got %v", err)
	}
	if err := client.SelectAnswer("q1", "a2"); err != ErrCompleted {
		t.Fatalf("selections are frozen after completion, got %v", err)
	}
}

func TestFailedSubmitKeepsSelections(t *testing.T) {
	status := int32(http.StatusInternalServerError)
	server := newQuizServer(t, &status)
	defer server.Close()

	client := New(server.URL, "token")
	if err := client.LoadQuiz(context.Background(), "lesson-1"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	client.SelectAnswer("q1", "a1")
	client.SelectAnswer("q2", "a3")

	if _, err := client.Submit(context.Background()); err == nil {
		t.Fatal("expected submit to fail")
	}
	if client.State() != StateReady {
		t.Fatalf("failed submit must return to ready, got %s", client.State())
	}
	if len(client.Selections()) != 2 {
		t.Fatalf("selections must survive a failed submit, got %v", client.Selections())
	}
	if client.LastError() == nil {
		t.Fatal("the failure must be surfaced for display")
	}

	// Retry is an explicit second Submit, nothing automatic.
	atomic.StoreInt32(&status, http.StatusOK)
	if _, err := client.Submit(context.Background()); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if client.State() != StateCompleted {
		t.Fatalf("expected completed after retry, got %s", client.State())
	}
}

func TestResetClearsAttemptAndSelections(t *testing.T) {
	status := int32(http.StatusOK)
	server := newQuizServer(t, &status)
	defer server.Close()

	client := New(server.URL, "token")
	if err := client.LoadQuiz(context.Background(), "lesson-1"); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	client.SelectAnswer("q1", "a1")
	client.SelectAnswer("q2", "a3")
	if _, err := client.Submit(context.Background()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := client.Reset(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if client.State() != StateReady {
		t.Fatalf("expected ready after reset, got %s", client.State())
	}
	if len(client.Selections()) != 0 || client.Result() != nil {
		t.Fatal("reset must clear selections and the held attempt")
	}
}

func TestSubmitBeforeLoad(t *testing.T) {
	client := New("http://127.0.0.1:0", "token")

	if _, err := client.Submit(context.Background()); err != ErrNotReady {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if err := client.SelectAnswer("q1", "a1"); err != ErrNotReady {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if err := client.Reset(); err != ErrNoQuizLoaded {
		t.Fatalf("expected ErrNoQuizLoaded, got %v", err)
	}
}
