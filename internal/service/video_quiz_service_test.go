package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"beyondextra_backend/internal/config"
)

func generatedQuestionsJSON() string {
	return `[
		{"question": "What is Go?", "options": ["A language", "A board game", "A fish", "A car"], "correctIndex": 0, "explanation": "Go is a programming language."},
		{"question": "Who created it?", "options": ["Google", "Apple"], "correctIndex": 0, "explanation": "Go came out of Google."}
	]`
}

func newVideoQuizGateway(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": content}},
			},
		})
	}))
}

func TestGenerateVideoQuizParsesQuestions(t *testing.T) {
	server := newVideoQuizGateway(t, generatedQuestionsJSON())
	defer server.Close()

	svc := NewVideoQuizService(config.AIConfig{BaseURL: server.URL, APIKey: "test-key", Model: "test-model"})

	questions, err := svc.Generate(context.Background(), "Intro to Go", "A beginner video")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Question != "What is Go?" || questions[0].CorrectIndex != 0 {
		t.Fatalf("unexpected first question %+v", questions[0])
	}
	if len(questions[0].Options) != 4 {
		t.Fatalf("expected 4 options, got %d", len(questions[0].Options))
	}
}

func TestGenerateVideoQuizStripsMarkdownFences(t *testing.T) {
	server := newVideoQuizGateway(t, "```json\n"+generatedQuestionsJSON()+"\n```")
	defer server.Close()

	svc := NewVideoQuizService(config.AIConfig{BaseURL: server.URL, APIKey: "test-key"})

	questions, err := svc.Generate(context.Background(), "Intro to Go", "")
	if err != nil {
		t.Fatalf("fenced content must still parse: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
}

func TestGenerateVideoQuizRequiresTitleAndKey(t *testing.T) {
	svc := NewVideoQuizService(config.AIConfig{APIKey: "test-key"})
	if _, err := svc.Generate(context.Background(), "", "desc"); err != ErrVideoTitleRequired {
		t.Fatalf("expected ErrVideoTitleRequired, got %v", err)
	}

	svc = NewVideoQuizService(config.AIConfig{})
	if _, err := svc.Generate(context.Background(), "Intro to Go", ""); err != ErrAINotConfigured {
		t.Fatalf("expected ErrAINotConfigured, got %v", err)
	}
}

func TestGenerateVideoQuizRejectsMalformedContent(t *testing.T) {
	cases := map[string]string{
		"not json":            "Sure! Here are your questions: ...",
		"missing question":    `[{"question": "", "options": ["a", "b"], "correctIndex": 0}]`,
		"too few options":     `[{"question": "Q?", "options": ["only one"], "correctIndex": 0}]`,
		"index out of range":  `[{"question": "Q?", "options": ["a", "b"], "correctIndex": 2}]`,
		"negative index":      `[{"question": "Q?", "options": ["a", "b"], "correctIndex": -1}]`,
	}

	for name, content := range cases {
		server := newVideoQuizGateway(t, content)
		svc := NewVideoQuizService(config.AIConfig{BaseURL: server.URL, APIKey: "test-key"})

		if _, err := svc.Generate(context.Background(), "Intro to Go", ""); err != ErrQuizParse {
			t.Fatalf("%s: expected ErrQuizParse, got %v", name, err)
		}
		server.Close()
	}
}

func TestGenerateVideoQuizSurfacesGatewayFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewVideoQuizService(config.AIConfig{BaseURL: server.URL, APIKey: "test-key"})

	if _, err := svc.Generate(context.Background(), "Intro to Go", ""); err == nil {
		t.Fatal("expected an error from a failing gateway")
	}
}
