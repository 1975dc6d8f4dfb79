// Package quizclient drives a learner through a quiz against the HTTP API.
// It only ever sees the redacted read path, so no correctness data is held
// client-side; the server's scoring response is the single source of truth.
package quizclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
	StateCompleted  State = "completed"
)

var (
	ErrNotReady     = errors.New("quiz is not ready for this operation")
	ErrNoQuizLoaded = errors.New("no quiz loaded")
	ErrCompleted    = errors.New("attempt completed; call Reset to retry")
)

// Question is the display form of a quiz question. Answers never carry a
// correctness flag on this path.
type Question struct {
	ID           string   `json:"id"`
	QuestionText string   `json:"questionText"`
	QuestionType string   `json:"questionType"`
	OrderIndex   int      `json:"orderIndex"`
	Points       int      `json:"points"`
	Answers      []Answer `json:"answers"`
}

type Answer struct {
	ID         string `json:"id"`
	QuestionID string `json:"questionId"`
	AnswerText string `json:"answerText"`
	OrderIndex int    `json:"orderIndex"`
}

type Quiz struct {
	ID           string     `json:"id"`
	LessonID     string     `json:"lessonId"`
	Title        string     `json:"title"`
	PassingScore int        `json:"passingScore"`
	Questions    []Question `json:"questions"`
}

type Attempt struct {
	ID          string     `json:"id"`
	QuizID      string     `json:"quizId"`
	Score       int        `json:"score"`
	MaxScore    int        `json:"maxScore"`
	Passed      bool       `json:"passed"`
	CompletedAt *time.Time `json:"completedAt"`
}

// Result is the scoring response from a successful submission.
type Result struct {
	Score    int      `json:"score"`
	MaxScore int      `json:"maxScore"`
	Passed   bool     `json:"passed"`
	Attempt  *Attempt `json:"attempt"`
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// Client is a single-quiz session. It is not safe for concurrent use; a
// quiz-taking surface is inherently sequential.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client

	state      State
	quiz       *Quiz
	selections map[string]string
	result     *Result
	lastErr    error
}

func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Token:      token,
		HTTP:       &http.Client{Timeout: 30 * time.Second},
		state:      StateLoading,
		selections: map[string]string{},
	}
}

func (c *Client) State() State { return c.state }

// Quiz returns the loaded quiz, nil before LoadQuiz succeeds.
func (c *Client) Quiz() *Quiz { return c.quiz }

// Result returns the scoring outcome, nil until a submit succeeds.
func (c *Client) Result() *Result { return c.result }

// LastError returns the error surfaced by the most recent failed submit.
func (c *Client) LastError() error { return c.lastErr }

// Selections returns a copy of the current selection map.
func (c *Client) Selections() map[string]string {
	out := make(map[string]string, len(c.selections))
	for k, v := range c.selections {
		out[k] = v
	}
	return out
}

// LoadQuiz fetches the lesson's quiz through the redacted read path and
// moves the session to Ready.
func (c *Client) LoadQuiz(ctx context.Context, lessonID string) error {
	c.state = StateLoading

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/api/lessons/"+lessonID+"/quiz", nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return &apiError{Status: resp.StatusCode, Message: env.Message}
	}

	var data struct {
		Quiz    *Quiz    `json:"quiz"`
		Attempt *Attempt `json:"attempt"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return err
	}
	if data.Quiz == nil {
		return ErrNoQuizLoaded
	}

	c.quiz = data.Quiz
	c.selections = map[string]string{}
	c.result = nil
	c.lastErr = nil
	c.state = StateReady
	return nil
}

// SelectAnswer overwrites any prior selection for the question. The server
// is authoritative; answer existence is not validated here.
func (c *Client) SelectAnswer(questionID, answerID string) error {
	switch c.state {
	case StateReady:
	case StateCompleted:
		return ErrCompleted
	default:
		return ErrNotReady
	}
	c.selections[questionID] = answerID
	return nil
}

// IsAllAnswered reports whether every loaded question has a selection. It
// gates the submit control only; it says nothing about correctness.
func (c *Client) IsAllAnswered() bool {
	if c.quiz == nil {
		return false
	}
	for _, q := range c.quiz.Questions {
		if _, ok := c.selections[q.ID]; !ok {
			return false
		}
	}
	return true
}

// Submit sends the selections for server-side scoring. On failure the
// session returns to Ready with selections intact; retries happen only by
// calling Submit again. A completed attempt must be Reset before another
// submission.
func (c *Client) Submit(ctx context.Context) (*Result, error) {
	switch c.state {
	case StateReady:
	case StateCompleted:
		return nil, ErrCompleted
	default:
		return nil, ErrNotReady
	}
	if c.quiz == nil {
		return nil, ErrNoQuizLoaded
	}

	c.state = StateSubmitting

	result, err := c.postSubmission(ctx)
	if err != nil {
		c.state = StateReady
		c.lastErr = err
		return nil, err
	}

	c.result = result
	c.lastErr = nil
	c.state = StateCompleted
	return result, nil
}

func (c *Client) postSubmission(ctx context.Context) (*Result, error) {
	body, err := json.Marshal(map[string]interface{}{
		"quiz_id":          c.quiz.ID,
		"selected_answers": c.selections,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.BaseURL+"/functions/submit-quiz", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var env envelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		return nil, &apiError{Status: resp.StatusCode, Message: env.Message}
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Reset clears selections and any held attempt, returning to Ready so the
// learner can retry.
func (c *Client) Reset() error {
	if c.quiz == nil {
		return ErrNoQuizLoaded
	}
	c.selections = map[string]string{}
	c.result = nil
	c.lastErr = nil
	c.state = StateReady
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}
