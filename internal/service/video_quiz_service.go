package service

import (
	"beyondextra_backend/internal/config"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrVideoTitleRequired = errors.New("video title is required")
	ErrAINotConfigured    = errors.New("AI API key not configured")
	ErrQuizParse          = errors.New("failed to parse quiz data")
)

// GeneratedQuestion is one AI-written multiple-choice question for a video.
// These live client-side in the playlist learning mode and never enter the
// graded quiz tables, so carrying the correct index here is fine.
type GeneratedQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// VideoQuizService asks the AI gateway to write practice questions from a
// YouTube video's title and description.
type VideoQuizService struct {
	Cfg    config.AIConfig
	client *http.Client
}

func NewVideoQuizService(cfg config.AIConfig) *VideoQuizService {
	return &VideoQuizService{
		Cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

const videoQuizSystemPrompt = "You are a quiz generator. Return ONLY valid JSON arrays. No markdown formatting, no code blocks, no extra text."

func videoQuizPrompt(title, description string) string {
	if description == "" {
		description = "No description available"
	}
	return fmt.Sprintf(`Generate exactly 5 multiple-choice quiz questions based on this YouTube video:

Title: %q
Description: %q

Each question should test understanding of the topic covered in the video. Return ONLY valid JSON in this exact format, no markdown, no explanation:
[
  {
    "question": "Question text here?",
    "options": ["Option A", "Option B", "Option C", "Option D"],
    "correctIndex": 0,
    "explanation": "Brief explanation of why this is correct"
  }
]`, title, description)
}

// Generate produces practice questions for a video. The model is told to
// return bare JSON but sometimes wraps it in a markdown fence anyway, so the
// parser strips fences before decoding.
func (s *VideoQuizService) Generate(ctx context.Context, videoTitle, videoDescription string) ([]GeneratedQuestion, error) {
	if videoTitle == "" {
		return nil, ErrVideoTitleRequired
	}
	if s.Cfg.APIKey == "" {
		return nil, ErrAINotConfigured
	}

	body, err := json.Marshal(map[string]interface{}{
		"model": s.Cfg.Model,
		"messages": []AIChatMessage{
			{Role: "system", Content: videoQuizSystemPrompt},
			{Role: "user", Content: videoQuizPrompt(videoTitle, videoDescription)},
		},
		"temperature": 0.7,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Cfg.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+s.Cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errText, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("AI gateway returned %d: %s", resp.StatusCode, string(errText))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, ErrQuizParse
	}

	return parseGeneratedQuestions(completion.Choices[0].Message.Content)
}

func parseGeneratedQuestions(content string) ([]GeneratedQuestion, error) {
	cleaned := strings.ReplaceAll(content, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var questions []GeneratedQuestion
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, ErrQuizParse
	}

	for _, q := range questions {
		if q.Question == "" || len(q.Options) < 2 {
			return nil, ErrQuizParse
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return nil, ErrQuizParse
		}
	}

	return questions, nil
}
