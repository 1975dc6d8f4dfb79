package service

import (
	"beyondextra_backend/internal/config"
	"beyondextra_backend/internal/model"
	"beyondextra_backend/internal/repository"
	"beyondextra_backend/internal/util"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"
)

const defaultSystemPrompt = `You are BeyonDextra AI, a helpful and friendly learning assistant for an inclusive educational platform.
Your role is to:
- Help users with their learning journey
- Answer questions about courses, topics, and concepts
- Provide study tips and learning strategies
- Be encouraging and supportive
- Adapt your communication style to be clear and accessible
- Keep responses concise but informative

Always be warm, patient, and supportive. Remember that users may have different learning needs and abilities.`

type ChatService struct {
	Repo   *repository.ChatRepository
	Cfg    config.AIConfig
	client *http.Client
}

func NewChatService(repo *repository.ChatRepository, cfg config.AIConfig) *ChatService {
	return &ChatService{
		Repo:   repo,
		Cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// conversationTitle derives a title from the first message, truncated on a
// rune boundary so multi-byte text stays valid UTF-8.
func conversationTitle(message string) string {
	const maxRunes = 80
	if utf8.RuneCountInString(message) <= maxRunes {
		return message
	}
	return string([]rune(message)[:maxRunes])
}

// SendMessage forwards the user's message (with conversation history) to the
// AI gateway and persists both sides of the exchange. A blank conversationID
// starts a new conversation titled after the first message.
func (s *ChatService) SendMessage(ctx context.Context, userID, conversationID, message string) (*model.Conversation, *model.ChatMessage, error) {
	var conversation *model.Conversation
	if conversationID == "" {
		conversation = &model.Conversation{UserID: userID, Title: conversationTitle(message)}
		if err := s.Repo.CreateConversation(conversation); err != nil {
			return nil, nil, err
		}
	} else {
		c, err := s.Repo.FindConversation(conversationID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, util.ErrConversationAccess
			}
			return nil, nil, err
		}
		if c.UserID != userID {
			return nil, nil, util.ErrConversationAccess
		}
		conversation = c
	}

	history, err := s.Repo.ListMessages(conversation.ID, 50)
	if err != nil {
		return nil, nil, err
	}

	systemPrompt := s.Cfg.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	messages := []AIChatMessage{{Role: "system", Content: systemPrompt}}
	for _, h := range history {
		messages = append(messages, AIChatMessage{Role: h.Role, Content: h.Content})
	}
	messages = append(messages, AIChatMessage{Role: "user", Content: message})

	reply, err := s.complete(ctx, messages)
	if err != nil {
		return nil, nil, err
	}

	userMsg := &model.ChatMessage{ConversationID: conversation.ID, Role: "user", Content: message}
	if err := s.Repo.CreateMessage(userMsg); err != nil {
		return nil, nil, err
	}

	assistantMsg := &model.ChatMessage{ConversationID: conversation.ID, Role: "assistant", Content: reply}
	if err := s.Repo.CreateMessage(assistantMsg); err != nil {
		return nil, nil, err
	}

	return conversation, assistantMsg, nil
}

func (s *ChatService) complete(ctx context.Context, messages []AIChatMessage) (string, error) {
	reqBody := map[string]interface{}{
		"model":       s.Cfg.Model,
		"messages":    messages,
		"max_tokens":  1024,
		"temperature": 0.7,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.Cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.Cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", err
	}
	if completion.Error != nil {
		return "", fmt.Errorf("AI API error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "I apologize, but I could not generate a response. Please try again.", nil
	}

	return completion.Choices[0].Message.Content, nil
}

func (s *ChatService) ListConversations(userID string) ([]model.Conversation, error) {
	return s.Repo.ListConversations(userID)
}

func (s *ChatService) ListMessages(userID, conversationID string) ([]model.ChatMessage, error) {
	conversation, err := s.Repo.FindConversation(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrConversationAccess
		}
		return nil, err
	}
	if conversation.UserID != userID {
		return nil, util.ErrConversationAccess
	}
	return s.Repo.ListMessages(conversationID, 0)
}

func (s *ChatService) DeleteConversation(userID, conversationID string) error {
	conversation, err := s.Repo.FindConversation(conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrConversationAccess
		}
		return err
	}
	if conversation.UserID != userID {
		return util.ErrConversationAccess
	}
	return s.Repo.DeleteConversation(conversationID)
}
