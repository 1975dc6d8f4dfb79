package repository

import (
	"beyondextra_backend/internal/model"

	"gorm.io/gorm"
)

type ChatRepository struct {
	DB *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{DB: db}
}

func (r *ChatRepository) CreateConversation(c *model.Conversation) error {
	return r.DB.Create(c).Error
}

func (r *ChatRepository) FindConversation(id string) (*model.Conversation, error) {
	var c model.Conversation
	err := r.DB.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *ChatRepository) ListConversations(userID string) ([]model.Conversation, error) {
	var cs []model.Conversation
	err := r.DB.Where("user_id = ?", userID).Order("updated_at desc").Find(&cs).Error
	return cs, err
}

func (r *ChatRepository) CreateMessage(m *model.ChatMessage) error {
	return r.DB.Create(m).Error
}

func (r *ChatRepository) ListMessages(conversationID string, limit int) ([]model.ChatMessage, error) {
	var msgs []model.ChatMessage
	query := r.DB.Where("conversation_id = ?", conversationID).Order("created_at asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&msgs).Error
	return msgs, err
}

func (r *ChatRepository) DeleteConversation(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("conversation_id = ?", id).Delete(&model.ChatMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Conversation{}, "id = ?", id).Error
	})
}
