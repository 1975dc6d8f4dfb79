package model

// swagger:model Conversation
type Conversation struct {
	UUIDBase
	UserID string `gorm:"index;type:varchar(36);not null" json:"userId"`
	Title  string `gorm:"size:255" json:"title"`
}

func (Conversation) TableName() string {
	return "conversations"
}

// swagger:model ChatMessage
type ChatMessage struct {
	UUIDBase
	ConversationID string `gorm:"index;type:varchar(36);not null" json:"conversationId"`
	Role           string `gorm:"size:20;not null" json:"role"` // user, assistant
	Content        string `gorm:"type:text;not null" json:"content"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
