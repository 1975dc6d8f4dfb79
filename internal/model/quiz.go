package model

import "time"

// swagger:model Quiz
type Quiz struct {
	UUIDBase
	LessonID         string `gorm:"uniqueIndex;type:varchar(36);not null" json:"lessonId"`
	Title            string `gorm:"size:255;not null" json:"title"`
	Description      string `gorm:"type:text" json:"description,omitempty"`
	PassingScore     int    `gorm:"default:70" json:"passingScore"` // percentage, 0-100
	TimeLimitMinutes *int   `json:"timeLimitMinutes,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	UUIDBase
	QuizID       string `gorm:"index;type:varchar(36);not null" json:"quizId"`
	QuestionText string `gorm:"type:text;not null" json:"questionText"`
	QuestionType string `gorm:"size:50;default:'multiple_choice'" json:"questionType"`
	OrderIndex   int    `gorm:"default:0" json:"orderIndex"`
	Points       int    `gorm:"default:1" json:"points"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// QuizAnswer carries the correctness flag. It must only ever reach clients
// through the redacted AnswerView projection; handlers never serialize this
// struct directly.
type QuizAnswer struct {
	UUIDBase
	QuestionID string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	AnswerText string `gorm:"type:text;not null" json:"answerText"`
	OrderIndex int    `gorm:"default:0" json:"orderIndex"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}

// AnswerView is the client-facing projection of a QuizAnswer. It has no
// correctness field at all, so there is nothing to strip or forget to strip.
// swagger:model AnswerView
type AnswerView struct {
	ID         string `json:"id"`
	QuestionID string `json:"questionId"`
	AnswerText string `json:"answerText"`
	OrderIndex int    `json:"orderIndex"`
}

// swagger:model QuizAttempt
type QuizAttempt struct {
	UUIDBase
	UserID      string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_attempt_user_quiz" json:"userId"`
	QuizID      string     `gorm:"type:varchar(36);not null;uniqueIndex:idx_attempt_user_quiz" json:"quizId"`
	Score       int        `gorm:"default:0" json:"score"`
	MaxScore    int        `gorm:"default:0" json:"maxScore"`
	Passed      bool       `gorm:"default:false" json:"passed"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// QuizResponse records one graded selection inside an attempt. Rows are
// written once, right after the attempt, and never updated.
type QuizResponse struct {
	UUIDBase
	AttemptID        string `gorm:"index;type:varchar(36);not null" json:"attemptId"`
	QuestionID       string `gorm:"type:varchar(36);not null" json:"questionId"`
	SelectedAnswerID string `gorm:"type:varchar(36);not null" json:"selectedAnswerId"`
	IsCorrect        bool   `gorm:"default:false" json:"isCorrect"`
}

func (QuizResponse) TableName() string {
	return "quiz_responses"
}
