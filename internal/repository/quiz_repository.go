package repository

import (
	"beyondextra_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindQuizByID(id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, "id = ?", id).Error
	return &quiz, err
}

func (r *QuizRepository) FindQuizByLessonID(lessonID string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Where("lesson_id = ?", lessonID).First(&quiz).Error
	return &quiz, err
}

func (r *QuizRepository) ListQuestions(quizID string) ([]model.QuizQuestion, error) {
	var qs []model.QuizQuestion
	err := r.DB.Where("quiz_id = ?", quizID).Order("order_index asc").Find(&qs).Error
	return qs, err
}

// AnswersForDisplay is the client-facing read path. It selects only the
// columns safe to show before submission; the correctness flag is not part
// of the projection, so it cannot leak.
func (r *QuizRepository) AnswersForDisplay(questionIDs []string) ([]model.AnswerView, error) {
	if len(questionIDs) == 0 {
		return []model.AnswerView{}, nil
	}
	var views []model.AnswerView
	err := r.DB.Model(&model.QuizAnswer{}).
		Select("id, question_id, answer_text, order_index").
		Where("question_id IN ?", questionIDs).
		Order("order_index asc").
		Scan(&views).Error
	return views, err
}

// AnswersForScoring is the privileged read path, including is_correct. Only
// the submission service calls it; no handler exposes its result.
func (r *QuizRepository) AnswersForScoring(questionIDs []string) ([]model.QuizAnswer, error) {
	if len(questionIDs) == 0 {
		return []model.QuizAnswer{}, nil
	}
	var answers []model.QuizAnswer
	err := r.DB.Where("question_id IN ?", questionIDs).Find(&answers).Error
	return answers, err
}

// UpsertAttempt performs a keyed replace on (user_id, quiz_id): a second
// submission overwrites the prior attempt row instead of adding one. The
// passed attempt is updated in place with the persisted row's identity.
func (r *QuizRepository) UpsertAttempt(attempt *model.QuizAttempt) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.QuizAttempt
		err := tx.Where("user_id = ? AND quiz_id = ?", attempt.UserID, attempt.QuizID).
			First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if attempt.StartedAt.IsZero() {
				attempt.StartedAt = time.Now()
			}
			return tx.Create(attempt).Error
		}
		if err != nil {
			return err
		}

		existing.Score = attempt.Score
		existing.MaxScore = attempt.MaxScore
		existing.Passed = attempt.Passed
		existing.CompletedAt = attempt.CompletedAt
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*attempt = existing
		return nil
	})
}

func (r *QuizRepository) FindAttempt(userID, quizID string) (*model.QuizAttempt, error) {
	var attempt model.QuizAttempt
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *QuizRepository) InsertResponses(responses []model.QuizResponse) error {
	if len(responses) == 0 {
		return nil
	}
	return r.DB.Create(&responses).Error
}

func (r *QuizRepository) CountPassedAttempts(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND passed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *QuizRepository) SumScores(userID string) (int64, error) {
	var total int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(score), 0)").
		Scan(&total).Error
	return total, err
}

func (r *QuizRepository) CreateQuiz(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) CreateQuestion(q *model.QuizQuestion) error {
	return r.DB.Create(q).Error
}

func (r *QuizRepository) CreateAnswers(answers []model.QuizAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.DB.Create(&answers).Error
}

func (r *QuizRepository) DeleteQuiz(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []string
		if err := tx.Model(&model.QuizQuestion{}).Where("quiz_id = ?", id).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Where("question_id IN ?", questionIDs).Delete(&model.QuizAnswer{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quiz_id = ?", id).Delete(&model.QuizQuestion{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Quiz{}, "id = ?", id).Error
	})
}
