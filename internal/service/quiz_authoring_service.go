package service

import (
	"beyondextra_backend/internal/model"
	"beyondextra_backend/internal/repository"
	"beyondextra_backend/internal/util"
	"errors"
	"fmt"
)

// QuizAuthoringService is the instructor-facing side of quiz content. It is
// separate from QuizService so the learner pipeline never gains access to
// write paths or unredacted reads by accident.
type QuizAuthoringService struct {
	Repo *repository.QuizRepository
}

func NewQuizAuthoringService(repo *repository.QuizRepository) *QuizAuthoringService {
	return &QuizAuthoringService{Repo: repo}
}

type QuizAnswerInput struct {
	AnswerText string `json:"answerText" binding:"required"`
	OrderIndex int    `json:"orderIndex"`
	IsCorrect  bool   `json:"isCorrect"`
}

type QuizQuestionInput struct {
	QuestionText string            `json:"questionText" binding:"required"`
	QuestionType string            `json:"questionType"`
	OrderIndex   int               `json:"orderIndex"`
	Points       int               `json:"points"`
	Answers      []QuizAnswerInput `json:"answers" binding:"required"`
}

type QuizInput struct {
	LessonID         string              `json:"lessonId" binding:"required"`
	Title            string              `json:"title" binding:"required"`
	Description      string              `json:"description"`
	PassingScore     int                 `json:"passingScore"`
	TimeLimitMinutes *int                `json:"timeLimitMinutes"`
	Questions        []QuizQuestionInput `json:"questions"`
}

// CreateQuiz persists a quiz with its questions and answers. A question with
// zero or multiple correct answers is a content error and is rejected here,
// at authoring time, rather than silently grading as always-wrong later.
func (s *QuizAuthoringService) CreateQuiz(input QuizInput) (*model.Quiz, error) {
	for i, q := range input.Questions {
		correct := 0
		for _, a := range q.Answers {
			if a.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			return nil, fmt.Errorf("question %d: %w", i+1, util.ErrInvalidQuizContent)
		}
	}

	if input.PassingScore <= 0 || input.PassingScore > 100 {
		input.PassingScore = DefaultPassingScore
	}

	quiz := &model.Quiz{
		LessonID:         input.LessonID,
		Title:            input.Title,
		Description:      input.Description,
		PassingScore:     input.PassingScore,
		TimeLimitMinutes: input.TimeLimitMinutes,
	}
	if err := s.Repo.CreateQuiz(quiz); err != nil {
		return nil, err
	}

	for i, qInput := range input.Questions {
		points := qInput.Points
		if points <= 0 {
			points = 1
		}
		questionType := qInput.QuestionType
		if questionType == "" {
			questionType = "multiple_choice"
		}
		orderIndex := qInput.OrderIndex
		if orderIndex == 0 {
			orderIndex = i
		}

		question := &model.QuizQuestion{
			QuizID:       quiz.ID,
			QuestionText: qInput.QuestionText,
			QuestionType: questionType,
			OrderIndex:   orderIndex,
			Points:       points,
		}
		if err := s.Repo.CreateQuestion(question); err != nil {
			return nil, err
		}

		answers := make([]model.QuizAnswer, 0, len(qInput.Answers))
		for j, aInput := range qInput.Answers {
			orderIdx := aInput.OrderIndex
			if orderIdx == 0 {
				orderIdx = j
			}
			answers = append(answers, model.QuizAnswer{
				QuestionID: question.ID,
				AnswerText: aInput.AnswerText,
				OrderIndex: orderIdx,
				IsCorrect:  aInput.IsCorrect,
			})
		}
		if err := s.Repo.CreateAnswers(answers); err != nil {
			return nil, err
		}
	}

	return quiz, nil
}

func (s *QuizAuthoringService) DeleteQuiz(quizID string) error {
	if _, err := s.Repo.FindQuizByID(quizID); err != nil {
		return util.ErrQuizNotFound
	}
	return s.Repo.DeleteQuiz(quizID)
}

// IsContentError reports whether the error came from invalid authoring
// input, as opposed to a storage failure.
func IsContentError(err error) bool {
	return errors.Is(err, util.ErrInvalidQuizContent)
}
