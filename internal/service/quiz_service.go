package service

import (
	"beyondextra_backend/internal/model"
	"beyondextra_backend/internal/util"
	"beyondextra_backend/pkg/logger"
	"beyondextra_backend/pkg/monitoring"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuizStore is the persistence surface the quiz pipeline needs. The split
// between AnswersForDisplay and AnswersForScoring is deliberate: the display
// path has no access to correctness data at all, so redaction is structural
// rather than a filtering step.
type QuizStore interface {
	FindQuizByID(id string) (*model.Quiz, error)
	FindQuizByLessonID(lessonID string) (*model.Quiz, error)
	ListQuestions(quizID string) ([]model.QuizQuestion, error)
	AnswersForDisplay(questionIDs []string) ([]model.AnswerView, error)
	AnswersForScoring(questionIDs []string) ([]model.QuizAnswer, error)
	UpsertAttempt(attempt *model.QuizAttempt) error
	FindAttempt(userID, quizID string) (*model.QuizAttempt, error)
	InsertResponses(responses []model.QuizResponse) error
}

type QuizService struct {
	Store QuizStore
}

func NewQuizService(store QuizStore) *QuizService {
	return &QuizService{Store: store}
}

type SubmitQuizRequest struct {
	QuizID          string            `json:"quiz_id"`
	SelectedAnswers map[string]string `json:"selected_answers"`
}

type SubmitQuizResult struct {
	Score    int                `json:"score"`
	MaxScore int                `json:"maxScore"`
	Passed   bool               `json:"passed"`
	Attempt  *model.QuizAttempt `json:"attempt"`
}

// SubmitQuiz scores a submission server-side and persists the attempt. This
// is the only code path that reads correctness flags. The attempt write is
// a keyed replace on (user, quiz); the response batch insert that follows is
// best effort, since the attempt already carries the authoritative score.
func (s *QuizService) SubmitQuiz(userID string, req SubmitQuizRequest) (*SubmitQuizResult, error) {
	if req.QuizID == "" || req.SelectedAnswers == nil {
		return nil, util.ErrInvalidSubmission
	}

	quiz, err := s.Store.FindQuizByID(req.QuizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	questions, err := s.Store.ListQuestions(quiz.ID)
	if err != nil {
		return nil, err
	}

	questionIDs := make([]string, 0, len(questions))
	for _, q := range questions {
		questionIDs = append(questionIDs, q.ID)
	}

	answers, err := s.Store.AnswersForScoring(questionIDs)
	if err != nil {
		return nil, err
	}

	card := ScoreQuiz(questions, answers, req.SelectedAnswers, quiz.PassingScore)

	now := time.Now()
	attempt := &model.QuizAttempt{
		UserID:      userID,
		QuizID:      quiz.ID,
		Score:       card.Score,
		MaxScore:    card.MaxScore,
		Passed:      card.Passed,
		StartedAt:   now,
		CompletedAt: &now,
	}

	if err := s.Store.UpsertAttempt(attempt); err != nil {
		return nil, err
	}

	if len(card.Responses) > 0 {
		responses := card.Responses
		for i := range responses {
			responses[i].AttemptID = attempt.ID
		}
		if err := s.Store.InsertResponses(responses); err != nil {
			// The attempt is already durable; losing response rows is a
			// completeness gap, not a scoring error.
			logger.Log.Error("failed to save quiz responses",
				zap.String("attemptId", attempt.ID), zap.Error(err))
		}
	}

	monitoring.QuizSubmissions.WithLabelValues(strconv.FormatBool(card.Passed)).Inc()

	return &SubmitQuizResult{
		Score:    card.Score,
		MaxScore: card.MaxScore,
		Passed:   card.Passed,
		Attempt:  attempt,
	}, nil
}

// QuestionView is a question plus its redacted answers.
type QuestionView struct {
	model.QuizQuestion
	Answers []model.AnswerView `json:"answers"`
}

type QuizView struct {
	model.Quiz
	Questions []QuestionView `json:"questions"`
}

// GetQuizForLesson returns the pre-submission view of a lesson's quiz: all
// questions with their answers minus any correctness data, plus the caller's
// prior attempt if one exists.
func (s *QuizService) GetQuizForLesson(userID, lessonID string) (*QuizView, *model.QuizAttempt, error) {
	quiz, err := s.Store.FindQuizByLessonID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrQuizNotFound
		}
		return nil, nil, err
	}
	if quiz.PassingScore <= 0 {
		quiz.PassingScore = DefaultPassingScore
	}

	questions, err := s.Store.ListQuestions(quiz.ID)
	if err != nil {
		return nil, nil, err
	}

	questionIDs := make([]string, 0, len(questions))
	for _, q := range questions {
		questionIDs = append(questionIDs, q.ID)
	}

	answerViews, err := s.Store.AnswersForDisplay(questionIDs)
	if err != nil {
		return nil, nil, err
	}

	byQuestion := make(map[string][]model.AnswerView, len(questions))
	for _, av := range answerViews {
		byQuestion[av.QuestionID] = append(byQuestion[av.QuestionID], av)
	}

	view := &QuizView{Quiz: *quiz}
	for _, q := range questions {
		if q.Points <= 0 {
			q.Points = 1
		}
		view.Questions = append(view.Questions, QuestionView{
			QuizQuestion: q,
			Answers:      byQuestion[q.ID],
		})
	}

	var attempt *model.QuizAttempt
	if userID != "" {
		a, err := s.Store.FindAttempt(userID, quiz.ID)
		switch {
		case err == nil:
			attempt = a
		case !errors.Is(err, gorm.ErrRecordNotFound):
			// The view is still useful without the prior attempt.
			logger.Log.Warn("failed to load prior attempt",
				zap.String("quizId", quiz.ID), zap.Error(err))
		}
	}

	return view, attempt, nil
}

// GetAttempt returns the caller's attempt for a quiz, if any.
func (s *QuizService) GetAttempt(userID, quizID string) (*model.QuizAttempt, error) {
	attempt, err := s.Store.FindAttempt(userID, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	return attempt, nil
}
