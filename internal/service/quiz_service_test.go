package service

import (
	"errors"
	"fmt"
	"testing"

	"beyondextra_backend/internal/model"
	"beyondextra_backend/internal/util"

	"gorm.io/gorm"
)

// memoryQuizStore is an in-memory QuizStore for exercising the submission
// pipeline without a database. Upserts follow the same keyed-replace rule as
// the real repository.
type memoryQuizStore struct {
	quizzes   map[string]*model.Quiz
	questions map[string][]model.QuizQuestion
	answers   map[string][]model.QuizAnswer
	attempts  map[string]*model.QuizAttempt
	responses []model.QuizResponse

	failResponses bool
	failAttempts  bool
	nextID        int
}

func newMemoryQuizStore() *memoryQuizStore {
	return &memoryQuizStore{
		quizzes:   map[string]*model.Quiz{},
		questions: map[string][]model.QuizQuestion{},
		answers:   map[string][]model.QuizAnswer{},
		attempts:  map[string]*model.QuizAttempt{},
	}
}

func (s *memoryQuizStore) attemptKey(userID, quizID string) string {
	return userID + "/" + quizID
}

func (s *memoryQuizStore) FindQuizByID(id string) (*model.Quiz, error) {
	quiz, ok := s.quizzes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return quiz, nil
}

func (s *memoryQuizStore) FindQuizByLessonID(lessonID string) (*model.Quiz, error) {
	for _, quiz := range s.quizzes {
		if quiz.LessonID == lessonID {
			return quiz, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memoryQuizStore) ListQuestions(quizID string) ([]model.QuizQuestion, error) {
	return s.questions[quizID], nil
}

func (s *memoryQuizStore) AnswersForDisplay(questionIDs []string) ([]model.AnswerView, error) {
	var views []model.AnswerView
	for _, qid := range questionIDs {
		for _, a := range s.answers[qid] {
			views = append(views, model.AnswerView{
				ID:         a.ID,
				QuestionID: a.QuestionID,
				AnswerText: a.AnswerText,
				OrderIndex: a.OrderIndex,
			})
		}
	}
	return views, nil
}

func (s *memoryQuizStore) AnswersForScoring(questionIDs []string) ([]model.QuizAnswer, error) {
	var all []model.QuizAnswer
	for _, qid := range questionIDs {
		all = append(all, s.answers[qid]...)
	}
	return all, nil
}

func (s *memoryQuizStore) UpsertAttempt(attempt *model.QuizAttempt) error {
	key := s.attemptKey(attempt.UserID, attempt.QuizID)
	if existing, ok := s.attempts[key]; ok {
		existing.Score = attempt.Score
		existing.MaxScore = attempt.MaxScore
		existing.Passed = attempt.Passed
		existing.CompletedAt = attempt.CompletedAt
		*attempt = *existing
		return nil
	}
	s.nextID++
	attempt.ID = fmt.Sprintf("attempt-%d", s.nextID)
	stored := *attempt
	s.attempts[key] = &stored
	return nil
}

func (s *memoryQuizStore) FindAttempt(userID, quizID string) (*model.QuizAttempt, error) {
	if s.failAttempts {
		return nil, errors.New("attempt lookup failed")
	}
	attempt, ok := s.attempts[s.attemptKey(userID, quizID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return attempt, nil
}

func (s *memoryQuizStore) InsertResponses(responses []model.QuizResponse) error {
	if s.failResponses {
		return errors.New("response insert failed")
	}
	s.responses = append(s.responses, responses...)
	return nil
}

func seedQuiz(store *memoryQuizStore) {
	store.quizzes["quiz-1"] = &model.Quiz{
		UUIDBase:     model.UUIDBase{ID: "quiz-1"},
		LessonID:     "lesson-1",
		Title:        "Checkpoint",
		PassingScore: 70,
	}
	store.questions["quiz-1"] = []model.QuizQuestion{
		{UUIDBase: model.UUIDBase{ID: "q1"}, QuizID: "quiz-1", Points: 1},
		{UUIDBase: model.UUIDBase{ID: "q2"}, QuizID: "quiz-1", Points: 1},
	}
	store.answers["q1"] = []model.QuizAnswer{
		{UUIDBase: model.UUIDBase{ID: "a1"}, QuestionID: "q1", AnswerText: "right", IsCorrect: true},
		{UUIDBase: model.UUIDBase{ID: "a2"}, QuestionID: "q1", AnswerText: "wrong"},
	}
	store.answers["q2"] = []model.QuizAnswer{
		{UUIDBase: model.UUIDBase{ID: "a3"}, QuestionID: "q2", AnswerText: "wrong"},
		{UUIDBase: model.UUIDBase{ID: "a4"}, QuestionID: "q2", AnswerText: "right", IsCorrect: true},
	}
}

func TestSubmitQuizScoresAndPersists(t *testing.T) {
	store := newMemoryQuizStore()
	seedQuiz(store)
	svc := NewQuizService(store)

	result, err := svc.SubmitQuiz("user-1", SubmitQuizRequest{
		QuizID:          "quiz-1",
		SelectedAnswers: map[string]string{"q1": "a1", "q2": "a3"},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if result.Score != 1 || result.MaxScore != 2 || result.Passed {
		t.Fatalf("expected failing 1/2, got %+v", result)
	}
	if result.Attempt == nil || result.Attempt.ID == "" {
		t.Fatal("expected a persisted attempt")
	}
	if result.Attempt.CompletedAt == nil {
		t.Fatal("attempt must be marked completed")
	}
	if len(store.responses) != 2 {
		t.Fatalf("expected 2 response rows, got %d", len(store.responses))
	}
	for _, r := range store.responses {
		if r.AttemptID != result.Attempt.ID {
			t.Fatalf("response not linked to attempt: %+v", r)
		}
	}
}

func TestSubmitQuizUpsertsAttemptPerUserAndQuiz(t *testing.T) {
	store := newMemoryQuizStore()
	seedQuiz(store)
	svc := NewQuizService(store)

	first, err := svc.SubmitQuiz("user-1", SubmitQuizRequest{
		QuizID:          "quiz-1",
		SelectedAnswers: map[string]string{"q1": "a2", "q2": "a3"},
	})
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	second, err := svc.SubmitQuiz("user-1", SubmitQuizRequest{
		QuizID:          "quiz-1",
		SelectedAnswers: map[string]string{"q1": "a1", "q2": "a4"},
	})
	if err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	if len(store.attempts) != 1 {
		t.Fatalf("expected one attempt per (user, quiz), got %d", len(store.attempts))
	}
	if second.Attempt.ID != first.Attempt.ID {
		t.Fatalf("resubmission must overwrite, not create: %s vs %s", first.Attempt.ID, second.Attempt.ID)
	}
	if second.Score != 2 || !second.Passed {
		t.Fatalf("second submission should pass with 2/2, got %+v", second)
	}

	stored, err := store.FindAttempt("user-1", "quiz-1")
	if err != nil {
		t.Fatalf("attempt lookup failed: %v", err)
	}
	if stored.Score != 2 || !stored.Passed {
		t.Fatalf("stored attempt must hold the latest values, got %+v", stored)
	}
}

func TestSubmitQuizRejectsMalformedRequests(t *testing.T) {
	store := newMemoryQuizStore()
	seedQuiz(store)
	svc := NewQuizService(store)

	cases := []SubmitQuizRequest{
		{QuizID: "", SelectedAnswers: map[string]string{"q1": "a1"}},
		{QuizID: "quiz-1", SelectedAnswers: nil},
	}
	for _, req := range cases {
		if _, err := svc.SubmitQuiz("user-1", req); !errors.Is(err, util.ErrInvalidSubmission) {
			t.Fatalf("expected invalid submission error for %+v, got %v", req, err)
		}
	}

	if len(store.attempts) != 0 || len(store.responses) != 0 {
		t.Fatal("rejected submissions must leave no rows behind")
	}
}

func TestSubmitQuizUnknownQuiz(t *testing.T) {
	store := newMemoryQuizStore()
	svc := NewQuizService(store)

	_, err := svc.SubmitQuiz("user-1", SubmitQuizRequest{
		QuizID:          "missing",
		SelectedAnswers: map[string]string{},
	})
	if !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
	if len(store.attempts) != 0 {
		t.Fatal("no attempt may be written for an unknown quiz")
	}
}

func TestSubmitQuizPartialSubmissionRecordsOnlyAnswered(t *testing.T) {
	store := newMemoryQuizStore()
	seedQuiz(store)
	svc := NewQuizService(store)

	result, err := svc.SubmitQuiz("user-1", SubmitQuizRequest{
		QuizID:          "quiz-1",
		SelectedAnswers: map[string]string{"q1": "a1"},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if result.MaxScore != 2 {
		t.Fatalf("unanswered questions still count toward maxScore, got %d", result.MaxScore)
	}
	if len(store.responses) != 1 || store.responses[0].QuestionID != "q1" {
		t.Fatalf("expected one response for q1, got %+v", store.responses)
	}
}

func TestSubmitQuizSurvivesResponseInsertFailure(t *testing.T) {
	store := newMemoryQuizStore()
	seedQuiz(store)
	store.failResponses = true
	svc := NewQuizService(store)

	result, err := svc.SubmitQuiz("user-1", SubmitQuizRequest{
		QuizID:          "quiz-1",
		SelectedAnswers: map[string]string{"q1": "a1", "q2": "a4"},
	})
	if err != nil {
		t.Fatalf("attempt write succeeded so submit must too, got %v", err)
	}
	if result.Attempt == nil {
		t.Fatal("expected the attempt despite the response failure")
	}
	if _, err := store.FindAttempt("user-1", "quiz-1"); err != nil {
		t.Fatalf("attempt must be durable: %v", err)
	}
}

func TestGetQuizForLessonRedactsAnswers(t *testing.T) {
	store := newMemoryQuizStore()
	seedQuiz(store)
	svc := NewQuizService(store)

	view, attempt, err := svc.GetQuizForLesson("user-1", "lesson-1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if attempt != nil {
		t.Fatal("no attempt exists yet")
	}
	if len(view.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(view.Questions))
	}
	for _, q := range view.Questions {
		if len(q.Answers) != 2 {
			t.Fatalf("expected 2 answers for %s, got %d", q.ID, len(q.Answers))
		}
	}

	// After an attempt the view carries it, still redacted.
	if _, err := svc.SubmitQuiz("user-1", SubmitQuizRequest{
		QuizID:          "quiz-1",
		SelectedAnswers: map[string]string{"q1": "a1", "q2": "a4"},
	}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	_, attempt, err = svc.GetQuizForLesson("user-1", "lesson-1")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if attempt == nil || !attempt.Passed {
		t.Fatalf("expected the passing attempt, got %+v", attempt)
	}
}

func TestGetQuizForLessonToleratesAttemptLookupFailure(t *testing.T) {
	store := newMemoryQuizStore()
	seedQuiz(store)
	store.failAttempts = true
	svc := NewQuizService(store)

	view, attempt, err := svc.GetQuizForLesson("user-1", "lesson-1")
	if err != nil {
		t.Fatalf("the view must survive a failed attempt lookup: %v", err)
	}
	if attempt != nil {
		t.Fatalf("no attempt can be reported when the lookup failed, got %+v", attempt)
	}
	if len(view.Questions) != 2 {
		t.Fatalf("expected the full quiz view, got %d questions", len(view.Questions))
	}
}

func TestGetQuizForLessonMissing(t *testing.T) {
	svc := NewQuizService(newMemoryQuizStore())

	if _, _, err := svc.GetQuizForLesson("user-1", "no-such-lesson"); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("expected quiz not found, got %v", err)
	}
}

func TestGetAttemptMissing(t *testing.T) {
	svc := NewQuizService(newMemoryQuizStore())

	if _, err := svc.GetAttempt("user-1", "quiz-1"); !errors.Is(err, util.ErrAttemptNotFound) {
		t.Fatalf("expected attempt not found, got %v", err)
	}
}
