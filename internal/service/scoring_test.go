package service

import (
	"reflect"
	"testing"

	"beyondextra_backend/internal/model"
)

func twoQuestionFixture() ([]model.QuizQuestion, []model.QuizAnswer) {
	questions := []model.QuizQuestion{
		{UUIDBase: model.UUIDBase{ID: "q1"}, QuizID: "quiz-1", Points: 1},
		{UUIDBase: model.UUIDBase{ID: "q2"}, QuizID: "quiz-1", Points: 1},
	}
	answers := []model.QuizAnswer{
		{UUIDBase: model.UUIDBase{ID: "a1"}, QuestionID: "q1", IsCorrect: true},
		{UUIDBase: model.UUIDBase{ID: "a2"}, QuestionID: "q1"},
		{UUIDBase: model.UUIDBase{ID: "a3"}, QuestionID: "q2"},
		{UUIDBase: model.UUIDBase{ID: "a4"}, QuestionID: "q2", IsCorrect: true},
	}
	return questions, answers
}

func TestScoreQuizHalfRightBelowThreshold(t *testing.T) {
	questions, answers := twoQuestionFixture()

	card := ScoreQuiz(questions, answers, map[string]string{"q1": "a1", "q2": "a3"}, 70)

	if card.Score != 1 || card.MaxScore != 2 {
		t.Fatalf("expected 1/2, got %d/%d", card.Score, card.MaxScore)
	}
	if card.Passed {
		t.Fatal("50% must not pass a 70% threshold")
	}
}

func TestScoreQuizAllCorrectPasses(t *testing.T) {
	questions, answers := twoQuestionFixture()

	card := ScoreQuiz(questions, answers, map[string]string{"q1": "a1", "q2": "a4"}, 70)

	if card.Score != 2 || card.MaxScore != 2 || !card.Passed {
		t.Fatalf("expected a passing 2/2, got %+v", card)
	}
}

func TestScoreQuizEmptySelection(t *testing.T) {
	questions, answers := twoQuestionFixture()

	card := ScoreQuiz(questions, answers, map[string]string{}, 70)

	if card.Score != 0 || card.MaxScore != 2 || card.Passed {
		t.Fatalf("expected a failing 0/2, got %+v", card)
	}
	if len(card.Responses) != 0 {
		t.Fatalf("unanswered questions must not produce responses, got %d", len(card.Responses))
	}
}

func TestScoreQuizNoQuestionsNeverPasses(t *testing.T) {
	card := ScoreQuiz(nil, nil, map[string]string{}, 70)

	if card.Score != 0 || card.MaxScore != 0 {
		t.Fatalf("expected 0/0, got %d/%d", card.Score, card.MaxScore)
	}
	if card.Passed {
		t.Fatal("an empty quiz must not pass")
	}
}

func TestScoreQuizExactThresholdPasses(t *testing.T) {
	questions := []model.QuizQuestion{
		{UUIDBase: model.UUIDBase{ID: "q1"}, Points: 7},
		{UUIDBase: model.UUIDBase{ID: "q2"}, Points: 3},
	}
	answers := []model.QuizAnswer{
		{UUIDBase: model.UUIDBase{ID: "a1"}, QuestionID: "q1", IsCorrect: true},
		{UUIDBase: model.UUIDBase{ID: "a2"}, QuestionID: "q2", IsCorrect: true},
	}

	// 7 of 10 points is exactly 70%.
	card := ScoreQuiz(questions, answers, map[string]string{"q1": "a1"}, 70)

	if card.Score != 7 || card.MaxScore != 10 {
		t.Fatalf("expected 7/10, got %d/%d", card.Score, card.MaxScore)
	}
	if !card.Passed {
		t.Fatal("meeting the threshold exactly must pass")
	}
}

func TestScoreQuizIsDeterministic(t *testing.T) {
	questions, answers := twoQuestionFixture()
	selections := map[string]string{"q1": "a1", "q2": "a3"}

	first := ScoreQuiz(questions, answers, selections, 70)
	second := ScoreQuiz(questions, answers, selections, 70)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same inputs scored differently: %+v vs %+v", first, second)
	}
}

func TestScoreQuizPointsDefaultToOne(t *testing.T) {
	questions := []model.QuizQuestion{
		{UUIDBase: model.UUIDBase{ID: "q1"}, Points: 0},
		{UUIDBase: model.UUIDBase{ID: "q2"}, Points: -3},
	}
	answers := []model.QuizAnswer{
		{UUIDBase: model.UUIDBase{ID: "a1"}, QuestionID: "q1", IsCorrect: true},
		{UUIDBase: model.UUIDBase{ID: "a2"}, QuestionID: "q2", IsCorrect: true},
	}

	card := ScoreQuiz(questions, answers, map[string]string{"q1": "a1", "q2": "a2"}, 70)

	if card.Score != 2 || card.MaxScore != 2 {
		t.Fatalf("zero or negative points must count as 1, got %d/%d", card.Score, card.MaxScore)
	}
}

func TestScoreQuizPassingScoreDefaultsWhenUnset(t *testing.T) {
	questions, answers := twoQuestionFixture()

	// 50% against the default 70 threshold.
	card := ScoreQuiz(questions, answers, map[string]string{"q1": "a1", "q2": "a3"}, 0)

	if card.Passed {
		t.Fatal("unset passing score must fall back to the default, not zero")
	}
}

func TestScoreQuizMultipleCorrectFlagsNeverScore(t *testing.T) {
	questions := []model.QuizQuestion{{UUIDBase: model.UUIDBase{ID: "q1"}, Points: 1}}
	answers := []model.QuizAnswer{
		{UUIDBase: model.UUIDBase{ID: "a1"}, QuestionID: "q1", IsCorrect: true},
		{UUIDBase: model.UUIDBase{ID: "a2"}, QuestionID: "q1", IsCorrect: true},
	}

	card := ScoreQuiz(questions, answers, map[string]string{"q1": "a1"}, 70)

	if card.Score != 0 {
		t.Fatalf("a question with two correct flags must not be scorable, got score %d", card.Score)
	}
	if len(card.Responses) != 1 || card.Responses[0].IsCorrect {
		t.Fatalf("the response must still be recorded as incorrect, got %+v", card.Responses)
	}
}

func TestScoreQuizNoCorrectFlagNeverScores(t *testing.T) {
	questions := []model.QuizQuestion{{UUIDBase: model.UUIDBase{ID: "q1"}, Points: 1}}
	answers := []model.QuizAnswer{
		{UUIDBase: model.UUIDBase{ID: "a1"}, QuestionID: "q1"},
		{UUIDBase: model.UUIDBase{ID: "a2"}, QuestionID: "q1"},
	}

	card := ScoreQuiz(questions, answers, map[string]string{"q1": "a1"}, 70)

	if card.Score != 0 || card.MaxScore != 1 {
		t.Fatalf("expected 0/1, got %d/%d", card.Score, card.MaxScore)
	}
}

func TestScoreQuizUnknownSelectionScoresNothing(t *testing.T) {
	questions, answers := twoQuestionFixture()

	card := ScoreQuiz(questions, answers, map[string]string{"q1": "nonexistent"}, 70)

	if card.Score != 0 {
		t.Fatalf("an unknown answer id must score 0, got %d", card.Score)
	}
	if len(card.Responses) != 1 {
		t.Fatalf("the selection is still recorded, got %d responses", len(card.Responses))
	}
}
