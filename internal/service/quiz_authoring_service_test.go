package service

import (
	"strings"
	"testing"
)

func TestCreateQuizRejectsQuestionsWithoutOneCorrectAnswer(t *testing.T) {
	svc := NewQuizAuthoringService(nil)

	cases := map[string][]QuizAnswerInput{
		"no correct answer": {
			{AnswerText: "a"},
			{AnswerText: "b"},
		},
		"two correct answers": {
			{AnswerText: "a", IsCorrect: true},
			{AnswerText: "b", IsCorrect: true},
		},
	}

	for name, answers := range cases {
		input := QuizInput{
			LessonID: "lesson-1",
			Title:    "Checkpoint",
			Questions: []QuizQuestionInput{
				{QuestionText: "Pick one", Answers: answers},
			},
		}

		_, err := svc.CreateQuiz(input)
		if err == nil {
			t.Fatalf("%s: expected a content error", name)
		}
		if !IsContentError(err) {
			t.Fatalf("%s: expected a content error, got %v", name, err)
		}
		if !strings.Contains(err.Error(), "question 1") {
			t.Fatalf("%s: error should name the offending question, got %v", name, err)
		}
	}
}
