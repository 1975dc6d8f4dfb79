package service

import "beyondextra_backend/internal/model"

// DefaultPassingScore is the pass threshold (percent) used when a quiz does
// not set one.
const DefaultPassingScore = 70

// Scorecard is the result of grading one submission against ground truth.
type Scorecard struct {
	Score    int `json:"score"`
	MaxScore int `json:"maxScore"`
	Passed   bool `json:"passed"`
	// Responses holds one graded record per answered question, in question
	// order, with AttemptID left blank for the caller to fill in. Unanswered
	// questions produce no record.
	Responses []model.QuizResponse `json:"-"`
}

// ScoreQuiz grades a selection map against a quiz's questions and answers.
// It is pure: no I/O, no error cases. A question scores its point value only
// when the selection matches the id of the single answer flagged correct;
// questions with zero or more than one correct-flagged answer can never
// score. Missing or unknown selections simply score nothing.
func ScoreQuiz(questions []model.QuizQuestion, answers []model.QuizAnswer, selections map[string]string, passingScore int) Scorecard {
	if passingScore <= 0 {
		passingScore = DefaultPassingScore
	}

	correctByQuestion := make(map[string]string, len(questions))
	correctCounts := make(map[string]int, len(questions))
	for _, a := range answers {
		if a.IsCorrect {
			correctCounts[a.QuestionID]++
			correctByQuestion[a.QuestionID] = a.ID
		}
	}

	card := Scorecard{}
	for _, q := range questions {
		points := q.Points
		if points <= 0 {
			points = 1
		}
		card.MaxScore += points

		selectedID, answered := selections[q.ID]
		if !answered || selectedID == "" {
			continue
		}

		correctID, scorable := correctByQuestion[q.ID]
		isCorrect := scorable && correctCounts[q.ID] == 1 && selectedID == correctID
		if isCorrect {
			card.Score += points
		}

		card.Responses = append(card.Responses, model.QuizResponse{
			QuestionID:       q.ID,
			SelectedAnswerID: selectedID,
			IsCorrect:        isCorrect,
		})
	}

	if card.MaxScore > 0 {
		card.Passed = float64(card.Score)/float64(card.MaxScore)*100 >= float64(passingScore)
	}

	return card
}
