package service

import (
	"beyondextra_backend/internal/repository"
)

// XP weights. Lessons are worth less than passed quizzes; raw quiz points
// top up the total so harder quizzes pay more.
const (
	xpPerCompletedLesson = 10
	xpPerPassedQuiz      = 50
	xpPerLevel           = 250
)

type GamificationService struct {
	QuizRepo       *repository.QuizRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewGamificationService(quizRepo *repository.QuizRepository, enrollmentRepo *repository.EnrollmentRepository) *GamificationService {
	return &GamificationService{QuizRepo: quizRepo, EnrollmentRepo: enrollmentRepo}
}

type Badge struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type GamificationStats struct {
	XP               int     `json:"xp"`
	Level            int     `json:"level"`
	NextLevelAt      int     `json:"nextLevelAt"`
	PassedQuizzes    int64   `json:"passedQuizzes"`
	CompletedLessons int64   `json:"completedLessons"`
	Badges           []Badge `json:"badges"`
}

// Stats derives the learner's XP, level and badges from what they have
// actually done. Nothing here is stored; it is recomputed per request.
func (s *GamificationService) Stats(userID string) (*GamificationStats, error) {
	passed, err := s.QuizRepo.CountPassedAttempts(userID)
	if err != nil {
		return nil, err
	}
	scoreSum, err := s.QuizRepo.SumScores(userID)
	if err != nil {
		return nil, err
	}
	completedLessons, err := s.EnrollmentRepo.CountCompletedLessons(userID)
	if err != nil {
		return nil, err
	}

	xp := int(passed)*xpPerPassedQuiz + int(completedLessons)*xpPerCompletedLesson + int(scoreSum)
	level := xp/xpPerLevel + 1

	stats := &GamificationStats{
		XP:               xp,
		Level:            level,
		NextLevelAt:      level * xpPerLevel,
		PassedQuizzes:    passed,
		CompletedLessons: completedLessons,
		Badges:           []Badge{},
	}

	if completedLessons >= 1 {
		stats.Badges = append(stats.Badges, Badge{
			Code: "first_lesson", Name: "First Steps",
			Description: "Completed your first lesson",
		})
	}
	if passed >= 1 {
		stats.Badges = append(stats.Badges, Badge{
			Code: "first_quiz", Name: "Quiz Rookie",
			Description: "Passed your first quiz",
		})
	}
	if passed >= 10 {
		stats.Badges = append(stats.Badges, Badge{
			Code: "quiz_master", Name: "Quiz Master",
			Description: "Passed ten quizzes",
		})
	}
	if completedLessons >= 25 {
		stats.Badges = append(stats.Badges, Badge{
			Code: "dedicated", Name: "Dedicated Learner",
			Description: "Completed twenty-five lessons",
		})
	}

	return stats, nil
}
