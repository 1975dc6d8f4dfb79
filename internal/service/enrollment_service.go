package service

import (
	"beyondextra_backend/internal/model"
	"beyondextra_backend/internal/repository"
	"beyondextra_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
}

func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository) *EnrollmentService {
	return &EnrollmentService{EnrollmentRepo: enrollmentRepo, CourseRepo: courseRepo}
}

func (s *EnrollmentService) Enroll(userID, courseID string) (*model.Enrollment, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if existing, err := s.EnrollmentRepo.Find(userID, courseID); err == nil && existing != nil {
		return nil, util.ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

// EnrollmentWithProgress pairs an enrollment with the learner's completion
// percentage for that course.
type EnrollmentWithProgress struct {
	model.Enrollment
	TotalLessons     int64   `json:"totalLessons"`
	CompletedLessons int64   `json:"completedLessons"`
	ProgressPercent  float64 `json:"progressPercent"`
}

func (s *EnrollmentService) ListMyEnrollments(userID string) ([]EnrollmentWithProgress, error) {
	enrollments, err := s.EnrollmentRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	result := make([]EnrollmentWithProgress, 0, len(enrollments))
	for _, e := range enrollments {
		total, err := s.CourseRepo.CountLessonsForCourse(e.CourseID)
		if err != nil {
			return nil, err
		}
		completed, err := s.EnrollmentRepo.CountCompletedForCourse(userID, e.CourseID)
		if err != nil {
			return nil, err
		}

		row := EnrollmentWithProgress{
			Enrollment:       e,
			TotalLessons:     total,
			CompletedLessons: completed,
		}
		if total > 0 {
			row.ProgressPercent = float64(completed) / float64(total) * 100
		}
		result = append(result, row)
	}

	return result, nil
}

type ProgressUpdate struct {
	LessonID            string `json:"lessonId" binding:"required"`
	Completed           bool   `json:"completed"`
	LastPositionSeconds int    `json:"lastPositionSeconds"`
}

func (s *EnrollmentService) UpdateProgress(userID string, update ProgressUpdate) (*model.LessonProgress, error) {
	if _, err := s.CourseRepo.FindLessonByID(update.LessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	progress := &model.LessonProgress{
		UserID:              userID,
		LessonID:            update.LessonID,
		Completed:           update.Completed,
		LastPositionSeconds: update.LastPositionSeconds,
	}
	if err := s.EnrollmentRepo.UpsertProgress(progress); err != nil {
		return nil, err
	}
	return progress, nil
}
