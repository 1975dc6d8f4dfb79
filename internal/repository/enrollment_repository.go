package repository

import (
	"beyondextra_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) Find(userID, courseID string) (*model.Enrollment, error) {
	var e model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EnrollmentRepository) ListByUser(userID string) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("user_id = ?", userID).Order("enrolled_at desc").Find(&enrollments).Error
	return enrollments, err
}

// UpsertProgress performs a keyed replace on (user_id, lesson_id), same shape
// as the quiz attempt upsert.
func (r *EnrollmentRepository) UpsertProgress(progress *model.LessonProgress) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var existing model.LessonProgress
		err := tx.Where("user_id = ? AND lesson_id = ?", progress.UserID, progress.LessonID).
			First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if progress.Completed && progress.CompletedAt == nil {
				now := time.Now()
				progress.CompletedAt = &now
			}
			return tx.Create(progress).Error
		}
		if err != nil {
			return err
		}

		existing.LastPositionSeconds = progress.LastPositionSeconds
		if progress.Completed && !existing.Completed {
			now := time.Now()
			existing.CompletedAt = &now
		}
		existing.Completed = existing.Completed || progress.Completed
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		*progress = existing
		return nil
	})
}

func (r *EnrollmentRepository) ListProgressByUser(userID string, lessonIDs []string) ([]model.LessonProgress, error) {
	if len(lessonIDs) == 0 {
		return []model.LessonProgress{}, nil
	}
	var progress []model.LessonProgress
	err := r.DB.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).Find(&progress).Error
	return progress, err
}

func (r *EnrollmentRepository) CountCompletedLessons(userID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *EnrollmentRepository) CountCompletedForCourse(userID, courseID string) (int64, error) {
	var count int64
	err := r.DB.Table("lesson_progress p").
		Joins("JOIN lessons l ON p.lesson_id = l.id").
		Joins("JOIN course_modules m ON l.module_id = m.id").
		Where("p.user_id = ? AND m.course_id = ? AND p.completed = ? AND p.deleted_at IS NULL", userID, courseID, true).
		Count(&count).Error
	return count, err
}
