package repository

import (
	"beyondextra_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CourseListRow augments a course with its module and lesson counts for the
// catalog listing.
type CourseListRow struct {
	model.Course
	ModuleCount int `json:"moduleCount"`
	LessonCount int `json:"lessonCount"`
}

func (r *CourseRepository) ListPublished(page, limit int) ([]CourseListRow, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Course{}).Where("is_published = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []CourseListRow
	query := r.DB.Table("courses c").
		Select("c.*, "+
			"(SELECT COUNT(*) FROM course_modules m WHERE m.course_id = c.id AND m.deleted_at IS NULL) as module_count, "+
			"(SELECT COUNT(*) FROM lessons l JOIN course_modules m2 ON l.module_id = m2.id WHERE m2.course_id = c.id AND l.deleted_at IS NULL AND m2.deleted_at IS NULL) as lesson_count").
		Where("c.is_published = ? AND c.deleted_at IS NULL", true)

	if limit > 0 {
		offset := (page - 1) * limit
		query = query.Offset(offset).Limit(limit)
	}

	err := query.Order("c.created_at desc").Scan(&rows).Error
	return rows, total, err
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.First(&course, "id = ?", id).Error
	return &course, err
}

func (r *CourseRepository) ListModules(courseID string) ([]model.CourseModule, error) {
	var modules []model.CourseModule
	err := r.DB.Where("course_id = ?", courseID).Order("order_index asc").Find(&modules).Error
	return modules, err
}

func (r *CourseRepository) ListLessons(moduleIDs []string) ([]model.Lesson, error) {
	if len(moduleIDs) == 0 {
		return []model.Lesson{}, nil
	}
	var lessons []model.Lesson
	err := r.DB.Where("module_id IN ?", moduleIDs).Order("order_index asc").Find(&lessons).Error
	return lessons, err
}

func (r *CourseRepository) FindLessonByID(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, "id = ?", id).Error
	return &lesson, err
}

func (r *CourseRepository) CountLessonsForCourse(courseID string) (int64, error) {
	var count int64
	err := r.DB.Table("lessons l").
		Joins("JOIN course_modules m ON l.module_id = m.id").
		Where("m.course_id = ? AND l.deleted_at IS NULL AND m.deleted_at IS NULL", courseID).
		Count(&count).Error
	return count, err
}

func (r *CourseRepository) CreateCourse(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) UpdateCourse(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) DeleteCourse(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var moduleIDs []string
		if err := tx.Model(&model.CourseModule{}).Where("course_id = ?", id).Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}
		if len(moduleIDs) > 0 {
			if err := tx.Where("module_id IN ?", moduleIDs).Delete(&model.Lesson{}).Error; err != nil {
				return err
			}
			if err := tx.Where("course_id = ?", id).Delete(&model.CourseModule{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Course{}, "id = ?", id).Error
	})
}

func (r *CourseRepository) CreateModule(module *model.CourseModule) error {
	return r.DB.Create(module).Error
}

func (r *CourseRepository) CreateLesson(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *CourseRepository) UpdateLesson(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}
