package service

import (
	"beyondextra_backend/internal/model"
	"beyondextra_backend/internal/repository"
	"beyondextra_backend/internal/util"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	Storage    *StorageService
}

func NewCourseService(courseRepo *repository.CourseRepository, storage *StorageService) *CourseService {
	return &CourseService{CourseRepo: courseRepo, Storage: storage}
}

func (s *CourseService) ListCourses(page, limit int) ([]repository.CourseListRow, int64, error) {
	return s.CourseRepo.ListPublished(page, limit)
}

// ModuleWithLessons is one course module expanded with its ordered lessons.
type ModuleWithLessons struct {
	model.CourseModule
	Lessons []model.Lesson `json:"lessons"`
}

type CourseDetail struct {
	model.Course
	Modules []ModuleWithLessons `json:"modules"`
}

func (s *CourseService) GetCourseDetail(id string) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	modules, err := s.CourseRepo.ListModules(course.ID)
	if err != nil {
		return nil, err
	}

	moduleIDs := make([]string, 0, len(modules))
	for _, m := range modules {
		moduleIDs = append(moduleIDs, m.ID)
	}

	lessons, err := s.CourseRepo.ListLessons(moduleIDs)
	if err != nil {
		return nil, err
	}

	byModule := make(map[string][]model.Lesson, len(modules))
	for _, l := range lessons {
		byModule[l.ModuleID] = append(byModule[l.ModuleID], l)
	}

	detail := &CourseDetail{Course: *course}
	for _, m := range modules {
		detail.Modules = append(detail.Modules, ModuleWithLessons{
			CourseModule: m,
			Lessons:      byModule[m.ID],
		})
	}

	return detail, nil
}

func (s *CourseService) GetLesson(id string) (*model.Lesson, error) {
	lesson, err := s.CourseRepo.FindLessonByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}
	return lesson, nil
}

func (s *CourseService) CreateCourse(course *model.Course) error {
	return s.CourseRepo.CreateCourse(course)
}

func (s *CourseService) UpdateCourse(course *model.Course) error {
	return s.CourseRepo.UpdateCourse(course)
}

func (s *CourseService) DeleteCourse(id string) error {
	return s.CourseRepo.DeleteCourse(id)
}

func (s *CourseService) CreateModule(module *model.CourseModule) error {
	if _, err := s.CourseRepo.FindByID(module.CourseID); err != nil {
		return util.ErrCourseNotFound
	}
	return s.CourseRepo.CreateModule(module)
}

func (s *CourseService) CreateLesson(lesson *model.Lesson) error {
	return s.CourseRepo.CreateLesson(lesson)
}

// AttachLessonVideo stores an uploaded video for a lesson, probes its
// duration and updates the lesson record. localPath points at the temp file
// the handler already wrote.
func (s *CourseService) AttachLessonVideo(ctx context.Context, lessonID, localPath, contentType string) (*model.Lesson, error) {
	lesson, err := s.CourseRepo.FindLessonByID(lessonID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	info, err := util.GetVideoInfo(localPath)
	if err != nil {
		return nil, err
	}

	objectName := fmt.Sprintf("lessons/%s/video%s", lesson.ID, filepath.Ext(localPath))
	url, err := s.Storage.Provider.UploadFile(ctx, objectName, localPath, contentType)
	if err != nil {
		return nil, err
	}

	lesson.VideoURL = url
	lesson.DurationSeconds = int(info.Duration)
	if err := s.CourseRepo.UpdateLesson(lesson); err != nil {
		return nil, err
	}

	return lesson, nil
}
