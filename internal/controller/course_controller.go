package controller

import (
	"beyondextra_backend/internal/model"
	"beyondextra_backend/internal/service"
	"beyondextra_backend/internal/util"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	Service *service.CourseService
}

func NewCourseController(svc *service.CourseService) *CourseController {
	return &CourseController{Service: svc}
}

// @Summary List published courses
// @Tags course
// @Produce json
// @Param page query int false "page number"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	courses, total, err := c.Service.ListCourses(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  courses,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary Get a course with its modules and lessons
// @Tags course
// @Produce json
// @Param courseID path string true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{courseID} [get]
func (c *CourseController) Detail(ctx *gin.Context) {
	detail, err := c.Service.GetCourseDetail(ctx.Param("courseID"))
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// @Summary Get a single lesson
// @Tags course
// @Produce json
// @Security ApiKeyAuth
// @Param lessonID path string true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/lessons/{lessonID} [get]
func (c *CourseController) GetLesson(ctx *gin.Context) {
	lesson, err := c.Service.GetLesson(ctx.Param("lessonID"))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// @Summary Create a course
// @Tags course
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body model.Course true "course"
// @Success 201 {object} util.Response
// @Router /api/instructor/courses [post]
func (c *CourseController) Create(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var course model.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course.InstructorID = user.UserID

	if err := c.Service.CreateCourse(&course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// @Summary Update a course
// @Tags course
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseID path string true "course id"
// @Param body body model.Course true "course"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{courseID} [put]
func (c *CourseController) Update(ctx *gin.Context) {
	var course model.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course.ID = ctx.Param("courseID")

	if err := c.Service.UpdateCourse(&course); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// @Summary Delete a course
// @Tags course
// @Produce json
// @Security ApiKeyAuth
// @Param courseID path string true "course id"
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{courseID} [delete]
func (c *CourseController) Delete(ctx *gin.Context) {
	if err := c.Service.DeleteCourse(ctx.Param("courseID")); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// @Summary Add a module to a course
// @Tags course
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseID path string true "course id"
// @Param body body model.CourseModule true "module"
// @Success 201 {object} util.Response
// @Router /api/instructor/courses/{courseID}/modules [post]
func (c *CourseController) CreateModule(ctx *gin.Context) {
	var module model.CourseModule
	if err := ctx.ShouldBindJSON(&module); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	module.CourseID = ctx.Param("courseID")

	if err := c.Service.CreateModule(&module); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// @Summary Add a lesson to a module
// @Tags course
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param moduleID path string true "module id"
// @Param body body model.Lesson true "lesson"
// @Success 201 {object} util.Response
// @Router /api/instructor/modules/{moduleID}/lessons [post]
func (c *CourseController) CreateLesson(ctx *gin.Context) {
	var lesson model.Lesson
	if err := ctx.ShouldBindJSON(&lesson); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	lesson.ModuleID = ctx.Param("moduleID")

	if err := c.Service.CreateLesson(&lesson); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// @Summary Upload a lesson video
// @Description Probes the video for duration, stores it and links it to the lesson
// @Tags course
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param lessonID path string true "lesson id"
// @Param video formData file true "video file"
// @Success 200 {object} util.Response
// @Router /api/instructor/lessons/{lessonID}/video [post]
func (c *CourseController) UploadLessonVideo(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "video file is required")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), model.GenerateUUID()+filepath.Ext(fileHeader.Filename))
	if err := ctx.SaveUploadedFile(fileHeader, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	lesson, err := c.Service.AttachLessonVideo(ctx.Request.Context(), ctx.Param("lessonID"), tmpPath, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}
