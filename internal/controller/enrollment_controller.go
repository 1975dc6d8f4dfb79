package controller

import (
	"beyondextra_backend/internal/service"
	"beyondextra_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	Service *service.EnrollmentService
}

func NewEnrollmentController(svc *service.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{Service: svc}
}

// @Summary Enroll in a course
// @Tags enrollment
// @Produce json
// @Security ApiKeyAuth
// @Param courseID path string true "course id"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/courses/{courseID}/enroll [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	enrollment, err := c.Service.Enroll(user.UserID, ctx.Param("courseID"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrCourseNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrAlreadyEnrolled):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, enrollment)
}

// @Summary List the caller's enrollments with progress
// @Tags enrollment
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	list, err := c.Service.ListMyEnrollments(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, list)
}

// @Summary Record lesson progress
// @Tags enrollment
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProgressUpdate true "progress"
// @Success 200 {object} util.Response
// @Router /api/progress [post]
func (c *EnrollmentController) UpdateProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var update service.ProgressUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.Service.UpdateProgress(user.UserID, update)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
