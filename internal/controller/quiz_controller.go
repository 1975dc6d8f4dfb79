package controller

import (
	"beyondextra_backend/internal/service"
	"beyondextra_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service   *service.QuizService
	Authoring *service.QuizAuthoringService
}

func NewQuizController(svc *service.QuizService, authoring *service.QuizAuthoringService) *QuizController {
	return &QuizController{Service: svc, Authoring: authoring}
}

// @Summary Submit a quiz for scoring
// @Description Scores the submission server-side and upserts the caller's attempt
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SubmitQuizRequest true "quiz id and selected answers"
// @Success 200 {object} service.SubmitQuizResult
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /functions/submit-quiz [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, util.ErrInvalidSubmission.Error())
		return
	}

	result, err := c.Service.SubmitQuiz(user.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidSubmission):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrQuizNotFound):
			util.Error(ctx, http.StatusNotFound, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	// The submission surface documents a bare body, not the envelope.
	ctx.JSON(http.StatusOK, result)
}

// @Summary Get the quiz for a lesson
// @Description Returns the quiz with questions and redacted answers, plus the caller's prior attempt
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param lessonID path string true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/lessons/{lessonID}/quiz [get]
func (c *QuizController) GetLessonQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	userID := ""
	if user != nil {
		userID = user.UserID
	}

	view, attempt, err := c.Service.GetQuizForLesson(userID, ctx.Param("lessonID"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"quiz":    view,
		"attempt": attempt,
	})
}

// @Summary Get the caller's attempt for a quiz
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param quizID path string true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{quizID}/attempt [get]
func (c *QuizController) GetAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempt, err := c.Service.GetAttempt(user.UserID, ctx.Param("quizID"))
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, attempt)
}

// @Summary Create a quiz with questions and answers
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizInput true "quiz content"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/instructor/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var input service.QuizInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.Authoring.CreateQuiz(input)
	if err != nil {
		if service.IsContentError(err) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, quiz)
}

// @Summary Delete a quiz
// @Tags quiz
// @Produce json
// @Security ApiKeyAuth
// @Param quizID path string true "quiz id"
// @Success 200 {object} util.Response
// @Router /api/instructor/quizzes/{quizID} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	if err := c.Authoring.DeleteQuiz(ctx.Param("quizID")); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
