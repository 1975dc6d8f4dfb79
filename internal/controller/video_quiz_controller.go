package controller

import (
	"beyondextra_backend/internal/service"
	"beyondextra_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type VideoQuizController struct {
	Service *service.VideoQuizService
}

func NewVideoQuizController(svc *service.VideoQuizService) *VideoQuizController {
	return &VideoQuizController{Service: svc}
}

type generateVideoQuizRequest struct {
	VideoTitle       string `json:"videoTitle"`
	VideoDescription string `json:"videoDescription"`
}

// @Summary Generate practice questions for a video
// @Description Writes five multiple-choice questions from a video's title and description
// @Tags quiz
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body generateVideoQuizRequest true "video metadata"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /functions/generate-video-quiz [post]
func (c *VideoQuizController) Generate(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req generateVideoQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, service.ErrVideoTitleRequired.Error())
		return
	}

	questions, err := c.Service.Generate(ctx.Request.Context(), req.VideoTitle, req.VideoDescription)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrVideoTitleRequired):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, service.ErrAINotConfigured):
			util.Error(ctx, http.StatusInternalServerError, err.Error())
		case errors.Is(err, service.ErrQuizParse):
			util.Error(ctx, http.StatusInternalServerError, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	// Like the scoring endpoint, this surface documents a bare body.
	ctx.JSON(http.StatusOK, gin.H{"questions": questions})
}
