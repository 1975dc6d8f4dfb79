package controller

import (
	"beyondextra_backend/internal/service"
	"beyondextra_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GamificationController struct {
	Service *service.GamificationService
}

func NewGamificationController(svc *service.GamificationService) *GamificationController {
	return &GamificationController{Service: svc}
}

// @Summary Get the caller's XP, level and badges
// @Tags gamification
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/gamification/stats [get]
func (c *GamificationController) Stats(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.Service.Stats(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
