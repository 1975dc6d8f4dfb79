package controller

import (
	"beyondextra_backend/internal/service"
	"beyondextra_backend/internal/util"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type YouTubeController struct {
	Service *service.YouTubeService
}

func NewYouTubeController(svc *service.YouTubeService) *YouTubeController {
	return &YouTubeController{Service: svc}
}

// @Summary Search YouTube playlists
// @Description Searches playlists with their videos; results are cached briefly
// @Tags youtube
// @Produce json
// @Security ApiKeyAuth
// @Param q query string true "search query"
// @Param maxResults query int false "playlists to return"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/youtube/playlists [get]
func (c *YouTubeController) SearchPlaylists(ctx *gin.Context) {
	query := ctx.Query("q")
	maxResults, _ := strconv.Atoi(ctx.DefaultQuery("maxResults", "5"))

	playlists, err := c.Service.SearchPlaylists(ctx.Request.Context(), query, maxResults)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrQueryRequired):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, service.ErrYouTubeNotConfig):
			util.Error(ctx, http.StatusServiceUnavailable, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, playlists)
}
