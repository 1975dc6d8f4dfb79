package controller

import (
	"beyondextra_backend/internal/service"
	"beyondextra_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type VoiceController struct {
	Service *service.VoiceService
}

func NewVoiceController(svc *service.VoiceService) *VoiceController {
	return &VoiceController{Service: svc}
}

type synthesizeRequest struct {
	Text    string `json:"text" binding:"required"`
	VoiceID string `json:"voiceId"`
}

// @Summary Convert text to speech
// @Description Returns MP3 audio for the given text
// @Tags voice
// @Accept json
// @Produce audio/mpeg
// @Security ApiKeyAuth
// @Param body body synthesizeRequest true "text to read aloud"
// @Success 200 {file} binary
// @Failure 400 {object} util.Response
// @Router /api/voice/tts [post]
func (c *VoiceController) Synthesize(ctx *gin.Context) {
	var req synthesizeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	audio, err := c.Service.Synthesize(ctx.Request.Context(), req.Text, req.VoiceID)
	if err != nil {
		if errors.Is(err, service.ErrTextLength) || errors.Is(err, service.ErrInvalidVoiceID) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Data(http.StatusOK, "audio/mpeg", audio)
}

// @Summary Transcribe uploaded audio
// @Tags voice
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param audio formData file true "audio file"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/voice/stt [post]
func (c *VoiceController) Transcribe(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("audio")
	if err != nil {
		util.BadRequest(ctx, service.ErrAudioRequired.Error())
		return
	}

	transcription, err := c.Service.Transcribe(ctx.Request.Context(), fileHeader)
	if err != nil {
		if errors.Is(err, service.ErrAudioRequired) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, transcription)
}
