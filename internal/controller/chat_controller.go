package controller

import (
	"beyondextra_backend/internal/service"
	"beyondextra_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

type ChatController struct {
	Service *service.ChatService
}

func NewChatController(svc *service.ChatService) *ChatController {
	return &ChatController{Service: svc}
}

type sendMessageRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message" binding:"required"`
}

// @Summary Send a message to the learning assistant
// @Description Creates a conversation on first message and returns the assistant reply
// @Tags chat
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body sendMessageRequest true "message"
// @Success 200 {object} util.Response
// @Router /api/chat/messages [post]
func (c *ChatController) SendMessage(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req sendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	conversation, reply, err := c.Service.SendMessage(ctx.Request.Context(), user.UserID, req.ConversationID, req.Message)
	if err != nil {
		if errors.Is(err, util.ErrConversationAccess) {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"conversation": conversation,
		"reply":        reply,
	})
}

// @Summary List the caller's conversations
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/chat/conversations [get]
func (c *ChatController) ListConversations(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	conversations, err := c.Service.ListConversations(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, conversations)
}

// @Summary List a conversation's messages
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Param conversationID path string true "conversation id"
// @Success 200 {object} util.Response
// @Router /api/chat/conversations/{conversationID}/messages [get]
func (c *ChatController) ListMessages(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	messages, err := c.Service.ListMessages(user.UserID, ctx.Param("conversationID"))
	if err != nil {
		if errors.Is(err, util.ErrConversationAccess) {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, messages)
}

// @Summary Delete a conversation
// @Tags chat
// @Produce json
// @Security ApiKeyAuth
// @Param conversationID path string true "conversation id"
// @Success 200 {object} util.Response
// @Router /api/chat/conversations/{conversationID} [delete]
func (c *ChatController) DeleteConversation(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.Service.DeleteConversation(user.UserID, ctx.Param("conversationID")); err != nil {
		if errors.Is(err, util.ErrConversationAccess) {
			util.Forbidden(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
