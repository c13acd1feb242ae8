package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-connect/internal/application"
	"github.com/oksasatya/campus-connect/internal/interface/middleware"
	"github.com/oksasatya/campus-connect/pkg/helpers"
	"github.com/oksasatya/campus-connect/pkg/response"
)

type ChatHandler struct {
	Svc    *application.ChatService
	Logger *logrus.Logger
}

func NewChatHandler(svc *application.ChatService, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{Svc: svc, Logger: helpers.LoggerOrDiscard(logger)}
}

type startConversationRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type sendMessageRequest struct {
	Text string `json:"text" binding:"max=4000"`
}

// List GET /api/conversations?q=
func (h *ChatHandler) List(c *gin.Context) {
	convs, err := h.Svc.Conversations(c.Request.Context(), middleware.UserID(c), c.Query("q"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, convs, "conversations", map[string]any{"count": len(convs)})
}

// Start POST /api/conversations
func (h *ChatHandler) Start(c *gin.Context) {
	var req startConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	conv, err := h.Svc.StartConversation(c.Request.Context(), middleware.UserID(c), req.UserID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, conv, "conversation", nil)
}

// Get GET /api/conversations/:id
func (h *ChatHandler) Get(c *gin.Context) {
	conv, err := h.Svc.Conversation(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, conv, "conversation", nil)
}

// Send POST /api/conversations/:id/messages. Blank text is accepted and ignored.
func (h *ChatHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	msg, err := h.Svc.SendMessage(c.Request.Context(), middleware.UserID(c), c.Param("id"), req.Text)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	if msg == nil {
		response.Success[any](c, http.StatusOK, nil, "empty message ignored", nil)
		return
	}
	response.Success(c, http.StatusCreated, msg, "message sent", nil)
}

// MarkRead POST /api/conversations/:id/read
func (h *ChatHandler) MarkRead(c *gin.Context) {
	n, err := h.Svc.MarkRead(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, map[string]int{"updated": n}, "messages read", nil)
}
