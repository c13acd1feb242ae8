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

type NotificationHandler struct {
	Svc    *application.NotificationService
	Logger *logrus.Logger
}

func NewNotificationHandler(svc *application.NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: helpers.LoggerOrDiscard(logger)}
}

func (h *NotificationHandler) reply(c *gin.Context, list application.NotificationList, err error, message string) {
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list.Items, message, map[string]any{"unread_count": list.UnreadCount})
}

// List GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), middleware.UserID(c))
	h.reply(c, list, err, "notifications")
}

// MarkAsRead POST /api/notifications/:id/read
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	list, err := h.Svc.MarkAsRead(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	h.reply(c, list, err, "notification read")
}

// MarkAllAsRead POST /api/notifications/read-all
func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	list, err := h.Svc.MarkAllAsRead(c.Request.Context(), middleware.UserID(c))
	h.reply(c, list, err, "all notifications read")
}

// Delete DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	list, err := h.Svc.Delete(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	h.reply(c, list, err, "notification deleted")
}
