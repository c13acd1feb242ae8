package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/campus-connect/internal/interface/http"
)

type NotificationModule struct {
	Handler *handlers.NotificationHandler
	Deps    Deps
}

func NewNotificationModule(h *handlers.NotificationHandler, deps Deps) *NotificationModule {
	return &NotificationModule{Handler: h, Deps: deps}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	g := m.Deps.protected(rg, "/notifications", 240)
	{
		g.GET("", m.Handler.List)
		g.POST("/read-all", m.Handler.MarkAllAsRead)
		g.POST("/:id/read", m.Handler.MarkAsRead)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
