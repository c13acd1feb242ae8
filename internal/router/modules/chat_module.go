package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/campus-connect/internal/interface/http"
)

type ChatModule struct {
	Handler *handlers.ChatHandler
	Deps    Deps
}

func NewChatModule(h *handlers.ChatHandler, deps Deps) *ChatModule {
	return &ChatModule{Handler: h, Deps: deps}
}

func (m *ChatModule) Register(rg *gin.RouterGroup) {
	g := m.Deps.protected(rg, "/conversations", 240)
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Start)
		g.GET("/:id", m.Handler.Get)
		g.POST("/:id/messages", m.Deps.perUser(60), m.Handler.Send)
		g.POST("/:id/read", m.Handler.MarkRead)
	}
}
