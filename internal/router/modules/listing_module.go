package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/campus-connect/internal/interface/http"
)

type MarketplaceModule struct {
	Handler *handlers.MarketplaceHandler
	Deps    Deps
}

func NewMarketplaceModule(h *handlers.MarketplaceHandler, deps Deps) *MarketplaceModule {
	return &MarketplaceModule{Handler: h, Deps: deps}
}

func (m *MarketplaceModule) Register(rg *gin.RouterGroup) {
	g := m.Deps.protected(rg, "/marketplace", 120)
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Deps.perUser(20), m.Handler.Create)
		g.DELETE("/:id", m.Handler.Delete)
	}
}

type EventModule struct {
	Handler *handlers.EventHandler
	Deps    Deps
}

func NewEventModule(h *handlers.EventHandler, deps Deps) *EventModule {
	return &EventModule{Handler: h, Deps: deps}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	g := m.Deps.protected(rg, "/events", 120)
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Deps.perUser(20), m.Handler.Create)
		g.POST("/:id/rsvp", m.Handler.RSVP)
	}
}

type ResourceModule struct {
	Handler *handlers.ResourceHandler
	Deps    Deps
}

func NewResourceModule(h *handlers.ResourceHandler, deps Deps) *ResourceModule {
	return &ResourceModule{Handler: h, Deps: deps}
}

func (m *ResourceModule) Register(rg *gin.RouterGroup) {
	g := m.Deps.protected(rg, "/resources", 120)
	{
		g.GET("", m.Handler.List)
		g.GET("/courses", m.Handler.Courses)
		g.POST("", m.Deps.perUser(20), m.Handler.Create)
		g.POST("/:id/download", m.Handler.Download)
	}
}
