package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/campus-connect/internal/interface/http"
)

// AuthModule
// Public: POST /api/signup, POST /api/login, POST /api/refresh
// Protected: POST /api/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	Deps    Deps
}

func NewAuthModule(h *handlers.AuthHandler, deps Deps) *AuthModule {
	return &AuthModule{Handler: h, Deps: deps}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/signup", m.Deps.perIP(10), m.Handler.Signup)
	rg.POST("/login", m.Deps.perIP(10), m.Handler.Login)
	rg.POST("/refresh", m.Deps.perIP(60), m.Handler.Refresh)

	rg.POST("/logout", m.Deps.Auth, m.Handler.Logout)
}
