package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/campus-connect/internal/interface/http"
)

// UserModule serves the profile, the directory and contact suggestions.
type UserModule struct {
	Handler *handlers.UserHandler
	Deps    Deps
}

func NewUserModule(h *handlers.UserHandler, deps Deps) *UserModule {
	return &UserModule{Handler: h, Deps: deps}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := m.Deps.protected(rg, "/", 120)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.POST("/profile/avatar", m.Deps.perUser(10), m.Handler.UploadAvatar)
		auth.GET("/profile/activity", m.Handler.Activity)
		auth.GET("/users", m.Handler.Directory)
		auth.GET("/users/search", m.Handler.Search)
		auth.GET("/contacts/suggested", m.Handler.SuggestedContacts)
	}
}
