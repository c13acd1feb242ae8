package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/campus-connect/internal/interface/middleware"
)

// Deps is shared by every module: the auth guard and the rate limiter backend.
type Deps struct {
	Auth   gin.HandlerFunc
	Redis  *redis.Client
	Prefix string
	Allow  middleware.AllowFunc
}

func (d Deps) limit(max int, window time.Duration, key middleware.KeyFunc) gin.HandlerFunc {
	return middleware.RateLimit(d.Redis, max, window, key, d.Allow)
}

func (d Deps) perIP(max int) gin.HandlerFunc {
	return d.limit(max, time.Minute, middleware.KeyByIPAndPath(d.Prefix))
}

func (d Deps) perUser(max int) gin.HandlerFunc {
	return d.limit(max, time.Minute, middleware.KeyByUserID(d.Prefix))
}

// protected returns a group behind the auth guard with a per-user limit.
func (d Deps) protected(rg *gin.RouterGroup, path string, max int) *gin.RouterGroup {
	g := rg.Group(path)
	g.Use(d.Auth, d.perUser(max))
	return g
}
