package modules

import (
	"context"
	"expvar"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/campus-connect/pkg/response"
)

// Check probes one backing service.
type Check func(ctx context.Context) error

// DebugModule serves /api/health and, when enabled, the expvar metrics at /api/debug/vars.
type DebugModule struct {
	Metrics bool
	Checks  map[string]Check
	Deps    Deps
}

func NewDebugModule(metrics bool, checks map[string]Check, deps Deps) *DebugModule {
	return &DebugModule{Metrics: metrics, Checks: checks, Deps: deps}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.health)
	if m.Metrics {
		rg.GET("/debug/vars", m.Deps.perIP(120), gin.WrapH(expvar.Handler()))
	}
}

func (m *DebugModule) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := map[string]string{}
	healthy := true
	for name, check := range m.Checks {
		if err := check(ctx); err != nil {
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}
	if !healthy {
		response.Error[any](c, http.StatusServiceUnavailable, "degraded", status)
		return
	}
	response.Success(c, http.StatusOK, status, "ok", nil)
}
