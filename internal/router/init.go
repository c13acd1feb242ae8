package router

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-connect/internal/application"
	"github.com/oksasatya/campus-connect/internal/container"
	handlers "github.com/oksasatya/campus-connect/internal/interface/http"
	"github.com/oksasatya/campus-connect/internal/interface/middleware"
	"github.com/oksasatya/campus-connect/internal/router/modules"
	"github.com/oksasatya/campus-connect/pkg/helpers"
	"github.com/oksasatya/campus-connect/pkg/validation"
)

// Options carries the infrastructure the HTTP modules need besides the App.
type Options struct {
	JWT            *helpers.JWTManager
	Cookies        *helpers.Manager
	Logger         *logrus.Logger
	Redis          *redis.Client // nil disables rate limiting
	RedisKeyPrefix string
	// Private and loopback clients skip rate limits when set.
	TrustPrivateIPs bool
	DebugMetrics    bool
	HealthChecks    map[string]modules.Check
}

// Mount builds the handlers over app and registers every feature module on r.
func Mount(r *Registry, app *application.App, opt Options) {
	validation.Init()
	logger := helpers.LoggerOrDiscard(opt.Logger)
	deps := modules.Deps{
		Auth:   middleware.Auth(opt.JWT, app.Identity),
		Redis:  opt.Redis,
		Prefix: opt.RedisKeyPrefix,
	}
	if opt.TrustPrivateIPs {
		deps.Allow = middleware.AllowPrivateIP()
	}

	r.Use(middleware.RequestID(), middleware.RealIP())
	r.Add(
		modules.NewAuthModule(handlers.NewAuthHandler(app.Identity, opt.Cookies, logger), deps),
		modules.NewUserModule(handlers.NewUserHandler(app.Identity, app.Chat, app.Profile, logger), deps),
		modules.NewNotificationModule(handlers.NewNotificationHandler(app.Notifications, logger), deps),
		modules.NewChatModule(handlers.NewChatHandler(app.Chat, logger), deps),
		modules.NewMarketplaceModule(handlers.NewMarketplaceHandler(app.Marketplace, logger), deps),
		modules.NewEventModule(handlers.NewEventHandler(app.Events, logger), deps),
		modules.NewResourceModule(handlers.NewResourceHandler(app.Resources, logger), deps),
		modules.NewDebugModule(opt.DebugMetrics, opt.HealthChecks, deps),
	)
}

// InitModules initializes all application modules from the container and registers them with the router registry.
// This function should be called once during application startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	Mount(r, container.GetApp(), Options{
		JWT:             container.GetJWT(),
		Cookies:         container.GetCookies(),
		Logger:          container.GetLogger(),
		Redis:           container.GetRedis(),
		RedisKeyPrefix:  cfg.RedisKeyPrefix,
		TrustPrivateIPs: cfg.Env == "development",
		DebugMetrics:    cfg.DebugMetricsEnabled,
		HealthChecks:    healthChecks(),
	})
}

func healthChecks() map[string]modules.Check {
	checks := map[string]modules.Check{}
	if pool := container.GetPGPool(); pool != nil {
		checks["postgres"] = pool.Ping
	}
	if store := container.GetSQLite(); store != nil {
		checks["sqlite"] = store.Ping
	}
	if rdb := container.GetRedis(); rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	if es := container.GetES(); es != nil {
		checks["elasticsearch"] = func(ctx context.Context) error {
			res, err := es.Ping(es.Ping.WithContext(ctx))
			if err != nil {
				return err
			}
			defer func() { _ = res.Body.Close() }()
			if res.IsError() {
				return errors.New(res.Status())
			}
			return nil
		}
	}
	return checks
}
