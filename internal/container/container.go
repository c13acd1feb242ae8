package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-connect/config"
	"github.com/oksasatya/campus-connect/internal/application"
	"github.com/oksasatya/campus-connect/internal/infrastructure/sqlitestore"
	"github.com/oksasatya/campus-connect/pkg/helpers"
)

// app-level container to share constructed components across packages.
// The router wires its modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	sqliteStore *sqlitestore.Store
	redisClient *redis.Client
	esClient    *elasticsearch.Client

	jwtManager *helpers.JWTManager
	cookies    *helpers.Manager

	app *application.App
)

func SetConfig(c *config.Config)     { cfg = c }
func GetConfig() *config.Config      { return cfg }
func SetLogger(l *logrus.Logger)     { logger = l }
func GetLogger() *logrus.Logger      { return helpers.LoggerOrDiscard(logger) }
func SetPGPool(p *pgxpool.Pool)      { pgPool = p }
func GetPGPool() *pgxpool.Pool       { return pgPool }
func SetSQLite(s *sqlitestore.Store) { sqliteStore = s }
func GetSQLite() *sqlitestore.Store  { return sqliteStore }
func SetRedis(r *redis.Client)       { redisClient = r }
func GetRedis() *redis.Client        { return redisClient }
func SetES(c *elasticsearch.Client)  { esClient = c }
func GetES() *elasticsearch.Client   { return esClient }
func SetJWT(m *helpers.JWTManager)   { jwtManager = m }
func GetJWT() *helpers.JWTManager    { return jwtManager }

func SetCookies(m *helpers.Manager) { cookies = m }

// GetCookies falls back to a manager built from the config.
func GetCookies() *helpers.Manager {
	if cookies == nil && cfg != nil {
		cookies = helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure)
	}
	return cookies
}

func SetApp(a *application.App) { app = a }
func GetApp() *application.App  { return app }
