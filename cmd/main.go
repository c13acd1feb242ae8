package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/oksasatya/campus-connect/config"
	"github.com/oksasatya/campus-connect/internal/application"
	"github.com/oksasatya/campus-connect/internal/autoreply"
	"github.com/oksasatya/campus-connect/internal/container"
	repo "github.com/oksasatya/campus-connect/internal/domain/repository"
	"github.com/oksasatya/campus-connect/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/campus-connect/internal/infrastructure/postgres"
	"github.com/oksasatya/campus-connect/internal/infrastructure/redisstore"
	"github.com/oksasatya/campus-connect/internal/infrastructure/sqlitestore"
	"github.com/oksasatya/campus-connect/internal/router"
	"github.com/oksasatya/campus-connect/pkg/helpers"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	var closers []func()
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}()

	// Redis: document store when STORE_DRIVER=redis, rate limiting whenever configured
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		closers = append(closers, func() { _ = rdb.Close() })
		container.SetRedis(rdb)
	}

	store, err := openStore(ctx, cfg, logger, &closers)
	if err != nil {
		log.Fatalf("document store: %v", err)
	}

	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	app := application.New(store, jwtManager, logger)

	// Optional infrastructure; each one is skipped when not configured
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			log.Fatalf("failed to init GCS client: %v", err)
		}
		closers = append(closers, func() { _ = gcsClient.Close() })
		app.Identity.Avatars = &helpers.GCSUploader{Client: gcsClient, Bucket: cfg.GCSBucket}
	}
	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := helpers.NewESClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			log.Fatalf("failed to init elasticsearch: %v", err)
		}
		container.SetES(es)
		app.Identity.Index = &helpers.ESIndex{Client: es, Index: cfg.ESUsersIndex}
	}
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQNotificationQueue)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		closers = append(closers, pub.Close)
		app.Notifications.Publisher = pub
		app.Notifications.Config = cfg
	}

	var responder *autoreply.Responder
	if cfg.AutoReplyEnabled {
		responder = autoreply.New(autoreply.Config{
			Chance:   cfg.AutoReplyChance,
			MinDelay: cfg.AutoReplyMinDelay,
			MaxDelay: cfg.AutoReplyMaxDelay,
		}, app.Chat.DeliverReply)
		app.Chat.Replies = responder
	}

	// Provide singletons to container for registry auto-wiring
	container.SetConfig(cfg)
	container.SetLogger(logger)
	container.SetJWT(jwtManager)
	container.SetCookies(helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure))
	container.SetApp(app)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg)
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		helpers.LogInfo(logger, "server starting", logrus.Fields{"port": cfg.Port, "store": cfg.StoreDriver})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// pending replies would write after the stores close
	if responder != nil {
		responder.Close()
	}
	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		helpers.LogError(logger, "server forced to shutdown", err, nil)
		return
	}
	logger.Info("server exited properly")
}

// openStore picks the document store named by STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger, closers *[]func()) (repo.DocumentStore, error) {
	switch cfg.StoreDriver {
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), nil
	case "redis":
		rdb := container.GetRedis()
		if rdb == nil {
			return nil, errors.New("STORE_DRIVER=redis requires REDIS_ADDR")
		}
		return redisstore.NewStore(rdb, cfg.RedisKeyPrefix), nil
	case "postgres":
		pool, err := pginfra.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		*closers = append(*closers, pool.Close)
		if err := runMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		container.SetPGPool(pool)
		return pginfra.NewDocumentStore(pool), nil
	case "sqlite":
		store, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", cfg.SQLitePath, err)
		}
		*closers = append(*closers, func() { _ = store.Close() })
		container.SetSQLite(store)
		return store, nil
	}
	return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
}

func runMigrations(dsn string, migrationsDir string, logger *logrus.Logger) error {
	// Open sql DB via pgx stdlib
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", migrationsDir), "postgres", driver)
	if err != nil {
		return err
	}
	logger.Info("running migrations...")
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migrations to run")
		return nil
	}
	return err
}
