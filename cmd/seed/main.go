package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/campus-connect/config"
	"github.com/oksasatya/campus-connect/internal/application"
	"github.com/oksasatya/campus-connect/internal/domain/entity"
	repo "github.com/oksasatya/campus-connect/internal/domain/repository"
	pginfra "github.com/oksasatya/campus-connect/internal/infrastructure/postgres"
	"github.com/oksasatya/campus-connect/internal/infrastructure/redisstore"
	"github.com/oksasatya/campus-connect/internal/infrastructure/sqlitestore"
	"github.com/oksasatya/campus-connect/pkg/helpers"
)

const demoPassword = "password123"

var demoUsers = []application.SignupInput{
	{Name: "John Doe", Email: "john@campus.test", Matric: "20CE1001", Faculty: "Engineering", Department: "Civil Engineering"},
	{Name: "Jane Smith", Email: "jane@campus.test", Matric: "20CE1002", Faculty: "Engineering", Department: "Civil Engineering"},
	{Name: "Musa Bello", Email: "musa@campus.test", Matric: "21CS2001", Faculty: "Science", Department: "Computer Science"},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx := context.Background()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	var store repo.DocumentStore
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := pginfra.Connect(ctx, cfg)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pool.Close()
		store = pginfra.NewDocumentStore(pool)
	case "redis":
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		store = redisstore.NewStore(rdb, cfg.RedisKeyPrefix)
	case "sqlite":
		s, err := sqlitestore.Open(cfg.SQLitePath)
		if err != nil {
			log.Fatalf("failed to open sqlite: %v", err)
		}
		defer func() { _ = s.Close() }()
		store = s
	default:
		log.Fatalf("seeding needs a persistent store; STORE_DRIVER=%q", cfg.StoreDriver)
	}

	app := application.New(store, nil, logger)

	for _, in := range demoUsers {
		in.Password = demoPassword
		_, err := app.Identity.Signup(ctx, in)
		switch {
		case errors.Is(err, application.ErrDuplicateEmail):
			fmt.Printf("user exists: %s\n", in.Email)
		case err != nil:
			log.Fatalf("failed to seed user %s: %v", in.Email, err)
		default:
			fmt.Printf("seeded user: email=%s password=%s\n", in.Email, demoPassword)
		}
	}

	users, err := app.Identity.Directory(ctx)
	if err != nil {
		log.Fatalf("failed to read directory: %v", err)
	}
	uploaders := make([]entity.Actor, 0, len(users))
	for _, u := range users {
		uploaders = append(uploaders, entity.Actor{ID: u.ID, Name: u.Name})
	}

	wrote, err := app.Resources.SeedIfEmpty(ctx, application.SampleResources(uploaders))
	if err != nil {
		log.Fatalf("failed to seed resources: %v", err)
	}
	if wrote {
		fmt.Println("seeded sample resources")
	} else {
		fmt.Println("resources already present; left untouched")
	}
}
