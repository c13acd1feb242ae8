package application

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/campus-connect/internal/domain/entity"
	"github.com/oksasatya/campus-connect/internal/infrastructure/memory"
	"github.com/oksasatya/campus-connect/pkg/helpers"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	helpers.PasswordCost = bcrypt.MinCost
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	return New(memory.NewStore(), jwt, nil)
}

func signup(t *testing.T, app *App, name, email, matric, faculty string) entity.User {
	t.Helper()
	sess, err := app.Identity.Signup(context.Background(), SignupInput{
		Name:     name,
		Email:    email,
		Password: "secret1",
		Matric:   matric,
		Faculty:  faculty,
	})
	if err != nil {
		t.Fatalf("Signup(%s) error = %v", email, err)
	}
	return sess.User
}

func actorOf(u entity.User) entity.Actor {
	return entity.Actor{ID: u.ID, Name: u.Name}
}

// fixClock pins now() for the duration of a test.
func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}
