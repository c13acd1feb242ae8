package documents

import (
	"context"
	"testing"
	"time"

	"github.com/oksasatya/campus-connect/internal/domain/entity"
	"github.com/oksasatya/campus-connect/internal/infrastructure/memory"
)

func TestCollectionEmptyIsNotNil(t *testing.T) {
	repo := NewUserRepository(memory.NewStore())
	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if users == nil || len(users) != 0 {
		t.Errorf("List() = %#v, expected empty non-nil slice", users)
	}
}

func TestCollectionSaveAllReplaces(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository(memory.NewStore())

	if err := repo.SaveAll(ctx, []entity.Event{{ID: "a"}, {ID: "b"}}); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}
	if err := repo.SaveAll(ctx, []entity.Event{{ID: "c"}}); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}
	events, _ := repo.List(ctx)
	if len(events) != 1 || events[0].ID != "c" {
		t.Errorf("List() = %+v, expected only c", events)
	}
}

func TestSessionRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewSessionRepository(memory.NewStore())

	s, err := repo.Get(ctx, "u1")
	if err != nil || s != nil {
		t.Fatalf("Get() on missing session = %v, %v; expected nil, nil", s, err)
	}

	in := &entity.Session{ID: "s1", User: entity.User{ID: "u1", Name: "Ada"}, CreatedAt: time.Now().UTC()}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	s, err = repo.Get(ctx, "u1")
	if err != nil || s == nil || s.ID != "s1" || s.User.Name != "Ada" {
		t.Fatalf("Get() = %+v, %v", s, err)
	}

	if err := repo.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if s, _ := repo.Get(ctx, "u1"); s != nil {
		t.Error("session still present after Delete")
	}
}

func TestNotificationRepositoryIsPerOwner(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository(memory.NewStore())

	if err := repo.SaveAll(ctx, "u1", []entity.Notification{{ID: "n1"}}); err != nil {
		t.Fatalf("SaveAll() error = %v", err)
	}
	mine, _ := repo.List(ctx, "u1")
	theirs, _ := repo.List(ctx, "u2")
	if len(mine) != 1 || len(theirs) != 0 {
		t.Errorf("u1 has %d, u2 has %d; expected 1 and 0", len(mine), len(theirs))
	}
}
