package sqlitestore

import (
	"context"
	"path/filepath"
	"testing"
)

type doc struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "campus.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	var got doc
	ok, err := s.Load(ctx, "users", &got)
	if err != nil || ok {
		t.Fatalf("Load() on missing key = %v, %v; expected false, nil", ok, err)
	}

	if err := s.Save(ctx, "users", doc{Name: "a", Items: []string{"x"}}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save(ctx, "users", doc{Name: "b", Items: []string{"y", "z"}}); err != nil {
		t.Fatalf("Save() overwrite error = %v", err)
	}

	ok, err = s.Load(ctx, "users", &got)
	if err != nil || !ok {
		t.Fatalf("Load() = %v, %v; expected true, nil", ok, err)
	}
	if got.Name != "b" || len(got.Items) != 2 {
		t.Errorf("Load() = %+v, expected the second save", got)
	}

	if err := s.Delete(ctx, "users"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if ok, _ := s.Load(ctx, "users", &got); ok {
		t.Error("key still present after Delete")
	}
	if err := s.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestStoreKeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_ = s.Save(ctx, "notifications:u1", []string{"one"})
	_ = s.Save(ctx, "notifications:u2", []string{"two", "three"})

	var items []string
	if ok, err := s.Load(ctx, "notifications:u1", &items); !ok || err != nil || len(items) != 1 {
		t.Errorf("Load(u1) = %v, %v, %v", items, ok, err)
	}
}
