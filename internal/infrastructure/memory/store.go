package memory

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/oksasatya/campus-connect/internal/domain/repository"
)

// Store keeps documents as encoded JSON in a map, so callers never share
// memory with stored values.
type Store struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewStore() *Store {
	return &Store{docs: map[string][]byte{}}
}

func (s *Store) Load(_ context.Context, key string, dest any) (bool, error) {
	s.mu.RLock()
	b, ok := s.docs[key]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) Save(_ context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[key] = b
	s.mu.Unlock()
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.docs, key)
	s.mu.Unlock()
	return nil
}

var _ repository.DocumentStore = (*Store)(nil)
