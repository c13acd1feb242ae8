package application

import (
	"sync"
	"time"
)

// Lock names, one per persisted document family.
const (
	lockUsers         = "users"
	lockConversations = "conversations"
	lockMarketplace   = "marketplace_items"
	lockEvents        = "events"
	lockResources     = "resources"
)

func lockNotifications(ownerID string) string { return "notifications:" + ownerID }

// KeyLock hands out one mutex per document so read-modify-write cycles on the
// same document never interleave inside a process. When two documents are
// locked together, users is always taken before conversations.
type KeyLock struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyLock() *KeyLock {
	return &KeyLock{locks: map[string]*sync.Mutex{}}
}

// Lock acquires the mutex for key and returns its release func.
func (k *KeyLock) Lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = map[string]*sync.Mutex{}
	}
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}

var now = func() time.Time { return time.Now().UTC() }
