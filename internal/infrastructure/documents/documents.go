package documents

import (
	"context"
	"fmt"

	"github.com/oksasatya/campus-connect/internal/domain/entity"
	"github.com/oksasatya/campus-connect/internal/domain/repository"
)

// Document keys.
const (
	KeyUsers            = "users"
	KeyConversations    = "conversations"
	KeyMarketplaceItems = "marketplace_items"
	KeyEvents           = "events"
	KeyResources        = "resources"
)

func sessionKey(userID string) string { return "session:" + userID }
func notificationsKey(ownerID string) string { return "notifications:" + ownerID }

// Collection stores a slice of T as a single document.
type Collection[T any] struct {
	store repository.DocumentStore
	key   string
}

func NewCollection[T any](store repository.DocumentStore, key string) *Collection[T] {
	return &Collection[T]{store: store, key: key}
}

func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if _, err := c.store.Load(ctx, c.key, &items); err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c *Collection[T]) SaveAll(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	if err := c.store.Save(ctx, c.key, items); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

func NewUserRepository(s repository.DocumentStore) repository.UserRepository {
	return NewCollection[entity.User](s, KeyUsers)
}

func NewConversationRepository(s repository.DocumentStore) repository.ConversationRepository {
	return NewCollection[entity.Conversation](s, KeyConversations)
}

func NewMarketplaceRepository(s repository.DocumentStore) repository.MarketplaceRepository {
	return NewCollection[entity.MarketplaceItem](s, KeyMarketplaceItems)
}

func NewEventRepository(s repository.DocumentStore) repository.EventRepository {
	return NewCollection[entity.Event](s, KeyEvents)
}

func NewResourceRepository(s repository.DocumentStore) repository.ResourceRepository {
	return NewCollection[entity.Resource](s, KeyResources)
}

type SessionRepository struct {
	store repository.DocumentStore
}

func NewSessionRepository(s repository.DocumentStore) *SessionRepository {
	return &SessionRepository{store: s}
}

// Get returns nil without error when the user has no session.
func (r *SessionRepository) Get(ctx context.Context, userID string) (*entity.Session, error) {
	var s entity.Session
	ok, err := r.store.Load(ctx, sessionKey(userID), &s)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SessionRepository) Save(ctx context.Context, s *entity.Session) error {
	return r.store.Save(ctx, sessionKey(s.User.ID), s)
}

func (r *SessionRepository) Delete(ctx context.Context, userID string) error {
	return r.store.Delete(ctx, sessionKey(userID))
}

type NotificationRepository struct {
	store repository.DocumentStore
}

func NewNotificationRepository(s repository.DocumentStore) *NotificationRepository {
	return &NotificationRepository{store: s}
}

func (r *NotificationRepository) List(ctx context.Context, ownerID string) ([]entity.Notification, error) {
	return NewCollection[entity.Notification](r.store, notificationsKey(ownerID)).List(ctx)
}

func (r *NotificationRepository) SaveAll(ctx context.Context, ownerID string, items []entity.Notification) error {
	return NewCollection[entity.Notification](r.store, notificationsKey(ownerID)).SaveAll(ctx, items)
}

var (
	_ repository.SessionRepository      = (*SessionRepository)(nil)
	_ repository.NotificationRepository = (*NotificationRepository)(nil)
)
