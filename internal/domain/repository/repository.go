package repository

import (
	"context"

	"github.com/oksasatya/campus-connect/internal/domain/entity"
)

// DocumentStore persists whole JSON documents under string keys.
// Load reports false when the key does not exist.
type DocumentStore interface {
	Load(ctx context.Context, key string, dest any) (bool, error)
	Save(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// Collection is a list persisted as one document: every write replaces it whole.
type Collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	SaveAll(ctx context.Context, items []T) error
}

type (
	UserRepository         = Collection[entity.User]
	ConversationRepository = Collection[entity.Conversation]
	MarketplaceRepository  = Collection[entity.MarketplaceItem]
	EventRepository        = Collection[entity.Event]
	ResourceRepository     = Collection[entity.Resource]
)

// SessionRepository stores one session per user.
type SessionRepository interface {
	Get(ctx context.Context, userID string) (*entity.Session, error)
	Save(ctx context.Context, s *entity.Session) error
	Delete(ctx context.Context, userID string) error
}

// NotificationRepository stores one notification log per recipient.
type NotificationRepository interface {
	List(ctx context.Context, ownerID string) ([]entity.Notification, error)
	SaveAll(ctx context.Context, ownerID string, items []entity.Notification) error
}
