package application

import (
	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/campus-connect/internal/domain/repository"
	"github.com/oksasatya/campus-connect/internal/infrastructure/documents"
	"github.com/oksasatya/campus-connect/pkg/helpers"
)

// App groups the services that share one document store.
type App struct {
	Identity      *IdentityService
	Notifications *NotificationService
	Chat          *ChatService
	Marketplace   *MarketplaceService
	Events        *EventService
	Resources     *ResourceService
	Profile       *ProfileService
}

// New builds every service over store. Optional infrastructure (search index,
// uploads, email fan-out, auto replies) is attached by the caller afterwards.
func New(store repo.DocumentStore, jwt *helpers.JWTManager, logger *logrus.Logger) *App {
	locks := NewKeyLock()
	users := documents.NewUserRepository(store)
	convs := documents.NewConversationRepository(store)

	notifications := NewNotificationService(documents.NewNotificationRepository(store), users, locks, logger)

	chat := NewChatService(convs, users, locks, logger)
	chat.Notifications = notifications

	market := NewMarketplaceService(documents.NewMarketplaceRepository(store), locks, logger)
	market.Notifier = notifications
	events := NewEventService(documents.NewEventRepository(store), locks, logger)
	events.Notifier = notifications
	resources := NewResourceService(documents.NewResourceRepository(store), locks, logger)
	resources.Notifier = notifications

	return &App{
		Identity:      NewIdentityService(users, documents.NewSessionRepository(store), convs, locks, jwt, logger),
		Notifications: notifications,
		Chat:          chat,
		Marketplace:   market,
		Events:        events,
		Resources:     resources,
		Profile:       &ProfileService{Marketplace: market, Events: events, Resources: resources},
	}
}
