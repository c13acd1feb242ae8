package application

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-connect/config"
	"github.com/oksasatya/campus-connect/internal/domain/entity"
	repo "github.com/oksasatya/campus-connect/internal/domain/repository"
	"github.com/oksasatya/campus-connect/pkg/helpers"
	"github.com/oksasatya/campus-connect/pkg/mailer"
	mailtpl "github.com/oksasatya/campus-connect/pkg/mailer/templates"
)

// JobPublisher enqueues background jobs. *helpers.RabbitPublisher satisfies it.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// NotificationList is a log snapshot, most recent first.
type NotificationList struct {
	Items       []entity.Notification `json:"items"`
	UnreadCount int                   `json:"unread_count"`
}

func listOf(l *entity.NotificationLog) NotificationList {
	return NotificationList{Items: l.Items(), UnreadCount: l.UnreadCount()}
}

type NotificationService struct {
	Repo   repo.NotificationRepository
	Users  repo.UserRepository
	Locks  *KeyLock
	Logger *logrus.Logger

	// Optional email fan-out; skipped when Publisher is nil or mail sending is disabled.
	Publisher JobPublisher
	Config    *config.Config
}

func NewNotificationService(r repo.NotificationRepository, users repo.UserRepository, locks *KeyLock, logger *logrus.Logger) *NotificationService {
	return &NotificationService{Repo: r, Users: users, Locks: locks, Logger: helpers.LoggerOrDiscard(logger)}
}

func (s *NotificationService) load(ctx context.Context, ownerID string) (*entity.NotificationLog, error) {
	items, err := s.Repo.List(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return entity.NewNotificationLog(items), nil
}

// Add stamps n with a fresh id and timestamp, prepends it unread to ownerID's log and persists the log.
func (s *NotificationService) Add(ctx context.Context, ownerID string, n entity.Notification) (*entity.Notification, error) {
	unlock := s.Locks.Lock(lockNotifications(ownerID))
	log, err := s.load(ctx, ownerID)
	if err != nil {
		unlock()
		return nil, err
	}
	n.ID = uuid.NewString()
	n.Timestamp = now()
	if n.Type == "" {
		n.Type = "general"
	}
	added := log.Add(n)
	err = s.Repo.SaveAll(ctx, ownerID, log.Items())
	unlock()
	if err != nil {
		s.Logger.WithError(err).WithField("owner_id", ownerID).Error("save notifications failed")
		return nil, err
	}

	s.enqueueEmail(ctx, ownerID, added)
	return &added, nil
}

// CreateActivity templates an activity notice and adds it to ownerID's log.
func (s *NotificationService) CreateActivity(ctx context.Context, ownerID string, kind entity.ActivityKind, actor entity.Actor, subject entity.Subject) (*entity.Notification, error) {
	return s.Add(ctx, ownerID, entity.ActivityNotification(kind, actor, subject))
}

func (s *NotificationService) List(ctx context.Context, ownerID string) (NotificationList, error) {
	log, err := s.load(ctx, ownerID)
	if err != nil {
		return NotificationList{}, err
	}
	return listOf(log), nil
}

// MarkAsRead flips one notification to read. Repeating it is a no-op.
func (s *NotificationService) MarkAsRead(ctx context.Context, ownerID, id string) (NotificationList, error) {
	return s.mutate(ctx, ownerID, func(l *entity.NotificationLog) (bool, error) {
		if _, ok := l.Find(id); !ok {
			return false, ErrNotificationNotFound
		}
		return l.MarkAsRead(id), nil
	})
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, ownerID string) (NotificationList, error) {
	return s.mutate(ctx, ownerID, func(l *entity.NotificationLog) (bool, error) {
		if l.UnreadCount() == 0 {
			return false, nil
		}
		l.MarkAllAsRead()
		return true, nil
	})
}

func (s *NotificationService) Delete(ctx context.Context, ownerID, id string) (NotificationList, error) {
	return s.mutate(ctx, ownerID, func(l *entity.NotificationLog) (bool, error) {
		if !l.Delete(id) {
			return false, ErrNotificationNotFound
		}
		return true, nil
	})
}

// mutate applies fn to the owner's log and persists it when fn reports a change.
func (s *NotificationService) mutate(ctx context.Context, ownerID string, fn func(*entity.NotificationLog) (bool, error)) (NotificationList, error) {
	defer s.Locks.Lock(lockNotifications(ownerID))()

	log, err := s.load(ctx, ownerID)
	if err != nil {
		return NotificationList{}, err
	}
	changed, err := fn(log)
	if err != nil {
		return NotificationList{}, err
	}
	if changed {
		if err := s.Repo.SaveAll(ctx, ownerID, log.Items()); err != nil {
			s.Logger.WithError(err).WithField("owner_id", ownerID).Error("save notifications failed")
			return NotificationList{}, err
		}
	}
	return listOf(log), nil
}

// NotifyOthers records an activity notice for every user except the actor.
// Failures are logged; the activity itself already happened.
func (s *NotificationService) NotifyOthers(ctx context.Context, kind entity.ActivityKind, actor entity.Actor, subject entity.Subject) {
	users, err := s.Users.List(ctx)
	if err != nil {
		s.Logger.WithError(err).WithField("kind", kind).Warn("list users for activity failed")
		return
	}
	for _, u := range users {
		if u.ID == actor.ID {
			continue
		}
		if _, err := s.CreateActivity(ctx, u.ID, kind, actor, subject); err != nil {
			s.Logger.WithError(err).WithFields(logrus.Fields{"kind": kind, "owner_id": u.ID}).Warn("activity notification failed")
		}
	}
}

func (s *NotificationService) enqueueEmail(ctx context.Context, ownerID string, n entity.Notification) {
	if s.Publisher == nil || s.Config == nil || !s.Config.MailSendEnabled {
		return
	}
	u, err := findUser(ctx, s.Users, ownerID)
	if err != nil || u.Email == "" {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailtpl.Notification,
		Data: mailtpl.NewNotificationData(s.Config, u.Name, u.Email, n.Title, n.Message,
			mailtpl.WithTime(n.Timestamp),
			mailtpl.WithActivity(string(n.ActivityType), n.ActorName, n.SubjectTitle),
		),
	}
	if err := s.Publisher.PublishJSON(ctx, job); err != nil {
		s.Logger.WithError(err).WithField("owner_id", ownerID).Warn("enqueue notification email failed")
	}
}

// findUser looks a user up in the directory.
func findUser(ctx context.Context, users repo.UserRepository, id string) (entity.User, error) {
	all, err := users.List(ctx)
	if err != nil {
		return entity.User{}, err
	}
	for _, u := range all {
		if u.ID == id {
			return u, nil
		}
	}
	return entity.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
}
