package application

import (
	"context"
	"expvar"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-connect/internal/autoreply"
	"github.com/oksasatya/campus-connect/internal/domain/entity"
	repo "github.com/oksasatya/campus-connect/internal/domain/repository"
	"github.com/oksasatya/campus-connect/pkg/helpers"
)

var (
	metricMessagesSent        = expvar.NewInt("chat_messages_sent")
	metricAutoReplies         = expvar.NewInt("chat_auto_replies")
	metricConversationsOpened = expvar.NewInt("chat_conversations_opened")
)

// ReplyScheduler arms a simulated counterpart reply. *autoreply.Responder satisfies it.
type ReplyScheduler interface {
	Schedule(conversationID, senderID string) bool
}

type ChatService struct {
	Repo   repo.ConversationRepository
	Users  repo.UserRepository
	Locks  *KeyLock
	Logger *logrus.Logger

	// Optional collaborators.
	Notifications *NotificationService
	Replies       ReplyScheduler
}

func NewChatService(convs repo.ConversationRepository, users repo.UserRepository, locks *KeyLock, logger *logrus.Logger) *ChatService {
	return &ChatService{Repo: convs, Users: users, Locks: locks, Logger: helpers.LoggerOrDiscard(logger)}
}

// StartConversation returns the conversation between userID and otherUserID,
// creating it on first contact.
func (s *ChatService) StartConversation(ctx context.Context, userID, otherUserID string) (*entity.Conversation, error) {
	if userID == otherUserID {
		return nil, invalid("user_id", "cannot start a conversation with yourself")
	}
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	me, ok := lookup(users, userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	other, ok := lookup(users, otherUserID)
	if !ok {
		return nil, ErrUserNotFound
	}

	defer s.Locks.Lock(lockConversations)()

	convs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range convs {
		if convs[i].IsBetween(userID, otherUserID) {
			c := refreshed(convs[i], users)
			return &c, nil
		}
	}

	c := entity.Conversation{
		ID:            uuid.NewString(),
		Participants:  [2]entity.Participant{entity.ParticipantFrom(me), entity.ParticipantFrom(other)},
		Messages:      []entity.Message{},
		LastMessageAt: now(),
	}
	convs = append(convs, c)
	if err := s.Repo.SaveAll(ctx, convs); err != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Error("save conversations failed")
		return nil, err
	}
	metricConversationsOpened.Add(1)
	return &c, nil
}

// SendMessage appends text from userID. Blank text is ignored and yields (nil, nil).
func (s *ChatService) SendMessage(ctx context.Context, userID, conversationID, text string) (*entity.Message, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	msg, conv, err := s.appendMessage(ctx, conversationID, userID, text)
	if err != nil {
		return nil, err
	}
	metricMessagesSent.Add(1)

	recipient := conv.Other(userID)
	sender, _ := conv.Participant(userID)
	if s.Notifications != nil {
		if _, err := s.Notifications.CreateActivity(ctx, recipient.ID, entity.ActivityMessageSent,
			entity.Actor{ID: sender.ID, Name: sender.Name},
			entity.Subject{ID: conv.ID, Title: text},
		); err != nil {
			s.Logger.WithError(err).WithField("conversation_id", conv.ID).Warn("message notification failed")
		}
	}
	if s.Replies != nil {
		s.Replies.Schedule(conv.ID, recipient.ID)
	}
	return msg, nil
}

// DeliverReply appends a simulated answer. It is the callback of the auto-reply responder.
func (s *ChatService) DeliverReply(r autoreply.Reply) {
	ctx := context.Background()
	msg, conv, err := s.appendMessage(ctx, r.ConversationID, r.SenderID, r.Text)
	if err != nil {
		s.Logger.WithError(err).WithField("conversation_id", r.ConversationID).Warn("deliver auto reply failed")
		return
	}
	metricAutoReplies.Add(1)

	if s.Notifications != nil {
		sender, _ := conv.Participant(r.SenderID)
		if _, err := s.Notifications.CreateActivity(ctx, conv.Other(r.SenderID).ID, entity.ActivityMessageSent,
			entity.Actor{ID: sender.ID, Name: sender.Name},
			entity.Subject{ID: conv.ID, Title: msg.Text},
		); err != nil {
			s.Logger.WithError(err).WithField("conversation_id", conv.ID).Warn("reply notification failed")
		}
	}
}

func (s *ChatService) appendMessage(ctx context.Context, conversationID, senderID, text string) (*entity.Message, *entity.Conversation, error) {
	defer s.Locks.Lock(lockConversations)()

	convs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	i := slices.IndexFunc(convs, func(c entity.Conversation) bool { return c.ID == conversationID })
	if i < 0 {
		return nil, nil, ErrConversationNotFound
	}
	if !convs[i].HasParticipant(senderID) {
		return nil, nil, ErrNotParticipant
	}

	msg := entity.Message{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		Text:      text,
		Timestamp: now(),
		Status:    entity.MessageStatusDelivered,
	}
	convs[i].Messages = append(convs[i].Messages, msg)
	convs[i].LastMessageAt = msg.Timestamp
	if err := s.Repo.SaveAll(ctx, convs); err != nil {
		s.Logger.WithError(err).WithField("conversation_id", conversationID).Error("save conversations failed")
		return nil, nil, err
	}
	conv := convs[i]
	return &msg, &conv, nil
}

// MarkRead moves the counterpart's messages to read and reports how many changed.
func (s *ChatService) MarkRead(ctx context.Context, userID, conversationID string) (int, error) {
	defer s.Locks.Lock(lockConversations)()

	convs, err := s.Repo.List(ctx)
	if err != nil {
		return 0, err
	}
	i := slices.IndexFunc(convs, func(c entity.Conversation) bool { return c.ID == conversationID })
	if i < 0 {
		return 0, ErrConversationNotFound
	}
	if !convs[i].HasParticipant(userID) {
		return 0, ErrNotParticipant
	}
	n := 0
	for j := range convs[i].Messages {
		m := &convs[i].Messages[j]
		if m.SenderID != userID && m.Status.CanAdvanceTo(entity.MessageStatusRead) {
			m.Status = entity.MessageStatusRead
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	if err := s.Repo.SaveAll(ctx, convs); err != nil {
		return 0, err
	}
	return n, nil
}

// Conversations lists userID's conversations matching query, most recent activity first.
// Participant snapshots are refreshed from the directory.
func (s *ChatService) Conversations(ctx context.Context, userID, query string) ([]entity.Conversation, error) {
	convs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := []entity.Conversation{}
	for _, c := range convs {
		if !c.HasParticipant(userID) {
			continue
		}
		c = refreshed(c, users)
		if c.Matches(userID, query) {
			out = append(out, c)
		}
	}
	slices.SortStableFunc(out, func(a, b entity.Conversation) int {
		return b.LastMessageAt.Compare(a.LastMessageAt)
	})
	return out, nil
}

func (s *ChatService) Conversation(ctx context.Context, userID, conversationID string) (*entity.Conversation, error) {
	convs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	i := slices.IndexFunc(convs, func(c entity.Conversation) bool { return c.ID == conversationID })
	if i < 0 {
		return nil, ErrConversationNotFound
	}
	if !convs[i].HasParticipant(userID) {
		return nil, ErrNotParticipant
	}
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	c := refreshed(convs[i], users)
	return &c, nil
}

// SuggestedContacts lists users userID has no conversation with who share a
// faculty, a matric year or a matric department prefix.
func (s *ChatService) SuggestedContacts(ctx context.Context, userID string) ([]entity.User, error) {
	users, err := s.Users.List(ctx)
	if err != nil {
		return nil, err
	}
	me, ok := lookup(users, userID)
	if !ok {
		return nil, ErrUserNotFound
	}
	convs, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	talking := map[string]bool{}
	for _, c := range convs {
		if c.HasParticipant(userID) {
			talking[c.Other(userID).ID] = true
		}
	}

	out := []entity.User{}
	for _, u := range users {
		if u.ID == userID || talking[u.ID] {
			continue
		}
		if related(me, u) {
			out = append(out, u.Public())
		}
	}
	return out, nil
}

func related(a, b entity.User) bool {
	same := func(x, y string) bool { return x != "" && x == y }
	return same(a.Faculty, b.Faculty) ||
		same(a.MatricYear(), b.MatricYear()) ||
		same(a.MatricDepartment(), b.MatricDepartment())
}

// refreshed replaces the participant snapshots with current directory data.
func refreshed(c entity.Conversation, users []entity.User) entity.Conversation {
	for i, p := range c.Participants {
		if u, ok := lookup(users, p.ID); ok {
			c.Participants[i] = entity.ParticipantFrom(u)
		}
	}
	return c
}

func lookup(users []entity.User, id string) (entity.User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return entity.User{}, false
}
