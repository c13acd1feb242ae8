package entity

import (
	"fmt"
	"time"
)

// ActivityKind identifies the action that produced an activity notification.
type ActivityKind string

const (
	ActivityResourceUpload     ActivityKind = "resource_upload"
	ActivityEventPost          ActivityKind = "event_post"
	ActivityMessageSent        ActivityKind = "message_sent"
	ActivityMarketplaceListing ActivityKind = "marketplace_listing"
)

type Notification struct {
	ID           string       `json:"id"`
	Timestamp    time.Time    `json:"timestamp"`
	Read         bool         `json:"read"`
	Type         string       `json:"type"`
	ActivityType ActivityKind `json:"activity_type,omitempty"`
	Title        string       `json:"title"`
	Message      string       `json:"message"`
	ActorID      string       `json:"actor_id,omitempty"`
	ActorName    string       `json:"actor_name,omitempty"`
	SubjectID    string       `json:"subject_id,omitempty"`
	SubjectTitle string       `json:"subject_title,omitempty"`
}

// Actor is who performed an activity.
type Actor struct {
	ID   string
	Name string
}

// Subject is what an activity was about.
type Subject struct {
	ID    string
	Title string
}

// ActivityNotification renders the title, message and type for an activity.
// Unknown kinds fall back to a generic notice.
func ActivityNotification(kind ActivityKind, actor Actor, subject Subject) Notification {
	name := actor.Name
	if name == "" {
		name = "Someone"
	}
	orDefault := func(def string) string {
		if subject.Title == "" {
			return def
		}
		return subject.Title
	}

	n := Notification{
		ActivityType: kind,
		ActorID:      actor.ID,
		ActorName:    actor.Name,
		SubjectID:    subject.ID,
		SubjectTitle: subject.Title,
	}
	switch kind {
	case ActivityResourceUpload:
		n.Title = "New Resource Shared"
		n.Message = fmt.Sprintf("%s uploaded \"%s\"", name, orDefault("a resource"))
		n.Type = "resource"
	case ActivityEventPost:
		n.Title = "New Event Posted"
		n.Message = fmt.Sprintf("%s posted an event: \"%s\"", name, orDefault("New event"))
		n.Type = "event"
	case ActivityMessageSent:
		n.Title = "New Message"
		n.Message = fmt.Sprintf("%s sent you a message", name)
		n.Type = "message"
	case ActivityMarketplaceListing:
		n.Title = "New Marketplace Listing"
		n.Message = fmt.Sprintf("%s listed \"%s\" for sale", name, orDefault("an item"))
		n.Type = "marketplace"
	default:
		n.Title = "New Notification"
		n.Message = "You have a new notification"
		n.Type = "general"
	}
	return n
}

// NotificationLog is a most-recent-first list of notifications with an
// unread counter that always equals the number of unread records.
type NotificationLog struct {
	items  []Notification
	unread int
}

// NewNotificationLog builds a log from stored records, recomputing the counter.
func NewNotificationLog(items []Notification) *NotificationLog {
	l := &NotificationLog{items: append([]Notification(nil), items...)}
	for _, n := range l.items {
		if !n.Read {
			l.unread++
		}
	}
	return l
}

// Add prepends n as unread.
func (l *NotificationLog) Add(n Notification) Notification {
	n.Read = false
	l.items = append([]Notification{n}, l.items...)
	l.unread++
	return n
}

// MarkAsRead flips one record to read. It reports whether anything changed.
func (l *NotificationLog) MarkAsRead(id string) bool {
	for i := range l.items {
		if l.items[i].ID != id {
			continue
		}
		if l.items[i].Read {
			return false
		}
		l.items[i].Read = true
		l.unread--
		return true
	}
	return false
}

// MarkAllAsRead flips every record to read.
func (l *NotificationLog) MarkAllAsRead() {
	for i := range l.items {
		l.items[i].Read = true
	}
	l.unread = 0
}

// Delete removes a record. It reports whether the record existed.
func (l *NotificationLog) Delete(id string) bool {
	for i, n := range l.items {
		if n.ID != id {
			continue
		}
		if !n.Read {
			l.unread--
		}
		l.items = append(l.items[:i:i], l.items[i+1:]...)
		return true
	}
	return false
}

// Find returns the record with id.
func (l *NotificationLog) Find(id string) (Notification, bool) {
	for _, n := range l.items {
		if n.ID == id {
			return n, true
		}
	}
	return Notification{}, false
}

func (l *NotificationLog) UnreadCount() int { return l.unread }

func (l *NotificationLog) Len() int { return len(l.items) }

// Items returns a copy of the records, most recent first.
func (l *NotificationLog) Items() []Notification {
	return append([]Notification{}, l.items...)
}
