package entity

import (
	"strings"
	"time"
)

// MessageStatus is the delivery state of a message.
type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

func (s MessageStatus) rank() int {
	switch s {
	case MessageStatusSent:
		return 1
	case MessageStatusDelivered:
		return 2
	case MessageStatusRead:
		return 3
	}
	return 0
}

// IsValid reports whether s is a known status.
func (s MessageStatus) IsValid() bool {
	return s.rank() > 0
}

// CanAdvanceTo reports whether moving from s to next goes forward in the
// sent -> delivered -> read chain. Records without a status may advance to any state.
func (s MessageStatus) CanAdvanceTo(next MessageStatus) bool {
	return next.IsValid() && next.rank() > s.rank()
}

// Participant is the user snapshot stored inside a conversation.
type Participant struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Matric     string `json:"matric,omitempty"`
	Faculty    string `json:"faculty,omitempty"`
	Department string `json:"department,omitempty"`
	Year       string `json:"year,omitempty"`
	ProfilePic string `json:"profile_pic,omitempty"`
	IsOnline   bool   `json:"is_online"`
}

// ParticipantFrom snapshots a user.
func ParticipantFrom(u User) Participant {
	return Participant{
		ID:         u.ID,
		Name:       u.Name,
		Matric:     u.Matric,
		Faculty:    u.Faculty,
		Department: u.Department,
		Year:       u.Year,
		ProfilePic: u.ProfilePic,
		IsOnline:   u.IsOnline,
	}
}

type Message struct {
	ID        string        `json:"id"`
	SenderID  string        `json:"sender_id"`
	Text      string        `json:"text"`
	Timestamp time.Time     `json:"timestamp"`
	Status    MessageStatus `json:"status,omitempty"`
}

// Conversation is a thread between exactly two participants.
type Conversation struct {
	ID            string         `json:"id"`
	Participants  [2]Participant `json:"participants"`
	Messages      []Message      `json:"messages"`
	LastMessageAt time.Time      `json:"last_message_at"`
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.Participants[0].ID == userID || c.Participants[1].ID == userID
}

// Participant returns the snapshot for userID.
func (c *Conversation) Participant(userID string) (Participant, bool) {
	for _, p := range c.Participants {
		if p.ID == userID {
			return p, true
		}
	}
	return Participant{}, false
}

// Other returns the participant that is not userID.
func (c *Conversation) Other(userID string) Participant {
	if c.Participants[0].ID == userID {
		return c.Participants[1]
	}
	return c.Participants[0]
}

// IsBetween reports whether the conversation joins a and b, in either order.
func (c *Conversation) IsBetween(a, b string) bool {
	return c.HasParticipant(a) && c.HasParticipant(b) && a != b
}

// Matches reports whether the conversation matches a search query from
// userID's point of view: the counterpart's name or matric, or any message text.
func (c *Conversation) Matches(userID, query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	other := c.Other(userID)
	if strings.Contains(strings.ToLower(other.Name), q) {
		return true
	}
	if other.Matric != "" && strings.Contains(strings.ToLower(other.Matric), q) {
		return true
	}
	for _, m := range c.Messages {
		if strings.Contains(strings.ToLower(m.Text), q) {
			return true
		}
	}
	return false
}
