package entity

import "testing"

func TestMessageStatusCanAdvanceTo(t *testing.T) {
	tests := []struct {
		from, to MessageStatus
		want     bool
	}{
		{"", MessageStatusSent, true},
		{MessageStatusSent, MessageStatusDelivered, true},
		{MessageStatusSent, MessageStatusRead, true},
		{MessageStatusDelivered, MessageStatusRead, true},
		{MessageStatusRead, MessageStatusDelivered, false},
		{MessageStatusDelivered, MessageStatusDelivered, false},
		{MessageStatusSent, MessageStatus("lost"), false},
	}
	for _, tt := range tests {
		if got := tt.from.CanAdvanceTo(tt.to); got != tt.want {
			t.Errorf("%q.CanAdvanceTo(%q) = %v, expected %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestConversationMatches(t *testing.T) {
	c := Conversation{
		Participants: [2]Participant{
			{ID: "a", Name: "Ada Obi", Matric: "20CE1234"},
			{ID: "b", Name: "Bola Ade", Matric: "19CS5678"},
		},
		Messages: []Message{{SenderID: "a", Text: "See you at the Library"}},
	}
	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"bola", true},
		{"19cs", true},
		{"library", true},
		{"ada obi", false}, // own name does not count
		{"20CE", false},
		{"physics", false},
	}
	for _, tt := range tests {
		if got := c.Matches("a", tt.query); got != tt.want {
			t.Errorf("Matches(a, %q) = %v, expected %v", tt.query, got, tt.want)
		}
	}
}

func TestConversationParticipants(t *testing.T) {
	c := Conversation{Participants: [2]Participant{{ID: "a"}, {ID: "b"}}}
	if !c.IsBetween("b", "a") || c.IsBetween("a", "a") || c.IsBetween("a", "c") {
		t.Error("IsBetween gave the wrong answer")
	}
	if c.Other("a").ID != "b" || c.Other("b").ID != "a" {
		t.Error("Other returned the wrong participant")
	}
	if _, ok := c.Participant("c"); ok {
		t.Error("Participant(c) should not be found")
	}
}
