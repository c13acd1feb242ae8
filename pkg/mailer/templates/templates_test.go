package templates

import (
	"strings"
	"testing"
	"time"

	"github.com/oksasatya/campus-connect/config"
)

func TestRenderNotification(t *testing.T) {
	cfg := &config.Config{AppName: "Campus Connect", AppURL: "http://localhost:5173"}
	data := NewNotificationData(cfg, "Ada", "ada@uni.test", "New Message", `Bob sent you a message: "hi"`,
		WithTime(time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)),
		WithActivity("message_sent", "Bob", "hi"),
	)

	subject, text, html, err := Render(Notification, data)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if subject != "[Campus Connect] New Message" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(text, "Hi Ada") || !strings.Contains(text, "01 March 2024, 10:30") {
		t.Errorf("text missing greeting or time: %q", text)
	}
	if !strings.Contains(html, "Bob sent you a message: &#34;hi&#34;") {
		t.Errorf("html should escape the message: %q", html)
	}
}

func TestRenderDefaults(t *testing.T) {
	subject, text, _, err := Render(Notification, map[string]any{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if subject != "[Campus Connect] New Notification" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(text, "You have a new notification") {
		t.Errorf("text = %q", text)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	if _, _, _, err := Render("missing", nil); err == nil {
		t.Error("expected error for missing template")
	}
}
