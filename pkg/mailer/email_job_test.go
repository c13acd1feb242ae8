package mailer

import (
	"errors"
	"strings"
	"testing"

	mailtpl "github.com/oksasatya/campus-connect/pkg/mailer/templates"
)

func TestComposeTemplate(t *testing.T) {
	job := EmailJob{
		To:       "ada@uni.test",
		Template: mailtpl.Notification,
		Data:     map[string]any{"Name": "Ada", "Title": "New Event Posted", "AppName": "Campus Connect"},
	}
	subject, text, html, err := job.Compose()
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if subject != "[Campus Connect] New Event Posted" {
		t.Errorf("subject = %q", subject)
	}
	if !strings.Contains(text, "Ada") || html == "" {
		t.Errorf("bodies not rendered: text=%q", text)
	}
	if job.Data["RecipientEmail"] != "ada@uni.test" {
		t.Errorf("recipient not filled in: %v", job.Data)
	}
}

func TestComposeLiteralAndErrors(t *testing.T) {
	job := EmailJob{To: "a@b.test", Subject: "Hi", Text: "plain"}
	if s, txt, html, err := job.Compose(); err != nil || s != "Hi" || txt != "plain" || html != "" {
		t.Errorf("Compose() = %q %q %q %v", s, txt, html, err)
	}

	if _, _, _, err := (&EmailJob{Subject: "x"}).Compose(); !errors.Is(err, ErrNoRecipient) {
		t.Errorf("missing recipient error = %v", err)
	}
	if _, _, _, err := (&EmailJob{To: "a@b.test", Template: "nope"}).Compose(); err == nil {
		t.Error("unknown template should fail")
	}
}

func TestEnsureRecipientKeepsExplicitValue(t *testing.T) {
	job := EmailJob{To: "a@b.test", Data: map[string]any{"RecipientEmail": "c@d.test"}}
	job.EnsureRecipient()
	if job.Data["RecipientEmail"] != "c@d.test" {
		t.Errorf("RecipientEmail = %v", job.Data["RecipientEmail"])
	}
}
