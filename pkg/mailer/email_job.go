package mailer

import (
	"errors"

	mailtpl "github.com/oksasatya/campus-connect/pkg/mailer/templates"
)

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either Template (rendered with Data) or the literal Subject/Text/HTML is used.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "notification"
	Data     map[string]any `json:"data,omitempty"`
}

var ErrNoRecipient = errors.New("email job has no recipient")

// EnsureRecipient fills the recipient fields templates expect when the producer left them out.
func (j *EmailJob) EnsureRecipient() {
	if j.Data == nil {
		j.Data = map[string]any{}
	}
	if v, ok := j.Data["RecipientEmail"].(string); !ok || v == "" {
		j.Data["RecipientEmail"] = j.To
	}
}

// Compose returns the subject and bodies to send, rendering the template when one is set.
func (j *EmailJob) Compose() (subject, text, html string, err error) {
	if j.To == "" {
		return "", "", "", ErrNoRecipient
	}
	if j.Template == "" {
		return j.Subject, j.Text, j.HTML, nil
	}
	j.EnsureRecipient()
	return mailtpl.Render(j.Template, j.Data)
}
