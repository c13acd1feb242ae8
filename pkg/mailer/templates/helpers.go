package templates

import (
	"time"

	"github.com/oksasatya/campus-connect/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithActivity(kind, actorName, subjectTitle string) Option {
	return func(d *EmailData) {
		d.ActivityType = kind
		d.ActorName = actorName
		d.SubjectTitle = subjectTitle
	}
}

// NewBaseEmailData fills the shared fields from config, then applies options.
func NewBaseEmailData(cfg *config.Config, typ, name, recipient string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		RecipientEmail: recipient,
		Type:           typ,
		AppName:        cfg.AppName,
		AppURL:         cfg.AppURL,
		SupportURL:     cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewNotificationData(cfg *config.Config, name, recipient, title, message string, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, Notification, name, recipient, opts...)
	d.Title = title
	d.Message = message
	return ToMap(d)
}
