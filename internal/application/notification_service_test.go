package application

import (
	"context"
	"errors"
	"testing"

	"github.com/oksasatya/campus-connect/config"
	"github.com/oksasatya/campus-connect/internal/domain/entity"
	"github.com/oksasatya/campus-connect/pkg/mailer"
	mailtpl "github.com/oksasatya/campus-connect/pkg/mailer/templates"
)

func TestNotificationServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	svc := app.Notifications

	first, err := svc.Add(ctx, "u1", entity.Notification{Title: "Hello", Message: "World", Read: true})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if first.ID == "" || first.Read || first.Timestamp.IsZero() || first.Type != "general" {
		t.Errorf("added = %+v, expected id, unread, timestamp and general type", first)
	}
	second, _ := svc.CreateActivity(ctx, "u1", entity.ActivityEventPost, entity.Actor{Name: "Ada"}, entity.Subject{Title: "Hackathon"})

	list, _ := svc.List(ctx, "u1")
	if len(list.Items) != 2 || list.Items[0].ID != second.ID || list.UnreadCount != 2 {
		t.Fatalf("List() = %+v", list)
	}

	list, err = svc.MarkAsRead(ctx, "u1", first.ID)
	if err != nil || list.UnreadCount != 1 {
		t.Fatalf("MarkAsRead() = %+v, %v", list, err)
	}
	list, _ = svc.MarkAsRead(ctx, "u1", first.ID)
	if list.UnreadCount != 1 {
		t.Errorf("repeated MarkAsRead() changed the counter to %d", list.UnreadCount)
	}

	list, _ = svc.Delete(ctx, "u1", first.ID)
	if len(list.Items) != 1 || list.UnreadCount != 1 {
		t.Errorf("deleting a read record: %+v", list)
	}
	list, _ = svc.MarkAllAsRead(ctx, "u1")
	if list.UnreadCount != 0 {
		t.Errorf("MarkAllAsRead() left %d unread", list.UnreadCount)
	}

	if _, err := svc.MarkAsRead(ctx, "u1", "missing"); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("MarkAsRead(missing) error = %v", err)
	}
	if _, err := svc.Delete(ctx, "u1", "missing"); !errors.Is(err, ErrNotificationNotFound) {
		t.Errorf("Delete(missing) error = %v", err)
	}

	// stored state agrees with the returned snapshot
	stored, _ := svc.Repo.List(ctx, "u1")
	if len(stored) != 1 || !stored[0].Read {
		t.Errorf("stored = %+v", stored)
	}
}

type fakePublisher struct {
	jobs []mailer.EmailJob
}

func (f *fakePublisher) PublishJSON(_ context.Context, body any) error {
	f.jobs = append(f.jobs, body.(mailer.EmailJob))
	return nil
}

func TestNotificationEmailFanOut(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	ada := signup(t, app, "Ada", "ada@uni.test", "", "")
	pub := &fakePublisher{}
	app.Notifications.Publisher = pub
	app.Notifications.Config = &config.Config{AppName: "Campus Connect", MailSendEnabled: false}

	_, _ = app.Notifications.Add(ctx, ada.ID, entity.Notification{Title: "quiet"})
	if len(pub.jobs) != 0 {
		t.Fatal("no email expected while mail sending is disabled")
	}

	app.Notifications.Config.MailSendEnabled = true
	_, _ = app.Notifications.CreateActivity(ctx, ada.ID, entity.ActivityResourceUpload, entity.Actor{Name: "Bola"}, entity.Subject{Title: "Notes"})
	if len(pub.jobs) != 1 {
		t.Fatalf("published %d jobs, expected 1", len(pub.jobs))
	}
	job := pub.jobs[0]
	if job.To != "ada@uni.test" || job.Template != mailtpl.Notification {
		t.Errorf("job = %+v", job)
	}
	if job.Data["Title"] != "New Resource Shared" || job.Data["Name"] != "Ada" {
		t.Errorf("job data = %v", job.Data)
	}

	// unknown recipients are skipped
	_, _ = app.Notifications.Add(ctx, "ghost", entity.Notification{Title: "x"})
	if len(pub.jobs) != 1 {
		t.Error("email queued for a user without a directory entry")
	}
}

func TestNotifyOthersSkipsActor(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)
	ada := signup(t, app, "Ada", "ada@uni.test", "", "")
	bola := signup(t, app, "Bola", "bola@uni.test", "", "")
	chidi := signup(t, app, "Chidi", "chidi@uni.test", "", "")

	app.Notifications.NotifyOthers(ctx, entity.ActivityEventPost, actorOf(ada), entity.Subject{Title: "Party"})

	for _, u := range []entity.User{bola, chidi} {
		list, _ := app.Notifications.List(ctx, u.ID)
		if len(list.Items) != 1 || list.Items[0].Message != `Ada posted an event: "Party"` {
			t.Errorf("%s notifications = %+v", u.Name, list.Items)
		}
	}
	if list, _ := app.Notifications.List(ctx, ada.ID); len(list.Items) != 0 {
		t.Error("actor notified of their own activity")
	}
}
