package main

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/oksasatya/campus-connect/pkg/helpers"
	"github.com/oksasatya/campus-connect/pkg/mailer"
	mailtpl "github.com/oksasatya/campus-connect/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	mails []sent
	err   error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	f.mails = append(f.mails, sent{to, subject, text, html})
	return f.err
}

type fakeDelivery struct {
	acked, nacked, requeued bool
}

func (d *fakeDelivery) Ack(bool) error {
	d.acked = true
	return nil
}

func (d *fakeDelivery) Nack(_ bool, requeue bool) error {
	d.nacked, d.requeued = true, requeue
	return nil
}

func body(t *testing.T, job mailer.EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

func TestProcessSendsRenderedJob(t *testing.T) {
	s := &fakeSender{}
	job := mailer.EmailJob{To: "ada@uni.test", Template: mailtpl.Notification, Data: map[string]any{"Title": "New Message", "Name": "Ada"}}
	if err := process(context.Background(), s, body(t, job)); err != nil {
		t.Fatalf("process() error = %v", err)
	}
	if len(s.mails) != 1 || s.mails[0].to != "ada@uni.test" || !strings.Contains(s.mails[0].subject, "New Message") {
		t.Errorf("sent = %+v", s.mails)
	}
}

func TestAckDecisions(t *testing.T) {
	logger := helpers.LoggerOrDiscard(nil)
	ok := mailer.EmailJob{To: "a@b.test", Subject: "s", Text: "t"}

	tests := []struct {
		name     string
		body     []byte
		sendErr  error
		acked    bool
		requeued bool
	}{
		{"sent", body(t, ok), nil, true, false},
		{"bad json", []byte("{"), nil, false, false},
		{"no recipient", body(t, mailer.EmailJob{Subject: "s"}), nil, false, false},
		{"transient send failure", body(t, ok), errors.New("timeout"), false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &fakeDelivery{}
			ack(d, process(context.Background(), &fakeSender{err: tt.sendErr}, tt.body), logger)
			if d.acked != tt.acked || d.requeued != tt.requeued || d.acked == d.nacked {
				t.Errorf("delivery = %+v", d)
			}
		})
	}
}
