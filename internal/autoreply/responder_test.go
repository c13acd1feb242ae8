package autoreply

import (
	"slices"
	"testing"
	"time"
)

func newTestResponder(chance float64, delay time.Duration) (*Responder, chan Reply) {
	got := make(chan Reply, 8)
	r := New(Config{Chance: chance, MinDelay: delay, MaxDelay: delay}, func(rep Reply) { got <- rep })
	return r, got
}

func TestScheduleDelivers(t *testing.T) {
	r, got := newTestResponder(1, 5*time.Millisecond)
	defer r.Close()

	if !r.Schedule("c1", "bob") {
		t.Fatal("Schedule() = false with chance 1")
	}
	select {
	case rep := <-got:
		if rep.ConversationID != "c1" || rep.SenderID != "bob" {
			t.Errorf("reply = %+v", rep)
		}
		if !slices.Contains(Replies, rep.Text) {
			t.Errorf("reply text %q not in canned pool", rep.Text)
		}
	case <-time.After(time.Second):
		t.Fatal("reply not delivered")
	}
	if n := r.Pending(); n != 0 {
		t.Errorf("Pending() = %d after delivery, expected 0", n)
	}
}

func TestScheduleChance(t *testing.T) {
	r, _ := newTestResponder(0.7, time.Hour)
	defer r.Close()

	r.Float64 = func() float64 { return 0.8 }
	if r.Schedule("c1", "bob") {
		t.Error("roll above chance should not schedule")
	}
	r.Float64 = func() float64 { return 0.1 }
	if !r.Schedule("c1", "bob") {
		t.Error("roll below chance should schedule")
	}
}

func TestRescheduleReplacesPending(t *testing.T) {
	r, got := newTestResponder(1, 20*time.Millisecond)
	defer r.Close()

	r.IntN = func(int) int { return 0 }
	r.Schedule("c1", "bob")
	r.IntN = func(int) int { return 1 }
	r.Schedule("c1", "bob")

	if n := r.Pending(); n != 1 {
		t.Fatalf("Pending() = %d, expected 1", n)
	}
	select {
	case rep := <-got:
		if rep.Text != Replies[1] {
			t.Errorf("delivered %q, expected the replacement %q", rep.Text, Replies[1])
		}
	case <-time.After(time.Second):
		t.Fatal("reply not delivered")
	}
	select {
	case rep := <-got:
		t.Errorf("replaced reply still delivered: %+v", rep)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestCancel(t *testing.T) {
	r, got := newTestResponder(1, 20*time.Millisecond)
	defer r.Close()

	r.Schedule("c1", "bob")
	if !r.Cancel("c1") {
		t.Fatal("Cancel() = false for pending reply")
	}
	if r.Cancel("c1") {
		t.Error("second Cancel() should report nothing pending")
	}
	select {
	case rep := <-got:
		t.Errorf("cancelled reply delivered: %+v", rep)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestClose(t *testing.T) {
	r, got := newTestResponder(1, 20*time.Millisecond)

	r.Schedule("c1", "bob")
	r.Schedule("c2", "carol")
	r.Close()

	if n := r.Pending(); n != 0 {
		t.Errorf("Pending() = %d after Close, expected 0", n)
	}
	if r.Schedule("c3", "dave") {
		t.Error("Schedule() after Close should refuse")
	}
	select {
	case rep := <-got:
		t.Errorf("reply delivered after Close: %+v", rep)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestDelayWithinBounds(t *testing.T) {
	r := New(Config{Chance: 1, MinDelay: time.Second, MaxDelay: 3 * time.Second}, func(Reply) {})
	for _, roll := range []float64{0, 0.5, 0.999} {
		r.Float64 = func() float64 { return roll }
		d := r.delay()
		if d < time.Second || d > 3*time.Second {
			t.Errorf("delay(%v) = %v, outside [1s, 3s]", roll, d)
		}
	}
}
