// Package autoreply simulates the other side of a conversation answering a
// message after a short random delay.
package autoreply

import (
	"math/rand"
	"sync"
	"time"
)

// Replies is the canned pool answers are drawn from.
var Replies = []string{
	"That's great!",
	"Thanks for the info!",
	"I'll keep that in mind.",
	"Let me check and get back to you.",
	"When is the next lecture?",
	"Did you submit the assignment?",
	"Are you going to the event?",
	"I'll see you at the library later.",
	"Have you seen the announcement?",
	"The deadline is tomorrow!",
}

// Reply is a scheduled answer from SenderID in ConversationID.
type Reply struct {
	ConversationID string
	SenderID       string
	Text           string
}

type Config struct {
	Chance   float64 // probability that a message gets answered, 0..1
	MinDelay time.Duration
	MaxDelay time.Duration
}

// Responder keeps at most one pending reply per conversation. Scheduling again
// replaces the pending one; Close stops everything and refuses new work.
type Responder struct {
	cfg     Config
	deliver func(Reply)

	// Float64 and IntN default to math/rand.
	Float64 func() float64
	IntN    func(n int) int

	mu      sync.Mutex
	pending map[string]pendingReply
	seq     uint64
	closed  bool
}

type pendingReply struct {
	timer *time.Timer
	seq   uint64
}

func New(cfg Config, deliver func(Reply)) *Responder {
	if cfg.MaxDelay < cfg.MinDelay {
		cfg.MaxDelay = cfg.MinDelay
	}
	return &Responder{
		cfg:     cfg,
		deliver: deliver,
		Float64: rand.Float64,
		IntN:    rand.Intn,
		pending: map[string]pendingReply{},
	}
}

// Schedule rolls the dice and, on success, arms a reply from senderID.
// It reports whether a reply is now pending.
func (r *Responder) Schedule(conversationID, senderID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.Float64() >= r.cfg.Chance {
		return false
	}
	if p, ok := r.pending[conversationID]; ok {
		p.timer.Stop()
	}

	reply := Reply{
		ConversationID: conversationID,
		SenderID:       senderID,
		Text:           Replies[r.IntN(len(Replies))],
	}
	r.seq++
	seq := r.seq
	t := time.AfterFunc(r.delay(), func() { r.fire(seq, reply) })
	r.pending[conversationID] = pendingReply{timer: t, seq: seq}
	return true
}

func (r *Responder) delay() time.Duration {
	span := r.cfg.MaxDelay - r.cfg.MinDelay
	if span <= 0 {
		return r.cfg.MinDelay
	}
	return r.cfg.MinDelay + time.Duration(r.Float64()*float64(span))
}

func (r *Responder) fire(seq uint64, reply Reply) {
	r.mu.Lock()
	if p, ok := r.pending[reply.ConversationID]; r.closed || !ok || p.seq != seq {
		r.mu.Unlock()
		return
	}
	delete(r.pending, reply.ConversationID)
	r.mu.Unlock()

	r.deliver(reply)
}

// Cancel drops the pending reply for a conversation and reports whether there was one.
func (r *Responder) Cancel(conversationID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pending[conversationID]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(r.pending, conversationID)
	return true
}

// Pending returns the number of armed replies.
func (r *Responder) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *Responder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	for id, p := range r.pending {
		p.timer.Stop()
		delete(r.pending, id)
	}
}
