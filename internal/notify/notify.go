// Package notify models the user-facing notifications raised by a session.
//
// A Notification corresponds to one toast: a title, a description, a
// severity and an optional action the user can trigger (for example
// "continue anyway" after an inconsistent value count warning).
package notify

import (
	"sort"
	"sync"

	"github.com/leapstack-labs/tplgen/pkg/core"
)

// Kind identifies the situation a notification reports.
type Kind string

// Notification kinds.
const (
	KindEmptyTemplate      Kind = "empty_template"
	KindNoVariables        Kind = "no_variables"
	KindMissingValues      Kind = "missing_values"
	KindInconsistentCounts Kind = "inconsistent_counts"
	KindCopied             Kind = "copied"
)

// Action is an optional follow-up offered with a notification.
type Action struct {
	Label string
	Run   func() error `json:"-"`
}

// Notification is a single user-facing message.
type Notification struct {
	Kind        Kind          `json:"kind"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Severity    core.Severity `json:"severity"`
	Action      *Action       `json:"action,omitempty"`
}

// HasAction reports whether the notification offers a runnable action.
func (n Notification) HasAction() bool {
	return n.Action != nil && n.Action.Run != nil
}

// Sink receives notifications.
type Sink interface {
	Notify(n Notification)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(n Notification)

// Notify calls f(n).
func (f SinkFunc) Notify(n Notification) { f(n) }

// Hub fans out notifications to every subscribed sink.
type Hub struct {
	mu    sync.RWMutex
	sinks map[int]Sink
	next  int
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{sinks: make(map[int]Sink)}
}

// Subscribe registers s and returns a function that removes it.
func (h *Hub) Subscribe(s Sink) (unsubscribe func()) {
	h.mu.Lock()
	id := h.next
	h.next++
	h.sinks[id] = s
	h.mu.Unlock()

	return func() {
		h.mu.Lock()
		delete(h.sinks, id)
		h.mu.Unlock()
	}
}

// Notify delivers n to all sinks in subscription order.
func (h *Hub) Notify(n Notification) {
	h.mu.RLock()
	ids := make([]int, 0, len(h.sinks))
	for id := range h.sinks {
		ids = append(ids, id)
	}
	sinks := make([]Sink, 0, len(ids))
	sort.Ints(ids)
	for _, id := range ids {
		sinks = append(sinks, h.sinks[id])
	}
	h.mu.RUnlock()

	for _, s := range sinks {
		s.Notify(n)
	}
}

// Len returns the number of subscribed sinks.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sinks)
}

// Recorder is a Sink that keeps every notification it receives.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

// Notify records n.
func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	r.items = append(r.items, n)
	r.mu.Unlock()
}

// All returns a copy of the recorded notifications.
func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notification(nil), r.items...)
}

// Last returns the most recent notification, if any.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return Notification{}, false
	}
	return r.items[len(r.items)-1], true
}
