package notify

import (
	"sync"
	"sync/atomic"
)

// Event identifies a bus event kind. The enum is closed: transports and UI
// panels switch on it rather than on string names.
type Event int

const (
	// EventNew carries the newly created record.
	EventNew Event = iota
	// EventRead carries the record that transitioned to read.
	EventRead
	// EventUpdated carries the full ordered snapshot after any mutation.
	EventUpdated
)

// Payload is the argument delivered to handlers. Notification is set for
// EventNew/EventRead; Snapshot is set for EventUpdated.
type Payload struct {
	Notification Notification
	Snapshot     []Notification
}

// Handler receives bus events synchronously on the emitting goroutine.
type Handler func(Payload)

type subscriber struct {
	handler Handler
	removed atomic.Bool
}

// Bus decouples the notification service from its consumers via typed
// events. Emission is synchronous and ordered: handlers run in registration
// order on the caller's goroutine, and the subscriber list is snapshotted
// before invoking so unsubscription during an emission fully detaches.
type Bus struct {
	mu   sync.Mutex
	subs map[Event][]*subscriber
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Event][]*subscriber)}
}

// Subscription detaches a handler from the bus.
type Subscription struct {
	bus   *Bus
	event Event
	sub   *subscriber
}

// Subscribe registers a handler for an event kind and returns its
// Subscription handle.
func (b *Bus) Subscribe(ev Event, h Handler) *Subscription {
	sub := &subscriber{handler: h}
	b.mu.Lock()
	b.subs[ev] = append(b.subs[ev], sub)
	b.mu.Unlock()
	return &Subscription{bus: b, event: ev, sub: sub}
}

// Unsubscribe detaches the handler. After it returns the handler is never
// invoked again, including by emissions already snapshotted.
func (s *Subscription) Unsubscribe() {
	s.sub.removed.Store(true)
	s.bus.mu.Lock()
	list := s.bus.subs[s.event]
	for i, sub := range list {
		if sub == s.sub {
			s.bus.subs[s.event] = append(list[:i], list[i+1:]...)
			break
		}
	}
	s.bus.mu.Unlock()
}

// Emit delivers the payload to every handler registered for ev, in
// registration order, on the calling goroutine.
func (b *Bus) Emit(ev Event, p Payload) {
	b.mu.Lock()
	snapshot := make([]*subscriber, len(b.subs[ev]))
	copy(snapshot, b.subs[ev])
	b.mu.Unlock()
	for _, sub := range snapshot {
		if sub.removed.Load() {
			continue
		}
		sub.handler(p)
	}
}
