package notify

import (
	"time"

	"github.com/rs/zerolog"
)

// defaultServerEventDuration is applied to server-originated events that do
// not carry their own display duration.
const defaultServerEventDuration = 10 * time.Second

// defaultServerEventTitle labels alerts arriving without a title.
const defaultServerEventTitle = "System Alert"

// Service is the composition root of the notification core. It owns one
// Store, one Bus, and one Persistence adapter for the process lifetime, and
// is the only writer of the store.
type Service struct {
	log     zerolog.Logger
	store   *Store
	bus     *Bus
	persist Persistence
}

// NewService wires the store, bus, and persistence adapter, then restores the
// collection from the persistence slot. Restored records whose expiry already
// passed are dropped; future expiries are re-armed as one-shot timers.
func NewService(max int, persist Persistence, log zerolog.Logger) *Service {
	s := &Service{
		log:     log,
		store:   NewStore(max),
		bus:     NewBus(),
		persist: persist,
	}

	now := time.Now()
	restored := persist.Load()
	kept := restored[:0]
	for _, n := range restored {
		if n.ExpiresAt != nil && !n.ExpiresAt.After(now) {
			continue
		}
		kept = append(kept, n)
	}
	s.store.Seed(kept)
	for _, n := range kept {
		if n.ExpiresAt != nil {
			s.armExpiry(n.ID, time.Until(*n.ExpiresAt))
		}
	}
	if len(kept) > 0 {
		s.log.Debug().Int("count", len(kept)).Msg("restored notifications")
	}
	return s
}

// Bus exposes the event bus for subscribers.
func (s *Service) Bus() *Bus { return s.bus }

// AddNotification creates a record and returns its id. When opts.Persist is
// set the full list is written through to the persistence slot. Emits
// EventNew then EventUpdated. When opts.Duration is set, removal is scheduled
// after it elapses; removal is idempotent, so no cancellation bookkeeping is
// kept for records removed earlier through another path.
func (s *Service) AddNotification(typ Severity, title, message string, opts Options) string {
	n := s.store.Add(typ, title, message, opts)
	if opts.Persist {
		s.persist.Save(s.store.List())
	}
	s.bus.Emit(EventNew, Payload{Notification: n})
	s.bus.Emit(EventUpdated, Payload{Snapshot: s.store.List()})
	if opts.Duration > 0 {
		s.armExpiry(n.ID, opts.Duration)
	}
	return n.ID
}

func (s *Service) armExpiry(id string, after time.Duration) {
	if after <= 0 {
		after = time.Nanosecond
	}
	time.AfterFunc(after, func() { s.RemoveNotification(id) })
}

// RemoveNotification deletes the record, persists the current truth, and
// emits EventUpdated. Removing an absent id is a no-op mutation but still
// persists and emits, matching the store's idempotent removal contract.
func (s *Service) RemoveNotification(id string) {
	s.store.Remove(id)
	s.persist.Save(s.store.List())
	s.bus.Emit(EventUpdated, Payload{Snapshot: s.store.List()})
}

// MarkAsRead transitions the record to read. On a real transition it
// persists and emits EventRead then EventUpdated; absent or already-read ids
// are no-ops with no emission.
func (s *Service) MarkAsRead(id string) {
	n, ok := s.store.MarkRead(id)
	if !ok {
		return
	}
	s.persist.Save(s.store.List())
	s.bus.Emit(EventRead, Payload{Notification: n})
	s.bus.Emit(EventUpdated, Payload{Snapshot: s.store.List()})
}

// MarkAllAsRead marks every unread record read, persists, and emits
// EventUpdated.
func (s *Service) MarkAllAsRead() {
	s.store.MarkAllRead()
	s.persist.Save(s.store.List())
	s.bus.Emit(EventUpdated, Payload{Snapshot: s.store.List()})
}

// ClearAll empties the collection, persists, and emits EventUpdated.
func (s *Service) ClearAll() {
	s.store.Clear()
	s.persist.Save(s.store.List())
	s.bus.Emit(EventUpdated, Payload{Snapshot: s.store.List()})
}

// GetUnreadCount returns the number of unread records.
func (s *Service) GetUnreadCount() int { return s.store.UnreadCount() }

// GetNotifications returns a snapshot of the collection, newest first.
func (s *Service) GetNotifications() []Notification { return s.store.List() }

// ServerEvent is an externally delivered alert/notification payload from the
// delivery channel.
type ServerEvent struct {
	ID         string `json:"id"`
	Severity   string `json:"severity"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Server     string `json:"server"`
	DurationMs int64  `json:"duration,omitempty"`
}

// IngestServerEvent maps a server-originated event into AddNotification.
// Unknown severities default to info, the title defaults to "System Alert",
// the duration defaults to 10s, and persistence is forced on.
func (s *Service) IngestServerEvent(ev ServerEvent) string {
	title := ev.Title
	if title == "" {
		title = defaultServerEventTitle
	}
	duration := defaultServerEventDuration
	if ev.DurationMs > 0 {
		duration = time.Duration(ev.DurationMs) * time.Millisecond
	}
	var meta map[string]any
	if ev.Server != "" {
		meta = map[string]any{"server": ev.Server}
	}
	return s.AddNotification(ParseSeverity(ev.Severity), title, ev.Message, Options{
		Duration: duration,
		Persist:  true,
		Metadata: meta,
	})
}
