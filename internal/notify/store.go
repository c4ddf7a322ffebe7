package notify

import (
	"sync"
	"time"

	"github.com/FelipeFreitasRossi/InsightUI/pkg/id"
)

// DefaultMaxNotifications bounds the store when no explicit cap is given.
const DefaultMaxNotifications = 100

// Store maintains the ordered, capacity-bounded notification collection.
// Records are ordered newest-first; when the cap is exceeded the oldest
// (tail) entries are dropped. All mutations go through the Service, which
// keeps single-writer discipline; the mutex makes reads safe from HTTP
// handler goroutines.
type Store struct {
	mu      sync.Mutex
	records []*Notification
	max     int
	ids     *id.Generator
	now     func() time.Time
}

// NewStore creates a Store bounded to max entries. A non-positive max falls
// back to DefaultMaxNotifications.
func NewStore(max int) *Store {
	if max <= 0 {
		max = DefaultMaxNotifications
	}
	return &Store{
		max: max,
		ids: id.NewGenerator(),
		now: time.Now,
	}
}

// Add constructs a record, inserts it at the head, evicts beyond the cap,
// and returns a copy of the new record.
func (s *Store) Add(typ Severity, title, message string, opts Options) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := &Notification{
		ID:        s.ids.Next(),
		Type:      typ,
		Title:     title,
		Message:   message,
		Timestamp: s.now(),
		Metadata:  opts.Metadata,
		Action:    opts.Action,
	}
	if opts.Duration > 0 {
		exp := n.Timestamp.Add(opts.Duration)
		n.ExpiresAt = &exp
	}
	if opts.Priority > 0 {
		if n.Metadata == nil {
			n.Metadata = map[string]any{}
		}
		n.Metadata["priority"] = opts.Priority
	}

	s.records = append([]*Notification{n}, s.records...)
	if len(s.records) > s.max {
		s.records = s.records[:s.max]
	}
	return n.clone()
}

// Seed replaces the collection with records restored from persistence,
// preserving their order and applying the cap. Only used at construction.
func (s *Store) Seed(records []Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = s.records[:0]
	for i := range records {
		if len(s.records) >= s.max {
			break
		}
		n := records[i]
		s.records = append(s.records, &n)
	}
}

// Remove filters the id out. Removing an absent id is a no-op; the return
// reports whether a record was actually removed.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.records {
		if n.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// MarkRead sets read=true on the record if present and unread. It returns the
// record and whether a transition occurred; absent or already-read ids are
// no-ops.
func (s *Store) MarkRead(id string) (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.records {
		if n.ID == id {
			if n.Read {
				return Notification{}, false
			}
			n.Read = true
			return n.clone(), true
		}
	}
	return Notification{}, false
}

// MarkAllRead sets read=true on every unread record in one pass.
func (s *Store) MarkAllRead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.records {
		if !n.Read {
			n.Read = true
		}
	}
}

// Clear empties the collection unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
}

// UnreadCount returns the number of unread records.
func (s *Store) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, n := range s.records {
		if !n.Read {
			count++
		}
	}
	return count
}

// List returns a snapshot copy of the collection, newest first. Mutating the
// returned slice or its records does not affect store state.
func (s *Store) List() []Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Notification, 0, len(s.records))
	for _, n := range s.records {
		out = append(out, n.clone())
	}
	return out
}

// Len returns the current number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
