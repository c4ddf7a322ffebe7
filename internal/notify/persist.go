package notify

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog"

	pebblestore "github.com/FelipeFreitasRossi/InsightUI/internal/storage/pebble"
)

// Persistence is the best-effort durability contract for the notification
// list. Save failures are absorbed by implementations: the in-memory store
// stays authoritative even when durable storage is unavailable.
type Persistence interface {
	Save(records []Notification)
	Load() []Notification
}

const slotPrefix = "notify/slot/"

// Slot persists the notification list as one JSON-encoded value under a
// named key in the Pebble store. Instants serialize as RFC 3339 strings via
// encoding/json; the Action field has no JSON mapping and is never restored.
type Slot struct {
	db   *pebblestore.DB
	key  []byte
	log  zerolog.Logger
	name string
}

// NewSlot creates a Slot bound to the named storage slot.
func NewSlot(db *pebblestore.DB, name string, log zerolog.Logger) *Slot {
	return &Slot{
		db:   db,
		key:  []byte(slotPrefix + name),
		log:  log,
		name: name,
	}
}

// Save serializes records into the slot. I/O failures are logged and
// swallowed.
func (s *Slot) Save(records []Notification) {
	b, err := json.Marshal(records)
	if err != nil {
		s.log.Error().Err(err).Str("slot", s.name).Msg("failed to save notifications")
		return
	}
	if err := s.db.Set(s.key, b); err != nil {
		s.log.Error().Err(err).Str("slot", s.name).Msg("failed to save notifications")
	}
}

// Load reads and deserializes the slot. A missing slot yields nil; parse or
// I/O failures are logged and yield nil (fail-open).
func (s *Slot) Load() []Notification {
	b, err := s.db.Get(s.key)
	if err != nil {
		if !errors.Is(err, pebblestore.ErrNotFound) {
			s.log.Error().Err(err).Str("slot", s.name).Msg("failed to load notifications")
		}
		return nil
	}
	var records []Notification
	if err := json.Unmarshal(b, &records); err != nil {
		s.log.Error().Err(err).Str("slot", s.name).Msg("failed to load notifications")
		return nil
	}
	return records
}
