package history

import (
	"encoding/json"
	"time"

	"github.com/cockroachdb/pebble"
	"github.com/rs/zerolog"

	pebblestore "github.com/FelipeFreitasRossi/InsightUI/internal/storage/pebble"
)

// Sample is one hourly metric observation.
type Sample struct {
	Time       time.Time `json:"time"`
	CPU        float64   `json:"cpu"`
	Memory     float64   `json:"memory"`
	NetworkIn  float64   `json:"networkIn"`
	NetworkOut float64   `json:"networkOut"`
}

// Log is an append-only hourly sample log persisted in Pebble. Keys carry a
// big-endian millisecond timestamp so range scans return samples in time
// order.
type Log struct {
	db  *pebblestore.DB
	log zerolog.Logger
}

// Open binds a Log to the store.
func Open(db *pebblestore.DB, log zerolog.Logger) *Log {
	return &Log{db: db, log: log}
}

// Append records a sample keyed by its timestamp. Errors are returned so the
// recorder can decide; the monitor treats them as best-effort and logs.
func (l *Log) Append(s Sample) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return l.db.Set(KeySample(s.Time.UnixMilli()), b)
}

// Scan returns samples with timestamps in [from, to), oldest first.
// Undecodable entries are skipped and logged.
func (l *Log) Scan(from, to time.Time) ([]Sample, error) {
	lower, upper := SampleBounds(from.UnixMilli(), to.UnixMilli())
	it, err := l.db.NewIter(&pebble.IterOptions{LowerBound: lower, UpperBound: upper})
	if err != nil {
		return nil, err
	}
	defer it.Close()

	var out []Sample
	for it.First(); it.Valid(); it.Next() {
		var s Sample
		if err := json.Unmarshal(it.Value(), &s); err != nil {
			l.log.Warn().Err(err).Int64("ms", SampleMs(it.Key())).Msg("skipping undecodable sample")
			continue
		}
		out = append(out, s)
	}
	return out, it.Error()
}

// TrimOlderThan removes all samples before cutoff.
func (l *Log) TrimOlderThan(cutoff time.Time) error {
	lower, upper := SampleBounds(0, cutoff.UnixMilli())
	return l.db.DeleteRange(lower, upper)
}
