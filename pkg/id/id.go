package id

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Generator produces unique, chronologically distinguishable string IDs.
type Generator struct {
	mu     sync.Mutex
	lastMs int64
}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator { return &Generator{} }

// NowMs returns current time in milliseconds since Unix epoch.
var NowMs = func() int64 { return time.Now().UnixMilli() }

// Next returns a new ID of the form "{unix_ms}-{random}". The millisecond
// component never regresses within a process, so IDs remain distinguishable
// by creation order; the random suffix rules out collisions for IDs minted
// within the same millisecond.
func (g *Generator) Next() string {
	g.mu.Lock()
	ms := NowMs()
	if ms < g.lastMs {
		ms = g.lastMs
	}
	g.lastMs = ms
	g.mu.Unlock()

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return strconv.FormatInt(ms, 10) + "-" + suffix
}

// Millis extracts the millisecond component of an ID. Returns 0 when the ID
// is not in the generated format.
func Millis(id string) int64 {
	i := strings.IndexByte(id, '-')
	if i <= 0 {
		return 0
	}
	ms, err := strconv.ParseInt(id[:i], 10, 64)
	if err != nil {
		return 0
	}
	return ms
}
