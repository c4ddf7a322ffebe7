package notify

import (
	"time"
)

// Severity classifies a notification by urgency. Critical is treated as the
// highest severity and is never auto-dismissed by the UI layer.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeveritySuccess  Severity = "success"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// ParseSeverity maps a raw severity string to a Severity. Unknown values map
// to SeverityInfo rather than failing.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityInfo, SeveritySuccess, SeverityWarning, SeverityError, SeverityCritical:
		return Severity(s)
	default:
		return SeverityInfo
	}
}

// Action is an optional UI affordance attached to a notification. It is owned
// by the consuming layer and never persisted.
type Action struct {
	Label  string
	Invoke func()
}

// Notification is a discrete, severity-classified user-facing event record
// with read/unread state.
type Notification struct {
	ID        string         `json:"id"`
	Type      Severity       `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Read      bool           `json:"read"`
	Action    *Action        `json:"-"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	ExpiresAt *time.Time     `json:"expiresAt,omitempty"`
}

// clone returns a value copy safe to hand out: the metadata map is copied so
// callers can never alias store internals.
func (n Notification) clone() Notification {
	out := n
	if n.Metadata != nil {
		m := make(map[string]any, len(n.Metadata))
		for k, v := range n.Metadata {
			m[k] = v
		}
		out.Metadata = m
	}
	if n.ExpiresAt != nil {
		t := *n.ExpiresAt
		out.ExpiresAt = &t
	}
	return out
}

// Options tune a single AddNotification call.
type Options struct {
	// Duration schedules automatic removal after it elapses. Zero disables.
	Duration time.Duration
	// Persist writes the store through to durable storage on this add.
	Persist bool
	// Priority is an advisory 1-10 hint carried on the record's metadata.
	Priority int
	// Metadata is an open diagnostic payload, persisted with the record.
	Metadata map[string]any
	// Action attaches a UI callback; never persisted.
	Action *Action
}
