package notify

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

// memPersist is an in-memory Persistence double recording saves.
type memPersist struct {
	mu      sync.Mutex
	records []Notification
	saves   int
}

func (p *memPersist) Save(records []Notification) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.records = append([]Notification(nil), records...)
	p.saves++
}

func (p *memPersist) Load() []Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Notification(nil), p.records...)
}

func (p *memPersist) saveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.saves
}

func newTestService(t *testing.T) (*Service, *memPersist) {
	t.Helper()
	p := &memPersist{}
	return NewService(100, p, zerolog.Nop()), p
}

func TestScenarioCriticalLifecycle(t *testing.T) {
	svc, _ := newTestService(t)

	svc.AddNotification(SeverityCritical, "Disk Full", "DB-01 disk at 95%", Options{Persist: true})
	if svc.GetUnreadCount() != 1 {
		t.Fatalf("expected 1 unread, got %d", svc.GetUnreadCount())
	}
	svc.MarkAllAsRead()
	if svc.GetUnreadCount() != 0 {
		t.Fatalf("expected 0 unread, got %d", svc.GetUnreadCount())
	}
	svc.ClearAll()
	if len(svc.GetNotifications()) != 0 {
		t.Fatalf("expected empty list after clear")
	}
}

func TestEvictionKeepsNewest(t *testing.T) {
	svc, _ := newTestService(t)
	for i := 0; i < 105; i++ {
		svc.AddNotification(SeverityInfo, fmt.Sprintf("N%d", i), "m", Options{})
	}
	list := svc.GetNotifications()
	if len(list) != 100 {
		t.Fatalf("expected 100, got %d", len(list))
	}
	if list[0].Title != "N104" || list[99].Title != "N5" {
		t.Fatalf("expected N104..N5, got %q..%q", list[0].Title, list[99].Title)
	}
}

func TestEveryMutationEmitsOneUpdated(t *testing.T) {
	svc, _ := newTestService(t)
	updates := 0
	var lastSnapshot []Notification
	svc.Bus().Subscribe(EventUpdated, func(p Payload) {
		updates++
		lastSnapshot = p.Snapshot
	})

	id := svc.AddNotification(SeverityInfo, "t", "m", Options{})
	if updates != 1 || len(lastSnapshot) != 1 {
		t.Fatalf("add: expected 1 update with 1 record, got %d/%d", updates, len(lastSnapshot))
	}
	svc.MarkAsRead(id)
	if updates != 2 {
		t.Fatalf("markAsRead: expected 2 updates, got %d", updates)
	}
	svc.MarkAllAsRead()
	if updates != 3 {
		t.Fatalf("markAllAsRead: expected 3 updates, got %d", updates)
	}
	svc.RemoveNotification(id)
	if updates != 4 || len(lastSnapshot) != 0 {
		t.Fatalf("remove: expected 4 updates with empty snapshot, got %d/%d", updates, len(lastSnapshot))
	}
	svc.ClearAll()
	if updates != 5 {
		t.Fatalf("clear: expected 5 updates, got %d", updates)
	}
}

func TestNewEmittedBeforeUpdated(t *testing.T) {
	svc, _ := newTestService(t)
	var order []Event
	svc.Bus().Subscribe(EventNew, func(Payload) { order = append(order, EventNew) })
	svc.Bus().Subscribe(EventUpdated, func(Payload) { order = append(order, EventUpdated) })

	svc.AddNotification(SeverityInfo, "t", "m", Options{})
	if len(order) != 2 || order[0] != EventNew || order[1] != EventUpdated {
		t.Fatalf("expected new then updated, got %v", order)
	}
}

func TestMarkAsReadIdempotentNoSecondReadEvent(t *testing.T) {
	svc, _ := newTestService(t)
	reads := 0
	svc.Bus().Subscribe(EventRead, func(Payload) { reads++ })

	id := svc.AddNotification(SeverityInfo, "t", "m", Options{})
	svc.MarkAsRead(id)
	svc.MarkAsRead(id)
	svc.MarkAsRead("absent")
	if reads != 1 {
		t.Fatalf("expected exactly 1 read event, got %d", reads)
	}
	if svc.GetUnreadCount() != 0 {
		t.Fatalf("expected 0 unread")
	}
}

func TestPersistAsymmetry(t *testing.T) {
	svc, p := newTestService(t)

	svc.AddNotification(SeverityInfo, "t", "m", Options{})
	if p.saveCount() != 0 {
		t.Fatalf("add without persist must not save, got %d saves", p.saveCount())
	}
	id := svc.AddNotification(SeverityInfo, "t2", "m", Options{Persist: true})
	if p.saveCount() != 1 {
		t.Fatalf("add with persist must save once, got %d", p.saveCount())
	}
	// Subsequent mutations persist unconditionally.
	svc.MarkAsRead(id)
	svc.RemoveNotification(id)
	svc.ClearAll()
	if p.saveCount() != 4 {
		t.Fatalf("expected 4 saves, got %d", p.saveCount())
	}
}

func TestDurationExpiresNotification(t *testing.T) {
	svc, _ := newTestService(t)
	svc.AddNotification(SeverityInfo, "fleeting", "m", Options{Duration: 20 * time.Millisecond})
	if len(svc.GetNotifications()) != 1 {
		t.Fatalf("expected record before expiry")
	}
	deadline := time.Now().Add(2 * time.Second)
	for len(svc.GetNotifications()) != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("record not expired in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestExpiryAfterManualRemoveIsHarmless(t *testing.T) {
	svc, _ := newTestService(t)
	id := svc.AddNotification(SeverityInfo, "t", "m", Options{Duration: 20 * time.Millisecond})
	svc.RemoveNotification(id)
	time.Sleep(60 * time.Millisecond)
	if len(svc.GetNotifications()) != 0 {
		t.Fatalf("expected empty list")
	}
}

func TestIngestServerEventDefaults(t *testing.T) {
	svc, p := newTestService(t)
	svc.IngestServerEvent(ServerEvent{Severity: "bogus", Title: "X", Message: "Y"})

	list := svc.GetNotifications()
	if len(list) != 1 {
		t.Fatalf("expected 1 record")
	}
	n := list[0]
	if n.Type != SeverityInfo {
		t.Fatalf("unknown severity must map to info, got %s", n.Type)
	}
	if n.Title != "X" || n.Message != "Y" {
		t.Fatalf("title/message lost: %+v", n)
	}
	if n.ExpiresAt == nil {
		t.Fatalf("server events default to a 10s duration")
	}
	if p.saveCount() != 1 {
		t.Fatalf("server events force persistence, got %d saves", p.saveCount())
	}
}

func TestIngestServerEventAlertMapping(t *testing.T) {
	svc, _ := newTestService(t)
	svc.IngestServerEvent(ServerEvent{Severity: "critical", Message: "Alta utilização de CPU detectada", Server: "Web-01"})

	n := svc.GetNotifications()[0]
	if n.Type != SeverityCritical {
		t.Fatalf("expected critical, got %s", n.Type)
	}
	if n.Title != "System Alert" {
		t.Fatalf("expected default title, got %q", n.Title)
	}
	if n.Metadata["server"] != "Web-01" {
		t.Fatalf("expected server on metadata, got %v", n.Metadata)
	}
}

func TestRestoreFromPersistence(t *testing.T) {
	p := &memPersist{}
	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)
	p.records = []Notification{
		{ID: "1", Title: "live", Timestamp: time.Now(), ExpiresAt: &future},
		{ID: "2", Title: "stale", Timestamp: time.Now().Add(-2 * time.Minute), ExpiresAt: &past},
		{ID: "3", Title: "plain", Timestamp: time.Now()},
	}

	svc := NewService(100, p, zerolog.Nop())
	list := svc.GetNotifications()
	if len(list) != 2 {
		t.Fatalf("expected stale record dropped at load, got %d records", len(list))
	}
	if list[0].Title != "live" || list[1].Title != "plain" {
		t.Fatalf("restore order lost: %q, %q", list[0].Title, list[1].Title)
	}
}
