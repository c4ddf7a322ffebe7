package controllers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/FelipeFreitasRossi/InsightUI/internal/notify"
	"github.com/FelipeFreitasRossi/InsightUI/internal/runtime"
)

// NotificationsController exposes the notification service: snapshot reads,
// mutations, and the live SSE feed.
type NotificationsController struct {
	rt  *runtime.Runtime
	log zerolog.Logger
}

// NewNotificationsController creates a new notifications controller.
func NewNotificationsController(rt *runtime.Runtime, log zerolog.Logger) *NotificationsController {
	return &NotificationsController{rt: rt, log: log}
}

// RegisterRoutes registers notification routes with the given mux.
func (c *NotificationsController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/notifications", c.handleNotifications)
	mux.HandleFunc("/api/notifications/unread-count", c.handleUnreadCount)
	mux.HandleFunc("/api/notifications/read", c.handleMarkRead)
	mux.HandleFunc("/api/notifications/read-all", c.handleMarkAllRead)
	mux.HandleFunc("/api/notifications/remove", c.handleRemove)
	mux.HandleFunc("/api/notifications/clear", c.handleClear)
	mux.HandleFunc("/api/notifications/subscribe", c.handleSubscribeSSE)
}

type addNotificationReq struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Message    string         `json:"message"`
	DurationMs int64          `json:"duration_ms,omitempty"`
	Persist    bool           `json:"persist,omitempty"`
	Priority   int            `json:"priority,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

type idReq struct {
	ID string `json:"id"`
}

// handleNotifications lists the current snapshot (GET, with an optional CEL
// filter query) or creates a notification (POST).
func (c *NotificationsController) handleNotifications(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		filter, err := notify.NewFilter(r.URL.Query().Get("filter"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid filter expression")
			return
		}
		list := c.rt.Notifications().GetNotifications()
		out := make([]notify.Notification, 0, len(list))
		for _, n := range list {
			if filter.Match(n) {
				out = append(out, n)
			}
		}
		writeJSON(w, out)
	case http.MethodPost:
		var req addNotificationReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		id := c.rt.Notifications().AddNotification(
			notify.ParseSeverity(req.Type), req.Title, req.Message,
			notify.Options{
				Duration: time.Duration(req.DurationMs) * time.Millisecond,
				Persist:  req.Persist,
				Priority: req.Priority,
				Metadata: req.Metadata,
			})
		writeCreated(w, map[string]string{"id": id})
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleUnreadCount returns the unread counter.
func (c *NotificationsController) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]int{"count": c.rt.Notifications().GetUnreadCount()})
}

// handleMarkRead marks one notification read. Idempotent: absent or
// already-read ids still return 204.
func (c *NotificationsController) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, ok := c.decodeID(w, r)
	if !ok {
		return
	}
	c.rt.Notifications().MarkAsRead(id)
	writeNoContent(w)
}

// handleMarkAllRead marks every notification read.
func (c *NotificationsController) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	c.rt.Notifications().MarkAllAsRead()
	writeNoContent(w)
}

// handleRemove removes one notification. Idempotent.
func (c *NotificationsController) handleRemove(w http.ResponseWriter, r *http.Request) {
	id, ok := c.decodeID(w, r)
	if !ok {
		return
	}
	c.rt.Notifications().RemoveNotification(id)
	writeNoContent(w)
}

// handleClear empties the collection.
func (c *NotificationsController) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	c.rt.Notifications().ClearAll()
	writeNoContent(w)
}

func (c *NotificationsController) decodeID(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return "", false
	}
	var req idReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	return req.ID, true
}

// feedItem bridges a bus emission into the SSE goroutine.
type feedItem struct {
	event notify.Event
	p     notify.Payload
}

// handleSubscribeSSE streams bus events to the client: "notification" for
// new records passing the optional CEL filter, "updated" with the filtered
// snapshot after every mutation. Slow clients drop events rather than stall
// the emitting goroutine.
func (c *NotificationsController) handleSubscribeSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	filter, err := notify.NewFilter(r.URL.Query().Get("filter"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid filter expression")
		return
	}
	sse, ok := newSSEWriter(w)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	items := make(chan feedItem, 16)
	forward := func(ev notify.Event) notify.Handler {
		return func(p notify.Payload) {
			select {
			case items <- feedItem{event: ev, p: p}:
			default:
				// slow client; drop rather than block the service
			}
		}
	}
	subNew := c.rt.Notifications().Bus().Subscribe(notify.EventNew, forward(notify.EventNew))
	subUpd := c.rt.Notifications().Bus().Subscribe(notify.EventUpdated, forward(notify.EventUpdated))
	defer subNew.Unsubscribe()
	defer subUpd.Unsubscribe()

	// initial snapshot so the panel can render without waiting for a mutation
	if err := sse.Send("updated", filterSnapshot(filter, c.rt.Notifications().GetNotifications())); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case it := <-items:
			switch it.event {
			case notify.EventNew:
				if !filter.Match(it.p.Notification) {
					continue
				}
				if err := sse.Send("notification", it.p.Notification); err != nil {
					return
				}
			case notify.EventUpdated:
				if err := sse.Send("updated", filterSnapshot(filter, it.p.Snapshot)); err != nil {
					return
				}
			}
		}
	}
}

func filterSnapshot(f notify.Filter, list []notify.Notification) []notify.Notification {
	out := make([]notify.Notification, 0, len(list))
	for _, n := range list {
		if f.Match(n) {
			out = append(out, n)
		}
	}
	return out
}
