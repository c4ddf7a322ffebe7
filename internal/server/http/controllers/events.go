package controllers

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/FelipeFreitasRossi/InsightUI/internal/notify"
	"github.com/FelipeFreitasRossi/InsightUI/internal/runtime"
)

// EventsController implements the push delivery channel: a long-lived SSE
// connection carrying synthetic metric samples every tick and occasional
// alert events. Alerts pushed to a client are also ingested into the
// notification service, so the notification panel and the live channel stay
// in sync.
type EventsController struct {
	rt  *runtime.Runtime
	log zerolog.Logger
}

// NewEventsController creates a new events controller.
func NewEventsController(rt *runtime.Runtime, log zerolog.Logger) *EventsController {
	return &EventsController{rt: rt, log: log}
}

// RegisterRoutes registers the delivery channel route with the given mux.
func (c *EventsController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/events", c.handleEventsSSE)
}

// handleEventsSSE runs one per-connection ticker. Each tick pushes a
// "metrics" event; with the configured probability it also pushes an
// "alert" event and feeds it into the notification service. Disconnecting
// stops the ticker.
func (c *EventsController) handleEventsSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	sse, ok := newSSEWriter(w)
	if !ok {
		writeError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	mon := c.rt.Monitor()
	c.log.Debug().Msg("client connected")
	defer c.log.Debug().Msg("client disconnected")

	ticker := time.NewTicker(mon.Interval())
	defer ticker.Stop()

	// first sample immediately so dashboards paint without waiting a tick
	if err := sse.Send("metrics", mon.Sample()); err != nil {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := sse.Send("metrics", mon.Sample()); err != nil {
				return
			}
			alert, fired := mon.MaybeAlert()
			if !fired {
				continue
			}
			c.rt.Notifications().IngestServerEvent(notify.ServerEvent{
				ID:       alert.ID,
				Severity: alert.Type,
				Message:  alert.Message,
				Server:   alert.Server,
			})
			if err := sse.Send("alert", alert); err != nil {
				return
			}
		}
	}
}
