package controllers

import (
	"net/http"
	"time"

	"github.com/FelipeFreitasRossi/InsightUI/internal/runtime"
)

// Version is the reported service version.
const Version = "1.0.0"

// GeneralController handles general HTTP endpoints like health and stats.
type GeneralController struct {
	rt      *runtime.Runtime
	started time.Time
}

// NewGeneralController creates a new general controller.
func NewGeneralController(rt *runtime.Runtime) *GeneralController {
	return &GeneralController{rt: rt, started: time.Now()}
}

// RegisterRoutes registers general routes with the given mux.
func (c *GeneralController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/health", c.handleHealth)
	mux.HandleFunc("/api/stats", c.handleStats)
}

// handleHealth returns the health status of the service.
//
// Returns 200 OK with a status descriptor if healthy, 503 Service
// Unavailable otherwise.
func (c *GeneralController) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.rt.CheckHealth(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_serving")
		return
	}
	writeJSON(w, map[string]any{
		"status":  "ok",
		"version": Version,
		"uptime":  int64(time.Since(c.started).Seconds()),
	})
}

// handleStats returns aggregate service counters.
func (c *GeneralController) handleStats(w http.ResponseWriter, r *http.Request) {
	unread := c.rt.Notifications().GetUnreadCount()
	writeJSON(w, c.rt.Monitor().Stats(unread))
}
