package controllers

import (
	"net/http"

	"github.com/FelipeFreitasRossi/InsightUI/internal/runtime"
)

// MonitorController handles the monitor read endpoints: the server fleet and
// the hourly metric history.
type MonitorController struct {
	rt *runtime.Runtime
}

// NewMonitorController creates a new monitor controller.
func NewMonitorController(rt *runtime.Runtime) *MonitorController {
	return &MonitorController{rt: rt}
}

// RegisterRoutes registers monitor routes with the given mux.
func (c *MonitorController) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/servers", c.handleServers)
	mux.HandleFunc("/api/metrics/history", c.handleHistory)
}

// handleServers returns the ordered server fleet with current utilization.
func (c *MonitorController) handleServers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, c.rt.Monitor().Servers())
}

// handleHistory returns hourly samples for the trailing window, oldest
// first. The hours query defaults to the retention window.
func (c *MonitorController) handleHistory(w http.ResponseWriter, r *http.Request) {
	hours := parseHours(r.URL.Query().Get("hours"))
	writeJSON(w, c.rt.Monitor().History(hours))
}
