package controllers

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/FelipeFreitasRossi/InsightUI/internal/runtime"
)

// ControllerRegistry manages all HTTP controllers.
//
// It provides a centralized way to register all controller routes
// and manages the lifecycle of individual controllers.
type ControllerRegistry struct {
	general       *GeneralController
	monitor       *MonitorController
	notifications *NotificationsController
	events        *EventsController
	export        *ExportController
}

// NewControllerRegistry creates a new controller registry.
//
// It initializes all controllers with the provided runtime.
func NewControllerRegistry(rt *runtime.Runtime, log zerolog.Logger) *ControllerRegistry {
	return &ControllerRegistry{
		general:       NewGeneralController(rt),
		monitor:       NewMonitorController(rt),
		notifications: NewNotificationsController(rt, log.With().Str("component", "notifications").Logger()),
		events:        NewEventsController(rt, log.With().Str("component", "events").Logger()),
		export:        NewExportController(rt),
	}
}

// RegisterAllRoutes registers all controller routes with the given mux.
//
// This method sets up all HTTP endpoints for the dashboard service:
// general endpoints (health, stats), monitor endpoints (servers, metric
// history), the notification API and feed, the SSE delivery channel, and
// the export surface.
func (r *ControllerRegistry) RegisterAllRoutes(mux *http.ServeMux) {
	r.general.RegisterRoutes(mux)
	r.monitor.RegisterRoutes(mux)
	r.notifications.RegisterRoutes(mux)
	r.events.RegisterRoutes(mux)
	r.export.RegisterRoutes(mux)
}
