package monitorsvc

import "time"

// MetricsSample is one synthetic real-time metrics observation pushed over
// the delivery channel.
type MetricsSample struct {
	Timestamp         time.Time `json:"timestamp"`
	CPU               float64   `json:"cpu"`
	Memory            float64   `json:"memory"`
	Disk              float64   `json:"disk"`
	NetworkIn         float64   `json:"networkIn"`
	NetworkOut        float64   `json:"networkOut"`
	ActiveConnections int       `json:"activeConnections"`
}

// Alert is an occasional synthetic alert event pushed over the delivery
// channel and ingested by the notification service.
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"` // warning | critical
	Message   string    `json:"message"`
	Server    string    `json:"server"`
	Timestamp time.Time `json:"timestamp"`
}

// Server describes one monitored host in the demo fleet.
type Server struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	IP         string    `json:"ip"`
	Status     string    `json:"status"` // online | warning | offline
	CPU        float64   `json:"cpu"`
	Memory     float64   `json:"memory"`
	Disk       float64   `json:"disk"`
	Latency    float64   `json:"latency"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// Stats aggregates service counters for the stats endpoint.
type Stats struct {
	ServersOnline       int    `json:"serversOnline"`
	ServersWarning      int    `json:"serversWarning"`
	ServersOffline      int    `json:"serversOffline"`
	SamplesEmitted      uint64 `json:"samplesEmitted"`
	AlertsEmitted       uint64 `json:"alertsEmitted"`
	UnreadNotifications int    `json:"unreadNotifications"`
	UptimeSeconds       int64  `json:"uptimeSeconds"`
}
