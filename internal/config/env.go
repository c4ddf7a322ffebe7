package config

import (
	"os"
	"strconv"
)

// FromEnv overlays INSIGHTUI_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("INSIGHTUI_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("INSIGHTUI_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("INSIGHTUI_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("INSIGHTUI_MAX_NOTIFICATIONS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Notifications.MaxNotifications = n
		}
	}
	if v := os.Getenv("INSIGHTUI_STORAGE_SLOT"); v != "" {
		cfg.Notifications.StorageSlot = v
	}
	if v := os.Getenv("INSIGHTUI_PUSH_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Monitor.PushIntervalMs = n
		}
	}
	if v := os.Getenv("INSIGHTUI_ALERT_PROBABILITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.Monitor.AlertProbability = f
		}
	}
	if v := os.Getenv("INSIGHTUI_HISTORY_RETENTION_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryRetention = n
		}
	}
}
