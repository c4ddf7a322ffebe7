package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	HTTPAddr         string        `json:"httpAddr" yaml:"httpAddr"`
	LogLevel         string        `json:"logLevel" yaml:"logLevel"`
	LogFormat        string        `json:"logFormat" yaml:"logFormat"`
	Notifications    Notifications `json:"notifications" yaml:"notifications"`
	Monitor          Monitor       `json:"monitor" yaml:"monitor"`
	HistoryRetention int           `json:"historyRetentionHours" yaml:"historyRetentionHours"`
}

// Notifications captures the notification core limits.
type Notifications struct {
	MaxNotifications int    `json:"maxNotifications" yaml:"maxNotifications"`
	StorageSlot      string `json:"storageSlot" yaml:"storageSlot"`
}

// Monitor captures the synthetic monitor tunables.
type Monitor struct {
	PushIntervalMs   int     `json:"pushIntervalMs" yaml:"pushIntervalMs"`
	AlertProbability float64 `json:"alertProbability" yaml:"alertProbability"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		HTTPAddr:  ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		Notifications: Notifications{
			MaxNotifications: 100,
			StorageSlot:      "dashboard_notifications",
		},
		Monitor: Monitor{
			PushIntervalMs:   2000,
			AlertProbability: 0.1,
		},
		HistoryRetention: 24,
	}
}

// Load reads configuration from a JSON or YAML file (by extension). If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return cfg, nil
}
