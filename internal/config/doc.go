// Package config provides loading and environment overlay for the InsightUI
// server configuration. It exposes a Default() baseline, file loading from
// JSON or YAML by extension, and an INSIGHTUI_* env overlay.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("/etc/insightui.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config
