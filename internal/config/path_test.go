package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDataDirXDGOverride(t *testing.T) {
	originalXDG := os.Getenv("XDG_DATA_HOME")
	t.Cleanup(func() {
		if originalXDG != "" {
			os.Setenv("XDG_DATA_HOME", originalXDG)
		} else {
			os.Unsetenv("XDG_DATA_HOME")
		}
	})

	os.Setenv("XDG_DATA_HOME", "/custom/data")
	if got := DefaultDataDir(); got != "/custom/data/insightui" {
		t.Fatalf("expected /custom/data/insightui, got %s", got)
	}
}

func TestDefaultDataDirNoHome(t *testing.T) {
	originalHome := os.Getenv("HOME")
	os.Unsetenv("HOME")
	t.Cleanup(func() {
		if originalHome != "" {
			os.Setenv("HOME", originalHome)
		}
	})

	result := DefaultDataDir()
	if result == "" {
		t.Fatal("expected non-empty result even when HOME is not set")
	}
}

func TestDefaultDataDirConsistency(t *testing.T) {
	if DefaultDataDir() != DefaultDataDir() {
		t.Fatal("DefaultDataDir should be consistent across calls")
	}
}

func TestIsDir(t *testing.T) {
	if !isDir(".") {
		t.Fatal("current directory should be a dir")
	}
	if isDir(filepath.Join("/non", "existent", "path")) {
		t.Fatal("missing path is not a dir")
	}
}
