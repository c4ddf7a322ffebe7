package client

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNotifyAdd_PrintsID(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/notifications" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]string{"id": "1735689600000-a1b2c3d4e"})
	}))
	defer srv.Close()

	cmd := newNotifyAddCommand(func() string { return srv.URL })
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--type", "warning", "--title", "Disk", "--message", "Disk usage high", "--persist"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), "id: 1735689600000-a1b2c3d4e") {
		t.Fatalf("expected id in output, got: %s", buf.String())
	}
	if got["type"] != "warning" || got["persist"] != true {
		t.Fatalf("request body: %+v", got)
	}
}

func TestNotifyList_FilterQueryForwarded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filter"); got != `severity == "error"` {
			t.Errorf("filter query: %q", got)
		}
		_ = json.NewEncoder(w).Encode([]map[string]any{{"id": "a", "title": "Boom"}})
	}))
	defer srv.Close()

	cmd := newNotifyListCommand(func() string { return srv.URL })
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--filter", `severity == "error"`})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(buf.String(), "Boom") {
		t.Fatalf("expected listing in output, got: %s", buf.String())
	}
}

func TestNotifyClear_RequiresConfirm(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cmd := newNotifyClearCommand(func() string { return srv.URL })
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error without --confirm")
	}
	if called {
		t.Fatal("server should not be called without --confirm")
	}

	cmd = newNotifyClearCommand(func() string { return srv.URL })
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--confirm"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !called {
		t.Fatal("expected clear request")
	}
}

func TestNotifyWatch_PrintsFrames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("event: updated\ndata: []\n\n"))
		_, _ = w.Write([]byte("event: notification\ndata: {\"id\":\"a\",\"title\":\"Boom\"}\n\n"))
	}))
	defer srv.Close()

	cmd := newNotifyWatchCommand(func() string { return srv.URL })
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, `"event":"updated"`) || !strings.Contains(out, "Boom") {
		t.Fatalf("expected both frames, got: %s", out)
	}
}

func TestMonitorWatch_AlertsOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		_, _ = w.Write([]byte("event: metrics\ndata: {\"cpu\":50}\n\n"))
		_, _ = w.Write([]byte("event: alert\ndata: {\"severity\":\"warning\"}\n\n"))
	}))
	defer srv.Close()

	cmd := newMonitorWatchCommand(func() string { return srv.URL })
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"--alerts-only"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "metrics") {
		t.Fatalf("metrics frame should be filtered out: %s", out)
	}
	if !strings.Contains(out, `"event":"alert"`) {
		t.Fatalf("expected alert frame, got: %s", out)
	}
}
