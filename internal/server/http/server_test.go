package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	cfgpkg "github.com/FelipeFreitasRossi/InsightUI/internal/config"
	"github.com/FelipeFreitasRossi/InsightUI/internal/runtime"
	pebblestore "github.com/FelipeFreitasRossi/InsightUI/internal/storage/pebble"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	rt, err := runtime.Open(runtime.Options{
		DataDir: t.TempDir(),
		Fsync:   pebblestore.FsyncModeAlways,
		Config:  cfgpkg.Default(),
		Logger:  zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("rt open: %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	return New(rt, zerolog.Nop())
}

func TestHealthHandler(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("status field: %v", body["status"])
	}
}

func TestServersHandler(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/servers", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var servers []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &servers); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(servers) != 3 {
		t.Fatalf("servers: %d", len(servers))
	}
}

func TestHistoryHandler(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/metrics/history?hours=6", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var samples []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &samples); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(samples) != 6 {
		t.Fatalf("samples: %d", len(samples))
	}
}

func TestNotificationLifecycle(t *testing.T) {
	s := newTestServer(t)
	do := func(method, path, body string) *httptest.ResponseRecorder {
		t.Helper()
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, path, nil)
		}
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/api/notifications", `{"type":"error","title":"Disk","message":"Disk usage high"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status: %d", w.Code)
	}
	var created map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["id"] == "" {
		t.Fatalf("missing id")
	}

	w = do(http.MethodGet, "/api/notifications/unread-count", "")
	var count map[string]int
	_ = json.Unmarshal(w.Body.Bytes(), &count)
	if count["count"] != 1 {
		t.Fatalf("unread: %d", count["count"])
	}

	w = do(http.MethodPost, "/api/notifications/read", `{"id":"`+created["id"]+`"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("read status: %d", w.Code)
	}
	w = do(http.MethodGet, "/api/notifications/unread-count", "")
	_ = json.Unmarshal(w.Body.Bytes(), &count)
	if count["count"] != 0 {
		t.Fatalf("unread after read: %d", count["count"])
	}

	w = do(http.MethodPost, "/api/notifications/remove", `{"id":"`+created["id"]+`"}`)
	if w.Code != http.StatusNoContent {
		t.Fatalf("remove status: %d", w.Code)
	}
	w = do(http.MethodGet, "/api/notifications", "")
	var list []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if len(list) != 0 {
		t.Fatalf("list after remove: %d", len(list))
	}
}

func TestNotificationsFilterQuery(t *testing.T) {
	s := newTestServer(t)
	for _, body := range []string{
		`{"type":"error","title":"A","message":"boom"}`,
		`{"type":"info","title":"B","message":"fine"}`,
	} {
		req := httptest.NewRequest(http.MethodPost, "/api/notifications", strings.NewReader(body))
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("create status: %d", w.Code)
		}
	}
	req := httptest.NewRequest(http.MethodGet, "/api/notifications?filter="+"severity%20%3D%3D%20%22error%22", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0]["title"] != "A" {
		t.Fatalf("filtered list: %+v", list)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/notifications?filter=%28%28", nil)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad filter status: %d", w.Code)
	}
}

func TestExportHandler(t *testing.T) {
	s := newTestServer(t)
	body := `{"format":"csv","columns":[{"key":"name","title":"Name"}],"rows":[{"name":"Web-01"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/export", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Fatalf("disposition: %s", cd)
	}
	if got := w.Body.String(); !strings.Contains(got, "Web-01") {
		t.Fatalf("body: %q", got)
	}
}

func TestExportNotificationsHandler(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/notifications", strings.NewReader(`{"type":"warning","title":"CPU","message":"CPU high"}`))
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status: %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/export/notifications?format=json", nil)
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status: %d", w.Code)
	}
	if got := w.Body.String(); !strings.Contains(got, "CPU high") {
		t.Fatalf("body: %q", got)
	}
}

func TestSubscribeSSEInitialSnapshot(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/notifications/subscribe")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status: %d", resp.StatusCode)
	}
	buf := make([]byte, 512)
	n, err := resp.Body.Read(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	head := string(buf[:n])
	if !strings.Contains(head, "event: updated") {
		t.Fatalf("first frame: %q", head)
	}
}
