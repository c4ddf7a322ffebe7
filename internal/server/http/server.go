package httpserver

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/FelipeFreitasRossi/InsightUI/internal/runtime"
	"github.com/FelipeFreitasRossi/InsightUI/internal/server/http/controllers"
	"github.com/FelipeFreitasRossi/InsightUI/internal/ui"
)

// Server is the HTTP transport: the JSON API, the SSE delivery channel, and
// the embedded dashboard shell.
type Server struct {
	rt  *runtime.Runtime
	log zerolog.Logger
	srv *http.Server
	lis net.Listener
}

// New builds the server and registers all controller routes.
func New(rt *runtime.Runtime, log zerolog.Logger) *Server {
	mux := http.NewServeMux()
	s := &Server{rt: rt, log: log}
	s.srv = &http.Server{Handler: cors(s.accessLog(mux))}

	registry := controllers.NewControllerRegistry(rt, log)
	registry.RegisterAllRoutes(mux)

	mux.Handle("/", http.FileServer(ui.FS()))
	return s
}

// Handler exposes the root handler for tests.
func (s *Server) Handler() http.Handler { return s.srv.Handler }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.lis = l
	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(l) }()
	select {
	case <-ctx.Done():
		cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.srv.Shutdown(cctx)
		return nil
	case err := <-errCh:
		return err
	}
}

// Close force-closes the listener.
func (s *Server) Close() {
	if s.lis != nil {
		_ = s.lis.Close()
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
