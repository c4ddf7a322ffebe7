package serverrun

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	cfgpkg "github.com/FelipeFreitasRossi/InsightUI/internal/config"
	"github.com/FelipeFreitasRossi/InsightUI/internal/runtime"
	httpserver "github.com/FelipeFreitasRossi/InsightUI/internal/server/http"
	pebblestore "github.com/FelipeFreitasRossi/InsightUI/internal/storage/pebble"
)

// Options configure the server entrypoint. Zero values fall back to the
// loaded configuration.
type Options struct {
	DataDir       string
	HTTPAddr      string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
}

// Run opens the runtime, starts the hourly history recorder and the HTTP
// server, and blocks until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	// Be robust to callers that don't pass a signal-aware context. We
	// layer a local signal context over the provided one.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}
	if opts.HTTPAddr == "" {
		opts.HTTPAddr = opts.Config.HTTPAddr
	}
	storeDir := filepath.Join(opts.DataDir, "store")

	logger := NewLogger(opts.Config.LogLevel, opts.Config.LogFormat)

	rt, err := runtime.Open(runtime.Options{
		DataDir:       storeDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
		Config:        opts.Config,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	logger.Info().
		Str("http", opts.HTTPAddr).
		Str("data_dir", opts.DataDir).
		Str("level", opts.Config.LogLevel).
		Str("format", opts.Config.LogFormat).
		Msg("starting insightui server")

	hsrv := httpserver.New(rt, logger.With().Str("component", "http").Logger())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		rt.Monitor().RunRecorder(sctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, opts.HTTPAddr); err != nil && sctx.Err() == nil {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	<-sctx.Done()
	// Shut the server down before closing the runtime/DB to avoid races.
	hsrv.Close()
	wg.Wait()
	return nil
}

// NewLogger builds the process logger from the configured level and format.
// Format "text" writes a console-friendly stream; anything else emits JSON.
func NewLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	var out = zerolog.New(os.Stderr)
	if format == "" || format == "text" {
		out = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return out.Level(lvl).With().Timestamp().Logger()
}
