package runtime

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	cfgpkg "github.com/FelipeFreitasRossi/InsightUI/internal/config"
	"github.com/FelipeFreitasRossi/InsightUI/internal/history"
	"github.com/FelipeFreitasRossi/InsightUI/internal/notify"
	monitorsvc "github.com/FelipeFreitasRossi/InsightUI/internal/services/monitor"
	pebblestore "github.com/FelipeFreitasRossi/InsightUI/internal/storage/pebble"
)

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	Logger        zerolog.Logger
}

// Runtime wires storage, config, and the dashboard services for a
// single-node instance. It is constructed once and passed by reference to
// the transports; there is no global accessor.
type Runtime struct {
	db      *pebblestore.DB
	config  cfgpkg.Config
	log     zerolog.Logger
	history *history.Log
	notify  *notify.Service
	monitor *monitorsvc.Service
}

// Open initializes the underlying storage, restores the notification
// collection, and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
	})
	if err != nil {
		return nil, err
	}

	hist := history.Open(db, opts.Logger.With().Str("component", "history").Logger())
	slot := notify.NewSlot(db, opts.Config.Notifications.StorageSlot,
		opts.Logger.With().Str("component", "persistence").Logger())
	svc := notify.NewService(opts.Config.Notifications.MaxNotifications, slot,
		opts.Logger.With().Str("component", "notify").Logger())
	mon := monitorsvc.New(opts.Config.Monitor, opts.Config.HistoryRetention, hist,
		opts.Logger.With().Str("component", "monitor").Logger())

	return &Runtime{
		db:      db,
		config:  opts.Config,
		log:     opts.Logger,
		history: hist,
		notify:  svc,
		monitor: mon,
	}, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	return it.Close()
}

// Notifications returns the notification service.
func (r *Runtime) Notifications() *notify.Service { return r.notify }

// Monitor returns the synthetic monitor service.
func (r *Runtime) Monitor() *monitorsvc.Service { return r.monitor }

// History returns the metric-history log.
func (r *Runtime) History() *history.Log { return r.history }

// DB exposes the underlying DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
