package monitorsvc

import (
	"context"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	cfgpkg "github.com/FelipeFreitasRossi/InsightUI/internal/config"
	"github.com/FelipeFreitasRossi/InsightUI/internal/history"
	"github.com/FelipeFreitasRossi/InsightUI/pkg/id"
)

var alertMessages = []string{
	"High CPU utilization detected",
	"Memory pressure rising",
	"Disk usage above threshold",
	"Elevated request latency",
}

// Service generates the synthetic monitoring data: real-time metric samples,
// probabilistic alerts, the demo server fleet, historical samples, and
// aggregate counters. There is no real monitored infrastructure behind it.
type Service struct {
	cfg       cfgpkg.Monitor
	retention int
	hist      *history.Log
	log       zerolog.Logger
	ids       *id.Generator
	fleet     []Server
	started   time.Time

	samples atomic.Uint64
	alerts  atomic.Uint64
}

// New creates the monitor service. hist may be nil, in which case History
// serves fully synthesized samples.
func New(cfg cfgpkg.Monitor, retentionHours int, hist *history.Log, log zerolog.Logger) *Service {
	if retentionHours <= 0 {
		retentionHours = 24
	}
	return &Service{
		cfg:       cfg,
		retention: retentionHours,
		hist:      hist,
		log:       log,
		ids:       id.NewGenerator(),
		started:   time.Now(),
		fleet: []Server{
			{ID: 1, Name: "Web-01", IP: "192.168.1.10", Status: "online", Latency: 12},
			{ID: 2, Name: "DB-01", IP: "192.168.1.20", Status: "warning", Latency: 35},
			{ID: 3, Name: "Cache-01", IP: "192.168.1.30", Status: "online", Latency: 4},
		},
	}
}

// Interval returns the configured push interval for the delivery channel.
func (s *Service) Interval() time.Duration {
	if s.cfg.PushIntervalMs <= 0 {
		return 2 * time.Second
	}
	return time.Duration(s.cfg.PushIntervalMs) * time.Millisecond
}

// Sample produces one real-time metrics sample.
func (s *Service) Sample() MetricsSample {
	s.samples.Add(1)
	return MetricsSample{
		Timestamp:         time.Now(),
		CPU:               rand.Float64() * 100,
		Memory:            30 + rand.Float64()*50,
		Disk:              20 + rand.Float64()*40,
		NetworkIn:         rand.Float64() * 1000,
		NetworkOut:        rand.Float64() * 500,
		ActiveConnections: rand.IntN(1000),
	}
}

// MaybeAlert rolls the per-tick alert probability. When it hits, it returns
// a warning or critical alert (50/50) against a random fleet member.
func (s *Service) MaybeAlert() (Alert, bool) {
	if rand.Float64() >= s.cfg.AlertProbability {
		return Alert{}, false
	}
	s.alerts.Add(1)
	typ := "warning"
	if rand.Float64() < 0.5 {
		typ = "critical"
	}
	return Alert{
		ID:        s.ids.Next(),
		Type:      typ,
		Message:   alertMessages[rand.IntN(len(alertMessages))],
		Server:    s.fleet[rand.IntN(len(s.fleet))].Name,
		Timestamp: time.Now(),
	}, true
}

// Servers returns the fleet with freshly jittered utilization figures.
func (s *Service) Servers() []Server {
	now := time.Now()
	out := make([]Server, len(s.fleet))
	for i, srv := range s.fleet {
		srv.CPU = 20 + rand.Float64()*60
		srv.Memory = 30 + rand.Float64()*50
		srv.Disk = 20 + rand.Float64()*40
		srv.Latency = srv.Latency * (0.5 + rand.Float64())
		srv.LastUpdate = now
		out[i] = srv
	}
	return out
}

// History returns one sample per hour for the trailing window, oldest first.
// Hours recorded in the history log are served as recorded; the rest are
// synthesized.
func (s *Service) History(hours int) []history.Sample {
	if hours <= 0 || hours > s.retention {
		hours = s.retention
	}
	now := time.Now()
	start := now.Truncate(time.Hour).Add(-time.Duration(hours-1) * time.Hour)

	recorded := map[int64]history.Sample{}
	if s.hist != nil {
		got, err := s.hist.Scan(start, now.Add(time.Hour))
		if err != nil {
			s.log.Warn().Err(err).Msg("history scan failed; serving synthesized samples")
		}
		for _, smp := range got {
			recorded[smp.Time.Truncate(time.Hour).UnixMilli()] = smp
		}
	}

	out := make([]history.Sample, 0, hours)
	for i := 0; i < hours; i++ {
		hour := start.Add(time.Duration(i) * time.Hour)
		if smp, ok := recorded[hour.UnixMilli()]; ok {
			out = append(out, smp)
			continue
		}
		out = append(out, history.Sample{
			Time:       hour,
			CPU:        40 + rand.Float64()*30,
			Memory:     50 + rand.Float64()*30,
			NetworkIn:  rand.Float64() * 1000,
			NetworkOut: rand.Float64() * 500,
		})
	}
	return out
}

// Stats returns the aggregate counters. unread is supplied by the caller so
// this package does not depend on the notification core.
func (s *Service) Stats(unread int) Stats {
	st := Stats{
		SamplesEmitted:      s.samples.Load(),
		AlertsEmitted:       s.alerts.Load(),
		UnreadNotifications: unread,
		UptimeSeconds:       int64(time.Since(s.started).Seconds()),
	}
	for _, srv := range s.fleet {
		switch srv.Status {
		case "online":
			st.ServersOnline++
		case "warning":
			st.ServersWarning++
		default:
			st.ServersOffline++
		}
	}
	return st
}

// RunRecorder appends one sample per hour turn to the history log and trims
// past the retention window. It blocks until ctx is cancelled.
func (s *Service) RunRecorder(ctx context.Context) {
	if s.hist == nil {
		return
	}
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	s.recordHour()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.recordHour()
		}
	}
}

func (s *Service) recordHour() {
	sample := s.Sample()
	err := s.hist.Append(history.Sample{
		Time:       sample.Timestamp.Truncate(time.Hour),
		CPU:        sample.CPU,
		Memory:     sample.Memory,
		NetworkIn:  sample.NetworkIn,
		NetworkOut: sample.NetworkOut,
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to record hourly sample")
		return
	}
	cutoff := time.Now().Add(-time.Duration(s.retention) * time.Hour)
	if err := s.hist.TrimOlderThan(cutoff); err != nil {
		s.log.Warn().Err(err).Msg("failed to trim history")
	}
}
