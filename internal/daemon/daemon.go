package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vitalog/vita/internal/api"
	"github.com/vitalog/vita/internal/app/tracker"
	"github.com/vitalog/vita/internal/infra/store"

	_ "github.com/vitalog/vita/internal/infra/metrics" // Register Prometheus metrics
)

// Daemon is the Vita runtime. It wires the persistence store, the tracker
// core, and the HTTP API together.
type Daemon struct {
	Config  Config
	KV      *store.SQLiteKV
	Tracker *tracker.Service
	Server  *api.Server
	cancel  context.CancelFunc
}

// New creates a Daemon from the on-disk configuration.
func New() (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a Daemon with the given configuration and hydrates
// persisted achievement state.
func NewWithConfig(cfg Config) (*Daemon, error) {
	dir := cfg.Storage.Dir
	if dir == "" {
		dir = vitaHome()
	}
	kv, err := store.OpenSQLite(dir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	gw := store.NewGateway(kv, tracker.Catalog())
	svc := tracker.NewService(gw, kv, goals(cfg), time.Local,
		time.Duration(cfg.Ingest.ClockSkewSeconds)*time.Second)
	if err := svc.Init(context.Background()); err != nil {
		kv.Close()
		return nil, err
	}

	srv := api.NewServer(svc)
	if cfg.API.MetricsEnabled {
		srv.EnableMetrics()
	}

	return &Daemon{Config: cfg, KV: kv, Tracker: svc, Server: srv}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	addr := fmt.Sprintf("%s:%d", d.Config.API.Host, d.Config.API.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.KV.Close()
	}()

	fmt.Printf("Vita serving on http://%s\n", addr)
	if d.Config.API.MetricsEnabled {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.KV != nil {
		_ = d.KV.Close()
	}
}

// goals converts the config section into tracker goals, falling back to the
// defaults for unset values.
func goals(cfg Config) tracker.Goals {
	g := tracker.DefaultGoals()
	if cfg.Goals.WaterML > 0 {
		g.WaterML = cfg.Goals.WaterML
	}
	if cfg.Goals.SleepHours > 0 {
		g.SleepHours = cfg.Goals.SleepHours
	}
	if cfg.Goals.WorkoutSessions > 0 {
		g.WorkoutSessions = cfg.Goals.WorkoutSessions
	}
	if cfg.Goals.MoodLevel > 0 {
		g.MoodLevel = cfg.Goals.MoodLevel
	}
	if cfg.Goals.NutritionEntries > 0 {
		g.NutritionEntries = cfg.Goals.NutritionEntries
	}
	return g
}
