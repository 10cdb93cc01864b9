package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/data/db"
	apphttp "github.com/yungbote/medvalidate-backend/internal/http"
	"github.com/yungbote/medvalidate-backend/internal/observability"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Cfg      Config
	Repos    Repos
	Clients  Clients
	Services Services
	Server   *apphttp.Server

	dbService    *db.Service
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

// NewLogger builds the process logger from LOG_MODE, defaulting to development.
func NewLogger(mode string) (*logger.Logger, error) {
	if mode == "" {
		mode = "development"
	}
	log, err := logger.New(mode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

// New wires the full HTTP application.
func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	if err := cfg.ValidateServe(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	a, err := build(ctx, log, cfg, true)
	if err != nil {
		return nil, err
	}
	handlers := wireHandlers(log, cfg, a.Services, a.dbService.Ping)
	middleware := wireMiddleware(log, a.Services)
	a.Server = wireServer(log, cfg, handlers, middleware)
	return a, nil
}

// NewMaintenance wires the database, storage and saga services only. It backs
// the migrate and sweep commands.
func NewMaintenance(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	return build(ctx, log, cfg, false)
}

func build(ctx context.Context, log *logger.Logger, cfg Config, serve bool) (*App, error) {
	a := &App{Log: log, Cfg: cfg}
	if serve {
		if cfg.Metrics.Enabled {
			observability.Init(log, cfg.Metrics.ScrapeInterval)
		}
		a.otelShutdown = observability.InitOTel(ctx, log, observability.OtelConfig{
			Enabled:     cfg.Otel.Enabled,
			ServiceName: cfg.ServiceName,
			Environment: cfg.Environment,
			Version:     cfg.Version,
			Endpoint:    cfg.Otel.Endpoint,
			Headers:     cfg.Otel.Headers,
			Insecure:    cfg.Otel.Insecure,
			SampleRatio: cfg.Otel.SampleRatio,
		})
	}

	dbService, err := db.Open(log, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	a.dbService = dbService
	a.DB = dbService.DB()
	if err := dbService.AutoMigrateAll(); err != nil {
		a.Close()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	a.Repos = wireRepos(a.DB, log)
	clients, err := wireClients(ctx, log, cfg, serve)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Clients = clients
	a.Services = wireServices(a.DB, log, cfg, a.Repos, a.Clients)
	return a, nil
}

// SweepSagas compensates sagas idle longer than the configured age.
func (a *App) SweepSagas(ctx context.Context) (int, error) {
	if a == nil || a.Services.Saga == nil {
		return 0, errors.New("app not initialized")
	}
	return a.Services.Saga.SweepStale(ctx, a.Cfg.Analysis.SagaSweepAge)
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	runCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if n, err := a.SweepSagas(runCtx); err != nil {
		a.Log.Warn("boot saga sweep failed", "error", err)
	} else if n > 0 {
		a.Log.Info("boot saga sweep compensated stale sagas", "count", n)
	}

	if m := observability.Current(); m != nil {
		m.StartDBCollector(runCtx, a.Log, a.DB)
		m.StartRedisCollector(runCtx, a.Log, a.Cfg.Redis.Addr)
	}

	errCh := make(chan error, 1)
	go func() {
		a.Log.Info("HTTP server listening", "addr", a.Server.Addr())
		errCh <- a.Server.Run()
	}()

	select {
	case err := <-errCh:
		return err
	case <-runCtx.Done():
	}

	timeout := a.Cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), timeout)
	defer cancelShutdown()
	a.Log.Info("Shutting down HTTP server...")
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
		a.otelShutdown = nil
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil && a.Log != nil {
			a.Log.Warn("database close failed", "error", err)
		}
		a.dbService = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
