package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/contactbook-backend/internal/data/db"
	httpserver "github.com/yungbote/contactbook-backend/internal/http"
	"github.com/yungbote/contactbook-backend/internal/observability"
	"github.com/yungbote/contactbook-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics

	store        *db.Service
	otelShutdown func(context.Context) error
}

func New() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	store, err := db.NewService(cfg.dbConfig(), log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init db: %w", err)
	}
	if err := store.AutoMigrateAll(); err != nil {
		_ = store.Close()
		log.Sync()
		return nil, fmt.Errorf("db automigrate: %w", err)
	}

	otelShutdown := observability.InitOTel(context.Background(), log, cfg.otelConfig())

	a := Build(cfg, log, store.DB())
	a.store = store
	a.otelShutdown = otelShutdown
	if a.Metrics != nil {
		if sqlDB, err := store.DB().DB(); err == nil {
			a.Metrics.WatchDB(sqlDB, cfg.DB.Driver)
		}
	}
	return a, nil
}

// Build wires repos, services, handlers and the router over an open
// database. Tests call it with their own store.
func Build(cfg Config, log *logger.Logger, theDB *gorm.DB) *App {
	if cfg.Env != "development" && cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Env == "test" {
		gin.SetMode(gin.TestMode)
	}

	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics("contactbook")
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(log, cfg, reposet, metrics)
	handlerset := wireHandlers(log, serviceset)
	middleware := wireMiddleware(log, cfg, serviceset)
	router := wireRouter(log, cfg, handlerset, middleware, metrics)

	return &App{
		Log:      log,
		DB:       theDB,
		Router:   router,
		Cfg:      cfg,
		Repos:    reposet,
		Services: serviceset,
		Metrics:  metrics,
	}
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	srv := httpserver.NewServer(a.Router, httpserver.ServerConfig{
		Addr:              a.Cfg.HTTP.Addr,
		ReadHeaderTimeout: a.Cfg.HTTP.ReadHeaderTimeout.Duration,
		IdleTimeout:       a.Cfg.HTTP.IdleTimeout.Duration,
		ShutdownTimeout:   a.Cfg.HTTP.ShutdownTimeout.Duration,
	}, a.Log)
	return srv.Run(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	var errs []error
	if a.otelShutdown != nil {
		timeout := a.Cfg.HTTP.ShutdownTimeout.Duration
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		errs = append(errs, a.otelShutdown(ctx))
		cancel()
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if err := errors.Join(errs...); err != nil && a.Log != nil {
		a.Log.Warn("Shutdown finished with errors", "error", err)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
