package app

import (
	"context"
	"fmt"
	"os"

	"gorm.io/gorm"

	"github.com/yungbote/estatehub-backend/internal/data/db"
	"github.com/yungbote/estatehub-backend/internal/data/repos"
	server "github.com/yungbote/estatehub-backend/internal/http"
	"github.com/yungbote/estatehub-backend/internal/observability"
	"github.com/yungbote/estatehub-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *server.Server
	Cfg      Config
	Repos    repos.Set
	Services Services
	Clients  Clients

	pg            *db.PostgresService
	shutdownTrace func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}

	var metrics *observability.Metrics
	if cfg.MetricsEnabled {
		metrics = observability.NewMetrics()
	}
	shutdownTrace := observability.InitOTel(ctx, log, cfg.Otel)

	pg, err := db.NewPostgresService(log, cfg.Postgres)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	theDB := pg.DB()
	if err := db.AutoMigrateAll(theDB); err != nil {
		_ = pg.Close()
		log.Sync()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}

	clients, err := wireClients(ctx, log, cfg, metrics)
	if err != nil {
		_ = pg.Close()
		log.Sync()
		return nil, err
	}

	reposet := repos.NewSet(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, reposet, clients)
	if err != nil {
		clients.Close()
		_ = pg.Close()
		log.Sync()
		return nil, err
	}

	if cfg.AdminEmail != "" {
		if err := serviceset.Auth.BootstrapAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			clients.Close()
			_ = pg.Close()
			log.Sync()
			return nil, fmt.Errorf("bootstrap admin: %w", err)
		}
	}

	routerCfg, err := wireRouterConfig(theDB, log, cfg, metrics, reposet, serviceset)
	if err != nil {
		clients.Close()
		_ = pg.Close()
		log.Sync()
		return nil, err
	}

	return &App{
		Log:           log,
		DB:            theDB,
		Server:        server.NewServer(routerCfg),
		Cfg:           cfg,
		Repos:         reposet,
		Services:      serviceset,
		Clients:       clients,
		pg:            pg,
		shutdownTrace: shutdownTrace,
	}, nil
}

// Run blocks until the server stops. A graceful Shutdown returns nil.
func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port
	a.Log.Info("Listening", "addr", addr)
	return a.Server.Run(addr)
}

func (a *App) Shutdown(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return nil
	}
	return a.Server.Shutdown(ctx)
}

func (a *App) Close(ctx context.Context) {
	if a == nil {
		return
	}
	if a.shutdownTrace != nil {
		if err := a.shutdownTrace(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	a.Clients.Close()
	if a.pg != nil {
		if err := a.pg.Close(); err != nil {
			a.Log.Warn("postgres close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
