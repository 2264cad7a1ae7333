package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/metavr/dashauth/internal/dashauth/http"
	"github.com/metavr/dashauth/internal/dashauth/metrics"
	"github.com/metavr/dashauth/internal/dashauth/service"
	"github.com/metavr/dashauth/internal/dashauth/store"
	"github.com/metavr/dashauth/internal/dashauth/store/drivers/sqlite"
	"github.com/metavr/dashauth/pkg/sessionx"
	"github.com/metavr/dashauth/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// Application wires the session service, the handshake ledger and the HTTP API.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db       store.Store
	sessions *sessionx.Service
	metrics  *metrics.Metrics

	handshakeService    *service.HandshakeService
	sessionService      *service.SessionService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New validates cfg and builds every dependency. It fails fast on any
// configuration problem rather than serving unauthenticated traffic.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "dashauth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metrics.New(),
	}

	sessions, err := sessionx.New(sessionx.Config{
		Secret:            cfg.Secret,
		PublicKeyPEM:      cfg.PublicKeyPEM,
		Issuer:            cfg.Issuer,
		Audience:          cfg.Audience,
		HandshakeAudience: cfg.HandshakeAudience,
		Production:        cfg.Production(),
		Logger:            app.logger,
		Observer:          app.metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize session service: %w", err)
	}
	app.sessions = sessions

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("dashauth starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown drains the HTTP server, stops housekeeping and closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down dashauth...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("dashauth stopped")
	return nil
}

func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

func (app *Application) initServices() {
	app.handshakeService = &service.HandshakeService{
		Sessions: app.sessions,
		Store:    app.db,
	}
	app.sessionService = &service.SessionService{
		Sessions:         app.sessions,
		RefreshThreshold: app.cfg.RefreshThreshold,
	}
	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.sessions,
		app.db,
		app.cfg.RateLimits,
		BuildVersion,
		app.logger,
	)
	router.HandshakeService = app.handshakeService
	router.SessionService = app.sessionService
	router.Metrics = app.metrics
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
