// internal/app.go
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"

	router "fintrack/internal/api"
	"fintrack/internal/api/handler"
	"fintrack/internal/config"
	"fintrack/internal/repository"
	"fintrack/internal/repository/file"
	"fintrack/internal/repository/memory"
	"fintrack/internal/repository/sqlstore"
	"fintrack/internal/service"
	"fintrack/internal/util"
	"fintrack/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB // Nil unless a SQL storage driver is configured

	// Persistence
	KVStore repository.KVStore
	Storage *repository.Storage

	// Services
	SessionService service.SessionService
	LedgerService  service.LedgerService

	// HTTP API
	HTTPHandler http.Handler

	logOutput io.Writer
}

// Option customises an Application before Initialize.
type Option func(*Application)

// WithConfig skips config loading and uses cfg as is.
func WithConfig(cfg *config.AppConfig) Option {
	return func(app *Application) { app.Config = cfg }
}

// WithLogOutput sends logs to w instead of stdout.
func WithLogOutput(w io.Writer) Option {
	return func(app *Application) { app.logOutput = w }
}

// NewApplication creates a new Application instance.
func NewApplication(opts ...Option) *Application {
	app := &Application{logOutput: os.Stdout}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

// Initialize initializes all application components and restores the session.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	if app.Config == nil {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		app.Config = cfg
	}

	// 2. Initialize Logger
	app.Logger = util.InitLoggerTo(app.logOutput, app.Config.Log.Level, app.Config.Log.Format)
	app.Logger.Info("Application configuration loaded successfully.", "storage_driver", app.Config.Storage.Driver)

	// 3. Open the key-value backend
	kv, err := app.openStore(ctx)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", app.Config.Storage.Driver, err)
	}
	app.KVStore = kv
	app.Storage = repository.NewStorage(kv, app.Logger)
	app.Logger.Info("Storage initialized.")

	// 4. Initialize Services
	app.SessionService = service.NewSessionService(app.Storage, app.Logger, app.Config.Session.LoginDelay)
	app.LedgerService = service.NewLedgerService(app.Storage, app.Logger)
	app.SessionService.Subscribe(app.LedgerService.HandleSessionChange)
	app.SessionService.Restore(ctx)
	app.Logger.Info("Services initialized.")

	// 5. Initialize HTTP Handlers and Router
	sessionHandler := handler.NewSessionHandler(app.SessionService, app.Logger)
	ledgerHandler := handler.NewLedgerHandler(app.LedgerService, app.Config.Display.Currency, app.Logger)
	app.HTTPHandler = router.NewRouter(sessionHandler, ledgerHandler, app.Config.Server.RequestTimeout, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

func (app *Application) openStore(ctx context.Context) (repository.KVStore, error) {
	cfg := app.Config.Storage
	switch cfg.Driver {
	case config.DriverMemory:
		return memory.NewStore(), nil
	case config.DriverFile:
		return file.NewStore(cfg.Dir)
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
		conn, err := db.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return app.migrate(ctx, conn)
	case config.DriverPostgres:
		conn, err := db.NewPostgresDB(cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return app.migrate(ctx, conn)
	default:
		return nil, fmt.Errorf("%w: %q", util.ErrUnsupportedDriver, cfg.Driver)
	}
}

func (app *Application) migrate(ctx context.Context, conn *sqlx.DB) (repository.KVStore, error) {
	app.DB = conn
	app.Logger.Info("Database connection established.")

	store := sqlstore.NewStore(conn)
	if err := store.Migrate(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
