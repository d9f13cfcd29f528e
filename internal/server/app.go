// Package server initializes and runs the vault application: it opens the
// store, runs migrations, wires the services and the dispatch core, and
// serves the transport-facing endpoint with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/chatvault/internal/logging"
	"github.com/dmitrijs2005/chatvault/internal/server/config"
	"github.com/dmitrijs2005/chatvault/internal/server/dispatch"
	"github.com/dmitrijs2005/chatvault/internal/server/httpapi"
	"github.com/dmitrijs2005/chatvault/internal/server/ratelimit"
	"github.com/dmitrijs2005/chatvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/chatvault/internal/server/services"
	"github.com/dmitrijs2005/chatvault/internal/server/sessions"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, rm, err := openStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	us := services.NewUserService(db, rm, cfg.DefaultFolderName, cfg.RequirePhone)
	fs := services.NewFolderService(db, rm, cfg.PageSize)
	limiter := ratelimit.New(cfg.RateLimitWindow, cfg.RateLimitCapacity)
	sess := sessions.NewStore(cfg.SessionTTL)

	d := dispatch.New(us, fs, limiter, sess, logger)
	srv := httpapi.NewServer(cfg.EndpointAddr, d, logger)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

// openStore opens the configured database and pairs it with the matching
// repository manager.
func openStore(cfg *config.Config) (*sql.DB, repomanager.RepositoryManager, error) {
	switch cfg.DatabaseDriver {
	case "sqlite":
		db, err := sql.Open("sqlite", cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return db, repomanager.NewSQLiteRepositoryManager(), nil
	case "pgx":
		db, err := sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, err
		}
		return db, repomanager.NewPostgresRepositoryManager(), nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver: %q", cfg.DatabaseDriver)
	}
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.server.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}
}
