// Package server wires the docvault components together: database and
// migrations, optional object storage for file content, the services and the
// HTTP API. It also handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/huseyinozgul/docvault/internal/dbx"
	"github.com/huseyinozgul/docvault/internal/logging"
	"github.com/huseyinozgul/docvault/internal/server/config"
	"github.com/huseyinozgul/docvault/internal/server/contentstore"
	"github.com/huseyinozgul/docvault/internal/server/repositories/repomanager"
	"github.com/huseyinozgul/docvault/internal/server/rest"
	"github.com/huseyinozgul/docvault/internal/server/services"
)

type App struct {
	config *config.Config
	logger *logging.ZapLogger
	db     *sql.DB
	http   *rest.Server
}

// NewApp connects to the database, applies migrations and builds the HTTP
// server. The returned App owns the database handle until Run returns.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewProductionLogger(c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	db, err := dbx.OpenPostgres(ctx, c.DatabaseDSN, dbx.PoolOptions{
		MaxOpenConns: c.MaxOpenConns,
		MaxIdleConns: c.MaxIdleConns,
	})
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	blobs, err := newContentStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	resolver := services.NewResolver(rm)
	us := services.NewUserService(db, rm, c)
	fs := services.NewFolderService(db, rm, resolver, logger)
	fis := services.NewFileService(db, rm, resolver, blobs, logger)

	h := rest.NewHandler(us, fs, fis, db, logger)
	srv := rest.NewServer(c.EndpointAddrHTTP, rest.NewRouter(h, c.CORSOrigins, logger), logger, c.ShutdownTimeout)

	return &App{config: c, logger: logger, db: db, http: srv}, nil
}

// newContentStore returns nil when file content is kept in the database.
func newContentStore(ctx context.Context, c *config.Config) (contentstore.Store, error) {
	if c.ContentBackend != config.BackendS3 {
		return nil, nil
	}
	s, err := contentstore.NewS3Store(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("s3 init error: %w", err)
	}
	if err := s.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("s3 bucket error: %w", err)
	}
	return s, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.http.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until SIGINT, SIGTERM or SIGQUIT, or until ctx is cancelled.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "content_backend", app.config.ContentBackend)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "closing database", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
	_ = app.logger.Sync()
}
