// Package server initializes and runs the notekeeper application: it
// opens the configured storage backend, seeds the credential store, and
// starts the HTTP API with graceful shutdown on OS signals.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/notekeeper/internal/logging"
	"github.com/dmitrijs2005/notekeeper/internal/server/auth"
	"github.com/dmitrijs2005/notekeeper/internal/server/config"
	"github.com/dmitrijs2005/notekeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/notekeeper/internal/server/notes"
	"github.com/dmitrijs2005/notekeeper/internal/server/storage"
	"github.com/dmitrijs2005/notekeeper/internal/server/users"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	storage    storage.Manager
	httpServer *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	m, err := storage.Open(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	// The seeded password is hashed once here; plaintext is not retained.
	hash, err := auth.HashPassword(cfg.SeedPassword)
	if err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("seed credential error: %w", err)
	}
	credentials := users.NewSeededRepository(&users.User{
		Username:     cfg.SeedUser,
		PasswordHash: hash,
	})

	us := users.NewService(credentials, cfg, logger)
	ns := notes.NewService(m.Notes())

	srv := httpapi.NewServer(cfg.Address, logger, us, ns, cfg.AllowedOrigins)

	return &App{config: cfg, logger: logger, storage: m, httpServer: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
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

	app.logger.Info(ctx, "Starting app...", "backend", string(app.config.Backend))

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.storage.Close(); err != nil {
		app.logger.Error(ctx, "storage close error", "error", err.Error())
	}
}
