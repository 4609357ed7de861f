package app

import (
	"context"
	"sync"

	"log/slog"

	"github.com/invtrack/inventory-manager/config"
	httpapi "github.com/invtrack/inventory-manager/internal/api/http"
	"github.com/invtrack/inventory-manager/internal/apisrv/auth"
	"github.com/invtrack/inventory-manager/internal/dependency"
	"github.com/invtrack/inventory-manager/internal/store"
)

// App is the main application
type App struct {
	hs       *httpapi.Server
	db       dependency.Repository
	c        *config.Config
	done     chan struct{}
	doneOnce sync.Once
}

// New returns a new instance of App
func New(c *config.Config) *App {
	return &App{
		c:    c,
		done: make(chan struct{}),
	}
}

// Start starts the app
func (a *App) Start(ctx context.Context) error {
	var err error
	slog.Default().InfoContext(ctx, "starting inventory manager")

	a.db, err = store.New(ctx, a.c.DB)
	if err != nil {
		slog.Default().ErrorContext(ctx, "couldn't connect to postgres",
			slog.String("err", err.Error()),
		)
		return err
	}

	authS, err := auth.New(ctx, &a.c.Auth, a.db.Users())
	if err != nil {
		slog.Default().ErrorContext(ctx, "failed to create auth server",
			slog.String("err", err.Error()),
		)
		return err
	}

	a.hs = httpapi.New(&a.c.HTTP, a.db, authS)
	errCh := a.hs.Start(ctx)
	go func() {
		if err, ok := <-errCh; ok && err != nil {
			slog.Default().ErrorContext(ctx, "http server failed",
				slog.String("err", err.Error()),
			)
			a.doneOnce.Do(func() { close(a.done) })
		}
	}()

	return nil
}

// Stop stops the application and waits for all services to exit
func (a *App) Stop(ctx context.Context) {
	if a.hs != nil {
		if err := a.hs.Stop(ctx); err != nil {
			slog.Default().ErrorContext(ctx, "http server shutdown failed",
				slog.String("err", err.Error()),
			)
		}
	}
	if a.db != nil {
		a.db.Close()
	}
	a.doneOnce.Do(func() { close(a.done) })
}

// Done returns a channel that is closed after the application has exited
func (a *App) Done() chan struct{} {
	return a.done
}
