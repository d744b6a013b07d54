// Package di provides dependency injection and application bootstrapping.
package di

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/liverty-music/archive-core/pkg/shutdown"
	"github.com/pannpers/go-logging/logging"
)

func newApp(health *http.Server, logger *logging.Logger, shutdownTimeout time.Duration) *App {
	return &App{
		Health:          health,
		Logger:          logger,
		ShutdownTimeout: shutdownTimeout,
	}
}

// App represents the application with all its dependencies and lifecycle
// management. The full RPC/HTTP router the teacher serves is out of scope
// for this service; App only exposes a minimal health endpoint, with every
// domain resource reachable instead through the use cases returned by
// InitializeApp.
type App struct {
	Health          *http.Server
	Logger          *logging.Logger
	ShutdownTimeout time.Duration
}

// Start begins serving the health endpoint. It blocks until the server
// stops, returning nil on a clean shutdown.
func (a *App) Start() error {
	if err := a.Health.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the health server and runs every registered shutdown
// phase (pkg/shutdown), bounded by ShutdownTimeout.
func (a *App) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.ShutdownTimeout)
	defer cancel()

	var errs error
	if err := a.Health.Shutdown(ctx); err != nil {
		errs = errors.Join(errs, err)
	}
	if err := shutdown.Shutdown(ctx); err != nil {
		errs = errors.Join(errs, err)
	}
	return errs
}
