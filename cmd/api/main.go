// Package main provides the archive-core service entry point.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/liverty-music/archive-core/internal/di"
)

func main() {
	if err := run(); err != nil {
		log.Printf("server failed: %v", err)
		os.Exit(1)
	}
}

func run() error {
	// Create a context that will be canceled when OS signals are received
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt,    // SIGINT (Ctrl+C)
		syscall.SIGTERM, // SIGTERM (k8s termination signal)
		syscall.SIGQUIT, // SIGQUIT
	)
	defer stop()

	log.Println("starting archive-core...")

	// The use cases returned alongside App are this service's real
	// surface; they are not exercised here since no RPC/HTTP router is
	// wired up (out of scope), only a health endpoint.
	app, _, err := di.InitializeApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Shutdown(context.Background()); err != nil {
			log.Printf("error during shutdown: %v", err)
		}
	}()

	errChan := make(chan error, 1)

	go func() {
		if err := app.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("received shutdown signal, stopping gracefully...")
		return nil

	case err := <-errChan:
		log.Printf("server failed to start: %v", err)
		return err
	}
}
