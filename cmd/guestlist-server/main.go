package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"wedding-guestlist/internal/config"
	"wedding-guestlist/internal/handler"
	"wedding-guestlist/internal/logging"
	"wedding-guestlist/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat, "guestlist-server")

	// Initialize storage
	registry, err := openRegistry(context.Background(), cfg)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.RegistryBackend).Msg("Error initializing registry")
		os.Exit(1)
	}
	defer registry.Close()

	gin.SetMode(cfg.GinMode)
	router := handler.NewRouter(registry, log, handler.RouterConfig{
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("backend", cfg.RegistryBackend).Msg("guest list server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case <-c:
		log.Info().Msg("Shutting down...")
	case err := <-errCh:
		log.Error().Err(err).Msg("server failed")
		registry.Close()
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("Goodbye!")
}

func openRegistry(ctx context.Context, cfg *config.Config) (storage.Registry, error) {
	switch cfg.RegistryBackend {
	case config.BackendSQLite:
		return storage.NewSQLite(ctx, cfg.SQLiteDSN)
	default:
		return storage.NewMemory(), nil
	}
}
