package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blog-api/internal/api"
	"github.com/blog-api/internal/config"
	"github.com/blog-api/internal/database"
	"github.com/blog-api/internal/repository"
	"github.com/blog-api/internal/service"
	"github.com/blog-api/pkg/logger"
	"github.com/rs/zerolog"
)

const schemaTimeout = 30 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Blog API server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}

	// Stop on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	listen := func() (net.Listener, error) {
		return net.Listen("tcp", ":"+cfg.Server.Port)
	}

	err = run(ctx, cfg, db, listen, log)
	stop()

	if closeErr := db.Close(); closeErr != nil {
		log.Error().Err(closeErr).Msg("Failed to close database")
	}
	if err != nil {
		log.Error().Err(err).Msg("Server stopped with error")
		os.Exit(1)
	}

	log.Info().Msg("Server exited gracefully")
}

// run prepares the schema and serves until ctx is cancelled. listen is only
// called once the schema is known to be usable, so a schema error returns
// before any port is bound.
func run(ctx context.Context, cfg *config.Config, db *database.DB, listen func() (net.Listener, error), log zerolog.Logger) error {
	if err := prepareSchema(ctx, db, cfg.Database.CreateTables); err != nil {
		return err
	}

	// Initialize repositories
	repos := repository.New(db)

	// Initialize services
	services := service.NewServices(repos, log)

	// Initialize router
	router := api.NewRouter(services, db, log)

	// Create HTTP server
	srv := &http.Server{
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	ln, err := listen()
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	// Start server in goroutine
	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("Server listening")
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// prepareSchema recreates the tables when createTables is set and validates
// the existing schema otherwise
func prepareSchema(ctx context.Context, db *database.DB, createTables bool) error {
	ctx, cancel := context.WithTimeout(ctx, schemaTimeout)
	defer cancel()

	if createTables {
		if err := db.CreateTables(ctx); err != nil {
			return fmt.Errorf("create tables: %w", err)
		}
		return nil
	}
	if err := db.ValidateSchema(ctx); err != nil {
		return fmt.Errorf("validate schema: %w", err)
	}
	return nil
}
