package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tomlord1122/tenant-backend/internal/auth"
	"github.com/Tomlord1122/tenant-backend/internal/config"
	"github.com/Tomlord1122/tenant-backend/internal/database"
	"github.com/Tomlord1122/tenant-backend/internal/logger"
	"github.com/Tomlord1122/tenant-backend/internal/repository"
	"github.com/Tomlord1122/tenant-backend/internal/repository/inmem"
	"github.com/Tomlord1122/tenant-backend/internal/server"
	"github.com/Tomlord1122/tenant-backend/internal/service"
)

// backend is the store the services run on plus its lifecycle hooks.
type backend interface {
	server.HealthChecker
	io.Closer
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return runServe(cmd.Context()) },
	}

	root := &cobra.Command{
		Use:           "api",
		Short:         "Multi-tenant notes and todos API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}
	root.AddCommand(serve, &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema and exit",
		Args:  cobra.NoArgs,
		RunE:  func(cmd *cobra.Command, _ []string) error { return runMigrate(cmd.Context()) },
	})
	return root
}

func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.Config{}, nil, err
	}
	log, err := logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return config.Config{}, nil, err
	}
	zap.ReplaceGlobals(log)
	return cfg, log, nil
}

func runMigrate(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Database.Driver == config.DriverMemory {
		log.Info("Nothing to migrate for the memory driver")
		return nil
	}

	dbService, err := database.New(cfg.Database, log)
	if err != nil {
		log.Error("Failed to open database", zap.Error(err))
		return err
	}
	defer dbService.Close()

	if err := dbService.Migrate(ctx); err != nil {
		log.Error("Migration failed", zap.Error(err))
		return err
	}
	return nil
}

// openStore builds the repository store for the configured driver. The
// postgres schema is applied on startup.
func openStore(ctx context.Context, cfg config.Database, log *zap.Logger) (repository.Store, backend, error) {
	if cfg.Driver == config.DriverMemory {
		log.Warn("Using the in-memory store; data is lost on restart")
		store := inmem.New()
		return store, store, nil
	}

	dbService, err := database.New(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if err := dbService.Migrate(ctx); err != nil {
		_ = dbService.Close()
		return nil, nil, err
	}
	return repository.NewGormStore(dbService.GetDB()), dbService, nil
}

func gracefulShutdown(ctx context.Context, apiServer *http.Server, db backend, log *zap.Logger, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal, or for the listener failing.
	<-ctx.Done()

	log.Info("Shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := db.Close(); err != nil {
		log.Error("Error closing database connection pool", zap.Error(err))
	}

	log.Info("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

// listenAndServe runs apiServer until a signal arrives or the listener
// fails. db is closed on both paths before it returns.
func listenAndServe(ctx context.Context, apiServer *http.Server, db backend, log *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Create a done channel to signal when the shutdown is complete
	done := make(chan bool, 1)
	go gracefulShutdown(ctx, apiServer, db, log, done)

	err := apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("HTTP server ListenAndServe error", zap.Error(err))
		cancel()
		<-done
		return err
	}

	// Wait for the graceful shutdown to complete
	<-done
	log.Info("Graceful shutdown complete")
	return nil
}

func runServe(ctx context.Context) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// 1. Initialize the store
	store, db, err := openStore(ctx, cfg.Database, log)
	if err != nil {
		log.Error("Failed to initialize store", zap.String("driver", cfg.Database.Driver), zap.Error(err))
		return err
	}

	// 2. Initialize Services
	tokens := auth.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.TokenTTL())
	services := server.Services{
		Auth:          service.NewAuthService(store, tokens, log.Named("auth")),
		Notes:         service.NewNoteService(store.Notes(), log.Named("notes")),
		Todos:         service.NewTodoService(store.Todos(), log.Named("todos")),
		Organizations: service.NewOrganizationService(store, log.Named("organizations")),
	}

	// 3. Initialize Server/Router, passing dependencies
	apiServer := server.NewServer(cfg, services, db, log)

	log.Info("Starting server", zap.String("addr", apiServer.Addr), zap.String("driver", cfg.Database.Driver))
	return listenAndServe(ctx, apiServer, db, log)
}
