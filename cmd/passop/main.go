package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	mongoadapter "github.com/ericfisherdev/passop/internal/adapter/driven/mongo"
	sqliteadapter "github.com/ericfisherdev/passop/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/passop/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/passop/internal/adapter/driving/web"
	"github.com/ericfisherdev/passop/internal/application"
	"github.com/ericfisherdev/passop/internal/config"
	"github.com/ericfisherdev/passop/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"store_driver", cfg.StoreDriver,
		"cors_origins", cfg.CORSOrigins,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open the configured store.
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if closeErr := store.Close(closeCtx); closeErr != nil {
			slog.Error("error closing store", "error", closeErr)
		}
	}()

	// 4. Wire the service and HTTP handlers.
	svc := application.NewCredentialService(store, slog.Default())
	apiHandler := httphandler.NewHandler(svc, slog.Default())

	mux := http.NewServeMux()
	httphandler.RegisterRoutes(mux, apiHandler)
	webhandler.RegisterRoutes(mux)

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(mux, slog.Default(), httphandler.NewCors(cfg.CORSOrigins))

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	slog.Info("passop started", "listen_addr", cfg.ListenAddr, "store_driver", cfg.StoreDriver)

	// 5. Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	// 6. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// openStore connects the backend named by cfg.StoreDriver. The Mongo store
// is retried with backoff until it answers or ConnectTimeout elapses.
func openStore(ctx context.Context, cfg *config.Config) (driven.CredentialStore, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
		if err != nil {
			return nil, err
		}
		slog.Info("database opened", "path", cfg.DBPath)

		if err := sqliteadapter.RunMigrations(db.Writer); err != nil {
			_ = db.Close()
			return nil, err
		}
		slog.Info("migrations complete")

		return sqliteadapter.NewCredentialRepo(db), nil

	default:
		store, err := mongoadapter.Connect(mongoadapter.Options{
			URI:        cfg.MongoURI,
			Database:   cfg.DBName,
			Collection: cfg.Collection,
			Logger:     slog.Default(),
		})
		if err != nil {
			return nil, err
		}

		if err := application.WaitForStore(ctx, store, cfg.ConnectTimeout, slog.Default()); err != nil {
			_ = store.Close(context.Background())
			return nil, err
		}
		slog.Info("connected to mongo", "database", cfg.DBName, "collection", cfg.Collection)

		return store, nil
	}
}
