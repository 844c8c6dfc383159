package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"

	"github.com/FranciscoGomes20/pdv-project/internal/adapter/fsm"
	"github.com/FranciscoGomes20/pdv-project/internal/adapter/otel"
	"github.com/FranciscoGomes20/pdv-project/internal/adapter/river"
	"github.com/FranciscoGomes20/pdv-project/internal/adapter/sqlite"
	"github.com/FranciscoGomes20/pdv-project/internal/app"

	handler "github.com/FranciscoGomes20/pdv-project/internal/adapter/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	port := envOrDefault("PORT", "8080")
	dbPath := envOrDefault("DATABASE_PATH", "pdv.db")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Telemetry ---
	providers, err := otel.Setup(ctx, otel.ConfigFromEnv())
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			slog.Error("otel shutdown", "error", err)
		}
	}()

	// --- Adapters (out) ---
	db, err := otel.OpenDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	store, err := sqlite.NewFromDB(db)
	if err != nil {
		return err
	}

	riverClient, err := river.Setup(ctx, db)
	if err != nil {
		return err
	}
	if err := riverClient.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := riverClient.Stop(stopCtx); err != nil {
			slog.Error("river stop", "error", err)
		}
	}()

	publisher := otel.NewTracingPublisher(river.NewPublisher(riverClient))
	sessions := otel.NewTracingSessionRepository(store.Sessions())
	sales := otel.NewTracingSaleRepository(store.Sales())

	// --- Application ---
	directory := app.NewDirectoryService(store.Tenants(), store.Operators())
	catalog := app.NewCatalogService(store.Catalog(), store.Registers())
	sessionSvc := app.NewSessionService(store.Registers(), sessions, publisher, fsm.New())
	saleSvc := app.NewSaleService(store.Catalog(), store.Registers(), sessions, sales, publisher)
	syncSvc := app.NewSyncService(store.Tenants(), store.Sync())

	// --- Adapters (in) ---
	router := chi.NewMux()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(otelchi.Middleware("pdv", otelchi.WithChiRoutes(router)))

	api := humachi.New(router, huma.DefaultConfig("pdv", "0.1.0"))
	api.UseMiddleware(handler.NewIdentityMiddleware(api, directory))
	handler.Register(api, handler.Services{
		Directory: directory,
		Catalog:   catalog,
		Sessions:  sessionSvc,
		Sales:     saleSvc,
		Sync:      syncSvc,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("pdv listening on :%s", port)
		log.Printf("API docs: http://localhost:%s/docs", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Println("stopped")
	return nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
