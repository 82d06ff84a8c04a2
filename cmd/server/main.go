package main

import (
	"context"
	"expvar"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-tracker/internal/api"
	"stock-tracker/internal/config"
	"stock-tracker/internal/db"
	"stock-tracker/internal/finnhub"
	"stock-tracker/internal/stocks"
	"stock-tracker/internal/telemetry"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	if err := database.Ping(pingCtx); err != nil {
		cancel()
		slog.Error("database unreachable", "error", err)
		os.Exit(1)
	}
	cancel()

	client := finnhub.New(cfg.FinnhubBaseURL, cfg.FinnhubAPIKey, cfg.FinnhubAPIDelay)
	service := stocks.NewService(database, client)
	apiServer := api.NewServer(service)

	router := chi.NewRouter()
	router.Use(api.Recoverer)
	router.Use(telemetry.RequestMetricsMiddleware)
	router.Handle("/debug/vars", expvar.Handler())
	apiServer.Mount(router)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	slog.Info("stock api server started", "port", cfg.Port)

	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err := <-serverErrCh:
		slog.Error("server terminated unexpectedly", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
