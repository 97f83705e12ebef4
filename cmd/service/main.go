package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/entreplan/planner/internal"
	"github.com/entreplan/planner/internal/config"
	"github.com/entreplan/planner/internal/logging"
	"github.com/entreplan/planner/internal/qr"
	"github.com/entreplan/planner/internal/routes"
	"github.com/entreplan/planner/internal/session"
)

func main() {
	// Initialize shared dependencies
	logger := logging.NewLogger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String(logging.ErrorKey, err.Error()))
		os.Exit(1)
	}
	logger.Info("configuration loaded",
		slog.String("api_addr", cfg.APIAddr()),
		slog.String("health_addr", cfg.HealthAddr()),
		slog.String("default_platform", cfg.DefaultPlatform),
		slog.Bool("qr_decode_enabled", cfg.QRDecodeEnabled),
	)

	// Optional decode capability: absent means the endpoint degrades, not crashes.
	var decoder qr.Decoder = qr.UnavailableDecoder{}
	if cfg.QRDecodeEnabled {
		decoder = qr.ZXingDecoder{}
	}

	sessions := session.NewStore()

	// Create health check and planner http services
	healthService := internal.NewService(internal.ServiceConfig{
		Addr:   cfg.HealthAddr(),
		Logger: logger,
		Routes: routes.RegisterHealthRoutes(),
	})
	apiService := internal.NewService(internal.ServiceConfig{
		Addr:         cfg.APIAddr(),
		Logger:       logger,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		Routes: routes.RegisterPlannerRoutes(cfg.AuthConfig(), cfg.RateLimitConfig(), routes.PlannerDeps{
			Sessions:        sessions,
			Decoder:         decoder,
			DefaultPlatform: cfg.DefaultPlatform,
		}),
	})

	// Start http service threads
	go func() {
		if err := healthService.ListenAndServeWrapper("health check api"); err != nil && err != http.ErrServerClosed {
			logger.Error("health check service failed", slog.String(logging.ErrorKey, err.Error()))
			os.Exit(1)
		}
	}()
	go func() {
		if err := apiService.ListenAndServeWrapper("planner api"); err != nil && err != http.ErrServerClosed {
			logger.Error("planner service failed", slog.String(logging.ErrorKey, err.Error()))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	receivedSignal := <-quit

	// Shutdown http service threads gracefully
	logger.Info("shutting down service", slog.Any("OS signal received", os.Signal.String(receivedSignal)))
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := apiService.HTTPServer.Shutdown(ctx); err != nil {
		logger.Error("API service shutdown error", slog.String(logging.ErrorKey, err.Error()))
	}
	if err := healthService.HTTPServer.Shutdown(ctx); err != nil {
		logger.Error("health service shutdown error", slog.String(logging.ErrorKey, err.Error()))
	}
	logger.Info("exiting...")
}
