package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/darkodi/alias-buddy/internal/alias"
	"github.com/darkodi/alias-buddy/internal/analytics"
	"github.com/darkodi/alias-buddy/internal/config"
	"github.com/darkodi/alias-buddy/internal/handler"
	"github.com/darkodi/alias-buddy/internal/logger"
	"github.com/darkodi/alias-buddy/internal/middleware"
	"github.com/darkodi/alias-buddy/internal/repository"
	"github.com/darkodi/alias-buddy/internal/service"
	"github.com/darkodi/alias-buddy/internal/storage"
)

func main() {
	// ============================================================
	// LOAD CONFIGURATION
	// ============================================================
	fmt.Println("📋 Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	if cfg.IsDevelopment() {
		fmt.Printf("   Environment: %s\n", cfg.App.Environment)
		fmt.Printf("   Port: %s\n", cfg.Server.Port)
		fmt.Printf("   Storage: %s\n", cfg.Storage.Driver)
		fmt.Printf("   Base URL: %s\n", cfg.App.BaseURL)
	}

	// ============================================================
	// Initialize logger
	// ============================================================
	fmt.Println("📝 Initializing logger...")
	log := logger.New(cfg.Log)

	log.Info("starting alias-buddy",
		"level", cfg.Log.Level,
		"format", cfg.Log.Format,
		"environment", cfg.App.Environment)

	// ============================================================
	// INITIALIZE STORAGE
	// ============================================================
	fmt.Println("🗄️  Opening storage...")
	store, err := storage.Open(context.Background(), &cfg.Storage)
	if err != nil {
		log.Error("Failed to initialize storage", "driver", cfg.Storage.Driver, "error", err.Error())
		os.Exit(1)
	}
	log.Info("storage ready", "driver", cfg.Storage.Driver)

	// ============================================================
	// INITIALIZE ANALYTICS
	// ============================================================
	sinks := analytics.Multi{analytics.NewLogSink(log)}
	var posthog *analytics.PostHogSink
	if cfg.Analytics.PostHogKey != "" {
		posthog, err = analytics.NewPostHogSink(cfg.Analytics, log)
		if err != nil {
			log.Error("Failed to initialize posthog", "error", err.Error())
			os.Exit(1)
		}
		sinks = append(sinks, posthog)
		log.Info("posthog analytics enabled", "host", cfg.Analytics.PostHogHost)
	}

	// ============================================================
	// INITIALIZE LAYERS
	// ============================================================
	fmt.Println("⚙️  Initializing service...")
	repo := repository.NewAliasRepository(store, log)
	svc := service.NewAliasService(repo, alias.NewGenerator(nil, nil), sinks, log).
		WithBaseURL(cfg.App.BaseURL).
		WithMaxQuantity(cfg.App.MaxQuantity)

	fmt.Println("🌐 Setting up HTTP handlers...")
	h := handler.NewAliasHandler(svc, store, log)
	router := h.SetupRoutes()

	// ============================================================
	// BUILD MIDDLEWARE CHAIN
	// ============================================================
	middlewares := []middleware.Middleware{
		middleware.RequestID,
		middleware.RecoveryWithLogger(log),
		middleware.LoggingWithLogger(log),
	}
	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = middleware.NewRateLimiter(
			middleware.RateLimiterConfig{
				Rate:    cfg.RateLimit.Rate,
				Burst:   cfg.RateLimit.Burst,
				Cleanup: cfg.RateLimit.Cleanup,
			},
			log,
		)
		middlewares = append(middlewares, rateLimiter.Middleware())
		log.Info("rate limiter enabled",
			"rate", cfg.RateLimit.Rate,
			"burst", cfg.RateLimit.Burst,
		)
	}

	wrappedRouter := middleware.Chain(router, middlewares...)

	// ============================================================
	// CREATE SERVER WITH CONFIG TIMEOUTS
	// ============================================================
	addr := ":" + cfg.Server.Port
	server := &http.Server{
		Addr:         addr,
		Handler:      wrappedRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	// Channel to listen for shutdown signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Channel to track server errors
	serverErr := make(chan error, 1)

	go func() {
		if cfg.IsDevelopment() {
			fmt.Printf("🚀 Server starting on http://localhost%s\n", addr)
			fmt.Println("───────────────────────────────────────")
			fmt.Println("Endpoints:")
			fmt.Println("  POST   /aliases/validate - Validate a request")
			fmt.Println("  POST   /aliases          - Generate aliases")
			fmt.Println("  GET    /aliases          - List history")
			fmt.Println("  DELETE /aliases          - Clear history")
			fmt.Println("  GET    /aliases/export   - Download csv or json")
			fmt.Println("  GET    /settings         - Form settings")
			fmt.Println("  GET    /remaining        - Remaining suffix chars")
			fmt.Println("  GET    /share/{platform} - Share link")
			fmt.Println("  GET    /health           - Health check")
			fmt.Println("  GET    /metrics          - Prometheus metrics")
			fmt.Println("───────────────────────────────────────")
			fmt.Println("Press Ctrl+C to shutdown gracefully")
		}
		log.Info("server starting", "addr", "http://localhost"+addr)
		serverErr <- server.ListenAndServe()
	}()

	// ============================================================
	// WAIT FOR SHUTDOWN OR ERROR
	// ============================================================
	select {
	case err := <-serverErr:
		log.Error("server error", "error", err.Error())
		os.Exit(1)

	case sig := <-shutdown:
		log.Info("shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(
			context.Background(),
			cfg.Server.ShutdownTimeout,
		)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Error("graceful shutdown failed", "error", err.Error())
			// force close if graceful shutdown fails
			if err := server.Close(); err != nil {
				log.Error("forced shutdown failed", "error", err.Error())
			}
		}

		if rateLimiter != nil {
			rateLimiter.Stop()
		}

		// Flush queued analytics events
		if posthog != nil {
			if err := posthog.Close(); err != nil {
				log.Error("failed to flush analytics", "error", err.Error())
			}
		}

		if err := store.Close(); err != nil {
			log.Error("failed to close storage", "error", err.Error())
		}

		log.Info("server stopped")
	}
}
