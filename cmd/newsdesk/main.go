// Package main is the entry point for the newsdesk API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"

	"newsdesk/internal/cache"
	"newsdesk/internal/config"
	"newsdesk/internal/database"
	"newsdesk/internal/handlers"
	"newsdesk/internal/middleware"
	"newsdesk/internal/router"
	"newsdesk/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// In development, fall back to a hash of the literal token "admin" so
	// the admin API is usable out of the box. Production refuses to start
	// without ADMIN_TOKEN_HASH (enforced by config.Load).
	adminTokenHash := cfg.AdminTokenHash
	if adminTokenHash == "" && cfg.IsDev() {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
		if err != nil {
			slog.Error("failed to derive dev admin token hash", "error", err)
			os.Exit(1)
		}
		adminTokenHash = string(hash)
		slog.Warn("ADMIN_TOKEN_HASH not set, using dev token \"admin\"")
	}

	// Connect to Valkey. The payload cache is optional: without Valkey the
	// API serves straight from PostgreSQL.
	var payloads *cache.PayloadCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, serving uncached", "error", err)
	} else {
		defer valkeyClient.Close()
		payloads = cache.NewPayloadCache(valkeyClient, cache.DefaultPayloadTTL)
	}

	// Initialize data stores.
	postStore := store.NewPostStore(db)
	categoryStore := store.NewCategoryStore(db)
	tagStore := store.NewTagStore(db)
	pageStore := store.NewPageStore(db)
	menuStore := store.NewMenuStore(db, pageStore, categoryStore)
	profileStore := store.NewProfileStore(db)
	settingStore := store.NewSettingStore(db)
	visitStore := store.NewVisitStore(db)

	// Create handler groups with their dependencies.
	publicHandlers := handlers.NewPublic(postStore, categoryStore, menuStore, pageStore, tagStore, settingStore, visitStore, payloads)
	adminHandlers := handlers.NewAdmin(postStore, categoryStore, tagStore, menuStore, pageStore, profileStore, settingStore, visitStore, payloads)

	// Per-IP rate limiting on the public surface.
	limiter := middleware.NewRateLimiter(20, 40)
	defer limiter.Stop()

	r := router.New(publicHandlers, adminHandlers, limiter, adminTokenHash)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
