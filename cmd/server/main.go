// Package main is the entry point for the storefront association API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/domain/association"
	"storefront/internal/domain/ledger"
	"storefront/internal/domain/purge"
	"storefront/internal/domain/relations"
	v1 "storefront/internal/infrastructure/http/v1"
	"storefront/internal/infrastructure/metrics"
	"storefront/pkg/logger"
)

func main() {
	// Initialize logger
	env := getEnv("APP_ENV", "development")
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: env == "development",
		Service:     "storefront-api",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := logger.WithLogger(context.Background(), log)
	storage := getEnv("STORAGE", "postgres")
	log.Infow("starting storefront server", "storage", storage, "env", env)

	policy, err := association.ParseUpdatePolicy(getEnv("UPDATE_POLICY", "both"))
	if err != nil {
		log.Fatalw("invalid UPDATE_POLICY", "error", err)
	}

	keep, err := purge.ParseKeepList(getEnv("PURGE_KEEP", ""), relations.All())
	if err != nil {
		log.Fatalw("invalid PURGE_KEEP", "error", err)
	}

	// --- Storage ---
	var b *backend
	switch storage {
	case "postgres":
		b, err = newPostgresBackend(ctx, postgresSettings{
			DSN:              mustEnv("DATABASE_URL"),
			MaxConns:         int32(getEnvInt("DB_MAX_CONNS", 25)),
			StatementTimeout: getEnvDuration("DB_STATEMENT_TIMEOUT", 30*time.Second),
		})
	case "memory":
		b, err = newMemoryBackend(getEnv("SEED_DEMO_DATA", "false") == "true")
	default:
		err = fmt.Errorf("unknown STORAGE %q", storage)
	}
	if err != nil {
		log.Fatalw("failed to initialize storage", "storage", storage, "error", err)
	}
	defer b.Close()

	// --- Domain ---
	registry := relations.NewRegistry(b.lookups, b.repos, b.txManager, policy)
	ledgerService := ledger.NewService(b.ledgerRepo, b.txManager)

	var cascade purge.CascadePolicy
	if len(keep) > 0 {
		cascade = purge.KeepRelations(keep...)
	}
	purgeService := purge.NewService(b.stores, registry.Services(), ledgerService, b.txManager, cascade)

	if b.afterWire != nil {
		if err := b.afterWire(ctx, registry); err != nil {
			log.Fatalw("failed to load demo data", "error", err)
		}
	}

	log.Infow("association core ready",
		"relations", len(registry.Services()),
		"update_policy", policy.String(),
		"purge_keep", keep,
	)

	// --- Metrics ---
	m := metrics.New()
	m.ObserveAssociations(registry.Services())
	if b.poolStats != nil {
		m.ObservePool(b.poolStats)
	}

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:       log,
		Associations: registry.Services(),
		Ledger:       ledgerService,
		Purge:        purgeService,
		Metrics:      m,
		Storage:      storage,
		DB:           b.pinger,
		Debug:        env == "development",
	})

	// --- HTTP Server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second))
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
