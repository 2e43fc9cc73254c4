// Package main is the entry point for the lavka API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lavka/internal/config"
	"lavka/internal/domain/inventory"
	"lavka/internal/domain/orders"
	"lavka/internal/domain/profile"
	"lavka/internal/domain/reports"
	"lavka/internal/infrastructure/export"
	v1 "lavka/internal/infrastructure/http/v1"
	"lavka/internal/infrastructure/storage/jsonstore"
	"lavka/internal/scheduler"
	"lavka/pkg/logger"
)

func main() {
	cfg, err := config.Load(os.Getenv("ENV_FILE"))
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Info("starting lavka server")

	// --- Storage ---
	store, err := jsonstore.New(jsonstore.Config{
		Path:          cfg.DatabasePath(),
		BackupDir:     cfg.BackupDir(),
		RetentionDays: cfg.Storage.BackupRetentionDays,
	})
	if err != nil {
		log.Fatalw("failed to initialize storage", "error", err)
	}
	log.Infow("storage initialized", "path", cfg.DatabasePath())

	// --- Domain services ---
	profiles, err := profile.NewService(ctx, store)
	if err != nil {
		log.Fatalw("failed to load profiles", "error", err)
	}
	log.Infow("profiles loaded", "count", len(profiles.List(ctx)))

	inventorySvc := inventory.NewService(profiles, time.Now)
	orderProcessor := orders.NewProcessor(profiles, time.Now)
	reportsSvc := reports.NewService(profiles)

	exporter, err := export.New(profiles)
	if err != nil {
		log.Fatalw("failed to initialize exporter", "error", err)
	}

	// --- Background maintenance ---
	sched := scheduler.New(store, cfg.Maintenance.CleanupCron, log)
	sched.Start()
	defer sched.Stop()

	// --- Router ---
	router := v1.NewRouter(v1.RouterConfig{
		Logger:    log,
		Profiles:  profiles,
		Inventory: inventorySvc,
		Orders:    orderProcessor,
		Reports:   reportsSvc,
		Exporter:  exporter,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
