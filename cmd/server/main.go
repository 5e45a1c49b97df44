package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/legallenshq/legal-lens-api/internal/analyzer"
	"github.com/legallenshq/legal-lens-api/internal/config"
	"github.com/legallenshq/legal-lens-api/internal/db"
	"github.com/legallenshq/legal-lens-api/internal/router"
	"github.com/legallenshq/legal-lens-api/internal/services"
	"github.com/legallenshq/legal-lens-api/internal/storage"
	"github.com/legallenshq/legal-lens-api/internal/store"
	"github.com/legallenshq/legal-lens-api/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	// Initialize result store
	var resultStore store.Store
	switch cfg.ResultsBackend {
	case "sqlite":
		if err := db.RunMigrations(cfg.SQLitePath); err != nil {
			logger.Fatal("Failed to run migrations", "error", err)
		}
		database, err := db.NewSQLiteDB(cfg.SQLitePath)
		if err != nil {
			logger.Fatal("Failed to open database", "error", err)
		}
		defer database.Close()
		resultStore = store.NewSQLiteStore(database)
	default:
		resultStore = store.NewMemoryStore()
	}

	// Optional archive of raw uploads
	var archive storage.Storage
	if cfg.S3Endpoint != "" {
		archive, err = storage.NewS3Storage(cfg)
		if err != nil {
			logger.Fatal("Failed to initialize S3 storage", "error", err)
		}
	}

	// Initialize analysis service
	llmAnalyzer := analyzer.NewOpenAIAnalyzer(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	analysisService := services.NewService(resultStore, llmAnalyzer, archive, cfg, logger)

	// Setup HTTP router
	handler := router.NewRouter(analysisService, logger)

	// Create HTTP server. Write timeout is generous: a request waits on the
	// model call before responding.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "results_backend", cfg.ResultsBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
