// @title           Project Gallery API
// @version         1.0.0
// @description     List, create and delete gallery projects. Images are stored with a remote asset provider, metadata in the record store.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:3000
// @BasePath  /api

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"project-gallery-backend/internal/cloudinary"
	"project-gallery-backend/internal/config"
	"project-gallery-backend/internal/database"
	"project-gallery-backend/internal/handlers"
	"project-gallery-backend/internal/logging"
	"project-gallery-backend/internal/services"
	"project-gallery-backend/internal/supabase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Record store
	records, err := database.Open(ctx, cfg.DatabaseURL, cfg.DatabaseName, logger)
	if err != nil {
		logger.Fatal("Failed to connect to record store", zap.Error(err))
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := records.Close(closeCtx); err != nil {
			logger.Warn("Failed to close record store", zap.Error(err))
		}
	}()

	// Asset store
	assets, err := newAssetStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize asset store", zap.Error(err))
	}
	logger.Info("Asset store ready",
		zap.String("provider", cfg.AssetProvider),
		zap.String("folder", cfg.AssetFolder))

	projectService := services.NewProjectService(records, assets, logger)
	router := handlers.NewRouter(projectService, cfg.StaticDir, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
}

func newAssetStore(cfg *config.Config) (services.AssetStore, error) {
	switch cfg.AssetProvider {
	case config.AssetProviderSupabase:
		return supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, cfg.SupabaseStorageBucket, cfg.AssetFolder)
	default:
		return cloudinary.NewClient(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.AssetFolder)
	}
}
