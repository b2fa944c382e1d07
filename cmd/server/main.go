package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/estates/internal/config"
	"github.com/stwalsh4118/estates/internal/database"
	"github.com/stwalsh4118/estates/internal/filter"
	"github.com/stwalsh4118/estates/internal/handlers"
	"github.com/stwalsh4118/estates/internal/logger"
	"github.com/stwalsh4118/estates/internal/media"
	"github.com/stwalsh4118/estates/internal/middleware"
	"github.com/stwalsh4118/estates/internal/repository"
	"github.com/stwalsh4118/estates/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
	startupTimeout  = 15 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(logger.Options{
		Env:   cfg.Server.Env,
		Level: cfg.Server.LogLevel,
	})
	log.Info("Starting Estates API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	profiles, err := filter.LoadProfiles(cfg.Filters.ProfilesPath)
	if err != nil {
		log.Fatal("Failed to load filter profiles", err, map[string]interface{}{
			"path": cfg.Filters.ProfilesPath,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		cancel()
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		cancel()
		log.Fatal("Failed to prepare database schema", err, nil)
	}
	cancel()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	if err := handlers.RegisterValidators(); err != nil {
		log.Fatal("Failed to register request validators", err, nil)
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	listingRepo := repository.NewListingRepository(db)
	listingService := services.NewListingService(listingRepo, profiles, log)
	resolver := media.NewResolver(cfg.Media.BaseURL)

	handlers.RegisterRoutes(router,
		handlers.NewHealthHandler(db, cfg.Server.Env),
		handlers.NewListingHandler(listingService, profiles, resolver),
		handlers.NewAdminHandler(listingService, resolver),
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...", nil)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
