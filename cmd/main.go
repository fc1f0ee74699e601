package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"doc-qa-assistant/internal/ai"
	"doc-qa-assistant/internal/config"
	"doc-qa-assistant/internal/logger"
	"doc-qa-assistant/internal/telemetry"
	"doc-qa-assistant/middleware"
	"doc-qa-assistant/models"
	"doc-qa-assistant/routes"
	"doc-qa-assistant/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	// An unknown provider mode must stop startup
	mode, err := ai.ParseMode(cfg.AIProvider)
	if err != nil {
		log.Fatal("Invalid AI_PROVIDER:", err)
	}

	if cfg.TracingEnabled() {
		shutdownTracer, err := telemetry.InitTracer(cfg.ServiceName, cfg.OTLPEndpoint)
		if err != nil {
			logger.Warn("Tracing disabled", "error", err)
		} else {
			defer shutdownTracer()
		}
	}

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		logger.Warn("Metrics disabled", "error", err)
	}

	selector := ai.NewSelector(ai.OpenAIConfig{
		APIKey:  cfg.OpenAIAPIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
	}, metrics)

	svc := services.NewDocumentService(
		services.NewDocumentStore(),
		services.NewExtractor(),
		selector,
		services.DocumentServiceConfig{
			Chunking:        models.ChunkingConfig{ChunkSize: cfg.ChunkSize, Overlap: cfg.ChunkOverlap},
			MaxContextChars: cfg.MaxContextChars,
			ProviderMode:    mode,
		},
		metrics,
	)

	if mode == ai.ModeAuto && cfg.OpenAIAPIKey == "" {
		logger.Info("No OpenAI API key configured, answering with keyword matching")
	} else {
		logger.Info("Answering provider configured", "mode", string(mode), "model", cfg.OpenAIModel)
	}

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Requested-With", middleware.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	if cfg.TracingEnabled() {
		router.Use(middleware.TracingMiddleware(cfg.ServiceName))
		router.Use(middleware.EnrichTrace())
	}
	router.Use(middleware.MetricsMiddleware(metrics))
	router.Use(middleware.RateLimitMiddleware(cfg))

	routes.SetupDocumentRoutes(router, cfg, svc)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
