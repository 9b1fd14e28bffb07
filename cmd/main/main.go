package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"stockboard-service/internal/clients/stockfeed"
	"stockboard-service/internal/config"
	"stockboard-service/internal/events"
	"stockboard-service/internal/handlers"
	"stockboard-service/internal/middleware"
	"stockboard-service/internal/repository"

	gosharedmw "github.com/Tesseract-Nexus/go-shared/middleware"
	"github.com/Tesseract-Nexus/go-shared/tracing"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()
	if cfg.StockFeedURL == "" {
		log.Fatal("STOCK_FEED_URL is required")
	}

	// Initialize logrus logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Initialize NATS event publisher (optional - graceful degradation if NATS unavailable)
	var eventPublisher *events.StockEventPublisher
	if cfg.NATSURL != "" {
		var err error
		eventPublisher, err = events.NewStockEventPublisher(cfg.NATSURL, logger)
		if err != nil {
			log.Printf("Warning: Failed to initialize NATS event publisher: %v", err)
			log.Println("Continuing without event publishing...")
		} else {
			log.Println("✓ Connected to NATS JetStream for event publishing")
			defer eventPublisher.Close()
		}
	} else {
		log.Println("NATS_URL not configured, event publishing disabled")
	}

	// Initialize snapshot store and upstream feed client
	stockRepo := repository.NewStockRepository()
	feedClient := stockfeed.NewClient(cfg.StockFeedURL, logger)

	// Initialize handlers
	stockHandler := handlers.NewStockHandler(stockRepo, feedClient, eventPublisher, cfg, logger)
	exportHandler := handlers.NewExportHandler(stockRepo)

	// Initialize OpenTelemetry tracing
	var tracerProvider *tracing.TracerProvider
	var err error
	if cfg.Environment == "production" {
		tracerProvider, err = tracing.InitTracer(tracing.ProductionConfig("stockboard-service"))
	} else {
		tracerProvider, err = tracing.InitTracer(tracing.DefaultConfig("stockboard-service"))
	}
	if err != nil {
		log.Printf("WARNING: Failed to initialize tracing: %v (continuing without tracing)", err)
	} else {
		log.Println("✓ OpenTelemetry tracing initialized")
	}

	// Initialize Prometheus metrics
	metrics := gosharedmw.InitGlobalMetrics("stockboard", "stockboard_service")
	log.Println("✓ Prometheus metrics initialized")

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	// Add observability middleware (metrics + tracing)
	router.Use(metrics.Middleware())
	router.Use(tracing.GinMiddleware("stockboard-service"))

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Health check endpoints
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", stockHandler.ExtendedHealthCheck)
	router.GET("/metrics", gosharedmw.Handler())

	// API routes
	api := router.Group("/api/v1")

	stock := api.Group("/stock")
	{
		stock.GET("", stockHandler.ListStock)
		stock.GET("/summary", stockHandler.GetSummary)
		stock.POST("/refresh", stockHandler.RefreshStock)
		stock.GET("/export", exportHandler.ExportStock)
	}

	api.GET("/inbound", stockHandler.ListInbound)
	api.GET("/quality", stockHandler.ListQuality)
	api.GET("/analytics", stockHandler.GetAnalytics)

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Stockboard service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	log.Println("Shutting down stockboard-service...")

	// Shutdown tracer provider
	if tracerProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer provider: %v", err)
		} else {
			log.Println("✓ Tracer provider shut down")
		}
	}

	log.Println("Stockboard service stopped")
}
