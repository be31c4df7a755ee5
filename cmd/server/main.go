// backend/cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"

	"github.com/radarimovel/backend/internal/api/handlers"
	"github.com/radarimovel/backend/internal/config"
	"github.com/radarimovel/backend/internal/database"
	"github.com/radarimovel/backend/internal/health"
	"github.com/radarimovel/backend/internal/listing"
	"github.com/radarimovel/backend/internal/middleware"
	"github.com/radarimovel/backend/internal/news"
	"github.com/radarimovel/backend/internal/report"
	"github.com/radarimovel/backend/internal/repository"
	"github.com/radarimovel/backend/internal/services"
	"github.com/radarimovel/backend/pkg/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting Radar Imóvel analysis service...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := cfg.ValidateOpenAI(); err != nil {
		logger.WithError(err).Fatal("OpenAI configuration validation failed")
	}

	// Initialize database and cache
	dbConfig := &database.Config{
		DatabaseURL: cfg.Database.URL,
		RedisURL:    cfg.Redis.URL,
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	dbManager, err := database.NewManager(dbConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database manager")
	}
	defer dbManager.Close()

	if err := dbManager.Migrate(); err != nil {
		logger.WithError(err).Fatal("Database migration failed")
	}

	repoManager := repository.NewRepositoryManager(dbManager.DB)
	cache := database.NewCache(dbManager.Redis, logger)

	// Wire the analysis pipeline
	openaiClient := openai.NewClient(cfg.OpenAI.APIKey)
	generator := report.NewGenerator(openaiClient, cfg.OpenAI.Model, logger)
	newsClient := news.NewClient(cfg.News.Endpoint, cfg.News.APIKey, logger)
	scraper := listing.NewScraper(logger)

	analyzeService := services.NewAnalyzeService(
		generator,
		newsClient,
		scraper,
		repoManager,
		cache,
		time.Duration(cfg.App.CacheTTLMin)*time.Minute,
		logger,
	)

	analyzeHandler := handlers.NewAnalyzeHandler(analyzeService, repoManager, cfg.App.City, logger)

	checker := health.NewHealthChecker(dbManager, repoManager.SystemHealth, logger, "", cfg.OpenAI.APIKey)
	healthHandler := handlers.NewHealthHandler(checker, logger)

	healthCtx, stopHealth := context.WithCancel(context.Background())
	defer stopHealth()
	go checker.PeriodicHealthCheck(healthCtx, time.Minute)

	// Routes
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.App.CORSOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestID())

	rateLimiter := middleware.NewRateLimiter(cfg.App.RatePerMin)

	router.GET("/health", healthHandler.HandleHealth)
	router.GET("/health/detailed", healthHandler.HandleDetailedHealth)

	v1 := router.Group("/v1")
	v1.POST("/analyze", rateLimiter.RateLimit(), analyzeHandler.HandleAnalyze)
	v1.GET("/analyses/recent", analyzeHandler.HandleRecentAnalyses)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Analysis service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down analysis service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Forced shutdown")
	}

	logger.Info("Analysis service stopped")
}
