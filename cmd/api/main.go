package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/nutritrack/backend/config"
	"github.com/nutritrack/backend/internal/api"
	"github.com/nutritrack/backend/internal/database"
	"github.com/nutritrack/backend/internal/middleware"
	"github.com/nutritrack/backend/internal/provider/openfoodfacts"
	"github.com/nutritrack/backend/internal/router"
	"github.com/nutritrack/backend/internal/server"
	"github.com/nutritrack/backend/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	lookup := openfoodfacts.NewClient(cfg.OpenFoodFactsURL)

	var detector service.LabelDetector
	if cfg.ScanS3Bucket != "" {
		vision, err := service.NewVisionService(context.Background(), cfg.AWSRegion, cfg.ScanS3Bucket)
		if err != nil {
			log.Printf("Image scanning disabled: %v", err)
		} else {
			detector = vision
		}
	}

	var generator service.MenuGenerator
	llm, err := service.NewLLMService(cfg.LLMAPIKey, cfg.LLMAPIURL, cfg.LLMModel)
	if err != nil {
		log.Printf("Menu generation disabled: %v", err)
	} else {
		generator = llm
	}

	handlers := router.Handlers{
		Statistics: api.NewStatisticsHandler(service.NewStatisticsService(db, cfg.ClampAchievementProgress)),
		Scan:       api.NewScanHandler(service.NewScanService(db, redisClient, lookup, detector), service.NewMealService(db)),
		Menu:       api.NewMenuHandler(service.NewMenuService(db, generator)),
		User:       api.NewUserHandler(service.NewTargetsService(db)),
	}
	limiters := router.Limiters{
		Scan:           middleware.NewScanRateLimiter(redisClient),
		MenuGeneration: middleware.NewMenuGenerationRateLimiter(redisClient),
	}

	engine := router.SetupRouter(db, handlers, limiters, cfg.CORSAllowedOrigins)
	srv := server.NewServer(engine, cfg.ServerHost, cfg.ServerPort)

	errChan := make(chan error, 1)
	go func() {
		log.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received signal: %v", sig)
	}

	log.Println("Shutting down server...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
