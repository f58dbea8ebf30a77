package main

// @title Terrain Microservice API
// @version 1.0.0
// @description Микросервис классификации рельефа по модели ainthinai. Определяет категорию местности (neithal - побережье, kurinji - горы, paalai - засушливые земли, mullai - леса, marudham - равнины) по координатам точки.
// @description
// @description Основные возможности:
// @description - Классификация точки по координатам с объяснением сработавшего правила
// @description - Классификация готового образца с переопределяемыми порогами
// @description - Пакетная классификация (синхронная и асинхронная через Redis Streams)
// @description - Геокодирование свободного текста в кандидатов координат
// @description - Диагностическая трассировка правил обоих ярусов

// @contact.name API Support
// @contact.email support@terrain-microservice.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/terrain-microservice/docs/swagger"
	"github.com/terrain-microservice/internal/config"
	httpDelivery "github.com/terrain-microservice/internal/delivery/http"
	"github.com/terrain-microservice/internal/delivery/http/handler"
	"github.com/terrain-microservice/internal/infrastructure/nominatim"
	"github.com/terrain-microservice/internal/infrastructure/openelevation"
	"github.com/terrain-microservice/internal/infrastructure/openmeteo"
	"github.com/terrain-microservice/internal/metrics"
	"github.com/terrain-microservice/internal/pkg/logger"
	"github.com/terrain-microservice/internal/repository/cache"
	"github.com/terrain-microservice/internal/repository/coastline"
	redisRepo "github.com/terrain-microservice/internal/repository/redis"
	"github.com/terrain-microservice/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Terrain Microservice")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
	)

	// 3. Build coastline reference set
	coastRepo, err := coastline.NewEstimator(log)
	if err != nil {
		log.Fatal("Failed to build coastline reference set", zap.Error(err))
	}
	log.Info("Coastline reference set ready", zap.Int("points", coastRepo.Size()))

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}
	log.Info("Redis connected")

	// 5. Initialize repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	elevationRepo := openelevation.NewClient(&cfg.Elevation, log)
	climateRepo := openmeteo.NewClient(&cfg.Climate, log)
	geocodeRepo := nominatim.NewClient(&cfg.Geocode, log)

	log.Info("Repositories initialized")

	// 6. Initialize use cases
	classifyUC := usecase.NewClassifyUseCase(
		coastRepo,
		elevationRepo,
		climateRepo,
		cacheRepo,
		streamRepo,
		cfg.GetThresholds(),
		log,
		cfg.Cache.ClassificationTTL,
		cfg.Elevation.DefaultElevationM,
		cfg.Climate.DefaultPrecipitationMm,
	)

	searchUC := usecase.NewSearchUseCase(
		geocodeRepo,
		cacheRepo,
		log,
		cfg.Cache.GeocodeTTL,
	)

	statsUC := usecase.NewStatsUseCase(cacheRepo, log)

	// 7. Initialize handlers
	classifyHandler := handler.NewClassifyHandler(classifyUC, log)
	searchHandler := handler.NewSearchHandler(searchUC, log)
	statsHandler := handler.NewStatsHandler(statsUC, log)

	// 8. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		classifyHandler,
		searchHandler,
		statsHandler,
	)

	// 9. Metrics endpoint on a separate listener
	if cfg.Metrics.Enabled {
		go func() {
			log.Info("Starting metrics server", zap.Int("port", cfg.Metrics.Port))
			if err := metrics.Serve(cfg.Metrics.Port); err != nil {
				log.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	// 10. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}

	log.Info("Server stopped")
}
