package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/config"
	"github.com/terrain-microservice/internal/infrastructure/openelevation"
	"github.com/terrain-microservice/internal/infrastructure/openmeteo"
	"github.com/terrain-microservice/internal/pkg/logger"
	"github.com/terrain-microservice/internal/repository/cache"
	"github.com/terrain-microservice/internal/repository/coastline"
	redisRepo "github.com/terrain-microservice/internal/repository/redis"
	"github.com/terrain-microservice/internal/usecase"
	"github.com/terrain-microservice/internal/worker"
	terrainWorker "github.com/terrain-microservice/internal/worker/terrain"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Terrain Classification Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup))

	// 3. Build coastline reference set
	coastRepo, err := coastline.NewEstimator(log)
	if err != nil {
		log.Fatal("Failed to build coastline reference set", zap.Error(err))
	}

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

	// 5. Initialize repositories
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)
	elevationRepo := openelevation.NewClient(&cfg.Elevation, log)
	climateRepo := openmeteo.NewClient(&cfg.Climate, log)

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

	// 7. Initialize workers
	classificationWorker := terrainWorker.NewClassificationWorker(
		streamRepo,
		classifyUC,
		cfg.Worker.ConsumerGroup,
		log,
	)

	// 8. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(classificationWorker)

	// 9. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker stopped")
}
