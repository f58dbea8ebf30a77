package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/domain"
	"github.com/terrain-microservice/internal/domain/repository"
	"github.com/terrain-microservice/internal/usecase/dto"
)

// StatsUseCase - use case статистики выданных классификаций
type StatsUseCase struct {
	cacheRepo repository.CacheRepository
	logger    *zap.Logger
}

// NewStatsUseCase - создание нового StatsUseCase
func NewStatsUseCase(cacheRepo repository.CacheRepository, logger *zap.Logger) *StatsUseCase {
	return &StatsUseCase{cacheRepo: cacheRepo, logger: logger}
}

// GetStats возвращает счётчики классификаций по категориям
func (uc *StatsUseCase) GetStats(ctx context.Context) (*dto.StatsResponse, error) {
	counts, err := uc.cacheRepo.GetCategoryCounts(ctx)
	if err != nil {
		uc.logger.Error("Failed to read category counters", zap.Error(err))
		return nil, err
	}

	var total int64
	for _, c := range domain.Categories {
		total += counts[c]
	}

	return &dto.StatsResponse{Counts: counts, Total: total}, nil
}
