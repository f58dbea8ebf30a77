package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/domain/repository"
	"github.com/terrain-microservice/internal/pkg/errors"
	"github.com/terrain-microservice/internal/usecase/dto"
)

const defaultSearchLimit = 5

// SearchUseCase - use case геокодирования свободного текста
type SearchUseCase struct {
	geocodeRepo repository.GeocodeRepository
	cacheRepo   repository.CacheRepository
	logger      *zap.Logger
	cacheTTL    time.Duration
}

// NewSearchUseCase - создание нового SearchUseCase
func NewSearchUseCase(
	geocodeRepo repository.GeocodeRepository,
	cacheRepo repository.CacheRepository,
	logger *zap.Logger,
	cacheTTL time.Duration,
) *SearchUseCase {
	return &SearchUseCase{
		geocodeRepo: geocodeRepo,
		cacheRepo:   cacheRepo,
		logger:      logger,
		cacheTTL:    cacheTTL,
	}
}

// Search геокодирует текстовый запрос в кандидатов координат
func (uc *SearchUseCase) Search(ctx context.Context, req dto.SearchRequest) (*dto.SearchResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	cacheKey := fmt.Sprintf("geocode:%s:%d", req.Query, limit)

	if data, err := uc.cacheRepo.Get(ctx, cacheKey); err == nil && data != nil {
		var cached dto.SearchResponse
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
		uc.logger.Warn("Failed to unmarshal cached geocode response", zap.String("query", req.Query))
	}

	found, err := uc.geocodeRepo.Search(ctx, req.Query, limit)
	if err != nil {
		uc.logger.Error("Geocode provider failed",
			zap.String("query", req.Query), zap.Error(err))
		return nil, err
	}
	if len(found) == 0 {
		return nil, errors.ErrGeocodeNotFound
	}

	results := make([]dto.SearchResult, len(found))
	for i, r := range found {
		results[i] = dto.SearchResult{
			Lat:         r.Point.Lat,
			Lon:         r.Point.Lon,
			DisplayName: r.DisplayName,
		}
	}

	response := &dto.SearchResponse{Results: results, Total: len(results)}

	if data, err := json.Marshal(response); err == nil {
		if err := uc.cacheRepo.Set(ctx, cacheKey, data, uc.cacheTTL); err != nil {
			uc.logger.Warn("Failed to cache geocode response", zap.Error(err))
		}
	}

	return response, nil
}
