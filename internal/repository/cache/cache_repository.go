package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/domain"
	"github.com/terrain-microservice/internal/domain/repository"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// classificationKey округляет координаты до 4 знаков (~11 м),
// чтобы близкие запросы попадали в один ключ
func classificationKey(p domain.Point) string {
	return fmt.Sprintf("classify:%.4f:%.4f", p.Lat, p.Lon)
}

// GetClassification получает закешированный результат классификации точки
// вместе с флагами деградации провайдеров
func (r *cacheRepository) GetClassification(ctx context.Context, p domain.Point) (*domain.CachedClassification, error) {
	data, err := r.Get(ctx, classificationKey(p))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil // Cache miss
	}

	var cls domain.CachedClassification
	if err := json.Unmarshal(data, &cls); err != nil {
		r.logger.Error("Failed to unmarshal classification from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal classification: %w", err)
	}

	return &cls, nil
}

// SetClassification сохраняет результат классификации точки
func (r *cacheRepository) SetClassification(ctx context.Context, p domain.Point, cls *domain.CachedClassification, ttl time.Duration) error {
	data, err := json.Marshal(cls)
	if err != nil {
		r.logger.Error("Failed to marshal classification", zap.Error(err))
		return fmt.Errorf("marshal classification: %w", err)
	}

	return r.Set(ctx, classificationKey(p), data, ttl)
}

// IncrCategoryCount увеличивает счётчик выданных классификаций категории
func (r *cacheRepository) IncrCategoryCount(ctx context.Context, category domain.Category) error {
	key := fmt.Sprintf("stats:category:%s", category)
	if err := r.client.Incr(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to increment category counter",
			zap.String("category", string(category)), zap.Error(err))
		return fmt.Errorf("incr category count: %w", err)
	}
	return nil
}

// GetCategoryCounts возвращает счётчики по всем категориям
func (r *cacheRepository) GetCategoryCounts(ctx context.Context) (map[domain.Category]int64, error) {
	keys := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		keys[i] = fmt.Sprintf("stats:category:%s", c)
	}

	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		r.logger.Error("Failed to get category counters", zap.Error(err))
		return nil, fmt.Errorf("get category counts: %w", err)
	}

	counts := make(map[domain.Category]int64, len(domain.Categories))
	for i, c := range domain.Categories {
		counts[c] = 0
		if s, ok := vals[i].(string); ok {
			var n int64
			if _, err := fmt.Sscanf(s, "%d", &n); err == nil {
				counts[c] = n
			}
		}
	}

	return counts, nil
}
