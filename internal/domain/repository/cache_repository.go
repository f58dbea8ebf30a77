package repository

import (
	"context"
	"time"

	"github.com/terrain-microservice/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetClassification получает закешированный результат классификации точки
	// вместе с флагами деградации провайдеров
	GetClassification(ctx context.Context, p domain.Point) (*domain.CachedClassification, error)

	// SetClassification сохраняет результат классификации точки
	SetClassification(ctx context.Context, p domain.Point, cls *domain.CachedClassification, ttl time.Duration) error

	// IncrCategoryCount увеличивает счётчик выданных классификаций категории
	IncrCategoryCount(ctx context.Context, category domain.Category) error

	// GetCategoryCounts возвращает счётчики по всем категориям
	GetCategoryCounts(ctx context.Context) (map[domain.Category]int64, error)
}
