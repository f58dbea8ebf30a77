package repository

import (
	"context"

	"github.com/terrain-microservice/internal/domain"
)

// ElevationRepository определяет методы для получения высоты точки
type ElevationRepository interface {
	// GetElevation возвращает высоту точки в метрах над уровнем моря.
	// estimated=true означает, что провайдер не дал данных и подставлено
	// документированное значение по умолчанию
	GetElevation(ctx context.Context, p domain.Point) (elevationM float64, estimated bool, err error)
}
