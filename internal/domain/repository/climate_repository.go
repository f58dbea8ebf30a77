package repository

import (
	"context"

	"github.com/terrain-microservice/internal/domain"
)

// ClimateRepository определяет методы для получения климатических данных
type ClimateRepository interface {
	// GetAnnualPrecipitation возвращает сумму осадков за последние 12 месяцев (мм).
	// estimated=true означает, что провайдер не дал данных и подставлено
	// документированное значение по умолчанию
	GetAnnualPrecipitation(ctx context.Context, p domain.Point) (precipitationMm float64, estimated bool, err error)
}
