package repository

import (
	"context"

	"github.com/terrain-microservice/internal/domain"
)

// GeocodeResult - один кандидат геокодирования
type GeocodeResult struct {
	Point       domain.Point `json:"point"`
	DisplayName string       `json:"display_name"`
}

// GeocodeRepository определяет методы для геокодирования свободного текста
type GeocodeRepository interface {
	// Search возвращает кандидатов координат по текстовому запросу
	Search(ctx context.Context, query string, limit int) ([]GeocodeResult, error)
}
