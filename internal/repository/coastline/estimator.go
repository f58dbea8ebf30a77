package coastline

import (
	"math"

	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/domain"
	"github.com/terrain-microservice/internal/domain/repository"
	"github.com/terrain-microservice/internal/pkg/errors"
	"github.com/terrain-microservice/internal/pkg/utils"
)

// Ensure Estimator implements CoastlineRepository interface
var _ repository.CoastlineRepository = (*Estimator)(nil)

// Estimator - оценка расстояния до берега перебором справочного набора.
// Набор неизменяем после конструирования, запросы безопасны конкурентно.
// Сложность O(n) на запрос; для интерактивных одиночных запросов по набору
// в несколько тысяч точек этого достаточно. При росте набора допустима
// замена на k-d дерево или сетку за тем же интерфейсом.
type Estimator struct {
	points []domain.Point
	logger *zap.Logger
}

// NewEstimator создает Estimator со встроенным справочным набором
func NewEstimator(logger *zap.Logger) (*Estimator, error) {
	return NewEstimatorWithPoints(buildReferenceSet(), logger)
}

// NewEstimatorWithPoints создает Estimator с произвольным набором точек.
// Пустой набор - фатальная ошибка конфигурации: иначе запросы молча
// возвращали бы бесконечное расстояние.
func NewEstimatorWithPoints(points []domain.Point, logger *zap.Logger) (*Estimator, error) {
	if len(points) == 0 {
		return nil, errors.ErrMissingReferenceData
	}

	// защитная копия: набор не должен зависеть от мутаций у вызывающего
	own := make([]domain.Point, len(points))
	copy(own, points)

	logger.Info("Coastline reference set built",
		zap.Int("points", len(own)))

	return &Estimator{
		points: own,
		logger: logger,
	}, nil
}

// NearestDistance возвращает минимальное расстояние (км) от точки до набора.
// Линейный проход без раннего выхода: корректность важнее асимптотики
// на статическом наборе такого размера.
func (e *Estimator) NearestDistance(p domain.Point) float64 {
	min := math.MaxFloat64
	for _, ref := range e.points {
		d := utils.HaversineDistance(p.Lat, p.Lon, ref.Lat, ref.Lon)
		if d < min {
			min = d
		}
	}
	return min
}

// Size возвращает размер справочного набора
func (e *Estimator) Size() int {
	return len(e.points)
}
