package repository

import (
	"github.com/terrain-microservice/internal/domain"
)

// CoastlineRepository определяет доступ к справочному набору прибрежных точек.
// За этим интерфейсом допустима замена на полноценный полигональный датасет
// береговой линии или пространственный индекс без изменения вызывающего кода.
type CoastlineRepository interface {
	// NearestDistance возвращает минимальное расстояние по дуге большого круга
	// (в километрах) от точки до любой точки справочного набора
	NearestDistance(p domain.Point) float64

	// Size возвращает размер справочного набора
	Size() int
}
