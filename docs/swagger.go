// Package docs Terrain Microservice API.
//
// Микросервис классификации рельефа по модели ainthinai.
// Определяет категорию местности по трём признакам точки: высоте,
// расстоянию до побережья и годовым осадкам.
//
// Основные возможности:
// - Классификация точки по координатам с объяснением сработавшего правила
// - Классификация готового образца с переопределяемыми порогами
// - Пакетная классификация (синхронная и асинхронная через Redis Streams)
// - Геокодирование свободного текста в кандидатов координат
// - Диагностическая трассировка правил обоих ярусов
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
