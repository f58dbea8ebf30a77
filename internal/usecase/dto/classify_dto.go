package dto

import "github.com/terrain-microservice/internal/domain"

// ClassifyRequest - запрос на классификацию точки по координатам
type ClassifyRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// ClassifyResponse - результат классификации точки
type ClassifyResponse struct {
	Point                  domain.Point          `json:"point"`
	Category               domain.Category       `json:"category"`
	CategoryDescription    string                `json:"category_description"`
	Tier                   domain.Tier           `json:"tier"`
	Rule                   string                `json:"rule"`
	Explanations           []string              `json:"explanations"`
	Sample                 domain.TerrainSample  `json:"sample"`
	ElevationEstimated     bool                  `json:"elevation_estimated"`
	PrecipitationEstimated bool                  `json:"precipitation_estimated"`
	Cached                 bool                  `json:"cached"`
}

// ThresholdsDTO - переопределение порогов в запросе
type ThresholdsDTO struct {
	CoastalDistanceKm  *float64 `json:"coastal_distance_km,omitempty" validate:"omitempty,gt=0"`
	HighElevationM     *float64 `json:"high_elevation_m,omitempty" validate:"omitempty,gt=0"`
	MidElevationMinM   *float64 `json:"mid_elevation_min_m,omitempty" validate:"omitempty,gt=0"`
	LowElevationM      *float64 `json:"low_elevation_m,omitempty" validate:"omitempty,gt=0"`
	LowPrecipitationMm *float64 `json:"low_precipitation_mm,omitempty" validate:"omitempty,gt=0"`
}

// Apply накладывает переопределения на базовые пороги
func (t *ThresholdsDTO) Apply(base domain.Thresholds) domain.Thresholds {
	if t == nil {
		return base
	}
	if t.CoastalDistanceKm != nil {
		base.CoastalDistanceKm = *t.CoastalDistanceKm
	}
	if t.HighElevationM != nil {
		base.HighElevationM = *t.HighElevationM
	}
	if t.MidElevationMinM != nil {
		base.MidElevationMinM = *t.MidElevationMinM
	}
	if t.LowElevationM != nil {
		base.LowElevationM = *t.LowElevationM
	}
	if t.LowPrecipitationMm != nil {
		base.LowPrecipitationMm = *t.LowPrecipitationMm
	}
	return base
}

// ClassifySampleRequest - классификация готового образца без провайдеров.
// Поверхность для проверки граничного поведения порогов.
type ClassifySampleRequest struct {
	ElevationM      float64        `json:"elevation_m"`
	CoastDistanceKm float64        `json:"coast_distance_km" validate:"min=0"`
	PrecipitationMm float64        `json:"precipitation_mm" validate:"min=0"`
	Thresholds      *ThresholdsDTO `json:"thresholds,omitempty"`
}

// ClassifySampleResponse - результат классификации образца
type ClassifySampleResponse struct {
	Category            domain.Category      `json:"category"`
	CategoryDescription string               `json:"category_description"`
	Tier                domain.Tier          `json:"tier"`
	Rule                string               `json:"rule"`
	Explanations        []string             `json:"explanations"`
	Sample              domain.TerrainSample `json:"sample"`
	Thresholds          domain.Thresholds    `json:"thresholds"`
}

// BatchClassifyRequest - пакетная классификация точек
type BatchClassifyRequest struct {
	Points []ClassifyRequest `json:"points" validate:"required,min=1,max=100,dive"`
}

// BatchClassifyResult - результат классификации одной точки пакета
type BatchClassifyResult struct {
	Index  int               `json:"index"`
	Result *ClassifyResponse `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// BatchClassifyMeta - метаданные пакетной классификации
type BatchClassifyMeta struct {
	TotalPoints  int `json:"total_points"`
	SuccessCount int `json:"success_count"`
	ErrorCount   int `json:"error_count"`
}

// BatchClassifyResponse - ответ пакетной классификации
type BatchClassifyResponse struct {
	Results []BatchClassifyResult `json:"results"`
	Meta    BatchClassifyMeta     `json:"meta"`
}

// AsyncBatchClassifyResponse - подтверждение постановки задания в очередь
type AsyncBatchClassifyResponse struct {
	JobID string `json:"job_id"`
}

// ClassifyTraceResponse - классификация с полной трассировкой правил
type ClassifyTraceResponse struct {
	Result ClassifyResponse   `json:"result"`
	Traces []domain.RuleTrace `json:"traces"`
}

// CategoryInfo - описание одной категории
type CategoryInfo struct {
	Category    domain.Category `json:"category"`
	Description string          `json:"description"`
}

// CategoriesResponse - список категорий
type CategoriesResponse struct {
	Categories []CategoryInfo `json:"categories"`
}

// StatsResponse - счётчики выданных классификаций по категориям
type StatsResponse struct {
	Counts map[domain.Category]int64 `json:"counts"`
	Total  int64                     `json:"total"`
}
