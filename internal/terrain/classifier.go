package terrain

import (
	"fmt"

	"github.com/terrain-microservice/internal/domain"
	"github.com/terrain-microservice/internal/pkg/errors"
	"github.com/terrain-microservice/internal/pkg/utils"
)

// Коэффициенты ослабления порогов для fallback-уровня.
// Значения подобраны эмпирически и являются частью контракта классификации:
// их изменение меняет результат на граничных входах.
const (
	fallbackCoastalSlack       = 1.5
	fallbackHighElevationSlack = 0.8
	fallbackPrecipitationSlack = 1.2
	fallbackMidElevationSlack  = 0.8
)

// Observer получает трассировку каждого проверенного правила.
// Используется debug-эндпоинтом; по умолчанию no-op.
type Observer func(trace domain.RuleTrace)

// Classifier - чистый классификатор рельефа без состояния.
// Безопасен для конкурентного использования.
type Classifier struct {
	observer Observer
}

// Option - опция конструктора классификатора
type Option func(*Classifier)

// WithObserver подключает observer hook для трассировки правил
func WithObserver(obs Observer) Option {
	return func(c *Classifier) {
		c.observer = obs
	}
}

// NewClassifier создает новый Classifier
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		observer: func(domain.RuleTrace) {},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// rule - одно правило классификации
type rule struct {
	name      string
	category  domain.Category
	predicate string
	match     func(s domain.TerrainSample) bool
	explain   func(s domain.TerrainSample) []string
}

// Classify применяет двухуровневый упорядоченный набор правил к образцу.
// Первое сработавшее правило определяет категорию (short-circuit).
// Тотальна для любых конечных входов: fallback-уровень завершается
// безусловным правилом Marudham.
func (c *Classifier) Classify(sample domain.TerrainSample, th domain.Thresholds) (*domain.Classification, error) {
	if err := validateSample(sample); err != nil {
		return nil, err
	}

	for _, r := range strictRules(th) {
		matched := r.match(sample)
		c.observer(domain.RuleTrace{
			Tier:      domain.TierStrict,
			Rule:      r.name,
			Category:  r.category,
			Matched:   matched,
			Predicate: r.predicate,
		})
		if matched {
			return &domain.Classification{
				Category:     r.category,
				Tier:         domain.TierStrict,
				Rule:         r.name,
				Explanations: r.explain(sample),
				Sample:       sample,
			}, nil
		}
	}

	// Ни одно строгое правило не совпало: пять предикатов не покрывают
	// всё пространство входов, добираем ослабленными порогами
	for _, r := range fallbackRules(th) {
		matched := r.match(sample)
		c.observer(domain.RuleTrace{
			Tier:      domain.TierFallback,
			Rule:      r.name,
			Category:  r.category,
			Matched:   matched,
			Predicate: r.predicate,
		})
		if matched {
			return &domain.Classification{
				Category:     r.category,
				Tier:         domain.TierFallback,
				Rule:         r.name,
				Explanations: r.explain(sample),
				Sample:       sample,
			}, nil
		}
	}

	// Недостижимо: последнее fallback-правило безусловно
	return nil, errors.ErrClassificationError
}

// validateSample отклоняет NaN/Inf до того, как они пройдут сквозь сравнения
func validateSample(s domain.TerrainSample) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"elevation_m", s.ElevationM},
		{"coast_distance_km", s.CoastDistanceKm},
		{"precipitation_mm", s.PrecipitationMm},
	}
	for _, f := range fields {
		if !utils.IsFinite(f.value) {
			return errors.ErrInvalidSample.WithDetails(map[string]interface{}{
				"field": f.name,
			})
		}
	}
	return nil
}

// strictRules возвращает строгие правила в порядке приоритета.
// Порядок - часть спецификации поведения, а не оптимизация.
func strictRules(th domain.Thresholds) []rule {
	return []rule{
		{
			name:      "coastal_lowland",
			category:  domain.CategoryNeithal,
			predicate: fmt.Sprintf("coast_distance_km <= %g AND elevation_m < %g", th.CoastalDistanceKm, th.LowElevationM),
			match: func(s domain.TerrainSample) bool {
				return s.CoastDistanceKm <= th.CoastalDistanceKm && s.ElevationM < th.LowElevationM
			},
			explain: func(s domain.TerrainSample) []string {
				return []string{
					fmt.Sprintf("within %g km of coast (%.1f km)", th.CoastalDistanceKm, s.CoastDistanceKm),
					fmt.Sprintf("low elevation below %g m (%.0f m)", th.LowElevationM, s.ElevationM),
				}
			},
		},
		{
			name:      "high_mountain",
			category:  domain.CategoryKurinji,
			predicate: fmt.Sprintf("elevation_m >= %g AND coast_distance_km > %g", th.HighElevationM, th.CoastalDistanceKm),
			match: func(s domain.TerrainSample) bool {
				return s.ElevationM >= th.HighElevationM && s.CoastDistanceKm > th.CoastalDistanceKm
			},
			explain: func(s domain.TerrainSample) []string {
				return []string{
					fmt.Sprintf("high elevation at or above %g m (%.0f m)", th.HighElevationM, s.ElevationM),
					fmt.Sprintf("inland, more than %g km from coast (%.1f km)", th.CoastalDistanceKm, s.CoastDistanceKm),
				}
			},
		},
		{
			name:      "arid_inland",
			category:  domain.CategoryPaalai,
			predicate: fmt.Sprintf("precipitation_mm < %g AND elevation_m < %g AND coast_distance_km > %g", th.LowPrecipitationMm, th.HighElevationM, th.CoastalDistanceKm),
			match: func(s domain.TerrainSample) bool {
				return s.PrecipitationMm < th.LowPrecipitationMm &&
					s.ElevationM < th.HighElevationM &&
					s.CoastDistanceKm > th.CoastalDistanceKm
			},
			explain: func(s domain.TerrainSample) []string {
				return []string{
					fmt.Sprintf("low precipitation below %g mm/year (%.0f mm)", th.LowPrecipitationMm, s.PrecipitationMm),
					fmt.Sprintf("elevation below %g m (%.0f m)", th.HighElevationM, s.ElevationM),
					fmt.Sprintf("inland, more than %g km from coast (%.1f km)", th.CoastalDistanceKm, s.CoastDistanceKm),
				}
			},
		},
		{
			name:      "forest_midland",
			category:  domain.CategoryMullai,
			predicate: fmt.Sprintf("elevation_m in [%g, %g) AND precipitation_mm >= %g AND coast_distance_km > %g", th.MidElevationMinM, th.HighElevationM, th.LowPrecipitationMm, th.CoastalDistanceKm),
			match: func(s domain.TerrainSample) bool {
				return s.ElevationM >= th.MidElevationMinM &&
					s.ElevationM < th.HighElevationM &&
					s.PrecipitationMm >= th.LowPrecipitationMm &&
					s.CoastDistanceKm > th.CoastalDistanceKm
			},
			explain: func(s domain.TerrainSample) []string {
				return []string{
					fmt.Sprintf("mid elevation between %g and %g m (%.0f m)", th.MidElevationMinM, th.HighElevationM, s.ElevationM),
					fmt.Sprintf("sufficient precipitation, at least %g mm/year (%.0f mm)", th.LowPrecipitationMm, s.PrecipitationMm),
					fmt.Sprintf("inland, more than %g km from coast (%.1f km)", th.CoastalDistanceKm, s.CoastDistanceKm),
				}
			},
		},
		{
			name:      "fertile_plains",
			category:  domain.CategoryMarudham,
			predicate: fmt.Sprintf("elevation_m < %g AND precipitation_mm >= %g AND coast_distance_km > %g", th.LowElevationM, th.LowPrecipitationMm, th.CoastalDistanceKm),
			match: func(s domain.TerrainSample) bool {
				return s.ElevationM < th.LowElevationM &&
					s.PrecipitationMm >= th.LowPrecipitationMm &&
					s.CoastDistanceKm > th.CoastalDistanceKm
			},
			explain: func(s domain.TerrainSample) []string {
				return []string{
					fmt.Sprintf("low elevation below %g m (%.0f m)", th.LowElevationM, s.ElevationM),
					fmt.Sprintf("sufficient precipitation, at least %g mm/year (%.0f mm)", th.LowPrecipitationMm, s.PrecipitationMm),
					fmt.Sprintf("inland, more than %g km from coast (%.1f km)", th.CoastalDistanceKm, s.CoastDistanceKm),
				}
			},
		},
	}
}

// fallbackRules возвращает ослабленные правила в порядке приоритета.
// Последнее правило безусловно, что гарантирует тотальность классификации.
func fallbackRules(th domain.Thresholds) []rule {
	relaxedCoastal := th.CoastalDistanceKm * fallbackCoastalSlack
	relaxedHigh := th.HighElevationM * fallbackHighElevationSlack
	relaxedPrecip := th.LowPrecipitationMm * fallbackPrecipitationSlack
	relaxedMid := th.MidElevationMinM * fallbackMidElevationSlack

	return []rule{
		{
			name:      "near_coastal",
			category:  domain.CategoryNeithal,
			predicate: fmt.Sprintf("coast_distance_km <= %g", relaxedCoastal),
			match: func(s domain.TerrainSample) bool {
				return s.CoastDistanceKm <= relaxedCoastal
			},
			explain: func(s domain.TerrainSample) []string {
				return []string{
					fmt.Sprintf("best fit: near coast, within relaxed %g km (%.1f km)", relaxedCoastal, s.CoastDistanceKm),
				}
			},
		},
		{
			name:      "near_mountain",
			category:  domain.CategoryKurinji,
			predicate: fmt.Sprintf("elevation_m >= %g", relaxedHigh),
			match: func(s domain.TerrainSample) bool {
				return s.ElevationM >= relaxedHigh
			},
			explain: func(s domain.TerrainSample) []string {
				return []string{
					fmt.Sprintf("best fit: elevation at or above relaxed %g m (%.0f m)", relaxedHigh, s.ElevationM),
				}
			},
		},
		{
			name:      "near_arid",
			category:  domain.CategoryPaalai,
			predicate: fmt.Sprintf("precipitation_mm < %g", relaxedPrecip),
			match: func(s domain.TerrainSample) bool {
				return s.PrecipitationMm < relaxedPrecip
			},
			explain: func(s domain.TerrainSample) []string {
				return []string{
					fmt.Sprintf("best fit: precipitation below relaxed %g mm/year (%.0f mm)", relaxedPrecip, s.PrecipitationMm),
				}
			},
		},
		{
			name:      "near_forest",
			category:  domain.CategoryMullai,
			predicate: fmt.Sprintf("elevation_m in [%g, %g)", relaxedMid, th.HighElevationM),
			match: func(s domain.TerrainSample) bool {
				return s.ElevationM >= relaxedMid && s.ElevationM < th.HighElevationM
			},
			explain: func(s domain.TerrainSample) []string {
				return []string{
					fmt.Sprintf("best fit: elevation between relaxed %g and %g m (%.0f m)", relaxedMid, th.HighElevationM, s.ElevationM),
				}
			},
		},
		{
			name:      "default_plains",
			category:  domain.CategoryMarudham,
			predicate: "unconditional default",
			match: func(domain.TerrainSample) bool {
				return true
			},
			explain: func(domain.TerrainSample) []string {
				return []string{
					"best fit: no rule matched, defaulting to plains",
				}
			},
		},
	}
}
