package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/domain"
	"github.com/terrain-microservice/internal/domain/repository"
	"github.com/terrain-microservice/internal/metrics"
	"github.com/terrain-microservice/internal/pkg/errors"
	"github.com/terrain-microservice/internal/pkg/utils"
	"github.com/terrain-microservice/internal/terrain"
	"github.com/terrain-microservice/internal/usecase/dto"
)

// ClassifyUseCase - use case классификации рельефа.
//
// Архитектура одного запроса:
// - Горутина 1: высота точки у внешнего провайдера
// - Горутина 2: годовые осадки у внешнего провайдера
// - Расстояние до берега считается локально по справочному набору
// - Классификация - синхронная точка соединения: ждёт все три признака
//
// Поведение при ошибках провайдеров:
// - Транспортная ошибка провайдера не прерывает классификацию: подставляется
//   документированное значение по умолчанию с видимым estimated-флагом
//   (graceful degradation, деградация никогда не маскируется под данные)
type ClassifyUseCase struct {
	coastRepo     repository.CoastlineRepository
	elevationRepo repository.ElevationRepository
	climateRepo   repository.ClimateRepository
	cacheRepo     repository.CacheRepository
	streamRepo    repository.StreamRepository
	classifier    *terrain.Classifier
	thresholds    domain.Thresholds
	logger        *zap.Logger
	cacheTTL      time.Duration

	defaultElevationM      float64
	defaultPrecipitationMm float64
}

// NewClassifyUseCase - создание нового ClassifyUseCase
func NewClassifyUseCase(
	coastRepo repository.CoastlineRepository,
	elevationRepo repository.ElevationRepository,
	climateRepo repository.ClimateRepository,
	cacheRepo repository.CacheRepository,
	streamRepo repository.StreamRepository,
	thresholds domain.Thresholds,
	logger *zap.Logger,
	cacheTTL time.Duration,
	defaultElevationM float64,
	defaultPrecipitationMm float64,
) *ClassifyUseCase {
	return &ClassifyUseCase{
		coastRepo:              coastRepo,
		elevationRepo:          elevationRepo,
		climateRepo:            climateRepo,
		cacheRepo:              cacheRepo,
		streamRepo:             streamRepo,
		classifier:             terrain.NewClassifier(),
		thresholds:             thresholds,
		logger:                 logger,
		cacheTTL:               cacheTTL,
		defaultElevationM:      defaultElevationM,
		defaultPrecipitationMm: defaultPrecipitationMm,
	}
}

// Thresholds возвращает действующие пороги классификации
func (uc *ClassifyUseCase) Thresholds() domain.Thresholds {
	return uc.thresholds
}

// ClassifyPoint классифицирует точку по координатам
func (uc *ClassifyUseCase) ClassifyPoint(ctx context.Context, req dto.ClassifyRequest) (*dto.ClassifyResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	point := domain.Point{Lat: req.Lat, Lon: req.Lon}

	// Кеш - best effort: ошибка кеша не прерывает классификацию.
	// Флаги деградации возвращаются из кеша как есть: повтор не должен
	// выдавать подставленное значение за реальные данные
	if cached, err := uc.cacheRepo.GetClassification(ctx, point); err != nil {
		uc.logger.Warn("Classification cache lookup failed", zap.Error(err))
	} else if cached != nil {
		metrics.CacheHitsTotal.Inc()
		return uc.buildResponse(point, &cached.Classification, domain.TerrainData{
			Sample:                 cached.Classification.Sample,
			ElevationEstimated:     cached.ElevationEstimated,
			PrecipitationEstimated: cached.PrecipitationEstimated,
		}, true), nil
	}
	metrics.CacheMissesTotal.Inc()

	data := uc.fetchTerrainData(ctx, point)

	cls, err := uc.classifier.Classify(data.Sample, uc.thresholds)
	if err != nil {
		metrics.ClassificationErrorsTotal.Inc()
		uc.logger.Error("Classification failed", zap.Error(err))
		return nil, err
	}

	metrics.ClassificationsTotal.WithLabelValues(string(cls.Category), string(cls.Tier)).Inc()

	// Счётчик категорий и запись в кеш - best effort
	if err := uc.cacheRepo.IncrCategoryCount(ctx, cls.Category); err != nil {
		uc.logger.Warn("Failed to increment category counter", zap.Error(err))
	}
	if err := uc.cacheRepo.SetClassification(ctx, point, &domain.CachedClassification{
		Classification:         *cls,
		ElevationEstimated:     data.ElevationEstimated,
		PrecipitationEstimated: data.PrecipitationEstimated,
	}, uc.cacheTTL); err != nil {
		uc.logger.Warn("Failed to cache classification", zap.Error(err))
	}

	uc.logger.Info("Point classified",
		zap.Float64("lat", point.Lat),
		zap.Float64("lon", point.Lon),
		zap.String("category", string(cls.Category)),
		zap.String("tier", string(cls.Tier)))

	return uc.buildResponse(point, cls, data, false), nil
}

// ClassifySample классифицирует готовый образец без обращения к провайдерам.
// Пороги можно переопределить в запросе - поверхность для проверки
// граничного поведения без перезапуска сервиса.
func (uc *ClassifyUseCase) ClassifySample(ctx context.Context, req dto.ClassifySampleRequest) (*dto.ClassifySampleResponse, error) {
	th := req.Thresholds.Apply(uc.thresholds)

	sample := domain.TerrainSample{
		ElevationM:      req.ElevationM,
		CoastDistanceKm: req.CoastDistanceKm,
		PrecipitationMm: req.PrecipitationMm,
	}

	cls, err := uc.classifier.Classify(sample, th)
	if err != nil {
		return nil, err
	}

	metrics.ClassificationsTotal.WithLabelValues(string(cls.Category), string(cls.Tier)).Inc()

	return &dto.ClassifySampleResponse{
		Category:            cls.Category,
		CategoryDescription: domain.CategoryDescriptions[cls.Category],
		Tier:                cls.Tier,
		Rule:                cls.Rule,
		Explanations:        cls.Explanations,
		Sample:              cls.Sample,
		Thresholds:          th,
	}, nil
}

// ClassifyBatch классифицирует пачку точек с ошибками попоточечно
func (uc *ClassifyUseCase) ClassifyBatch(ctx context.Context, req dto.BatchClassifyRequest) (*dto.BatchClassifyResponse, error) {
	if len(req.Points) == 0 {
		return nil, errors.ErrInvalidRequest
	}

	results := make([]dto.BatchClassifyResult, len(req.Points))
	successCount := 0

	for i, p := range req.Points {
		result, err := uc.ClassifyPoint(ctx, p)
		if err != nil {
			// Ошибка одной точки не прерывает пакет
			uc.logger.Warn("Failed to classify batch point",
				zap.Int("index", i), zap.Error(err))
			results[i] = dto.BatchClassifyResult{Index: i, Error: err.Error()}
			continue
		}
		results[i] = dto.BatchClassifyResult{Index: i, Result: result}
		successCount++
	}

	uc.logger.Info("Batch classification completed",
		zap.Int("total", len(req.Points)),
		zap.Int("success", successCount),
		zap.Int("errors", len(req.Points)-successCount))

	return &dto.BatchClassifyResponse{
		Results: results,
		Meta: dto.BatchClassifyMeta{
			TotalPoints:  len(req.Points),
			SuccessCount: successCount,
			ErrorCount:   len(req.Points) - successCount,
		},
	}, nil
}

// EnqueueBatch публикует задание на асинхронную пакетную классификацию
func (uc *ClassifyUseCase) EnqueueBatch(ctx context.Context, req dto.BatchClassifyRequest) (*dto.AsyncBatchClassifyResponse, error) {
	if len(req.Points) == 0 {
		return nil, errors.ErrInvalidRequest
	}
	if uc.streamRepo == nil {
		return nil, errors.ErrInternalServer
	}

	points := make([]domain.Point, len(req.Points))
	for i, p := range req.Points {
		if !utils.ValidateCoordinates(p.Lat, p.Lon) {
			return nil, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
				"point_index": i,
			})
		}
		points[i] = domain.Point{Lat: p.Lat, Lon: p.Lon}
	}

	event := domain.ClassificationJobEvent{
		JobID:  uuid.New(),
		Points: points,
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamClassifyJobs, event); err != nil {
		uc.logger.Error("Failed to enqueue classification job", zap.Error(err))
		return nil, errors.ErrInternalServer
	}

	uc.logger.Info("Classification job enqueued",
		zap.String("job_id", event.JobID.String()),
		zap.Int("points", len(points)))

	return &dto.AsyncBatchClassifyResponse{JobID: event.JobID.String()}, nil
}

// ClassifyTrace классифицирует точку с полной трассировкой проверенных правил.
// Observer hook подключается на время одного запроса, основной классификатор
// остаётся без инструментирования.
func (uc *ClassifyUseCase) ClassifyTrace(ctx context.Context, req dto.ClassifyRequest) (*dto.ClassifyTraceResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	point := domain.Point{Lat: req.Lat, Lon: req.Lon}
	data := uc.fetchTerrainData(ctx, point)

	var traces []domain.RuleTrace
	traced := terrain.NewClassifier(terrain.WithObserver(func(tr domain.RuleTrace) {
		traces = append(traces, tr)
	}))

	cls, err := traced.Classify(data.Sample, uc.thresholds)
	if err != nil {
		return nil, err
	}

	return &dto.ClassifyTraceResponse{
		Result: *uc.buildResponse(point, cls, data, false),
		Traces: traces,
	}, nil
}

// fetchTerrainData собирает три признака точки: высоту и осадки параллельно
// у внешних провайдеров, расстояние до берега локально
func (uc *ClassifyUseCase) fetchTerrainData(ctx context.Context, point domain.Point) domain.TerrainData {
	var wg sync.WaitGroup

	var elevation, precipitation float64
	var elevationEstimated, precipitationEstimated bool

	wg.Add(1)
	go func() {
		defer wg.Done()
		started := time.Now()
		metrics.ProviderRequestsTotal.WithLabelValues("elevation").Inc()

		v, estimated, err := uc.elevationRepo.GetElevation(ctx, point)
		metrics.ProviderDurationMs.WithLabelValues("elevation").Observe(float64(time.Since(started).Milliseconds()))
		if err != nil {
			metrics.ProviderFailuresTotal.WithLabelValues("elevation").Inc()
			uc.logger.Warn("Elevation provider failed, using default",
				zap.Float64("default_m", uc.defaultElevationM), zap.Error(err))
			elevation, elevationEstimated = uc.defaultElevationM, true
			return
		}
		elevation, elevationEstimated = v, estimated
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		started := time.Now()
		metrics.ProviderRequestsTotal.WithLabelValues("climate").Inc()

		v, estimated, err := uc.climateRepo.GetAnnualPrecipitation(ctx, point)
		metrics.ProviderDurationMs.WithLabelValues("climate").Observe(float64(time.Since(started).Milliseconds()))
		if err != nil {
			metrics.ProviderFailuresTotal.WithLabelValues("climate").Inc()
			uc.logger.Warn("Climate provider failed, using default",
				zap.Float64("default_mm", uc.defaultPrecipitationMm), zap.Error(err))
			precipitation, precipitationEstimated = uc.defaultPrecipitationMm, true
			return
		}
		precipitation, precipitationEstimated = v, estimated
	}()

	coastDistance := uc.coastRepo.NearestDistance(point)

	wg.Wait()

	if elevationEstimated {
		metrics.EstimatedInputsTotal.WithLabelValues("elevation").Inc()
	}
	if precipitationEstimated {
		metrics.EstimatedInputsTotal.WithLabelValues("climate").Inc()
	}

	return domain.TerrainData{
		Sample: domain.TerrainSample{
			ElevationM:      elevation,
			CoastDistanceKm: coastDistance,
			PrecipitationMm: precipitation,
		},
		ElevationEstimated:     elevationEstimated,
		PrecipitationEstimated: precipitationEstimated,
	}
}

func (uc *ClassifyUseCase) buildResponse(point domain.Point, cls *domain.Classification, data domain.TerrainData, cached bool) *dto.ClassifyResponse {
	return &dto.ClassifyResponse{
		Point:                  point,
		Category:               cls.Category,
		CategoryDescription:    domain.CategoryDescriptions[cls.Category],
		Tier:                   cls.Tier,
		Rule:                   cls.Rule,
		Explanations:           cls.Explanations,
		Sample:                 cls.Sample,
		ElevationEstimated:     data.ElevationEstimated,
		PrecipitationEstimated: data.PrecipitationEstimated,
		Cached:                 cached,
	}
}
