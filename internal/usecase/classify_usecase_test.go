package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/domain"
	apperrors "github.com/terrain-microservice/internal/pkg/errors"
	"github.com/terrain-microservice/internal/usecase"
	"github.com/terrain-microservice/internal/usecase/dto"
)

// MockCoastlineRepository is a mock of CoastlineRepository
type MockCoastlineRepository struct {
	mock.Mock
}

func (m *MockCoastlineRepository) NearestDistance(p domain.Point) float64 {
	args := m.Called(p)
	return args.Get(0).(float64)
}

func (m *MockCoastlineRepository) Size() int {
	args := m.Called()
	return args.Int(0)
}

// MockElevationRepository is a mock of ElevationRepository
type MockElevationRepository struct {
	mock.Mock
}

func (m *MockElevationRepository) GetElevation(ctx context.Context, p domain.Point) (float64, bool, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

// MockClimateRepository is a mock of ClimateRepository
type MockClimateRepository struct {
	mock.Mock
}

func (m *MockClimateRepository) GetAnnualPrecipitation(ctx context.Context, p domain.Point) (float64, bool, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(float64), args.Bool(1), args.Error(2)
}

// MockCacheRepository is a mock of CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetClassification(ctx context.Context, p domain.Point) (*domain.CachedClassification, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CachedClassification), args.Error(1)
}

func (m *MockCacheRepository) SetClassification(ctx context.Context, p domain.Point, cls *domain.CachedClassification, ttl time.Duration) error {
	args := m.Called(ctx, p, cls, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) IncrCategoryCount(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCacheRepository) GetCategoryCounts(ctx context.Context) (map[domain.Category]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Category]int64), args.Error(1)
}

// MockStreamRepository is a mock of StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

func newClassifyUseCase(
	coast *MockCoastlineRepository,
	elevation *MockElevationRepository,
	climate *MockClimateRepository,
	cache *MockCacheRepository,
	stream *MockStreamRepository,
) *usecase.ClassifyUseCase {
	return usecase.NewClassifyUseCase(
		coast, elevation, climate, cache, stream,
		domain.DefaultThresholds(),
		zap.NewNop(),
		time.Minute,
		200, // default elevation, m
		800, // default precipitation, mm
	)
}

func TestClassifyUseCase_ClassifyPoint_Coastal(t *testing.T) {
	coast := new(MockCoastlineRepository)
	elevation := new(MockElevationRepository)
	climate := new(MockClimateRepository)
	cache := new(MockCacheRepository)

	point := domain.Point{Lat: 13.0827, Lon: 80.2707}

	cache.On("GetClassification", mock.Anything, point).Return(nil, nil)
	cache.On("IncrCategoryCount", mock.Anything, domain.CategoryNeithal).Return(nil)
	cache.On("SetClassification", mock.Anything, point, mock.Anything, time.Minute).Return(nil)
	coast.On("NearestDistance", point).Return(2.5)
	elevation.On("GetElevation", mock.Anything, point).Return(6.0, false, nil)
	climate.On("GetAnnualPrecipitation", mock.Anything, point).Return(1400.0, false, nil)

	uc := newClassifyUseCase(coast, elevation, climate, cache, nil)

	resp, err := uc.ClassifyPoint(context.Background(), dto.ClassifyRequest{Lat: point.Lat, Lon: point.Lon})

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryNeithal, resp.Category)
	assert.Equal(t, domain.TierStrict, resp.Tier)
	assert.False(t, resp.ElevationEstimated)
	assert.False(t, resp.PrecipitationEstimated)
	assert.False(t, resp.Cached)
	assert.NotEmpty(t, resp.Explanations)

	cache.AssertExpectations(t)
	elevation.AssertExpectations(t)
	climate.AssertExpectations(t)
}

func TestClassifyUseCase_ClassifyPoint_CacheHit(t *testing.T) {
	coast := new(MockCoastlineRepository)
	elevation := new(MockElevationRepository)
	climate := new(MockClimateRepository)
	cache := new(MockCacheRepository)

	point := domain.Point{Lat: 48.0, Lon: 68.0}
	cached := &domain.CachedClassification{
		Classification: domain.Classification{
			Category:     domain.CategoryPaalai,
			Tier:         domain.TierStrict,
			Rule:         "arid_inland",
			Explanations: []string{"annual precipitation 180.0 mm is below 250.0 mm"},
			Sample:       domain.TerrainSample{ElevationM: 350, CoastDistanceKm: 900, PrecipitationMm: 180},
		},
	}

	cache.On("GetClassification", mock.Anything, point).Return(cached, nil)

	uc := newClassifyUseCase(coast, elevation, climate, cache, nil)

	resp, err := uc.ClassifyPoint(context.Background(), dto.ClassifyRequest{Lat: point.Lat, Lon: point.Lon})

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryPaalai, resp.Category)
	assert.True(t, resp.Cached)

	// Providers must not be called on a cache hit
	elevation.AssertNotCalled(t, "GetElevation", mock.Anything, mock.Anything)
	climate.AssertNotCalled(t, "GetAnnualPrecipitation", mock.Anything, mock.Anything)
	coast.AssertNotCalled(t, "NearestDistance", mock.Anything)
}

func TestClassifyUseCase_ClassifyPoint_InvalidCoordinates(t *testing.T) {
	uc := newClassifyUseCase(
		new(MockCoastlineRepository),
		new(MockElevationRepository),
		new(MockClimateRepository),
		new(MockCacheRepository),
		nil,
	)

	resp, err := uc.ClassifyPoint(context.Background(), dto.ClassifyRequest{Lat: 91, Lon: 0})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCoordinates)
}

func TestClassifyUseCase_ClassifyPoint_ProviderFailureDegradesToDefault(t *testing.T) {
	coast := new(MockCoastlineRepository)
	elevation := new(MockElevationRepository)
	climate := new(MockClimateRepository)
	cache := new(MockCacheRepository)

	point := domain.Point{Lat: 52.5, Lon: 30.0}

	cache.On("GetClassification", mock.Anything, point).Return(nil, nil)
	cache.On("IncrCategoryCount", mock.Anything, mock.Anything).Return(nil)
	cache.On("SetClassification", mock.Anything, point, mock.Anything, mock.Anything).Return(nil)
	coast.On("NearestDistance", point).Return(600.0)
	elevation.On("GetElevation", mock.Anything, point).Return(0.0, false, errors.New("upstream timeout"))
	climate.On("GetAnnualPrecipitation", mock.Anything, point).Return(650.0, false, nil)

	uc := newClassifyUseCase(coast, elevation, climate, cache, nil)

	resp, err := uc.ClassifyPoint(context.Background(), dto.ClassifyRequest{Lat: point.Lat, Lon: point.Lon})

	require.NoError(t, err)
	// Default elevation of 200 m, 600 km inland, 650 mm of rain: forest midland
	assert.Equal(t, domain.CategoryMullai, resp.Category)
	assert.True(t, resp.ElevationEstimated)
	assert.False(t, resp.PrecipitationEstimated)
	assert.Equal(t, 200.0, resp.Sample.ElevationM)
}

func TestClassifyUseCase_ClassifyPoint_EstimatedFlagsSurviveCache(t *testing.T) {
	coast := new(MockCoastlineRepository)
	elevation := new(MockElevationRepository)
	climate := new(MockClimateRepository)
	cache := new(MockCacheRepository)

	point := domain.Point{Lat: 52.5, Lon: 30.0}

	cache.On("GetClassification", mock.Anything, point).Return(nil, nil).Once()
	cache.On("IncrCategoryCount", mock.Anything, mock.Anything).Return(nil)
	coast.On("NearestDistance", point).Return(600.0)
	elevation.On("GetElevation", mock.Anything, point).Return(0.0, false, errors.New("upstream timeout")).Once()
	climate.On("GetAnnualPrecipitation", mock.Anything, point).Return(650.0, false, nil).Once()

	var stored *domain.CachedClassification
	cache.On("SetClassification", mock.Anything, point, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).(*domain.CachedClassification)
		}).
		Return(nil).Once()

	uc := newClassifyUseCase(coast, elevation, climate, cache, nil)

	first, err := uc.ClassifyPoint(context.Background(), dto.ClassifyRequest{Lat: point.Lat, Lon: point.Lon})
	require.NoError(t, err)
	require.True(t, first.ElevationEstimated)
	require.NotNil(t, stored)
	assert.True(t, stored.ElevationEstimated)

	// Replay from cache: the substituted default must stay visible
	cache.On("GetClassification", mock.Anything, point).Return(stored, nil).Once()

	second, err := uc.ClassifyPoint(context.Background(), dto.ClassifyRequest{Lat: point.Lat, Lon: point.Lon})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.True(t, second.ElevationEstimated)
	assert.False(t, second.PrecipitationEstimated)
	assert.Equal(t, first.Category, second.Category)

	// Providers were only hit once, on the cache miss
	elevation.AssertExpectations(t)
	climate.AssertExpectations(t)
}

func TestClassifyUseCase_ClassifySample_ThresholdOverride(t *testing.T) {
	uc := newClassifyUseCase(
		new(MockCoastlineRepository),
		new(MockElevationRepository),
		new(MockClimateRepository),
		new(MockCacheRepository),
		nil,
	)

	coastal := 100.0
	req := dto.ClassifySampleRequest{
		ElevationM:      10,
		CoastDistanceKm: 80,
		PrecipitationMm: 900,
		Thresholds:      &dto.ThresholdsDTO{CoastalDistanceKm: &coastal},
	}

	resp, err := uc.ClassifySample(context.Background(), req)

	require.NoError(t, err)
	// 80 km is inland under the default 50 km threshold but coastal under 100 km
	assert.Equal(t, domain.CategoryNeithal, resp.Category)
	assert.Equal(t, 100.0, resp.Thresholds.CoastalDistanceKm)

	// Same sample with default thresholds lands in the plains
	resp, err = uc.ClassifySample(context.Background(), dto.ClassifySampleRequest{
		ElevationM:      10,
		CoastDistanceKm: 80,
		PrecipitationMm: 900,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryMarudham, resp.Category)
}

func TestClassifyUseCase_ClassifyBatch_PerPointErrors(t *testing.T) {
	coast := new(MockCoastlineRepository)
	elevation := new(MockElevationRepository)
	climate := new(MockClimateRepository)
	cache := new(MockCacheRepository)

	valid := domain.Point{Lat: 10.0, Lon: 76.0}

	cache.On("GetClassification", mock.Anything, valid).Return(nil, nil)
	cache.On("IncrCategoryCount", mock.Anything, mock.Anything).Return(nil)
	cache.On("SetClassification", mock.Anything, valid, mock.Anything, mock.Anything).Return(nil)
	coast.On("NearestDistance", valid).Return(30.0)
	elevation.On("GetElevation", mock.Anything, valid).Return(15.0, false, nil)
	climate.On("GetAnnualPrecipitation", mock.Anything, valid).Return(3000.0, false, nil)

	uc := newClassifyUseCase(coast, elevation, climate, cache, nil)

	resp, err := uc.ClassifyBatch(context.Background(), dto.BatchClassifyRequest{
		Points: []dto.ClassifyRequest{
			{Lat: valid.Lat, Lon: valid.Lon},
			{Lat: 95, Lon: 10},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Meta.TotalPoints)
	assert.Equal(t, 1, resp.Meta.SuccessCount)
	assert.Equal(t, 1, resp.Meta.ErrorCount)
	require.NotNil(t, resp.Results[0].Result)
	assert.Equal(t, domain.CategoryNeithal, resp.Results[0].Result.Category)
	assert.Nil(t, resp.Results[1].Result)
	assert.NotEmpty(t, resp.Results[1].Error)
}

func TestClassifyUseCase_ClassifyBatch_Empty(t *testing.T) {
	uc := newClassifyUseCase(
		new(MockCoastlineRepository),
		new(MockElevationRepository),
		new(MockClimateRepository),
		new(MockCacheRepository),
		nil,
	)

	resp, err := uc.ClassifyBatch(context.Background(), dto.BatchClassifyRequest{})

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestClassifyUseCase_EnqueueBatch(t *testing.T) {
	stream := new(MockStreamRepository)
	stream.On("PublishToStream", mock.Anything, domain.StreamClassifyJobs, mock.Anything).Return(nil)

	uc := newClassifyUseCase(
		new(MockCoastlineRepository),
		new(MockElevationRepository),
		new(MockClimateRepository),
		new(MockCacheRepository),
		stream,
	)

	resp, err := uc.EnqueueBatch(context.Background(), dto.BatchClassifyRequest{
		Points: []dto.ClassifyRequest{{Lat: 10, Lon: 76}, {Lat: 48, Lon: 68}},
	})

	require.NoError(t, err)
	_, err = uuid.Parse(resp.JobID)
	assert.NoError(t, err)
	stream.AssertExpectations(t)
}

func TestClassifyUseCase_EnqueueBatch_InvalidPoint(t *testing.T) {
	stream := new(MockStreamRepository)

	uc := newClassifyUseCase(
		new(MockCoastlineRepository),
		new(MockElevationRepository),
		new(MockClimateRepository),
		new(MockCacheRepository),
		stream,
	)

	resp, err := uc.EnqueueBatch(context.Background(), dto.BatchClassifyRequest{
		Points: []dto.ClassifyRequest{{Lat: 10, Lon: 76}, {Lat: 10, Lon: 181}},
	})

	assert.Nil(t, resp)
	assert.Error(t, err)
	stream.AssertNotCalled(t, "PublishToStream", mock.Anything, mock.Anything, mock.Anything)
}

func TestClassifyUseCase_ClassifyTrace(t *testing.T) {
	coast := new(MockCoastlineRepository)
	elevation := new(MockElevationRepository)
	climate := new(MockClimateRepository)
	cache := new(MockCacheRepository)

	point := domain.Point{Lat: 27.9881, Lon: 86.925}

	coast.On("NearestDistance", point).Return(650.0)
	elevation.On("GetElevation", mock.Anything, point).Return(5200.0, false, nil)
	climate.On("GetAnnualPrecipitation", mock.Anything, point).Return(500.0, false, nil)

	uc := newClassifyUseCase(coast, elevation, climate, cache, nil)

	resp, err := uc.ClassifyTrace(context.Background(), dto.ClassifyRequest{Lat: point.Lat, Lon: point.Lon})

	require.NoError(t, err)
	assert.Equal(t, domain.CategoryKurinji, resp.Result.Category)
	require.NotEmpty(t, resp.Traces)

	last := resp.Traces[len(resp.Traces)-1]
	assert.True(t, last.Matched)
	assert.Equal(t, resp.Result.Category, last.Category)
	assert.Equal(t, resp.Result.Rule, last.Rule)
	for _, tr := range resp.Traces[:len(resp.Traces)-1] {
		assert.False(t, tr.Matched)
	}
}
