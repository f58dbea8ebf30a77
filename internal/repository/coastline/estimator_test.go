package coastline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/domain"
	"github.com/terrain-microservice/internal/pkg/errors"
)

func newTestEstimator(t *testing.T) *Estimator {
	t.Helper()
	est, err := NewEstimator(zap.NewNop())
	require.NoError(t, err)
	return est
}

func TestNewEstimatorWithPoints_EmptySet(t *testing.T) {
	est, err := NewEstimatorWithPoints(nil, zap.NewNop())
	assert.Nil(t, est)
	assert.Equal(t, errors.ErrMissingReferenceData, err)

	est, err = NewEstimatorWithPoints([]domain.Point{}, zap.NewNop())
	assert.Nil(t, est)
	assert.Error(t, err)
}

func TestEstimator_ReferenceSetDensity(t *testing.T) {
	est := newTestEstimator(t)
	// объединение городов и сэмплированных ломаных даёт тысячи точек
	assert.Greater(t, est.Size(), 1000)
}

func TestEstimator_CoastalCities(t *testing.T) {
	est := newTestEstimator(t)

	tests := []struct {
		name  string
		point domain.Point
		maxKm float64
	}{
		{"Chennai", domain.Point{Lat: 13.0827, Lon: 80.2707}, 5},
		{"Mumbai", domain.Point{Lat: 19.0760, Lon: 72.8777}, 5},
		{"New York", domain.Point{Lat: 40.7128, Lon: -74.0060}, 5},
		{"Barcelona", domain.Point{Lat: 41.3851, Lon: 2.1734}, 5},
		{"Sydney", domain.Point{Lat: -33.8688, Lon: 151.2093}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := est.NearestDistance(tt.point)
			assert.LessOrEqual(t, d, tt.maxKm)
		})
	}
}

func TestEstimator_InlandPoints(t *testing.T) {
	est := newTestEstimator(t)

	tests := []struct {
		name  string
		point domain.Point
		minKm float64
	}{
		{"Delhi", domain.Point{Lat: 28.6139, Lon: 77.2090}, 500},
		{"Kansas", domain.Point{Lat: 39.0, Lon: -98.3}, 700},
		{"central Siberia", domain.Point{Lat: 58.0, Lon: 98.0}, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := est.NearestDistance(tt.point)
			assert.Greater(t, d, tt.minKm)
		})
	}
}

func TestEstimator_ExactReferencePointIsZero(t *testing.T) {
	pts := []domain.Point{
		{Lat: 13.0827, Lon: 80.2707},
		{Lat: 19.0760, Lon: 72.8777},
	}
	est, err := NewEstimatorWithPoints(pts, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 0.0, est.NearestDistance(pts[0]))
	assert.Equal(t, 0.0, est.NearestDistance(pts[1]))
}

func TestEstimator_DefensiveCopy(t *testing.T) {
	pts := []domain.Point{{Lat: 10, Lon: 10}}
	est, err := NewEstimatorWithPoints(pts, zap.NewNop())
	require.NoError(t, err)

	before := est.NearestDistance(domain.Point{Lat: 10, Lon: 10})
	pts[0] = domain.Point{Lat: -80, Lon: -170}
	after := est.NearestDistance(domain.Point{Lat: 10, Lon: 10})

	assert.Equal(t, before, after)
}
