package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistance_Zero(t *testing.T) {
	assert.Equal(t, 0.0, HaversineDistance(13.0827, 80.2707, 13.0827, 80.2707))
	assert.Equal(t, 0.0, HaversineDistance(0, 0, 0, 0))
	assert.Equal(t, 0.0, HaversineDistance(-89.9, 179.9, -89.9, 179.9))
}

func TestHaversineDistance_Symmetry(t *testing.T) {
	pairs := [][4]float64{
		{13.0827, 80.2707, 19.0760, 72.8777}, // Chennai - Mumbai
		{41.3851, 2.1734, 55.7558, 37.6173},  // Barcelona - Moscow
		{-33.8688, 151.2093, 64.1466, -21.9426},
		{0, 0, 0, 180},
	}

	for _, p := range pairs {
		ab := HaversineDistance(p[0], p[1], p[2], p[3])
		ba := HaversineDistance(p[2], p[3], p[0], p[1])
		assert.InEpsilon(t, ab, ba, 1e-9)
	}
}

func TestHaversineDistance_KnownValues(t *testing.T) {
	// Chennai - Mumbai, примерно 1030 км
	d := HaversineDistance(13.0827, 80.2707, 19.0760, 72.8777)
	assert.InDelta(t, 1030, d, 15)

	// четверть окружности Земли по экватору
	d = HaversineDistance(0, 0, 0, 90)
	assert.InDelta(t, 10007, d, 5)
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(0, 0))
	assert.True(t, ValidateCoordinates(90, 180))
	assert.True(t, ValidateCoordinates(-90, -180))
	assert.False(t, ValidateCoordinates(90.1, 0))
	assert.False(t, ValidateCoordinates(0, -180.1))
}
