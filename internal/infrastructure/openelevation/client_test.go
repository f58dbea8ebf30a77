package openelevation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/config"
	"github.com/terrain-microservice/internal/domain"
)

func TestClient_GetElevation(t *testing.T) {
	logger := zap.NewNop()

	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"results":[{"latitude":13.0827,"longitude":80.2707,"elevation":6.2}]}`))
		}))
		defer server.Close()

		cfg := &config.ElevationConfig{
			BaseURL:        server.URL,
			RequestTimeout: 5,
		}

		client := NewClient(cfg, logger)

		elevation, estimated, err := client.GetElevation(context.Background(), domain.Point{Lat: 13.0827, Lon: 80.2707})
		require.NoError(t, err)
		assert.False(t, estimated)
		assert.Equal(t, 6.2, elevation)
	})

	t.Run("missing data falls back to flagged default", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"results":[]}`))
		}))
		defer server.Close()

		cfg := &config.ElevationConfig{
			BaseURL:           server.URL,
			RequestTimeout:    5,
			DefaultElevationM: 0,
		}

		client := NewClient(cfg, logger)

		elevation, estimated, err := client.GetElevation(context.Background(), domain.Point{Lat: 13.0827, Lon: 80.2707})
		require.NoError(t, err)
		assert.True(t, estimated)
		assert.Equal(t, 0.0, elevation)
	})

	t.Run("provider error is propagated", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		cfg := &config.ElevationConfig{
			BaseURL:        server.URL,
			RequestTimeout: 5,
		}

		client := NewClient(cfg, logger)

		_, _, err := client.GetElevation(context.Background(), domain.Point{Lat: 13.0827, Lon: 80.2707})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "status 502")
	})

	t.Run("negative elevation below sea level", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"results":[{"latitude":31.5,"longitude":35.5,"elevation":-430.5}]}`))
		}))
		defer server.Close()

		cfg := &config.ElevationConfig{
			BaseURL:        server.URL,
			RequestTimeout: 5,
		}

		client := NewClient(cfg, logger)

		elevation, estimated, err := client.GetElevation(context.Background(), domain.Point{Lat: 31.5, Lon: 35.5})
		require.NoError(t, err)
		assert.False(t, estimated)
		assert.Equal(t, -430.5, elevation)
	})
}
