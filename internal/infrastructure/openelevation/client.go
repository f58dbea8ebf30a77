package openelevation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/config"
	"github.com/terrain-microservice/internal/domain"
	"github.com/terrain-microservice/internal/domain/repository"
)

type client struct {
	httpClient       *http.Client
	baseURL          string
	defaultElevation float64
	logger           *zap.Logger
}

// lookupResponse - ответ Open-Elevation API
type lookupResponse struct {
	Results []struct {
		Latitude  float64  `json:"latitude"`
		Longitude float64  `json:"longitude"`
		Elevation *float64 `json:"elevation"`
	} `json:"results"`
}

// NewClient создает новый клиент для Open-Elevation API
func NewClient(cfg *config.ElevationConfig, logger *zap.Logger) repository.ElevationRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:          cfg.BaseURL,
		defaultElevation: cfg.DefaultElevationM,
		logger:           logger,
	}
}

// GetElevation возвращает высоту точки в метрах.
// При отсутствии данных у провайдера подставляется документированное
// значение по умолчанию с estimated=true - деградация видима вызывающему.
func (c *client) GetElevation(ctx context.Context, p domain.Point) (float64, bool, error) {
	url := fmt.Sprintf("%s/api/v1/lookup?locations=%f,%f", c.baseURL, p.Lat, p.Lon)

	c.logger.Debug("Calling Open-Elevation API",
		zap.Float64("lat", p.Lat),
		zap.Float64("lon", p.Lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return 0, false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return 0, false, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Open-Elevation API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return 0, false, fmt.Errorf("open-elevation API error: status %d", resp.StatusCode)
	}

	var lookupResp lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&lookupResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return 0, false, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(lookupResp.Results) == 0 || lookupResp.Results[0].Elevation == nil {
		c.logger.Warn("Open-Elevation returned no data, using default",
			zap.Float64("lat", p.Lat),
			zap.Float64("lon", p.Lon),
			zap.Float64("default_m", c.defaultElevation))
		return c.defaultElevation, true, nil
	}

	return *lookupResp.Results[0].Elevation, false, nil
}
