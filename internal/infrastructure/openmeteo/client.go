package openmeteo

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
	httpClient           *http.Client
	baseURL              string
	defaultPrecipitation float64
	logger               *zap.Logger
	now                  func() time.Time
}

// archiveResponse - ответ Open-Meteo archive API
type archiveResponse struct {
	Daily struct {
		Time             []string   `json:"time"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// NewClient создает новый клиент для Open-Meteo archive API
func NewClient(cfg *config.ClimateConfig, logger *zap.Logger) repository.ClimateRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:              cfg.BaseURL,
		defaultPrecipitation: cfg.DefaultPrecipitationMm,
		logger:               logger,
		now:                  time.Now,
	}
}

// GetAnnualPrecipitation возвращает сумму осадков за скользящие 12 месяцев.
// Пропуски в данных провайдера пропускаются при суммировании; полное
// отсутствие данных заменяется документированным значением по умолчанию
// с estimated=true
func (c *client) GetAnnualPrecipitation(ctx context.Context, p domain.Point) (float64, bool, error) {
	// архив отстаёт от реального времени на несколько дней
	end := c.now().AddDate(0, 0, -7)
	start := end.AddDate(-1, 0, 0)

	url := fmt.Sprintf(
		"%s/v1/archive?latitude=%f&longitude=%f&start_date=%s&end_date=%s&daily=precipitation_sum&timezone=UTC",
		c.baseURL,
		p.Lat,
		p.Lon,
		start.Format("2006-01-02"),
		end.Format("2006-01-02"),
	)

	c.logger.Debug("Calling Open-Meteo archive API",
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
		c.logger.Error("Open-Meteo API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return 0, false, fmt.Errorf("open-meteo API error: status %d", resp.StatusCode)
	}

	var archiveResp archiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&archiveResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return 0, false, fmt.Errorf("failed to decode response: %w", err)
	}

	total := 0.0
	known := 0
	for _, v := range archiveResp.Daily.PrecipitationSum {
		if v != nil {
			total += *v
			known++
		}
	}

	if known == 0 {
		c.logger.Warn("Open-Meteo returned no precipitation data, using default",
			zap.Float64("lat", p.Lat),
			zap.Float64("lon", p.Lon),
			zap.Float64("default_mm", c.defaultPrecipitation))
		return c.defaultPrecipitation, true, nil
	}

	return total, false, nil
}
