package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/terrain-microservice/internal/domain"
)

type Config struct {
	Server     ServerConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Log        LogConfig
	Thresholds ThresholdsConfig
	Elevation  ElevationConfig
	Climate    ClimateConfig
	Geocode    GeocodeConfig
	Worker     WorkerConfig
	Metrics    MetricsConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	ClassificationTTL time.Duration
	GeocodeTTL        time.Duration
}

type LogConfig struct {
	Level string
}

// ThresholdsConfig - переопределяемые пороги классификации.
// Нулевые значения заменяются дефолтами после загрузки.
type ThresholdsConfig struct {
	CoastalDistanceKm  float64
	HighElevationM     float64
	MidElevationMinM   float64
	LowElevationM      float64
	LowPrecipitationMm float64
}

type ElevationConfig struct {
	BaseURL           string
	RequestTimeout    int // секунды
	DefaultElevationM float64
}

type ClimateConfig struct {
	BaseURL                string
	RequestTimeout         int // секунды
	DefaultPrecipitationMm float64
}

type GeocodeConfig struct {
	BaseURL        string
	RequestTimeout int // секунды
	UserAgent      string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
}

type MetricsConfig struct {
	Enabled bool
	Port    int
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// .env необязателен: в контейнере конфигурация приходит из окружения
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			ClassificationTTL: time.Duration(viper.GetInt("CLASSIFICATION_CACHE_TTL")) * time.Second,
			GeocodeTTL:        time.Duration(viper.GetInt("GEOCODE_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Thresholds: ThresholdsConfig{
			CoastalDistanceKm:  viper.GetFloat64("THRESHOLD_COASTAL_DISTANCE_KM"),
			HighElevationM:     viper.GetFloat64("THRESHOLD_HIGH_ELEVATION_M"),
			MidElevationMinM:   viper.GetFloat64("THRESHOLD_MID_ELEVATION_MIN_M"),
			LowElevationM:      viper.GetFloat64("THRESHOLD_LOW_ELEVATION_M"),
			LowPrecipitationMm: viper.GetFloat64("THRESHOLD_LOW_PRECIPITATION_MM"),
		},
		Elevation: ElevationConfig{
			BaseURL:           viper.GetString("ELEVATION_BASE_URL"),
			RequestTimeout:    viper.GetInt("ELEVATION_REQUEST_TIMEOUT"),
			DefaultElevationM: viper.GetFloat64("ELEVATION_DEFAULT_M"),
		},
		Climate: ClimateConfig{
			BaseURL:                viper.GetString("CLIMATE_BASE_URL"),
			RequestTimeout:         viper.GetInt("CLIMATE_REQUEST_TIMEOUT"),
			DefaultPrecipitationMm: viper.GetFloat64("CLIMATE_DEFAULT_PRECIPITATION_MM"),
		},
		Geocode: GeocodeConfig{
			BaseURL:        viper.GetString("GEOCODE_BASE_URL"),
			RequestTimeout: viper.GetInt("GEOCODE_REQUEST_TIMEOUT"),
			UserAgent:      viper.GetString("GEOCODE_USER_AGENT"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
			Port:    viper.GetInt("METRICS_PORT"),
		},
	}

	// Set default values if not provided
	if cfg.Cache.ClassificationTTL == 0 {
		cfg.Cache.ClassificationTTL = 3600 * time.Second
	}
	if cfg.Cache.GeocodeTTL == 0 {
		cfg.Cache.GeocodeTTL = 86400 * time.Second
	}
	if cfg.Elevation.BaseURL == "" {
		cfg.Elevation.BaseURL = "https://api.open-elevation.com"
	}
	if cfg.Elevation.RequestTimeout == 0 {
		cfg.Elevation.RequestTimeout = 10
	}
	if cfg.Climate.BaseURL == "" {
		cfg.Climate.BaseURL = "https://archive-api.open-meteo.com"
	}
	if cfg.Climate.RequestTimeout == 0 {
		cfg.Climate.RequestTimeout = 10
	}
	if cfg.Climate.DefaultPrecipitationMm == 0 {
		cfg.Climate.DefaultPrecipitationMm = 800
	}
	if cfg.Geocode.BaseURL == "" {
		cfg.Geocode.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.Geocode.RequestTimeout == 0 {
		cfg.Geocode.RequestTimeout = 10
	}
	if cfg.Geocode.UserAgent == "" {
		cfg.Geocode.UserAgent = "terrain-microservice/1.0"
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "terrain-classification-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.MaxRetries == 0 {
		cfg.Worker.MaxRetries = 3
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}

	return cfg, nil
}

// GetServerAddr возвращает адрес HTTP сервера
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetRedisAddr возвращает адрес Redis
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// GetThresholds возвращает пороги классификации, заполняя дефолты
// вместо незаданных значений
func (c *Config) GetThresholds() domain.Thresholds {
	th := domain.DefaultThresholds()
	if c.Thresholds.CoastalDistanceKm > 0 {
		th.CoastalDistanceKm = c.Thresholds.CoastalDistanceKm
	}
	if c.Thresholds.HighElevationM > 0 {
		th.HighElevationM = c.Thresholds.HighElevationM
	}
	if c.Thresholds.MidElevationMinM > 0 {
		th.MidElevationMinM = c.Thresholds.MidElevationMinM
	}
	if c.Thresholds.LowElevationM > 0 {
		th.LowElevationM = c.Thresholds.LowElevationM
	}
	if c.Thresholds.LowPrecipitationMm > 0 {
		th.LowPrecipitationMm = c.Thresholds.LowPrecipitationMm
	}
	return th
}
