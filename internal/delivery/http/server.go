package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/config"
	"github.com/terrain-microservice/internal/delivery/http/handler"
	"github.com/terrain-microservice/internal/delivery/http/middleware"
	apperrors "github.com/terrain-microservice/internal/pkg/errors"
	"github.com/terrain-microservice/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	classifyHandler *handler.ClassifyHandler
	searchHandler   *handler.SearchHandler
	statsHandler    *handler.StatsHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	classifyHandler *handler.ClassifyHandler,
	searchHandler *handler.SearchHandler,
	statsHandler *handler.StatsHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Terrain Microservice",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		classifyHandler: classifyHandler,
		searchHandler:   searchHandler,
		statsHandler:    statsHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Classification routes
	api.Get("/classify", s.classifyHandler.Classify)
	api.Post("/classify", s.classifyHandler.ClassifyPOST)
	api.Post("/classify/sample", s.classifyHandler.ClassifySample)
	api.Post("/batch/classify", s.classifyHandler.BatchClassify)
	api.Post("/batch/classify/async", s.classifyHandler.AsyncBatchClassify)
	api.Get("/categories", s.classifyHandler.GetCategories)

	// Geocoding
	api.Get("/search", s.searchHandler.Search)

	// Stats
	api.Get("/stats", s.statsHandler.GetStats)

	// Debug routes - трассировка правил классификации
	debug := api.Group("/debug")
	debug.Get("/classify/trace", s.classifyHandler.Trace)
	debug.Post("/classify/trace", s.classifyHandler.TracePOST)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
		}

		logger.Error("HTTP Error",
			zap.String("path", c.Path()),
			zap.Int("status", code),
			zap.Error(err),
		)

		// Код ошибки выводится из статуса, чтобы 404/405 от роутера
		// не маскировались под внутреннюю ошибку сервера
		return c.Status(code).JSON(utils.ErrorResponse{
			Error: apperrors.New(errorCodeForStatus(code), err.Error(), code),
		})
	}
}

// errorCodeForStatus - символьный код ошибки для ответов, не прошедших
// через utils.SendError (ошибки роутера и middleware)
func errorCodeForStatus(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestTimeout:
		return "REQUEST_TIMEOUT"
	case fiber.StatusRequestEntityTooLarge:
		return "REQUEST_TOO_LARGE"
	}
	if status >= 400 && status < 500 {
		return "INVALID_REQUEST"
	}
	return "INTERNAL_SERVER_ERROR"
}
