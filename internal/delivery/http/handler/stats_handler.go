package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/pkg/utils"
	"github.com/terrain-microservice/internal/usecase"
)

// StatsHandler - обработчик статистики классификаций
type StatsHandler struct {
	statsUC *usecase.StatsUseCase
	logger  *zap.Logger
}

// NewStatsHandler - создание нового StatsHandler
func NewStatsHandler(statsUC *usecase.StatsUseCase, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetStats godoc
// @Summary Статистика выданных классификаций
// @Description Возвращает накопленные счётчики классификаций по категориям
// @Tags Stats
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.StatsResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/stats [get]
func (h *StatsHandler) GetStats(c *fiber.Ctx) error {
	result, err := h.statsUC.GetStats(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
