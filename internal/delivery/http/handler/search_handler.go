package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/pkg/utils"
	"github.com/terrain-microservice/internal/pkg/validator"
	"github.com/terrain-microservice/internal/usecase"
	"github.com/terrain-microservice/internal/usecase/dto"
)

// SearchHandler - обработчик геокодирования
type SearchHandler struct {
	searchUC *usecase.SearchUseCase
	logger   *zap.Logger
}

// NewSearchHandler - создание нового SearchHandler
func NewSearchHandler(searchUC *usecase.SearchUseCase, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
		logger:   logger,
	}
}

// Search godoc
// @Summary Геокодирование свободного текста
// @Description Возвращает кандидатов координат по текстовому запросу (Nominatim). Координаты кандидата можно передать в /classify.
// @Tags Search
// @Produce json
// @Param q query string true "Текстовый запрос (минимум 2 символа)"
// @Param limit query int false "Максимальное количество кандидатов" default(5)
// @Success 200 {object} utils.SuccessResponse{data=dto.SearchResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/search [get]
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	var req dto.SearchRequest
	req.Query = c.Query("q")
	req.Limit = c.QueryInt("limit", 5)

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.searchUC.Search(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}
