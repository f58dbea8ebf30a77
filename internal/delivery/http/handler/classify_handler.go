package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/terrain-microservice/internal/domain"
	"github.com/terrain-microservice/internal/pkg/errors"
	"github.com/terrain-microservice/internal/pkg/utils"
	"github.com/terrain-microservice/internal/pkg/validator"
	"github.com/terrain-microservice/internal/usecase"
	"github.com/terrain-microservice/internal/usecase/dto"
)

// ClassifyHandler - обработчик запросов классификации рельефа
type ClassifyHandler struct {
	classifyUC *usecase.ClassifyUseCase
	logger     *zap.Logger
}

// NewClassifyHandler - создание нового ClassifyHandler
func NewClassifyHandler(classifyUC *usecase.ClassifyUseCase, logger *zap.Logger) *ClassifyHandler {
	return &ClassifyHandler{
		classifyUC: classifyUC,
		logger:     logger,
	}
}

// parsePointQuery читает координаты из query-параметров.
// Отсутствующий или нечисловой параметр - ошибка, а не молчаливый ноль:
// 0 - валидная координата, подмена искажала бы точку
func parsePointQuery(c *fiber.Ctx) (dto.ClassifyRequest, error) {
	var req dto.ClassifyRequest

	latStr := c.Query("lat")
	lonStr := c.Query("lon")
	if latStr == "" || lonStr == "" {
		return req, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"required": "lat, lon",
		})
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	if latErr != nil || lonErr != nil {
		return req, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"lat": latStr,
			"lon": lonStr,
		})
	}

	req.Lat = lat
	req.Lon = lon

	if err := validator.Validate(&req); err != nil {
		return req, err
	}
	return req, nil
}

// Classify godoc
// @Summary Классификация рельефа точки
// @Description Определяет категорию рельефа (neithal, kurinji, paalai, mullai, marudham) по координатам. Высота и осадки запрашиваются у внешних провайдеров, расстояние до берега считается по справочному набору береговых точек.
// @Tags Classify
// @Accept json
// @Produce json
// @Param lat query number true "Широта (-90..90)"
// @Param lon query number true "Долгота (-180..180)"
// @Success 200 {object} utils.SuccessResponse{data=dto.ClassifyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/classify [get]
func (h *ClassifyHandler) Classify(c *fiber.Ctx) error {
	req, err := parsePointQuery(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	started := time.Now()
	result, err := h.classifyUC.ClassifyPoint(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		TimeMSec: float64(time.Since(started).Microseconds()) / 1000.0,
		Cached:   result.Cached,
	})
}

// ClassifyPOST godoc
// @Summary Классификация рельефа точки (тело запроса)
// @Description Вариант /classify с координатами в теле запроса
// @Tags Classify
// @Accept json
// @Produce json
// @Param request body dto.ClassifyRequest true "Координаты точки"
// @Success 200 {object} utils.SuccessResponse{data=dto.ClassifyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/classify [post]
func (h *ClassifyHandler) ClassifyPOST(c *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	started := time.Now()
	result, err := h.classifyUC.ClassifyPoint(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		TimeMSec: float64(time.Since(started).Microseconds()) / 1000.0,
		Cached:   result.Cached,
	})
}

// ClassifySample godoc
// @Summary Классификация готового образца
// @Description Классифицирует образец (высота, расстояние до берега, осадки) без обращения к провайдерам. Пороги можно переопределить в теле запроса.
// @Tags Classify
// @Accept json
// @Produce json
// @Param request body dto.ClassifySampleRequest true "Образец рельефа и необязательные пороги"
// @Success 200 {object} utils.SuccessResponse{data=dto.ClassifySampleResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/classify/sample [post]
func (h *ClassifyHandler) ClassifySample(c *fiber.Ctx) error {
	var req dto.ClassifySampleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.classifyUC.ClassifySample(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// BatchClassify godoc
// @Summary Пакетная классификация точек
// @Description Классифицирует до 100 точек за один запрос. Ошибка одной точки не прерывает пакет.
// @Tags Classify
// @Accept json
// @Produce json
// @Param request body dto.BatchClassifyRequest true "Массив координат точек"
// @Success 200 {object} utils.SuccessResponse{data=dto.BatchClassifyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/batch/classify [post]
func (h *ClassifyHandler) BatchClassify(c *fiber.Ctx) error {
	var req dto.BatchClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.classifyUC.ClassifyBatch(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Meta.TotalPoints,
	})
}

// AsyncBatchClassify godoc
// @Summary Асинхронная пакетная классификация
// @Description Ставит пакет точек в очередь (Redis Stream) и сразу возвращает идентификатор задания. Результат публикуется воркером в стрим завершённых заданий.
// @Tags Classify
// @Accept json
// @Produce json
// @Param request body dto.BatchClassifyRequest true "Массив координат точек"
// @Success 202 {object} utils.SuccessResponse{data=dto.AsyncBatchClassifyResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/batch/classify/async [post]
func (h *ClassifyHandler) AsyncBatchClassify(c *fiber.Ctx) error {
	var req dto.BatchClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.classifyUC.EnqueueBatch(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, result, nil)
}

// Trace godoc
// @Summary Классификация с трассировкой правил
// @Description Диагностический эндпоинт: возвращает результат классификации вместе с полной последовательностью проверенных правил обоих ярусов.
// @Tags Debug
// @Accept json
// @Produce json
// @Param lat query number true "Широта (-90..90)"
// @Param lon query number true "Долгота (-180..180)"
// @Success 200 {object} utils.SuccessResponse{data=dto.ClassifyTraceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/debug/classify/trace [get]
func (h *ClassifyHandler) Trace(c *fiber.Ctx) error {
	req, err := parsePointQuery(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.classifyUC.ClassifyTrace(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// TracePOST godoc
// @Summary Классификация с трассировкой правил (тело запроса)
// @Description Вариант /debug/classify/trace с координатами в теле запроса
// @Tags Debug
// @Accept json
// @Produce json
// @Param request body dto.ClassifyRequest true "Координаты точки"
// @Success 200 {object} utils.SuccessResponse{data=dto.ClassifyTraceResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/debug/classify/trace [post]
func (h *ClassifyHandler) TracePOST(c *fiber.Ctx) error {
	var req dto.ClassifyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	result, err := h.classifyUC.ClassifyTrace(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}

// GetCategories godoc
// @Summary Список категорий рельефа
// @Description Возвращает все пять категорий ainthinai с описаниями
// @Tags Classify
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.CategoriesResponse}
// @Router /api/v1/categories [get]
func (h *ClassifyHandler) GetCategories(c *fiber.Ctx) error {
	categories := make([]dto.CategoryInfo, len(domain.Categories))
	for i, cat := range domain.Categories {
		categories[i] = dto.CategoryInfo{
			Category:    cat,
			Description: domain.CategoryDescriptions[cat],
		}
	}

	return utils.SendSuccess(c, dto.CategoriesResponse{Categories: categories}, &utils.Meta{
		Total: len(categories),
	})
}
