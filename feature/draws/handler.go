package draws

import (
	"errors"
	"strconv"

	"megasena-monitor/core/logger"
	"megasena-monitor/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for draw results.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the draw routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/draws")
	group.Get("/latest", h.HandleLatest)
	group.Get("/recent", h.HandleRecent)
	group.Get("/:number", h.HandleGet)
}

// HandleLatest returns the most recent draw.
// @Summary Latest Draw
// @Tags draws
// @Produce json
// @Success 200 {object} reconcile.DrawResult
// @Failure 502 {object} map[string]string "Provider unavailable"
// @Router /draws/latest [get]
func (h *Handler) HandleLatest(c *fiber.Ctx) error {
	draw, err := h.service.Latest(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(draw)
}

// HandleRecent returns the latest draws, newest first.
// @Summary Recent Draws
// @Tags draws
// @Produce json
// @Param count query int false "Number of draws (default 5, max 50)"
// @Success 200 {array} reconcile.DrawResult
// @Failure 502 {object} map[string]string "Provider unavailable"
// @Router /draws/recent [get]
func (h *Handler) HandleRecent(c *fiber.Ctx) error {
	draws, err := h.service.Recent(c.UserContext(), c.QueryInt("count", DefaultRecent))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(draws)
}

// HandleGet returns one draw.
// @Summary Get Draw
// @Tags draws
// @Produce json
// @Param number path int true "Draw number"
// @Success 200 {object} reconcile.DrawResult
// @Failure 400 {object} map[string]string "Invalid draw number"
// @Failure 404 {object} map[string]string "Not yet available"
// @Failure 502 {object} map[string]string "Provider unavailable"
// @Router /draws/{number} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	number, err := strconv.Atoi(c.Params("number"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid draw number"})
	}
	draw, err := h.service.Get(c.UserContext(), number)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(draw)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var ve *reconcile.ValidationError
	var fe *reconcile.FetchError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, reconcile.ErrNotYetAvailable):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error(), "status": string(reconcile.StatusNotYetAvailable)})
	case errors.As(err, &fe):
		logger.WithRayID(h.logger, c).Warn("Draw lookup failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.logger, c).Error("Draw request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
