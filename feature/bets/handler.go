package bets

import (
	"errors"
	"strconv"

	"megasena-monitor/core/logger"
	"megasena-monitor/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for bets.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the bet routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/bets")
	group.Post("/", h.HandleCreate)
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Delete("/:id", h.HandleDelete)
}

// HandleCreate registers a bet.
// @Summary Register Bet
// @Description Registers 6 to 15 numbers in [1,60] for Repeat consecutive draws starting at StartDraw.
// @Tags bets
// @Accept json
// @Produce json
// @Param bet body CreateRequest true "Bet"
// @Success 201 {object} View
// @Failure 400 {object} map[string]string "Invalid bet"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /bets [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	view, err := h.service.Create(c.UserContext(), req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// HandleList lists bets.
// @Summary List Bets
// @Description Returns every active bet with its outcomes and pending draws.
// @Tags bets
// @Produce json
// @Success 200 {array} View
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /bets [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	views, err := h.service.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(views)
}

// HandleGet returns one bet.
// @Summary Get Bet
// @Tags bets
// @Produce json
// @Param id path int true "Bet ID"
// @Success 200 {object} View
// @Failure 404 {object} map[string]string "Not Found"
// @Router /bets/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bet id"})
	}
	view, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(view)
}

// HandleDelete removes a bet.
// @Summary Delete Bet
// @Tags bets
// @Param id path int true "Bet ID"
// @Success 204
// @Failure 404 {object} map[string]string "Not Found"
// @Router /bets/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bet id"})
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	var ve *reconcile.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, reconcile.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	default:
		logger.WithRayID(h.logger, c).Error("Bet request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}
