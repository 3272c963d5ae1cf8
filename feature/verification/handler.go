package verification

import (
	"errors"

	"megasena-monitor/core/logger"
	"megasena-monitor/core/scheduler"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for verification passes.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the verification routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/verify")
	group.Post("/", h.HandleVerify)
	group.Post("/foreground", h.HandleForeground)
	group.Get("/status", h.HandleStatus)
}

// HandleVerify runs a manual reconciliation pass.
// @Summary Verify Bets
// @Description Resolves every pending draw and records new outcomes. When a pass is already running the request is queued.
// @Tags verification
// @Produce json
// @Success 200 {object} reconcile.Report
// @Success 202 {object} map[string]string "Queued behind running pass"
// @Failure 503 {object} map[string]string "Shutting down"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /verify [post]
func (h *Handler) HandleVerify(c *fiber.Ctx) error {
	report, err := h.service.Verify(c.UserContext())
	switch {
	case errors.Is(err, scheduler.ErrQueued):
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "queued"})
	case errors.Is(err, scheduler.ErrStopped):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "stopped"})
	case err != nil:
		logger.WithRayID(h.logger, c).Error("Manual pass failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleForeground signals a client foreground event.
// @Summary Foreground Signal
// @Description Runs a bounded automatic pass unless one is already running.
// @Tags verification
// @Produce json
// @Success 200 {object} reconcile.Report
// @Failure 409 {object} map[string]string "Pass already running"
// @Failure 503 {object} map[string]string "Shutting down"
// @Router /verify/foreground [post]
func (h *Handler) HandleForeground(c *fiber.Ctx) error {
	report, err := h.service.Foreground(c.UserContext())
	switch {
	case errors.Is(err, scheduler.ErrBusy):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"status": "busy"})
	case errors.Is(err, scheduler.ErrStopped):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "stopped"})
	case err != nil:
		logger.WithRayID(h.logger, c).Error("Foreground pass failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleStatus returns the scheduler state and the last report.
// @Summary Verification Status
// @Tags verification
// @Produce json
// @Success 200 {object} scheduler.Status
// @Router /verify/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}
