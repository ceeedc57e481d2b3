package status

import (
	"errors"

	"masterdata-monitor/core/logger"
	"masterdata-monitor/feature/region"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for region status.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/versions", h.HandleGetVersions)
	app.Get("/versions/:region", h.HandleGetRegion)
	app.Get("/history/:region", h.HandleGetHistory)
}

// HandleGetVersions returns every tracked region.
func (h *Handler) HandleGetVersions(c *fiber.Ctx) error {
	overview, err := h.service.Overview()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(overview)
}

// HandleGetRegion returns one region.
func (h *Handler) HandleGetRegion(c *fiber.Ctx) error {
	st, err := h.service.Region(c.Params("region"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(st)
}

// HandleGetHistory returns the latest run history of a region. ?limit caps the entries.
func (h *Handler) HandleGetHistory(c *fiber.Ctx) error {
	entries, err := h.service.History(c.UserContext(), c.Params("region"), c.QueryInt("limit", 0))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"entries": entries})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, region.ErrUnknownRegion), errors.Is(err, ErrRegionNotTracked), errors.Is(err, ErrNoState):
		code = fiber.StatusNotFound
	case errors.Is(err, ErrHistoryDisabled):
		code = fiber.StatusServiceUnavailable
	default:
		logger.WithRayID(h.service.logger, c).Error("Status request failed", zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
