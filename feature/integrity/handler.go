package integrity

import (
	"errors"

	"masterdata-monitor/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/local", h.HandleLocalCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleIntegrityCheck runs every check. ?fix=true republishes missing objects.
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	report, err := h.service.Run(c.UserContext(), c.QueryBool("fix", false))
	if err != nil && report == nil {
		return h.fail(c, err)
	}
	body := fiber.Map{"status": "checked", "healthy": report.Healthy(), "report": report}
	if err != nil {
		l.Error("Integrity check incomplete", zap.Error(err))
		body["status"] = "error"
		body["error"] = err.Error()
	}
	return c.JSON(body)
}

// HandleLocalCheck verifies the converted databases on disk.
func (h *Handler) HandleLocalCheck(c *fiber.Ctx) error {
	local, err := h.service.CheckLocal()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"status": "checked", "local": local})
}

// HandleStorageCheck lists the artifacts missing from the bucket.
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	if !h.service.StorageEnabled() {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "storage disabled"})
	}
	local, err := h.service.CheckLocal()
	if err != nil {
		return h.fail(c, err)
	}
	missing, err := h.service.CheckStorage(c.UserContext(), local)
	if err != nil {
		return h.fail(c, err)
	}
	if missing == nil {
		missing = []Artifact{}
	}
	return c.JSON(fiber.Map{"status": "checked", "missing": missing})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if errors.Is(err, ErrNoState) {
		code = fiber.StatusNotFound
	} else {
		logger.WithRayID(h.service.logger, c).Error("Integrity request failed", zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
