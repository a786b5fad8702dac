package validation

import (
	"record-compactor/core/logger"
	"record-compactor/feature/validation/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for validation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the validation routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/validation")
	group.Get("/", h.HandleValidateAll)
	group.Get("/:check", h.HandleValidateOne)
}

// HandleValidateAll runs every check.
// @Summary Run All Checks
// @Description Runs the disk, config, storage and database checks concurrently.
// @Tags validation
// @Produce json
// @Success 200 {object} Report "Validation Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /validation [get]
func (h *Handler) HandleValidateAll(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.RunAll(c.Context())
	if err != nil {
		l.Error("Validation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleValidateOne runs one check, optionally fixing storage.
// @Summary Run One Check
// @Tags validation
// @Produce json
// @Param check path string true "disk, config, storage or database"
// @Param fix query boolean false "Create missing bucket and prefix (storage only)"
// @Success 200 {object} checks.CheckResult "Check Result"
// @Failure 404 {object} map[string]string "Unknown check"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /validation/{check} [get]
func (h *Handler) HandleValidateOne(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	name := c.Params("check")

	res, err := h.service.Run(c.Context(), name)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}

	if name == checks.Storage && !res.Passed && c.QueryBool("fix") {
		l.Info("Attempting to fix storage")
		if err := h.service.FixStorage(c.Context()); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to fix storage",
				"details": err.Error(),
			})
		}
		res, _ = h.service.Run(c.Context(), name)
	}
	return c.JSON(res)
}
