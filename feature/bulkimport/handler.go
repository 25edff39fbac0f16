package bulkimport

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/harked/alfresco-bulk-import/core/logger"
)

// Handler handles HTTP requests for the bulk import job.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the bulk import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/bulkimport")
	group.Post("/", h.HandleInitiate)
	group.Post("/stop", h.HandleStop)
	group.Get("/status", h.HandleStatus)
}

// HandleInitiate launches a bulk import in the background.
// @Summary Initiate Bulk Import
// @Description Start a new bulk import run over the configured source directory.
// @Tags bulkimport
// @Produce json
// @Success 202 {object} map[string]string "Import initiated"
// @Failure 409 {object} map[string]string "Import already in progress"
// @Router /bulkimport [post]
func (h *Handler) HandleInitiate(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Start(context.Background()); err != nil {
		l.Warn("Import initiation rejected", zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"result": err.Error(),
		})
	}

	l.Info("Bulk import initiated")
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"result": "import initiated",
	})
}

// HandleStop requests that a running import stop at the next item
// boundary. Stopping is asynchronous: the 202 acknowledges the
// request, not its completion.
// @Summary Stop Bulk Import
// @Description Request that the running bulk import stop.
// @Tags bulkimport
// @Produce json
// @Success 202 {object} map[string]string "Stop requested"
// @Failure 400 {object} map[string]string "No imports in progress"
// @Router /bulkimport/stop [post]
func (h *Handler) HandleStop(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if !h.service.Status().RequestStop() {
		l.Warn("Stop requested with no import in progress")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"result": "no imports in progress",
		})
	}

	l.Info("Import stop requested")
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"result": "stop requested",
	})
}

// HandleStatus reports the current job status.
// @Summary Bulk Import Status
// @Description Get the current state and counters of the bulk import job.
// @Tags bulkimport
// @Produce json
// @Success 200 {object} Snapshot "Job status"
// @Router /bulkimport/status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status().Snapshot())
}
