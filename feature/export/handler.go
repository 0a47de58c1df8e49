package export

import (
	"anime-tracker/core/apperror"
	"anime-tracker/core/logger"
	"anime-tracker/core/media"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for exports.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the export routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/export")
	group.Post("/:kind", h.HandleExport)
	group.Get("/:kind", h.HandleList)
	group.Get("/:kind/:name", h.HandleRead)
}

// HandleExport writes a new snapshot of one kind.
// @Summary Export catalog
// @Description Writes every title of the kind as JSON to object storage.
// @Tags export
// @Produce json
// @Param kind path string true "series or movie"
// @Success 201 {object} export.Result
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /export/{kind} [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	kind, err := parseKind(c)
	if err != nil {
		return h.fail(c, err)
	}
	res, err := h.service.Export(c.Context(), kind)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// HandleList lists stored snapshots.
// @Summary List exports
// @Tags export
// @Produce json
// @Param kind path string true "series or movie"
// @Success 200 {array} export.Object
// @Router /export/{kind} [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	kind, err := parseKind(c)
	if err != nil {
		return h.fail(c, err)
	}
	objects, err := h.service.List(c.Context(), kind)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(objects)
}

// HandleRead returns one stored snapshot.
// @Summary Download export
// @Tags export
// @Produce json
// @Param kind path string true "series or movie"
// @Param name path string true "Export file name"
// @Success 200 {array} catalog.SeriesResponse
// @Failure 404 {object} map[string]string
// @Router /export/{kind}/{name} [get]
func (h *Handler) HandleRead(c *fiber.Ctx) error {
	kind, err := parseKind(c)
	if err != nil {
		return h.fail(c, err)
	}
	data, err := h.service.Read(c.Context(), kind, c.Params("name"))
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := apperror.StatusCode(err)
	msg := err.Error()
	if status >= fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error("Export request failed", zap.Error(err))
		msg = "Internal Server Error"
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func parseKind(c *fiber.Ctx) (media.Kind, error) {
	kind, err := media.ParseKind(c.Params("kind"))
	if err != nil {
		return "", apperror.Wrap(apperror.TypeValidation, "invalid kind", err)
	}
	return kind, nil
}
