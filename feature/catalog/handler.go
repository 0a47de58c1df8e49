package catalog

import (
	"errors"
	"net/url"
	"strconv"

	"anime-tracker/core/apperror"
	"anime-tracker/core/logger"
	"anime-tracker/core/media"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Route prefixes per kind.
var prefixes = map[media.Kind]string{
	media.KindSeries: "/anime_series",
	media.KindMovie:  "/movie",
}

// Handler handles HTTP requests for the catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the series and movie routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	for _, kind := range []media.Kind{media.KindSeries, media.KindMovie} {
		group := app.Group(prefixes[kind])
		group.Get("/", h.HandleList(kind))
		group.Post("/", h.HandleCreate(kind))
		group.Get("/:id", h.HandleGet(kind))
		group.Post("/:id/enrich", h.HandleEnrich(kind))
		group.Post("/:id", h.HandlePostWithID)
		group.Patch("/:id", h.HandleUpdate(kind, true))
		group.Put("/:id", h.HandleUpdate(kind, false))
		group.Delete("/:id", h.HandleDelete(kind))
	}
}

// HandleList returns a filtered, paginated listing.
// @Summary List titles
// @Description Paginated listing with name, genre, year range, search and ordering filters.
// @Tags catalog
// @Produce json
// @Param name query string false "Name substring (movie_name for movies)"
// @Param genre query string false "Genre substring"
// @Param released_after query int false "Minimum release year"
// @Param released_before query int false "Maximum release year"
// @Param search query string false "Name or genre substring"
// @Param ordering query string false "release_year, -release_year, name or -name"
// @Param page query int false "Page number"
// @Success 200 {object} catalog.Page
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]interface{}
// @Router /anime_series [get]
// @Router /movie [get]
func (h *Handler) HandleList(kind media.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		f, err := ParseFilter(kind, c.Queries())
		if err != nil {
			return h.fail(c, err)
		}

		rows, total, err := h.service.List(c.Context(), kind, f)
		if errors.Is(err, ErrNoResults) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "No results found.",
			})
		}
		if err != nil {
			return h.fail(c, err)
		}

		page := Page{Count: total, Results: SerializeAll(rows)}
		if int64(f.Page*h.service.PageSize()) < total {
			page.Next = pageLink(c, f.Page+1)
		}
		if f.Page > 1 {
			page.Previous = pageLink(c, f.Page-1)
		}
		return c.JSON(page)
	}
}

// HandleGet returns a single title.
// @Summary Get title
// @Tags catalog
// @Produce json
// @Param id path int true "Title ID"
// @Success 200 {object} catalog.SeriesResponse
// @Failure 404 {object} map[string]string
// @Router /anime_series/{id} [get]
// @Router /movie/{id} [get]
func (h *Handler) HandleGet(kind media.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return h.fail(c, err)
		}
		t, err := h.service.Get(c.Context(), kind, id)
		if err != nil {
			return h.fail(c, err)
		}
		return c.JSON(Serialize(t))
	}
}

// HandleCreate creates one title or, for an array body, several.
// Missing fields are filled from metadata providers.
// @Summary Create title(s)
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body catalog.TitleInput true "Title or array of titles"
// @Success 200 {object} catalog.SeriesResponse
// @Failure 400 {object} map[string]string
// @Router /anime_series [post]
// @Router /movie [post]
func (h *Handler) HandleCreate(kind media.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		inputs, many, err := DecodeInputs(c.Body())
		if err != nil {
			return h.fail(c, err)
		}

		if !many {
			t, err := h.service.Create(c.Context(), kind, inputs[0])
			if err != nil {
				return h.fail(c, err)
			}
			return c.Status(fiber.StatusOK).JSON(Serialize(t))
		}

		titles, err := h.service.CreateMany(c.Context(), kind, inputs)
		if err != nil {
			return h.fail(c, err)
		}
		out := make([]any, 0, len(titles))
		for _, t := range titles {
			out = append(out, Serialize(t))
		}
		return c.Status(fiber.StatusOK).JSON(out)
	}
}

// HandlePostWithID rejects POST on an item path.
func (h *Handler) HandlePostWithID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "POST Cannot Work In Primary Key",
	})
}

// HandleUpdate applies a PATCH (partial) or a PUT. Providers are not consulted.
// @Summary Update title
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path int true "Title ID"
// @Param body body catalog.TitleInput true "Fields to change"
// @Success 202 {object} catalog.SeriesResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /anime_series/{id} [patch]
// @Router /anime_series/{id} [put]
func (h *Handler) HandleUpdate(kind media.Kind, partial bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return h.fail(c, err)
		}
		in, err := DecodeInput(c.Body())
		if err != nil {
			return h.fail(c, err)
		}
		t, err := h.service.Update(c.Context(), kind, id, in, partial)
		if err != nil {
			return h.fail(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(Serialize(t))
	}
}

// HandleEnrich re-runs enrichment on a stored title.
// @Summary Enrich title
// @Tags catalog
// @Produce json
// @Param id path int true "Title ID"
// @Success 202 {object} catalog.SeriesResponse
// @Failure 404 {object} map[string]string
// @Router /anime_series/{id}/enrich [post]
// @Router /movie/{id}/enrich [post]
func (h *Handler) HandleEnrich(kind media.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return h.fail(c, err)
		}
		t, err := h.service.Enrich(c.Context(), kind, id)
		if err != nil {
			return h.fail(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(Serialize(t))
	}
}

// HandleDelete soft-deletes a title.
// @Summary Delete title
// @Tags catalog
// @Produce json
// @Param id path int true "Title ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /anime_series/{id} [delete]
// @Router /movie/{id} [delete]
func (h *Handler) HandleDelete(kind media.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := parseID(c)
		if err != nil {
			return h.fail(c, err)
		}
		if err := h.service.Delete(c.Context(), kind, id); err != nil {
			return h.fail(c, err)
		}
		return c.JSON(fiber.Map{"message": "Deleted"})
	}
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := apperror.StatusCode(err)
	l := logger.WithRayID(h.service.logger, c)

	msg := err.Error()
	if status >= fiber.StatusInternalServerError {
		l.Error("Catalog request failed", zap.String("path", c.Path()), zap.Error(err))
		msg = "Internal Server Error"
	} else {
		l.Debug("Catalog request rejected", zap.Int("status", status), zap.Error(err))
	}

	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NotFound("Object Not Found")
	}
	return uint(id), nil
}

func pageLink(c *fiber.Ctx, page int) *string {
	vals, _ := url.ParseQuery(string(c.Request().URI().QueryString()))
	if page <= 1 {
		vals.Del("page")
	} else {
		vals.Set("page", strconv.Itoa(page))
	}

	link := c.BaseURL() + c.Path()
	if enc := vals.Encode(); enc != "" {
		link += "?" + enc
	}
	return &link
}
