package ruleset

import (
	"net/url"

	"ruleset-combiner/core/entity"
	"ruleset-combiner/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the combined ruleset.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the ruleset routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/ruleset")
	group.Get("/", h.HandleSummary)
	group.Post("/rebuild", h.HandleRebuild)
	group.Get("/manifest", h.HandleManifest)
	group.Get("/:kind", h.HandleRecords)
	group.Get("/:kind/:name", h.HandleRecord)
}

// HandleSummary returns the current ruleset summary.
// @Summary Ruleset Summary
// @Description Returns the run id, source sets and record counts of the combined ruleset, building it on first use.
// @Tags ruleset
// @Produce json
// @Success 200 {object} Summary
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /ruleset [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	summary, err := h.service.Summary(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(summary)
}

// HandleRebuild rebuilds the ruleset from the input directory.
// @Summary Rebuild Ruleset
// @Description Re-reads every source set and combines them again. Concurrent requests share one build.
// @Tags ruleset
// @Produce json
// @Success 200 {object} Summary
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /ruleset/rebuild [post]
func (h *Handler) HandleRebuild(c *fiber.Ctx) error {
	logger.WithRayID(h.logger, c).Info("Rebuild requested")
	if _, err := h.service.Rebuild(c.Context()); err != nil {
		return h.fail(c, err)
	}
	summary, err := h.service.Summary(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(summary)
}

// HandleManifest returns the asset manifest of the current ruleset.
// @Summary Asset Manifest
// @Description Lists every output record with the source entity its assets derive from.
// @Tags ruleset
// @Produce json
// @Success 200 {array} ManifestRecord
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /ruleset/manifest [get]
func (h *Handler) HandleManifest(c *fiber.Ctx) error {
	rs, err := h.service.Current(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	if rs.Manifest == nil {
		return c.JSON(Manifest{})
	}
	return c.JSON(rs.Manifest)
}

// HandleRecords returns every consolidated record of a kind.
// @Summary Records By Kind
// @Description Returns the consolidated records of one kind (building, improvement, unit, nation).
// @Tags ruleset
// @Produce json
// @Param kind path string true "Entity kind"
// @Success 200 {array} map[string]interface{}
// @Failure 400 {object} map[string]string "Unknown kind"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /ruleset/{kind} [get]
func (h *Handler) HandleRecords(c *fiber.Ctx) error {
	kind, ok := entity.ParseKind(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown kind"})
	}
	rs, err := h.service.Current(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	records := rs.Records(kind)
	if records == nil {
		records = []entity.Entity{}
	}
	return c.JSON(records)
}

// HandleRecord returns one consolidated record.
// @Summary Record By Name
// @Description Returns one consolidated record by its synthesized name.
// @Tags ruleset
// @Produce json
// @Param kind path string true "Entity kind"
// @Param name path string true "Record name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "Unknown kind"
// @Failure 404 {object} map[string]string "Not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /ruleset/{kind}/{name} [get]
func (h *Handler) HandleRecord(c *fiber.Ctx) error {
	kind, ok := entity.ParseKind(c.Params("kind"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown kind"})
	}
	name, err := url.PathUnescape(c.Params("name"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid name"})
	}
	rs, err := h.service.Current(c.Context())
	if err != nil {
		return h.fail(c, err)
	}
	e, found := rs.Find(kind, name)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	}
	return c.JSON(e)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	logger.WithRayID(h.logger, c).Error("Ruleset request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
