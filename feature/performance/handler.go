package performance

import (
	"strconv"
	"time"

	"theaterwecker/core/logger"
	"theaterwecker/core/reconcile"
	pr "theaterwecker/feature/performance/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for performances.
type Handler struct {
	service *Service
	now     func() time.Time
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service, now: time.Now}
}

// RegisterRoutes registers the performance routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/performances")
	group.Get("/", h.HandleList)
	group.Post("/reconcile", h.HandleReconcile)
	group.Post("/cleanup", h.HandleCleanup)
}

// HandleList returns stored performances.
// @Summary List Performances
// @Description List stored performances ordered by begin. Defaults to upcoming performances.
// @Tags performances
// @Produce json
// @Param from query string false "Lower bound (RFC3339 or YYYY-MM-DD), defaults to now"
// @Param to query string false "Upper bound (RFC3339 or YYYY-MM-DD)"
// @Param limit query int false "Maximum number of results" default(100)
// @Success 200 {array} reconcile.Listed "Performances"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /performances [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	f := pr.Filter{From: h.now(), Limit: 100}
	if v := c.Query("from"); v != "" {
		t, err := h.parseTime(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid from: " + err.Error()})
		}
		f.From = t
	}
	if v := c.Query("to"); v != "" {
		t, err := h.parseTime(v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid to: " + err.Error()})
		}
		f.To = t
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid limit"})
		}
		f.Limit = n
	}

	out, err := h.service.List(c.Context(), f)
	if err != nil {
		l.Error("Listing performances failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if out == nil {
		out = []pr.Listed{}
	}
	return c.JSON(out)
}

// HandleReconcile runs a reconciliation pass immediately.
// @Summary Run Reconciliation Pass
// @Description Fetch the current and next month, reconcile them against storage and report the outcome.
// @Tags performances
// @Produce json
// @Param dry_run query bool false "Plan only, apply nothing"
// @Success 200 {object} PassReport "Pass Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /performances/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	opts := reconcile.ReconcileOptions{DryRun: c.QueryBool("dry_run", false)}

	report, err := h.service.RunPass(c.Context(), h.now(), opts)
	if err != nil {
		l.Error("Reconciliation pass failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

// HandleCleanup runs the cleanup sweep immediately.
// @Summary Run Cleanup Sweep
// @Description Delete every performance that has already begun.
// @Tags performances
// @Produce json
// @Success 200 {object} CleanupReport "Cleanup Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /performances/cleanup [post]
func (h *Handler) HandleCleanup(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Cleanup(c.Context(), h.now())
	if err != nil {
		l.Error("Cleanup sweep failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(report)
}

func (h *Handler) parseTime(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.ParseInLocation(time.DateOnly, v, h.service.loc)
}
