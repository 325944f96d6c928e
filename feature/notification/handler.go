package notification

import (
	"errors"
	"time"

	"theaterwecker/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for notifications.
type Handler struct {
	dispatcher *Dispatcher
	now        func() time.Time
}

// NewHandler creates a new HTTP handler.
func NewHandler(d *Dispatcher) *Handler {
	return &Handler{dispatcher: d, now: time.Now}
}

// RegisterRoutes registers the notification routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/notifications")
	group.Post("/", h.HandleEnqueue)
	group.Get("/:key", h.HandleGet)
}

// HandleEnqueue stores a notification for delivery.
// @Summary Enqueue Notification
// @Description Queue a mail for delivery. Requests repeating a recipient and purpose return the existing task.
// @Tags notifications
// @Accept json
// @Produce json
// @Param request body Request true "Notification"
// @Success 202 {object} RetryTask "Queued"
// @Success 200 {object} RetryTask "Already queued"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /notifications [post]
func (h *Handler) HandleEnqueue(c *fiber.Ctx) error {
	l := logger.WithRayID(h.dispatcher.logger, c)

	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Recipient == "" || req.Purpose == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "recipient and purpose are required"})
	}

	task, created, err := h.dispatcher.Enqueue(c.Context(), req, h.now())
	if err != nil {
		l.Error("Enqueueing notification failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if created {
		return c.Status(fiber.StatusAccepted).JSON(task)
	}
	return c.JSON(task)
}

// HandleGet returns a notification task by idempotency key.
// @Summary Get Notification
// @Description Get the delivery state of a notification task.
// @Tags notifications
// @Produce json
// @Param key path string true "Idempotency key"
// @Success 200 {object} RetryTask "Task"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /notifications/{key} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	task, err := h.dispatcher.Get(c.Context(), c.Params("key"))
	if errors.Is(err, ErrTaskNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		logger.WithRayID(h.dispatcher.logger, c).Error("Loading notification failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(task)
}
