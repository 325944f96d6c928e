package notification

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	dispatcher *Dispatcher
	handler    *Handler
}

// NewFeature creates the notification feature.
func NewFeature(d *Dispatcher) *Feature {
	return &Feature{dispatcher: d, handler: NewHandler(d)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "notification"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.dispatcher != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
