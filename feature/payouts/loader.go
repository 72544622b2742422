package payouts

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the payouts feature around an existing service.
func NewFeature(svc *Service, logger *zap.Logger, runTimeout time.Duration) *Feature {
	return &Feature{service: svc, handler: NewHandler(svc, logger, runTimeout)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "payouts"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
