package export

import (
	"anime-tracker/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the export feature. A nil client disables it.
func NewFeature(client storage.Client, cfg storage.Config, source Source, logger *zap.Logger) *Feature {
	f := &Feature{}
	if client != nil {
		f.service = NewService(client, cfg, source, logger)
		f.handler = NewHandler(f.service)
	}
	return f
}

// Service returns the export service, nil when disabled.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "export"
}

// IsEnabled reports whether a storage client is configured.
func (f *Feature) IsEnabled() bool {
	return f.service != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
