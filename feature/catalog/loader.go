package catalog

import (
	"anime-tracker/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the catalog feature over db.
func NewFeature(db *gorm.DB, engine *reconcile.Engine, logger *zap.Logger, pageSize int) *Feature {
	svc := NewService(NewStore(db), engine, logger, pageSize)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Service exposes the catalog service to other features.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
