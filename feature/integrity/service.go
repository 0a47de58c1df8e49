package integrity

import (
	"context"

	"anime-tracker/core/storage"
	"anime-tracker/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	db     *gorm.DB
	client storage.Client
	cfg    storage.Config
	logger *zap.Logger
}

// NewService creates a new integrity service. client may be nil when object storage is disabled.
func NewService(db *gorm.DB, client storage.Client, cfg storage.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		db:     db,
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// CheckSchema compares the live catalog tables with the models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// CheckStorage inspects the export bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	return checks.CheckStorage(ctx, s.client, s.cfg)
}

// FixStorage creates the export bucket.
func (s *Service) FixStorage(ctx context.Context) error {
	s.logger.Info("Creating export bucket", zap.String("bucket", s.cfg.Bucket))
	return checks.FixStorage(ctx, s.client, s.cfg)
}
