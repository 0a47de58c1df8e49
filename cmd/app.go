package cmd

import (
	"fmt"

	"anime-tracker/core/config"
	"anime-tracker/core/database"
	"anime-tracker/core/logger"
	"anime-tracker/core/metrics"
	"anime-tracker/core/provider"
	"anime-tracker/core/reconcile"
	"anime-tracker/core/storage"
	"anime-tracker/feature/catalog"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// app bundles the dependencies shared by every command.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	metrics *metrics.Metrics
	engine  *reconcile.Engine
}

// bootstrap loads configuration, builds the logger and connects to the database.
func bootstrap(cmd *cobra.Command) (*app, error) {
	dir, _ := cmd.Flags().GetString("config-dir")
	if dir == "" {
		dir = "."
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	zap.ReplaceGlobals(logg)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, err
	}
	logg.Info("Connected to database",
		zap.String("driver", cfg.Database.Driver),
		zap.String("name", cfg.Database.Name))

	m := metrics.New()
	return &app{
		cfg:     cfg,
		logger:  logg,
		db:      db,
		metrics: m,
		engine:  newEngine(cfg.Providers, logg, m),
	}, nil
}

// newEngine wires the provider clients into a reconcile engine. The movie
// database is skipped without an API key.
func newEngine(cfg provider.Config, logg *zap.Logger, m *metrics.Metrics) *reconcile.Engine {
	client := provider.NewHTTPClient(cfg)

	var tmdb *provider.TMDB
	if cfg.TMDBAPIKey != "" {
		tmdb = provider.NewTMDB(cfg, client)
	} else {
		logg.Warn("TMDB API key not set, movie database lookups disabled")
	}

	sources := reconcile.NewSources(
		provider.NewJikan(cfg, client),
		provider.NewRottenTomatoes(cfg, client),
		tmdb,
	)
	return reconcile.NewEngine(sources, logg, m)
}

// catalogService builds the catalog service over the app's database.
func (a *app) catalogService() *catalog.Service {
	return catalog.NewService(catalog.NewStore(a.db), a.engine, a.logger, a.cfg.Server.EffectivePageSize())
}

// storageClient returns nil when storage is disabled or misconfigured.
func (a *app) storageClient() storage.Client {
	if !a.cfg.Storage.Enabled {
		a.logger.Info("Object storage disabled, exports unavailable")
		return nil
	}
	client, err := storage.NewClient(a.cfg.Storage)
	if err != nil {
		a.logger.Warn("Failed to create storage client, exports unavailable", zap.Error(err))
		return nil
	}
	return client
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = a.logger.Sync()
}
