package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"anime-tracker/core/loader"
	"anime-tracker/core/logger"
	"anime-tracker/core/middleware/rayid"
	"anime-tracker/feature/catalog"
	"anime-tracker/feature/export"
	"anime-tracker/feature/integrity"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "anime-tracker/docs/swagger"
)

// @title Anime Tracker API
// @version 1.0
// @description Anime series and movie catalog with metadata enrichment.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the anime tracker server",
	Long:  `Connects to the database, migrates the schema when enabled and serves the HTTP API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		logg := a.logger

		if a.cfg.Database.AutoMigrate {
			if err := catalog.Migrate(a.db); err != nil {
				return err
			}
			logg.Info("Database schema migrated")
		}

		app := newServer(a)

		go func() {
			logg.Info("Starting server", zap.String("port", a.cfg.Server.Port))
			if err := app.Listen(":" + a.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

// newServer builds the fiber app with middleware and every enabled feature.
func newServer(a *app) *fiber.App {
	logg := a.logger

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		BodyLimit:             a.cfg.Server.BodyLimit(),
		ErrorHandler:          errorHandler,
	})

	// RayID first so every later log line carries it.
	app.Use(rayid.New())
	app.Use(recover.New())
	app.Use(logger.Middleware(logg))

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(a.metrics.Handler()))

	catalogFeature := catalog.NewFeature(a.db, a.engine, logg, a.cfg.Server.EffectivePageSize())

	storageClient := a.storageClient()

	mgr := loader.NewManager()
	mgr.Register(catalogFeature)
	mgr.Register(export.NewFeature(storageClient, a.cfg.Storage, catalogFeature.Service(), logg))
	mgr.Register(integrity.NewFeature(a.db, storageClient, a.cfg.Storage, logg))

	if err := mgr.LoadAll(app); err != nil {
		logg.Fatal("Failed to load features", zap.Error(err))
	}
	for _, f := range mgr.Features() {
		logg.Info("Feature registered", zap.String("feature", f.Name()), zap.Bool("enabled", f.IsEnabled()))
	}

	return app
}

// errorHandler renders errors that escaped the handlers as {"error": msg}.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal Server Error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

func init() {
	RootCmd.AddCommand(startCmd)
}
