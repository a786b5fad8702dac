package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"record-compactor/core/loader"
	"record-compactor/core/logger"
	"record-compactor/core/middleware/auth"
	"record-compactor/core/middleware/rayid"
	"record-compactor/feature/compaction"
	"record-compactor/feature/history"
	"record-compactor/feature/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "record-compactor/docs/swagger"
)

// @title Record Compactor API
// @version 1.0
// @description Compacts typed resource records into columnar artifacts and reconstructs them.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the compactor HTTP server",
	Long:  `Starts the HTTP server and loads the compaction, history and validation features.`,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := loadRuntime(cmd.Context())
		if err != nil {
			log.Fatalf("Failed to initialize: %v", err)
		}
		defer rt.close()
		logg := rt.log
		zap.ReplaceGlobals(logg)

		compactionSvc, err := rt.compactionService()
		if err != nil {
			logg.Fatal("Invalid compactor configuration", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             rt.cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager()
		mgr.Register(compaction.NewFeature(compactionSvc))
		mgr.Register(history.NewFeature(rt.runs, logg))
		mgr.Register(validation.NewFeature(rt.validationService()))

		// RayID first so every later log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server",
				zap.String("port", rt.cfg.Server.Port),
				zap.Strings("features", mgr.Enabled()),
				zap.Bool("storage", rt.store != nil),
				zap.Bool("history", rt.runs != nil))
			if err := app.Listen(":" + rt.cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
