package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ruleset-combiner/core/database"
	"ruleset-combiner/core/loader"
	"ruleset-combiner/core/logger"
	"ruleset-combiner/core/middleware/auth"
	"ruleset-combiner/core/middleware/rayid"
	"ruleset-combiner/feature/ruleset"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "ruleset-combiner/docs/swagger"
)

// @title Ruleset Combiner API
// @version 1.0
// @description API serving the combined ruleset and its asset manifest.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the ruleset combiner server",
	Long:  `Starts the HTTP server serving the combined ruleset. The ruleset is built on the first request and rebuilt on demand.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, logg, err := bootstrap()
		if err != nil {
			log.Fatal(err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// Nobody answers prompts behind an HTTP request.
		combine := cfg.Combine
		if combine.Resolver == ruleset.ResolverPrompt || combine.Resolver == "" {
			logg.Warn("Prompt resolver is not available in server mode, rejecting unknown abilities")
			combine.Resolver = ruleset.ResolverReject
		}

		opts, _, err := loadInputs(combine, logg, nil, nil)
		if err != nil {
			logg.Fatal("Failed to load combine inputs", zap.Error(err))
		}

		// The manifest catalog is optional.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else if err := ruleset.NewCatalog(conn, logg).Migrate(cmd.Context()); err != nil {
			logg.Warn("Manifest table migration failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to manifest database", zap.String("driver", cfg.Database.Driver))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		})

		mgr := loader.NewManager()
		mgr.Register(ruleset.NewFeature(combine, ruleset.NewDirReader(combine.InputDir, logg), opts, logg, db))

		// RayID goes first so every later log line carries it.
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

		// Swagger stays public.
		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Address()); err != nil {
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
