package cmd

import (
	"time"

	"masterdata-monitor/core/loader"
	"masterdata-monitor/core/logger"
	"masterdata-monitor/core/middleware/auth"
	"masterdata-monitor/core/middleware/rayid"
	"masterdata-monitor/feature/integrity"
	"masterdata-monitor/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only status server",
	Long:  `Starts the HTTP server exposing the tracked versions, pending changes and run history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := bootstrap()
		if err != nil {
			return err
		}
		defer s.close()
		logg := s.logger

		// History is optional; the status feature answers 503 without it.
		repo := s.history()

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           time.Duration(s.cfg.Server.ReadTimeoutSeconds) * time.Second,
		})

		checker, err := s.integrityService()
		if err != nil {
			return err
		}

		mgr := loader.NewManager(logg)
		mgr.Register(status.NewFeature(s.store, repo, logg))
		mgr.Register(integrity.NewFeature(checker))

		// RayID must be first to trace everything
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

		app.Use(auth.New(auth.Config{ApiKey: s.cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("address", s.cfg.Server.Address()))
			errCh <- app.Listen(s.cfg.Server.Address())
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
