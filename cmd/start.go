package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"megasena-monitor/core/loader"
	"megasena-monitor/core/logger"
	"megasena-monitor/core/metrics"
	"megasena-monitor/core/middleware/auth"
	"megasena-monitor/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "megasena-monitor/docs/swagger"
)

// @title Mega-Sena Monitor API
// @version 1.0
// @description API for registering Mega-Sena bets and reconciling them against official draws.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the monitor server",
	Long:  `Starts the HTTP API, loads every feature and runs automatic reconciliation passes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt, err := newRuntime(ctx)
		if err != nil {
			return err
		}
		defer rt.close()
		zap.ReplaceGlobals(rt.log)
		logg := rt.log

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		mgr := loader.NewManager()
		mgr.Register(rt.bets)
		mgr.Register(rt.draws)
		mgr.Register(rt.verification)
		mgr.Register(rt.integrity)

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging with the RayID attached
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("latency", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
				return err
			}
			l.Info("Request handled", fields...)
			return nil
		})

		// 3. Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey, Public: []string{"/swagger", "/metrics"}}))

		// 5. Load Features
		if err := mgr.LoadAll(app); err != nil {
			return fmt.Errorf("failed to load features: %w", err)
		}

		if n := rt.cfg.Reconcile.WarmOnStartup; n > 0 {
			go func() {
				if _, err := rt.draws.Service().Capture(ctx, n); err != nil {
					logg.Warn("Startup warm-up failed", zap.Error(err))
				}
			}()
		}

		if err := rt.verification.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		serveErr := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("addr", rt.cfg.Server.Addr()), zap.Bool("auth", rt.cfg.Server.AuthEnabled()))
			serveErr <- app.Listen(rt.cfg.Server.Addr())
		}()

		select {
		case <-ctx.Done():
		case err := <-serveErr:
			if err != nil {
				logg.Error("Server failed", zap.Error(err))
			}
		}

		// Graceful Shutdown
		logg.Info("Shutting down server...")
		timeout := time.Duration(rt.cfg.Server.ShutdownTimeoutSeconds) * time.Second
		if err := app.ShutdownWithTimeout(timeout); err != nil {
			logg.Warn("HTTP shutdown incomplete", zap.Error(err))
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := rt.verification.Stop(shutdownCtx); err != nil {
			logg.Warn("Reconciliation pass still running at shutdown", zap.Error(err))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
