package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"theaterwecker/core/loader"
	"theaterwecker/core/logger"
	"theaterwecker/core/middleware/auth"
	"theaterwecker/core/middleware/rayid"
	"theaterwecker/core/reconcile"
	"theaterwecker/core/scheduler"
	"theaterwecker/feature/notification"
	"theaterwecker/feature/performance"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "theaterwecker/docs/swagger"
)

// @title Theaterwecker API
// @version 1.0
// @description Operational API of the theater schedule reconciler.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server and the job scheduler",
	Long: `Starts the HTTP API, registers all features and runs the reconciliation
pass, the cleanup sweep and notification delivery on their schedules.`,
	RunE: runStart,
}

func init() {
	RootCmd.AddCommand(startCmd)
}

func runStart(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	logg := rt.logger
	defer logg.Sync()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	mgr := loader.NewManager()
	mgr.Register(performance.NewFeature(rt.performances))
	mgr.Register(notification.NewFeature(rt.dispatcher))

	// RayID first so every log line below carries it.
	app.Use(rayid.New())

	app.Use(func(c *fiber.Ctx) error {
		l := logger.WithRayID(logg, c)
		start := time.Now()
		err := c.Next()
		if err != nil {
			l.Error("Request error", zap.Error(err))
		}
		l.Info("Request handled",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.String("ip", c.IP()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
		)
		return err
	})

	// Public endpoints
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(rt.metrics.Handler()))
	app.Get("/health", func(c *fiber.Ctx) error {
		missing, err := rt.performances.SchemaCheck()
		if err != nil || len(missing) > 0 {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":  "degraded",
				"missing": missing,
				"error":   fmt.Sprint(err),
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Use(auth.New(auth.Config{
		ApiKey: rt.cfg.Server.ApiKey,
		Public: []string{"/health", "/metrics"},
	}))

	if err := mgr.LoadAll(app); err != nil {
		return err
	}

	sched, err := newScheduler(rt)
	if err != nil {
		return err
	}
	if rt.cfg.Schedule.Enabled {
		sched.Start()
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("Starting server", zap.String("port", rt.cfg.Server.Port))
		errCh <- app.Listen(rt.cfg.Server.Address())
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	select {
	case <-sig:
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	logg.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(ctx, rt.cfg.Server.ShutdownTimeout())
	defer cancel()

	sched.Stop(shutdownCtx)
	return app.ShutdownWithContext(shutdownCtx)
}

// newScheduler registers the periodic jobs.
func newScheduler(rt *runtime) (*scheduler.Scheduler, error) {
	loc, err := time.LoadLocation(rt.cfg.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule timezone %q: %w", rt.cfg.Schedule.Timezone, err)
	}

	s := scheduler.New(loc, rt.logger)

	if err := s.Add("reconcile", rt.cfg.Schedule.Reconcile, func(ctx context.Context) error {
		report, err := rt.performances.RunPass(ctx, time.Now(), reconcile.ReconcileOptions{})
		if err != nil {
			return err
		}
		printPassReport(rt.logger, report)
		return nil
	}); err != nil {
		return nil, err
	}

	if err := s.Add("cleanup", rt.cfg.Schedule.Cleanup, func(ctx context.Context) error {
		_, err := rt.performances.Cleanup(ctx, time.Now())
		return err
	}); err != nil {
		return nil, err
	}

	if err := s.Add("notify", rt.cfg.Schedule.Notify, func(ctx context.Context) error {
		_, err := rt.dispatcher.ProcessDue(ctx, time.Now())
		return err
	}); err != nil {
		return nil, err
	}

	return s, nil
}
