package verification

import (
	"context"

	"megasena-monitor/core/reconcile"
	"megasena-monitor/core/scheduler"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	coordinator *reconcile.Coordinator
	scheduler   *scheduler.Scheduler
	service     *Service
	handler     *Handler
}

// NewFeature wires the coordinator and the scheduler. notifier may be nil.
func NewFeature(bets reconcile.BetStore, cache *reconcile.ResultCache, latest scheduler.LatestSource, notifier reconcile.Notifier, cfg scheduler.Config, logger *zap.Logger) (*Feature, error) {
	coord := reconcile.NewCoordinator(bets, cache, logger)
	if notifier != nil {
		coord.SetNotifier(notifier)
	}

	sched, err := scheduler.New(coord, latest, cfg, logger)
	if err != nil {
		return nil, err
	}

	svc := NewService(sched)
	return &Feature{
		coordinator: coord,
		scheduler:   sched,
		service:     svc,
		handler:     NewHandler(svc, logger),
	}, nil
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "verification"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Start starts the automatic triggers.
func (f *Feature) Start() error {
	return f.scheduler.Start()
}

// Stop stops the automatic triggers and waits for running passes.
func (f *Feature) Stop(ctx context.Context) error {
	return f.scheduler.Stop(ctx)
}

// Service returns the verification service.
func (f *Feature) Service() *Service {
	return f.service
}

// Scheduler returns the pass scheduler.
func (f *Feature) Scheduler() *scheduler.Scheduler {
	return f.scheduler
}
