package verification

import (
	"context"

	"megasena-monitor/core/reconcile"
	"megasena-monitor/core/scheduler"
)

// Scheduler is the subset of *scheduler.Scheduler used by the service.
type Scheduler interface {
	Trigger(ctx context.Context, t scheduler.Trigger) (*reconcile.Report, error)
	Status() scheduler.Status
}

// Service exposes reconciliation passes to users.
type Service struct {
	sched Scheduler
}

// NewService creates a verification service.
func NewService(sched Scheduler) *Service {
	return &Service{sched: sched}
}

// Verify runs a manual pass. It returns scheduler.ErrQueued when a pass is
// already running; the manual pass then runs right after it.
func (s *Service) Verify(ctx context.Context) (*reconcile.Report, error) {
	return s.sched.Trigger(ctx, scheduler.TriggerManual)
}

// Foreground signals that a client came to the foreground. It is an
// automatic trigger: bounded, and dropped with scheduler.ErrBusy during a pass.
func (s *Service) Foreground(ctx context.Context) (*reconcile.Report, error) {
	return s.sched.Trigger(ctx, scheduler.TriggerForeground)
}

// Status returns the scheduler snapshot.
func (s *Service) Status() scheduler.Status {
	return s.sched.Status()
}
