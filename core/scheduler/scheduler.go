package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"megasena-monitor/core/metrics"
	"megasena-monitor/core/reconcile"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Trigger names what started a pass.
type Trigger string

const (
	TriggerManual     Trigger = "manual"
	TriggerForeground Trigger = "foreground"
	TriggerRollover   Trigger = "rollover"
	TriggerSchedule   Trigger = "schedule"
	TriggerStartup    Trigger = "startup"
)

// Automatic reports whether the trigger was not requested by a user.
func (t Trigger) Automatic() bool {
	return t != TriggerManual
}

// State is the scheduler state.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

var (
	// ErrBusy is returned when an automatic trigger arrives during a pass. The trigger is dropped.
	ErrBusy = errors.New("reconciliation pass already running")

	// ErrQueued is returned when a manual trigger arrives during a pass.
	// One manual pass runs right after the current one.
	ErrQueued = errors.New("manual pass queued")

	// ErrStopped is returned for triggers that arrive after Stop.
	ErrStopped = errors.New("scheduler stopped")
)

// Runner executes one reconciliation pass.
type Runner interface {
	Run(ctx context.Context, opts reconcile.PassOptions) (*reconcile.Report, error)
}

// LatestSource reports the most recent published draw number.
type LatestSource interface {
	FetchLatestDrawNumber(ctx context.Context) (int, error)
}

// Status is a snapshot of the scheduler.
type Status struct {
	State        State             `json:"state"`
	Current      Trigger           `json:"current,omitempty"`
	QueuedManual bool              `json:"queued_manual"`
	Passes       int               `json:"passes"`
	LastTrigger  Trigger           `json:"last_trigger,omitempty"`
	LastError    string            `json:"last_error,omitempty"`
	LastReport   *reconcile.Report `json:"last_report,omitempty"`
}

// Scheduler serializes reconciliation passes. At most one pass runs at a time.
type Scheduler struct {
	runner Runner
	latest LatestSource
	cfg    Config
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time

	mu          sync.Mutex
	state       State
	current     Trigger
	queued      bool
	passes      int
	lastTrigger Trigger
	lastReport  *reconcile.Report
	lastErr     error
	lastDate    string
	stopped     bool

	cron    *cron.Cron
	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a scheduler. It validates the policy, timezone and schedule.
func New(runner Runner, latest LatestSource, cfg Config, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Policy == "" {
		cfg.Policy = PolicyForward
	}
	if !cfg.IsValidPolicy() {
		return nil, fmt.Errorf("invalid sync policy %q", cfg.Policy)
	}
	if cfg.Policy == PolicyLookback && cfg.Lookback < 1 {
		return nil, fmt.Errorf("sync lookback must be positive, got %d", cfg.Lookback)
	}

	loc := time.UTC
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid sync timezone %q: %w", cfg.Timezone, err)
		}
		loc = l
	}

	if cfg.Schedule != "" {
		if _, err := cron.ParseStandard(cfg.Schedule); err != nil {
			return nil, fmt.Errorf("invalid sync schedule %q: %w", cfg.Schedule, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		runner:  runner,
		latest:  latest,
		cfg:     cfg,
		loc:     loc,
		logger:  logger,
		now:     time.Now,
		state:   StateIdle,
		baseCtx: ctx,
		cancel:  cancel,
	}, nil
}

// Trigger requests a pass and runs it in the calling goroutine.
// While a pass is running, automatic triggers return ErrBusy and manual
// triggers return ErrQueued.
func (s *Scheduler) Trigger(ctx context.Context, t Trigger) (*reconcile.Report, error) {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		metrics.ObserveTrigger(string(t), "dropped")
		return nil, ErrStopped
	}
	if s.state == StateRunning {
		if t.Automatic() {
			s.mu.Unlock()
			metrics.ObserveTrigger(string(t), "dropped")
			s.logger.Debug("Dropping trigger, pass in progress", zap.String("trigger", string(t)))
			return nil, ErrBusy
		}
		s.queued = true
		s.mu.Unlock()
		metrics.ObserveTrigger(string(t), "queued")
		s.logger.Info("Manual pass queued behind running pass", zap.String("running", string(s.Current())))
		return nil, ErrQueued
	}
	s.state = StateRunning
	s.current = t
	s.mu.Unlock()

	metrics.ObserveTrigger(string(t), "run")
	return s.run(ctx, t)
}

// run executes a pass while the scheduler is in the running state and
// leaves it, or hands over to a queued manual pass. A queued pass is
// dropped once Stop was called.
func (s *Scheduler) run(ctx context.Context, t Trigger) (*reconcile.Report, error) {
	report, err := s.execute(ctx, t)

	s.mu.Lock()
	s.passes++
	s.lastTrigger = t
	s.lastErr = err
	if report != nil {
		s.lastReport = report
	}
	if s.queued && s.stopped {
		s.logger.Info("Dropping queued manual pass, scheduler stopped")
	}
	if s.queued && !s.stopped {
		s.queued = false
		s.current = TriggerManual
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			_, _ = s.run(s.baseCtx, TriggerManual)
		}()
	} else {
		s.queued = false
		s.state = StateIdle
		s.current = ""
	}
	s.mu.Unlock()

	return report, err
}

func (s *Scheduler) execute(ctx context.Context, t Trigger) (*reconcile.Report, error) {
	if s.cfg.PassTimeoutSeconds > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.cfg.PassTimeoutSeconds)*time.Second)
		defer cancel()
	}

	opts := s.Options(ctx, t)
	report, err := s.runner.Run(ctx, opts)
	if err != nil {
		s.logger.Error("Reconciliation pass failed", zap.String("trigger", string(t)), zap.Error(err))
		return nil, err
	}
	return report, nil
}

// Options builds the pass options for a trigger. The latest draw number is
// looked up once; if that fails the pass runs without the bound.
func (s *Scheduler) Options(ctx context.Context, t Trigger) reconcile.PassOptions {
	opts := reconcile.PassOptions{Trigger: string(t)}

	if s.latest != nil {
		latest, err := s.latest.FetchLatestDrawNumber(ctx)
		if err != nil {
			s.logger.Warn("Failed to look up latest draw", zap.Error(err))
		} else {
			opts.LatestDraw = latest
		}
	}

	if t.Automatic() {
		opts.MaxNewDraws = s.cfg.MaxAutoDraws
		if s.cfg.Policy == PolicyLookback && opts.LatestDraw > 0 {
			opts.MinDraw = opts.LatestDraw - s.cfg.Lookback + 1
		}
	}
	return opts
}

// Start registers the periodic and rollover triggers and starts the cron runner.
func (s *Scheduler) Start() error {
	if !s.cfg.Enabled {
		s.logger.Info("Automatic sync disabled")
		return nil
	}

	c := cron.New(cron.WithLocation(s.loc))
	if s.cfg.Schedule != "" {
		if _, err := c.AddFunc(s.cfg.Schedule, func() { s.fire(TriggerSchedule) }); err != nil {
			return fmt.Errorf("failed to register schedule: %w", err)
		}
	}
	if _, err := c.AddFunc("@every 1m", s.checkRollover); err != nil {
		return fmt.Errorf("failed to register rollover check: %w", err)
	}

	s.mu.Lock()
	s.lastDate = s.today()
	s.cron = c
	s.mu.Unlock()

	c.Start()
	s.logger.Info("Scheduler started",
		zap.String("schedule", s.cfg.Schedule),
		zap.String("timezone", s.loc.String()),
		zap.String("policy", s.cfg.Policy),
	)

	if s.cfg.RunOnStartup {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.fire(TriggerStartup)
		}()
	}
	return nil
}

// Stop stops issuing triggers, cancels running passes and waits for them.
// Triggers after Stop return ErrStopped and a queued manual pass never starts.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	c := s.cron
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns a snapshot of the scheduler.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Status{
		State:        s.state,
		Current:      s.current,
		QueuedManual: s.queued,
		Passes:       s.passes,
		LastTrigger:  s.lastTrigger,
		LastReport:   s.lastReport,
	}
	if s.lastErr != nil {
		st.LastError = s.lastErr.Error()
	}
	return st
}

// Current returns the trigger of the running pass, if any.
func (s *Scheduler) Current() Trigger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Scheduler) fire(t Trigger) {
	if s.baseCtx.Err() != nil {
		return
	}
	if _, err := s.Trigger(s.baseCtx, t); err != nil && !errors.Is(err, ErrBusy) && !errors.Is(err, ErrStopped) {
		s.logger.Warn("Automatic pass did not complete", zap.String("trigger", string(t)), zap.Error(err))
	}
}

// checkRollover fires a pass when the local date changes.
func (s *Scheduler) checkRollover() {
	today := s.today()

	s.mu.Lock()
	if s.lastDate == "" {
		s.lastDate = today
		s.mu.Unlock()
		return
	}
	changed := today != s.lastDate
	s.lastDate = today
	s.mu.Unlock()

	if changed {
		s.logger.Info("Date rollover detected", zap.String("date", today))
		s.fire(TriggerRollover)
	}
}

func (s *Scheduler) today() string {
	return s.now().In(s.loc).Format("2006-01-02")
}
