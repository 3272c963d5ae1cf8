package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"megasena-monitor/core/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Run(ctx context.Context, opts reconcile.PassOptions) (*reconcile.Report, error) {
	args := m.Called(ctx, opts)
	report, _ := args.Get(0).(*reconcile.Report)
	return report, args.Error(1)
}

type staticLatest struct {
	n   int
	err error
}

func (s staticLatest) FetchLatestDrawNumber(ctx context.Context) (int, error) {
	return s.n, s.err
}

func testConfig() Config {
	return Config{
		Enabled:      true,
		Timezone:     "UTC",
		Policy:       PolicyForward,
		Lookback:     15,
		MaxAutoDraws: 12,
	}
}

func newTestScheduler(t *testing.T, runner Runner, cfg Config) *Scheduler {
	t.Helper()
	s, err := New(runner, staticLatest{n: 2700}, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop(context.Background()) })
	return s
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
	}{
		{"unknown policy", func(c *Config) { c.Policy = "backward" }},
		{"lookback without window", func(c *Config) { c.Policy = PolicyLookback; c.Lookback = 0 }},
		{"bad timezone", func(c *Config) { c.Timezone = "Mars/Olympus" }},
		{"bad schedule", func(c *Config) { c.Schedule = "every now and then" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.edit(&cfg)
			_, err := New(&mockRunner{}, nil, cfg, zap.NewNop())
			assert.Error(t, err)
		})
	}

	cfg := testConfig()
	cfg.Policy = ""
	cfg.Schedule = "@every 30m"
	s, err := New(&mockRunner{}, nil, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, PolicyForward, s.cfg.Policy)
}

func TestScheduler_Trigger(t *testing.T) {
	runner := &mockRunner{}
	report := &reconcile.Report{Trigger: "manual", Resolved: 2}
	runner.On("Run", mock.Anything, mock.MatchedBy(func(o reconcile.PassOptions) bool {
		return o.Trigger == "manual" && o.LatestDraw == 2700 && o.MaxNewDraws == 0
	})).Return(report, nil).Once()
	s := newTestScheduler(t, runner, testConfig())

	got, err := s.Trigger(context.Background(), TriggerManual)
	require.NoError(t, err)
	assert.Same(t, report, got)

	st := s.Status()
	assert.Equal(t, StateIdle, st.State)
	assert.Equal(t, 1, st.Passes)
	assert.Equal(t, TriggerManual, st.LastTrigger)
	assert.Same(t, report, st.LastReport)
	runner.AssertExpectations(t)
}

// blockingRun makes the first Run call wait until release is closed.
func blockingRun(runner *mockRunner, started chan<- struct{}, release <-chan struct{}) {
	var once sync.Once
	runner.On("Run", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		first := false
		once.Do(func() { first = true })
		if first {
			close(started)
			<-release
		}
	}).Return(&reconcile.Report{}, nil)
}

func TestScheduler_AutomaticDroppedWhileRunning(t *testing.T) {
	runner := &mockRunner{}
	started, release := make(chan struct{}), make(chan struct{})
	blockingRun(runner, started, release)
	s := newTestScheduler(t, runner, testConfig())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Trigger(context.Background(), TriggerSchedule)
	}()
	<-started

	assert.Equal(t, StateRunning, s.Status().State)
	for _, trig := range []Trigger{TriggerForeground, TriggerRollover, TriggerSchedule, TriggerStartup} {
		_, err := s.Trigger(context.Background(), trig)
		assert.ErrorIs(t, err, ErrBusy)
	}

	close(release)
	<-done

	assert.Equal(t, StateIdle, s.Status().State)
	runner.AssertNumberOfCalls(t, "Run", 1)
}

func TestScheduler_ManualQueuedWhileRunning(t *testing.T) {
	runner := &mockRunner{}
	started, release := make(chan struct{}), make(chan struct{})
	blockingRun(runner, started, release)
	s := newTestScheduler(t, runner, testConfig())

	go func() { _, _ = s.Trigger(context.Background(), TriggerForeground) }()
	<-started

	for i := 0; i < 3; i++ {
		_, err := s.Trigger(context.Background(), TriggerManual)
		assert.ErrorIs(t, err, ErrQueued)
	}
	assert.True(t, s.Status().QueuedManual)

	close(release)

	require.Eventually(t, func() bool {
		st := s.Status()
		return st.Passes == 2 && st.State == StateIdle
	}, 2*time.Second, 5*time.Millisecond)

	runner.AssertNumberOfCalls(t, "Run", 2)
	assert.Equal(t, TriggerManual, s.Status().LastTrigger)
	last := runner.Calls[1].Arguments.Get(1).(reconcile.PassOptions)
	assert.Equal(t, "manual", last.Trigger)
	assert.Equal(t, 0, last.MaxNewDraws)
}

func TestScheduler_QueuedManualDroppedOnStop(t *testing.T) {
	runner := &mockRunner{}
	started, release := make(chan struct{}), make(chan struct{})
	blockingRun(runner, started, release)
	s := newTestScheduler(t, runner, testConfig())

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Trigger(context.Background(), TriggerManual)
	}()
	<-started

	_, err := s.Trigger(context.Background(), TriggerManual)
	require.ErrorIs(t, err, ErrQueued)

	require.NoError(t, s.Stop(context.Background()))
	close(release)
	<-done
	require.NoError(t, s.Stop(context.Background()))

	runner.AssertNumberOfCalls(t, "Run", 1)
	st := s.Status()
	assert.Equal(t, StateIdle, st.State)
	assert.False(t, st.QueuedManual)
	assert.Equal(t, 1, st.Passes)

	_, err = s.Trigger(context.Background(), TriggerManual)
	assert.ErrorIs(t, err, ErrStopped)
	_, err = s.Trigger(context.Background(), TriggerSchedule)
	assert.ErrorIs(t, err, ErrStopped)
	runner.AssertNumberOfCalls(t, "Run", 1)
}

func TestScheduler_Options(t *testing.T) {
	t.Run("forward", func(t *testing.T) {
		s := newTestScheduler(t, &mockRunner{}, testConfig())

		auto := s.Options(context.Background(), TriggerSchedule)
		assert.Equal(t, 2700, auto.LatestDraw)
		assert.Equal(t, 12, auto.MaxNewDraws)
		assert.Equal(t, 0, auto.MinDraw)

		manual := s.Options(context.Background(), TriggerManual)
		assert.Equal(t, 0, manual.MaxNewDraws)
		assert.Equal(t, 0, manual.MinDraw)
	})

	t.Run("lookback", func(t *testing.T) {
		cfg := testConfig()
		cfg.Policy = PolicyLookback
		s := newTestScheduler(t, &mockRunner{}, cfg)

		auto := s.Options(context.Background(), TriggerRollover)
		assert.Equal(t, 2686, auto.MinDraw)

		manual := s.Options(context.Background(), TriggerManual)
		assert.Equal(t, 0, manual.MinDraw)
	})

	t.Run("latest lookup fails", func(t *testing.T) {
		cfg := testConfig()
		cfg.Policy = PolicyLookback
		s, err := New(&mockRunner{}, staticLatest{err: errors.New("timeout")}, cfg, zap.NewNop())
		require.NoError(t, err)

		opts := s.Options(context.Background(), TriggerSchedule)
		assert.Equal(t, 0, opts.LatestDraw)
		assert.Equal(t, 0, opts.MinDraw)
		assert.Equal(t, 12, opts.MaxNewDraws)
	})
}

func TestScheduler_RunnerError(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", mock.Anything, mock.Anything).Return(nil, errors.New("list bets: db down"))
	s := newTestScheduler(t, runner, testConfig())

	_, err := s.Trigger(context.Background(), TriggerManual)
	assert.Error(t, err)

	st := s.Status()
	assert.Equal(t, StateIdle, st.State)
	assert.Contains(t, st.LastError, "db down")
	assert.Nil(t, st.LastReport)
}

func TestScheduler_Rollover(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", mock.Anything, mock.MatchedBy(func(o reconcile.PassOptions) bool {
		return o.Trigger == "rollover"
	})).Return(&reconcile.Report{}, nil)
	s := newTestScheduler(t, runner, testConfig())

	now := time.Date(2024, 3, 9, 23, 59, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.checkRollover()
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)

	now = now.Add(30 * time.Second)
	s.checkRollover()
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)

	now = now.Add(time.Minute)
	s.checkRollover()
	runner.AssertNumberOfCalls(t, "Run", 1)
}

func TestScheduler_StartStop(t *testing.T) {
	runner := &mockRunner{}
	runner.On("Run", mock.Anything, mock.MatchedBy(func(o reconcile.PassOptions) bool {
		return o.Trigger == "startup"
	})).Return(&reconcile.Report{}, nil)

	cfg := testConfig()
	cfg.Schedule = "@every 1h"
	cfg.RunOnStartup = true
	s := newTestScheduler(t, runner, cfg)

	require.NoError(t, s.Start())
	require.Eventually(t, func() bool { return s.Status().Passes == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.NoError(t, s.Stop(context.Background()))
}

func TestScheduler_Disabled(t *testing.T) {
	runner := &mockRunner{}
	cfg := testConfig()
	cfg.Enabled = false
	cfg.RunOnStartup = true
	s := newTestScheduler(t, runner, cfg)

	require.NoError(t, s.Start())
	assert.NoError(t, s.Stop(context.Background()))
	runner.AssertNotCalled(t, "Run", mock.Anything, mock.Anything)
}

func TestConfig_IsValidPolicy(t *testing.T) {
	assert.True(t, Config{Policy: PolicyForward}.IsValidPolicy())
	assert.True(t, Config{Policy: PolicyLookback}.IsValidPolicy())
	assert.False(t, Config{Policy: ""}.IsValidPolicy())
}
