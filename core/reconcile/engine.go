package reconcile

import (
	"context"
	"fmt"
	"sort"
	"time"

	"megasena-monitor/core/metrics"

	"go.uber.org/zap"
)

// Coordinator runs reconciliation passes over a bet collection.
type Coordinator struct {
	store    BetStore
	cache    *ResultCache
	notifier Notifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewCoordinator creates a coordinator backed by the given store and cache.
func NewCoordinator(store BetStore, cache *ResultCache, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		store:  store,
		cache:  cache,
		logger: logger,
		now:    time.Now,
	}
}

// SetNotifier registers a notifier called after every pass.
func (c *Coordinator) SetNotifier(n Notifier) {
	c.notifier = n
}

// Cache returns the result cache used by the coordinator.
func (c *Coordinator) Cache() *ResultCache {
	return c.cache
}

// Run lists the stored bets and reconciles them.
func (c *Coordinator) Run(ctx context.Context, opts PassOptions) (*Report, error) {
	bets, err := c.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}
	return c.Reconcile(ctx, bets, opts), nil
}

// Reconcile performs one pass over bets:
//  1. collect every bet's pending subscribed draws into one deduplicated set,
//  2. resolve that set through the cache,
//  3. evaluate each bet against the draws that resolved,
//  4. persist new outcomes per bet.
//
// The bets slice is updated in place with the outcomes that were stored.
// Draw and bet failures are reported, never returned.
func (c *Coordinator) Reconcile(ctx context.Context, bets []Bet, opts PassOptions) *Report {
	report := &Report{
		Trigger:     opts.Trigger,
		StartedAt:   c.now(),
		LatestDraw:  opts.LatestDraw,
		Bets:        len(bets),
		BetFailures: []BetFailure{},
		DrawStatus:  make(map[int]ResolveStatus),
	}

	// Persisted draws need no provider call, so they must not use up the
	// MaxNewDraws budget after a cold start.
	c.cache.LoadStored(ctx, opts.Window(NeededDraws(bets)))
	plan := BuildPlan(bets, opts, c.cache.Has)
	report.Needed = len(plan.Needed)

	for _, n := range plan.Beyond {
		report.DrawStatus[n] = StatusNotYetAvailable
		report.Pending++
	}
	for _, n := range plan.Deferred {
		report.DrawStatus[n] = StatusDeferred
		report.Deferred++
	}

	arena := make(map[int]*DrawResult, len(plan.Fetch))
	for n, res := range c.cache.ResolveMany(ctx, plan.Fetch) {
		report.DrawStatus[n] = res.Status
		switch res.Status {
		case StatusResolved:
			arena[n] = res.Result
			report.Resolved++
		case StatusNotYetAvailable:
			report.Pending++
			c.logger.Debug("Draw not yet available", zap.Int("draw", n))
		case StatusSkipped:
			report.Skipped++
		default:
			report.Failed++
			c.logger.Warn("Draw fetch failed", zap.Int("draw", n), zap.Error(res.Err))
		}
	}

	// Merges must land even if the caller gave up on the pass.
	persistCtx := context.WithoutCancel(ctx)
	var merged []Outcome
	for i := range bets {
		inserted, err := c.mergeBet(persistCtx, &bets[i], arena)
		if err != nil {
			report.BetFailures = append(report.BetFailures, BetFailure{BetID: bets[i].ID, Error: err.Error()})
			c.logger.Warn("Failed to merge bet outcomes", zap.Int64("bet_id", bets[i].ID), zap.Error(err))
			continue
		}
		merged = append(merged, inserted...)
	}
	report.OutcomesMerged = len(merged)
	report.FinishedAt = c.now()

	metrics.ObservePass(report.Trigger, report.Complete(), report.Duration())
	metrics.ObserveDraws(report.Resolved, report.Pending, report.Failed, report.Deferred, report.Skipped)
	metrics.ObserveOutcomesMerged(report.OutcomesMerged)

	c.logger.Info("Reconciliation pass finished", report.Fields()...)

	if c.notifier != nil {
		if err := c.notifier.PassCompleted(persistCtx, report, merged); err != nil {
			c.logger.Warn("Failed to publish pass results", zap.Error(err))
		}
	}

	return report
}

// mergeBet evaluates the bet against the resolved draws it still lacks and
// stores the new outcomes. It returns the outcomes the store accepted.
func (c *Coordinator) mergeBet(ctx context.Context, bet *Bet, arena map[int]*DrawResult) ([]Outcome, error) {
	updates := make(map[int]Outcome)
	for _, n := range bet.PendingDraws() {
		draw, ok := arena[n]
		if !ok {
			continue
		}
		hit, err := Evaluate(bet.Numbers, draw.Numbers)
		if err != nil {
			return nil, fmt.Errorf("evaluate draw %d: %w", n, err)
		}
		updates[n] = Outcome{
			BetID:        bet.ID,
			Draw:         n,
			Hits:         hit.Count,
			Tier:         hit.Tier,
			DrawnNumbers: append([]int(nil), draw.Numbers...),
			ResolvedAt:   c.now(),
		}
	}
	if len(updates) == 0 {
		return nil, nil
	}

	inserted, err := c.store.UpdateOutcomes(ctx, bet.ID, updates)
	if err != nil {
		return nil, &PersistenceError{BetID: bet.ID, Err: err}
	}
	for _, o := range inserted {
		bet.MergeOutcome(o)
	}
	sort.Slice(inserted, func(i, j int) bool { return inserted[i].Draw < inserted[j].Draw })
	return inserted, nil
}
