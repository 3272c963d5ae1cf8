package reconcile

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedBet(t *testing.T, store *memoryBetStore, start, repeat int, numbers ...int) Bet {
	t.Helper()
	bet, err := store.Create(context.Background(), Bet{Numbers: numbers, StartDraw: start, Repeat: repeat})
	require.NoError(t, err)
	return bet
}

func newScenario(t *testing.T) (*Coordinator, *memoryBetStore, *fakeProvider) {
	t.Helper()
	provider := newFakeProvider().
		withDraw(2650, 5, 12, 23, 9, 10, 11).
		withError(2652, errUpstream)
	store := newMemoryBetStore()
	seedBet(t, store, 2650, 3, 5, 12, 23, 34, 45, 58)
	coord := NewCoordinator(store, NewResultCache(provider), zap.NewNop())
	return coord, store, provider
}

func TestCoordinator_Run_MixedOutcomes(t *testing.T) {
	coord, store, _ := newScenario(t)

	report, err := coord.Run(context.Background(), PassOptions{Trigger: "manual"})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Bets)
	assert.Equal(t, 3, report.Needed)
	assert.Equal(t, 1, report.Resolved)
	assert.Equal(t, 1, report.Pending)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 1, report.OutcomesMerged)
	assert.Equal(t, []int{2652}, report.FailedDraws())
	assert.Equal(t, []int{2651}, report.PendingDraws())
	assert.Empty(t, report.BetFailures)
	assert.False(t, report.Complete())

	bet, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, bet.Outcomes, 1)
	outcome := bet.Outcomes[2650]
	assert.Equal(t, 3, outcome.Hits)
	assert.Equal(t, TierNone, outcome.Tier)
	assert.Equal(t, []int{5, 9, 10, 11, 12, 23}, outcome.DrawnNumbers)
	assert.Equal(t, []int{2651, 2652}, bet.PendingDraws())
}

func TestCoordinator_Run_Idempotent(t *testing.T) {
	coord, store, provider := newScenario(t)

	_, err := coord.Run(context.Background(), PassOptions{})
	require.NoError(t, err)
	first, _ := store.Get(context.Background(), 1)

	report, err := coord.Run(context.Background(), PassOptions{})
	require.NoError(t, err)
	second, _ := store.Get(context.Background(), 1)

	assert.Equal(t, 0, report.OutcomesMerged)
	assert.Equal(t, first.Outcomes, second.Outcomes)
	assert.Equal(t, 1, provider.callsFor(2650))
	assert.Equal(t, 2, provider.callsFor(2652), "failed draw is retried")
}

func TestCoordinator_Run_LaterPassFillsPending(t *testing.T) {
	coord, store, provider := newScenario(t)

	_, err := coord.Run(context.Background(), PassOptions{})
	require.NoError(t, err)

	provider.mu.Lock()
	provider.draws[2651] = []int{5, 12, 23, 34, 1, 2}
	delete(provider.errs, 2652)
	provider.draws[2652] = []int{5, 12, 23, 34, 45, 58}
	provider.mu.Unlock()

	report, err := coord.Run(context.Background(), PassOptions{})
	require.NoError(t, err)
	assert.True(t, report.Complete())
	assert.Equal(t, 2, report.OutcomesMerged)

	bet, _ := store.Get(context.Background(), 1)
	assert.Equal(t, TierQuadra, bet.Outcomes[2651].Tier)
	assert.Equal(t, TierSena, bet.Outcomes[2652].Tier)
	assert.Equal(t, 3, bet.Outcomes[2650].Hits, "earlier outcome unchanged")
	assert.Empty(t, bet.PendingDraws())
}

func TestCoordinator_Run_DeduplicatesAcrossBets(t *testing.T) {
	provider := newFakeProvider().withDraw(500, 1, 2, 3, 4, 5, 6).withDraw(501, 7, 8, 9, 10, 11, 12)
	store := newMemoryBetStore()
	for i := 0; i < 10; i++ {
		seedBet(t, store, 500, 2, 1, 2, 3, 4, 5, 6)
	}
	coord := NewCoordinator(store, NewResultCache(provider), zap.NewNop())

	report, err := coord.Run(context.Background(), PassOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Needed)
	assert.Equal(t, 20, report.OutcomesMerged)
	assert.Equal(t, 1, provider.callsFor(500))
	assert.Equal(t, 1, provider.callsFor(501))
}

func TestCoordinator_Run_PersistenceFailureIsolated(t *testing.T) {
	provider := newFakeProvider().withDraw(10, 1, 2, 3, 4, 5, 6)
	store := newMemoryBetStore()
	good := seedBet(t, store, 10, 1, 1, 2, 3, 4, 5, 6)
	bad := seedBet(t, store, 10, 1, 1, 2, 3, 4, 5, 7)
	store.failFor[bad.ID] = errors.New("deadlock")
	coord := NewCoordinator(store, NewResultCache(provider), zap.NewNop())

	report, err := coord.Run(context.Background(), PassOptions{})
	require.NoError(t, err)

	require.Len(t, report.BetFailures, 1)
	assert.Equal(t, bad.ID, report.BetFailures[0].BetID)
	assert.Contains(t, report.BetFailures[0].Error, "deadlock")
	assert.Equal(t, 1, report.OutcomesMerged)

	stored, _ := store.Get(context.Background(), good.ID)
	assert.Equal(t, TierSena, stored.Outcomes[10].Tier)
}

func TestCoordinator_Run_LatestDrawBound(t *testing.T) {
	coord, _, provider := newScenario(t)

	report, err := coord.Run(context.Background(), PassOptions{LatestDraw: 2650})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Resolved)
	assert.Equal(t, 2, report.Pending)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 0, provider.callsFor(2651))
	assert.Equal(t, 0, provider.callsFor(2652))
}

func TestCoordinator_Run_MaxNewDraws(t *testing.T) {
	coord, _, provider := newScenario(t)

	report, err := coord.Run(context.Background(), PassOptions{MaxNewDraws: 1})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Resolved)
	assert.Equal(t, 2, report.Deferred)
	assert.Equal(t, StatusDeferred, report.DrawStatus[2652])
	assert.Equal(t, 0, provider.callsFor(2652))
}

func TestCoordinator_Run_StoredDrawsOutsideFetchBound(t *testing.T) {
	provider := newFakeProvider().withDraw(103, 1, 2, 3, 4, 5, 6)
	drawStore := newMemoryDrawStore()
	for n := 100; n < 104; n++ {
		drawStore.draws[n] = &DrawResult{Number: n, Numbers: []int{1, 2, 3, 4, 5, 6}}
	}
	store := newMemoryBetStore()
	seedBet(t, store, 100, 5, 1, 2, 3, 4, 5, 6)
	coord := NewCoordinator(store, NewResultCache(provider, WithDrawStore(drawStore)), zap.NewNop())

	report, err := coord.Run(context.Background(), PassOptions{MaxNewDraws: 1, LatestDraw: 104})
	require.NoError(t, err)

	assert.Equal(t, 5, report.Needed)
	assert.Equal(t, 4, report.Resolved)
	assert.Equal(t, 1, report.Pending)
	assert.Equal(t, 0, report.Deferred)
	assert.Equal(t, 4, report.OutcomesMerged)
	assert.Equal(t, StatusNotYetAvailable, report.DrawStatus[104])
	assert.Equal(t, 1, provider.callsFor(104))
	assert.Equal(t, int64(1), provider.total.Load())
}

func TestCoordinator_Run_PartialFailure(t *testing.T) {
	provider := newFakeProvider().
		withDraw(300, 1, 2, 3, 4, 5, 6).
		withDraw(302, 1, 2, 3, 4, 7, 8).
		withError(301, errUpstream)
	store := newMemoryBetStore()
	seedBet(t, store, 300, 3, 1, 2, 3, 4, 5, 6)
	coord := NewCoordinator(store, NewResultCache(provider), zap.NewNop())

	report, err := coord.Run(context.Background(), PassOptions{})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Needed)
	assert.Equal(t, 2, report.Resolved)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 0, report.Pending)
	assert.Equal(t, 2, report.OutcomesMerged)
	assert.Equal(t, []int{301}, report.FailedDraws())
	assert.False(t, report.Complete())

	bet, err := store.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, TierSena, bet.Outcomes[300].Tier)
	assert.Equal(t, TierQuadra, bet.Outcomes[302].Tier)
	assert.Equal(t, []int{301}, bet.PendingDraws())
}

func TestCoordinator_ConcurrentPasses(t *testing.T) {
	provider := newFakeProvider().withDraw(1, 1, 2, 3, 4, 5, 6).withDraw(2, 1, 2, 3, 4, 5, 7)
	store := newMemoryBetStore()
	seedBet(t, store, 1, 2, 1, 2, 3, 4, 5, 6)
	cache := NewResultCache(provider)

	var wg sync.WaitGroup
	merged := make([]int, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			coord := NewCoordinator(store, cache, zap.NewNop())
			report, err := coord.Run(context.Background(), PassOptions{})
			if err == nil {
				merged[i] = report.OutcomesMerged
			}
		}(i)
	}
	wg.Wait()

	total := 0
	for _, n := range merged {
		total += n
	}
	assert.Equal(t, 2, total, "each outcome is stored exactly once")

	bet, _ := store.Get(context.Background(), 1)
	assert.Len(t, bet.Outcomes, 2)
	assert.Equal(t, 1, provider.callsFor(1))
}

func TestCoordinator_Notifier(t *testing.T) {
	coord, _, _ := newScenario(t)
	notifier := &recordingNotifier{err: errors.New("broker down")}
	coord.SetNotifier(notifier)

	report, err := coord.Run(context.Background(), PassOptions{Trigger: "schedule"})
	require.NoError(t, err, "notifier errors do not fail the pass")

	require.Len(t, notifier.reports, 1)
	assert.Same(t, report, notifier.reports[0])
	require.Len(t, notifier.merged[0], 1)
	assert.Equal(t, 2650, notifier.merged[0][0].Draw)
}

func TestCoordinator_Reconcile_Cancelled(t *testing.T) {
	coord, store, provider := newScenario(t)
	bets, err := store.List(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := coord.Reconcile(ctx, bets, PassOptions{})
	assert.Equal(t, 3, report.Skipped)
	assert.Equal(t, 0, report.OutcomesMerged)
	assert.Equal(t, int64(0), provider.total.Load())
}

func TestReport_Fields(t *testing.T) {
	r := &Report{Trigger: "manual", LatestDraw: 10, DrawStatus: map[int]ResolveStatus{3: StatusFailed}}
	fields := r.Fields()

	keys := make(map[string]bool)
	for _, f := range fields {
		keys[f.Key] = true
	}
	assert.True(t, keys["latest_draw"])
	assert.True(t, keys["failed_draws"])
	assert.False(t, keys["bet_failures"])
}
