// Package reconcile resolves Mega-Sena bets against official draw results.
//
// A bet covers a run of consecutive draws. Each pass works out which of those
// draws still lack an outcome, fetches every needed draw once, and merges the
// resulting hit counts into the stored bets.
//
// # Architecture
//
//  1. ResultCache: keeps confirmed draw results in memory and in an optional
//     DrawStore. Concurrent requests for the same draw share one provider call
//     (singleflight). Failures are never cached, so they are retried next pass.
//
//  2. Coordinator: builds the union of pending draws across all bets, resolves
//     it through the cache with bounded parallelism, evaluates hits and
//     persists outcomes through a BetStore.
//
//  3. Evaluate: pure hit counting and prize tier classification
//     (none, quadra, quina, sena).
//
// # Idempotence
//
// Outcomes are set once per draw number. A second pass with nothing new to
// fetch changes nothing, and two racing passes cannot overwrite each other:
// the first stored outcome for a draw wins.
//
// # Usage Example
//
//	cache := reconcile.NewResultCache(provider,
//	    reconcile.WithDrawStore(drawStore),
//	    reconcile.WithConcurrency(8),
//	)
//	coord := reconcile.NewCoordinator(betStore, cache, logger)
//
//	report, err := coord.Run(ctx, reconcile.PassOptions{Trigger: "manual"})
package reconcile
