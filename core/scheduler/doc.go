// Package scheduler decides when reconciliation passes run.
//
// The scheduler is an explicit two state machine (idle, running). Triggers:
//
//   - manual: user request. Unbounded. Queued behind a running pass.
//   - foreground, rollover, schedule, startup: automatic. Dropped while a
//     pass runs and bounded by Config.MaxAutoDraws.
//
// After Stop no pass starts: a queued manual pass is dropped and triggers
// return ErrStopped.
//
// Periodic and rollover ticks come from a cron runner in Config.Timezone.
// Every pass looks up the latest published draw number first so draws that
// cannot exist yet are never requested.
//
// Policies for automatic passes:
//
//	forward   every pending draw up to the latest one
//	lookback  only the last Config.Lookback draws
package scheduler
