package reconcile

import (
	"go.uber.org/zap"
)

// Fields returns the report summary as structured log fields.
func (r *Report) Fields() []zap.Field {
	fields := []zap.Field{
		zap.String("trigger", r.Trigger),
		zap.Int("bets", r.Bets),
		zap.Int("needed", r.Needed),
		zap.Int("resolved", r.Resolved),
		zap.Int("pending", r.Pending),
		zap.Int("failed", r.Failed),
		zap.Int("deferred", r.Deferred),
		zap.Int("skipped", r.Skipped),
		zap.Int("outcomes_merged", r.OutcomesMerged),
		zap.Duration("duration", r.Duration()),
	}
	if r.LatestDraw > 0 {
		fields = append(fields, zap.Int("latest_draw", r.LatestDraw))
	}
	if len(r.BetFailures) > 0 {
		fields = append(fields, zap.Int("bet_failures", len(r.BetFailures)))
	}
	if failed := r.FailedDraws(); len(failed) > 0 {
		fields = append(fields, zap.Ints("failed_draws", failed))
	}
	return fields
}

// Complete reports whether the pass settled every draw it attempted and stored
// every bet. Draws that are not yet available do not make a pass partial.
func (r *Report) Complete() bool {
	return r.Failed == 0 && r.Skipped == 0 && len(r.BetFailures) == 0
}
