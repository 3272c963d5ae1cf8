package reconcile

// Plan partitions the draws needed by a bet collection for one pass.
type Plan struct {
	// Needed is the deduplicated union of every bet's pending subscribed draws.
	Needed []int

	// Fetch is the subset resolved through the cache during this pass.
	Fetch []int

	// Beyond holds draws above the latest published draw. They are pending
	// and no provider call is made for them.
	Beyond []int

	// Deferred holds draws left for a later pass by the pass options.
	Deferred []int
}

// NeededDraws returns the union of pending subscribed draws across bets.
// Ten bets sharing a draw contribute it once.
func NeededDraws(bets []Bet) []int {
	var all []int
	for i := range bets {
		all = append(all, bets[i].PendingDraws()...)
	}
	return Distinct(all)
}

// Window keeps the draws a pass with these options may resolve: not above
// LatestDraw and not below MinDraw.
func (o PassOptions) Window(draws []int) []int {
	var out []int
	for _, n := range draws {
		if o.LatestDraw > 0 && n > o.LatestDraw {
			continue
		}
		if o.MinDraw > 0 && n < o.MinDraw {
			continue
		}
		out = append(out, n)
	}
	return out
}

// BuildPlan computes which needed draws are resolved during this pass.
// cached reports whether a draw is already known locally; those never count
// against opts.MaxNewDraws.
func BuildPlan(bets []Bet, opts PassOptions, cached func(int) bool) Plan {
	plan := Plan{Needed: NeededDraws(bets)}

	newDraws := 0
	for _, n := range plan.Needed {
		switch {
		case opts.LatestDraw > 0 && n > opts.LatestDraw:
			plan.Beyond = append(plan.Beyond, n)
		case opts.MinDraw > 0 && n < opts.MinDraw:
			plan.Deferred = append(plan.Deferred, n)
		case cached != nil && cached(n):
			plan.Fetch = append(plan.Fetch, n)
		case opts.MaxNewDraws > 0 && newDraws >= opts.MaxNewDraws:
			plan.Deferred = append(plan.Deferred, n)
		default:
			newDraws++
			plan.Fetch = append(plan.Fetch, n)
		}
	}
	return plan
}
