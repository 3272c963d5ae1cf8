package reconcile

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// PrizeTier classifies a hit count.
type PrizeTier string

const (
	// TierNone is any hit count below four.
	TierNone PrizeTier = "none"
	// TierQuadra is exactly four hits.
	TierQuadra PrizeTier = "quadra"
	// TierQuina is exactly five hits.
	TierQuina PrizeTier = "quina"
	// TierSena is all six drawn numbers.
	TierSena PrizeTier = "sena"
)

// IsWinning reports whether the tier pays a prize.
func (t PrizeTier) IsWinning() bool {
	return t == TierQuadra || t == TierQuina || t == TierSena
}

// Bet is a set of selected numbers that applies to a consecutive run of draws.
type Bet struct {
	// ID is assigned by the BetStore and never changes.
	ID int64 `json:"id"`

	// Numbers holds the selected numbers in ascending order.
	Numbers []int `json:"numbers"`

	// StartDraw is the first draw number the bet applies to.
	StartDraw int `json:"start_draw"`

	// Repeat is how many consecutive draws, starting at StartDraw, the bet covers.
	Repeat int `json:"repeat"`

	// CreatedAt is when the bet was registered.
	CreatedAt time.Time `json:"created_at"`

	// Outcomes holds the confirmed outcome per draw number.
	// Entries are only ever added, never replaced or removed.
	Outcomes map[int]Outcome `json:"outcomes"`
}

// EndDraw returns the last draw number the bet applies to.
func (b *Bet) EndDraw() int {
	return b.StartDraw + b.Repeat - 1
}

// Subscribes reports whether the bet applies to the given draw.
func (b *Bet) Subscribes(draw int) bool {
	return draw >= b.StartDraw && draw <= b.EndDraw()
}

// SubscribedDraws returns {StartDraw, ..., StartDraw+Repeat-1}.
func (b *Bet) SubscribedDraws() []int {
	if b.Repeat < 1 {
		return nil
	}
	draws := make([]int, 0, b.Repeat)
	for n := b.StartDraw; n <= b.EndDraw(); n++ {
		draws = append(draws, n)
	}
	return draws
}

// PendingDraws returns the subscribed draws that do not hold an outcome yet.
func (b *Bet) PendingDraws() []int {
	var pending []int
	for _, n := range b.SubscribedDraws() {
		if _, ok := b.Outcomes[n]; !ok {
			pending = append(pending, n)
		}
	}
	return pending
}

// HasOutcome reports whether the draw already has a confirmed outcome.
func (b *Bet) HasOutcome(draw int) bool {
	_, ok := b.Outcomes[draw]
	return ok
}

// MergeOutcome inserts o if no outcome exists for its draw yet.
// The first confirmed outcome for a draw wins; later ones are discarded.
// It returns true when the outcome was inserted.
func (b *Bet) MergeOutcome(o Outcome) bool {
	if !b.Subscribes(o.Draw) {
		return false
	}
	if b.Outcomes == nil {
		b.Outcomes = make(map[int]Outcome)
	}
	if _, exists := b.Outcomes[o.Draw]; exists {
		return false
	}
	b.Outcomes[o.Draw] = o
	return true
}

// Clone returns a deep copy of the bet.
func (b Bet) Clone() Bet {
	out := b
	out.Numbers = append([]int(nil), b.Numbers...)
	out.Outcomes = make(map[int]Outcome, len(b.Outcomes))
	for k, v := range b.Outcomes {
		v.DrawnNumbers = append([]int(nil), v.DrawnNumbers...)
		out.Outcomes[k] = v
	}
	return out
}

// DrawResult is the official result of one draw. It never changes once published.
type DrawResult struct {
	// Number is the draw (concurso) number.
	Number int `json:"number"`

	// Numbers holds the six drawn numbers in ascending order.
	Numbers []int `json:"numbers"`

	// DrawDate is the date the draw took place.
	DrawDate time.Time `json:"draw_date"`

	// Accumulated is true when nobody hit the top tier.
	Accumulated bool `json:"accumulated"`

	// PrizeAmount is the top tier prize per winner, when published.
	PrizeAmount *decimal.Decimal `json:"prize_amount,omitempty"`

	// Winners is the number of top tier winners, when published.
	Winners *int `json:"winners,omitempty"`
}

// Outcome is the evaluation of one bet against one draw.
type Outcome struct {
	BetID        int64     `json:"bet_id"`
	Draw         int       `json:"draw"`
	Hits         int       `json:"hits"`
	Tier         PrizeTier `json:"tier"`
	DrawnNumbers []int     `json:"drawn_numbers"`
	ResolvedAt   time.Time `json:"resolved_at"`
}

// ResolveStatus tags how a single draw settled during a pass.
type ResolveStatus string

const (
	StatusResolved        ResolveStatus = "resolved"
	StatusNotYetAvailable ResolveStatus = "not_yet_available"
	StatusFailed          ResolveStatus = "failed"
	// StatusSkipped marks draws that were never attempted because the pass was abandoned.
	StatusSkipped ResolveStatus = "skipped"
	// StatusDeferred marks draws left for a later pass by the per-pass fetch bound.
	StatusDeferred ResolveStatus = "deferred"
)

// Resolution is the settled state of one draw number.
type Resolution struct {
	Draw   int
	Status ResolveStatus
	Result *DrawResult
	Err    error
}

// PassOptions tunes a single reconciliation pass.
type PassOptions struct {
	// Trigger records what started the pass. Informational only.
	Trigger string

	// LatestDraw bounds the needed set. Draws above it are pending without
	// a provider call. Zero means unknown.
	LatestDraw int

	// MaxNewDraws bounds how many draws missing from memory may be fetched.
	// Zero means unbounded.
	MaxNewDraws int

	// MinDraw drops needed draws below it for this pass. Zero disables it.
	MinDraw int
}

// BetFailure records a bet whose outcome update could not be persisted.
type BetFailure struct {
	BetID int64  `json:"bet_id"`
	Error string `json:"error"`
}

// Report summarizes one reconciliation pass.
type Report struct {
	Trigger        string                `json:"trigger"`
	StartedAt      time.Time             `json:"started_at"`
	FinishedAt     time.Time             `json:"finished_at"`
	LatestDraw     int                   `json:"latest_draw"`
	Bets           int                   `json:"bets"`
	Needed         int                   `json:"needed"`
	Resolved       int                   `json:"resolved"`
	Pending        int                   `json:"pending"`
	Failed         int                   `json:"failed"`
	Deferred       int                   `json:"deferred"`
	Skipped        int                   `json:"skipped"`
	OutcomesMerged int                   `json:"outcomes_merged"`
	BetFailures    []BetFailure          `json:"bet_failures"`
	DrawStatus     map[int]ResolveStatus `json:"draw_status"`
}

// Duration returns how long the pass took.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// FailedDraws returns the draw numbers whose fetch failed, in ascending order.
func (r *Report) FailedDraws() []int {
	return r.drawsWith(StatusFailed)
}

// PendingDraws returns the draw numbers that are not yet available, in ascending order.
func (r *Report) PendingDraws() []int {
	return r.drawsWith(StatusNotYetAvailable)
}

func (r *Report) drawsWith(status ResolveStatus) []int {
	var draws []int
	for n, s := range r.DrawStatus {
		if s == status {
			draws = append(draws, n)
		}
	}
	sort.Ints(draws)
	return draws
}
