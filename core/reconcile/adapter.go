package reconcile

import (
	"context"
)

// Provider is the external source of official draw results.
// Implementations own their timeouts: every call must settle within bounded time.
type Provider interface {
	// FetchDraw returns the official result for the draw.
	// It returns ErrNotYetAvailable when the draw has not happened yet and a
	// *FetchError for transient failures (network, timeout, malformed response).
	FetchDraw(ctx context.Context, number int) (*DrawResult, error)

	// FetchLatestDrawNumber returns the most recent draw number known to exist.
	FetchLatestDrawNumber(ctx context.Context) (int, error)
}

// BetStore persists bets and merges outcome updates into them.
type BetStore interface {
	// Create stores a new bet and returns it with its assigned ID.
	Create(ctx context.Context, bet Bet) (Bet, error)

	// List returns every stored bet with its outcomes.
	List(ctx context.Context) ([]Bet, error)

	// Get returns a single bet, or ErrNotFound.
	Get(ctx context.Context, id int64) (Bet, error)

	// Delete removes a bet, or returns ErrNotFound if it is absent.
	Delete(ctx context.Context, id int64) error

	// UpdateOutcomes merges outcomes into the bet with set-once semantics per
	// draw number: an existing outcome is kept and the incoming one discarded.
	// It returns the outcomes actually inserted, ordered by draw, or ErrNotFound.
	UpdateOutcomes(ctx context.Context, id int64, outcomes map[int]Outcome) ([]Outcome, error)
}

// DrawStore is a persisted tier for confirmed draw results.
// It only ever holds successful results; it never stores failures.
type DrawStore interface {
	// Get returns a stored draw, or ErrDrawNotStored on a miss.
	Get(ctx context.Context, number int) (*DrawResult, error)

	// Save stores a confirmed draw. Saving an existing draw is a no-op.
	Save(ctx context.Context, draw *DrawResult) error
}

// Notifier receives the results of a finished pass.
type Notifier interface {
	// PassCompleted is called once per pass with the newly merged outcomes.
	PassCompleted(ctx context.Context, report *Report, merged []Outcome) error
}
