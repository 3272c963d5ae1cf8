package draws

import (
	"context"
	"errors"
	"fmt"

	"megasena-monitor/core/reconcile"

	"go.uber.org/zap"
)

// TieredStore reads through several draw stores in order and copies a hit
// into the faster tiers that missed it.
type TieredStore struct {
	tiers  []namedStore
	logger *zap.Logger
}

type namedStore struct {
	name  string
	store reconcile.DrawStore
}

// NewTieredStore creates an empty tiered store.
func NewTieredStore(logger *zap.Logger) *TieredStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TieredStore{logger: logger}
}

// Add appends a tier. Earlier tiers are consulted first.
func (t *TieredStore) Add(name string, store reconcile.DrawStore) *TieredStore {
	if store != nil {
		t.tiers = append(t.tiers, namedStore{name: name, store: store})
	}
	return t
}

// Tiers returns the tier names in lookup order.
func (t *TieredStore) Tiers() []string {
	names := make([]string, 0, len(t.tiers))
	for _, tier := range t.tiers {
		names = append(names, tier.name)
	}
	return names
}

// Get returns the draw from the first tier that has a valid copy.
// Tier errors and malformed copies are logged and treated as misses; only
// valid copies are backfilled.
func (t *TieredStore) Get(ctx context.Context, number int) (*reconcile.DrawResult, error) {
	for i, tier := range t.tiers {
		draw, err := tier.store.Get(ctx, number)
		if err != nil {
			if !errors.Is(err, reconcile.ErrDrawNotStored) {
				t.logger.Warn("Draw tier lookup failed", zap.String("tier", tier.name), zap.Int("draw", number), zap.Error(err))
			}
			continue
		}
		if err := validTierHit(draw, number); err != nil {
			t.logger.Warn("Ignoring malformed draw in tier", zap.String("tier", tier.name), zap.Int("draw", number), zap.Error(err))
			continue
		}
		t.backfill(ctx, draw, i)
		return draw, nil
	}
	return nil, reconcile.ErrDrawNotStored
}

func validTierHit(draw *reconcile.DrawResult, number int) error {
	if err := reconcile.ValidateDraw(draw); err != nil {
		return err
	}
	if draw.Number != number {
		return fmt.Errorf("tier returned draw %d", draw.Number)
	}
	return nil
}

// Save writes the draw to every tier and joins their errors.
func (t *TieredStore) Save(ctx context.Context, draw *reconcile.DrawResult) error {
	var errs []error
	for _, tier := range t.tiers {
		if err := tier.store.Save(ctx, draw); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *TieredStore) backfill(ctx context.Context, draw *reconcile.DrawResult, hit int) {
	for _, tier := range t.tiers[:hit] {
		if err := tier.store.Save(ctx, draw); err != nil {
			t.logger.Warn("Draw tier backfill failed", zap.String("tier", tier.name), zap.Int("draw", draw.Number), zap.Error(err))
		}
	}
}
