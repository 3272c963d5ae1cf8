package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"megasena-monitor/core/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// DefaultConcurrency is the fan-out limit used when none is configured.
const DefaultConcurrency = 8

// ResultCache resolves draw results at most once.
// Confirmed results are kept in memory for the life of the process and, when a
// DrawStore is configured, persisted there. Failures are never remembered.
type ResultCache struct {
	provider    Provider
	store       DrawStore
	logger      *zap.Logger
	concurrency int

	mu      sync.RWMutex
	results map[int]*DrawResult
	sf      singleflight.Group
}

// CacheOption configures a ResultCache.
type CacheOption func(*ResultCache)

// WithDrawStore adds a persisted tier consulted before the provider.
func WithDrawStore(store DrawStore) CacheOption {
	return func(c *ResultCache) { c.store = store }
}

// WithConcurrency bounds how many draws ResolveMany resolves in parallel.
// Values below 1 mean unbounded.
func WithConcurrency(n int) CacheOption {
	return func(c *ResultCache) { c.concurrency = n }
}

// WithLogger sets the cache logger.
func WithLogger(l *zap.Logger) CacheOption {
	return func(c *ResultCache) { c.logger = l }
}

// NewResultCache creates a cache in front of the provider.
func NewResultCache(provider Provider, opts ...CacheOption) *ResultCache {
	c := &ResultCache{
		provider:    provider,
		logger:      zap.NewNop(),
		concurrency: DefaultConcurrency,
		results:     make(map[int]*DrawResult),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Peek returns a result held in memory without any I/O.
func (c *ResultCache) Peek(number int) (*DrawResult, bool) {
	c.mu.RLock()
	r, ok := c.results[number]
	c.mu.RUnlock()
	return r, ok
}

// Has reports whether the draw is held in memory.
func (c *ResultCache) Has(number int) bool {
	_, ok := c.Peek(number)
	return ok
}

// Len returns how many draws are held in memory.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}

// Numbers returns the draw numbers held in memory, ascending.
func (c *ResultCache) Numbers() []int {
	c.mu.RLock()
	numbers := make([]int, 0, len(c.results))
	for n := range c.results {
		numbers = append(numbers, n)
	}
	c.mu.RUnlock()
	sort.Ints(numbers)
	return numbers
}

// Resolve returns the confirmed result for the draw.
// Concurrent callers for the same draw share one underlying lookup and all
// observe its result. It returns ErrNotYetAvailable or a *FetchError otherwise.
func (c *ResultCache) Resolve(ctx context.Context, number int) (*DrawResult, error) {
	if r, ok := c.Peek(number); ok {
		return r, nil
	}

	v, err, _ := c.sf.Do(strconv.Itoa(number), func() (any, error) {
		// Another flight may have finished between Peek and Do.
		if r, ok := c.Peek(number); ok {
			return r, nil
		}
		// In-flight lookups complete even if the requesting pass is abandoned.
		return c.load(context.WithoutCancel(ctx), number)
	})
	if err != nil {
		return nil, err
	}
	return v.(*DrawResult), nil
}

func (c *ResultCache) load(ctx context.Context, number int) (*DrawResult, error) {
	if c.store != nil {
		stored, err := c.store.Get(ctx, number)
		switch {
		case err == nil && ValidateDraw(stored) == nil && stored.Number == number:
			c.remember(stored)
			metrics.ObserveDrawLookup("store")
			return stored, nil
		case err == nil:
			c.logger.Warn("Discarding malformed stored draw", zap.Int("draw", number))
		case !errors.Is(err, ErrDrawNotStored):
			c.logger.Warn("Draw store lookup failed", zap.Int("draw", number), zap.Error(err))
		}
	}

	fetched, err := c.provider.FetchDraw(ctx, number)
	if err != nil {
		if errors.Is(err, ErrNotYetAvailable) {
			metrics.ObserveDrawLookup("not_yet_available")
			return nil, ErrNotYetAvailable
		}
		metrics.ObserveDrawLookup("failed")
		var fe *FetchError
		if !errors.As(err, &fe) {
			err = &FetchError{Draw: number, Err: err}
		}
		return nil, err
	}
	if err := ValidateDraw(fetched); err != nil {
		metrics.ObserveDrawLookup("failed")
		return nil, &FetchError{Draw: number, Err: err}
	}
	if fetched.Number != number {
		metrics.ObserveDrawLookup("failed")
		return nil, &FetchError{Draw: number, Err: fmt.Errorf("provider returned draw %d", fetched.Number)}
	}

	result := *fetched
	result.Numbers = SortedCopy(fetched.Numbers)

	if c.store != nil {
		if err := c.store.Save(ctx, &result); err != nil {
			// The result is still confirmed; it stays in memory and the
			// store is retried the next time the process starts cold.
			c.logger.Warn("Failed to persist draw", zap.Int("draw", number), zap.Error(err))
		}
	}
	c.remember(&result)
	metrics.ObserveDrawLookup("fetched")
	return &result, nil
}

// LoadStored copies the given draws from the DrawStore into memory without
// calling the provider. It returns how many draws were loaded.
func (c *ResultCache) LoadStored(ctx context.Context, numbers []int) int {
	if c.store == nil {
		return 0
	}
	loaded := 0
	for _, n := range Distinct(numbers) {
		if ctx.Err() != nil {
			break
		}
		if c.Has(n) {
			continue
		}
		stored, err := c.store.Get(ctx, n)
		if err != nil {
			if !errors.Is(err, ErrDrawNotStored) {
				c.logger.Warn("Draw store lookup failed", zap.Int("draw", n), zap.Error(err))
			}
			continue
		}
		if ValidateDraw(stored) != nil || stored.Number != n {
			c.logger.Warn("Discarding malformed stored draw", zap.Int("draw", n))
			continue
		}
		c.remember(stored)
		metrics.ObserveDrawLookup("store")
		loaded++
	}
	return loaded
}

func (c *ResultCache) remember(r *DrawResult) {
	c.mu.Lock()
	if _, exists := c.results[r.Number]; !exists {
		c.results[r.Number] = r
	}
	c.mu.Unlock()
}

// ResolveMany resolves every distinct draw with bounded parallelism.
// Each draw settles independently; one failure never affects the others.
// Once ctx is done no new lookups start and the remaining draws are skipped.
func (c *ResultCache) ResolveMany(ctx context.Context, numbers []int) map[int]Resolution {
	distinct := Distinct(numbers)
	out := make(map[int]Resolution, len(distinct))

	var mu sync.Mutex
	record := func(r Resolution) {
		mu.Lock()
		out[r.Draw] = r
		mu.Unlock()
	}

	// Plain group: a failed draw must not cancel its siblings.
	var g errgroup.Group
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}

	for _, n := range distinct {
		if ctx.Err() != nil {
			record(Resolution{Draw: n, Status: StatusSkipped, Err: ctx.Err()})
			continue
		}
		n := n
		g.Go(func() error {
			if ctx.Err() != nil {
				record(Resolution{Draw: n, Status: StatusSkipped, Err: ctx.Err()})
				return nil
			}
			r, err := c.Resolve(ctx, n)
			record(settle(n, r, err))
			return nil
		})
	}
	_ = g.Wait()

	return out
}

// Warm resolves every draw in [from, to].
func (c *ResultCache) Warm(ctx context.Context, from, to int) map[int]Resolution {
	if from < 1 {
		from = 1
	}
	var numbers []int
	for n := from; n <= to; n++ {
		numbers = append(numbers, n)
	}
	return c.ResolveMany(ctx, numbers)
}

func settle(number int, r *DrawResult, err error) Resolution {
	switch {
	case err == nil:
		return Resolution{Draw: number, Status: StatusResolved, Result: r}
	case errors.Is(err, ErrNotYetAvailable):
		return Resolution{Draw: number, Status: StatusNotYetAvailable, Err: err}
	default:
		return Resolution{Draw: number, Status: StatusFailed, Err: err}
	}
}

// Distinct returns the unique positive numbers in ascending order.
func Distinct(numbers []int) []int {
	seen := make(map[int]struct{}, len(numbers))
	out := make([]int, 0, len(numbers))
	for _, n := range numbers {
		if n <= 0 {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
