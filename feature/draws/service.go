package draws

import (
	"context"
	"fmt"
	"sort"

	"megasena-monitor/core/reconcile"

	"go.uber.org/zap"
)

const (
	// DefaultRecent is how many draws Recent returns when no count is given.
	DefaultRecent = 5
	// MaxRecent bounds a single Recent request.
	MaxRecent = 50
)

// LatestFetcher returns the most recent published draw.
type LatestFetcher interface {
	FetchLatest(ctx context.Context) (*reconcile.DrawResult, error)
}

// RecentLister lists persisted draws, newest first.
type RecentLister interface {
	Recent(ctx context.Context, count int) ([]*reconcile.DrawResult, error)
}

// CaptureSummary describes a Capture run.
type CaptureSummary struct {
	Latest   int   `json:"latest"`
	From     int   `json:"from"`
	Resolved []int `json:"resolved"`
	Pending  []int `json:"pending"`
	Failed   []int `json:"failed"`
}

// Service answers draw queries through the shared result cache.
type Service struct {
	cache  *reconcile.ResultCache
	latest LatestFetcher
	stored RecentLister
	logger *zap.Logger
}

// NewService creates a draw service. stored may be nil.
func NewService(cache *reconcile.ResultCache, latest LatestFetcher, stored RecentLister, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{cache: cache, latest: latest, stored: stored, logger: logger}
}

// Latest returns the most recent published draw. When the provider is
// unreachable the newest persisted draw is returned instead.
func (s *Service) Latest(ctx context.Context) (*reconcile.DrawResult, error) {
	draw, err := s.latest.FetchLatest(ctx)
	if err == nil {
		return draw, nil
	}
	if s.stored != nil {
		if stored, serr := s.stored.Recent(ctx, 1); serr == nil && len(stored) > 0 {
			s.logger.Warn("Serving latest draw from store", zap.Error(err))
			return stored[0], nil
		}
	}
	return nil, err
}

// Get returns one draw result.
func (s *Service) Get(ctx context.Context, number int) (*reconcile.DrawResult, error) {
	if number < 1 {
		return nil, &reconcile.ValidationError{Field: "number", Reason: fmt.Sprintf("draw number must be positive, got %d", number)}
	}
	return s.cache.Resolve(ctx, number)
}

// Recent returns up to count of the latest draws, newest first.
// Draws that cannot be resolved right now are left out.
func (s *Service) Recent(ctx context.Context, count int) ([]*reconcile.DrawResult, error) {
	if count <= 0 {
		count = DefaultRecent
	}
	if count > MaxRecent {
		count = MaxRecent
	}

	latest, err := s.latest.FetchLatest(ctx)
	if err != nil {
		if s.stored != nil {
			s.logger.Warn("Serving recent draws from store", zap.Error(err))
			return s.stored.Recent(ctx, count)
		}
		return nil, err
	}

	res := s.cache.Warm(ctx, latest.Number-count+1, latest.Number)
	out := make([]*reconcile.DrawResult, 0, len(res))
	for _, r := range res {
		if r.Status == reconcile.StatusResolved {
			out = append(out, r.Result)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number > out[j].Number })
	return out, nil
}

// Capture resolves the last count draws so later passes find them cached.
func (s *Service) Capture(ctx context.Context, count int) (*CaptureSummary, error) {
	if count < 1 {
		return nil, &reconcile.ValidationError{Field: "count", Reason: fmt.Sprintf("must be positive, got %d", count)}
	}
	latest, err := s.latest.FetchLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up latest draw: %w", err)
	}

	from := latest.Number - count + 1
	if from < 1 {
		from = 1
	}
	summary := &CaptureSummary{Latest: latest.Number, From: from}
	for n, r := range s.cache.Warm(ctx, from, latest.Number) {
		switch r.Status {
		case reconcile.StatusResolved:
			summary.Resolved = append(summary.Resolved, n)
		case reconcile.StatusNotYetAvailable:
			summary.Pending = append(summary.Pending, n)
		default:
			summary.Failed = append(summary.Failed, n)
		}
	}
	sort.Ints(summary.Resolved)
	sort.Ints(summary.Pending)
	sort.Ints(summary.Failed)

	s.logger.Info("Draw capture finished",
		zap.Int("latest", latest.Number),
		zap.Int("resolved", len(summary.Resolved)),
		zap.Int("pending", len(summary.Pending)),
		zap.Int("failed", len(summary.Failed)),
	)
	return summary, nil
}
