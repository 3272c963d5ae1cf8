package bets

import (
	"context"

	"megasena-monitor/core/reconcile"

	"go.uber.org/zap"
)

// CreateRequest is the payload for registering a bet.
type CreateRequest struct {
	Numbers   []int `json:"numbers"`
	StartDraw int   `json:"start_draw"`
	// Repeat defaults to 1 when omitted.
	Repeat int `json:"repeat"`
}

// View is a bet with its derived draw state.
type View struct {
	reconcile.Bet
	EndDraw         int   `json:"end_draw"`
	PendingDraws    []int `json:"pending_draws"`
	WinningOutcomes int   `json:"winning_outcomes"`
}

// NewView derives the view of a bet.
func NewView(b reconcile.Bet) View {
	v := View{Bet: b, EndDraw: b.EndDraw(), PendingDraws: b.PendingDraws()}
	if v.PendingDraws == nil {
		v.PendingDraws = []int{}
	}
	for _, o := range b.Outcomes {
		if o.Tier.IsWinning() {
			v.WinningOutcomes++
		}
	}
	return v
}

// Service handles bet operations.
type Service struct {
	store  reconcile.BetStore
	logger *zap.Logger
}

// NewService creates a new bet service.
func NewService(store reconcile.BetStore, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Create validates and stores a bet.
func (s *Service) Create(ctx context.Context, req CreateRequest) (View, error) {
	if req.Repeat == 0 {
		req.Repeat = 1
	}
	bet, err := s.store.Create(ctx, reconcile.Bet{
		Numbers:   req.Numbers,
		StartDraw: req.StartDraw,
		Repeat:    req.Repeat,
	})
	if err != nil {
		return View{}, err
	}
	s.logger.Info("Bet registered",
		zap.Int64("bet_id", bet.ID),
		zap.Ints("numbers", bet.Numbers),
		zap.Int("start_draw", bet.StartDraw),
		zap.Int("repeat", bet.Repeat),
	)
	return NewView(bet), nil
}

// List returns every active bet.
func (s *Service) List(ctx context.Context) ([]View, error) {
	bets, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]View, 0, len(bets))
	for _, b := range bets {
		views = append(views, NewView(b))
	}
	return views, nil
}

// Get returns one bet.
func (s *Service) Get(ctx context.Context, id int64) (View, error) {
	bet, err := s.store.Get(ctx, id)
	if err != nil {
		return View{}, err
	}
	return NewView(bet), nil
}

// Delete removes a bet.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Bet deleted", zap.Int64("bet_id", id))
	return nil
}
