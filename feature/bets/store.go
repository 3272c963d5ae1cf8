package bets

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"megasena-monitor/core/database"
	"megasena-monitor/core/reconcile"
	"megasena-monitor/feature/bets/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is the GORM implementation of reconcile.BetStore.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore creates a bet store on db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Migrate creates the bet tables.
func (s *Store) Migrate() error {
	return database.Migrate(s.db, &models.Bet{}, &models.Outcome{})
}

// Create validates and stores a new bet.
func (s *Store) Create(ctx context.Context, bet reconcile.Bet) (reconcile.Bet, error) {
	if err := reconcile.ValidateBet(&bet); err != nil {
		return reconcile.Bet{}, err
	}
	row := models.BetFromDomain(bet)
	row.ID = 0
	if row.CreatedAt.IsZero() {
		row.CreatedAt = s.now()
	}
	if err := s.db.WithContext(ctx).Omit("Outcomes").Create(&row).Error; err != nil {
		return reconcile.Bet{}, fmt.Errorf("failed to create bet: %w", err)
	}
	return row.ToDomain(), nil
}

// List returns every active bet with its outcomes, ordered by ID.
func (s *Store) List(ctx context.Context) ([]reconcile.Bet, error) {
	var rows []models.Bet
	err := s.db.WithContext(ctx).
		Preload("Outcomes", func(db *gorm.DB) *gorm.DB { return db.Order("draw_number") }).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list bets: %w", err)
	}
	out := make([]reconcile.Bet, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToDomain())
	}
	return out, nil
}

// Get returns one active bet, or reconcile.ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (reconcile.Bet, error) {
	var row models.Bet
	err := s.db.WithContext(ctx).Preload("Outcomes").First(&row, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reconcile.Bet{}, reconcile.ErrNotFound
	}
	if err != nil {
		return reconcile.Bet{}, fmt.Errorf("failed to get bet %d: %w", id, err)
	}
	return row.ToDomain(), nil
}

// Delete soft deletes a bet. Its outcomes are kept.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&models.Bet{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete bet %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return reconcile.ErrNotFound
	}
	return nil
}

// UpdateOutcomes inserts the outcomes the bet does not hold yet.
// Each row is inserted with ON CONFLICT DO NOTHING, so a concurrent writer
// that stored the same draw first wins and the row is left out of the result.
func (s *Store) UpdateOutcomes(ctx context.Context, id int64, outcomes map[int]reconcile.Outcome) ([]reconcile.Outcome, error) {
	draws := make([]int, 0, len(outcomes))
	for n := range outcomes {
		draws = append(draws, n)
	}
	sort.Ints(draws)

	var inserted []reconcile.Outcome
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var bet models.Bet
		if err := tx.Select("id", "start_draw", "repeat_count").First(&bet, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return reconcile.ErrNotFound
			}
			return err
		}
		domain := bet.ToDomain()

		for _, n := range draws {
			o := outcomes[n]
			o.BetID = id
			o.Draw = n
			if !domain.Subscribes(n) {
				continue
			}
			row := models.OutcomeFromDomain(o)
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
			if res.Error != nil {
				return fmt.Errorf("insert outcome for draw %d: %w", n, res.Error)
			}
			if res.RowsAffected == 1 {
				inserted = append(inserted, o)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inserted, nil
}

// Outcomes returns the stored outcomes of a bet, ordered by draw, including
// outcomes of deleted bets.
func (s *Store) Outcomes(ctx context.Context, id int64) ([]reconcile.Outcome, error) {
	var rows []models.Outcome
	if err := s.db.WithContext(ctx).Where("bet_id = ?", id).Order("draw_number").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list outcomes for bet %d: %w", id, err)
	}
	out := make([]reconcile.Outcome, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToDomain())
	}
	return out, nil
}
