package draws

import (
	"context"
	"errors"
	"fmt"

	"megasena-monitor/core/database"
	"megasena-monitor/core/reconcile"
	"megasena-monitor/feature/draws/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DBStore keeps confirmed draws in the 'draws' table.
type DBStore struct {
	db *gorm.DB
}

// NewDBStore creates a draw store on db.
func NewDBStore(db *gorm.DB) *DBStore {
	return &DBStore{db: db}
}

// Migrate creates the draws table.
func (s *DBStore) Migrate() error {
	return database.Migrate(s.db, &models.Draw{})
}

// Get returns a stored draw, or reconcile.ErrDrawNotStored.
func (s *DBStore) Get(ctx context.Context, number int) (*reconcile.DrawResult, error) {
	var row models.Draw
	err := s.db.WithContext(ctx).First(&row, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, reconcile.ErrDrawNotStored
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draw %d: %w", number, err)
	}
	return row.ToDomain(), nil
}

// Save inserts a draw. An existing row is left untouched.
func (s *DBStore) Save(ctx context.Context, draw *reconcile.DrawResult) error {
	row := models.FromDomain(draw)
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to save draw %d: %w", draw.Number, err)
	}
	return nil
}

// Recent returns up to count stored draws, newest first.
func (s *DBStore) Recent(ctx context.Context, count int) ([]*reconcile.DrawResult, error) {
	var rows []models.Draw
	if err := s.db.WithContext(ctx).Order("number DESC").Limit(count).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent draws: %w", err)
	}
	out := make([]*reconcile.DrawResult, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToDomain())
	}
	return out, nil
}

// Numbers returns every stored draw number in ascending order.
func (s *DBStore) Numbers(ctx context.Context) ([]int, error) {
	var numbers []int
	if err := s.db.WithContext(ctx).Model(&models.Draw{}).Order("number").Pluck("number", &numbers).Error; err != nil {
		return nil, fmt.Errorf("failed to list draw numbers: %w", err)
	}
	return numbers, nil
}

// Count returns how many draws are stored.
func (s *DBStore) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Draw{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count draws: %w", err)
	}
	return n, nil
}
