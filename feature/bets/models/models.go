package models

import (
	"time"

	"megasena-monitor/core/reconcile"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Bet represents the 'bets' table. Deleting a bet only sets DeletedAt.
type Bet struct {
	ID        int64                    `gorm:"column:id;primaryKey;autoIncrement"`
	Numbers   datatypes.JSONSlice[int] `gorm:"column:numbers;not null"`
	StartDraw int                      `gorm:"column:start_draw;not null;index"`
	Repeat    int                      `gorm:"column:repeat_count;not null"`
	CreatedAt time.Time                `gorm:"column:created_at"`
	UpdatedAt time.Time                `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt           `gorm:"column:deleted_at;index"`
	Outcomes  []Outcome                `gorm:"foreignKey:BetID;references:ID"`
}

// TableName overrides the table name.
func (Bet) TableName() string {
	return "bets"
}

// Outcome represents the 'bet_outcomes' table.
// The composite primary key makes every (bet, draw) outcome set-once.
type Outcome struct {
	BetID        int64                    `gorm:"column:bet_id;primaryKey;autoIncrement:false"`
	DrawNumber   int                      `gorm:"column:draw_number;primaryKey;autoIncrement:false"`
	Hits         int                      `gorm:"column:hits;not null"`
	Tier         string                   `gorm:"column:tier;size:16;not null"`
	DrawnNumbers datatypes.JSONSlice[int] `gorm:"column:drawn_numbers"`
	ResolvedAt   time.Time                `gorm:"column:resolved_at"`
}

// TableName overrides the table name.
func (Outcome) TableName() string {
	return "bet_outcomes"
}

// ToDomain converts the row and its loaded outcomes.
func (b Bet) ToDomain() reconcile.Bet {
	bet := reconcile.Bet{
		ID:        b.ID,
		Numbers:   append([]int(nil), b.Numbers...),
		StartDraw: b.StartDraw,
		Repeat:    b.Repeat,
		CreatedAt: b.CreatedAt,
		Outcomes:  make(map[int]reconcile.Outcome, len(b.Outcomes)),
	}
	for _, o := range b.Outcomes {
		bet.Outcomes[o.DrawNumber] = o.ToDomain()
	}
	return bet
}

// BetFromDomain converts a domain bet without its outcomes.
func BetFromDomain(b reconcile.Bet) Bet {
	return Bet{
		ID:        b.ID,
		Numbers:   datatypes.JSONSlice[int](reconcile.SortedCopy(b.Numbers)),
		StartDraw: b.StartDraw,
		Repeat:    b.Repeat,
		CreatedAt: b.CreatedAt,
	}
}

// ToDomain converts the row.
func (o Outcome) ToDomain() reconcile.Outcome {
	return reconcile.Outcome{
		BetID:        o.BetID,
		Draw:         o.DrawNumber,
		Hits:         o.Hits,
		Tier:         reconcile.PrizeTier(o.Tier),
		DrawnNumbers: append([]int(nil), o.DrawnNumbers...),
		ResolvedAt:   o.ResolvedAt,
	}
}

// OutcomeFromDomain converts a domain outcome.
func OutcomeFromDomain(o reconcile.Outcome) Outcome {
	return Outcome{
		BetID:        o.BetID,
		DrawNumber:   o.Draw,
		Hits:         o.Hits,
		Tier:         string(o.Tier),
		DrawnNumbers: datatypes.JSONSlice[int](o.DrawnNumbers),
		ResolvedAt:   o.ResolvedAt,
	}
}

// Columns lists the columns the integrity check expects per table.
var Columns = map[string][]string{
	"bets":         {"id", "numbers", "start_draw", "repeat_count", "created_at", "updated_at", "deleted_at"},
	"bet_outcomes": {"bet_id", "draw_number", "hits", "tier", "drawn_numbers", "resolved_at"},
}
