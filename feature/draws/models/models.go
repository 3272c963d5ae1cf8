package models

import (
	"time"

	"megasena-monitor/core/reconcile"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Draw represents the 'draws' table. Rows are written once and never updated.
type Draw struct {
	Number      int                      `gorm:"column:number;primaryKey;autoIncrement:false"`
	Numbers     datatypes.JSONSlice[int] `gorm:"column:numbers;not null"`
	DrawDate    time.Time                `gorm:"column:draw_date"`
	Accumulated bool                     `gorm:"column:accumulated"`
	PrizeAmount *decimal.Decimal         `gorm:"column:prize_amount;type:decimal(20,2)"`
	Winners     *int                     `gorm:"column:winners"`
	FetchedAt   time.Time                `gorm:"column:fetched_at;autoCreateTime"`
}

// TableName overrides the table name.
func (Draw) TableName() string {
	return "draws"
}

// ToDomain converts the row.
func (d Draw) ToDomain() *reconcile.DrawResult {
	return &reconcile.DrawResult{
		Number:      d.Number,
		Numbers:     append([]int(nil), d.Numbers...),
		DrawDate:    d.DrawDate,
		Accumulated: d.Accumulated,
		PrizeAmount: d.PrizeAmount,
		Winners:     d.Winners,
	}
}

// FromDomain converts a confirmed draw result.
func FromDomain(r *reconcile.DrawResult) Draw {
	return Draw{
		Number:      r.Number,
		Numbers:     datatypes.JSONSlice[int](reconcile.SortedCopy(r.Numbers)),
		DrawDate:    r.DrawDate,
		Accumulated: r.Accumulated,
		PrizeAmount: r.PrizeAmount,
		Winners:     r.Winners,
	}
}

// Columns lists the columns the integrity check expects per table.
var Columns = map[string][]string{
	"draws": {"number", "numbers", "draw_date", "accumulated", "prize_amount", "winners", "fetched_at"},
}
