// Package models defines the GORM rows for bets and their outcomes and the
// conversions to the reconcile domain types.
package models
