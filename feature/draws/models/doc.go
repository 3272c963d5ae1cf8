// Package models defines the GORM row for confirmed draw results.
package models
