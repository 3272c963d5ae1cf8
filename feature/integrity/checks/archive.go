package checks

import (
	"context"
	"fmt"

	"megasena-monitor/core/reconcile"
	"megasena-monitor/feature/draws"
)

// DrawSource lists and loads persisted draws.
type DrawSource interface {
	Numbers(ctx context.Context) ([]int, error)
	Get(ctx context.Context, number int) (*reconcile.DrawResult, error)
}

// ArchiveReport is the result of an archive check.
type ArchiveReport struct {
	Stored   int   `json:"stored"`
	Archived int   `json:"archived"`
	Missing  []int `json:"missing"`
}

// CheckArchive returns the stored draws that have no archive object.
func CheckArchive(ctx context.Context, source DrawSource, archive *draws.ArchiveStore) (*ArchiveReport, error) {
	stored, err := source.Numbers(ctx)
	if err != nil {
		return nil, err
	}
	archived, err := archive.List(ctx)
	if err != nil {
		return nil, err
	}

	have := make(map[int]struct{}, len(archived))
	for _, n := range archived {
		have[n] = struct{}{}
	}

	report := &ArchiveReport{Stored: len(stored), Archived: len(archived), Missing: []int{}}
	for _, n := range stored {
		if _, ok := have[n]; !ok {
			report.Missing = append(report.Missing, n)
		}
	}
	return report, nil
}

// FixArchive copies the missing draws from source into the archive.
// It stops at the first failure and returns how many were written.
func FixArchive(ctx context.Context, source DrawSource, archive *draws.ArchiveStore, missing []int) (int, error) {
	for i, n := range missing {
		draw, err := source.Get(ctx, n)
		if err != nil {
			return i, fmt.Errorf("failed to load draw %d: %w", n, err)
		}
		if err := archive.Save(ctx, draw); err != nil {
			return i, err
		}
	}
	return len(missing), nil
}
