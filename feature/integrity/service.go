package integrity

import (
	"context"
	"errors"

	"megasena-monitor/core/storage"
	"megasena-monitor/feature/draws"
	"megasena-monitor/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrStorageDisabled is returned by bucket checks when no storage is configured.
var ErrStorageDisabled = errors.New("storage is not configured")

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	db      *gorm.DB
	draws   checks.DrawSource
	columns map[string][]string
	logger  *zap.Logger
}

// NewService creates a new integrity service. client may be nil when no
// archive bucket is configured.
func NewService(client storage.Client, bucket string, db *gorm.DB, source checks.DrawSource, columns map[string][]string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		bucket:  bucket,
		db:      db,
		draws:   source,
		columns: columns,
		logger:  logger,
	}
}

// CheckSchema compares the database with the bet and draw tables.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, s.columns)
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckStructure(ctx, s.client, s.bucket)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	if s.client == nil {
		return ErrStorageDisabled
	}
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckArchive returns the stored draws missing from the archive.
func (s *Service) CheckArchive(ctx context.Context) (*checks.ArchiveReport, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return checks.CheckArchive(ctx, s.draws, draws.NewArchiveStore(s.client, s.bucket))
}

// FixArchive archives the given stored draws.
func (s *Service) FixArchive(ctx context.Context, missing []int) (int, error) {
	if s.client == nil {
		return 0, ErrStorageDisabled
	}
	return checks.FixArchive(ctx, s.draws, draws.NewArchiveStore(s.client, s.bucket), missing)
}

// RunAll runs every check and collects the results by name.
func (s *Service) RunAll(ctx context.Context) map[string]any {
	report := make(map[string]any)

	if schema, err := s.CheckSchema(); err != nil {
		report["schema"] = errorEntry(err)
	} else {
		report["schema"] = schema
	}

	if missing, err := s.CheckStructure(ctx); err != nil {
		report["structure"] = errorEntry(err)
	} else {
		report["structure"] = map[string]any{"status": "ok", "missing": missing}
	}

	if archive, err := s.CheckArchive(ctx); err != nil {
		report["archive"] = errorEntry(err)
	} else {
		report["archive"] = archive
	}

	return report
}

func errorEntry(err error) map[string]any {
	if errors.Is(err, ErrStorageDisabled) {
		return map[string]any{"status": "skipped", "reason": err.Error()}
	}
	return map[string]any{"status": "error", "error": err.Error()}
}
