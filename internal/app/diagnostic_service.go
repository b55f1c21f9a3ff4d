package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/example/codegen/internal/ctxutil"
	"github.com/example/codegen/internal/ports/primary"
	"github.com/example/codegen/internal/ports/secondary"
)

// DiagnosticServiceImpl implements the DiagnosticService interface.
type DiagnosticServiceImpl struct {
	repo  secondary.DiagnosticRepository
	newID func() string
}

// NewDiagnosticService creates a new DiagnosticService with injected dependencies.
func NewDiagnosticService(repo secondary.DiagnosticRepository) *DiagnosticServiceImpl {
	return &DiagnosticServiceImpl{
		repo:  repo,
		newID: uuid.NewString,
	}
}

// ListDiagnostics retrieves entries matching the given filters.
func (s *DiagnosticServiceImpl) ListDiagnostics(ctx context.Context, filters primary.DiagnosticFilters) ([]*primary.Diagnostic, error) {
	records, err := s.repo.List(ctx, secondary.DiagnosticFilters{
		BatchID: filters.BatchID,
		Level:   filters.Level,
		Entity:  filters.Entity,
		Limit:   filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list diagnostics: %w", err)
	}

	diagnostics := make([]*primary.Diagnostic, len(records))
	for i, r := range records {
		diagnostics[i] = s.recordToDiagnostic(r)
	}
	return diagnostics, nil
}

// RecordFailure stores one per-file failure of a batch.
func (s *DiagnosticServiceImpl) RecordFailure(ctx context.Context, batchID string, outcome primary.FileOutcome) error {
	if batchID == "" {
		batchID = ctxutil.BatchIDFromContext(ctx)
	}
	message := "unknown failure"
	if outcome.Err != nil {
		message = outcome.Err.Error()
	}

	return s.repo.Create(ctx, &secondary.DiagnosticRecord{
		ID:      s.newID(),
		BatchID: batchID,
		Level:   "error",
		Entity:  outcome.Entity,
		Path:    outcome.Path,
		Message: message,
	})
}

// GetDiagnostic retrieves a single entry by ID.
func (s *DiagnosticServiceImpl) GetDiagnostic(ctx context.Context, id string) (*primary.Diagnostic, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.recordToDiagnostic(record), nil
}

// PruneDiagnostics deletes entries older than the specified number of days.
func (s *DiagnosticServiceImpl) PruneDiagnostics(ctx context.Context, olderThanDays int) (int, error) {
	return s.repo.PruneOlderThan(ctx, olderThanDays)
}

// Helper methods

func (s *DiagnosticServiceImpl) recordToDiagnostic(r *secondary.DiagnosticRecord) *primary.Diagnostic {
	return &primary.Diagnostic{
		ID:        r.ID,
		BatchID:   r.BatchID,
		Level:     r.Level,
		Entity:    r.Entity,
		Path:      r.Path,
		Message:   r.Message,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure DiagnosticServiceImpl implements the interface
var _ primary.DiagnosticService = (*DiagnosticServiceImpl)(nil)
