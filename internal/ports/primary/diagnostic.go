package primary

import "context"

// DiagnosticService defines the primary port for the persistent diagnostic log.
type DiagnosticService interface {
	// ListDiagnostics retrieves entries matching the given filters.
	ListDiagnostics(ctx context.Context, filters DiagnosticFilters) ([]*Diagnostic, error)

	// GetDiagnostic retrieves a single entry by ID.
	GetDiagnostic(ctx context.Context, id string) (*Diagnostic, error)

	// RecordFailure stores one per-file failure of a batch.
	RecordFailure(ctx context.Context, batchID string, outcome FileOutcome) error

	// PruneDiagnostics deletes entries older than the specified number of days.
	PruneDiagnostics(ctx context.Context, olderThanDays int) (int, error)
}

// Diagnostic represents a diagnostic entry at the port boundary.
type Diagnostic struct {
	ID        string
	BatchID   string
	Level     string
	Entity    string
	Path      string
	Message   string
	CreatedAt string
}

// DiagnosticFilters contains filter options for querying diagnostics.
type DiagnosticFilters struct {
	BatchID string
	Level   string
	Entity  string
	Limit   int
}
