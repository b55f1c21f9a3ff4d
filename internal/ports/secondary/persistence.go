// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import "context"

// DiagnosticRepository defines the secondary port for the persistent
// diagnostic sink. Diagnostics are immutable - no Update operations, but old
// entries can be pruned.
type DiagnosticRepository interface {
	// Create persists a new diagnostic entry.
	Create(ctx context.Context, record *DiagnosticRecord) error

	// GetByID retrieves a diagnostic entry by its ID.
	GetByID(ctx context.Context, id string) (*DiagnosticRecord, error)

	// List retrieves diagnostic entries matching the given filters, newest first.
	List(ctx context.Context, filters DiagnosticFilters) ([]*DiagnosticRecord, error)

	// PruneOlderThan deletes entries older than the given number of days.
	// Returns the number of deleted entries.
	PruneOlderThan(ctx context.Context, days int) (int, error)
}

// DiagnosticRecord represents a diagnostic entry as stored in persistence.
type DiagnosticRecord struct {
	ID        string
	BatchID   string
	Level     string // 'error', 'warn', 'info'
	Entity    string // Empty string means null
	Path      string // Empty string means null
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
