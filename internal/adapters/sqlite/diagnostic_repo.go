// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/codegen/internal/ports/secondary"
)

// DiagnosticRepository implements secondary.DiagnosticRepository with SQLite.
type DiagnosticRepository struct {
	db *sql.DB
}

// NewDiagnosticRepository creates a new SQLite diagnostic repository.
func NewDiagnosticRepository(db *sql.DB) *DiagnosticRepository {
	return &DiagnosticRepository{db: db}
}

// Create persists a new diagnostic entry.
func (r *DiagnosticRepository) Create(ctx context.Context, record *secondary.DiagnosticRecord) error {
	var entity, path sql.NullString
	if record.Entity != "" {
		entity = sql.NullString{String: record.Entity, Valid: true}
	}
	if record.Path != "" {
		path = sql.NullString{String: record.Path, Valid: true}
	}

	level := record.Level
	if level == "" {
		level = "error"
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO diagnostics (id, batch_id, level, entity, path, message) VALUES (?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.BatchID,
		level,
		entity,
		path,
		record.Message,
	)
	if err != nil {
		return fmt.Errorf("failed to create diagnostic: %w", err)
	}

	return nil
}

// GetByID retrieves a diagnostic entry by its ID.
func (r *DiagnosticRepository) GetByID(ctx context.Context, id string) (*secondary.DiagnosticRecord, error) {
	var (
		entity    sql.NullString
		path      sql.NullString
		createdAt time.Time
	)

	record := &secondary.DiagnosticRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, batch_id, level, entity, path, message, created_at FROM diagnostics WHERE id = ?`,
		id,
	).Scan(&record.ID,
		&record.BatchID,
		&record.Level,
		&entity,
		&path,
		&record.Message,
		&createdAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("diagnostic %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get diagnostic: %w", err)
	}
	record.Entity = entity.String
	record.Path = path.String
	record.CreatedAt = createdAt.Format(time.RFC3339)

	return record, nil
}

// List retrieves diagnostic entries matching the given filters.
func (r *DiagnosticRepository) List(ctx context.Context, filters secondary.DiagnosticFilters) ([]*secondary.DiagnosticRecord, error) {
	query := `SELECT id, batch_id, level, entity, path, message, created_at FROM diagnostics WHERE 1=1`
	args := []any{}

	if filters.BatchID != "" {
		query += " AND batch_id = ?"
		args = append(args, filters.BatchID)
	}

	if filters.Level != "" {
		query += " AND level = ?"
		args = append(args, filters.Level)
	}

	if filters.Entity != "" {
		query += " AND entity = ?"
		args = append(args, filters.Entity)
	}

	query += " ORDER BY created_at DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list diagnostics: %w", err)
	}
	defer rows.Close()

	return collectDiagnostics(rows)
}

// rowIterator is the part of *sql.Rows that collectDiagnostics reads.
type rowIterator interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func collectDiagnostics(rows rowIterator) ([]*secondary.DiagnosticRecord, error) {
	var records []*secondary.DiagnosticRecord
	for rows.Next() {
		var (
			entity    sql.NullString
			path      sql.NullString
			createdAt time.Time
		)

		record := &secondary.DiagnosticRecord{}
		err := rows.Scan(&record.ID,
			&record.BatchID,
			&record.Level,
			&entity,
			&path,
			&record.Message,
			&createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan diagnostic: %w", err)
		}
		record.Entity = entity.String
		record.Path = path.String
		record.CreatedAt = createdAt.Format(time.RFC3339)

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate diagnostics: %w", err)
	}

	return records, nil
}

// PruneOlderThan deletes entries older than the given number of days.
func (r *DiagnosticRepository) PruneOlderThan(ctx context.Context, days int) (int, error) {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM diagnostics WHERE created_at < datetime('now', ?)",
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to prune diagnostics: %w", err)
	}

	count, _ := result.RowsAffected()
	return int(count), nil
}

// Ensure DiagnosticRepository implements the interface
var _ secondary.DiagnosticRepository = (*DiagnosticRepository)(nil)
