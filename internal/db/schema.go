package db

import "database/sql"

// SchemaSQL is the complete schema of the diagnostics database.
//
// This is the single source of truth for the schema. Repository tests load it
// through GetSchemaSQL() instead of declaring their own tables, so a column
// referenced in code but missing here fails at test time with "no such column".
const SchemaSQL = `
-- Diagnostics (per-file generation failures, immutable)
CREATE TABLE IF NOT EXISTS diagnostics (
	id TEXT PRIMARY KEY,
	batch_id TEXT NOT NULL,
	level TEXT NOT NULL CHECK(level IN ('error', 'warn', 'info')) DEFAULT 'error',
	entity TEXT,
	path TEXT,
	message TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_diagnostics_batch ON diagnostics(batch_id);
CREATE INDEX IF NOT EXISTS idx_diagnostics_created ON diagnostics(created_at);
`

// InitSchema creates the database schema. Every statement is idempotent.
func InitSchema(conn *sql.DB) error {
	_, err := conn.Exec(SchemaSQL)
	return err
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
