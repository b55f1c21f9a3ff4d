package sqlite

import (
	"errors"
	"testing"
	"time"
)

// stubRows yields n rows, then reports err from Err.
type stubRows struct {
	n   int
	err error
}

func (r *stubRows) Next() bool {
	if r.n == 0 {
		return false
	}
	r.n--
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	*dest[0].(*string) = "d-1"
	*dest[6].(*time.Time) = time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	return nil
}

func (r *stubRows) Err() error { return r.err }

func TestCollectDiagnostics(t *testing.T) {
	records, err := collectDiagnostics(&stubRows{n: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].CreatedAt != "2026-10-01T10:00:00Z" {
		t.Errorf("CreatedAt = %q", records[0].CreatedAt)
	}
}

func TestCollectDiagnostics_IterationError(t *testing.T) {
	interrupted := errors.New("interrupted")

	records, err := collectDiagnostics(&stubRows{n: 1, err: interrupted})

	if !errors.Is(err, interrupted) {
		t.Fatalf("expected iteration error, got %v", err)
	}
	if records != nil {
		t.Errorf("expected no partial result, got %d records", len(records))
	}
}
