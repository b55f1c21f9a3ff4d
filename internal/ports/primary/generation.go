// Package primary defines the primary ports (driving adapters) for the application.
package primary

import (
	"context"

	"github.com/example/codegen/internal/models"
)

// GenerationService defines the primary port for scaffolding operations.
type GenerationService interface {
	// Generate plans and writes every artifact for the entities named in the
	// request. Per-file failures are reported in the result; only errors that
	// abort the whole batch are returned.
	Generate(ctx context.Context, req GenerateRequest) (*BatchResult, error)

	// ListEntities returns the eligible entity classes of the project that
	// owns folder.
	ListEntities(ctx context.Context, folder string) ([]models.ClassDescriptor, error)
}

// GenerateRequest contains parameters for a generation batch.
type GenerateRequest struct {
	Folder string // selected folder inside the core project
	Input  string // comma/parenthesis structured names; prompt when empty
	DryRun bool   // plan and render without writing
}

// FileStatus is the outcome of one requested file.
type FileStatus string

const (
	StatusCreated FileStatus = "created"
	StatusSkipped FileStatus = "skipped" // output already existed
	StatusFailed  FileStatus = "failed"
	StatusFolder  FileStatus = "folder"
	StatusPlanned FileStatus = "planned" // dry run
)

// FileOutcome reports what happened to one requested file.
type FileOutcome struct {
	Input        string // input item the file was planned from
	Entity       string
	LogicalPath  string
	Path         string // on-disk path
	Template     string // resolved template path; empty on a miss
	Status       FileStatus
	CursorOffset int // -1 when no cursor marker
	Content      string
	Err          error
}

// BatchResult is the collected outcome of one Generate call, in plan order.
type BatchResult struct {
	BatchID  string
	Outcomes []FileOutcome
}

// Count returns the number of outcomes with the given status.
func (r *BatchResult) Count(status FileStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}
