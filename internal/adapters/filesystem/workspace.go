// Package filesystem contains filesystem-based adapter implementations.
// All adapters work on an afero.Fs so tests can run against memory.
package filesystem

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/afero"

	"github.com/example/codegen/internal/ports/secondary"
)

// WorkspaceAdapter implements secondary.WorkspaceAdapter for filesystem operations.
type WorkspaceAdapter struct {
	fs afero.Fs
}

// NewWorkspaceAdapter creates a new filesystem workspace adapter.
// A nil fs means the operating system filesystem.
func NewWorkspaceAdapter(fs afero.Fs) *WorkspaceAdapter {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &WorkspaceAdapter{fs: fs}
}

// CreateDirectory creates a directory and any missing parents.
func (a *WorkspaceAdapter) CreateDirectory(ctx context.Context, path string) error {
	if err := a.fs.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// DirectoryExists checks if a directory exists.
func (a *WorkspaceAdapter) DirectoryExists(ctx context.Context, path string) (bool, error) {
	return afero.DirExists(a.fs, path)
}

// FileExists checks if a path exists and is not a directory.
func (a *WorkspaceAdapter) FileExists(ctx context.Context, path string) (bool, error) {
	info, err := a.fs.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	return !info.IsDir(), nil
}

// WriteFileExclusive creates path and writes data. It fails if the file
// already exists.
func (a *WorkspaceAdapter) WriteFileExclusive(ctx context.Context, path string, data []byte, mode uint32) error {
	f, err := a.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, os.FileMode(mode))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// WriteFile writes data, replacing any existing file.
func (a *WorkspaceAdapter) WriteFile(ctx context.Context, path string, data []byte, mode uint32) error {
	if err := afero.WriteFile(a.fs, path, data, os.FileMode(mode)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Ensure WorkspaceAdapter implements the interface
var _ secondary.WorkspaceAdapter = (*WorkspaceAdapter)(nil)
