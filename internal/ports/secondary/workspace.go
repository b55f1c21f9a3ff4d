package secondary

import "context"

// WorkspaceAdapter defines the secondary port for filesystem operations on
// the generation destination.
type WorkspaceAdapter interface {
	// Directory operations
	CreateDirectory(ctx context.Context, path string) error
	DirectoryExists(ctx context.Context, path string) (bool, error)

	// File operations
	FileExists(ctx context.Context, path string) (bool, error)
	// WriteFileExclusive creates path and fails if it already exists.
	WriteFileExclusive(ctx context.Context, path string, data []byte, mode uint32) error
	WriteFile(ctx context.Context, path string, data []byte, mode uint32) error
}
