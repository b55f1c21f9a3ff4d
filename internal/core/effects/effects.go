// Package effects defines effect types as data structures representing I/O operations.
// Planners in internal/core return effects; the app layer executes them.
// Effects are pure data - they describe what should happen, not how.
package effects

// Effect is the base interface for all effects.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// File operations understood by the executor.
const (
	FileMkdir = "mkdir"
	FileWrite = "write"
)

// LogEffect represents a logging operation.
type LogEffect struct {
	Level   string // "debug", "info", "warn", "error"
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// FileEffect represents a file system operation.
type FileEffect struct {
	Operation string // FileMkdir or FileWrite
	Path      string
	Content   []byte // For write operations
	Mode      uint32 // File permissions
	Exclusive bool   // write fails if the file already exists
}

func (e FileEffect) EffectType() string { return "file" }
