package primary

import (
	"context"

	"github.com/example/codegen/internal/core/template"
)

// TemplateService defines the primary port for template catalog operations.
type TemplateService interface {
	// Catalog returns the merged catalog seen from folder, highest priority first.
	Catalog(ctx context.Context, folder string) (template.Catalog, error)

	// Resolve reports which template would be used for the file at path.
	Resolve(ctx context.Context, path string) (*TemplateResolution, error)

	// InitStarter writes the starter template set into dir. Existing files are
	// kept unless force is set. Returns the written paths.
	InitStarter(ctx context.Context, dir string, force bool) ([]string, error)
}

// TemplateResolution is the answer of TemplateService.Resolve.
type TemplateResolution struct {
	Path     string
	Found    bool
	Rule     template.Rule
	Category string
}
