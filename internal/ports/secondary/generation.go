package secondary

import (
	"context"

	"github.com/example/codegen/internal/core/template"
	"github.com/example/codegen/internal/models"
)

// ClassIntrospector returns the classes declared by a project. It replaces
// live reflection over compiled symbols with a static description.
type ClassIntrospector interface {
	// Classes returns every class found under projectRoot, in discovery order.
	Classes(ctx context.Context, projectRoot string) ([]models.ClassDescriptor, error)
}

// TemplateCatalogSource lists and reads template files.
type TemplateCatalogSource interface {
	// Directory lists the template files under dir, tagged with origin.
	// A missing directory yields an empty catalog.
	Directory(ctx context.Context, dir string, origin template.Origin) (template.Catalog, error)

	// Ancestors walks from dir up to the filesystem root collecting the
	// project-local template folders, nearest first.
	Ancestors(ctx context.Context, dir string) (template.Catalog, error)

	// Read returns the text of a template file.
	Read(ctx context.Context, path string) (string, error)
}

// ProjectRecord describes a project file found on disk.
type ProjectRecord struct {
	Name          string // project name, file name without extension
	FilePath      string
	RootDir       string
	RootNamespace string // from the project file; empty when not declared
}

// ProjectLocator finds project files around a selected folder.
type ProjectLocator interface {
	// Owning returns the nearest project whose directory contains dir.
	Owning(ctx context.Context, dir string) (*ProjectRecord, error)

	// FindByName searches below solutionDir for a project with the given name.
	// Returns nil without error when it does not exist.
	FindByName(ctx context.Context, solutionDir, name string) (*ProjectRecord, error)
}

// EntityPrompter asks the user for the generation input when none was given.
type EntityPrompter interface {
	// SelectEntity offers the entity names and returns the chosen input
	// string. An empty result means the user cancelled.
	SelectEntity(ctx context.Context, folder string, entities []string) (string, error)
}
