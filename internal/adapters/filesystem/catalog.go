package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/example/codegen/internal/core/template"
	"github.com/example/codegen/internal/ports/secondary"
)

// TemplateCatalog implements secondary.TemplateCatalogSource by walking
// template directories.
type TemplateCatalog struct {
	fs      afero.Fs
	dirName string // reserved project-local folder, e.g. ".templates"
	pattern string // glob relative to a template root, e.g. "**/*.txt"
}

// NewTemplateCatalog creates a catalog source matching files with the given
// template extension. A nil fs means the operating system filesystem.
func NewTemplateCatalog(fs afero.Fs, dirName, templateExt string) *TemplateCatalog {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &TemplateCatalog{
		fs:      fs,
		dirName: dirName,
		pattern: "**/*" + templateExt,
	}
}

// Directory lists the template files under dir in lexical walk order.
func (c *TemplateCatalog) Directory(ctx context.Context, dir string, origin template.Origin) (template.Catalog, error) {
	if dir == "" {
		return nil, nil
	}
	exists, err := afero.DirExists(c.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to check template directory %s: %w", dir, err)
	}
	if !exists {
		return nil, nil
	}

	var catalog template.Catalog
	err = afero.Walk(c.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		matched, err := doublestar.Match(c.pattern, filepath.ToSlash(rel))
		if err != nil {
			return fmt.Errorf("invalid template pattern %q: %w", c.pattern, err)
		}
		if matched {
			catalog = append(catalog, template.CatalogEntry{AbsolutePath: path, Origin: origin})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list templates in %s: %w", dir, err)
	}
	return catalog, nil
}

// Ancestors collects every reserved template folder from dir up to the
// filesystem root, nearest first.
func (c *TemplateCatalog) Ancestors(ctx context.Context, dir string) (template.Catalog, error) {
	var catalog template.Catalog

	current := filepath.Clean(dir)
	for {
		entries, err := c.Directory(ctx, filepath.Join(current, c.dirName), template.OriginProject)
		if err != nil {
			return nil, err
		}
		catalog = append(catalog, entries...)

		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	return catalog, nil
}

// Read returns the text of a template file.
func (c *TemplateCatalog) Read(ctx context.Context, path string) (string, error) {
	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return string(data), nil
}

// Ensure TemplateCatalog implements the interface
var _ secondary.TemplateCatalogSource = (*TemplateCatalog)(nil)
