package filesystem

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/example/codegen/internal/ports/secondary"
)

// ProjectExt is the extension of the project files the locator looks for.
const ProjectExt = ".csproj"

// maxSearchDepth bounds FindByName below the solution directory.
const maxSearchDepth = 4

var skippedDirs = map[string]bool{
	"bin":          true,
	"obj":          true,
	".git":         true,
	".vs":          true,
	"node_modules": true,
}

// ProjectLocator implements secondary.ProjectLocator over project files.
type ProjectLocator struct {
	fs afero.Fs
}

// NewProjectLocator creates a project locator. A nil fs means the operating
// system filesystem.
func NewProjectLocator(fs afero.Fs) *ProjectLocator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &ProjectLocator{fs: fs}
}

// Owning returns the nearest project whose directory contains dir.
func (l *ProjectLocator) Owning(ctx context.Context, dir string) (*secondary.ProjectRecord, error) {
	current := filepath.Clean(dir)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := l.projectIn(current)
		if err != nil {
			return nil, err
		}
		if record != nil {
			return record, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return nil, nil
		}
		current = parent
	}
}

// FindByName searches below solutionDir for <name>.csproj, breadth first.
func (l *ProjectLocator) FindByName(ctx context.Context, solutionDir, name string) (*secondary.ProjectRecord, error) {
	want := name + ProjectExt
	level := []string{filepath.Clean(solutionDir)}

	for depth := 0; depth <= maxSearchDepth && len(level) > 0; depth++ {
		var next []string
		for _, dir := range level {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			entries, err := afero.ReadDir(l.fs, dir)
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", dir, err)
			}

			for _, entry := range entries {
				if entry.IsDir() {
					if !skippedDirs[entry.Name()] {
						next = append(next, filepath.Join(dir, entry.Name()))
					}
					continue
				}
				if strings.EqualFold(entry.Name(), want) {
					return l.load(filepath.Join(dir, entry.Name()))
				}
			}
		}
		level = next
	}
	return nil, nil
}

// projectIn returns the first project file directly inside dir.
func (l *ProjectLocator) projectIn(dir string) (*secondary.ProjectRecord, error) {
	entries, err := afero.ReadDir(l.fs, dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var candidates []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ProjectExt) {
			candidates = append(candidates, entry.Name())
		}
	}
	if len(candidates) == 0 {
		return nil, nil
	}
	sort.Strings(candidates)
	return l.load(filepath.Join(dir, candidates[0]))
}

type projectFile struct {
	PropertyGroups []struct {
		RootNamespace string `xml:"RootNamespace"`
	} `xml:"PropertyGroup"`
}

func (l *ProjectLocator) load(path string) (*secondary.ProjectRecord, error) {
	record := &secondary.ProjectRecord{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		FilePath: path,
		RootDir:  filepath.Dir(path),
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project %s: %w", path, err)
	}

	var parsed projectFile
	if err := xml.Unmarshal(data, &parsed); err != nil {
		// An unreadable project file still locates the project; the
		// namespace then comes from the project name.
		return record, nil
	}
	for _, group := range parsed.PropertyGroups {
		if ns := strings.TrimSpace(group.RootNamespace); ns != "" {
			record.RootNamespace = ns
			break
		}
	}
	return record, nil
}

// Ensure ProjectLocator implements the interface
var _ secondary.ProjectLocator = (*ProjectLocator)(nil)
