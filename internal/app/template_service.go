package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/example/codegen/internal/core/effects"
	"github.com/example/codegen/internal/core/template"
	"github.com/example/codegen/internal/ports/primary"
	"github.com/example/codegen/internal/ports/secondary"
)

// TemplateServiceImpl implements the TemplateService interface.
type TemplateServiceImpl struct {
	cfg       GenerationConfig
	locator   secondary.ProjectLocator
	templates secondary.TemplateCatalogSource
	bundled   secondary.TemplateCatalogSource
	workspace secondary.WorkspaceAdapter
	executor  EffectExecutor
}

// NewTemplateService creates a new TemplateService with injected dependencies.
func NewTemplateService(
	cfg GenerationConfig,
	locator secondary.ProjectLocator,
	templates secondary.TemplateCatalogSource,
	bundled secondary.TemplateCatalogSource,
	workspace secondary.WorkspaceAdapter,
	executor EffectExecutor,
) *TemplateServiceImpl {
	return &TemplateServiceImpl{
		cfg:       cfg,
		locator:   locator,
		templates: templates,
		bundled:   bundled,
		workspace: workspace,
		executor:  executor,
	}
}

// Catalog returns the merged catalog seen from folder: nearest project
// folders first, then the user directory, then the bundled set.
func (s *TemplateServiceImpl) Catalog(ctx context.Context, folder string) (template.Catalog, error) {
	nearest, err := s.templates.Ancestors(ctx, folder)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list project templates")
	}
	user, err := s.templates.Directory(ctx, s.cfg.UserTemplateDir, template.OriginUser)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user templates")
	}
	bundled, err := s.bundledCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return template.Merge(nearest, user, bundled), nil
}

// Resolve reports which template would be used for the file at path.
func (s *TemplateServiceImpl) Resolve(ctx context.Context, path string) (*primary.TemplateResolution, error) {
	dir := filepath.Dir(path)

	projectRoot := dir
	project, err := s.locator.Owning(ctx, dir)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to locate project for %s", path)
	}
	if project != nil {
		projectRoot = project.RootDir
	}

	catalog, err := s.Catalog(ctx, dir)
	if err != nil {
		return nil, err
	}

	res, ok := template.Resolve(catalog, template.Target{Path: path, ProjectRoot: projectRoot}, s.cfg.Categories, s.cfg.TemplateExt)
	return &primary.TemplateResolution{
		Path:     res.Path,
		Found:    ok,
		Rule:     res.Rule,
		Category: res.Category,
	}, nil
}

// InitStarter copies the bundled starter set into dir, keeping its layout.
func (s *TemplateServiceImpl) InitStarter(ctx context.Context, dir string, force bool) ([]string, error) {
	if s.bundled == nil {
		return nil, errors.New("no bundled templates available")
	}
	entries, err := s.bundledCatalog(ctx)
	if err != nil {
		return nil, err
	}

	root := strings.TrimSuffix(filepath.ToSlash(s.cfg.BundledTemplateDir), "/") + "/"

	var written []string
	for _, e := range entries {
		rel := strings.TrimPrefix(filepath.ToSlash(e.AbsolutePath), root)
		dest := filepath.Join(dir, filepath.FromSlash(rel))

		exists, err := s.workspace.FileExists(ctx, dest)
		if err != nil {
			return written, err
		}
		if exists && !force {
			continue
		}

		text, err := s.bundled.Read(ctx, e.AbsolutePath)
		if err != nil {
			return written, err
		}

		effs := []effects.Effect{
			effects.FileEffect{Operation: effects.FileMkdir, Path: filepath.Dir(dest), Mode: 0o755},
			effects.FileEffect{Operation: effects.FileWrite, Path: dest, Content: []byte(text), Mode: 0o644},
		}
		if err := s.executor.Execute(ctx, effs); err != nil {
			return written, errors.Wrapf(err, "failed to write %s", dest)
		}
		written = append(written, dest)
	}
	return written, nil
}

func (s *TemplateServiceImpl) bundledCatalog(ctx context.Context) (template.Catalog, error) {
	if s.bundled == nil {
		return nil, nil
	}
	catalog, err := s.bundled.Directory(ctx, s.cfg.BundledTemplateDir, template.OriginBundled)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bundled templates")
	}
	return catalog, nil
}

// Ensure TemplateServiceImpl implements the interface
var _ primary.TemplateService = (*TemplateServiceImpl)(nil)
