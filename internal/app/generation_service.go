package app

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/example/codegen/internal/core/batch"
	"github.com/example/codegen/internal/core/output"
	"github.com/example/codegen/internal/core/template"
	"github.com/example/codegen/internal/ctxutil"
	"github.com/example/codegen/internal/errkind"
	"github.com/example/codegen/internal/logger"
	"github.com/example/codegen/internal/models"
	"github.com/example/codegen/internal/ports/primary"
	"github.com/example/codegen/internal/ports/secondary"
)

// GenerationConfig holds the settings a batch runs with.
type GenerationConfig struct {
	Variant       models.Variant
	RootNamespace string // {rootnamespace}; empty means the solution prefix
	PrimaryKey    string
	BaseMarkers   []string
	LineEnding    string
	Categories    []string
	Artifacts     batch.Artifacts
	TemplateExt   string

	UserTemplateDir string
	// BundledTemplateDir is the starter set root inside the bundled source.
	BundledTemplateDir string

	CoreSuffix           string
	InfrastructureSuffix string
	ApiSuffix            string

	Concurrency int
}

// GenerationServiceImpl implements the GenerationService interface.
type GenerationServiceImpl struct {
	cfg          GenerationConfig
	locator      secondary.ProjectLocator
	introspector secondary.ClassIntrospector
	templates    secondary.TemplateCatalogSource
	bundled      secondary.TemplateCatalogSource
	workspace    secondary.WorkspaceAdapter
	prompter     secondary.EntityPrompter
	diagnostics  primary.DiagnosticService
	executor     EffectExecutor
	newBatchID   func() string
}

// NewGenerationService creates a new GenerationService with injected dependencies.
// diagnostics may be nil, in which case failures are only logged.
func NewGenerationService(
	cfg GenerationConfig,
	locator secondary.ProjectLocator,
	introspector secondary.ClassIntrospector,
	templates secondary.TemplateCatalogSource,
	bundled secondary.TemplateCatalogSource,
	workspace secondary.WorkspaceAdapter,
	prompter secondary.EntityPrompter,
	diagnostics primary.DiagnosticService,
	executor EffectExecutor,
) *GenerationServiceImpl {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &GenerationServiceImpl{
		cfg:          cfg,
		locator:      locator,
		introspector: introspector,
		templates:    templates,
		bundled:      bundled,
		workspace:    workspace,
		prompter:     prompter,
		diagnostics:  diagnostics,
		executor:     executor,
		newBatchID:   uuid.NewString,
	}
}

// projectTrio is the core project plus its two siblings.
type projectTrio struct {
	prefix         string
	core           *secondary.ProjectRecord
	infrastructure *secondary.ProjectRecord
	api            *secondary.ProjectRecord
}

// unit is one requested file or folder of a batch.
type unit struct {
	input  string
	target models.GenerationTarget
	folder bool
	class  models.ClassDescriptor
	err    error // set when the unit failed during planning
}

// Generate plans and writes every artifact for the entities named in the request.
func (s *GenerationServiceImpl) Generate(ctx context.Context, req primary.GenerateRequest) (*primary.BatchResult, error) {
	batchID := s.newBatchID()
	ctx = ctxutil.WithBatchID(ctx, batchID)
	log := logger.FromContext(ctx).With("batch", batchID)
	ctx = logger.WithLogger(ctx, log)

	result := &primary.BatchResult{BatchID: batchID}

	// 1. Resolve the destination context; failures abort the batch
	trio, err := s.locateTrio(ctx, req.Folder)
	if err != nil {
		return nil, err
	}
	genCtx := s.generationContext(trio)

	// 2. Collect eligible entities
	entities, err := s.entitiesIn(ctx, trio.core.RootDir)
	if err != nil {
		return nil, err
	}

	// 3. Read or prompt for the input
	input := strings.TrimLeft(strings.TrimSpace(req.Input), `/\`)
	if input == "" {
		input, err = s.prompter.SelectEntity(ctx, req.Folder, classNames(entities))
		if err != nil {
			return nil, err
		}
		input = strings.TrimLeft(strings.TrimSpace(input), `/\`)
		if input == "" {
			log.Info("generation cancelled")
			return result, nil
		}
	}

	// 4. Plan every unit before dispatch
	units := s.planUnits(output.ParseInput(input), entities, trio, req.Folder)

	base, err := s.baseCatalog(ctx)
	if err != nil {
		return nil, err
	}

	// 5. Dispatch, one unit of work per file, bounded join
	outcomes := make([]primary.FileOutcome, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Concurrency)
	for i, u := range units {
		g.Go(func() error {
			outcomes[i] = s.runUnit(gctx, u, base, genCtx, req.DryRun)
			return nil
		})
	}
	_ = g.Wait()
	result.Outcomes = outcomes

	// 6. Record failures in plan order
	for _, o := range outcomes {
		if o.Status != primary.StatusFailed || s.diagnostics == nil {
			continue
		}
		if err := s.diagnostics.RecordFailure(ctx, batchID, o); err != nil {
			log.Warn("failed to record diagnostic", "path", o.Path, "error", err)
		}
	}

	log.Info("generation finished",
		"created", result.Count(primary.StatusCreated),
		"skipped", result.Count(primary.StatusSkipped),
		"failed", result.Count(primary.StatusFailed),
		"planned", result.Count(primary.StatusPlanned),
	)
	return result, nil
}

// ListEntities returns the eligible entity classes of the core project that
// owns folder.
func (s *GenerationServiceImpl) ListEntities(ctx context.Context, folder string) ([]models.ClassDescriptor, error) {
	core, err := s.locateCore(ctx, folder)
	if err != nil {
		return nil, err
	}
	return s.entitiesIn(ctx, core.RootDir)
}

func (s *GenerationServiceImpl) locateCore(ctx context.Context, folder string) (*secondary.ProjectRecord, error) {
	hint := fmt.Sprintf("select a folder within the %s project and try again", s.cfg.CoreSuffix)

	core, err := s.locator.Owning(ctx, folder)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to locate project for %s", folder)
	}
	if core == nil {
		return nil, errkind.AmbiguousSelection(hint, "no project found around %s", folder)
	}
	if !strings.HasSuffix(core.Name, s.cfg.CoreSuffix) || core.Name == s.cfg.CoreSuffix {
		return nil, errkind.AmbiguousSelection(hint, "%s is in project %s, not a %s project", folder, core.Name, s.cfg.CoreSuffix)
	}
	return core, nil
}

func (s *GenerationServiceImpl) locateTrio(ctx context.Context, folder string) (*projectTrio, error) {
	core, err := s.locateCore(ctx, folder)
	if err != nil {
		return nil, err
	}

	trio := &projectTrio{
		prefix: strings.TrimSuffix(core.Name, s.cfg.CoreSuffix),
		core:   core,
	}
	solutionDir := filepath.Dir(core.RootDir)

	siblings := []struct {
		suffix string
		dst    **secondary.ProjectRecord
	}{
		{s.cfg.InfrastructureSuffix, &trio.infrastructure},
		{s.cfg.ApiSuffix, &trio.api},
	}
	for _, sib := range siblings {
		name := trio.prefix + sib.suffix
		rec, err := s.locator.FindByName(ctx, solutionDir, name)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to locate project %s", name)
		}
		if rec == nil {
			return nil, errkind.AmbiguousSelection(
				fmt.Sprintf("add a %s project next to %s", name, core.Name),
				"project %s not found under %s", name, solutionDir)
		}
		*sib.dst = rec
	}
	return trio, nil
}

func projectNamespace(rec *secondary.ProjectRecord) string {
	if rec.RootNamespace != "" {
		return rec.RootNamespace
	}
	return rec.Name
}

// generationContext computes the values shared by every file of the batch.
// It is built once and only read afterwards.
func (s *GenerationServiceImpl) generationContext(trio *projectTrio) models.GenerationContext {
	root := s.cfg.RootNamespace
	if root == "" {
		root = trio.prefix
	}
	return models.GenerationContext{
		Variant:              s.cfg.Variant,
		RootNamespace:        root,
		DomainRootNs:         projectNamespace(trio.core),
		InfrastructureRootNs: projectNamespace(trio.infrastructure),
		ApiRootNs:            projectNamespace(trio.api),
		PrimaryKey:           s.cfg.PrimaryKey,
		LineEnding:           s.cfg.LineEnding,
		Categories:           s.cfg.Categories,
		TemplateExt:          s.cfg.TemplateExt,
	}
}

// entitiesIn returns the distinct entity classes of a project in discovery order.
func (s *GenerationServiceImpl) entitiesIn(ctx context.Context, projectRoot string) ([]models.ClassDescriptor, error) {
	classes, err := s.introspector.Classes(ctx, projectRoot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read classes of %s", projectRoot)
	}

	seen := make(map[string]bool)
	var entities []models.ClassDescriptor
	for _, c := range classes {
		if !c.IsEntity(s.cfg.BaseMarkers) || seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		entities = append(entities, c)
	}
	return entities, nil
}

func classNames(classes []models.ClassDescriptor) []string {
	names := make([]string, len(classes))
	for i, c := range classes {
		names[i] = c.Name
	}
	return names
}

// planUnits expands parsed input items into units: folder items map to one
// folder, every other item names an entity whose artifacts are all planned.
func (s *GenerationServiceImpl) planUnits(items []string, entities []models.ClassDescriptor, trio *projectTrio, folder string) []unit {
	projects := map[models.Role]batch.ProjectInput{
		models.RoleCore: {
			Root:          trio.core.RootDir,
			RootNamespace: projectNamespace(trio.core),
			Destination:   folder,
		},
		models.RoleInfrastructure: {
			Root:          trio.infrastructure.RootDir,
			RootNamespace: projectNamespace(trio.infrastructure),
			Destination:   trio.infrastructure.RootDir,
		},
		models.RoleAPI: {
			Root:          trio.api.RootDir,
			RootNamespace: projectNamespace(trio.api),
			Destination:   trio.api.RootDir,
		},
	}

	planned := make(map[string]bool)
	var units []unit
	for _, item := range items {
		if output.IsFolder(item) {
			units = append(units, unit{
				input:  item,
				folder: true,
				target: models.GenerationTarget{
					LogicalPath:       item,
					DestinationFolder: folder,
					ProjectRoot:       trio.core.RootDir,
					RootNamespace:     projectNamespace(trio.core),
					Role:              models.RoleCore,
				},
			})
			continue
		}

		name := entityName(item)
		if planned[name] {
			continue
		}
		planned[name] = true

		class, ok := findClass(entities, name)
		if !ok {
			units = append(units, unit{
				input:  item,
				target: models.GenerationTarget{EntityName: name},
				err:    errkind.EntityNotFound(name),
			})
			continue
		}

		for _, t := range batch.PlanTargets(name, s.cfg.Artifacts, projects) {
			units = append(units, unit{
				input:  item,
				target: t,
				folder: output.IsFolder(t.LogicalPath),
				class:  class,
			})
		}
	}
	return units
}

// entityName is the file name of an input item without its extension.
func entityName(item string) string {
	base := path.Base(strings.ReplaceAll(item, `\`, "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

func findClass(classes []models.ClassDescriptor, name string) (models.ClassDescriptor, bool) {
	for _, c := range classes {
		if c.Name == name {
			return c, true
		}
	}
	return models.ClassDescriptor{}, false
}

// baseCatalog lists the user and bundled template directories. Project-local
// folders are merged in front of it per target.
func (s *GenerationServiceImpl) baseCatalog(ctx context.Context) (template.Catalog, error) {
	user, err := s.templates.Directory(ctx, s.cfg.UserTemplateDir, template.OriginUser)
	if err != nil {
		return nil, err
	}
	var bundled template.Catalog
	if s.bundled != nil {
		bundled, err = s.bundled.Directory(ctx, s.cfg.BundledTemplateDir, template.OriginBundled)
		if err != nil {
			return nil, err
		}
	}
	return template.Merge(user, bundled), nil
}

// runUnit performs one requested file. It never returns an error: failures
// are logged and reported in the outcome.
func (s *GenerationServiceImpl) runUnit(ctx context.Context, u unit, base template.Catalog, genCtx models.GenerationContext, dryRun bool) primary.FileOutcome {
	outcome := primary.FileOutcome{
		Input:        u.input,
		Entity:       u.target.EntityName,
		LogicalPath:  u.target.LogicalPath,
		CursorOffset: -1,
	}
	log := logger.FromContext(ctx)

	fail := func(err error) primary.FileOutcome {
		outcome.Status = primary.StatusFailed
		outcome.Err = err
		log.Error("generation failed", "input", u.input, "entity", outcome.Entity, "path", outcome.Path, "error", err)
		return outcome
	}

	if u.err != nil {
		return fail(u.err)
	}

	// Names are validated before any I/O for the file
	if err := output.ValidatePath(u.target.LogicalPath); err != nil {
		return fail(err)
	}

	if u.folder {
		plan := batch.PlanFolder(u.target)
		outcome.Path = plan.OutputPath
		outcome.Status = primary.StatusFolder
		if dryRun {
			return outcome
		}
		if err := s.executor.Execute(ctx, plan.Effects); err != nil {
			return fail(err)
		}
		return outcome
	}

	outcome.Path = batch.OutputPath(u.target)
	exists, err := s.workspace.FileExists(ctx, outcome.Path)
	if err != nil {
		return fail(err)
	}

	var text string
	if !exists {
		text, outcome.Template, err = s.loadTemplate(ctx, u.target, base, genCtx)
		if err != nil {
			return fail(err)
		}
		if outcome.Template == "" {
			log.Debug("no template found", "path", outcome.Path)
		}
	}

	plan := batch.PlanFile(batch.FileInput{
		Target:       u.target,
		Class:        u.class,
		Context:      genCtx,
		OutputExists: exists,
		Template:     text,
	})
	outcome.Content = plan.Content
	outcome.CursorOffset = plan.CursorOffset

	if dryRun {
		outcome.Status = primary.StatusPlanned
		if plan.Skip {
			outcome.Status = primary.StatusSkipped
		}
		return outcome
	}

	if err := s.executor.Execute(ctx, plan.Effects); err != nil {
		return fail(err)
	}
	outcome.Status = primary.StatusCreated
	if plan.Skip {
		outcome.Status = primary.StatusSkipped
	}
	return outcome
}

// loadTemplate resolves and reads the template for target. A miss returns
// empty text and path.
func (s *GenerationServiceImpl) loadTemplate(ctx context.Context, target models.GenerationTarget, base template.Catalog, genCtx models.GenerationContext) (string, string, error) {
	source := batch.SourcePath(target)

	nearest, err := s.templates.Ancestors(ctx, filepath.Dir(source))
	if err != nil {
		return "", "", err
	}
	catalog := template.Merge(nearest, base)

	res, ok := template.Resolve(catalog, template.Target{
		Path:        source,
		ProjectRoot: target.ProjectRoot,
	}, genCtx.Categories, genCtx.TemplateExt)
	if !ok {
		return "", "", nil
	}

	text, err := s.sourceFor(catalog, res.Path).Read(ctx, res.Path)
	if err != nil {
		return "", "", err
	}
	return text, res.Path, nil
}

// sourceFor returns the catalog source that can read the entry at p.
func (s *GenerationServiceImpl) sourceFor(catalog template.Catalog, p string) secondary.TemplateCatalogSource {
	for _, e := range catalog {
		if e.AbsolutePath == p && e.Origin == template.OriginBundled && s.bundled != nil {
			return s.bundled
		}
	}
	return s.templates
}

// Ensure GenerationServiceImpl implements the interface
var _ primary.GenerationService = (*GenerationServiceImpl)(nil)
