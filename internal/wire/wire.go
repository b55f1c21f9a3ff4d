// Package wire provides dependency injection for the codegen application.
// It creates singleton services with lazy initialization.
package wire

import (
	"io"
	"log"
	"os"
	"sync"

	"github.com/spf13/afero"

	cliadapter "github.com/example/codegen/internal/adapters/cli"
	"github.com/example/codegen/internal/adapters/filesystem"
	"github.com/example/codegen/internal/adapters/introspect"
	"github.com/example/codegen/internal/adapters/prompt"
	"github.com/example/codegen/internal/adapters/sqlite"
	"github.com/example/codegen/internal/app"
	"github.com/example/codegen/internal/config"
	"github.com/example/codegen/internal/db"
	"github.com/example/codegen/internal/ports/primary"
	"github.com/example/codegen/internal/ports/secondary"
	"github.com/example/codegen/internal/templates"
)

var (
	configPath string

	cfg               *config.Config
	generationService primary.GenerationService
	templateService   primary.TemplateService
	diagnosticService primary.DiagnosticService

	configOnce   sync.Once
	servicesOnce sync.Once
)

// SetConfigPath selects an explicit config file merged over the discovered
// ones. It must be called before any service is requested.
func SetConfigPath(path string) {
	configPath = path
}

// Config returns the singleton configuration, loaded as seen from the
// working directory.
func Config() *config.Config {
	configOnce.Do(loadConfig)
	return cfg
}

func loadConfig() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}
	loaded, err := config.Load(cwd, configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	cfg = loaded
}

// GenerationService returns the singleton GenerationService instance.
func GenerationService() primary.GenerationService {
	servicesOnce.Do(initServices)
	return generationService
}

// TemplateService returns the singleton TemplateService instance.
func TemplateService() primary.TemplateService {
	servicesOnce.Do(initServices)
	return templateService
}

// DiagnosticService returns the singleton DiagnosticService instance.
func DiagnosticService() primary.DiagnosticService {
	servicesOnce.Do(initServices)
	return diagnosticService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	c := Config()

	// Get database connection
	database, err := db.Open(c.DiagnosticsDB)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Create adapters (secondary ports)
	osFs := afero.NewOsFs()
	diagnosticRepo := sqlite.NewDiagnosticRepository(database)
	workspace := filesystem.NewWorkspaceAdapter(osFs)
	locator := filesystem.NewProjectLocator(osFs)
	catalog := filesystem.NewTemplateCatalog(osFs, c.TemplateDirName, c.TemplateExt)
	bundled, bundledDir := bundledCatalog(c)

	genCfg := GenerationConfig(c)
	genCfg.BundledTemplateDir = bundledDir

	executor := app.NewEffectExecutor(workspace)

	// Create services (primary ports implementation)
	diagnosticService = app.NewDiagnosticService(diagnosticRepo)
	generationService = app.NewGenerationService(
		genCfg,
		locator,
		introspect.NewAuto(osFs),
		catalog,
		bundled,
		workspace,
		prompt.NewEntityPrompter(),
		diagnosticService,
		executor,
	)
	templateService = app.NewTemplateService(genCfg, locator, catalog, bundled, workspace, executor)
}

// bundledCatalog returns the starter template source and the directory the
// active variant's set lives in. A configured directory on disk replaces the
// embedded sets.
func bundledCatalog(c *config.Config) (secondary.TemplateCatalogSource, string) {
	if c.BundledTemplateDir != "" {
		return filesystem.NewTemplateCatalog(afero.NewOsFs(), c.TemplateDirName, c.TemplateExt), c.BundledTemplateDir
	}
	embedded := afero.FromIOFS{FS: templates.FS()}
	return filesystem.NewTemplateCatalog(embedded, c.TemplateDirName, c.TemplateExt), templates.Root(c.GeneratorVariant())
}

// GenerationConfig maps the loaded configuration onto the settings a batch
// runs with. BundledTemplateDir is left as configured.
func GenerationConfig(c *config.Config) app.GenerationConfig {
	variant := c.GeneratorVariant()
	return app.GenerationConfig{
		Variant:              variant,
		RootNamespace:        c.RootNamespace,
		PrimaryKey:           c.PrimaryKey,
		BaseMarkers:          c.BaseMarkers,
		LineEnding:           c.EOL(),
		Categories:           c.CategoriesFor(variant),
		Artifacts:            c.ArtifactsFor(variant),
		TemplateExt:          c.TemplateExt,
		UserTemplateDir:      c.UserTemplates(),
		BundledTemplateDir:   c.BundledTemplateDir,
		CoreSuffix:           c.Projects.Core,
		InfrastructureSuffix: c.Projects.Infrastructure,
		ApiSuffix:            c.Projects.Api,
		Concurrency:          c.Concurrency,
	}
}

// GenerationAdapter returns a new GenerationAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func GenerationAdapter() *cliadapter.GenerationAdapter {
	return GenerationAdapterWithOutput(os.Stdout)
}

// GenerationAdapterWithOutput returns a new GenerationAdapter writing to the given output.
func GenerationAdapterWithOutput(out io.Writer) *cliadapter.GenerationAdapter {
	return cliadapter.NewGenerationAdapter(GenerationService(), out)
}

// TemplateAdapter returns a new TemplateAdapter writing to stdout.
func TemplateAdapter() *cliadapter.TemplateAdapter {
	return cliadapter.NewTemplateAdapter(TemplateService(), os.Stdout)
}

// DiagnosticAdapter returns a new DiagnosticAdapter writing to stdout.
func DiagnosticAdapter() *cliadapter.DiagnosticAdapter {
	return cliadapter.NewDiagnosticAdapter(DiagnosticService(), os.Stdout)
}
