package app

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/codegen/internal/adapters/filesystem"
	"github.com/example/codegen/internal/core/template"
	"github.com/example/codegen/internal/models"
	"github.com/example/codegen/internal/ports/secondary"
)

func newTestTemplateService(t *testing.T) (*TemplateServiceImpl, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	bundledFs := afero.NewMemMapFs()
	for path, content := range map[string]string{
		coreRoot + "/.templates/Service/Service.txt": "project",
		userDir + "/Model/ResponseModel.txt":         "user",
	} {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
	for path, content := range map[string]string{
		"/bundled/classic/.cs.txt":             "bundled cs",
		"/bundled/classic/Service/Service.txt": "bundled service",
		"/bundled/classic/Controllers/Api.txt": "bundled api",
		"/bundled/classic/Service/notes.md":    "ignored",
	} {
		require.NoError(t, afero.WriteFile(bundledFs, path, []byte(content), 0o644))
	}

	cfg := GenerationConfig{
		Categories:         template.DefaultCategories(models.VariantModel),
		TemplateExt:        ".txt",
		UserTemplateDir:    userDir,
		BundledTemplateDir: "/bundled/classic",
	}
	locator := &mockProjectLocator{projects: []*secondary.ProjectRecord{
		{Name: "Shop.Core", RootDir: coreRoot},
	}}
	workspace := filesystem.NewWorkspaceAdapter(fs)

	service := NewTemplateService(
		cfg,
		locator,
		filesystem.NewTemplateCatalog(fs, ".templates", ".txt"),
		filesystem.NewTemplateCatalog(bundledFs, ".templates", ".txt"),
		workspace,
		NewEffectExecutor(workspace),
	)
	return service, fs
}

func TestTemplateService_Catalog(t *testing.T) {
	service, _ := newTestTemplateService(t)

	catalog, err := service.Catalog(context.Background(), coreRoot+"/Service")
	require.NoError(t, err)
	require.Len(t, catalog, 5)

	assert.Equal(t, template.CatalogEntry{AbsolutePath: coreRoot + "/.templates/Service/Service.txt", Origin: template.OriginProject}, catalog[0])
	assert.Equal(t, template.CatalogEntry{AbsolutePath: userDir + "/Model/ResponseModel.txt", Origin: template.OriginUser}, catalog[1])
	for _, e := range catalog[2:] {
		assert.Equal(t, template.OriginBundled, e.Origin)
	}
}

func TestTemplateService_Resolve(t *testing.T) {
	service, _ := newTestTemplateService(t)

	tests := []struct {
		name     string
		path     string
		found    bool
		want     string
		rule     template.Rule
		category string
	}{
		{
			name:     "project template beats bundled",
			path:     coreRoot + "/Service/OrderService.cs",
			found:    true,
			want:     coreRoot + "/.templates/Service/Service.txt",
			rule:     template.RuleCategory,
			category: "Service",
		},
		{
			name:     "user category template",
			path:     coreRoot + "/Model/OrderResponseModel.cs",
			found:    true,
			want:     userDir + "/Model/ResponseModel.txt",
			rule:     template.RuleCategory,
			category: "Model",
		},
		{
			name:  "extension fallback",
			path:  coreRoot + "/Misc/Order.cs",
			found: true,
			want:  "/bundled/classic/.cs.txt",
			rule:  template.RuleExtension,
		},
		{
			name:  "no template",
			path:  coreRoot + "/Misc/readme.md",
			found: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := service.Resolve(context.Background(), tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.found, res.Found)
			assert.Equal(t, tt.want, res.Path)
			assert.Equal(t, tt.rule, res.Rule)
			assert.Equal(t, tt.category, res.Category)
		})
	}
}

func TestTemplateService_InitStarter(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the starter layout", func(t *testing.T) {
		service, fs := newTestTemplateService(t)

		written, err := service.InitStarter(ctx, "/target", false)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{
			"/target/.cs.txt",
			"/target/Service/Service.txt",
			"/target/Controllers/Api.txt",
		}, written)

		data, err := afero.ReadFile(fs, "/target/Controllers/Api.txt")
		require.NoError(t, err)
		assert.Equal(t, "bundled api", string(data))
	})

	t.Run("keeps existing files without force", func(t *testing.T) {
		service, fs := newTestTemplateService(t)
		require.NoError(t, afero.WriteFile(fs, "/target/.cs.txt", []byte("mine"), 0o644))

		written, err := service.InitStarter(ctx, "/target", false)
		require.NoError(t, err)
		assert.Len(t, written, 2)

		data, _ := afero.ReadFile(fs, "/target/.cs.txt")
		assert.Equal(t, "mine", string(data))
	})

	t.Run("force overwrites", func(t *testing.T) {
		service, fs := newTestTemplateService(t)
		require.NoError(t, afero.WriteFile(fs, "/target/.cs.txt", []byte("mine"), 0o644))

		written, err := service.InitStarter(ctx, "/target", true)
		require.NoError(t, err)
		assert.Len(t, written, 3)

		data, _ := afero.ReadFile(fs, "/target/.cs.txt")
		assert.Equal(t, "bundled cs", string(data))
	})

	t.Run("no bundled source", func(t *testing.T) {
		service, _ := newTestTemplateService(t)
		service.bundled = nil

		_, err := service.InitStarter(ctx, "/target", false)
		assert.Error(t, err)
	})
}
