package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/codegen/internal/models"
)

// isolate points HOME at an empty directory so a developer's own config
// does not leak into tests.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(t.TempDir(), "")
	require.NoError(t, err)

	assert.Equal(t, models.VariantModel, cfg.GeneratorVariant())
	assert.Equal(t, "Id", cfg.PrimaryKey)
	assert.Equal(t, []string{"IEntity", "BaseEntity"}, cfg.BaseMarkers)
	assert.Equal(t, ".templates", cfg.TemplateDirName)
	assert.Equal(t, ".txt", cfg.TemplateExt)
	assert.Equal(t, ".Core", cfg.Projects.Core)
	assert.Equal(t, ".Infrastructure", cfg.Projects.Infrastructure)
	assert.Equal(t, ".Api", cfg.Projects.Api)
	assert.Equal(t, "\r\n", cfg.EOL())
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Empty(t, cfg.Files)
}

func TestLoad_Precedence(t *testing.T) {
	home := isolate(t)
	writeConfig(t, filepath.Join(home, HomeDirName, "config.yaml"), "variant: cqrs\nprimary_key: Key\nconcurrency: 2\n")

	root := t.TempDir()
	writeConfig(t, filepath.Join(root, ProjectFile), "primary_key: OrderId\nline_ending: lf\n")
	nested := filepath.Join(root, "src", "Shop.Core")
	require.NoError(t, os.MkdirAll(nested, 0755))

	t.Setenv("CODEGEN_CONCURRENCY", "3")

	cfg, err := Load(nested, "")
	require.NoError(t, err)

	assert.Equal(t, models.VariantCQRS, cfg.GeneratorVariant(), "user file")
	assert.Equal(t, "OrderId", cfg.PrimaryKey, "project file beats user file")
	assert.Equal(t, "\n", cfg.EOL())
	assert.Equal(t, 3, cfg.Concurrency, "env beats files")
	assert.Len(t, cfg.Files, 2)
}

func TestLoad_Explicit(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	writeConfig(t, path, "root_namespace: Acme\n")

	cfg, err := Load(t.TempDir(), path)
	require.NoError(t, err)
	assert.Equal(t, "Acme", cfg.RootNamespace)

	_, err = Load(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	isolate(t)

	tests := []struct {
		name    string
		content string
	}{
		{"unknown variant", "variant: mvc\n"},
		{"unknown line ending", "line_ending: crcr\n"},
		{"zero concurrency", "concurrency: 0\n"},
		{"empty template ext", "template_ext: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			writeConfig(t, path, tt.content)

			_, err := Load(t.TempDir(), path)
			assert.Error(t, err)
		})
	}
}

func TestCategoriesAndArtifacts(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "c.yaml")
	writeConfig(t, path, `categories:
  model: [Model, Service]
artifacts:
  model:
    api:
      - "Endpoints/{name}Endpoint.cs"
`)

	cfg, err := Load(t.TempDir(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Model", "Service"}, cfg.CategoriesFor(models.VariantModel))
	assert.Contains(t, cfg.CategoriesFor(models.VariantCQRS), "Commands")

	artifacts := cfg.ArtifactsFor(models.VariantModel)
	assert.Equal(t, []string{"Endpoints/{name}Endpoint.cs"}, artifacts[models.RoleAPI])
	assert.Len(t, artifacts[models.RoleCore], 6)
}

func TestUserTemplates(t *testing.T) {
	home := isolate(t)

	cfg := &Config{}
	assert.Equal(t, filepath.Join(home, HomeDirName, "templates"), cfg.UserTemplates())

	cfg.UserTemplateDir = "/opt/templates"
	assert.Equal(t, "/opt/templates", cfg.UserTemplates())
}
