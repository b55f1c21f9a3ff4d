package filesystem_test

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/codegen/internal/adapters/filesystem"
)

const coreProject = `<Project Sdk="Microsoft.NET.Sdk">
  <PropertyGroup>
    <TargetFramework>net8.0</TargetFramework>
  </PropertyGroup>
  <PropertyGroup>
    <RootNamespace>Acme.Shop.Core</RootNamespace>
  </PropertyGroup>
</Project>`

func solutionFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/sln/src/Shop.Core/Shop.Core.csproj":                     coreProject,
		"/sln/src/Shop.Core/Service/Existing.cs":                  "class X {}",
		"/sln/src/Shop.Infrastructure/Shop.Infrastructure.csproj": `<Project></Project>`,
		"/sln/src/Shop.Api/Shop.Api.csproj":                       `not xml at all`,
		"/sln/src/Shop.Api/bin/Debug/Shop.Ghost.csproj":           `<Project></Project>`,
	})
	return fs
}

func TestProjectLocator_Owning(t *testing.T) {
	locator := filesystem.NewProjectLocator(solutionFs(t))
	ctx := context.Background()

	t.Run("walks up to the nearest project", func(t *testing.T) {
		got, err := locator.Owning(ctx, "/sln/src/Shop.Core/Service/Orders")
		require.NoError(t, err)
		require.NotNil(t, got)

		assert.Equal(t, "Shop.Core", got.Name)
		assert.Equal(t, "/sln/src/Shop.Core", got.RootDir)
		assert.Equal(t, "/sln/src/Shop.Core/Shop.Core.csproj", got.FilePath)
		assert.Equal(t, "Acme.Shop.Core", got.RootNamespace)
	})

	t.Run("no project above the folder", func(t *testing.T) {
		got, err := locator.Owning(ctx, "/sln/docs")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestProjectLocator_FindByName(t *testing.T) {
	locator := filesystem.NewProjectLocator(solutionFs(t))
	ctx := context.Background()

	tests := []struct {
		name   string
		search string
		found  bool
		rootNs string
	}{
		{"sibling without namespace", "Shop.Infrastructure", true, ""},
		{"unparseable project still found", "Shop.Api", true, ""},
		{"case-insensitive", "shop.core", true, "Acme.Shop.Core"},
		{"build output is skipped", "Shop.Ghost", false, ""},
		{"missing", "Shop.Web", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := locator.FindByName(ctx, "/sln", tt.search)
			require.NoError(t, err)
			if !tt.found {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.rootNs, got.RootNamespace)
		})
	}
}
