package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/codegen/internal/models"
)

var testCategories = []string{"Model", "Repository", "Service", "Validator", "CoreResolver", "Infrastructure", "Controllers"}

func bundled(paths ...string) Catalog {
	c := make(Catalog, 0, len(paths))
	for _, p := range paths {
		c = append(c, CatalogEntry{AbsolutePath: p, Origin: OriginBundled})
	}
	return c
}

func TestResolve_CategoryMatch(t *testing.T) {
	catalog := bundled(
		"/opt/codegen/Templates/Model/ResponseModel.txt",
		"/opt/codegen/Templates/Model/RequestModel.txt",
		"/opt/codegen/Templates/Service/Service.txt",
		"/opt/codegen/Templates/.cs.txt",
	)

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"response model", "/src/Shop.Core/Model/OrderResponseModel.cs", "/opt/codegen/Templates/Model/ResponseModel.txt"},
		{"request model", "/src/Shop.Core/Model/OrderRequestModel.cs", "/opt/codegen/Templates/Model/RequestModel.txt"},
		{"service", "/src/Shop.Core/Service/OrderService.cs", "/opt/codegen/Templates/Service/Service.txt"},
		{"case insensitive category", "/src/Shop.Core/model/OrderResponseModel.cs", "/opt/codegen/Templates/Model/ResponseModel.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := Resolve(catalog, Target{Path: tt.target, ProjectRoot: "/src/Shop.Core"}, testCategories, ".txt")
			require.True(t, ok)
			assert.Equal(t, tt.want, res.Path)
			assert.Equal(t, RuleCategory, res.Rule)
		})
	}
}

func TestResolve_LongestPathWins(t *testing.T) {
	catalog := bundled(
		"/opt/codegen/Templates/Repository/Repository.txt",
		"/opt/codegen/Templates/Repository/Special/Order.Repository.txt",
	)
	target := Target{Path: "/src/Shop.Core/Repository/IOrderRepository.cs", ProjectRoot: "/src/Shop.Core"}

	res, ok := Resolve(catalog, target, testCategories, ".txt")
	require.True(t, ok)
	assert.Equal(t, "/opt/codegen/Templates/Repository/Special/Order.Repository.txt", res.Path)

	other := Target{Path: "/src/Shop.Core/Repository/ICustomerRepository.cs", ProjectRoot: "/src/Shop.Core"}
	res, ok = Resolve(catalog, other, testCategories, ".txt")
	require.True(t, ok)
	assert.Equal(t, "/opt/codegen/Templates/Repository/Repository.txt", res.Path)
}

func TestResolve_Deterministic(t *testing.T) {
	catalog := Merge(
		Catalog{{AbsolutePath: "/src/.templates/Service/Service.txt", Origin: OriginProject}},
		bundled("/opt/codegen/Templates/Service/Service.txt"),
	)
	target := Target{Path: "/src/Shop.Core/Service/OrderService.cs", ProjectRoot: "/src/Shop.Core"}

	first, ok := Resolve(catalog, target, testCategories, ".txt")
	require.True(t, ok)
	for i := 0; i < 5; i++ {
		again, ok := Resolve(catalog, target, testCategories, ".txt")
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
}

func TestResolve_ExtensionFallback(t *testing.T) {
	catalog := bundled(
		"/opt/codegen/Templates/Model/ResponseModel.txt",
		"/opt/codegen/Templates/.cs.txt",
		"/opt/codegen/Templates/.cs-interface.txt",
		"/opt/codegen/Templates/.json.txt",
	)

	tests := []struct {
		name   string
		target string
		want   string
		ok     bool
	}{
		{"no category", "/src/Shop.Core/Helpers/Clock.cs", "/opt/codegen/Templates/.cs.txt", true},
		{"interface name", "/src/Shop.Core/Helpers/IClock.cs", "/opt/codegen/Templates/.cs-interface.txt", true},
		{"not an interface", "/src/Shop.Core/Helpers/Index.cs", "/opt/codegen/Templates/.cs.txt", true},
		{"category without token match", "/src/Shop.Core/Model/OrderSummary.cs", "/opt/codegen/Templates/.cs.txt", true},
		{"extension case insensitive", "/src/Shop.Core/appsettings.JSON", "/opt/codegen/Templates/.json.txt", true},
		{"unknown extension", "/src/Shop.Core/readme.md", "", false},
		{"no extension", "/src/Shop.Core/Makefile", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := Resolve(catalog, Target{Path: tt.target, ProjectRoot: "/src/Shop.Core"}, testCategories, ".txt")
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, res.Path)
		})
	}
}

func TestResolve_InterfaceWithoutAdjustedTemplate(t *testing.T) {
	catalog := bundled("/opt/codegen/Templates/.cs.txt")
	target := Target{Path: "/src/Shop.Core/Helpers/IClock.cs", ProjectRoot: "/src/Shop.Core"}

	res, ok := Resolve(catalog, target, testCategories, ".txt")
	require.True(t, ok)
	assert.Equal(t, "/opt/codegen/Templates/.cs.txt", res.Path)
	assert.Equal(t, RuleExtension, res.Rule)
}

func TestResolve_WindowsPaths(t *testing.T) {
	catalog := bundled(`C:\codegen\Templates\Validator\RequestModelValidator.txt`)
	target := Target{Path: `C:\src\Shop.Core\Validator\OrderRequestModelValidator.cs`, ProjectRoot: `C:\src\Shop.Core`}

	res, ok := Resolve(catalog, target, testCategories, ".txt")
	require.True(t, ok)
	assert.Equal(t, `C:\codegen\Templates\Validator\RequestModelValidator.txt`, res.Path)
}

func TestMerge_KeepsOrderAndDuplicates(t *testing.T) {
	project := Catalog{{AbsolutePath: "/a/.templates/x.txt", Origin: OriginProject}}
	user := Catalog{{AbsolutePath: "/home/u/.codegen/templates/x.txt", Origin: OriginUser}}
	base := bundled("/opt/x.txt", "/opt/x.txt")

	merged := Merge(project, user, base)
	require.Len(t, merged, 4)
	assert.Equal(t, OriginProject, merged[0].Origin)
	assert.Equal(t, OriginUser, merged[1].Origin)
	assert.Equal(t, merged[2], merged[3])
}

func TestDefaultCategories(t *testing.T) {
	assert.Equal(t, testCategories, DefaultCategories(models.VariantModel))

	cqrs := DefaultCategories(models.VariantCQRS)
	assert.Less(t, indexOf(cqrs, "EventHandlers"), indexOf(cqrs, "Events"))

	cqrs[0] = "changed"
	assert.Equal(t, "Commands", DefaultCategories(models.VariantCQRS)[0])
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}
