// Package batch plans the files generated for one entity: which logical
// artifacts each project receives, where they land on disk, and the effects
// that write them.
package batch

import (
	"strings"

	"github.com/example/codegen/internal/core/naming"
	"github.com/example/codegen/internal/models"
)

// Artifact path placeholders.
const (
	PlaceholderName   = "{name}"
	PlaceholderPlural = "{plural}"
)

// Artifacts lists logical artifact paths per project role.
type Artifacts map[models.Role][]string

var modelArtifacts = Artifacts{
	models.RoleCore: {
		"Model/{name}ResponseModel.cs",
		"Model/{name}RequestModel.cs",
		"Repository/I{name}Repository.cs",
		"Service/{name}Service.cs",
		"Validator/{name}RequestModelValidator.cs",
		"CoreResolver/{name}DependencyResolver.cs",
	},
	models.RoleInfrastructure: {
		"Infrastructure/Repositories/{plural}/{name}Implement.cs",
		"Infrastructure/Repositories/{plural}/{name}ProcedureNames.cs",
		"Infrastructure/Repositories/{plural}/{name}DependencyResolver.cs",
	},
	models.RoleAPI: {
		"Controllers/{plural}/{name}Api.cs",
	},
}

var cqrsArtifacts = Artifacts{
	models.RoleCore: {
		"{plural}/Commands/AddEdit/AddEdit{name}Command.cs",
		"{plural}/Commands/Delete/Delete{name}Command.cs",
		"{plural}/Queries/GetAll/GetAll{plural}Query.cs",
		"{plural}/DTOs/{name}Dto.cs",
		"{plural}/EventHandlers/{name}CreatedEventHandler.cs",
		"{plural}/Events/{name}CreatedEvent.cs",
		"{plural}/Caching/{name}CacheKey.cs",
		"{plural}/Specifications/{name}Specification.cs",
	},
	models.RoleInfrastructure: {
		"Infrastructure/Persistence/Configurations/{name}Configuration.cs",
	},
	models.RoleAPI: {
		"Pages/{plural}/{plural}.razor",
		"Controllers/{plural}/{name}Controller.cs",
	},
}

// DefaultArtifacts returns the built-in artifact list of a variant. The
// result is a copy the caller may modify.
func DefaultArtifacts(variant models.Variant) Artifacts {
	src := modelArtifacts
	if variant == models.VariantCQRS {
		src = cqrsArtifacts
	}

	out := make(Artifacts, len(src))
	for role, paths := range src {
		out[role] = append([]string(nil), paths...)
	}
	return out
}

// Expand substitutes the entity name and its plural into an artifact path.
func Expand(pattern, entity string) string {
	return strings.NewReplacer(
		PlaceholderName, entity,
		PlaceholderPlural, naming.Pluralize(entity),
	).Replace(pattern)
}
