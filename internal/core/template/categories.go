package template

import "github.com/example/codegen/internal/models"

var modelCategories = []string{
	"Model",
	"Repository",
	"Service",
	"Validator",
	"CoreResolver",
	"Infrastructure",
	"Controllers",
}

// EventHandlers precedes Events so handler folders do not match the shorter
// name first.
var cqrsCategories = []string{
	"Commands",
	"Queries",
	"EventHandlers",
	"Events",
	"DTOs",
	"Caching",
	"Specifications",
	"Pages",
	"Persistence/Configurations",
	"Controllers",
}

// DefaultCategories returns the category folder list of a variant, in match
// order.
func DefaultCategories(variant models.Variant) []string {
	if variant == models.VariantCQRS {
		return append([]string(nil), cqrsCategories...)
	}
	return append([]string(nil), modelCategories...)
}
