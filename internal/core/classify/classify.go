// Package classify maps source type names onto property type descriptors.
// The rule table here is the single source of truth for which types the
// fragment generators know how to format.
package classify

import (
	"strings"

	"github.com/example/codegen/internal/models"
)

type primitive struct {
	codeName string
	category models.TypeCategory
}

// primitives maps every accepted spelling of a known scalar type to its
// canonical code name and category.
var primitives = map[string]primitive{
	"string":          {"string", models.CategoryText},
	"String":          {"string", models.CategoryText},
	"System.String":   {"string", models.CategoryText},
	"int":             {"int", models.CategoryInteger},
	"Int32":           {"int", models.CategoryInteger},
	"System.Int32":    {"int", models.CategoryInteger},
	"long":            {"long", models.CategoryLong},
	"Int64":           {"long", models.CategoryLong},
	"System.Int64":    {"long", models.CategoryLong},
	"decimal":         {"decimal", models.CategoryDecimal},
	"Decimal":         {"decimal", models.CategoryDecimal},
	"System.Decimal":  {"decimal", models.CategoryDecimal},
	"double":          {"double", models.CategoryDouble},
	"Double":          {"double", models.CategoryDouble},
	"System.Double":   {"double", models.CategoryDouble},
	"float":           {"float", models.CategoryDouble},
	"Single":          {"float", models.CategoryDouble},
	"System.Single":   {"float", models.CategoryDouble},
	"bool":            {"bool", models.CategoryBoolean},
	"Boolean":         {"bool", models.CategoryBoolean},
	"System.Boolean":  {"bool", models.CategoryBoolean},
	"DateTime":        {"System.DateTime", models.CategoryDateTime},
	"System.DateTime": {"System.DateTime", models.CategoryDateTime},
	"Guid":            {"Guid", models.CategoryGuid},
	"System.Guid":     {"Guid", models.CategoryGuid},
}

var sequenceTypes = map[string]bool{
	"List":                true,
	"IList":               true,
	"ICollection":         true,
	"IEnumerable":         true,
	"HashSet":             true,
	"ISet":                true,
	"IReadOnlyList":       true,
	"IReadOnlyCollection": true,
	"Collection":          true,
}

var dictionaryTypes = map[string]bool{
	"Dictionary":          true,
	"IDictionary":         true,
	"IReadOnlyDictionary": true,
	"SortedDictionary":    true,
}

var optionalWrappers = map[string]bool{
	"Optional": true,
	"Maybe":    true,
}

// Classify returns the descriptor for a source type spelling such as
// "int?", "List<string>" or "Nullable<DateTime>".
func Classify(sourceType string) models.PropertyTypeDescriptor {
	t := strings.TrimSpace(sourceType)
	if t == "" {
		return models.PropertyTypeDescriptor{}
	}

	if outer, args, ok := splitGeneric(t); ok {
		name := unqualified(outer)
		switch {
		case name == "Nullable" && len(args) == 1:
			return nullable(Classify(args[0]))
		case optionalWrappers[name] && len(args) == 1:
			inner := Classify(args[0])
			inner.IsOptional = true
			return inner
		case sequenceTypes[name] && len(args) == 1:
			if isText(args[0]) {
				return models.PropertyTypeDescriptor{
					CodeName:    "string",
					Category:    models.CategoryText,
					IsKnownType: true,
					IsArray:     true,
				}
			}
		case dictionaryTypes[name] && len(args) == 2:
			return models.PropertyTypeDescriptor{
				CodeName:     t,
				Category:     models.CategoryDictionary,
				IsKnownType:  true,
				IsDictionary: true,
			}
		}
		return models.PropertyTypeDescriptor{CodeName: t}
	}

	if elem, ok := strings.CutSuffix(t, "[]"); ok {
		if isText(elem) {
			return models.PropertyTypeDescriptor{
				CodeName:    "string",
				Category:    models.CategoryText,
				IsKnownType: true,
				IsArray:     true,
			}
		}
		return models.PropertyTypeDescriptor{CodeName: t}
	}

	if base, ok := strings.CutSuffix(t, "?"); ok {
		return nullable(Classify(base))
	}

	if p, ok := primitives[t]; ok {
		return models.PropertyTypeDescriptor{
			CodeName:    p.codeName,
			Category:    p.category,
			IsKnownType: true,
		}
	}

	return models.PropertyTypeDescriptor{CodeName: t}
}

func nullable(d models.PropertyTypeDescriptor) models.PropertyTypeDescriptor {
	if d.CodeName != "" && !d.Nullable() {
		d.CodeName += "?"
	}
	return d
}

func isText(t string) bool {
	p, ok := primitives[strings.TrimSpace(t)]
	return ok && p.category == models.CategoryText
}

func unqualified(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// splitGeneric splits "Outer<A, B<C>>" into "Outer" and its top-level type
// arguments.
func splitGeneric(t string) (string, []string, bool) {
	open := strings.Index(t, "<")
	if open <= 0 || !strings.HasSuffix(t, ">") {
		return "", nil, false
	}

	outer := t[:open]
	inner := t[open+1 : len(t)-1]

	var args []string
	depth, start := 0, 0
	for i, r := range inner {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	return outer, args, true
}
