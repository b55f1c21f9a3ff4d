// Package naming contains the pure name transformations used by code
// generation: pluralization, namespace derivation and identifier helpers.
package naming

import (
	"strings"
	"unicode"
)

// FallbackNamespace is used when a project has no root namespace.
const FallbackNamespace = "MyNamespace"

// irregularPlurals maps lower-case singular nouns to their plural.
var irregularPlurals = map[string]string{
	"person":    "people",
	"man":       "men",
	"woman":     "women",
	"child":     "children",
	"tooth":     "teeth",
	"foot":      "feet",
	"mouse":     "mice",
	"goose":     "geese",
	"ox":        "oxen",
	"criterion": "criteria",
	"datum":     "data",
	"analysis":  "analyses",
	"basis":     "bases",
	"crisis":    "crises",
	"thesis":    "theses",
	"leaf":      "leaves",
	"life":      "lives",
	"knife":     "knives",
	"wife":      "wives",
	"half":      "halves",
	"shelf":     "shelves",
}

// uncountable nouns keep their form.
var uncountable = map[string]bool{
	"equipment":   true,
	"information": true,
	"money":       true,
	"news":        true,
	"series":      true,
	"species":     true,
	"sheep":       true,
	"fish":        true,
	"data":        true,
	"metadata":    true,
	"feedback":    true,
}

// Pluralize returns the conventional plural of an entity name. Only the last
// word of a compound PascalCase name is inflected: "SalesPerson" becomes
// "SalesPeople".
func Pluralize(name string) string {
	if name == "" {
		return name
	}

	words := splitWords(name)
	if len(words) == 0 {
		return name
	}
	last := words[len(words)-1]
	i := strings.LastIndex(name, last)
	return name[:i] + pluralizeWord(last) + name[i+len(last):]
}

func pluralizeWord(word string) string {
	lower := strings.ToLower(word)
	if uncountable[lower] {
		return word
	}
	if plural, ok := irregularPlurals[lower]; ok {
		return matchCase(word, plural)
	}

	upper := isAllUpper(word)
	suffix := func(s string) string {
		if upper {
			return strings.ToUpper(s)
		}
		return s
	}

	if strings.HasSuffix(lower, "s") || strings.HasSuffix(lower, "x") || strings.HasSuffix(lower, "z") ||
		strings.HasSuffix(lower, "ch") || strings.HasSuffix(lower, "sh") {
		return word + suffix("es")
	}
	if strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(lower[len(lower)-2]) {
		return word[:len(word)-1] + suffix("ies")
	}
	return word + suffix("s")
}

func isVowel(b byte) bool {
	return b == 'a' || b == 'e' || b == 'i' || b == 'o' || b == 'u'
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter && len(s) > 1
}

// matchCase applies the casing of original to replacement: all upper, or
// a capitalised first letter.
func matchCase(original, replacement string) string {
	if isAllUpper(original) {
		return strings.ToUpper(replacement)
	}
	if r := []rune(original); len(r) > 0 && unicode.IsUpper(r[0]) {
		rr := []rune(replacement)
		rr[0] = unicode.ToUpper(rr[0])
		return string(rr)
	}
	return replacement
}

// splitWords splits a string into words (handles camelCase, PascalCase, snake_case, kebab-case).
func splitWords(s string) []string {
	s = strings.ReplaceAll(s, "_", " ")
	s = strings.ReplaceAll(s, "-", " ")

	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			prev := rune(s[i-1])
			if !unicode.IsSpace(prev) && !unicode.IsUpper(prev) {
				result.WriteRune(' ')
			}
		}
		result.WriteRune(r)
	}

	return strings.Fields(result.String())
}

// CleanNamespace converts a project-relative path into a dotted namespace
// fragment. Separators become '.', characters invalid in an identifier are
// dropped, empty segments are skipped, and a segment starting with a digit is
// prefixed with '_'. The result never starts or ends with '.'.
func CleanNamespace(relativePath string) string {
	segments := strings.FieldsFunc(relativePath, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	cleaned := make([]string, 0, len(segments))
	for _, seg := range segments {
		var b strings.Builder
		for _, r := range seg {
			if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
		part := b.String()
		if part == "" {
			continue
		}
		if unicode.IsDigit([]rune(part)[0]) {
			part = "_" + part
		}
		cleaned = append(cleaned, part)
	}
	return strings.Join(cleaned, ".")
}

// DeriveNamespace joins a root namespace and a cleaned relative path with '.'.
// An empty root namespace is replaced by FallbackNamespace.
func DeriveNamespace(rootNamespace, relativePath string) string {
	ns := rootNamespace
	if ns == "" {
		ns = FallbackNamespace
	}
	if fragment := CleanNamespace(relativePath); fragment != "" {
		ns += "." + fragment
	}
	return ns
}

// SplitCamelCase inserts a space at every word boundary of an identifier:
// before an upper-case letter that follows a non-upper character, before the
// last capital of an acronym followed by a lower-case letter, and between a
// letter and a non-letter.
func SplitCamelCase(s string) string {
	runes := []rune(s)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsUpper(prev) && unicode.IsUpper(r) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				b.WriteRune(' ')
			case !unicode.IsUpper(prev) && unicode.IsUpper(r):
				b.WriteRune(' ')
			case unicode.IsLetter(prev) && !unicode.IsLetter(r):
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ParameterName builds a database bind-parameter name from a property name:
// every character whose code point is below 'Z' gets an '_' prefix, then the
// result is upper-cased. "CreatedAt" becomes "_CREATED_AT".
func ParameterName(property string) string {
	var b strings.Builder
	for _, r := range property {
		if r < 'Z' {
			b.WriteRune('_')
		}
		b.WriteRune(r)
	}
	return strings.ToUpper(strings.TrimSpace(b.String()))
}
