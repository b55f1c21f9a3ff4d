// Package template selects the template file for a planned output file.
// Resolution is pure: the catalog is assembled by the caller.
package template

import (
	"path"
	"regexp"
	"sort"
	"strings"
)

// Origin records which search root a catalog entry came from.
type Origin string

const (
	OriginProject Origin = "project" // nearest-ancestor template folder
	OriginUser    Origin = "user"
	OriginBundled Origin = "bundled"
)

// CatalogEntry is one template file available for resolution.
type CatalogEntry struct {
	AbsolutePath string
	Origin       Origin
}

// Catalog is the ordered set of template files. Earlier entries have
// higher priority.
type Catalog []CatalogEntry

// Merge concatenates catalogs in priority order. Entries are neither removed
// nor deduplicated.
func Merge(catalogs ...Catalog) Catalog {
	n := 0
	for _, c := range catalogs {
		n += len(c)
	}
	merged := make(Catalog, 0, n)
	for _, c := range catalogs {
		merged = append(merged, c...)
	}
	return merged
}

// Target is the output file a template is resolved for.
type Target struct {
	Path        string // absolute path of the file to generate
	ProjectRoot string // root folder of the owning project
}

// Rule names the branch that produced a resolution.
type Rule string

const (
	RuleCategory  Rule = "category"
	RuleExtension Rule = "extension"
)

// Resolution is a successful template lookup.
type Resolution struct {
	Path     string
	Rule     Rule
	Category string // matched category folder, RuleCategory only
}

// InterfaceSuffix is appended to the extension template stem for
// interface-style names such as "IOrderRepository".
const InterfaceSuffix = "-interface"

var interfaceName = regexp.MustCompile(`^I[A-Z]`)

// Resolve returns the best template for target. The category branch is tried
// first: the first category appearing in the target's project-relative
// directory narrows the catalog, and among those entries the longest path
// whose stem tokens all occur in the target file name wins. When that yields
// nothing the extension branch looks for "<ext><templateExt>", preferring the
// interface variant when the name looks like an interface.
func Resolve(catalog Catalog, target Target, categories []string, templateExt string) (Resolution, bool) {
	file := toSlash(target.Path)
	name := path.Base(file)
	relative := relativeDir(toSlash(target.ProjectRoot), path.Dir(file))

	if category, ok := matchCategory(relative, categories); ok {
		if p, ok := resolveByCategory(catalog, category, name, templateExt); ok {
			return Resolution{Path: p, Rule: RuleCategory, Category: category}, true
		}
	}

	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return Resolution{}, false
	}
	if p, ok := resolveByExtension(catalog, ext, safeName(name), templateExt); ok {
		return Resolution{Path: p, Rule: RuleExtension}, true
	}
	return Resolution{}, false
}

func matchCategory(relative string, categories []string) (string, bool) {
	lower := strings.ToLower(relative)
	for _, c := range categories {
		if c == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(toSlash(c))) {
			return c, true
		}
	}
	return "", false
}

func resolveByCategory(catalog Catalog, category, name, templateExt string) (string, bool) {
	rule := strings.ToLower(toSlash(category))

	var candidates []string
	for _, e := range catalog {
		if strings.Contains(strings.ToLower(toSlash(e.AbsolutePath)), rule) {
			candidates = append(candidates, e.AbsolutePath)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return len(candidates[i]) > len(candidates[j])
	})

	lowerName := strings.ToLower(name)
	for _, c := range candidates {
		if stemTokensMatch(c, lowerName, templateExt) {
			return c, true
		}
	}
	return "", false
}

// stemTokensMatch reports whether every dot-separated token of the template
// file stem occurs in name.
func stemTokensMatch(templatePath, lowerName, templateExt string) bool {
	base := path.Base(toSlash(templatePath))
	stem := strings.TrimSuffix(base, path.Ext(base))
	if templateExt != "" && strings.HasSuffix(strings.ToLower(base), strings.ToLower(templateExt)) {
		stem = base[:len(base)-len(templateExt)]
	}

	for _, token := range strings.Split(stem, ".") {
		if token == "" {
			continue
		}
		if !strings.Contains(lowerName, strings.ToLower(token)) {
			return false
		}
	}
	return true
}

func resolveByExtension(catalog Catalog, ext, safe, templateExt string) (string, bool) {
	want := ext + templateExt
	plain := -1
	for i, e := range catalog {
		if strings.EqualFold(path.Base(toSlash(e.AbsolutePath)), want) {
			plain = i
			break
		}
	}
	if plain < 0 {
		return "", false
	}

	if interfaceName.MatchString(safe) {
		dir := path.Dir(toSlash(catalog[plain].AbsolutePath))
		adjusted := ext + InterfaceSuffix + templateExt
		for _, e := range catalog {
			p := toSlash(e.AbsolutePath)
			if path.Dir(p) == dir && strings.EqualFold(path.Base(p), adjusted) {
				return e.AbsolutePath, true
			}
		}
	}
	return catalog[plain].AbsolutePath, true
}

// safeName is the file name without its extension, except for dot-files
// which keep their full name.
func safeName(name string) string {
	if strings.HasPrefix(name, ".") {
		return name
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

func relativeDir(root, dir string) string {
	root = strings.TrimSuffix(root, "/")
	if root == "" {
		return strings.TrimPrefix(dir, "/")
	}
	if dir == root {
		return ""
	}
	if rel, ok := strings.CutPrefix(dir, root+"/"); ok {
		return rel
	}
	return dir
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
