// Package introspect provides ClassIntrospector implementations: a static
// scan of C# sources and declarative entity manifests in CUE or YAML.
package introspect

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/example/codegen/internal/core/classify"
	"github.com/example/codegen/internal/models"
	"github.com/example/codegen/internal/ports/secondary"
)

var (
	lineComment  = regexp.MustCompile(`//[^\n]*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)

	classDecl = regexp.MustCompile(
		`\b(?:(?:public|internal|private|protected|sealed|abstract|partial|static)\s+)*class\s+(\w+)(?:<[^>{]*>)?\s*(?::\s*([^{]+))?\{`)

	autoProperty = regexp.MustCompile(
		`^\s*public\s+(?:(?:virtual|override|required|new)\s+)*([\w.]+(?:<[^>]*>)?(?:\[\])?\??)\s+(\w+)\s*\{\s*get;`)
)

var skippedSourceDirs = map[string]bool{
	"bin":          true,
	"obj":          true,
	".git":         true,
	"node_modules": true,
}

// SourceScanner implements secondary.ClassIntrospector by scanning .cs files
// for class declarations and public auto-properties.
type SourceScanner struct {
	fs afero.Fs
}

// NewSourceScanner creates a scanner. A nil fs means the operating system
// filesystem.
func NewSourceScanner(fs afero.Fs) *SourceScanner {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &SourceScanner{fs: fs}
}

type scannedClass struct {
	models.ClassDescriptor
	declared []models.PropertyDescriptor
}

// Classes returns every class declared under projectRoot. Properties
// inherited from a scanned base class follow the declared ones.
func (s *SourceScanner) Classes(ctx context.Context, projectRoot string) ([]models.ClassDescriptor, error) {
	var scanned []*scannedClass

	err := afero.Walk(s.fs, projectRoot, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if info.IsDir() {
			if path != projectRoot && skippedSourceDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".cs") {
			return nil
		}

		data, err := afero.ReadFile(s.fs, path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		scanned = append(scanned, parseClasses(string(data))...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", projectRoot, err)
	}

	byName := make(map[string]*scannedClass, len(scanned))
	for _, c := range scanned {
		if _, dup := byName[c.Name]; !dup {
			byName[c.Name] = c
		}
	}

	classes := make([]models.ClassDescriptor, 0, len(scanned))
	for _, c := range scanned {
		desc := c.ClassDescriptor
		desc.Properties = withInherited(c, byName)
		classes = append(classes, desc)
	}
	return classes, nil
}

// withInherited appends base class properties not shadowed by the class.
func withInherited(c *scannedClass, byName map[string]*scannedClass) []models.PropertyDescriptor {
	props := append([]models.PropertyDescriptor(nil), c.declared...)
	seen := make(map[string]bool, len(props))
	for _, p := range props {
		seen[p.Name] = true
	}

	visited := map[string]bool{c.Name: true}
	for base := byName[c.BaseName]; base != nil && !visited[base.Name]; base = byName[base.BaseName] {
		visited[base.Name] = true
		for _, p := range base.declared {
			if !seen[p.Name] {
				seen[p.Name] = true
				props = append(props, p)
			}
		}
	}
	return props
}

func parseClasses(src string) []*scannedClass {
	src = blockComment.ReplaceAllString(src, "")
	src = lineComment.ReplaceAllString(src, "")

	var classes []*scannedClass
	for _, m := range classDecl.FindAllStringSubmatchIndex(src, -1) {
		name := src[m[2]:m[3]]
		var base string
		if m[4] >= 0 {
			base = baseName(src[m[4]:m[5]])
		}

		body := classBody(src, m[1])
		classes = append(classes, &scannedClass{
			ClassDescriptor: models.ClassDescriptor{Name: name, BaseName: base},
			declared:        parseProperties(body),
		})
	}
	return classes
}

// baseName returns the first type of an inheritance list without generic
// arguments or namespace qualification.
func baseName(list string) string {
	first := list
	depth := 0
scan:
	for i, r := range list {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				first = list[:i]
				break scan
			}
		}
	}
	first = strings.TrimSpace(first)
	if i := strings.IndexByte(first, '<'); i >= 0 {
		first = first[:i]
	}
	if i := strings.LastIndexByte(first, '.'); i >= 0 {
		first = first[i+1:]
	}
	return strings.TrimSpace(first)
}

// classBody returns the text between the brace that ends at open and its
// matching close brace.
func classBody(src string, open int) string {
	depth := 1
	for i := open; i < len(src); i++ {
		switch src[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return src[open:i]
			}
		}
	}
	return src[open:]
}

// parseProperties reads public auto-properties declared directly in body.
// Members of nested types are skipped.
func parseProperties(body string) []models.PropertyDescriptor {
	var props []models.PropertyDescriptor
	depth := 0
	for _, line := range strings.Split(body, "\n") {
		if depth == 0 {
			if m := autoProperty.FindStringSubmatch(line); m != nil {
				props = append(props, models.PropertyDescriptor{
					Name: m[2],
					Type: classify.Classify(m[1]),
				})
			}
		}
		depth += strings.Count(line, "{") - strings.Count(line, "}")
	}
	return props
}

// Ensure SourceScanner implements the interface
var _ secondary.ClassIntrospector = (*SourceScanner)(nil)
