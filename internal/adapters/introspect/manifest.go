package introspect

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/spf13/afero"

	"github.com/example/codegen/internal/core/classify"
	"github.com/example/codegen/internal/models"
	"github.com/example/codegen/internal/ports/secondary"
)

// Manifest file names looked up at a project root, in priority order.
const (
	CueManifest  = "entities.cue"
	YAMLManifest = "entities.yaml"
	YMLManifest  = "entities.yml"
)

// entitySpec is one entity declared in a manifest, before classification.
type entitySpec struct {
	Name       string
	Base       string
	Properties []propertySpec
}

type propertySpec struct {
	Name     string
	Type     string
	Optional bool
}

// checkIdentifier rejects names that cannot be emitted as a C# identifier.
func checkIdentifier(what, name string) error {
	if name == "" {
		return fmt.Errorf("%s name must not be empty", what)
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return fmt.Errorf("%s name %q is not a valid identifier", what, name)
	}
	return nil
}

func (e entitySpec) descriptor() models.ClassDescriptor {
	props := make([]models.PropertyDescriptor, 0, len(e.Properties))
	for _, p := range e.Properties {
		typeName := strings.TrimSpace(p.Type)
		if p.Optional && !strings.HasSuffix(typeName, "?") {
			typeName += "?"
		}
		props = append(props, models.PropertyDescriptor{
			Name: p.Name,
			Type: classify.Classify(typeName),
		})
	}
	return models.ClassDescriptor{Name: e.Name, BaseName: e.Base, Properties: props}
}

func descriptors(specs []entitySpec) []models.ClassDescriptor {
	classes := make([]models.ClassDescriptor, 0, len(specs))
	for _, s := range specs {
		classes = append(classes, s.descriptor())
	}
	return classes
}

// Auto picks the class source for a project: a CUE manifest, else a YAML
// manifest, else a scan of the C# sources.
type Auto struct {
	fs     afero.Fs
	cue    *CueManifestReader
	yaml   *YAMLManifestReader
	source *SourceScanner
}

// NewAuto creates the composite introspector. A nil fs means the operating
// system filesystem.
func NewAuto(fs afero.Fs) *Auto {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Auto{
		fs:     fs,
		cue:    NewCueManifestReader(fs),
		yaml:   NewYAMLManifestReader(fs),
		source: NewSourceScanner(fs),
	}
}

// Classes implements secondary.ClassIntrospector.
func (a *Auto) Classes(ctx context.Context, projectRoot string) ([]models.ClassDescriptor, error) {
	if path := filepath.Join(projectRoot, CueManifest); a.exists(path) {
		return a.cue.Read(ctx, path)
	}
	for _, name := range []string{YAMLManifest, YMLManifest} {
		if path := filepath.Join(projectRoot, name); a.exists(path) {
			return a.yaml.Read(ctx, path)
		}
	}
	return a.source.Classes(ctx, projectRoot)
}

func (a *Auto) exists(path string) bool {
	ok, err := afero.Exists(a.fs, path)
	return err == nil && ok
}

// Ensure Auto implements the interface
var _ secondary.ClassIntrospector = (*Auto)(nil)
