package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/example/codegen/internal/models"
)

// YAMLManifestReader reads entity declarations from a YAML file:
//
//	entities:
//	  Order:
//	    base: BaseEntity
//	    properties:
//	      Id: int
//	      CreatedAt: DateTime?
//
// Mapping order is kept so generated fragments follow the file.
type YAMLManifestReader struct {
	fs afero.Fs
}

// NewYAMLManifestReader creates a reader over fs.
func NewYAMLManifestReader(fs afero.Fs) *YAMLManifestReader {
	return &YAMLManifestReader{fs: fs}
}

type yamlManifest struct {
	Entities yaml.Node `yaml:"entities"`
}

// Read parses the manifest at path into class descriptors in declaration order.
func (r *YAMLManifestReader) Read(ctx context.Context, path string) ([]models.ClassDescriptor, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var manifest yamlManifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	specs, err := parseYAMLEntities(&manifest.Entities)
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return descriptors(specs), nil
}

func parseYAMLEntities(node *yaml.Node) ([]entitySpec, error) {
	if node.Kind == 0 {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: entities must be a mapping", node.Line)
	}

	var specs []entitySpec
	for i := 0; i+1 < len(node.Content); i += 2 {
		spec := entitySpec{Name: node.Content[i].Value}
		if err := checkIdentifier("entity", spec.Name); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Content[i].Line, err)
		}

		var body struct {
			Base       string    `yaml:"base"`
			Properties yaml.Node `yaml:"properties"`
		}
		if err := node.Content[i+1].Decode(&body); err != nil {
			return nil, fmt.Errorf("%s: %w", spec.Name, err)
		}
		spec.Base = body.Base

		props := &body.Properties
		if props.Kind != 0 && props.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: %s.properties must be a mapping", props.Line, spec.Name)
		}
		for j := 0; j+1 < len(props.Content); j += 2 {
			name := props.Content[j].Value
			if err := checkIdentifier("property", strings.TrimSuffix(name, "?")); err != nil {
				return nil, fmt.Errorf("line %d: %s: %w", props.Content[j].Line, spec.Name, err)
			}
			spec.Properties = append(spec.Properties, propertySpec{
				Name:     strings.TrimSuffix(name, "?"),
				Type:     props.Content[j+1].Value,
				Optional: strings.HasSuffix(name, "?"),
			})
		}
		specs = append(specs, spec)
	}
	return specs, nil
}
