package introspect

import (
	"context"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/afero"

	"github.com/example/codegen/internal/models"
)

// CueManifestReader reads entity declarations from a CUE file:
//
//	entities: {
//		Order: {
//			base: "BaseEntity"
//			properties: {
//				Id:         "int"
//				Name:       string
//				CreatedAt?: "DateTime"
//			}
//		}
//	}
//
// A property is either a type name string or a bare CUE kind. Optional
// fields become nullable.
type CueManifestReader struct {
	fs afero.Fs
}

// NewCueManifestReader creates a reader over fs.
func NewCueManifestReader(fs afero.Fs) *CueManifestReader {
	return &CueManifestReader{fs: fs}
}

// Read parses the manifest at path into class descriptors in declaration order.
func (r *CueManifestReader) Read(ctx context.Context, path string) ([]models.ClassDescriptor, error) {
	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	val := cuecontext.New().CompileBytes(data, cue.Filename(path))
	if err := val.Err(); err != nil {
		return nil, fmt.Errorf("failed to compile manifest %s: %w", path, err)
	}

	specs, err := parseCueEntities(val.LookupPath(cue.ParsePath("entities")))
	if err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return descriptors(specs), nil
}

func parseCueEntities(entities cue.Value) ([]entitySpec, error) {
	if !entities.Exists() {
		return nil, nil
	}

	iter, err := entities.Fields()
	if err != nil {
		return nil, fmt.Errorf("entities must be a struct: %w", err)
	}

	var specs []entitySpec
	for iter.Next() {
		spec := entitySpec{Name: iter.Selector().Unquoted()}
		if err := checkIdentifier("entity", spec.Name); err != nil {
			return nil, err
		}
		entity := iter.Value()

		if base := entity.LookupPath(cue.ParsePath("base")); base.Exists() {
			s, err := base.String()
			if err != nil {
				return nil, fmt.Errorf("%s.base: %w", spec.Name, err)
			}
			spec.Base = s
		}

		props, err := parseCueProperties(entity.LookupPath(cue.ParsePath("properties")))
		if err != nil {
			return nil, fmt.Errorf("%s.properties: %w", spec.Name, err)
		}
		spec.Properties = props
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseCueProperties(props cue.Value) ([]propertySpec, error) {
	if !props.Exists() {
		return nil, nil
	}

	iter, err := props.Fields(cue.Optional(true))
	if err != nil {
		return nil, err
	}

	var specs []propertySpec
	for iter.Next() {
		name := iter.Selector().Unquoted()
		if err := checkIdentifier("property", name); err != nil {
			return nil, err
		}
		specs = append(specs, propertySpec{
			Name:     name,
			Type:     cueTypeName(iter.Value()),
			Optional: iter.IsOptional(),
		})
	}
	return specs, nil
}

// cueTypeName returns the written type name for a concrete string, or a
// name derived from the value's kind.
func cueTypeName(v cue.Value) string {
	if s, err := v.String(); err == nil {
		return s
	}

	switch v.IncompleteKind() {
	case cue.StringKind:
		return "string"
	case cue.IntKind:
		return "int"
	case cue.FloatKind, cue.NumberKind:
		return "decimal"
	case cue.BoolKind:
		return "bool"
	case cue.ListKind:
		return "string[]"
	case cue.StructKind:
		return "Dictionary<string, string>"
	default:
		return "object"
	}
}
