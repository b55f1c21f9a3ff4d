package batch

import (
	"path/filepath"
	"strings"

	"github.com/example/codegen/internal/core/effects"
	"github.com/example/codegen/internal/core/naming"
	"github.com/example/codegen/internal/core/output"
	"github.com/example/codegen/internal/core/render"
	"github.com/example/codegen/internal/models"
)

// MarkerTail is the number of characters removed after an organizational
// marker when computing an on-disk path: the separator that follows it.
const MarkerTail = 1

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// ProjectInput describes one project of the solution trio.
type ProjectInput struct {
	Root          string
	RootNamespace string
	// Destination is the folder artifacts are placed under. For the core
	// project it is the selected folder; otherwise the project root.
	Destination string
}

// PlanTargets expands the artifact lists for one entity into generation
// targets, in role order and list order. Roles without a project are skipped.
func PlanTargets(entity string, artifacts Artifacts, projects map[models.Role]ProjectInput) []models.GenerationTarget {
	var targets []models.GenerationTarget
	for _, role := range models.Roles {
		project, ok := projects[role]
		if !ok {
			continue
		}
		for _, pattern := range artifacts[role] {
			targets = append(targets, models.GenerationTarget{
				LogicalPath:       Expand(pattern, entity),
				EntityName:        entity,
				DestinationFolder: project.Destination,
				ProjectRoot:       project.Root,
				RootNamespace:     project.RootNamespace,
				Role:              role,
			})
		}
	}
	return targets
}

// SourcePath is the logical location of a target, marker segments included.
// Template resolution and namespace derivation work from this path.
func SourcePath(t models.GenerationTarget) string {
	return filepath.Join(t.DestinationFolder, filepath.FromSlash(toSlash(t.LogicalPath)))
}

// OutputPath is the on-disk location of a target.
func OutputPath(t models.GenerationTarget) string {
	planned := output.PlanOutputPath(toSlash(t.LogicalPath), MarkerTail)
	return filepath.Join(t.DestinationFolder, filepath.FromSlash(planned))
}

// Namespaces computes the namespace of the generated file and of the
// destination folder. Marker segments never appear in a namespace.
func Namespaces(t models.GenerationTarget) (ns, selectNs string) {
	dir := filepath.Dir(SourcePath(t))
	ns = naming.DeriveNamespace(t.RootNamespace, output.PlanOutputPath(relative(t.ProjectRoot, dir), 0))
	selectNs = naming.DeriveNamespace(t.RootNamespace, relative(t.ProjectRoot, t.DestinationFolder))
	return ns, selectNs
}

// FileInput contains pre-fetched data for planning one file.
// All values must be gathered by the caller - no I/O in the planner.
type FileInput struct {
	Target       models.GenerationTarget
	Class        models.ClassDescriptor
	Context      models.GenerationContext
	OutputExists bool
	// Template is the raw text of the resolved template; empty on a
	// resolution miss.
	Template string
}

// FilePlan describes the work for one file.
type FilePlan struct {
	OutputPath   string
	Skip         bool // output already exists
	Content      string
	CursorOffset int // -1 when the content has no cursor marker
	Effects      []effects.Effect
}

// PlanFolder plans a folder item: a directory under the destination.
func PlanFolder(t models.GenerationTarget) FilePlan {
	dir := filepath.Join(t.DestinationFolder, filepath.FromSlash(toSlash(t.LogicalPath)))
	return FilePlan{
		OutputPath:   dir,
		CursorOffset: -1,
		Effects: []effects.Effect{
			effects.FileEffect{Operation: effects.FileMkdir, Path: dir, Mode: dirMode},
		},
	}
}

// PlanFile plans one generated file. The output directory is always created;
// an existing output is skipped rather than overwritten.
func PlanFile(in FileInput) FilePlan {
	out := OutputPath(in.Target)
	plan := FilePlan{
		OutputPath:   out,
		CursorOffset: -1,
		Effects: []effects.Effect{
			effects.FileEffect{Operation: effects.FileMkdir, Path: filepath.Dir(out), Mode: dirMode},
		},
	}

	if in.OutputExists {
		plan.Skip = true
		plan.Effects = append(plan.Effects, effects.LogEffect{
			Level:   "debug",
			Message: "file already exists",
			Fields:  map[string]any{"path": out},
		})
		return plan
	}

	if in.Template != "" {
		ns, selectNs := Namespaces(in.Target)
		names := render.Names{
			ItemName:             in.Target.EntityName,
			RootNamespace:        in.Context.RootNamespace,
			Namespace:            ns,
			SelectNamespace:      selectNs,
			DomainRootNs:         in.Context.DomainRootNs,
			InfrastructureRootNs: in.Context.InfrastructureRootNs,
			ApiRootNs:            in.Context.ApiRootNs,
		}
		plan.Content = render.Render(in.Template, in.Class, names, render.Options{
			Variant:    in.Context.Variant,
			PrimaryKey: in.Context.PrimaryKey,
			LineEnding: in.Context.LineEnding,
		})
		plan.CursorOffset = render.CursorOffset(plan.Content)
	}

	plan.Effects = append(plan.Effects, effects.FileEffect{
		Operation: effects.FileWrite,
		Path:      out,
		Content:   output.Encode(out, plan.Content),
		Mode:      fileMode,
		Exclusive: true,
	})
	return plan
}

func relative(root, dir string) string {
	rel, err := filepath.Rel(root, dir)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return ""
	}
	return rel
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
