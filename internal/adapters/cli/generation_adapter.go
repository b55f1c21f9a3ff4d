// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/codegen/internal/ports/primary"
)

// GenerationAdapter is a thin adapter that translates CLI operations to GenerationService calls.
// It depends only on the GenerationService interface, enabling easy testing with mocks.
type GenerationAdapter struct {
	service primary.GenerationService
	out     io.Writer
}

// NewGenerationAdapter creates a new GenerationAdapter with the given service.
func NewGenerationAdapter(service primary.GenerationService, out io.Writer) *GenerationAdapter {
	return &GenerationAdapter{
		service: service,
		out:     out,
	}
}

// Generate runs one batch and prints a line per requested file.
// Returns the result so callers can pick an exit code.
func (a *GenerationAdapter) Generate(ctx context.Context, folder, input string, dryRun bool) (*primary.BatchResult, error) {
	result, err := a.service.Generate(ctx, primary.GenerateRequest{
		Folder: folder,
		Input:  input,
		DryRun: dryRun,
	})
	if err != nil {
		return nil, err
	}

	if len(result.Outcomes) == 0 {
		fmt.Fprintln(a.out, "Nothing to generate")
		return result, nil
	}

	for _, o := range result.Outcomes {
		fmt.Fprintf(a.out, "%s %s\n", statusLabel(o.Status), displayPath(o))
		switch {
		case o.Status == primary.StatusFailed:
			fmt.Fprintf(a.out, "        %v\n", o.Err)
		case o.CursorOffset >= 0 && o.Status != primary.StatusSkipped:
			fmt.Fprintf(a.out, "        cursor at offset %d\n", o.CursorOffset)
		}
	}

	fmt.Fprintf(a.out, "\nBatch %s: %d created, %d skipped, %d failed",
		result.BatchID,
		result.Count(primary.StatusCreated),
		result.Count(primary.StatusSkipped),
		result.Count(primary.StatusFailed),
	)
	if dryRun {
		fmt.Fprintf(a.out, ", %d planned (dry run)", result.Count(primary.StatusPlanned))
	}
	fmt.Fprintln(a.out)
	return result, nil
}

// Entities lists the entity classes a generation from folder can target.
func (a *GenerationAdapter) Entities(ctx context.Context, folder string) error {
	entities, err := a.service.ListEntities(ctx, folder)
	if err != nil {
		return err
	}

	if len(entities) == 0 {
		fmt.Fprintln(a.out, "No entities found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tBASE\tPROPERTIES")
	fmt.Fprintln(w, "----\t----\t----------")
	for _, e := range entities {
		fmt.Fprintf(w, "%s\t%s\t%d\n", e.Name, e.BaseName, len(e.Properties))
	}
	return w.Flush()
}

func statusLabel(status primary.FileStatus) string {
	switch status {
	case primary.StatusCreated:
		return color.New(color.FgGreen).Sprint("CREATE ")
	case primary.StatusSkipped:
		return color.New(color.FgBlue).Sprint("EXISTS ")
	case primary.StatusFailed:
		return color.New(color.FgRed).Sprint("FAILED ")
	case primary.StatusFolder:
		return color.New(color.FgCyan).Sprint("FOLDER ")
	default:
		return color.New(color.FgYellow).Sprint("PLAN   ")
	}
}

func displayPath(o primary.FileOutcome) string {
	switch {
	case o.Path != "":
		return o.Path
	case o.Entity != "":
		return o.Entity
	default:
		return o.Input
	}
}
