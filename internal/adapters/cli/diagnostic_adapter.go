package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/example/codegen/internal/ports/primary"
)

// DiagnosticAdapter translates CLI operations to DiagnosticService calls.
type DiagnosticAdapter struct {
	service primary.DiagnosticService
	out     io.Writer
}

// NewDiagnosticAdapter creates a new DiagnosticAdapter with the given service.
func NewDiagnosticAdapter(service primary.DiagnosticService, out io.Writer) *DiagnosticAdapter {
	return &DiagnosticAdapter{
		service: service,
		out:     out,
	}
}

// List prints recorded failures, newest first.
func (a *DiagnosticAdapter) List(ctx context.Context, filters primary.DiagnosticFilters) error {
	diagnostics, err := a.service.ListDiagnostics(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list diagnostics: %w", err)
	}

	if len(diagnostics) == 0 {
		fmt.Fprintln(a.out, "No diagnostics recorded")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tBATCH\tENTITY\tPATH\tMESSAGE")
	fmt.Fprintln(w, "--\t-------\t-----\t------\t----\t-------")
	for _, d := range diagnostics {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", d.ID, d.CreatedAt, shortID(d.BatchID), d.Entity, d.Path, d.Message)
	}
	return w.Flush()
}

// Show prints one diagnostic in full.
func (a *DiagnosticAdapter) Show(ctx context.Context, id string) error {
	d, err := a.service.GetDiagnostic(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get diagnostic: %w", err)
	}

	fmt.Fprintf(a.out, "ID:      %s\n", d.ID)
	fmt.Fprintf(a.out, "Batch:   %s\n", d.BatchID)
	fmt.Fprintf(a.out, "Level:   %s\n", d.Level)
	fmt.Fprintf(a.out, "Entity:  %s\n", d.Entity)
	fmt.Fprintf(a.out, "Path:    %s\n", d.Path)
	fmt.Fprintf(a.out, "Created: %s\n", d.CreatedAt)
	fmt.Fprintf(a.out, "\n%s\n", d.Message)
	return nil
}

// Prune deletes diagnostics older than days.
func (a *DiagnosticAdapter) Prune(ctx context.Context, days int) error {
	if days < 0 {
		return fmt.Errorf("days must not be negative, got %d", days)
	}

	n, err := a.service.PruneDiagnostics(ctx, days)
	if err != nil {
		return fmt.Errorf("failed to prune diagnostics: %w", err)
	}

	fmt.Fprintf(a.out, "✓ Pruned %d diagnostics older than %d days\n", n, days)
	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
