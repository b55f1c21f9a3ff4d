package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/example/codegen/internal/ports/primary"
)

// TemplateAdapter translates CLI operations to TemplateService calls.
type TemplateAdapter struct {
	service primary.TemplateService
	out     io.Writer
}

// NewTemplateAdapter creates a new TemplateAdapter with the given service.
func NewTemplateAdapter(service primary.TemplateService, out io.Writer) *TemplateAdapter {
	return &TemplateAdapter{
		service: service,
		out:     out,
	}
}

// List prints the merged catalog seen from folder in priority order.
func (a *TemplateAdapter) List(ctx context.Context, folder string) error {
	catalog, err := a.service.Catalog(ctx, folder)
	if err != nil {
		return err
	}

	if len(catalog) == 0 {
		fmt.Fprintln(a.out, "No templates found")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ORIGIN\tPATH")
	fmt.Fprintln(w, "------\t----")
	for _, e := range catalog {
		fmt.Fprintf(w, "%s\t%s\n", e.Origin, e.AbsolutePath)
	}
	return w.Flush()
}

// Resolve prints which template a file at path would be generated from.
func (a *TemplateAdapter) Resolve(ctx context.Context, path string) error {
	res, err := a.service.Resolve(ctx, path)
	if err != nil {
		return err
	}

	if !res.Found {
		fmt.Fprintf(a.out, "%s no template for %s (an empty file would be written)\n",
			color.New(color.FgYellow).Sprint("!"), path)
		return nil
	}

	fmt.Fprintf(a.out, "%s %s\n", color.New(color.FgGreen).Sprint("✓"), res.Path)
	fmt.Fprintf(a.out, "  rule:     %s\n", res.Rule)
	if res.Category != "" {
		fmt.Fprintf(a.out, "  category: %s\n", res.Category)
	}
	return nil
}

// Init writes the starter set into dir.
func (a *TemplateAdapter) Init(ctx context.Context, dir string, force bool) error {
	written, err := a.service.InitStarter(ctx, dir, force)
	for _, p := range written {
		fmt.Fprintf(a.out, "%s %s\n", color.New(color.FgGreen).Sprint("CREATE "), p)
	}
	if err != nil {
		return err
	}

	if len(written) == 0 {
		fmt.Fprintf(a.out, "All starter templates already exist in %s (use --force to overwrite)\n", dir)
		return nil
	}
	fmt.Fprintf(a.out, "✓ Wrote %d templates to %s\n", len(written), dir)
	return nil
}
