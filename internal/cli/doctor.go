package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/example/codegen/internal/adapters/filesystem"
	"github.com/example/codegen/internal/config"
	"github.com/example/codegen/internal/db"
	"github.com/example/codegen/internal/ports/secondary"
	"github.com/example/codegen/internal/version"
)

// CheckResult represents the outcome of a single check
type CheckResult struct {
	Name    string
	Status  string // "✓", "⚠", "✗"
	Details string // Only shown if Status != "✓"
}

// DoctorCmd returns the doctor command for environment validation
func DoctorCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "doctor [folder]",
		Short: "Validate codegen configuration and project layout",
		Long: `Health check for code generation from a folder.

Validates:
- Configuration files load and pass validation
- The folder belongs to a *.Core project with Infrastructure and Api siblings
- The user template directory exists
- The diagnostics database can be opened

Examples:
  codegen doctor                    # Check from the working directory
  codegen doctor src/Shop.Core      # Check from a project folder
  codegen doctor --quiet            # Exit code only (0=healthy, 1=issues)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := folderArg(args)
			if err != nil {
				return err
			}
			explicit, _ := cmd.Flags().GetString("config")

			cfg, cfgResult := checkConfig(folder, explicit)
			results := []CheckResult{cfgResult}
			if cfg != nil {
				fs := afero.NewOsFs()
				results = append(results,
					checkProjects(cmd.Context(), filesystem.NewProjectLocator(fs), cfg, folder),
					checkUserTemplates(cmd.Context(), filesystem.NewWorkspaceAdapter(fs), cfg),
					checkDatabase(cfg),
				)
			}
			results = append(results, CheckResult{Name: "Version", Status: "✓", Details: "  " + version.String()})

			hasErrors := printResults(cmd.OutOrStdout(), results, quiet)
			if hasErrors {
				return fmt.Errorf("environment validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode - exit code only")

	return cmd
}

// printResults writes the check table and details. Reports whether any check
// failed.
func printResults(out io.Writer, results []CheckResult, quiet bool) bool {
	hasErrors := false
	for _, r := range results {
		if r.Status == "✗" {
			hasErrors = true
			break
		}
	}
	if quiet {
		return hasErrors
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Check              Status")
	fmt.Fprintln(out, "─────────────────────────")
	for _, r := range results {
		fmt.Fprintf(out, "%-18s %s\n", r.Name, r.Status)
	}
	fmt.Fprintln(out)

	hasDetails := false
	for _, r := range results {
		if r.Status != "✓" && r.Details != "" {
			if !hasDetails {
				fmt.Fprintln(out, "Details:")
				hasDetails = true
			}
			fmt.Fprintf(out, "\n%s:\n%s\n", r.Name, r.Details)
		}
	}

	if hasErrors {
		fmt.Fprintln(out, "\n⚠ Issues found.")
	} else {
		fmt.Fprintln(out, "All checks passed.")
	}
	return hasErrors
}

// checkConfig loads the configuration as seen from folder.
func checkConfig(folder, explicit string) (*config.Config, CheckResult) {
	cfg, err := config.Load(folder, explicit)
	if err != nil {
		return nil, CheckResult{Name: "Config", Status: "✗", Details: "  " + FormatError(err)}
	}
	if len(cfg.Files) == 0 {
		return cfg, CheckResult{Name: "Config", Status: "⚠", Details: "  No config files found, using defaults"}
	}
	return cfg, CheckResult{Name: "Config", Status: "✓"}
}

// checkProjects verifies the project trio around folder.
func checkProjects(ctx context.Context, locator *filesystem.ProjectLocator, cfg *config.Config, folder string) CheckResult {
	core, err := locator.Owning(ctx, folder)
	if err != nil {
		return CheckResult{Name: "Projects", Status: "✗", Details: "  " + err.Error()}
	}
	if core == nil {
		return CheckResult{Name: "Projects", Status: "✗", Details: fmt.Sprintf("  No project found around %s", folder)}
	}
	prefix, ok := strings.CutSuffix(core.Name, cfg.Projects.Core)
	if !ok || prefix == "" {
		return CheckResult{
			Name:    "Projects",
			Status:  "✗",
			Details: fmt.Sprintf("  %s is not a %s project\n  Run from a folder inside the core project", core.Name, cfg.Projects.Core),
		}
	}

	var missing []string
	solutionDir := filepath.Dir(core.RootDir)
	for _, suffix := range []string{cfg.Projects.Infrastructure, cfg.Projects.Api} {
		rec, err := locator.FindByName(ctx, solutionDir, prefix+suffix)
		if err != nil || rec == nil {
			missing = append(missing, prefix+suffix)
		}
	}
	if len(missing) > 0 {
		details := ""
		for _, m := range missing {
			details += fmt.Sprintf("  Missing project %s under %s\n", m, solutionDir)
		}
		return CheckResult{Name: "Projects", Status: "✗", Details: details}
	}
	return CheckResult{Name: "Projects", Status: "✓"}
}

// checkUserTemplates warns when the user template directory is absent.
func checkUserTemplates(ctx context.Context, ws secondary.WorkspaceAdapter, cfg *config.Config) CheckResult {
	dir := cfg.UserTemplates()
	exists, err := ws.DirectoryExists(ctx, dir)
	if err != nil || !exists {
		return CheckResult{
			Name:    "Templates",
			Status:  "⚠",
			Details: fmt.Sprintf("  %s not found, only bundled templates are used\n  Run: codegen templates init", dir),
		}
	}
	return CheckResult{Name: "Templates", Status: "✓"}
}

// checkDatabase opens the diagnostics database.
func checkDatabase(cfg *config.Config) CheckResult {
	conn, err := db.Open(cfg.DiagnosticsDB)
	if err != nil {
		return CheckResult{Name: "Diagnostics DB", Status: "⚠", Details: "  " + err.Error()}
	}
	conn.Close()
	return CheckResult{Name: "Diagnostics DB", Status: "✓"}
}
