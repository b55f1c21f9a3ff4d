package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/codegen/internal/ports/primary"
	"github.com/example/codegen/internal/wire"
)

var diagnosticsCmd = &cobra.Command{
	Use:   "diagnostics",
	Short: "Inspect recorded generation failures",
}

var diagnosticsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded failures, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		batch, _ := cmd.Flags().GetString("batch")
		entity, _ := cmd.Flags().GetString("entity")
		limit, _ := cmd.Flags().GetInt("limit")

		return wire.DiagnosticAdapter().List(cmd.Context(), primary.DiagnosticFilters{
			BatchID: batch,
			Entity:  entity,
			Limit:   limit,
		})
	},
}

var diagnosticsShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one recorded failure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return wire.DiagnosticAdapter().Show(cmd.Context(), args[0])
	},
}

var diagnosticsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old diagnostics",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")
		return wire.DiagnosticAdapter().Prune(cmd.Context(), days)
	},
}

// DiagnosticsCmd returns the diagnostics command
func DiagnosticsCmd() *cobra.Command {
	diagnosticsListCmd.Flags().StringP("batch", "b", "", "Filter by batch ID")
	diagnosticsListCmd.Flags().StringP("entity", "e", "", "Filter by entity name")
	diagnosticsListCmd.Flags().IntP("limit", "n", 50, "Maximum number of entries")
	diagnosticsPruneCmd.Flags().Int("days", 30, "Delete entries older than this many days")

	diagnosticsCmd.AddCommand(diagnosticsListCmd)
	diagnosticsCmd.AddCommand(diagnosticsShowCmd)
	diagnosticsCmd.AddCommand(diagnosticsPruneCmd)

	return diagnosticsCmd
}
