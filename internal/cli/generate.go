package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/codegen/internal/ports/primary"
	"github.com/example/codegen/internal/wire"
)

// GenerateCmd returns the generate command.
func GenerateCmd() *cobra.Command {
	var (
		input  string
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "generate [folder]",
		Short: "Generate files for one or more entities",
		Long: `Generate every artifact for the named entities across the Core,
Infrastructure and Api projects.

The folder must lie inside a *.Core project; its siblings are located next
to it. Input is a comma-separated list of names. "Order.(cs,razor)" expands
to one name per extension and a trailing "/" creates a folder. When --input
is omitted the entities are offered in a picker.

Examples:
  codegen generate src/Shop.Core/Service --input Order
  codegen generate --input "Order, Customer" --dry-run
  codegen generate src/Shop.Core --input Reports/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := folderArg(args)
			if err != nil {
				return err
			}

			adapter := wire.GenerationAdapterWithOutput(cmd.OutOrStdout())
			result, err := adapter.Generate(cmd.Context(), folder, input, dryRun)
			if err != nil {
				return err
			}
			if failed := result.Count(primary.StatusFailed); failed > 0 {
				return fmt.Errorf("%d of %d files failed (see 'codegen diagnostics list')", failed, len(result.Outcomes))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Names to generate; prompts when empty")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan and render without writing files")

	return cmd
}

// EntitiesCmd returns the entities command.
func EntitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities [folder]",
		Short: "List entity classes available for generation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, err := folderArg(args)
			if err != nil {
				return err
			}
			return wire.GenerationAdapterWithOutput(cmd.OutOrStdout()).Entities(cmd.Context(), folder)
		},
	}
}

// folderArg returns the absolute folder named by args, or the working
// directory.
func folderArg(args []string) (string, error) {
	if len(args) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return cwd, nil
	}
	abs, err := filepath.Abs(args[0])
	if err != nil {
		return "", fmt.Errorf("invalid folder %q: %w", args[0], err)
	}
	return abs, nil
}
