package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/example/codegen/internal/wire"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Inspect and install code templates",
	Long: `Templates are searched in every reserved template folder from the
destination up to the filesystem root, then the user directory
(~/.codegen/templates), then the bundled starter set.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list [folder]",
	Short: "List templates visible from a folder, highest priority first",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folder, err := folderArg(args)
		if err != nil {
			return err
		}
		return wire.TemplateAdapter().List(cmd.Context(), folder)
	},
}

var templatesResolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Show which template a file would be generated from",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return err
		}
		return wire.TemplateAdapter().Resolve(cmd.Context(), path)
	},
}

var templatesInitCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Copy the starter templates for the configured variant",
	Long: `Copy the bundled starter set into dir, by default the user template
directory. Existing files are kept unless --force is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")

		dir := wire.Config().UserTemplates()
		if len(args) == 1 {
			abs, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}
			dir = abs
		}
		return wire.TemplateAdapter().Init(cmd.Context(), dir, force)
	},
}

// TemplatesCmd returns the templates command
func TemplatesCmd() *cobra.Command {
	templatesInitCmd.Flags().BoolP("force", "f", false, "Overwrite existing templates")

	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesResolveCmd)
	templatesCmd.AddCommand(templatesInitCmd)

	return templatesCmd
}
