package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/example/codegen/internal/config"
	"github.com/example/codegen/internal/wire"
)

// ConfigCmd returns the config command.
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeConfig(cmd.OutOrStdout(), wire.Config())
		},
	})

	return cmd
}

func writeConfig(out io.Writer, cfg *config.Config) error {
	if len(cfg.Files) == 0 {
		fmt.Fprintln(out, "# no config files found, using defaults")
	}
	for _, f := range cfg.Files {
		fmt.Fprintf(out, "# %s\n", f)
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}
