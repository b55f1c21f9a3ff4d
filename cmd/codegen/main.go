package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/example/codegen/internal/cli"
	"github.com/example/codegen/internal/logger"
	"github.com/example/codegen/internal/version"
	"github.com/example/codegen/internal/wire"
)

func main() {
	var (
		configPath string
		logLevel   string
		logJSON    bool
	)

	rootCmd := &cobra.Command{
		Use:     "codegen",
		Short:   "codegen - scaffold entity files across Core, Infrastructure and Api projects",
		Version: version.String(),
		Long: `codegen generates C# source files from templates for the entities of a
*.Core project: models, repositories, services, commands, queries, pages and
controllers, placed into the matching Infrastructure and Api projects.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Setup(logLevel, logJSON)
			wire.SetConfigPath(configPath)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file merged over the discovered ones")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Write logs as JSON")

	// Generation
	rootCmd.AddCommand(cli.GenerateCmd())
	rootCmd.AddCommand(cli.EntitiesCmd())

	// Templates and diagnostics
	rootCmd.AddCommand(cli.TemplatesCmd())
	rootCmd.AddCommand(cli.DiagnosticsCmd())

	// Environment
	rootCmd.AddCommand(cli.ConfigCmd())
	rootCmd.AddCommand(cli.DoctorCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
