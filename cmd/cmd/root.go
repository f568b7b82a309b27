package cmd

import (
	"github.com/ostafen/meshcheck/internal/env"
	"github.com/spf13/cobra"
)

func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   env.AppName,
		Short: env.AppName + " - 3D model validation and scanning tool",
	}

	rootCmd.PersistentFlags().String("log-level", "INFO", "minimum level of the detailed log (DEBUG, INFO, WARN, ERROR)")

	rootCmd.AddCommand(
		DefineValidateCommand(),
		DefineKeywordsCommand(),
		DefineAVScanCommand(),
		DefineFormatsCommand(),
		DefineReportCommand(),
	)
	return rootCmd
}

func Execute() error {
	return NewRootCommand().Execute()
}
