package cmd

import (
	"github.com/ostafen/meshcheck/internal/config"
	"github.com/spf13/cobra"
)

// loadConfig reads the environment configuration and the optional YAML
// file. The returned file is never nil.
func loadConfig(cmd *cobra.Command) (*config.Config, *config.File, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	path := cfg.ConfigFile
	if cmd.Flags().Changed("config") {
		path, _ = cmd.Flags().GetString("config")
	}

	file, err := config.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}
	if file == nil {
		file = &config.File{}
	}
	return cfg, file, nil
}

func stringSliceOr(cmd *cobra.Command, name string, fallback []string) []string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetStringSlice(name)
	return v
}
