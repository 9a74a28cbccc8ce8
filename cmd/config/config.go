// Package config implements the config command for inspecting and
// generating configuration files.
package config

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tastebase/tastebase/internal/conf"
)

// Command creates the config command with its subcommands.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the Tastebase configuration",
	}
	cmd.AddCommand(initCommand(), pathsCommand())
	return cmd
}

// initCommand writes a default config.yaml to the first config path.
func initCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := conf.GetDefaultConfigPaths()
			if err != nil {
				return err
			}
			target := filepath.Join(paths[0], "config.yaml")
			if err := conf.WriteDefaultConfig(target); err != nil {
				return err
			}
			cmd.Printf("Wrote default configuration to %s\n", target)
			return nil
		},
	}
}

// pathsCommand prints the config file search paths in priority order.
func pathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show the configuration search paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := conf.GetDefaultConfigPaths()
			if err != nil {
				return err
			}
			for i, p := range paths {
				cmd.Printf("%d. %s\n", i+1, filepath.Join(p, "config.yaml"))
			}
			return nil
		},
	}
}
