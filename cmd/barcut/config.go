package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/piwi3910/BarCut/internal/config"
	"github.com/piwi3910/BarCut/internal/export"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(newConfigInitCmd(a), newConfigShowCmd(a))
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a configuration file with the default settings",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipConfigAnnotation: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath
			if path == "" {
				path = config.DefaultConfigPath()
			}

			if _, err := os.Stat(path); err == nil {
				if !force {
					return NewCLIError(ExitConfigError, "config file already exists at "+path+" (use --force to overwrite)")
				}
				backup, err := config.Backup(path)
				if err != nil {
					return WrapError(ExitConfigError, "failed to back up config file", err)
				}
				cmd.Println("Previous configuration saved to " + backup)
			}
			if err := config.Save(path, config.Default()); err != nil {
				return WrapError(ExitConfigError, "failed to write config file", err)
			}
			cmd.Println("Configuration written to " + path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file, keeping a .bak copy")
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return export.WriteYAML(cmd.OutOrStdout(), a.cfg)
		},
	}
}
