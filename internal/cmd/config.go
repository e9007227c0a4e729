package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"commando/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage commando configuration",
}
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create initial configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.Init(cfgFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration file created at: %s\n", path)
		return nil
	},
}
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		lines, path, err := config.Show(cfgFile)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# %s\n", path)
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
		return nil
	},
}
var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Update a configuration value",
	Long: `Update a configuration value. Keys: template, strict_templates, expand_messages,
editor, auto_add, auto_push, no_verify, sign_off, and types.NAME for a custom commit type.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return config.Set(cfgFile, args[0], args[1])
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}
