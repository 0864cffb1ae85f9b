package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-code/internal/cli"
	"github.com/pluqqy/pluqqy-code/pkg/files"
	"github.com/pluqqy/pluqqy-code/pkg/models"
)

var (
	configInitForce bool
)

// NewConfigCommand creates the config command and its subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the settings file",
		Long: `Inspect or create the editor settings file.

The settings file is YAML and lives under your config directory
($XDG_CONFIG_HOME/pluqqy-code/settings.yaml) unless --config is given.

Examples:
  # Show the effective settings
  pluqqy-code config show

  # Show them as JSON
  pluqqy-code config show -o json

  # Write a settings file with the defaults
  pluqqy-code config init`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigInitCommand())
	cmd.AddCommand(newConfigPathCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	}
}

func newConfigInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a settings file with the default values",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}

	cmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing settings file")

	return cmd
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the location of the settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cli.NewCommandContext(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ctx.SettingsPath)
			return nil
		},
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	outputFormat, err := cli.OutputFormatFlag(cmd)
	if err != nil {
		return err
	}

	ctx, err := cli.NewCommandContext(cmd)
	if err != nil {
		return err
	}

	settings, err := ctx.LoadSettings()
	if err != nil {
		return err
	}

	// Text output is the YAML file itself.
	if outputFormat == string(cli.FormatText) {
		outputFormat = string(cli.FormatYAML)
	}
	return cli.OutputResults(cmd.OutOrStdout(), outputFormat, settings)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	ctx, err := cli.NewCommandContext(cmd)
	if err != nil {
		return err
	}

	exists, err := files.Exists(ctx.FS, ctx.SettingsPath)
	if err != nil {
		return err
	}

	if exists && !configInitForce {
		ok, err := cli.Confirm(fmt.Sprintf("Settings file %s already exists. Overwrite?", ctx.SettingsPath), false)
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !ok {
			cli.PrintInfo("Kept existing settings at %s", ctx.SettingsPath)
			return nil
		}
	}

	if err := files.WriteSettings(ctx.FS, ctx.SettingsPath, models.DefaultSettings()); err != nil {
		return err
	}

	cli.PrintSuccess("Wrote default settings to %s", ctx.SettingsPath)
	return nil
}
