package cli

import (
	"github.com/spf13/cobra"
)

// Names of the persistent flags shared by every command.
const (
	FlagConfig  = "config"
	FlagOutput  = "output"
	FlagVerbose = "verbose"
	FlagLogFile = "log-file"
	FlagQuiet   = "quiet"
	FlagNoColor = "no-color"
	FlagYes     = "yes"
)

// AddGlobalFlags registers the persistent flags on the root command.
func AddGlobalFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String(FlagConfig, "", "settings file (default $XDG_CONFIG_HOME/pluqqy-code/settings.yaml)")
	flags.StringP(FlagOutput, "o", string(FormatText), "output format (text, json, yaml)")
	flags.CountP(FlagVerbose, "v", "add verbosity (repeatable)")
	flags.String(FlagLogFile, "", "write logs to this file")
	flags.BoolP(FlagQuiet, "q", false, "suppress informational output")
	flags.Bool(FlagNoColor, false, "disable symbols and colors in output")
	flags.BoolP(FlagYes, "y", false, "answer yes to confirmations")
}

// ApplyGlobalFlags copies the output related flags into the package state
// and points the message helpers at cmd's writers. It is meant to run as the
// root's PersistentPreRun.
func ApplyGlobalFlags(cmd *cobra.Command, _ []string) {
	q, _ := cmd.Flags().GetBool(FlagQuiet)
	nc, _ := cmd.Flags().GetBool(FlagNoColor)
	sc, _ := cmd.Flags().GetBool(FlagYes)
	SetGlobalFlags(q, nc, sc)
	SetStreams(cmd)
}

// OutputFormatFlag returns the validated -o value.
func OutputFormatFlag(cmd *cobra.Command) (string, error) {
	format, _ := cmd.Flags().GetString(FlagOutput)
	if format == "" {
		format = string(FormatText)
	}
	if err := ValidateOutputFormat(format); err != nil {
		return "", err
	}
	return format, nil
}
