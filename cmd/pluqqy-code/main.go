package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/pluqqy/pluqqy-code/cmd/commands"
	"github.com/pluqqy/pluqqy-code/internal/cli"
	"github.com/pluqqy/pluqqy-code/pkg/document"
	"github.com/pluqqy/pluqqy-code/pkg/editor"
	"github.com/pluqqy/pluqqy-code/pkg/files"
	"github.com/pluqqy/pluqqy-code/pkg/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "pluqqy-code [path]",
	Short: "Terminal code editor with a workspace explorer and tabs",
	Long: `Pluqqy Code is a small terminal code editor. It shows the workspace in an
explorer next to a tabbed editing area and asks before anything unsaved
is lost.

With no argument the current directory is the workspace. A directory
argument becomes the workspace; a file argument opens that file with its
directory as the workspace.`,
	Args:             cobra.MaximumNArgs(1),
	PersistentPreRun: cli.ApplyGlobalFlags,
	// main reports errors through cli.PrintError.
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		var arg string
		if len(args) > 0 {
			arg = args[0]
		}

		fs := files.OS()
		target, err := cli.ResolveTarget(fs, arg)
		if err != nil {
			return err
		}

		ctx, err := cli.NewCommandContext(cmd)
		if err != nil {
			return err
		}
		settings := ctx.LoadSettingsWithDefault()

		verbose, _ := cmd.Flags().GetCount(cli.FlagVerbose)
		logFile, _ := cmd.Flags().GetString(cli.FlagLogFile)
		cli.ConfigureLogging(settings.Logging, verbose, logFile)
		log := commonlog.GetLogger("pluqqy-code")
		log.Infof("workspace %s", target.Root)

		surface := editor.New(document.Env{
			FS:        fs,
			Languages: document.WithExtra(settings.Editor.Languages),
		}, target.Root)
		if target.File != "" {
			// Queued until the first window size arrives.
			surface.OpenFile(target.File)
		}

		app := tui.NewApp(surface, settings)
		p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := p.Run(); err != nil {
			log.Errorf("program: %v", err)
			cli.PrintWarning("This could be due to terminal compatibility issues. Try running in a different terminal.")
			return fmt.Errorf("failed to start the terminal user interface: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of Pluqqy Code",
	Long:  `Display the current version of the Pluqqy Code editor`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "Pluqqy Code version %s\n", version)
	},
}

func init() {
	cli.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(commands.NewLanguagesCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cli.PrintError("%v", err)
		os.Exit(1)
	}
}
