package commands

import (
	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-code/internal/cli"
	"github.com/pluqqy/pluqqy-code/pkg/document"
)

// LanguageEntry is one row of the languages output
type LanguageEntry struct {
	Extension string `json:"extension" yaml:"extension"`
	Language  string `json:"language" yaml:"language"`
}

// NewLanguagesCommand creates the languages command
func NewLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List the file extensions the editor labels with a language",
		Long: `List the extension to language table used for the footer label.

Entries from the editor.languages section of the settings file are
included; they never replace a built-in entry.

Examples:
  pluqqy-code languages
  pluqqy-code languages -o json`,
		Aliases: []string{"langs"},
		Args:    cobra.NoArgs,
		RunE:    runLanguages,
	}
}

func runLanguages(cmd *cobra.Command, args []string) error {
	outputFormat, err := cli.OutputFormatFlag(cmd)
	if err != nil {
		return err
	}

	ctx, err := cli.NewCommandContext(cmd)
	if err != nil {
		return err
	}
	settings := ctx.LoadSettingsWithDefault()

	languages := document.WithExtra(settings.Editor.Languages)
	entries := make([]LanguageEntry, 0, len(languages))
	for _, ext := range languages.Extensions() {
		entries = append(entries, LanguageEntry{Extension: ext, Language: languages[ext]})
	}

	if outputFormat != string(cli.FormatText) {
		return cli.OutputResults(cmd.OutOrStdout(), outputFormat, entries)
	}

	table := cli.NewTableFormatter(cmd.OutOrStdout())
	table.Header("EXTENSION", "LANGUAGE")
	for _, e := range entries {
		table.Row("."+e.Extension, e.Language)
	}
	return table.Flush()
}
