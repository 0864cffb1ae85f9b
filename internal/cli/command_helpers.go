package cli

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pluqqy/pluqqy-code/pkg/files"
	"github.com/pluqqy/pluqqy-code/pkg/models"
)

// CommandContext carries what every command needs to find its settings
type CommandContext struct {
	FS           afero.Fs
	SettingsPath string
	Settings     *models.Settings
}

// NewCommandContext resolves the settings file from the --config flag,
// falling back to the user's config directory.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	path, _ := cmd.Flags().GetString(FlagConfig)
	if path == "" {
		var err error
		path, err = files.DefaultSettingsPath()
		if err != nil {
			return nil, err
		}
	}
	return &CommandContext{
		FS:           files.OS(),
		SettingsPath: path,
	}, nil
}

// LoadSettings reads the settings file. A missing file yields the defaults.
func (c *CommandContext) LoadSettings() (*models.Settings, error) {
	if c.Settings != nil {
		return c.Settings, nil
	}

	settings, err := files.ReadSettings(c.FS, c.SettingsPath)
	if err != nil {
		return nil, err
	}

	c.Settings = settings
	return settings, nil
}

// LoadSettingsWithDefault loads settings or returns default if error
func (c *CommandContext) LoadSettingsWithDefault() *models.Settings {
	settings, err := c.LoadSettings()
	if err != nil {
		PrintWarning("Using default settings: %v", err)
		settings = models.DefaultSettings()
		c.Settings = settings
	}
	return settings
}
