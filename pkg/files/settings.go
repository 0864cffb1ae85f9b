package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/pluqqy-code/pkg/models"
)

const (
	ConfigDirName    = "pluqqy-code"
	SettingsFileName = "settings.yaml"
)

// DefaultSettingsPath returns the settings location under the user's config
// directory ($XDG_CONFIG_HOME or the platform equivalent).
func DefaultSettingsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, ConfigDirName, SettingsFileName), nil
}

// ReadSettings loads settings from path. A missing file yields the defaults.
func ReadSettings(fs afero.Fs, path string) (*models.Settings, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return models.DefaultSettings(), nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	settings := models.DefaultSettings()
	if err := yaml.Unmarshal(content, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML %s: %w", path, err)
	}
	settings.Normalize()

	return settings, nil
}

// WriteSettings stores settings at path, creating parent directories.
func WriteSettings(fs afero.Fs, path string, settings *models.Settings) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for settings: %w", err)
	}

	content, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings to YAML: %w", err)
	}

	if err := afero.WriteFile(fs, path, content, 0644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}

	return nil
}
