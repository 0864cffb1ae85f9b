package models

import "time"

// Settings represents the application configuration
type Settings struct {
	Editor  EditorSettings  `yaml:"editor" json:"editor"`
	UI      UISettings      `yaml:"ui" json:"ui"`
	Logging LoggingSettings `yaml:"logging" json:"logging"`
}

// EditorSettings controls the editing area
type EditorSettings struct {
	ShowLineNumbers bool              `yaml:"show_line_numbers" json:"show_line_numbers"`
	TabWidth        int               `yaml:"tab_width" json:"tab_width"`
	Languages       map[string]string `yaml:"languages,omitempty" json:"languages,omitempty"` // extra extension -> label entries
}

// UISettings controls UI preferences
type UISettings struct {
	ShowHiddenFiles bool          `yaml:"show_hidden_files" json:"show_hidden_files"`
	SidebarWidth    int           `yaml:"sidebar_width" json:"sidebar_width"`
	StatusTimeout   time.Duration `yaml:"status_timeout" json:"status_timeout"`
}

// LoggingSettings controls where diagnostics go. The terminal is owned by
// the UI, so logs are only ever written to a file.
type LoggingSettings struct {
	Verbosity int    `yaml:"verbosity" json:"verbosity"`
	File      string `yaml:"file,omitempty" json:"file,omitempty"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		Editor: EditorSettings{
			ShowLineNumbers: true,
			TabWidth:        4,
		},
		UI: UISettings{
			ShowHiddenFiles: false,
			SidebarWidth:    30,
			StatusTimeout:   3 * time.Second,
		},
		Logging: LoggingSettings{
			Verbosity: 0,
		},
	}
}

// Normalize fills zero values left by a partial settings file with defaults.
func (s *Settings) Normalize() {
	defaults := DefaultSettings()
	if s.Editor.TabWidth <= 0 {
		s.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if s.UI.SidebarWidth <= 0 {
		s.UI.SidebarWidth = defaults.UI.SidebarWidth
	}
	if s.UI.StatusTimeout <= 0 {
		s.UI.StatusTimeout = defaults.UI.StatusTimeout
	}
	if s.Logging.Verbosity < 0 {
		s.Logging.Verbosity = 0
	}
}
