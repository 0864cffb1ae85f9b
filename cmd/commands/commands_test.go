package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pluqqy/pluqqy-code/internal/cli"
	"github.com/pluqqy/pluqqy-code/pkg/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		cli.SetGlobalFlags(false, false, false)
		cli.SetStreams(&cobra.Command{})
	})

	root := &cobra.Command{Use: "pluqqy-code", PersistentPreRun: cli.ApplyGlobalFlags}
	cli.AddGlobalFlags(root)
	root.AddCommand(NewConfigCommand(), NewLanguagesCommand())

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	out, err := execute(t, "config", "path", "--config", path)
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
}

func TestConfigShowDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	out, err := execute(t, "config", "show", "--config", path)
	require.NoError(t, err)

	var got models.Settings
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, *models.DefaultSettings(), got)
}

func TestConfigShowJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor:\n  tab_width: 8\n"), 0644))

	out, err := execute(t, "config", "show", "--config", path, "-o", "json")
	require.NoError(t, err)

	var got models.Settings
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 8, got.Editor.TabWidth)
}

func TestConfigShowRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: [oops"), 0644))

	_, err := execute(t, "config", "show", "--config", path)
	assert.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	_, err := execute(t, "config", "init", "--config", path, "-q")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tab_width: 4")
}

func TestConfigInitReportsThroughCommandOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	out, err := execute(t, "config", "init", "--config", path, "--no-color")
	require.NoError(t, err)
	assert.Equal(t, "OK: Wrote default settings to "+path+"\n", out)
}

func TestConfigInitOverwrite(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"force flag", []string{"--force"}},
		{"yes flag", []string{"-y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			require.NoError(t, os.WriteFile(path, []byte("editor:\n  tab_width: 8\n"), 0644))

			args := append([]string{"config", "init", "--config", path, "-q"}, tt.args...)
			_, err := execute(t, args...)
			require.NoError(t, err)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(data), "tab_width: 4")
		})
	}
}

func TestLanguagesText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor:\n  languages:\n    zig: zig\n    py: snake\n"), 0644))

	out, err := execute(t, "languages", "--config", path)
	require.NoError(t, err)

	assert.Contains(t, out, "EXTENSION")
	assert.Regexp(t, `\.py\s+python`, out)
	assert.Regexp(t, `\.zig\s+zig`, out)
	assert.NotContains(t, out, "snake")
}

func TestLanguagesStructured(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	out, err := execute(t, "languages", "--config", path, "-o", "json")
	require.NoError(t, err)

	var entries []LanguageEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Contains(t, entries, LanguageEntry{Extension: "go", Language: "go"})
	assert.Contains(t, entries, LanguageEntry{Extension: "yml", Language: "yaml"})
}

func TestLanguagesRejectsUnknownFormat(t *testing.T) {
	_, err := execute(t, "languages", "-o", "csv", "--config", filepath.Join(t.TempDir(), "x.yaml"))
	assert.Error(t, err)
}
