package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/pluqqy/pluqqy-code/pkg/files"
)

// Target is what the editor was started on.
type Target struct {
	// Root is the workspace directory shown in the explorer.
	Root string
	// File is opened once the UI is ready; empty when a directory was given.
	File string
}

// TargetError reports a command line path the editor cannot start on.
type TargetError struct {
	Path    string
	Missing bool
}

func (e *TargetError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s does not exist.", e.Path)
	}
	return fmt.Sprintf("%s is not a directory or a file.", e.Path)
}

// ResolveTarget maps the optional path argument to a workspace. No argument
// means the current directory; a file makes its parent the workspace root.
func ResolveTarget(fs afero.Fs, arg string) (Target, error) {
	if arg == "" {
		arg = "."
	}

	path, err := files.ResolvePath(arg)
	if err != nil {
		return Target{}, err
	}

	info, err := fs.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Target{}, &TargetError{Path: arg, Missing: true}
		}
		return Target{}, fmt.Errorf("failed to access %s: %w", arg, err)
	}

	switch {
	case info.IsDir():
		return Target{Root: path}, nil
	case info.Mode().IsRegular():
		return Target{Root: filepath.Dir(path), File: path}, nil
	default:
		return Target{}, &TargetError{Path: arg}
	}
}
