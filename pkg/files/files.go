package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// ErrExist is returned by CreateText when the target is already on disk.
var ErrExist = os.ErrExist

// OS returns the filesystem backed by the real operating system.
func OS() afero.Fs {
	return afero.NewOsFs()
}

// ResolvePath turns a user supplied path into a clean absolute path.
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", errors.New("path cannot be empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	return filepath.Clean(abs), nil
}

// LineEnding is the newline sequence a file is written with.
type LineEnding string

const (
	LF   LineEnding = "\n"
	CRLF LineEnding = "\r\n"
)

// DetectLineEnding returns CRLF when every newline in text is a "\r\n" pair
// and no carriage return stands alone. Anything else is LF.
func DetectLineEnding(text string) LineEnding {
	pairs := strings.Count(text, "\r\n")
	if pairs == 0 || pairs != strings.Count(text, "\n") || pairs != strings.Count(text, "\r") {
		return LF
	}
	return CRLF
}

// ToLF converts text written with e to plain "\n" newlines.
func (e LineEnding) ToLF(text string) string {
	if e != CRLF {
		return text
	}
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// FromLF converts "\n" newlines to e.
func (e LineEnding) FromLF(text string) string {
	if e != CRLF {
		return text
	}
	return strings.ReplaceAll(text, "\n", "\r\n")
}

// ReadText reads a whole file as text.
func ReadText(fs afero.Fs, path string) (string, error) {
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}
	return string(content), nil
}

// WriteText replaces the whole content of a file, creating it if needed.
func WriteText(fs afero.Fs, path string, content string) error {
	if err := afero.WriteFile(fs, path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// CreateText writes content to a file that must not exist yet. The check and
// the creation are a single exclusive open, so a file created concurrently by
// somebody else is never overwritten.
func CreateText(fs afero.Fs, path string, content string) error {
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("file %s: %w", path, ErrExist)
		}
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close file %s: %w", path, err)
	}
	return nil
}

// Exists reports whether anything (file, directory, ...) is at path.
func Exists(fs afero.Fs, path string) (bool, error) {
	_, err := fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}

// Remove deletes a single file.
func Remove(fs afero.Fs, path string) error {
	if err := fs.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", path, err)
	}
	return nil
}

// Size returns the size of a file in bytes, or 0 if it cannot be read.
func Size(fs afero.Fs, path string) int64 {
	info, err := fs.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
