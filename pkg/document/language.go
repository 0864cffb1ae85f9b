package document

import (
	"path/filepath"
	"sort"
	"strings"
)

// Languages maps a file extension (without the dot) to a language label.
type Languages map[string]string

var builtinLanguages = Languages{
	"py":       "python",
	"json":     "json",
	"md":       "markdown",
	"markdown": "markdown",
	"yaml":     "yaml",
	"yml":      "yaml",
	"toml":     "toml",
	"rs":       "rust",
	"html":     "html",
	"htm":      "html",
	"css":      "css",
	"xml":      "xml",
	"regex":    "regex",
	"sql":      "sql",
	"js":       "javascript",
	"java":     "java",
	"sh":       "bash",
	"go":       "go",
}

// DefaultLanguages returns a copy of the built-in table.
func DefaultLanguages() Languages {
	out := make(Languages, len(builtinLanguages))
	for ext, label := range builtinLanguages {
		out[ext] = label
	}
	return out
}

// WithExtra returns the built-in table extended by extra. Built-in entries
// are never replaced.
func WithExtra(extra map[string]string) Languages {
	out := DefaultLanguages()
	for ext, label := range extra {
		ext = strings.TrimPrefix(strings.ToLower(ext), ".")
		if ext == "" || label == "" {
			continue
		}
		if _, ok := out[ext]; ok {
			continue
		}
		out[ext] = label
	}
	return out
}

// For returns the label for path, or "" when the path is empty or the
// extension is unknown.
func (l Languages) For(path string) string {
	if path == "" {
		return ""
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return ""
	}
	return l[ext]
}

// Extensions returns the known extensions sorted alphabetically.
func (l Languages) Extensions() []string {
	exts := make([]string, 0, len(l))
	for ext := range l {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
