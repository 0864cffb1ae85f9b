// Package document models one open file or untitled buffer.
package document

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/pluqqy/pluqqy-code/pkg/events"
	"github.com/pluqqy/pluqqy-code/pkg/files"
)

const (
	UntitledName = "<Untitled>"
	DirtyMarker  = "*"
)

// Env is what a document needs from the outside world.
type Env struct {
	FS        afero.Fs
	Bus       *events.Bus
	Languages Languages
}

// Document is the in-memory state of one editor tab.
//
// IsDirty, Title and Language are derived on every call and never cached.
type Document struct {
	id        string
	path      string
	savedText string
	text      string

	// Text is held with "\n" newlines and converted back on write.
	lineEnding files.LineEnding

	env Env
}

// NewID returns a fresh document identifier.
func NewID() string {
	return "doc-" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Open creates a document for path, or an untitled buffer when path is "".
//
// Open never fails to produce a document: if the file cannot be read the
// document starts empty (keeping its path and title) and a *ReadError is
// returned alongside it.
func Open(env Env, path string) (*Document, error) {
	if env.Languages == nil {
		env.Languages = DefaultLanguages()
	}

	d := &Document{
		id:         NewID(),
		env:        env,
		lineEnding: files.LF,
	}
	if path == "" {
		return d, nil
	}

	d.path = filepath.Clean(path)
	text, err := files.ReadText(env.FS, d.path)
	if err != nil {
		return d, &ReadError{Path: d.path, Err: err}
	}
	d.lineEnding = files.DetectLineEnding(text)
	text = d.lineEnding.ToLF(text)
	d.savedText = text
	d.text = text

	return d, nil
}

func (d *Document) ID() string        { return d.id }
func (d *Document) Path() string      { return d.path }
func (d *Document) Text() string      { return d.text }
func (d *Document) SavedText() string { return d.savedText }

// LineEnding is the newline sequence used when the text is written.
func (d *Document) LineEnding() files.LineEnding { return d.lineEnding }

// IsUntitled reports whether the document has never been saved to a path.
func (d *Document) IsUntitled() bool {
	return d.path == ""
}

// IsDirty reports whether the live text differs from what is on disk.
func (d *Document) IsDirty() bool {
	return d.text != d.savedText
}

// Name is the file name, or UntitledName.
func (d *Document) Name() string {
	if d.path == "" {
		return UntitledName
	}
	return filepath.Base(d.path)
}

// Title is the tab label: the name plus a dirty marker.
func (d *Document) Title() string {
	if d.IsDirty() {
		return d.Name() + DirtyMarker
	}
	return d.Name()
}

// Language is the label for the path's extension, "" when unknown.
func (d *Document) Language() string {
	return d.env.Languages.For(d.path)
}

// SetText replaces the live text.
func (d *Document) SetText(text string) {
	d.mutate(func() {
		d.text = text
	})
}

// Save writes the live text to the document's path.
func (d *Document) Save() error {
	if d.path == "" {
		return ErrNoPath
	}

	text := d.text
	content := d.lineEnding.FromLF(text)
	if err := files.WriteText(d.env.FS, d.path, content); err != nil {
		return &SaveError{Path: d.path, Err: err}
	}

	d.mutate(func() {
		d.savedText = text
	})
	d.publish(events.Saved{ID: d.id, Path: d.path, Size: len(content)})

	return nil
}

// SaveAs writes the live text to a new file and retargets the document.
// An existing target is never overwritten: the call fails with
// ErrAlreadyExists and nothing changes.
func (d *Document) SaveAs(path string) error {
	target, err := files.ResolvePath(path)
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}

	exists, err := files.Exists(d.env.FS, target)
	if err != nil {
		return &SaveError{Path: target, Err: err}
	}
	if exists {
		return fmt.Errorf("%s: %w", target, ErrAlreadyExists)
	}

	text := d.text
	content := d.lineEnding.FromLF(text)
	if err := files.CreateText(d.env.FS, target, content); err != nil {
		if errors.Is(err, files.ErrExist) {
			return fmt.Errorf("%s: %w", target, ErrAlreadyExists)
		}
		return &SaveError{Path: target, Err: err}
	}

	d.mutate(func() {
		d.savedText = text
		d.path = target
	})
	d.publish(events.SavedAs{ID: d.id, Path: target, Size: len(content)})

	return nil
}

// Delete removes the document's file. The document itself stays usable;
// removing its tab is up to the caller.
func (d *Document) Delete() error {
	if d.path == "" {
		return ErrNoPath
	}

	if err := files.Remove(d.env.FS, d.path); err != nil {
		return &DeleteError{Path: d.path, Err: err}
	}
	d.publish(events.Deleted{ID: d.id, Path: d.path})

	return nil
}

// mutate runs fn and announces a title change if fn caused one.
func (d *Document) mutate(fn func()) {
	before := d.Title()
	fn()
	if after := d.Title(); after != before {
		d.publish(events.TitleChanged{ID: d.id, Title: after})
	}
}

func (d *Document) publish(e events.Event) {
	if d.env.Bus != nil {
		d.env.Bus.Publish(e)
	}
}
