// Package workflow holds the confirmation procedures for saving, closing,
// deleting and quitting. Each procedure decides synchronously whether the
// user has to be asked, posts a Prompt if so, and finishes in the prompt's
// continuation. Nothing here blocks.
package workflow

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tliron/commonlog"

	"github.com/pluqqy/pluqqy-code/pkg/document"
	"github.com/pluqqy/pluqqy-code/pkg/events"
)

// ErrNoFileToDelete is reported when delete is asked for an untitled buffer.
var ErrNoFileToDelete = errors.New("no file to delete")

// PathGuard vets a save-as target for document id before anything is
// written. A non-nil error aborts the save-as.
type PathGuard func(id, path string) error

// Workflows runs the confirmation procedures.
type Workflows struct {
	prompts *Prompter
	bus     *events.Bus
	root    string
	guard   PathGuard
	log     commonlog.Logger
}

// New creates the workflows. Prompts go to prompts, notices and close
// requests are published on bus.
func New(prompts *Prompter, bus *events.Bus) *Workflows {
	return &Workflows{
		prompts: prompts,
		bus:     bus,
		log:     commonlog.GetLogger("pluqqy-code.workflow"),
	}
}

// SetRoot sets the directory relative save-as paths are resolved against.
func (w *Workflows) SetRoot(root string) {
	w.root = root
}

// SetPathGuard installs the save-as target check.
func (w *Workflows) SetPathGuard(guard PathGuard) {
	w.guard = guard
}

// Prompter returns the queue prompts are posted to.
func (w *Workflows) Prompter() *Prompter {
	return w.prompts
}

// Save writes doc to its path, or asks for one when doc is untitled.
func (w *Workflows) Save(doc *document.Document) {
	if doc.IsUntitled() {
		w.SaveAs(doc, nil)
		return
	}
	w.save(doc)
}

// SaveAs asks for a target path and saves doc there. done, if set, is told
// whether the document was written.
func (w *Workflows) SaveAs(doc *document.Document, done func(saved bool)) {
	w.prompts.Request(Prompt{
		Kind:       KindSaveAs,
		Title:      "Save As",
		Message:    "Enter the file path",
		DocumentID: doc.ID(),
		Path:       doc.Path(),
	}, func(a Answer) {
		saved := false
		if a.Choice != ChoiceCancel {
			saved = w.saveAs(doc, a.Path)
		}
		if done != nil {
			done(saved)
		}
	})
}

// Close closes doc, asking first when it has unsaved changes.
//
// Choosing Save closes the tab only if the save succeeded and the text did
// not change while the dialog was open; otherwise the tab stays so the latest
// edits are not lost.
func (w *Workflows) Close(doc *document.Document) {
	if !doc.IsDirty() {
		w.closed(doc)
		return
	}

	snapshot := doc.Text()
	w.prompts.Request(Prompt{
		Kind:       KindUnsavedChanges,
		Title:      "Do you want to save the changes before closing?",
		Message:    fmt.Sprintf("%s has unsaved changes.", doc.Name()),
		Warning:    "If you don't save, changes will be lost.",
		DocumentID: doc.ID(),
		Path:       doc.Path(),
	}, func(a Answer) {
		switch a.Choice {
		case ChoiceDiscard:
			w.log.Infof("closing %s without saving", doc.ID())
			w.closed(doc)
		case ChoiceSave:
			finish := func(saved bool) {
				if !saved {
					return
				}
				if doc.Text() != snapshot || doc.IsDirty() {
					w.notify(events.Notice{
						Severity: events.SeverityWarning,
						Message:  "File changed while closing, tab kept open",
					})
					return
				}
				w.closed(doc)
			}
			if doc.IsUntitled() {
				w.SaveAs(doc, finish)
				return
			}
			finish(w.save(doc))
		}
	})
}

// Delete removes doc's file after confirmation. Untitled buffers have
// nothing to delete and are refused with ErrNoFileToDelete, without a prompt.
func (w *Workflows) Delete(doc *document.Document) error {
	if doc.IsUntitled() {
		w.notify(events.Error("No file to delete. Please save the file first."))
		return ErrNoFileToDelete
	}

	w.prompts.Request(Prompt{
		Kind:       KindDeleteConfirm,
		Title:      "Are you sure you want to delete this file?",
		Message:    doc.Path(),
		Warning:    "This cannot be undone.",
		DocumentID: doc.ID(),
		Path:       doc.Path(),
	}, func(a Answer) {
		if a.Choice != ChoiceConfirm {
			return
		}
		path := doc.Path()
		if err := doc.Delete(); err != nil {
			if errors.Is(err, document.ErrNoPath) {
				w.notify(events.Error("No file to delete. Please save the file first."))
				return
			}
			w.log.Errorf("delete %s: %v", path, err)
			w.notify(events.Error(fmt.Sprintf("Error deleting file: %v", err)))
			return
		}
		w.notify(events.Info(fmt.Sprintf("File deleted: %s", path)))
	})
	return nil
}

// Quit calls exit at once when nothing is dirty. Otherwise it asks a single
// question for all dirty documents.
func (w *Workflows) Quit(docs []*document.Document, exit func()) {
	var dirty []string
	for _, doc := range docs {
		if doc.IsDirty() {
			dirty = append(dirty, doc.Name())
		}
	}
	if len(dirty) == 0 {
		exit()
		return
	}

	w.prompts.Request(Prompt{
		Kind:    KindQuitConfirm,
		Title:   "Do you want to quit without saving?",
		Message: fmt.Sprintf("Unsaved: %s", strings.Join(dirty, ", ")),
		Warning: "If you don't save, changes will be lost.",
	}, func(a Answer) {
		if a.Choice == ChoiceConfirm {
			w.log.Info("quitting with unsaved changes")
			exit()
		}
	})
}

func (w *Workflows) save(doc *document.Document) bool {
	if err := doc.Save(); err != nil {
		w.log.Errorf("save %s: %v", doc.Path(), err)
		w.notify(events.Error(fmt.Sprintf("Error saving file: %v", err)))
		return false
	}
	w.notify(events.Info(fmt.Sprintf("File saved (%s)", humanize.Bytes(uint64(len(doc.Text()))))))
	return true
}

func (w *Workflows) saveAs(doc *document.Document, raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		w.notify(events.Error("File path cannot be empty"))
		return false
	}
	if !filepath.IsAbs(raw) && w.root != "" {
		raw = filepath.Join(w.root, raw)
	}
	target := filepath.Clean(raw)

	if w.guard != nil {
		if err := w.guard(doc.ID(), target); err != nil {
			w.reportSaveAsError(err)
			return false
		}
	}

	if err := doc.SaveAs(target); err != nil {
		w.reportSaveAsError(err)
		return false
	}
	w.notify(events.Info(fmt.Sprintf("File saved: %s", doc.Path())))
	return true
}

func (w *Workflows) reportSaveAsError(err error) {
	if errors.Is(err, document.ErrAlreadyExists) {
		w.notify(events.Error("File already exists"))
		return
	}
	w.log.Errorf("save as: %v", err)
	w.notify(events.Error(fmt.Sprintf("Error saving file: %v", err)))
}

func (w *Workflows) closed(doc *document.Document) {
	w.bus.Publish(events.Closed{ID: doc.ID()})
}

func (w *Workflows) notify(n events.Notice) {
	w.bus.Publish(n)
}
