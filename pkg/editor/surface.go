// Package editor coordinates open tabs, the active tab and the confirmation
// workflows. The Surface is the only writer of the pane registry.
package editor

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/pluqqy/pluqqy-code/pkg/document"
	"github.com/pluqqy/pluqqy-code/pkg/events"
	"github.com/pluqqy/pluqqy-code/pkg/files"
	"github.com/pluqqy/pluqqy-code/pkg/workflow"
	"github.com/pluqqy/pluqqy-code/pkg/workspace"
)

// ErrNoActiveDocument is reported when a tab command runs with no tab open.
var ErrNoActiveDocument = errors.New("no active document")

// Tab is a read-only view of one open document for rendering.
type Tab struct {
	ID       string
	Title    string
	Path     string
	Language string
	Dirty    bool
	Active   bool
}

type openRequest struct {
	path string
}

// Surface owns the tabs of one workspace.
type Surface struct {
	root     string
	bus      *events.Bus
	registry *workspace.Registry
	prompter *workflow.Prompter
	flows    *workflow.Workflows

	active  string
	ready   bool
	pending []openRequest

	log commonlog.Logger
}

// New creates a surface for the workspace at root. A bus is created when env
// does not carry one.
func New(env document.Env, root string) *Surface {
	if env.Bus == nil {
		env.Bus = events.NewBus()
	}
	if env.Languages == nil {
		env.Languages = document.DefaultLanguages()
	}

	prompter := workflow.NewPrompter()
	s := &Surface{
		root:     root,
		bus:      env.Bus,
		registry: workspace.NewRegistry(env),
		prompter: prompter,
		flows:    workflow.New(prompter, env.Bus),
		log:      commonlog.GetLogger("pluqqy-code.editor"),
	}
	s.flows.SetRoot(root)
	s.flows.SetPathGuard(s.guardSaveAsTarget)
	s.bus.Subscribe(s.handle)

	return s
}

// Root returns the workspace directory.
func (s *Surface) Root() string { return s.root }

// Bus returns the bus documents and workflows publish on.
func (s *Surface) Bus() *events.Bus { return s.bus }

// Prompter returns the queue of pending dialogs.
func (s *Surface) Prompter() *workflow.Prompter { return s.prompter }

// MarkReady replays the open requests received so far, in order, and lets
// later requests through directly.
func (s *Surface) MarkReady() {
	if s.ready {
		return
	}
	s.ready = true

	pending := s.pending
	s.pending = nil
	if len(pending) > 0 {
		s.log.Debugf("replaying %d queued open requests", len(pending))
	}
	for _, req := range pending {
		s.open(req.path)
	}
}

// Ready reports whether MarkReady was called.
func (s *Surface) Ready() bool { return s.ready }

// OpenFile opens path in a tab, or activates the tab already showing it.
func (s *Surface) OpenFile(path string) {
	if path == "" {
		return
	}
	s.request(path)
}

// NewFile opens an untitled tab.
func (s *Surface) NewFile() {
	s.request("")
}

func (s *Surface) request(path string) {
	if !s.ready {
		s.pending = append(s.pending, openRequest{path: path})
		return
	}
	s.open(path)
}

func (s *Surface) open(path string) {
	res, err := s.registry.Open(path)
	if err != nil {
		s.log.Errorf("open %s: %v", path, err)
		s.bus.Publish(events.Error(fmt.Sprintf("Error opening file: %v", err)))
		return
	}
	if res.ReadErr != nil {
		s.log.Warningf("%v", res.ReadErr)
		s.bus.Publish(events.Error(res.ReadErr.Error()))
	}

	s.Activate(res.ID)
	s.bus.Publish(events.Opened{ID: res.ID, Created: res.Opened, Focus: true})
}

// Activate makes id the active tab. It reports false for unknown ids.
func (s *Surface) Activate(id string) bool {
	if !s.registry.Has(id) {
		return false
	}
	if s.active != id {
		s.active = id
		s.bus.Publish(events.Activated{ID: id})
	}
	return true
}

// ActivateNext moves to the tab on the right, wrapping around.
func (s *Surface) ActivateNext() {
	if next := s.registry.Offset(s.active, 1); next != "" {
		s.Activate(next)
	}
}

// ActivatePrevious moves to the tab on the left, wrapping around.
func (s *Surface) ActivatePrevious() {
	if prev := s.registry.Offset(s.active, -1); prev != "" {
		s.Activate(prev)
	}
}

// ActiveID returns the active tab, "" when none is open.
func (s *Surface) ActiveID() string { return s.active }

// Active returns the active document.
func (s *Surface) Active() (*document.Document, bool) {
	return s.registry.Get(s.active)
}

// Document returns the document of tab id.
func (s *Surface) Document(id string) (*document.Document, bool) {
	return s.registry.Get(id)
}

// Tabs returns the open tabs in order.
func (s *Surface) Tabs() []Tab {
	docs := s.registry.Documents()
	tabs := make([]Tab, 0, len(docs))
	for _, doc := range docs {
		tabs = append(tabs, Tab{
			ID:       doc.ID(),
			Title:    doc.Title(),
			Path:     doc.Path(),
			Language: doc.Language(),
			Dirty:    doc.IsDirty(),
			Active:   doc.ID() == s.active,
		})
	}
	return tabs
}

// SetText routes an edit to tab id. It reports false for unknown ids.
func (s *Surface) SetText(id, text string) bool {
	doc, ok := s.registry.Get(id)
	if !ok {
		return false
	}
	doc.SetText(text)
	return true
}

// Save saves the active tab.
func (s *Surface) Save() error {
	doc, err := s.activeOrNotice("No file to save. Please open a file first.")
	if err != nil {
		return err
	}
	s.flows.Save(doc)
	return nil
}

// SaveAs asks for a new path for the active tab.
func (s *Surface) SaveAs() error {
	doc, err := s.activeOrNotice("No file to save. Please open a file first.")
	if err != nil {
		return err
	}
	s.flows.SaveAs(doc, nil)
	return nil
}

// Close closes the active tab, asking first if it has unsaved changes.
func (s *Surface) Close() error {
	doc, err := s.activeOrNotice("No file to close. Please open a file first.")
	if err != nil {
		return err
	}
	s.flows.Close(doc)
	return nil
}

// CloseTab closes tab id. Unknown ids are ignored.
func (s *Surface) CloseTab(id string) {
	if doc, ok := s.registry.Get(id); ok {
		s.flows.Close(doc)
	}
}

// Delete deletes the file of the active tab after confirmation.
func (s *Surface) Delete() error {
	doc, err := s.activeOrNotice("No file to delete. Please open a file first.")
	if err != nil {
		return err
	}
	return s.flows.Delete(doc)
}

// Quit calls exit, asking first when any tab has unsaved changes.
func (s *Surface) Quit(exit func()) {
	s.flows.Quit(s.registry.Documents(), exit)
}

// ReloadExplorer asks the explorer to re-read the workspace.
func (s *Surface) ReloadExplorer() {
	s.bus.Publish(events.ReloadExplorerRequested{})
}

// activeOrNotice returns the active document, or publishes notice as an
// error when there is none.
func (s *Surface) activeOrNotice(notice string) (*document.Document, error) {
	doc, ok := s.registry.Get(s.active)
	if !ok {
		s.bus.Publish(events.Error(notice))
		return nil, ErrNoActiveDocument
	}
	return doc, nil
}

// guardSaveAsTarget refuses a save-as onto a path another tab already shows.
func (s *Surface) guardSaveAsTarget(id, path string) error {
	resolved, err := files.ResolvePath(path)
	if err != nil {
		return err
	}
	if owner, ok := s.registry.IDForPath(resolved); ok && owner != id {
		return fmt.Errorf("%s is open in another tab: %w", resolved, document.ErrAlreadyExists)
	}
	return nil
}

func (s *Surface) handle(e events.Event) {
	switch e := e.(type) {
	case events.Saved:
		s.bus.Publish(events.ReloadExplorerRequested{})
	case events.SavedAs:
		s.registry.ReindexOnSaveAs(e.ID, e.Path)
		s.bus.Publish(events.ReloadExplorerRequested{})
	case events.Deleted:
		s.bus.Publish(events.Closed{ID: e.ID})
		s.bus.Publish(events.ReloadExplorerRequested{})
	case events.Closed:
		s.removeTab(e.ID)
	}
}

func (s *Surface) removeTab(id string) {
	if !s.registry.Has(id) {
		return
	}
	neighbor := s.registry.Neighbor(id)
	s.prompter.Drop(id)
	s.registry.Remove(id)

	if s.active == id {
		s.active = neighbor
		s.bus.Publish(events.Activated{ID: neighbor})
	}
}
