// Package workspace keeps track of the documents open in editor tabs.
package workspace

import (
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/pluqqy/pluqqy-code/pkg/document"
	"github.com/pluqqy/pluqqy-code/pkg/files"
)

// OpenResult describes the outcome of Registry.Open.
type OpenResult struct {
	ID string
	// Opened is true when a new document was created, false when the path
	// was already open and the existing tab is returned.
	Opened bool
	// ReadErr is set when the file could not be read. The document is open
	// anyway, with empty content.
	ReadErr error
}

// Registry maps tab ids to documents and paths to tab ids.
//
// Invariants: every id in byPath is open, and every open document with a
// path is indexed under its current path. A path belongs to at most one
// document.
type Registry struct {
	env    document.Env
	order  []string
	docs   map[string]*document.Document
	byPath map[string]string
	log    commonlog.Logger
}

// NewRegistry creates an empty registry whose documents use env.
func NewRegistry(env document.Env) *Registry {
	return &Registry{
		env:    env,
		docs:   make(map[string]*document.Document),
		byPath: make(map[string]string),
		log:    commonlog.GetLogger("pluqqy-code.workspace"),
	}
}

// Open returns the tab for path, creating a document if the path is not
// open yet. An empty path always creates a new untitled document.
func (r *Registry) Open(path string) (OpenResult, error) {
	if path != "" {
		resolved, err := files.ResolvePath(path)
		if err != nil {
			return OpenResult{}, err
		}
		path = resolved

		if id, ok := r.byPath[path]; ok {
			return OpenResult{ID: id, Opened: false}, nil
		}
	}

	doc, readErr := document.Open(r.env, path)
	r.insert(doc)
	r.log.Infof("opened %s as %s", displayPath(path), doc.ID())

	return OpenResult{ID: doc.ID(), Opened: true, ReadErr: readErr}, nil
}

func (r *Registry) insert(doc *document.Document) {
	id := doc.ID()
	r.order = append(r.order, id)
	r.docs[id] = doc
	if p := doc.Path(); p != "" {
		r.byPath[p] = id
	}
}

// Remove forgets a document. Unknown ids are ignored.
func (r *Registry) Remove(id string) {
	if _, ok := r.docs[id]; !ok {
		return
	}
	delete(r.docs, id)

	for i, other := range r.order {
		if other == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	// The document may have been saved under another name since it was
	// opened, so drop whatever entry points at it rather than a fixed path.
	for p, owner := range r.byPath {
		if owner == id {
			delete(r.byPath, p)
		}
	}
	r.log.Infof("removed %s", id)
}

// ReindexOnSaveAs moves the path index of id to newPath after a successful
// save-as.
//
// It panics if newPath already belongs to another document: callers must
// refuse such a save-as before it happens.
func (r *Registry) ReindexOnSaveAs(id, newPath string) {
	if _, ok := r.docs[id]; !ok {
		panic(fmt.Sprintf("workspace: reindex of unknown document %s", id))
	}
	if owner, ok := r.byPath[newPath]; ok && owner != id {
		panic(fmt.Sprintf("workspace: path %s already belongs to %s, cannot reindex %s", newPath, owner, id))
	}

	for p, owner := range r.byPath {
		if owner == id {
			delete(r.byPath, p)
		}
	}
	r.byPath[newPath] = id
}

// Get returns the document for id.
func (r *Registry) Get(id string) (*document.Document, bool) {
	doc, ok := r.docs[id]
	return doc, ok
}

// IDForPath returns the tab open on path, if any. path must be absolute.
func (r *Registry) IDForPath(path string) (string, bool) {
	id, ok := r.byPath[path]
	return id, ok
}

// Has reports whether id is open.
func (r *Registry) Has(id string) bool {
	_, ok := r.docs[id]
	return ok
}

// Len returns the number of open documents.
func (r *Registry) Len() int {
	return len(r.order)
}

// IDs returns the open ids in tab order.
func (r *Registry) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Documents returns the open documents in tab order.
func (r *Registry) Documents() []*document.Document {
	out := make([]*document.Document, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.docs[id])
	}
	return out
}

// DirtyDocuments returns the documents with unsaved changes, in tab order.
func (r *Registry) DirtyDocuments() []*document.Document {
	var out []*document.Document
	for _, id := range r.order {
		if doc := r.docs[id]; doc.IsDirty() {
			out = append(out, doc)
		}
	}
	return out
}

// Index returns the tab position of id, or -1.
func (r *Registry) Index(id string) int {
	for i, other := range r.order {
		if other == id {
			return i
		}
	}
	return -1
}

// Neighbor returns the tab that should become active when id closes: the
// next tab, or the previous one when id is last. It returns "" when id is
// the only tab or is unknown.
func (r *Registry) Neighbor(id string) string {
	i := r.Index(id)
	if i < 0 || len(r.order) < 2 {
		return ""
	}
	if i+1 < len(r.order) {
		return r.order[i+1]
	}
	return r.order[i-1]
}

// Offset returns the id delta tabs after id, wrapping around. An unknown id
// yields the first tab.
func (r *Registry) Offset(id string, delta int) string {
	n := len(r.order)
	if n == 0 {
		return ""
	}
	i := r.Index(id)
	if i < 0 {
		return r.order[0]
	}
	return r.order[((i+delta)%n+n)%n]
}

func displayPath(path string) string {
	if path == "" {
		return document.UntitledName
	}
	return path
}
