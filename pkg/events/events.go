// Package events carries the notifications exchanged between documents,
// workflows, the editor surface and the terminal UI.
package events

// Event is any notification published on a Bus.
type Event interface {
	eventName() string
}

// TitleChanged is published when a document's display title changes.
type TitleChanged struct {
	ID    string
	Title string
}

// Saved is published after a document was written to its own path.
type Saved struct {
	ID   string
	Path string
	Size int
}

// SavedAs is published after a document was written to a new path.
type SavedAs struct {
	ID   string
	Path string
	Size int
}

// Opened is published when a tab is activated by an open request.
// Created is false when the path was already open.
type Opened struct {
	ID      string
	Created bool
	Focus   bool
}

// Closed is published when a tab must go away.
type Closed struct {
	ID string
}

// Deleted is published after the file behind a document was removed.
type Deleted struct {
	ID   string
	Path string
}

// Activated is published when the active tab changes.
type Activated struct {
	ID string
}

// ReloadExplorerRequested asks the explorer to re-read the workspace.
type ReloadExplorerRequested struct{}

// Severity grades a Notice.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "information"
	}
}

// Notice is a user-visible message.
type Notice struct {
	Severity Severity
	Message  string
}

// Info builds an informational Notice.
func Info(message string) Notice {
	return Notice{Severity: SeverityInfo, Message: message}
}

// Warning builds a warning Notice.
func Warning(message string) Notice {
	return Notice{Severity: SeverityWarning, Message: message}
}

// Error builds an error Notice.
func Error(message string) Notice {
	return Notice{Severity: SeverityError, Message: message}
}

func (TitleChanged) eventName() string            { return "title-changed" }
func (Saved) eventName() string                   { return "saved" }
func (SavedAs) eventName() string                 { return "saved-as" }
func (Opened) eventName() string                  { return "opened" }
func (Closed) eventName() string                  { return "closed" }
func (Deleted) eventName() string                 { return "deleted" }
func (Activated) eventName() string               { return "activated" }
func (ReloadExplorerRequested) eventName() string { return "reload-explorer-requested" }
func (Notice) eventName() string                  { return "notice" }

// Name returns the wire name of an event, used in logs.
func Name(e Event) string {
	return e.eventName()
}
