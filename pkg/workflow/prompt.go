package workflow

import (
	"github.com/tliron/commonlog"
)

// Kind identifies which dialog a Prompt needs.
type Kind int

const (
	// KindUnsavedChanges asks Save / Discard / Cancel before closing.
	KindUnsavedChanges Kind = iota
	// KindSaveAs asks for a target path.
	KindSaveAs
	// KindDeleteConfirm asks Delete / Cancel.
	KindDeleteConfirm
	// KindQuitConfirm asks whether to quit without saving.
	KindQuitConfirm
)

func (k Kind) String() string {
	switch k {
	case KindUnsavedChanges:
		return "unsaved-changes"
	case KindSaveAs:
		return "save-as"
	case KindDeleteConfirm:
		return "delete-confirm"
	case KindQuitConfirm:
		return "quit-confirm"
	default:
		return "unknown"
	}
}

// Choice is the button a user picked.
type Choice int

const (
	ChoiceCancel Choice = iota
	ChoiceSave
	ChoiceDiscard
	ChoiceConfirm
)

// Answer is the user's reply to a Prompt. Path is only used by save-as.
type Answer struct {
	Choice Choice
	Path   string
}

// Cancel is the answer given when a dialog is dismissed.
func Cancel() Answer {
	return Answer{Choice: ChoiceCancel}
}

// Prompt is a pending question for the user.
type Prompt struct {
	Kind       Kind
	Title      string
	Message    string
	Warning    string
	DocumentID string
	Path       string

	seq    int
	resume func(Answer)
}

// Seq identifies this request. It differs for every call to Request, even
// when two prompts look alike.
func (p Prompt) Seq() int {
	return p.seq
}

// Prompter shows one prompt at a time. Prompts requested while another is
// visible wait in FIFO order.
type Prompter struct {
	queue []Prompt
	seq   int
	log   commonlog.Logger
}

// NewPrompter creates an empty prompt queue.
func NewPrompter() *Prompter {
	return &Prompter{
		log: commonlog.GetLogger("pluqqy-code.workflow"),
	}
}

// Request queues a prompt. resume is called exactly once with the answer,
// unless the prompt is dropped first.
func (p *Prompter) Request(prompt Prompt, resume func(Answer)) {
	p.seq++
	prompt.seq = p.seq
	prompt.resume = resume
	p.queue = append(p.queue, prompt)
	p.log.Debugf("queued %s prompt for %q (%d pending)", prompt.Kind, prompt.DocumentID, len(p.queue))
}

// Current returns the visible prompt.
func (p *Prompter) Current() (Prompt, bool) {
	if len(p.queue) == 0 {
		return Prompt{}, false
	}
	return p.queue[0], true
}

// Active reports whether a prompt is visible.
func (p *Prompter) Active() bool {
	return len(p.queue) > 0
}

// Pending returns the number of prompts, including the visible one.
func (p *Prompter) Pending() int {
	return len(p.queue)
}

// Answer resolves the visible prompt. The prompt leaves the queue before its
// continuation runs, so prompts requested by the continuation line up behind
// the ones already waiting.
func (p *Prompter) Answer(a Answer) {
	if len(p.queue) == 0 {
		return
	}
	current := p.queue[0]
	p.queue = p.queue[1:]

	p.log.Debugf("%s prompt for %q answered with %d", current.Kind, current.DocumentID, a.Choice)
	if current.resume != nil {
		current.resume(a)
	}
}

// Dismiss answers the visible prompt with Cancel.
func (p *Prompter) Dismiss() {
	p.Answer(Cancel())
}

// Drop discards every prompt about documentID without resuming it. Used when
// the document's tab is gone.
func (p *Prompter) Drop(documentID string) {
	if documentID == "" {
		return
	}
	kept := p.queue[:0]
	for _, prompt := range p.queue {
		if prompt.DocumentID == documentID {
			p.log.Debugf("dropped %s prompt for closed %s", prompt.Kind, documentID)
			continue
		}
		kept = append(kept, prompt)
	}
	p.queue = kept
}
