package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NewFile     key.Binding
	Save        key.Binding
	SaveAs      key.Binding
	Close       key.Binding
	Delete      key.Binding
	Quit        key.Binding
	Palette     key.Binding
	Reload      key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	ToggleFocus key.Binding
	Indent      key.Binding

	// Help only. ctrl+n, ctrl+p, ctrl+d and ctrl+e belong to the bindings
	// above, so the text area's line next/previous, delete forward and line
	// end are reached with these keys instead.
	EditorMoves key.Binding
}

var keys = keyMap{
	NewFile:     key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new file")),
	Save:        key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
	SaveAs:      key.NewBinding(key.WithKeys("alt+s", "ctrl+shift+s"), key.WithHelp("alt+s", "save as")),
	Close:       key.NewBinding(key.WithKeys("ctrl+w"), key.WithHelp("ctrl+w", "close tab")),
	Delete:      key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "delete file")),
	Quit:        key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("ctrl+q", "quit")),
	Palette:     key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "commands")),
	Reload:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload explorer")),
	NextTab:     key.NewBinding(key.WithKeys("alt+]", "ctrl+pgdown"), key.WithHelp("alt+]", "next tab")),
	PrevTab:     key.NewBinding(key.WithKeys("alt+[", "ctrl+pgup"), key.WithHelp("alt+[", "previous tab")),
	ToggleFocus: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "explorer/editor")),
	Indent:      key.NewBinding(key.WithKeys("tab")),
	EditorMoves: key.NewBinding(key.WithKeys("down", "up", "delete", "end"), key.WithHelp("↓/↑/del/end", "editor: line next/prev, delete, line end")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Close, k.ToggleFocus, k.Palette, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewFile, k.Save, k.SaveAs, k.Close, k.Delete},
		{k.NextTab, k.PrevTab, k.ToggleFocus, k.Reload, k.Palette, k.Quit},
		{k.EditorMoves},
	}
}
