package tui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/pluqqy-code/pkg/files"
)

// Explorer is the workspace file tree. Picking a file produces a
// FileSelectedMsg; it never opens anything itself.
type Explorer struct {
	picker  filepicker.Model
	root    string
	focused bool
}

// NewExplorer creates an explorer rooted at root. Browsing never leaves
// root.
func NewExplorer(root string, showHidden bool) *Explorer {
	root = filepath.Clean(root)
	fp := filepicker.New()
	fp.CurrentDirectory = root
	fp.ShowHidden = showHidden
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AllowedTypes = []string{}
	fp.AutoHeight = false
	fp.SetHeight(20)

	return &Explorer{picker: fp, root: root}
}

// Init reads the current directory.
func (e *Explorer) Init() tea.Cmd {
	return e.picker.Init()
}

// Reload re-reads the directory shown, e.g. after a save or delete.
func (e *Explorer) Reload() tea.Cmd {
	return e.picker.Init()
}

// SetFocused marks whether key presses go to the explorer.
func (e *Explorer) SetFocused(focused bool) {
	e.focused = focused
}

// Focused reports whether the explorer has focus.
func (e *Explorer) Focused() bool {
	return e.focused
}

// SetHeight sets the number of visible entries.
func (e *Explorer) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	e.picker.SetHeight(height)
}

// Update forwards msg to the picker. Key presses are ignored unless the
// explorer is focused; directory listings always go through.
func (e *Explorer) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, isKey := msg.(tea.KeyMsg); isKey {
		if !e.focused || e.atRoot() && key.Matches(keyMsg, e.picker.KeyMap.Back) {
			return nil
		}
	}

	var cmd tea.Cmd
	e.picker, cmd = e.picker.Update(msg)

	if ok, path := e.picker.DidSelectFile(msg); ok {
		resolved, err := files.ResolvePath(path)
		if err != nil {
			return cmd
		}
		return tea.Batch(cmd, func() tea.Msg {
			return FileSelectedMsg{Path: resolved}
		})
	}
	return cmd
}

func (e *Explorer) atRoot() bool {
	return filepath.Clean(e.picker.CurrentDirectory) == e.root
}

// View renders the tree inside a border of the given size.
func (e *Explorer) View(width, height int) string {
	style := InactiveBorderStyle
	if e.focused {
		style = ActiveBorderStyle
	}

	header := HeaderStyle.Render("EXPLORER")
	body := lipgloss.JoinVertical(lipgloss.Left, header, e.picker.View())

	return style.
		Width(width - 2).
		Height(height - 2).
		Render(body)
}
