package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Command is an action reachable from the palette.
type Command int

const (
	CommandReloadExplorer Command = iota
	CommandSave
	CommandSaveAs
	CommandNewFile
	CommandClose
	CommandDelete
	CommandCopyPath
	CommandQuit
)

type paletteItem struct {
	title       string
	description string
	command     Command
}

func (i paletteItem) Title() string       { return i.title }
func (i paletteItem) Description() string { return i.description }
func (i paletteItem) FilterValue() string { return i.title }

func paletteItems() []list.Item {
	return []list.Item{
		paletteItem{"Reload explorer", "Re-read the workspace directory", CommandReloadExplorer},
		paletteItem{"Save file", "Save the active file", CommandSave},
		paletteItem{"Save file as", "Save the active file under a new name", CommandSaveAs},
		paletteItem{"New file", "Open an untitled tab", CommandNewFile},
		paletteItem{"Close file", "Close the active tab", CommandClose},
		paletteItem{"Delete file", "Delete the active file from disk", CommandDelete},
		paletteItem{"Copy file path", "Copy the active file's path to the clipboard", CommandCopyPath},
		paletteItem{"Quit", "Quit the editor", CommandQuit},
	}
}

// Palette is the command list opened with ctrl+p.
type Palette struct {
	list list.Model
	open bool
}

// NewPalette creates a closed palette.
func NewPalette() *Palette {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color(ColorActive))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(lipgloss.Color(ColorDim))

	l := list.New(paletteItems(), delegate, 50, 20)
	l.Title = "Commands"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	return &Palette{list: l}
}

// Open shows the palette with the first command selected.
func (p *Palette) Open() {
	p.open = true
	p.list.ResetFilter()
	p.list.Select(0)
}

// Close hides the palette.
func (p *Palette) Close() {
	p.open = false
}

// IsOpen reports whether the palette is shown.
func (p *Palette) IsOpen() bool {
	return p.open
}

// SetSize fits the palette into the given area.
func (p *Palette) SetSize(width, height int) {
	w := 60
	if width-4 < w {
		w = width - 4
	}
	h := height - 6
	if h > 24 {
		h = 24
	}
	if w < 10 {
		w = 10
	}
	if h < 5 {
		h = 5
	}
	p.list.SetSize(w, h)
}

// Update handles a key press. It returns the chosen command once the user
// pressed enter; esc closes the palette unless a filter is being typed.
func (p *Palette) Update(msg tea.KeyMsg) (Command, bool, tea.Cmd) {
	filtering := p.list.FilterState() == list.Filtering

	switch msg.String() {
	case "esc":
		if !filtering && p.list.FilterState() != list.FilterApplied {
			p.Close()
			return 0, false, nil
		}
	case "enter":
		if !filtering {
			item, ok := p.list.SelectedItem().(paletteItem)
			p.Close()
			if !ok {
				return 0, false, nil
			}
			return item.command, true, nil
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return 0, false, cmd
}

// View renders the palette.
func (p *Palette) View() string {
	if !p.open {
		return ""
	}
	return ActiveBorderStyle.Padding(0, 1).Render(p.list.View())
}
