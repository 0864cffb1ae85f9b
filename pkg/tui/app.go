// Package tui is the terminal front end: explorer, tabbed editor, dialogs,
// command palette and status line, driven by bubbletea.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tliron/commonlog"

	"github.com/pluqqy/pluqqy-code/pkg/document"
	"github.com/pluqqy/pluqqy-code/pkg/editor"
	"github.com/pluqqy/pluqqy-code/pkg/events"
	"github.com/pluqqy/pluqqy-code/pkg/models"
)

type focusArea int

const (
	focusExplorer focusArea = iota
	focusEditor
)

// copyToClipboard is swapped out in tests.
var copyToClipboard = clipboard.WriteAll

// App is the root bubbletea model.
type App struct {
	surface  *editor.Surface
	settings *models.Settings
	events   *events.Recorder

	explorer *Explorer
	editors  map[string]*textarea.Model
	readOnly map[string]bool
	dialog   *ConfirmationModel
	palette  *Palette
	status   *StatusBar
	help     help.Model

	focus    focusArea
	width    int
	height   int
	quitting bool

	log commonlog.Logger
}

// NewApp creates the UI for surface. Open requests sent to the surface
// before the first window size arrives are replayed once the UI is laid out.
func NewApp(surface *editor.Surface, settings *models.Settings) *App {
	if settings == nil {
		settings = models.DefaultSettings()
	}

	a := &App{
		surface:  surface,
		settings: settings,
		events:   &events.Recorder{},
		explorer: NewExplorer(surface.Root(), settings.UI.ShowHiddenFiles),
		editors:  make(map[string]*textarea.Model),
		readOnly: make(map[string]bool),
		dialog:   NewConfirmation(),
		palette:  NewPalette(),
		status:   NewStatusBar(settings.UI.StatusTimeout),
		help:     help.New(),
		log:      commonlog.GetLogger("pluqqy-code.tui"),
	}
	surface.Bus().Subscribe(a.events.Record)
	a.setFocus(focusExplorer)

	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.explorer.Init(), textarea.Blink)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		if !a.surface.Ready() {
			a.log.Infof("ui ready at %dx%d", msg.Width, msg.Height)
			a.surface.MarkReady()
		}

	case tea.KeyMsg:
		cmds = append(cmds, a.handleKey(msg))

	case tea.MouseMsg:
		a.handleMouse(msg)

	case FileSelectedMsg:
		a.surface.OpenFile(msg.Path)

	case StatusMsg:
		cmds = append(cmds, a.status.Show(events.Info(string(msg))))

	case clearStatusMsg:
		a.status.Expire(msg)

	default:
		// Directory listings, cursor blinks and the like.
		cmds = append(cmds, a.explorer.Update(msg))
		if ta := a.activeEditor(); ta != nil {
			var cmd tea.Cmd
			*ta, cmd = ta.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	cmds = append(cmds, a.applyEvents())
	a.dialog.Sync(a.surface.Prompter().Current())

	if a.quitting {
		return a, tea.Quit
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if a.surface.Prompter().Active() {
		answer, done, cmd := a.dialog.Update(msg)
		if done {
			a.surface.Prompter().Answer(answer)
		}
		return cmd
	}

	if a.palette.IsOpen() {
		command, chosen, cmd := a.palette.Update(msg)
		if chosen {
			return tea.Batch(cmd, a.run(command))
		}
		return cmd
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return a.run(CommandQuit)
	case key.Matches(msg, keys.NewFile):
		return a.run(CommandNewFile)
	case key.Matches(msg, keys.Save):
		return a.run(CommandSave)
	case key.Matches(msg, keys.SaveAs):
		return a.run(CommandSaveAs)
	case key.Matches(msg, keys.Close):
		return a.run(CommandClose)
	case key.Matches(msg, keys.Delete):
		return a.run(CommandDelete)
	case key.Matches(msg, keys.Reload):
		return a.run(CommandReloadExplorer)
	case key.Matches(msg, keys.Palette):
		a.palette.Open()
		return nil
	case key.Matches(msg, keys.NextTab):
		a.surface.ActivateNext()
		return nil
	case key.Matches(msg, keys.PrevTab):
		a.surface.ActivatePrevious()
		return nil
	case key.Matches(msg, keys.ToggleFocus):
		if a.focus == focusExplorer {
			a.setFocus(focusEditor)
		} else {
			a.setFocus(focusExplorer)
		}
		return nil
	}

	if a.focus == focusExplorer {
		return a.explorer.Update(msg)
	}
	return a.editKey(msg)
}

// handleMouse makes the tab bar clickable: the left button activates a tab,
// the middle button closes it.
func (a *App) handleMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Y != 0 {
		return
	}
	if a.surface.Prompter().Active() || a.palette.IsOpen() {
		return
	}

	tab, ok := tabAt(a.surface.Tabs(), msg.X-a.sidebarWidth())
	if !ok {
		return
	}
	switch msg.Button {
	case tea.MouseButtonLeft:
		a.surface.Activate(tab.ID)
	case tea.MouseButtonMiddle:
		a.surface.CloseTab(tab.ID)
	}
}

// run executes a palette command. Failures reach the user as notices, so
// the errors returned by the surface are not needed here.
func (a *App) run(command Command) tea.Cmd {
	switch command {
	case CommandReloadExplorer:
		a.surface.ReloadExplorer()
	case CommandSave:
		_ = a.surface.Save()
	case CommandSaveAs:
		_ = a.surface.SaveAs()
	case CommandNewFile:
		a.surface.NewFile()
	case CommandClose:
		_ = a.surface.Close()
	case CommandDelete:
		_ = a.surface.Delete()
	case CommandCopyPath:
		a.copyPath()
	case CommandQuit:
		a.surface.Quit(func() {
			a.log.Info("quit")
			a.quitting = true
		})
	}
	return nil
}

func (a *App) copyPath() {
	bus := a.surface.Bus()
	doc, ok := a.surface.Active()
	switch {
	case !ok:
		bus.Publish(events.Error("No file path to copy. Please open a file first."))
	case doc.IsUntitled():
		bus.Publish(events.Error("No file path to copy. Please save the file first."))
	default:
		if err := copyToClipboard(doc.Path()); err != nil {
			a.log.Errorf("clipboard: %v", err)
			bus.Publish(events.Error(fmt.Sprintf("Failed to copy to clipboard: %v", err)))
			return
		}
		bus.Publish(events.Info(fmt.Sprintf("Copied: %s", doc.Path())))
	}
}

func (a *App) editKey(msg tea.KeyMsg) tea.Cmd {
	ta := a.activeEditor()
	if ta == nil {
		return nil
	}
	id := a.surface.ActiveID()

	if a.readOnly[id] && !isNavigation(ta.KeyMap, msg) {
		return a.status.Show(a.readOnlyNotice(id))
	}

	before := ta.Value()
	var cmd tea.Cmd
	if key.Matches(msg, keys.Indent) {
		ta.InsertString(strings.Repeat(" ", a.settings.Editor.TabWidth))
	} else {
		*ta, cmd = ta.Update(msg)
	}

	if after := ta.Value(); after != before {
		a.surface.SetText(id, after)
	}
	return cmd
}

// applyEvents reacts to everything published during this update, in
// publication order.
func (a *App) applyEvents() tea.Cmd {
	var cmds []tea.Cmd
	for _, e := range a.events.Drain() {
		a.log.Debugf("event: %s", events.Name(e))

		switch e := e.(type) {
		case events.Opened:
			cmds = append(cmds, a.ensureEditor(e.ID))
			if e.Focus {
				a.setFocus(focusEditor)
			}
		case events.Activated:
			a.setFocus(a.focus)
		case events.Closed:
			delete(a.editors, e.ID)
			delete(a.readOnly, e.ID)
			if len(a.editors) == 0 {
				a.setFocus(focusExplorer)
			}
		case events.ReloadExplorerRequested:
			cmds = append(cmds, a.explorer.Reload())
		case events.Notice:
			cmds = append(cmds, a.status.Show(e))
		}
	}

	if len(cmds) == 0 {
		return nil
	}
	return tea.Sequence(cmds...)
}

// ensureEditor creates the text area for tab id. The widget rewrites tabs,
// control characters and invalid UTF-8 on load, so a document it cannot
// hold unchanged is shown read-only and its text is never taken back.
func (a *App) ensureEditor(id string) tea.Cmd {
	if _, ok := a.editors[id]; ok {
		return nil
	}
	doc, ok := a.surface.Document(id)
	if !ok {
		return nil
	}

	ta := textarea.New()
	ta.ShowLineNumbers = a.settings.Editor.ShowLineNumbers
	ta.Prompt = "  "
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.MaxWidth = 0
	a.sizeEditor(&ta)
	ta.SetValue(doc.Text())
	a.editors[id] = &ta

	if ta.Value() != doc.Text() {
		a.log.Warningf("%s cannot be edited without changing its content", doc.Name())
		a.readOnly[id] = true
		return a.status.Show(a.readOnlyNotice(id))
	}
	return nil
}

func (a *App) readOnlyNotice(id string) events.Notice {
	name := document.UntitledName
	if doc, ok := a.surface.Document(id); ok {
		name = doc.Name()
	}
	return events.Warning(fmt.Sprintf("%s is read-only: it contains tabs or characters the editor would change", name))
}

// isNavigation reports whether msg only moves the cursor of a text area.
func isNavigation(km textarea.KeyMap, msg tea.KeyMsg) bool {
	return key.Matches(msg,
		km.CharacterBackward, km.CharacterForward,
		km.WordBackward, km.WordForward,
		km.LinePrevious, km.LineNext,
		km.LineStart, km.LineEnd,
		km.InputBegin, km.InputEnd,
	)
}

func (a *App) activeEditor() *textarea.Model {
	return a.editors[a.surface.ActiveID()]
}

func (a *App) setFocus(f focusArea) {
	a.focus = f
	a.explorer.SetFocused(f == focusExplorer)

	active := a.surface.ActiveID()
	for id, ta := range a.editors {
		if f == focusEditor && id == active {
			ta.Focus()
		} else {
			ta.Blur()
		}
	}
}

func (a *App) sidebarWidth() int {
	w := a.settings.UI.SidebarWidth
	if a.width > 0 && w > a.width/2 {
		w = a.width / 2
	}
	return w
}

// bodyHeight leaves one line each for the tab bar, footer, status and help.
func (a *App) bodyHeight() int {
	h := a.height - 4
	if h < 3 {
		h = 3
	}
	return h
}

func (a *App) layout() {
	a.explorer.SetHeight(a.bodyHeight() - 2)
	for _, ta := range a.editors {
		a.sizeEditor(ta)
	}
	a.palette.SetSize(a.width, a.height)
	a.dialog.SetWidth(a.width)
	a.help.Width = a.width
}

func (a *App) sizeEditor(ta *textarea.Model) {
	w := a.width - a.sidebarWidth()
	if w < 10 {
		w = 10
	}
	ta.SetWidth(w)
	ta.SetHeight(a.bodyHeight())
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	body := a.bodyHeight()
	var main string
	switch {
	case a.dialog.Active():
		main = lipgloss.Place(a.width, body+1, lipgloss.Center, lipgloss.Center, a.dialog.View())
	case a.palette.IsOpen():
		main = lipgloss.Place(a.width, body+1, lipgloss.Center, lipgloss.Center, a.palette.View())
	default:
		sidebar := a.sidebarWidth()
		left := a.explorer.View(sidebar, body+1)

		editorView := PlaceholderStyle.Render("Select a file in the explorer or press ctrl+n")
		if ta := a.activeEditor(); ta != nil {
			editorView = ta.View()
		}
		right := lipgloss.JoinVertical(lipgloss.Left,
			renderTabBar(a.surface.Tabs(), a.width-sidebar),
			editorView,
		)
		main = lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}

	doc, _ := a.surface.Active()
	bottom := a.status.View(a.width)
	if bottom == "" {
		bottom = a.help.View(keys)
	}

	return lipgloss.JoinVertical(lipgloss.Left, main, renderFooter(doc, a.width), bottom)
}
