package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/pluqqy-code/pkg/document"
	"github.com/pluqqy/pluqqy-code/pkg/editor"
	"github.com/pluqqy/pluqqy-code/pkg/events"
	"github.com/pluqqy/pluqqy-code/pkg/models"
	"github.com/pluqqy/pluqqy-code/pkg/workflow"
)

func newTestApp(t *testing.T, seed map[string]string) (*App, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/ws", 0755))
	for path, content := range seed {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}

	surface := editor.New(document.Env{FS: fs}, "/ws")
	app := NewApp(surface, models.DefaultSettings())
	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return app, fs
}

func send(a *App, msg tea.Msg) tea.Cmd {
	_, cmd := a.Update(msg)
	return cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func activeDoc(t *testing.T, a *App) *document.Document {
	t.Helper()
	doc, ok := a.surface.Active()
	require.True(t, ok, "expected an active document")
	return doc
}

func TestFileSelectedTwiceOpensOneTab(t *testing.T) {
	a, _ := newTestApp(t, map[string]string{"/ws/a.py": "print(1)"})

	send(a, FileSelectedMsg{Path: "/ws/a.py"})
	send(a, FileSelectedMsg{Path: "/ws/a.py"})

	require.Len(t, a.surface.Tabs(), 1)
	assert.Len(t, a.editors, 1)
	assert.Equal(t, focusEditor, a.focus)
	assert.Equal(t, "print(1)", a.activeEditor().Value())
}

func TestOpenRequestsWaitForFirstWindowSize(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/ws/a.py", []byte("a"), 0644))

	surface := editor.New(document.Env{FS: fs}, "/ws")
	surface.OpenFile("/ws/a.py")
	a := NewApp(surface, nil)
	assert.Empty(t, surface.Tabs())

	send(a, tea.WindowSizeMsg{Width: 80, Height: 24})

	require.Len(t, surface.Tabs(), 1)
	assert.Equal(t, "a", a.activeEditor().Value())
}

func TestTypingMarksTabDirty(t *testing.T) {
	a, _ := newTestApp(t, map[string]string{"/ws/a.py": "print(1)"})
	send(a, FileSelectedMsg{Path: "/ws/a.py"})

	send(a, runes("x"))

	doc := activeDoc(t, a)
	assert.True(t, doc.IsDirty())
	assert.Equal(t, "print(1)x", doc.Text())
	assert.Equal(t, "a.py*", a.surface.Tabs()[0].Title)
}

func TestTabKeyInsertsSpaces(t *testing.T) {
	a, _ := newTestApp(t, nil)
	send(a, tea.KeyMsg{Type: tea.KeyCtrlN})

	send(a, tea.KeyMsg{Type: tea.KeyTab})

	assert.Equal(t, "    ", activeDoc(t, a).Text())
}

func TestToggleFocusRoutesKeysToExplorer(t *testing.T) {
	a, _ := newTestApp(t, nil)
	send(a, tea.KeyMsg{Type: tea.KeyCtrlN})
	require.Equal(t, focusEditor, a.focus)

	send(a, tea.KeyMsg{Type: tea.KeyCtrlE})
	assert.Equal(t, focusExplorer, a.focus)
	assert.True(t, a.explorer.Focused())

	send(a, tea.KeyMsg{Type: tea.KeyCtrlE})
	assert.Equal(t, focusEditor, a.focus)
	send(a, runes("z"))
	assert.Equal(t, "z", activeDoc(t, a).Text())
}

func TestCloseDirtyTabAsksAndCancel(t *testing.T) {
	a, _ := newTestApp(t, map[string]string{"/ws/a.py": "a"})
	send(a, FileSelectedMsg{Path: "/ws/a.py"})
	send(a, runes("b"))

	send(a, tea.KeyMsg{Type: tea.KeyCtrlW})
	require.True(t, a.dialog.Active())
	assert.Contains(t, a.View(), "Do you want to save the changes before closing?")

	send(a, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, a.dialog.Active())
	assert.Len(t, a.surface.Tabs(), 1)
	assert.True(t, activeDoc(t, a).IsDirty())
}

func TestCloseDirtyTabDiscard(t *testing.T) {
	a, fs := newTestApp(t, map[string]string{"/ws/a.py": "a"})
	send(a, FileSelectedMsg{Path: "/ws/a.py"})
	send(a, runes("b"))

	send(a, tea.KeyMsg{Type: tea.KeyCtrlW})
	send(a, runes("d"))

	assert.Empty(t, a.surface.Tabs())
	assert.Empty(t, a.editors)
	assert.Equal(t, focusExplorer, a.focus)
	data, _ := afero.ReadFile(fs, "/ws/a.py")
	assert.Equal(t, "a", string(data))
}

func TestSaveUntitledThroughDialog(t *testing.T) {
	a, fs := newTestApp(t, nil)
	send(a, tea.KeyMsg{Type: tea.KeyCtrlN})
	send(a, runes("hi"))

	send(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	require.True(t, a.dialog.Active())
	p, _ := a.surface.Prompter().Current()
	assert.Equal(t, workflow.KindSaveAs, p.Kind)

	send(a, runes("new.txt"))
	assert.Equal(t, "new.txt", a.dialog.Input())
	send(a, tea.KeyMsg{Type: tea.KeyEnter})

	assert.False(t, a.dialog.Active())
	data, err := afero.ReadFile(fs, "/ws/new.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))
	assert.Equal(t, "new.txt", a.surface.Tabs()[0].Title)
	assert.Equal(t, "File saved: /ws/new.txt", a.status.Message())
}

func TestSaveAsKeyPrefillsCurrentPath(t *testing.T) {
	a, _ := newTestApp(t, map[string]string{"/ws/a.py": "a"})
	send(a, FileSelectedMsg{Path: "/ws/a.py"})

	send(a, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s"), Alt: true})

	require.True(t, a.dialog.Active())
	assert.Equal(t, "/ws/a.py", a.dialog.Input())
}

func TestDeleteThroughDialog(t *testing.T) {
	a, fs := newTestApp(t, map[string]string{"/ws/a.py": "a"})
	send(a, FileSelectedMsg{Path: "/ws/a.py"})

	send(a, tea.KeyMsg{Type: tea.KeyCtrlD})
	require.True(t, a.dialog.Active())
	cmd := send(a, runes("y"))

	exists, _ := afero.Exists(fs, "/ws/a.py")
	assert.False(t, exists)
	assert.Empty(t, a.surface.Tabs())
	assert.Equal(t, "File deleted: /ws/a.py", a.status.Message())
	assert.NotNil(t, cmd, "explorer reload and status expiry are scheduled")
}

func TestQuitWithoutChangesExits(t *testing.T) {
	a, _ := newTestApp(t, map[string]string{"/ws/a.py": "a"})
	send(a, FileSelectedMsg{Path: "/ws/a.py"})

	cmd := send(a, tea.KeyMsg{Type: tea.KeyCtrlQ})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestQuitWithChangesAsksFirst(t *testing.T) {
	a, _ := newTestApp(t, map[string]string{"/ws/a.py": "a"})
	send(a, FileSelectedMsg{Path: "/ws/a.py"})
	send(a, runes("b"))

	cmd := send(a, tea.KeyMsg{Type: tea.KeyCtrlQ})
	assert.False(t, a.quitting)
	require.True(t, a.dialog.Active())
	if cmd != nil {
		assert.NotEqual(t, tea.QuitMsg{}, cmd())
	}

	cmd = send(a, runes("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestNoticesExpire(t *testing.T) {
	a, _ := newTestApp(t, nil)

	send(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Equal(t, "No file to save. Please open a file first.", a.status.Message())
	assert.Equal(t, events.SeverityError, a.status.Severity())

	send(a, clearStatusMsg{seq: a.status.seq - 1})
	assert.Equal(t, "No file to save. Please open a file first.", a.status.Message())

	send(a, clearStatusMsg{seq: a.status.seq})
	assert.Empty(t, a.status.Message())
}

func TestPaletteRunsSelectedCommand(t *testing.T) {
	a, _ := newTestApp(t, nil)

	send(a, tea.KeyMsg{Type: tea.KeyCtrlP})
	require.True(t, a.palette.IsOpen())
	assert.Contains(t, a.View(), "Commands")

	// The first entry reloads the explorer.
	cmd := send(a, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, a.palette.IsOpen())
	assert.NotNil(t, cmd)

	send(a, tea.KeyMsg{Type: tea.KeyCtrlP})
	send(a, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, a.palette.IsOpen())
}

func TestCopyFilePath(t *testing.T) {
	original := copyToClipboard
	t.Cleanup(func() { copyToClipboard = original })

	var copied string
	copyToClipboard = func(text string) error {
		copied = text
		return nil
	}

	a, _ := newTestApp(t, map[string]string{"/ws/a.py": "a"})

	a.run(CommandCopyPath)
	send(a, StatusMsg("tick"))
	assert.Empty(t, copied)

	send(a, FileSelectedMsg{Path: "/ws/a.py"})
	a.run(CommandCopyPath)
	send(a, StatusMsg("refresh"))
	assert.Equal(t, "/ws/a.py", copied)

	copyToClipboard = func(string) error { return errors.New("no clipboard") }
	a.run(CommandCopyPath)
	a.applyEvents()
	assert.Equal(t, "Failed to copy to clipboard: no clipboard", a.status.Message())
}

func TestViewShowsTabsAndFooter(t *testing.T) {
	a, _ := newTestApp(t, map[string]string{"/ws/a.py": "print(1)", "/ws/notes": "n"})
	send(a, FileSelectedMsg{Path: "/ws/a.py"})

	view := a.View()
	assert.Contains(t, view, "a.py")
	assert.Contains(t, view, "python")

	send(a, FileSelectedMsg{Path: "/ws/notes"})
	assert.Contains(t, a.View(), plainLanguage)
}

func TestEditingCRLFFileKeepsLineEndings(t *testing.T) {
	a, fs := newTestApp(t, map[string]string{"/ws/a.py": "a = 1\r\nb = 2\r\n"})
	send(a, FileSelectedMsg{Path: "/ws/a.py"})
	require.False(t, a.readOnly[a.surface.ActiveID()])

	send(a, runes("x"))
	send(a, tea.KeyMsg{Type: tea.KeyCtrlS})

	data, err := afero.ReadFile(fs, "/ws/a.py")
	require.NoError(t, err)
	assert.Equal(t, "a = 1\r\nb = 2\r\nx", string(data))
	assert.False(t, activeDoc(t, a).IsDirty())
}

func TestContentTheEditorWouldChangeIsReadOnly(t *testing.T) {
	original := "package main\r\n\r\nfunc main() {\r\n\tprintln(1)\r\n}\r\n"
	a, fs := newTestApp(t, map[string]string{"/ws/main.go": original})

	send(a, FileSelectedMsg{Path: "/ws/main.go"})
	id := a.surface.ActiveID()
	require.True(t, a.readOnly[id])
	assert.Equal(t, events.SeverityWarning, a.status.Severity())
	assert.Contains(t, a.status.Message(), "main.go is read-only")

	send(a, tea.KeyMsg{Type: tea.KeyUp})
	send(a, runes("x"))
	send(a, tea.KeyMsg{Type: tea.KeyTab})
	send(a, tea.KeyMsg{Type: tea.KeyBackspace})

	doc := activeDoc(t, a)
	assert.False(t, doc.IsDirty())
	assert.Equal(t, "package main\n\nfunc main() {\n\tprintln(1)\n}\n", doc.Text())

	send(a, tea.KeyMsg{Type: tea.KeyCtrlS})
	data, err := afero.ReadFile(fs, "/ws/main.go")
	require.NoError(t, err)
	assert.Equal(t, original, string(data))

	send(a, tea.KeyMsg{Type: tea.KeyCtrlW})
	assert.Empty(t, a.readOnly)
}

func TestMouseOnTabBar(t *testing.T) {
	a, _ := newTestApp(t, map[string]string{"/ws/a.py": "a", "/ws/b.py": "b"})
	send(a, FileSelectedMsg{Path: "/ws/a.py"})
	send(a, FileSelectedMsg{Path: "/ws/b.py"})

	tabs := a.surface.Tabs()
	require.Len(t, tabs, 2)
	first, second := tabs[0], tabs[1]
	require.True(t, second.Active)

	press := func(x, y int, button tea.MouseButton) {
		send(a, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: button})
	}
	left := a.sidebarWidth()

	press(left+1, 1, tea.MouseButtonLeft)
	assert.Equal(t, second.ID, a.surface.ActiveID(), "clicks below the tab bar are ignored")

	press(left+1, 0, tea.MouseButtonLeft)
	assert.Equal(t, first.ID, a.surface.ActiveID())

	press(left+lipgloss.Width(renderTab(first))+1, 0, tea.MouseButtonMiddle)
	require.Len(t, a.surface.Tabs(), 1)
	assert.Equal(t, first.ID, a.surface.ActiveID())
	assert.NotContains(t, a.editors, second.ID)
}

func TestMiddleClickOnDirtyTabAsksFirst(t *testing.T) {
	a, _ := newTestApp(t, map[string]string{"/ws/a.py": "a", "/ws/b.py": "b"})
	send(a, FileSelectedMsg{Path: "/ws/a.py"})
	send(a, runes("!"))
	send(a, FileSelectedMsg{Path: "/ws/b.py"})

	send(a, tea.MouseMsg{X: a.sidebarWidth() + 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonMiddle})
	require.True(t, a.surface.Prompter().Active())
	assert.Len(t, a.surface.Tabs(), 2)

	send(a, tea.MouseMsg{X: a.sidebarWidth() + 1, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Len(t, a.surface.Tabs(), 2, "the tab bar is inert while a dialog is open")
}
