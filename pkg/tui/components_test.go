package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/pluqqy/pluqqy-code/pkg/editor"
	"github.com/pluqqy/pluqqy-code/pkg/events"
	"github.com/pluqqy/pluqqy-code/pkg/workflow"
)

func TestTabLabel(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"short", "a.py", "a.py"},
		{"dirty", "a.py*", "a.py*"},
		{"long", strings.Repeat("x", 40) + ".go", strings.Repeat("x", maxTabLabelWidth-1) + "…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tabLabel(tt.title)
			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, runewidth.StringWidth(got), maxTabLabelWidth)
		})
	}
}

func TestTabLabelWideRunes(t *testing.T) {
	got := tabLabel(strings.Repeat("文", 20))
	assert.LessOrEqual(t, runewidth.StringWidth(got), maxTabLabelWidth)
}

func TestRenderTabBar(t *testing.T) {
	assert.Contains(t, renderTabBar(nil, 80), "No open files")

	bar := renderTabBar([]editor.Tab{
		{ID: "1", Title: "a.py"},
		{ID: "2", Title: "b.go*", Active: true},
	}, 80)
	assert.Contains(t, bar, "a.py")
	assert.Contains(t, bar, "b.go*")
}

func TestRenderFooterWithoutDocument(t *testing.T) {
	assert.NotPanics(t, func() { renderFooter(nil, 40) })
}

func TestStatusBarIgnoresStaleTimers(t *testing.T) {
	s := NewStatusBar(time.Second)

	s.Show(events.Info("first"))
	first := s.seq
	s.Show(events.Error("second"))

	s.Expire(clearStatusMsg{seq: first})
	assert.Equal(t, "second", s.Message())
	assert.Contains(t, s.View(40), "second")

	s.Expire(clearStatusMsg{seq: s.seq})
	assert.Empty(t, s.Message())
	assert.Empty(t, s.View(40))
}

func TestConfirmationKeys(t *testing.T) {
	tests := []struct {
		name   string
		kind   workflow.Kind
		key    tea.KeyMsg
		want   workflow.Choice
		answer bool
	}{
		{"save", workflow.KindUnsavedChanges, runes("s"), workflow.ChoiceSave, true},
		{"discard", workflow.KindUnsavedChanges, runes("d"), workflow.ChoiceDiscard, true},
		{"enter saves", workflow.KindUnsavedChanges, tea.KeyMsg{Type: tea.KeyEnter}, workflow.ChoiceSave, true},
		{"esc cancels", workflow.KindUnsavedChanges, tea.KeyMsg{Type: tea.KeyEsc}, workflow.ChoiceCancel, true},
		{"delete yes", workflow.KindDeleteConfirm, runes("Y"), workflow.ChoiceConfirm, true},
		{"delete enter is safe", workflow.KindDeleteConfirm, tea.KeyMsg{Type: tea.KeyEnter}, workflow.ChoiceCancel, true},
		{"quit no", workflow.KindQuitConfirm, runes("n"), workflow.ChoiceCancel, true},
		{"unrelated key", workflow.KindQuitConfirm, runes("x"), workflow.ChoiceCancel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := workflow.NewPrompter()
			p.Request(workflow.Prompt{Kind: tt.kind, Title: "t"}, nil)

			m := NewConfirmation()
			m.Sync(p.Current())

			answer, done, _ := m.Update(tt.key)
			assert.Equal(t, tt.answer, done)
			if done {
				assert.Equal(t, tt.want, answer.Choice)
			}
		})
	}
}

func TestConfirmationKeepsInputForSamePrompt(t *testing.T) {
	p := workflow.NewPrompter()
	p.Request(workflow.Prompt{Kind: workflow.KindSaveAs, Path: "/ws/a.py"}, nil)

	m := NewConfirmation()
	m.Sync(p.Current())
	m.Update(runes("x"))
	m.Sync(p.Current())
	assert.Equal(t, "/ws/a.pyx", m.Input())

	p.Dismiss()
	p.Request(workflow.Prompt{Kind: workflow.KindSaveAs}, nil)
	m.Sync(p.Current())
	assert.Equal(t, "", m.Input())
	assert.Contains(t, m.View(), "[enter] Save")

	p.Dismiss()
	m.Sync(p.Current())
	assert.False(t, m.Active())
	assert.Empty(t, m.View())
}

func TestTabAt(t *testing.T) {
	tabs := []editor.Tab{
		{ID: "1", Title: "a.py"},
		{ID: "2", Title: "main.go*", Active: true},
	}
	firstWidth := lipgloss.Width(renderTab(tabs[0]))

	tests := []struct {
		x      int
		wantID string
	}{
		{-1, ""},
		{0, "1"},
		{firstWidth - 1, "1"},
		{firstWidth, "2"},
		{firstWidth + lipgloss.Width(renderTab(tabs[1])) - 1, "2"},
		{firstWidth + lipgloss.Width(renderTab(tabs[1])), ""},
	}

	for _, tt := range tests {
		tab, ok := tabAt(tabs, tt.x)
		assert.Equal(t, tt.wantID != "", ok, "x=%d", tt.x)
		assert.Equal(t, tt.wantID, tab.ID, "x=%d", tt.x)
	}
}

func TestExplorerStaysInsideRoot(t *testing.T) {
	e := NewExplorer("/ws/", false)
	e.SetFocused(true)

	assert.Nil(t, e.Update(tea.KeyMsg{Type: tea.KeyBackspace}))
	assert.Equal(t, "/ws", e.picker.CurrentDirectory)

	e.picker.CurrentDirectory = "/ws/pkg"
	assert.NotNil(t, e.Update(tea.KeyMsg{Type: tea.KeyBackspace}))
	assert.Equal(t, "/ws", e.picker.CurrentDirectory)

	e.SetFocused(false)
	e.picker.CurrentDirectory = "/ws/pkg"
	assert.Nil(t, e.Update(tea.KeyMsg{Type: tea.KeyBackspace}))
	assert.Equal(t, "/ws/pkg", e.picker.CurrentDirectory)
}

func TestFullHelpNamesShadowedEditorKeys(t *testing.T) {
	h := help.New()
	h.ShowAll = true
	h.Width = 0

	assert.Contains(t, h.View(keys), "line next/prev")
}
