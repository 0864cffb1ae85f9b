package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/pluqqy/pluqqy-code/pkg/editor"
)

const maxTabLabelWidth = 24

// tabLabel shortens a tab title to fit maxTabLabelWidth cells. Wide runes
// count double.
func tabLabel(title string) string {
	if runewidth.StringWidth(title) <= maxTabLabelWidth {
		return title
	}
	return runewidth.Truncate(title, maxTabLabelWidth, "…")
}

func renderTab(tab editor.Tab) string {
	style := InactiveTabStyle
	if tab.Active {
		style = ActiveTabStyle
	}
	return style.Render(tabLabel(tab.Title))
}

// tabAt returns the tab drawn at column x of the tab bar.
func tabAt(tabs []editor.Tab, x int) (editor.Tab, bool) {
	if x < 0 {
		return editor.Tab{}, false
	}
	end := 0
	for _, tab := range tabs {
		end += lipgloss.Width(renderTab(tab))
		if x < end {
			return tab, true
		}
	}
	return editor.Tab{}, false
}

// renderTabBar draws the tab strip, clipped to width.
func renderTabBar(tabs []editor.Tab, width int) string {
	if len(tabs) == 0 {
		return PlaceholderStyle.Render("No open files")
	}

	rendered := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		rendered = append(rendered, renderTab(tab))
	}

	bar := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if width > 0 && lipgloss.Width(bar) > width {
		// Keep the start of the bar.
		bar = lipgloss.NewStyle().MaxWidth(width).Render(bar)
	}
	return strings.TrimRight(bar, "\n")
}
