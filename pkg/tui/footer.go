package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"

	"github.com/pluqqy/pluqqy-code/pkg/document"
)

// plainLanguage is shown for documents without a known language.
const plainLanguage = "plain"

// renderFooter shows where the active document lives and what it is.
func renderFooter(doc *document.Document, width int) string {
	if doc == nil {
		return FooterStyle.Width(width).Render("")
	}

	language := doc.Language()
	if language == "" {
		language = plainLanguage
	}
	info := fmt.Sprintf("%s  %s", language, humanize.Bytes(uint64(len(doc.Text()))))

	path := doc.Path()
	if path == "" {
		path = document.UntitledName
	}
	// Leave room for padding and the info column.
	room := width - lipgloss.Width(info) - 4
	if room < 1 {
		room = 1
	}
	path = truncate.StringWithTail(path, uint(room), "…")

	gap := width - 2 - lipgloss.Width(path) - lipgloss.Width(info)
	if gap < 1 {
		gap = 1
	}
	return FooterStyle.Width(width).Render(fmt.Sprintf("%s%*s%s", path, gap, "", info))
}
