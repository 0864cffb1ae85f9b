package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/pluqqy-code/pkg/events"
)

// StatusBar shows the latest notice until it expires.
type StatusBar struct {
	message  string
	severity events.Severity
	seq      int
	duration time.Duration
}

// NewStatusBar creates a status bar whose messages last duration.
func NewStatusBar(duration time.Duration) *StatusBar {
	if duration <= 0 {
		duration = 3 * time.Second
	}
	return &StatusBar{duration: duration}
}

// Show displays n and returns the command that clears it later. A newer
// message is never cleared by an older timer.
func (s *StatusBar) Show(n events.Notice) tea.Cmd {
	s.seq++
	s.message = n.Message
	s.severity = n.Severity

	seq := s.seq
	return tea.Tick(s.duration, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

// Expire clears the message if msg belongs to it.
func (s *StatusBar) Expire(msg clearStatusMsg) {
	if msg.seq == s.seq {
		s.message = ""
	}
}

// Message returns the visible message, "" when there is none.
func (s *StatusBar) Message() string {
	return s.message
}

// Severity returns the severity of the visible message.
func (s *StatusBar) Severity() events.Severity {
	return s.severity
}

// View renders the status line, width columns wide.
func (s *StatusBar) View(width int) string {
	if s.message == "" {
		return ""
	}

	style := InfoStatusStyle
	icon := "ℹ"
	switch s.severity {
	case events.SeverityWarning:
		style = WarningStatusStyle
		icon = "⚠"
	case events.SeverityError:
		style = ErrorStatusStyle
		icon = "×"
	}
	return style.Width(width).Render(icon + " " + s.message)
}
