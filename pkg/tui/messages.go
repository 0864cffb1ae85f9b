package tui

// FileSelectedMsg is sent by the explorer when the user picks a file. Path
// is absolute and cleaned.
type FileSelectedMsg struct {
	Path string
}

// StatusMsg shows a temporary informational message.
type StatusMsg string

// clearStatusMsg expires the status message shown as number seq.
type clearStatusMsg struct {
	seq int
}
