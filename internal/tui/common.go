package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Alixocracy/jast/internal/mailer"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewFocus
	viewDump
	viewPoints
	viewEndOfDay
	viewSettings
)

var viewNames = []string{"Today", "Focus", "Brain Dump", "Points", "End of Day", "Settings"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

// dataChangedMsg asks every view to re-read the shared state.
type dataChangedMsg struct{}

type exportDoneMsg struct {
	path string
}

type emailSentMsg struct {
	email  string
	result *mailer.Result
	err    error
}

type openFullScreenMsg struct{}

type closeFullScreenMsg struct{}

// --- Helpers ---

func status(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errStatus(prefix string, err error) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{text: fmt.Sprintf("%s: %v", prefix, err), isError: true}
	}
}

func formatMinutes(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
