package tui

import "github.com/charmbracelet/lipgloss"

// Pastel palette shared with the task colors.
var (
	sage     = lipgloss.Color("#A8C5A8")
	lavender = lipgloss.Color("#C5A8C5")
	sky      = lipgloss.Color("#A8C5D5")
	peach    = lipgloss.Color("#E5C5A8")
	rose     = lipgloss.Color("#E5A8B5")
	mint     = lipgloss.Color("#A8E5D5")
	butter   = lipgloss.Color("#E5E5A8")

	ink   = lipgloss.Color("#E8E6E3")
	stone = lipgloss.Color("#6B7280")
	slate = lipgloss.Color("#3F4451")
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func box(border lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(1, 2)
}

var (
	activeTabStyle = fg(sage).Bold(true).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(sage).
			Padding(0, 2)
	inactiveTabStyle = fg(stone).Padding(0, 2)

	panelStyle       = box(slate)
	activePanelStyle = box(sage)

	titleStyle     = fg(ink).Bold(true)
	subtitleStyle  = fg(lavender).Italic(true)
	accentStyle    = fg(peach)
	successStyle   = fg(mint)
	warningStyle   = fg(butter)
	errorStyle     = fg(rose)
	mutedStyle     = fg(stone)
	highlightStyle = fg(sky)
	doneStyle      = fg(stone).Strikethrough(true)

	selectedItemStyle = fg(sage).Bold(true)
	normalItemStyle   = fg(ink)

	headerStyle = lipgloss.NewStyle().Padding(0, 1)
	footerStyle = fg(stone).Padding(0, 1)

	timerStyle = lipgloss.NewStyle().Bold(true).Align(lipgloss.Center)
)

// clockStyle colors the countdown by timer state.
func clockStyle(running bool) lipgloss.Style {
	if running {
		return fg(mint).Bold(true)
	}
	return fg(butter).Bold(true)
}

// dot renders a task color swatch.
func dot(hex string) string {
	return fg(lipgloss.Color(hex)).Render("●")
}
