package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Alixocracy/jast/internal/app"
	"github.com/Alixocracy/jast/internal/points"
	"github.com/Alixocracy/jast/internal/timer"
)

// focusModel shows one countdown. The regular view lives for the whole
// session; a full-screen copy is created on demand and shares progress with
// it through app.Focus.
type focusModel struct {
	app          *app.App
	timer        *timer.Timer
	presentation timer.Presentation
	width        int
	height       int

	input textinput.Model
	bar   progress.Model

	sessions int
	focused  time.Duration
	task     string
}

func newFocusModel(a *app.App, alarm timer.Alarm, minutes int, p timer.Presentation) focusModel {
	ti := textinput.New()
	ti.Placeholder = "MM:SS"
	ti.CharLimit = 7
	ti.Width = 8

	m := focusModel{
		app:          a,
		timer:        a.NewTimer(minutes, alarm),
		presentation: p,
		input:        ti,
		bar:          progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	a.Focus.Attach(m.timer, p)
	return m
}

func (m *focusModel) setSize(w, h int) {
	m.width = w
	m.height = h
	m.bar.Width = clamp(w-12, 10, 60)
}

func (m focusModel) editing() bool { return m.timer.Editing() }

// attached reports whether this model's timer currently owns the countdown.
func (m focusModel) attached() bool { return m.app.Focus.Owner() == m.timer }

// reattach takes the countdown back after another presentation let go.
func (m focusModel) reattach() {
	if !m.attached() {
		m.app.Focus.Attach(m.timer, m.presentation)
	}
}

func (m focusModel) detach() { m.app.Focus.Detach(m.timer) }

type focusDataMsg struct {
	sessions int
	focused  time.Duration
	task     string
}

func (m focusModel) refresh() tea.Cmd {
	return func() tea.Msg {
		n, total, err := m.app.FocusStats()
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Focus stats: %v", err), isError: true}
		}
		return focusDataMsg{sessions: n, focused: total, task: m.app.CurrentTask()}
	}
}

func (m focusModel) update(msg tea.Msg) (focusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case focusDataMsg:
		m.sessions = msg.sessions
		m.focused = msg.focused
		m.task = msg.task
		return m, nil

	case tickMsg:
		if !m.attached() {
			return m, nil
		}
		if m.timer.Tick() {
			return m, tea.Batch(
				m.refresh(),
				changed,
				status(fmt.Sprintf("Focus session complete! +%d points", points.FocusSessionPoints)),
			)
		}
		return m, nil

	case tea.KeyMsg:
		if m.timer.Editing() {
			return m.updateEdit(msg)
		}
		switch {
		case key.Matches(msg, keys.Start), key.Matches(msg, keys.Toggle):
			m.timer.Toggle()
		case key.Matches(msg, keys.Reset):
			m.timer.Reset()
		case key.Matches(msg, keys.Edit):
			m.timer.StartEdit()
			m.input.SetValue(m.timer.State().PendingEdit)
			m.input.CursorEnd()
			return m, m.input.Focus()
		case key.Matches(msg, keys.Preset):
			// The handoff snapshot carries no duration; presets stay on
			// the regular view.
			if m.presentation == timer.FullScreen {
				return m, nil
			}
			m.timer.SelectDuration(nextPreset(m.timer.State().SelectedMinutes))
		case key.Matches(msg, keys.FullScreen):
			if m.presentation == timer.Regular {
				return m, func() tea.Msg { return openFullScreenMsg{} }
			}
		case key.Matches(msg, keys.Back):
			if m.presentation == timer.FullScreen {
				return m, func() tea.Msg { return closeFullScreenMsg{} }
			}
		}
	}
	return m, nil
}

func (m focusModel) updateEdit(msg tea.KeyMsg) (focusModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		applied := m.timer.CommitEdit(m.input.Value())
		m.input.Blur()
		if !applied {
			return m, status("Enter minutes as M or M:SS")
		}
		return m, nil
	case key.Matches(msg, keys.Back):
		m.timer.CancelEdit()
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.timer.SetPendingEdit(m.input.Value())
	return m, cmd
}

// nextPreset returns the preset after minutes, wrapping around.
func nextPreset(minutes int) int {
	for _, p := range timer.Presets {
		if p > minutes {
			return p
		}
	}
	return timer.Presets[0]
}

func (m focusModel) clock() string {
	st := m.timer.State()
	text := timer.FormatClock(st.RemainingSeconds)
	switch {
	case st.Editing:
		return m.input.View()
	case st.Running:
		return clockStyle(true).Render(text)
	case st.RemainingSeconds == 0:
		return successStyle.Bold(true).Render("Done!")
	default:
		return clockStyle(false).Render(text)
	}
}

func (m focusModel) stateLabel() string {
	st := m.timer.State()
	switch {
	case st.Editing:
		return mutedStyle.Render("enter: apply  esc: cancel")
	case st.Running:
		return successStyle.Render("●  FOCUSING")
	case st.RemainingSeconds == 0:
		return successStyle.Render("✓  SESSION COMPLETE")
	default:
		return warningStyle.Render("⏸  PAUSED")
	}
}

func (m focusModel) renderPresets() string {
	sel := m.timer.State().SelectedMinutes
	var parts []string
	for _, p := range timer.Presets {
		label := fmt.Sprintf("%dm", p)
		if p == sel {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, parts...)
}

func (m focusModel) view() string {
	if m.presentation == timer.FullScreen {
		return m.fullScreenView()
	}
	w := m.width - 4

	task := mutedStyle.Render("No open tasks")
	if m.task != "" {
		task = highlightStyle.Render(m.task)
	}
	stats := mutedStyle.Render(fmt.Sprintf("Today: %d sessions, %s focused", m.sessions, formatMinutes(m.focused)))

	content := lipgloss.JoinVertical(lipgloss.Center,
		titleStyle.Render("Focus Timer"),
		"",
		timerStyle.Width(w-6).Render(m.clock()),
		m.stateLabel(),
		"",
		m.bar.ViewAs(m.timer.Progress()),
		"",
		m.renderPresets(),
		"",
		task,
		stats,
	)
	controls := mutedStyle.Render("s/space: start/pause  r: reset  e: edit  p: preset  f: full screen")
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Center, content, "", controls))
}

func (m focusModel) fullScreenView() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		subtitleStyle.Render(m.app.CurrentTask()),
		"",
		m.clock(),
		m.stateLabel(),
		"",
		m.bar.ViewAs(m.timer.Progress()),
		"",
		mutedStyle.Render("space: start/pause  r: reset  e: edit  esc: exit full screen"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
