package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Alixocracy/jast/internal/app"
	"github.com/Alixocracy/jast/internal/lists"
)

type dumpModel struct {
	app    *app.App
	width  int
	height int

	thoughts []lists.Thought
	cursor   int

	input      textinput.Model
	capturing  bool
	confirming bool

	now func() time.Time
}

func newDumpModel(a *app.App) dumpModel {
	ti := textinput.New()
	ti.Placeholder = "What's on your mind?"
	ti.CharLimit = 500
	return dumpModel{app: a, input: ti, now: time.Now}
}

func (d *dumpModel) setSize(w, h int) {
	d.width = w
	d.height = h
	d.input.Width = max(10, w-12)
}

func (d dumpModel) inputActive() bool { return d.capturing || d.confirming }

type dumpDataMsg struct {
	thoughts []lists.Thought
}

func (d dumpModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return dumpDataMsg{thoughts: d.app.Dump.Items()}
	}
}

func (d dumpModel) update(msg tea.Msg) (dumpModel, tea.Cmd) {
	switch msg := msg.(type) {
	case dumpDataMsg:
		d.thoughts = msg.thoughts
		d.cursor = clamp(d.cursor, 0, max(0, len(d.thoughts)-1))
		return d, nil

	case tea.KeyMsg:
		if d.confirming {
			return d.updateConfirm(msg)
		}
		if d.capturing {
			return d.updateCapture(msg)
		}
		switch {
		case key.Matches(msg, keys.New), key.Matches(msg, keys.Enter):
			d.capturing = true
			d.input.SetValue("")
			return d, d.input.Focus()
		case key.Matches(msg, keys.Up):
			d.cursor = max(0, d.cursor-1)
		case key.Matches(msg, keys.Down):
			d.cursor = clamp(d.cursor+1, 0, max(0, len(d.thoughts)-1))
		case key.Matches(msg, keys.MoveUp):
			return d.reorder(-1)
		case key.Matches(msg, keys.MoveDown):
			return d.reorder(1)
		case key.Matches(msg, keys.Delete):
			if d.cursor < len(d.thoughts) {
				if _, err := d.app.Dump.Delete(d.thoughts[d.cursor].ID); err != nil {
					return d, errStatus("Delete failed", err)
				}
				return d, tea.Batch(d.refresh(), changed)
			}
		case key.Matches(msg, keys.Clear):
			if len(d.thoughts) > 0 {
				d.confirming = true
			}
		}
	}
	return d, nil
}

func (d dumpModel) updateCapture(msg tea.KeyMsg) (dumpModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Enter):
		text := d.input.Value()
		d.input.SetValue("")
		if strings.TrimSpace(text) == "" {
			d.capturing = false
			d.input.Blur()
			return d, nil
		}
		if _, err := d.app.Dump.Add(text); err != nil {
			return d, errStatus("Capture failed", err)
		}
		// capture stays open until esc
		return d, tea.Batch(d.refresh(), changed)
	case key.Matches(msg, keys.Back):
		d.capturing = false
		d.input.Blur()
		return d, nil
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

func (d dumpModel) updateConfirm(msg tea.KeyMsg) (dumpModel, tea.Cmd) {
	d.confirming = false
	if msg.String() != "y" {
		return d, nil
	}
	if err := d.app.Dump.Clear(); err != nil {
		return d, errStatus("Clear failed", err)
	}
	return d, tea.Batch(d.refresh(), changed, status("Brain dump cleared"))
}

func (d dumpModel) reorder(delta int) (dumpModel, tea.Cmd) {
	to := d.cursor + delta
	if to < 0 || to >= len(d.thoughts) {
		return d, nil
	}
	if err := d.app.Dump.Move(d.cursor, to); err != nil {
		return d, errStatus("Move failed", err)
	}
	d.cursor = to
	return d, d.refresh()
}

func (d dumpModel) view() string {
	w := d.width - 4
	title := titleStyle.Render("Brain Dump") + "  " + mutedStyle.Render(fmt.Sprintf("%d notes", len(d.thoughts)))

	rows := []string{title, ""}
	if d.capturing {
		rows = append(rows, d.input.View(), mutedStyle.Render("  enter: save  esc: done"), "")
	}

	if len(d.thoughts) == 0 {
		rows = append(rows, mutedStyle.Render("Empty your head here. Press n to capture a thought."))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	now := d.now()
	for i, th := range d.thoughts {
		cursor := "  "
		style := normalItemStyle
		if i == d.cursor && !d.capturing {
			cursor = "> "
			style = selectedItemStyle
		}
		when := mutedStyle.Render(humanize.RelTime(th.Timestamp, now, "ago", "from now"))
		rows = append(rows, fmt.Sprintf("%s%s  %s", style.Render(cursor), style.Render(th.Text), when))
	}

	rows = append(rows, "")
	if d.confirming {
		rows = append(rows, warningStyle.Render(fmt.Sprintf("  Clear all %d notes? y/N", len(d.thoughts))))
	} else {
		rows = append(rows, mutedStyle.Render("  n: capture  J/K: reorder  d: delete  C: clear all"))
	}

	style := panelStyle
	if d.capturing {
		style = activePanelStyle
	}
	return style.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
