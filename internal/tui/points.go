package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/Alixocracy/jast/internal/app"
	"github.com/Alixocracy/jast/internal/points"
)

const historyRows = 8

type pointsModel struct {
	app    *app.App
	width  int
	height int

	data      points.Data
	level     points.LevelInfo
	breakdown points.Breakdown
	cursor    int

	chart barchart.Model
	bar   progress.Model
}

func newPointsModel(a *app.App) pointsModel {
	return pointsModel{
		app:   a,
		level: points.LevelFor(0),
		chart: barchart.New(40, 8),
		bar:   progress.New(progress.WithDefaultGradient()),
	}
}

func (p *pointsModel) setSize(w, h int) {
	p.width = w
	p.height = h
	p.bar.Width = clamp(w-16, 10, 50)
}

type pointsDataMsg struct {
	data points.Data
}

func (p pointsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return pointsDataMsg{data: p.app.Ledger.Snapshot()}
	}
}

func (p pointsModel) update(msg tea.Msg) (pointsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case pointsDataMsg:
		p.data = msg.data
		p.level = points.LevelFor(msg.data.Total)
		p.breakdown = points.Categorize(msg.data.History)
		p.buildChart()
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up), key.Matches(msg, keys.Left):
			p.cursor = max(0, p.cursor-1)
		case key.Matches(msg, keys.Down), key.Matches(msg, keys.Right):
			p.cursor = clamp(p.cursor+1, 0, len(points.QuickActions)-1)
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Toggle):
			q, err := p.app.QuickAction(points.QuickActions[p.cursor].Label)
			if err != nil {
				return p, errStatus("Quick action failed", err)
			}
			return p, tea.Batch(p.refresh(), changed, status(fmt.Sprintf("%s +%d", q.Message, q.Points)))
		}
	}
	return p, nil
}

func (p *pointsModel) buildChart() {
	chartWidth := clamp(p.width-8, 20, 60)
	p.chart = barchart.New(chartWidth, 8)

	bar := func(label string, v int, c lipgloss.Color) barchart.BarData {
		return barchart.BarData{
			Label: label,
			Values: []barchart.BarValue{{
				Name:  label,
				Value: float64(v),
				Style: lipgloss.NewStyle().Foreground(c),
			}},
		}
	}
	p.chart.PushAll([]barchart.BarData{
		bar("Tasks", p.breakdown.Tasks, sage),
		bar("Wellness", p.breakdown.Wellness, mint),
		bar("Focus", p.breakdown.Focus, sky),
		bar("Other", p.breakdown.Other, lavender),
	})
	p.chart.Draw()
}

// levelProgress is the fraction of the way from the current level to the
// next one.
func levelProgress(total int, lvl points.LevelInfo) float64 {
	if lvl.Next == nil {
		return 1
	}
	span := lvl.Next.Min - lvl.Current.Min
	if span <= 0 {
		return 1
	}
	return float64(total-lvl.Current.Min) / float64(span)
}

func (p pointsModel) view() string {
	w := p.width - 4

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Points"), "  ",
		highlightStyle.Bold(true).Render(fmt.Sprintf("%d", p.data.Total)), "  ",
		accentStyle.Render(p.level.Current.Emoji+" "+p.level.Current.Name),
	)
	next := successStyle.Render("Max level reached 🎉")
	if p.level.Next != nil {
		next = mutedStyle.Render(fmt.Sprintf("%d points to %s %s", p.level.ToNext, p.level.Next.Emoji, p.level.Next.Name))
	}

	top := lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		p.bar.ViewAs(levelProgress(p.data.Total, p.level)),
		next,
		"",
		p.chart.View(),
		mutedStyle.Render(fmt.Sprintf("Tasks %d  Wellness %d  Focus %d  Other %d",
			p.breakdown.Tasks, p.breakdown.Wellness, p.breakdown.Focus, p.breakdown.Other)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(w).Render(top),
		panelStyle.Width(w).Render(p.renderQuickActions()),
		panelStyle.Width(w).Render(p.renderHistory()),
	)
}

func (p pointsModel) renderQuickActions() string {
	rows := []string{titleStyle.Render("Quick Wellness")}
	for i, q := range points.QuickActions {
		cursor := "  "
		style := normalItemStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%-14s +%d", cursor, q.Label, q.Points)))
	}
	rows = append(rows, "", mutedStyle.Render("  ↑/↓: choose  enter: log"))
	return strings.Join(rows, "\n")
}

func (p pointsModel) renderHistory() string {
	rows := []string{titleStyle.Render("Recent")}
	if len(p.data.History) == 0 {
		rows = append(rows, mutedStyle.Render("  Nothing yet. Complete a task to earn points."))
		return strings.Join(rows, "\n")
	}
	now := time.Now()
	for i, e := range p.data.History {
		if i == historyRows {
			rows = append(rows, mutedStyle.Render(fmt.Sprintf("  … %d more", len(p.data.History)-historyRows)))
			break
		}
		rows = append(rows, fmt.Sprintf("  %s %-20s %s",
			successStyle.Render(fmt.Sprintf("+%d", e.Points)),
			e.Action,
			mutedStyle.Render(humanize.RelTime(e.Timestamp, now, "ago", "from now")),
		))
	}
	return strings.Join(rows, "\n")
}
