package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Alixocracy/jast/internal/app"
	"github.com/Alixocracy/jast/internal/lists"
	"github.com/Alixocracy/jast/internal/points"
)

type todayPane int

const (
	paneToday todayPane = iota
	paneBacklog
)

type todayModel struct {
	app    *app.App
	width  int
	height int

	tasks         []lists.Task
	backlog       []lists.Task
	pane          todayPane
	cursor        int
	backlogCursor int

	formActive bool
	form       *huh.Form
	formType   string // "new", "backlog", "edit"

	// Form field pointers (survive value copies)
	formText  *string
	formColor *string

	editingID string
}

func newTodayModel(a *app.App) todayModel {
	text, color := "", lists.DefaultColor
	return todayModel{
		app:       a,
		formText:  &text,
		formColor: &color,
	}
}

func (m *todayModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type todayDataMsg struct {
	tasks   []lists.Task
	backlog []lists.Task
}

func (m todayModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return todayDataMsg{
			tasks:   m.app.Board.Today.Items(),
			backlog: m.app.Board.Backlog.Items(),
		}
	}
}

func changed() tea.Msg { return dataChangedMsg{} }

func (m todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case todayDataMsg:
		m.tasks = msg.tasks
		m.backlog = msg.backlog
		m.cursor = clamp(m.cursor, 0, max(0, len(m.tasks)-1))
		m.backlogCursor = clamp(m.backlogCursor, 0, max(0, len(m.backlog)-1))
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}
	return m, nil
}

// selected returns the task under the cursor of the active pane.
func (m todayModel) selected() (lists.Task, bool) {
	if m.pane == paneBacklog {
		if m.backlogCursor < len(m.backlog) {
			return m.backlog[m.backlogCursor], true
		}
		return lists.Task{}, false
	}
	if m.cursor < len(m.tasks) {
		return m.tasks[m.cursor], true
	}
	return lists.Task{}, false
}

func (m todayModel) activeList() *lists.List[lists.Task] {
	if m.pane == paneBacklog {
		return m.app.Board.Backlog
	}
	return m.app.Board.Today
}

func (m todayModel) updateKeys(msg tea.KeyMsg) (todayModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Left):
		m.pane = paneToday
	case key.Matches(msg, keys.Right):
		if len(m.backlog) > 0 {
			m.pane = paneBacklog
		}
	case key.Matches(msg, keys.Up):
		if m.pane == paneBacklog {
			m.backlogCursor = max(0, m.backlogCursor-1)
		} else {
			m.cursor = max(0, m.cursor-1)
		}
	case key.Matches(msg, keys.Down):
		if m.pane == paneBacklog {
			m.backlogCursor = clamp(m.backlogCursor+1, 0, max(0, len(m.backlog)-1))
		} else {
			m.cursor = clamp(m.cursor+1, 0, max(0, len(m.tasks)-1))
		}
	case key.Matches(msg, keys.New):
		formType := "new"
		if m.pane == paneBacklog {
			formType = "backlog"
		}
		return m.showForm(formType, lists.Task{Color: lists.DefaultColor})
	case key.Matches(msg, keys.Edit):
		if t, ok := m.selected(); ok {
			return m.showForm("edit", t)
		}
	case key.Matches(msg, keys.Delete):
		if t, ok := m.selected(); ok {
			if _, err := m.app.Board.Delete(t.ID); err != nil {
				return m, errStatus("Delete failed", err)
			}
			return m, tea.Batch(m.refresh(), changed)
		}
	case key.Matches(msg, keys.Toggle):
		if m.pane == paneToday {
			return m.toggle()
		}
	case key.Matches(msg, keys.Color):
		if t, ok := m.selected(); ok {
			if _, err := m.app.Board.SetColor(t.ID, nextColor(t.Color)); err != nil {
				return m, errStatus("Color failed", err)
			}
			return m, m.refresh()
		}
	case key.Matches(msg, keys.Move):
		return m.moveAcross()
	case key.Matches(msg, keys.MoveUp):
		return m.reorder(-1)
	case key.Matches(msg, keys.MoveDown):
		return m.reorder(1)
	}
	return m, nil
}

func (m todayModel) toggle() (todayModel, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	t, err := m.app.Board.Toggle(t.ID)
	if err != nil {
		return m, errStatus("Toggle failed", err)
	}
	cmds := []tea.Cmd{m.refresh(), changed}
	if t.Completed {
		cmds = append(cmds, status(fmt.Sprintf("+%d points! %s", points.TaskCompletedPoints, points.TaskCompleted)))
	}
	return m, tea.Batch(cmds...)
}

func (m todayModel) moveAcross() (todayModel, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	if m.pane == paneBacklog {
		if _, err := m.app.Board.MoveToToday(t.ID); err != nil {
			if errors.Is(err, lists.ErrTodayFull) {
				return m, func() tea.Msg {
					return statusMsg{text: fmt.Sprintf("Today already has %d open tasks", lists.MaxOpenToday), isError: true}
				}
			}
			return m, errStatus("Move failed", err)
		}
		if len(m.backlog) <= 1 {
			m.pane = paneToday
		}
		return m, tea.Batch(m.refresh(), changed)
	}
	if _, err := m.app.Board.MoveToBacklog(t.ID); err != nil {
		return m, errStatus("Move failed", err)
	}
	return m, tea.Batch(m.refresh(), changed, status("Moved to backlog"))
}

func (m todayModel) reorder(delta int) (todayModel, tea.Cmd) {
	l := m.activeList()
	cur := &m.cursor
	if m.pane == paneBacklog {
		cur = &m.backlogCursor
	}
	to := *cur + delta
	if to < 0 || to >= l.Len() {
		return m, nil
	}
	if err := l.Move(*cur, to); err != nil {
		return m, errStatus("Move failed", err)
	}
	*cur = to
	return m, m.refresh()
}

// nextColor cycles through the palette.
func nextColor(hex string) string {
	for i, c := range lists.Palette {
		if strings.EqualFold(c.Hex, hex) {
			return lists.Palette[(i+1)%len(lists.Palette)].Hex
		}
	}
	return lists.DefaultColor
}

func colorOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], len(lists.Palette))
	for i, c := range lists.Palette {
		opts[i] = huh.NewOption(dot(c.Hex)+" "+c.Name, c.Hex)
	}
	return opts
}

func notEmpty(s string) error {
	if strings.TrimSpace(s) == "" {
		return lists.ErrEmpty
	}
	return nil
}

func (m todayModel) showForm(formType string, t lists.Task) (todayModel, tea.Cmd) {
	*m.formText = t.Text
	*m.formColor = t.Color
	if *m.formColor == "" {
		*m.formColor = lists.DefaultColor
	}
	m.formType = formType
	m.editingID = t.ID

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Task").Value(m.formText).Validate(notEmpty),
			huh.NewSelect[string]().Title("Color").Options(colorOptions()...).Value(m.formColor),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formActive = true
	return m, m.form.Init()
}

func (m todayModel) updateForm(msg tea.Msg) (todayModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m, m.submitForm()
	}
	return m, cmd
}

func (m todayModel) submitForm() tea.Cmd {
	text, color := *m.formText, *m.formColor
	switch m.formType {
	case "new":
		res, err := m.app.Board.AddTask(text, color)
		if err != nil {
			return errStatus("Add failed", err)
		}
		if res.Redirected {
			return tea.Batch(m.refresh(), changed, status(fmt.Sprintf("Today has %d open tasks, added to backlog", lists.MaxOpenToday)))
		}
	case "backlog":
		if _, err := m.app.Board.AddToBacklog(text, color); err != nil {
			return errStatus("Add failed", err)
		}
	case "edit":
		if _, err := m.app.Board.Edit(m.editingID, text); err != nil {
			return errStatus("Edit failed", err)
		}
		if _, err := m.app.Board.SetColor(m.editingID, color); err != nil {
			return errStatus("Edit failed", err)
		}
	}
	return tea.Batch(m.refresh(), changed)
}

func (m todayModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := "New Task"
		switch m.formType {
		case "backlog":
			title = "New Backlog Task"
		case "edit":
			title = "Edit Task"
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", m.form.View()),
		)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderToday(w),
		m.renderBacklog(w),
	)
}

func (m todayModel) renderToday(w int) string {
	open := m.app.Board.OpenToday()
	title := titleStyle.Render("Today") + "  " + mutedStyle.Render(fmt.Sprintf("%d/%d open", open, lists.MaxOpenToday))

	style := panelStyle
	if m.pane == paneToday {
		style = activePanelStyle
	}

	if len(m.tasks) == 0 {
		return style.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, "", mutedStyle.Render("No tasks yet. Press n to add one."),
		))
	}

	rows := []string{title, ""}
	for i, t := range m.tasks {
		rows = append(rows, renderTask(t, m.pane == paneToday && i == m.cursor))
	}
	rows = append(rows, "", mutedStyle.Render("  n: new  e: edit  space: done  c: color  m: to backlog  J/K: reorder  d: delete"))
	return style.Width(w).Render(strings.Join(rows, "\n"))
}

func (m todayModel) renderBacklog(w int) string {
	title := titleStyle.Render("Backlog") + "  " + mutedStyle.Render(fmt.Sprintf("%d", len(m.backlog)))

	style := panelStyle
	if m.pane == paneBacklog {
		style = activePanelStyle
	}
	if len(m.backlog) == 0 {
		return style.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left,
			title, mutedStyle.Render("Nothing deferred."),
		))
	}

	rows := []string{title}
	for i, t := range m.backlog {
		rows = append(rows, renderTask(t, m.pane == paneBacklog && i == m.backlogCursor))
	}
	if m.pane == paneBacklog {
		rows = append(rows, "", mutedStyle.Render("  m: to today  ←: back to today"))
	}
	return style.Width(w).Render(strings.Join(rows, "\n"))
}

func renderTask(t lists.Task, selected bool) string {
	cursor := "  "
	style := normalItemStyle
	if selected {
		cursor = "> "
		style = selectedItemStyle
	}
	check := "[ ]"
	text := style.Render(t.Text)
	if t.Completed {
		check = "[x]"
		text = doneStyle.Render(t.Text)
	}
	return fmt.Sprintf("%s%s %s %s", style.Render(cursor), dot(t.Color), style.Render(check), text)
}
