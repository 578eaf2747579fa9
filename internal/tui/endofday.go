package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Alixocracy/jast/internal/app"
	"github.com/Alixocracy/jast/internal/export"
	"github.com/Alixocracy/jast/internal/mailer"
	"github.com/Alixocracy/jast/internal/summary"
)

type endOfDayModel struct {
	app    *app.App
	width  int
	height int

	sender      mailer.Sender
	sendTimeout time.Duration
	exportDir   string
	copy        func(string) error

	markdown  string
	completed int
	pending   int
	notes     int
	vp        viewport.Model

	exportPicking bool
	exportCursor  int
	sending       bool

	formActive bool
	form       *huh.Form
	formType   string // "email", "reset"

	// Form field pointers (survive value copies)
	email      *string
	confirm    *bool
	keepUndone *bool
}

func newEndOfDayModel(a *app.App, deps Deps) endOfDayModel {
	email, confirm, keep := "", false, true
	return endOfDayModel{
		app:         a,
		sender:      deps.Sender,
		sendTimeout: deps.SendTimeout,
		exportDir:   deps.ExportDir,
		copy:        deps.Clipboard,
		vp:          viewport.New(60, 10),
		email:       &email,
		confirm:     &confirm,
		keepUndone:  &keep,
	}
}

func (e *endOfDayModel) setSize(w, h int) {
	e.width = w
	e.height = h
	e.vp.Width = max(20, w-8)
	e.vp.Height = max(5, h-12)
}

type endOfDayDataMsg struct {
	markdown  string
	rendered  string
	completed int
	pending   int
	notes     int
}

func (e endOfDayModel) refresh() tea.Cmd {
	width := max(20, e.width-10)
	return func() tea.Msg {
		d := e.app.Day()
		md := summary.Markdown(d)
		rendered := md
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err == nil {
			if out, err := r.Render(md); err == nil {
				rendered = out
			}
		}
		return endOfDayDataMsg{
			markdown:  md,
			rendered:  rendered,
			completed: len(d.Completed()),
			pending:   len(d.Pending()),
			notes:     len(d.Thoughts),
		}
	}
}

func (e endOfDayModel) update(msg tea.Msg) (endOfDayModel, tea.Cmd) {
	if e.formActive && e.form != nil {
		return e.updateForm(msg)
	}

	switch msg := msg.(type) {
	case endOfDayDataMsg:
		e.markdown = msg.markdown
		e.completed = msg.completed
		e.pending = msg.pending
		e.notes = msg.notes
		e.vp.SetContent(msg.rendered)
		return e, nil

	case emailSentMsg:
		e.sending = false
		if msg.err != nil {
			return e, func() tea.Msg {
				return statusMsg{text: "Failed to send email: " + publicError(msg.err), isError: true}
			}
		}
		return e, status("Summary sent to " + msg.email)

	case tea.KeyMsg:
		if e.exportPicking {
			return e.updateExportPicker(msg)
		}
		switch {
		case key.Matches(msg, keys.Copy):
			return e, e.copySummary()
		case key.Matches(msg, keys.Export):
			e.exportPicking = true
			e.exportCursor = 0
			return e, nil
		case key.Matches(msg, keys.Send):
			if e.sending {
				return e, nil
			}
			return e.showEmailForm()
		case key.Matches(msg, keys.NewDay):
			return e.showResetForm()
		}
	}

	var cmd tea.Cmd
	e.vp, cmd = e.vp.Update(msg)
	return e, cmd
}

func (e endOfDayModel) copySummary() tea.Cmd {
	md := e.markdown
	copyFn := e.copy
	return func() tea.Msg {
		if copyFn == nil {
			return statusMsg{text: "Clipboard unavailable", isError: true}
		}
		if err := copyFn(md); err != nil {
			return statusMsg{text: fmt.Sprintf("Copy failed: %v", err), isError: true}
		}
		return statusMsg{text: "Summary copied to clipboard"}
	}
}

func (e endOfDayModel) updateExportPicker(msg tea.KeyMsg) (endOfDayModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if e.exportCursor > 0 {
			e.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if e.exportCursor < len(export.Formats)-1 {
			e.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		e.exportPicking = false
		return e, e.doExport(export.Formats[e.exportCursor])
	case key.Matches(msg, keys.Back):
		e.exportPicking = false
	}
	return e, nil
}

func (e endOfDayModel) doExport(f export.Format) tea.Cmd {
	return func() tea.Msg {
		path, err := export.Write(e.app.Day(), f, e.exportDir)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		return exportDoneMsg{path: path}
	}
}

func (e endOfDayModel) showEmailForm() (endOfDayModel, tea.Cmd) {
	e.formType = "email"
	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Send summary to").
				Placeholder("you@example.com").
				Value(e.email).
				Validate(mailer.ValidateEmail),
		),
	).WithShowHelp(true).WithShowErrors(true)
	e.formActive = true
	return e, e.form.Init()
}

func (e endOfDayModel) showResetForm() (endOfDayModel, tea.Cmd) {
	*e.confirm = false
	*e.keepUndone = true
	e.formType = "reset"
	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Keep unfinished tasks for tomorrow?").
				Affirmative("Keep").
				Negative("Clear").
				Value(e.keepUndone),
			huh.NewConfirm().
				Title("Start a new day?").
				Description("The brain dump is cleared and points reset to 0.").
				Affirmative("Start fresh").
				Negative("Cancel").
				Value(e.confirm),
		),
	).WithShowHelp(true).WithShowErrors(true)
	e.formActive = true
	return e, e.form.Init()
}

func (e endOfDayModel) updateForm(msg tea.Msg) (endOfDayModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			e.formActive = false
			e.form = nil
			return e, nil
		}
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if e.form.State == huh.StateCompleted {
		e.formActive = false
		switch e.formType {
		case "email":
			e.sending = true
			return e, tea.Batch(e.send(strings.TrimSpace(*e.email)), status("Sending summary…"))
		case "reset":
			if !*e.confirm {
				return e, nil
			}
			if err := e.app.EndOfDay(*e.keepUndone); err != nil {
				return e, errStatus("Reset failed", err)
			}
			return e, tea.Batch(e.refresh(), changed, status("New day started. You've got this!"))
		}
	}
	return e, cmd
}

func (e endOfDayModel) send(email string) tea.Cmd {
	sender := e.sender
	timeout := e.sendTimeout
	if timeout <= 0 {
		timeout = mailer.DefaultTimeout
	}
	payload := mailer.NewPayload(email, e.app.Day())
	return func() tea.Msg {
		if sender == nil {
			return emailSentMsg{email: email, err: mailer.ErrNotConfigured}
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		res, err := sender.Send(ctx, payload)
		return emailSentMsg{email: email, result: res, err: err}
	}
}

// publicError shortens a send error to what the user can act on.
func publicError(err error) string {
	switch {
	case errors.Is(err, mailer.ErrNotConfigured):
		return "email is not configured (set mail.resend_api_key or mail.endpoint)"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, mailer.ErrInvalidEmail):
		return "invalid email address"
	}
	return err.Error()
}

func (e endOfDayModel) view() string {
	w := e.width - 4

	if e.formActive && e.form != nil {
		title := "Email Summary"
		if e.formType == "reset" {
			title = "End of Day"
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", e.form.View()),
		)
	}
	if e.exportPicking {
		return e.renderExportPicker(w)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("End of Day"), "  ",
		successStyle.Render(fmt.Sprintf("%d done", e.completed)), "  ",
		warningStyle.Render(fmt.Sprintf("%d pending", e.pending)), "  ",
		mutedStyle.Render(fmt.Sprintf("%d notes", e.notes)),
	)
	hint := "  y: copy  w: export  m: email  R: new day  ↑/↓: scroll"
	if e.sending {
		hint = "  Sending summary…"
	}
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", e.vp.View(), "", mutedStyle.Render(hint)),
	)
}

func (e endOfDayModel) renderExportPicker(w int) string {
	rows := []string{titleStyle.Render("Export Format"), ""}
	for i, f := range export.Formats {
		cursor := "  "
		style := normalItemStyle
		if i == e.exportCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursor+strings.ToUpper(string(f))))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: export  esc: cancel"))
	return activePanelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
