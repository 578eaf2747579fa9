package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Alixocracy/jast/internal/app"
	"github.com/Alixocracy/jast/internal/playlist"
	"github.com/Alixocracy/jast/internal/profile"
)

// Setting is a read-only configuration row shown in the settings view.
type Setting struct {
	Key   string
	Value string
}

type settingsModel struct {
	app    *app.App
	width  int
	height int

	info   []Setting
	name   string
	tracks []playlist.Track
	cursor int
	adding bool

	formActive bool
	form       *huh.Form
	formType   string // "name", "track"

	// Form values as pointers (survive value copies)
	formName *string
	formURL  *string
}

func newSettingsModel(a *app.App, info []Setting) settingsModel {
	name, url := "", ""
	return settingsModel{
		app:      a,
		info:     info,
		formName: &name,
		formURL:  &url,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	name   string
	tracks []playlist.Track
}

type trackAddedMsg struct {
	track playlist.Track
	err   error
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{name: s.app.Profile.Name(), tracks: s.app.Playlist.Tracks()}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.name = msg.name
		s.tracks = msg.tracks
		s.cursor = clamp(s.cursor, 0, max(0, len(s.tracks)-1))
		return s, nil

	case trackAddedMsg:
		s.adding = false
		if msg.err != nil {
			return s, errStatus("Add track failed", msg.err)
		}
		return s, tea.Batch(s.refresh(), status("Saved "+msg.track.Title))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Edit), key.Matches(msg, keys.Enter):
			return s.showNameForm()
		case key.Matches(msg, keys.New):
			if !s.adding {
				return s.showTrackForm()
			}
		case key.Matches(msg, keys.Up):
			s.cursor = max(0, s.cursor-1)
		case key.Matches(msg, keys.Down):
			s.cursor = clamp(s.cursor+1, 0, max(0, len(s.tracks)-1))
		case key.Matches(msg, keys.Delete):
			if s.cursor < len(s.tracks) {
				if err := s.app.Playlist.Remove(s.tracks[s.cursor].ID); err != nil {
					return s, errStatus("Remove failed", err)
				}
				return s, s.refresh()
			}
		}
	}
	return s, nil
}

func (s settingsModel) showNameForm() (settingsModel, tea.Cmd) {
	*s.formName = s.name
	s.formType = "name"
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Your name").Value(s.formName).Validate(validName),
		),
	).WithShowHelp(true).WithShowErrors(true)
	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) showTrackForm() (settingsModel, tea.Cmd) {
	*s.formURL = ""
	s.formType = "track"
	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("YouTube video or playlist link").
				Placeholder("https://www.youtube.com/watch?v=…").
				Value(s.formURL).
				Validate(validTrackURL),
		),
	).WithShowHelp(true).WithShowErrors(true)
	s.formActive = true
	return s, s.form.Init()
}

func validName(v string) error {
	if strings.TrimSpace(v) == "" {
		return profile.ErrEmptyName
	}
	return nil
}

func validTrackURL(v string) error {
	if _, ok := playlist.VideoID(v); ok {
		return nil
	}
	if _, ok := playlist.PlaylistID(v); ok {
		return nil
	}
	return playlist.ErrUnrecognized
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		switch s.formType {
		case "name":
			if err := s.app.Profile.SetName(*s.formName); err != nil {
				return s, errStatus("Save failed", err)
			}
			return s, tea.Batch(s.refresh(), changed)
		case "track":
			s.adding = true
			return s, s.addTrack(strings.TrimSpace(*s.formURL))
		}
	}
	return s, cmd
}

func (s settingsModel) addTrack(url string) tea.Cmd {
	pl := s.app.Playlist
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		t, err := pl.Add(ctx, url)
		return trackAddedMsg{track: t, err: err}
	}
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := "Profile"
		if s.formType == "track" {
			title = "Add Track"
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", s.form.View()),
		)
	}

	name := s.name
	if name == "" {
		name = mutedStyle.Render("(not set)")
	}
	rows := []string{titleStyle.Render("Settings"), ""}
	rows = append(rows, fmt.Sprintf("  %s %s", lipgloss.NewStyle().Width(18).Render("Name"), highlightStyle.Render(name)))
	for _, in := range s.info {
		label := lipgloss.NewStyle().Width(18).Render(in.Key)
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(in.Value)))
	}
	rows = append(rows, "", mutedStyle.Render("  enter: edit name"))

	return lipgloss.JoinVertical(lipgloss.Left,
		panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...)),
		panelStyle.Width(w).Render(s.renderPlaylist()),
	)
}

func (s settingsModel) renderPlaylist() string {
	rows := []string{titleStyle.Render("Focus Music") + "  " + mutedStyle.Render(fmt.Sprintf("%d tracks", len(s.tracks)))}
	for i, t := range s.tracks {
		cursor := "  "
		style := normalItemStyle
		if i == s.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		kind := "♪"
		switch {
		case t.IsLocal:
			kind = "●"
		case t.IsPlaylist:
			kind = "≡"
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s", cursor, kind, t.Title))+"  "+mutedStyle.Render(t.URL))
	}
	hint := "  n: add link  d: remove"
	if s.adding {
		hint = "  Looking up title…"
	}
	rows = append(rows, "", mutedStyle.Render(hint))
	return strings.Join(rows, "\n")
}
