package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/Alixocracy/jast/internal/app"
)

type onboardingDoneMsg struct {
	name string
}

// onboardingModel asks for a display name on first launch.
type onboardingModel struct {
	app  *app.App
	form *huh.Form
	name *string
	err  error
}

func newOnboardingModel(a *app.App) onboardingModel {
	name := ""
	m := onboardingModel{app: a, name: &name}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Hi there! I'm JAST").
				Description("I'm your personal wellbeing assistant, here to help you stay focused and organized throughout the day.\n\n"+
					"Focus Mode: timed sessions to help you concentrate\n"+
					"Brain Dump: capture racing thoughts so they don't distract you\n"+
					"Gentle Reminders: daily affirmations and wellness prompts").
				Next(true).
				NextLabel("Get Started"),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("What should I call you?").
				Description("Your first name or nickname.").
				Value(m.name).
				Validate(validName),
		),
	).WithShowHelp(true).WithShowErrors(true)
	return m
}

func (o onboardingModel) Init() tea.Cmd { return o.form.Init() }

func (o onboardingModel) update(msg tea.Msg) (onboardingModel, tea.Cmd) {
	form, cmd := o.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		o.form = f
	}
	if o.form.State == huh.StateCompleted {
		if err := o.app.Profile.CompleteOnboarding(*o.name); err != nil {
			o.err = err
			return o, errStatus("Save failed", err)
		}
		name := *o.name
		return o, func() tea.Msg { return onboardingDoneMsg{name: name} }
	}
	return o, cmd
}

func (o onboardingModel) view(width, height int) string {
	body := activePanelStyle.Width(min(60, max(30, width-4))).Render(o.form.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}
