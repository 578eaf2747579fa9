package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Alixocracy/jast/internal/app"
	"github.com/Alixocracy/jast/internal/mailer"
	"github.com/Alixocracy/jast/internal/timer"
)

// Deps are the side-effecting collaborators of the TUI.
type Deps struct {
	Sender      mailer.Sender
	SendTimeout time.Duration
	Alarm       timer.Alarm
	ExportDir   string
	Clipboard   func(string) error
	Settings    []Setting
}

// App is the root Bubble Tea model.
type App struct {
	core   *app.App
	deps   Deps
	width  int
	height int

	activeView  viewState
	showHelp    bool
	affirmation string

	onboarding *onboardingModel
	fullScreen *focusModel

	today    todayModel
	focus    focusModel
	dump     dumpModel
	points   pointsModel
	endOfDay endOfDayModel
	settings settingsModel

	help      help.Model
	status    string
	statusErr bool
}

func NewApp(core *app.App, deps Deps) App {
	h := help.New()
	h.ShowAll = false

	a := App{
		core:        core,
		deps:        deps,
		activeView:  viewToday,
		affirmation: core.Profile.Affirmation(""),
		today:       newTodayModel(core),
		focus:       newFocusModel(core, deps.Alarm, 0, timer.Regular),
		dump:        newDumpModel(core),
		points:      newPointsModel(core),
		endOfDay:    newEndOfDayModel(core, deps),
		settings:    newSettingsModel(core, deps.Settings),
		help:        h,
	}
	if !core.Profile.Onboarded() {
		o := newOnboardingModel(core)
		a.onboarding = &o
	}
	return a
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.refreshAll(), tickCmd()}
	if a.onboarding != nil {
		cmds = append(cmds, a.onboarding.Init())
	}
	return tea.Batch(cmds...)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a App) refreshAll() tea.Cmd {
	return tea.Batch(
		a.today.refresh(),
		a.focus.refresh(),
		a.dump.refresh(),
		a.points.refresh(),
		a.endOfDay.refresh(),
		a.settings.refresh(),
	)
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 5 // header + footer
		a.today.setSize(a.width, contentHeight)
		a.focus.setSize(a.width, contentHeight)
		a.dump.setSize(a.width, contentHeight)
		a.points.setSize(a.width, contentHeight)
		a.endOfDay.setSize(a.width, contentHeight)
		a.settings.setSize(a.width, contentHeight)
		if a.fullScreen != nil {
			a.fullScreen.setSize(a.width, a.height)
		}
		return a, a.endOfDay.refresh()

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		var cmd tea.Cmd
		if a.fullScreen != nil {
			*a.fullScreen, cmd = a.fullScreen.update(msg)
		} else {
			a.focus, cmd = a.focus.update(msg)
		}
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case statusMsg:
		a.status = msg.text
		a.statusErr = msg.isError
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.statusErr = false
		return a, nil

	case dataChangedMsg:
		return a, a.refreshAll()

	case onboardingDoneMsg:
		a.onboarding = nil
		a.status = fmt.Sprintf("Welcome, %s!", msg.name)
		return a, a.refreshAll()

	case openFullScreenMsg:
		fs := newFocusModel(a.core, a.deps.Alarm, a.focus.timer.State().SelectedMinutes, timer.FullScreen)
		fs.setSize(a.width, a.height)
		a.fullScreen = &fs
		return a, nil

	case closeFullScreenMsg:
		if a.fullScreen != nil {
			a.fullScreen.detach()
			a.fullScreen = nil
		}
		a.focus.reattach()
		return a, nil
	}

	if cmd, ok := a.routeData(msg); ok {
		return a, cmd
	}

	if a.onboarding != nil {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
			return a, tea.Quit
		}
		o, cmd := a.onboarding.update(msg)
		a.onboarding = &o
		return a, cmd
	}

	if a.fullScreen != nil {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "ctrl+c" {
			return a, tea.Quit
		}
		var cmd tea.Cmd
		*a.fullScreen, cmd = a.fullScreen.update(msg)
		return a, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok && !a.isFormActive() {
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewToday)
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewFocus)
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewDump)
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewPoints)
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewEndOfDay)
		case key.Matches(msg, keys.Tab6):
			return a.switchTo(viewSettings)
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames)))
		case key.Matches(msg, keys.Affirm) && a.activeView == viewToday:
			a.affirmation = a.core.Profile.Affirmation(a.affirmation)
			return a, nil
		}
	}

	return a.updateActiveView(msg)
}

// routeData delivers view data messages to their owner whichever view is
// showing.
func (a *App) routeData(msg tea.Msg) (tea.Cmd, bool) {
	var cmd tea.Cmd
	switch msg.(type) {
	case todayDataMsg:
		a.today, cmd = a.today.update(msg)
	case focusDataMsg:
		a.focus, cmd = a.focus.update(msg)
	case dumpDataMsg:
		a.dump, cmd = a.dump.update(msg)
	case pointsDataMsg:
		a.points, cmd = a.points.update(msg)
	case endOfDayDataMsg, emailSentMsg:
		a.endOfDay, cmd = a.endOfDay.update(msg)
	case settingsDataMsg, trackAddedMsg:
		a.settings, cmd = a.settings.update(msg)
	default:
		return nil, false
	}
	return cmd, true
}

func (a App) switchTo(v viewState) (tea.Model, tea.Cmd) {
	a.activeView = v
	return a, a.refreshCurrentView()
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewToday:
		a.today, cmd = a.today.update(msg)
	case viewFocus:
		a.focus, cmd = a.focus.update(msg)
	case viewDump:
		a.dump, cmd = a.dump.update(msg)
	case viewPoints:
		a.points, cmd = a.points.update(msg)
	case viewEndOfDay:
		a.endOfDay, cmd = a.endOfDay.update(msg)
	case viewSettings:
		a.settings, cmd = a.settings.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewToday:
		return a.today.formActive
	case viewFocus:
		return a.focus.editing()
	case viewDump:
		return a.dump.inputActive()
	case viewEndOfDay:
		return a.endOfDay.formActive || a.endOfDay.exportPicking
	case viewSettings:
		return a.settings.formActive
	}
	return false
}

func (a App) refreshCurrentView() tea.Cmd {
	switch a.activeView {
	case viewToday:
		return a.today.refresh()
	case viewFocus:
		return a.focus.refresh()
	case viewDump:
		return a.dump.refresh()
	case viewPoints:
		return a.points.refresh()
	case viewEndOfDay:
		return a.endOfDay.refresh()
	case viewSettings:
		return a.settings.refresh()
	}
	return nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}
	if a.onboarding != nil {
		return a.onboarding.view(a.width, a.height)
	}
	if a.fullScreen != nil {
		return a.fullScreen.view()
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewToday:
		content = a.today.view()
	case viewFocus:
		content = a.focus.view()
	case viewDump:
		content = a.dump.view()
	case viewPoints:
		content = a.points.view()
	case viewEndOfDay:
		content = a.endOfDay.view()
	case viewSettings:
		content = a.settings.view()
	}

	contentHeight := a.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if contentHeight < 1 {
		contentHeight = 1
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		MaxHeight(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(sage).Render("JAST")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	greeting := "Hi there"
	if name := a.core.Profile.Name(); name != "" {
		greeting = "Hi, " + name
	}
	line := titleStyle.Render(greeting) + "  " + subtitleStyle.Render(a.affirmation)

	return headerStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
		line,
	))
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		style := mutedStyle
		if a.statusErr {
			style = errorStyle
		}
		status = style.Render(" " + a.status)
	}

	// Countdown indicator in footer
	timerInfo := ""
	if snap := a.core.Focus.Snapshot(); snap.Running && a.activeView != viewFocus {
		timerInfo = successStyle.Render(" ● " + timer.FormatClock(snap.RemainingSeconds))
	}

	left := footerStyle.Render(helpView)
	right := timerInfo + status

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, right)
}
