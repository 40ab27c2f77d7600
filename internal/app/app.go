// Package app wires the router state machine, the quiz workflow, and the
// screens into the root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/quizforge/internal/auth"
	"github.com/abhisek/quizforge/internal/config"
	"github.com/abhisek/quizforge/internal/extract"
	"github.com/abhisek/quizforge/internal/mastery"
	"github.com/abhisek/quizforge/internal/quizgen"
	"github.com/abhisek/quizforge/internal/router"
	"github.com/abhisek/quizforge/internal/screen"
	"github.com/abhisek/quizforge/internal/screens/authflow"
	"github.com/abhisek/quizforge/internal/screens/dashboard"
	"github.com/abhisek/quizforge/internal/screens/history"
	"github.com/abhisek/quizforge/internal/screens/objectives"
	"github.com/abhisek/quizforge/internal/screens/quiz"
	"github.com/abhisek/quizforge/internal/screens/results"
	"github.com/abhisek/quizforge/internal/screens/wizard"
	"github.com/abhisek/quizforge/internal/store"
	"github.com/abhisek/quizforge/internal/ui/layout"
	"github.com/abhisek/quizforge/internal/ui/theme"
	"github.com/abhisek/quizforge/internal/workflow"
)

// Options carries everything the app needs to run.
type Options struct {
	Config    config.Config
	Store     *store.Store
	Auth      *auth.Service
	Extractor extract.Extractor
	Generator quizgen.Generator
	Logger    *zap.Logger
}

// sessionCheckedMsg completes the startup auth check. Profiles are local
// and sessions are not persisted across runs, so the check always lands
// on the login screen.
type sessionCheckedMsg struct{}

// AppModel is the root Bubble Tea model. It owns the router machine and
// swaps the active screen as the machine moves between states.
type AppModel struct {
	opts       Options
	machine    *router.Machine
	controller *workflow.Controller
	updater    *mastery.Updater

	session auth.Session
	active  screen.Screen

	// wizard survives across the wizard's router states so stage moves do
	// not rebuild it.
	wizard    *wizard.WizardScreen
	quizReady bool

	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		opts:       opts,
		machine:    router.NewMachine(),
		controller: workflow.NewController(opts.Config.Quiz),
		updater:    mastery.NewUpdater(opts.Store.Objectives()),
	}
}

func (m AppModel) Init() tea.Cmd {
	return func() tea.Msg { return sessionCheckedMsg{} }
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.machine.Current() == router.StateError {
			switch msg.String() {
			case "enter", "esc":
				m.machine.ResetToDashboard()
				cmd := m.syncScreen()
				return m, cmd
			}
			return m, nil
		}

	case sessionCheckedMsg:
		m.machine.SetAuthenticated(false)
		cmd := m.syncScreen()
		return m, cmd

	case router.NavigateMsg:
		if err := m.machine.NavigateTo(msg.To); err != nil {
			m.opts.Logger.Warn("navigation blocked", zap.Error(err))
			return m, nil
		}
		cmd := m.syncScreen()
		return m, cmd

	case router.BackMsg:
		return m, func() tea.Msg { return router.NavigateMsg{To: router.StateDashboard} }

	case router.ResetMsg:
		m.controller.Reset()
		m.wizard = nil
		m.quizReady = false
		m.machine.ResetToDashboard()
		cmd := m.syncScreen()
		return m, cmd

	case router.FailMsg:
		m.machine.Fail(msg.Message)
		m.active = nil
		return m, nil

	case authflow.SignedInMsg:
		m.session = msg.Session
		m.machine.SetAuthenticated(true)
		m.opts.Logger.Info("signed in", zap.String("profile", m.session.Name))
		cmd := m.syncScreen()
		return m, cmd

	case authflow.ResetDoneMsg:
		if err := m.machine.NavigateTo(router.StateLogin); err != nil {
			return m, nil
		}
		m.active = authflow.NewLogin(m.opts.Auth, msg.Notice)
		return m, m.active.Init()

	case dashboard.SignOutMsg:
		m.opts.Logger.Info("signed out", zap.String("profile", m.session.Name))
		m.session = auth.Session{}
		m.controller.Reset()
		m.wizard = nil
		m.quizReady = false
		m.machine.SetAuthenticated(false)
		cmd := m.syncScreen()
		return m, cmd

	case dashboard.StartQuizMsg:
		return m.startQuiz(msg.Personalized)

	case wizard.QuizReadyMsg:
		m.quizReady = true
		if m.machine.Current() == router.StateQuizActive {
			cmd := m.syncScreen()
			return m, cmd
		}
		return m, nil

	case quiz.SubmittedMsg:
		if err := m.machine.NavigateTo(router.StateQuizCompleted); err != nil {
			return m, nil
		}
		m.wizard = nil
		m.quizReady = false
		cmd := m.syncScreen()
		return m, cmd
	}

	if m.active == nil {
		return m, nil
	}
	next, cmd := m.active.Update(msg)
	m.active = next
	return m, cmd
}

// llmReady reports whether the generation pipeline was wired at startup.
func (m AppModel) llmReady() bool {
	return m.opts.Generator != nil && m.opts.Extractor != nil
}

// startQuiz resets the workflow, begins the chosen mode, and hands the
// flow to a fresh wizard.
func (m AppModel) startQuiz(personalized bool) (tea.Model, tea.Cmd) {
	if !m.llmReady() {
		// The dashboard disables these entries; this guards any other path.
		m.opts.Logger.Warn("quiz start blocked, no llm provider configured")
		return m, nil
	}
	m.controller.Reset()
	mode := workflow.ModeQuick
	first := router.StateUpload
	if personalized {
		mode = workflow.ModePersonalized
		first = router.StateCourseSelect
	}
	if err := m.controller.Begin(mode); err != nil {
		m.opts.Logger.Error("start quiz", zap.Error(err))
		return m, nil
	}
	if err := m.machine.NavigateTo(first); err != nil {
		m.opts.Logger.Warn("navigation blocked", zap.Error(err))
		return m, nil
	}
	m.wizard = wizard.New(
		m.controller,
		m.opts.Config.Quiz,
		m.session,
		m.opts.Store.Courses(),
		m.opts.Store.Objectives(),
		m.opts.Extractor,
		m.opts.Generator,
	)
	m.quizReady = false
	m.active = m.wizard
	return m, m.active.Init()
}

// syncScreen builds the screen for the machine's current state. Wizard
// states reuse the live wizard instead of rebuilding it.
func (m *AppModel) syncScreen() tea.Cmd {
	switch m.machine.Current() {
	case router.StateLogin:
		m.active = authflow.NewLogin(m.opts.Auth, m.machine.AuthMessage)
	case router.StateSignup:
		m.active = authflow.NewSignup(m.opts.Auth)
	case router.StateForgotPassword:
		m.active = authflow.NewForgot(m.opts.Auth)
	case router.StateDashboard:
		m.active = dashboard.New(m.session, m.opts.Store.Objectives(), m.llmReady())
	case router.StateCourseSelect, router.StateTypeSelect, router.StateUpload,
		router.StateSubtopics, router.StatePreferences, router.StateGenerating:
		if m.wizard != nil {
			m.active = m.wizard
		}
		// Stage entry work already ran when the wizard moved; nothing to
		// initialize here.
		return nil
	case router.StateQuizActive:
		if !m.quizReady {
			// Generation finished message has not landed yet; keep showing
			// the wizard's generating view until it does.
			return nil
		}
		m.wizard = nil
		m.active = quiz.New(m.controller)
	case router.StateQuizCompleted:
		m.active = results.New(m.controller, m.opts.Store.Quizzes(), m.updater, m.session)
	case router.StateHistory:
		m.active = history.New(m.opts.Store.Quizzes(), m.session)
	case router.StateObjectives:
		m.active = objectives.New(m.opts.Store.Objectives(), m.session)
	case router.StateError:
		m.active = nil
		return nil
	default:
		return nil
	}
	if m.active == nil {
		return nil
	}
	return m.active.Init()
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	title := ""
	if m.machine.Current() == router.StateError {
		title = "Error"
	} else if m.active != nil {
		title = m.active.Title()
	}

	header := layout.RenderHeader(title, m.session.Name, m.width)

	hints := []layout.KeyHint{}
	if provider, ok := m.active.(screen.KeyHintProvider); ok && m.machine.Current() != router.StateError {
		hints = append(hints, provider.KeyHints()...)
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(hints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	var content string
	switch {
	case m.machine.Current() == router.StateError:
		content = m.errorView(contentHeight)
	case m.active != nil:
		content = m.active.View(m.width, contentHeight)
	}

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) errorView(contentHeight int) string {
	message := m.machine.ErrorMessage
	if message == "" {
		message = "Something went wrong."
	}
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Something went wrong"),
		"",
		theme.InlineError.Render(message),
		"",
		theme.Hint.Render("Press Enter to continue"),
	)
	return layout.Centered(body, m.width, contentHeight)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
