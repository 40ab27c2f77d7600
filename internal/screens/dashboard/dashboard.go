// Package dashboard is the signed-in landing screen.
package dashboard

import (
	"context"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizforge/internal/auth"
	"github.com/abhisek/quizforge/internal/router"
	"github.com/abhisek/quizforge/internal/screen"
	"github.com/abhisek/quizforge/internal/store"
	"github.com/abhisek/quizforge/internal/ui/components"
	"github.com/abhisek/quizforge/internal/ui/layout"
	"github.com/abhisek/quizforge/internal/ui/theme"
)

// SignOutMsg asks the app to end the session.
type SignOutMsg struct{}

// StartQuizMsg asks the app to begin the quiz wizard in the given mode.
type StartQuizMsg struct {
	Personalized bool
}

// masterySummaryMsg carries the objective status counts.
type masterySummaryMsg struct {
	Mastered   int
	InProgress int
	NeedsWork  int
	Err        error
}

// DashboardScreen is the main menu.
type DashboardScreen struct {
	menu       components.Menu
	session    auth.Session
	objectives store.ObjectiveRepo
	llmReady   bool

	summary *masterySummaryMsg
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard for the signed-in profile. llmReady disables
// the quiz entries when no provider is configured.
func New(session auth.Session, objectives store.ObjectiveRepo, llmReady bool) *DashboardScreen {
	items := []components.MenuItem{
		{
			Label:    "Quick Quiz",
			Hint:     "from a document, no tracking",
			Disabled: !llmReady,
			Action: func() tea.Cmd {
				return func() tea.Msg { return StartQuizMsg{Personalized: false} }
			},
		},
		{
			Label:    "Personalized Quiz",
			Hint:     "tracks mastery per course",
			Disabled: !llmReady,
			Action: func() tea.Cmd {
				return func() tea.Msg { return StartQuizMsg{Personalized: true} }
			},
		},
		{
			Label: "Learning Objectives",
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.NavigateMsg{To: router.StateObjectives} }
			},
		},
		{
			Label: "Quiz History",
			Action: func() tea.Cmd {
				return func() tea.Msg { return router.NavigateMsg{To: router.StateHistory} }
			},
		},
		{
			Label: "Sign Out",
			Action: func() tea.Cmd {
				return func() tea.Msg { return SignOutMsg{} }
			},
		},
	}
	return &DashboardScreen{
		menu:       components.NewMenu(items),
		session:    session,
		objectives: objectives,
		llmReady:   llmReady,
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	repo := s.objectives
	owner := s.session.ProfileID
	return func() tea.Msg {
		items, err := repo.ForOwner(context.Background(), owner, "")
		msg := masterySummaryMsg{Err: err}
		for _, o := range items {
			switch o.Status {
			case store.StatusSuccess:
				msg.Mastered++
			case store.StatusIntermediate:
				msg.InProgress++
			case store.StatusFailure:
				msg.NeedsWork++
			}
		}
		return msg
	}
}

func (s *DashboardScreen) Title() string { return "Dashboard" }

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Up/Down", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if summary, ok := msg.(masterySummaryMsg); ok {
		s.summary = &summary
		return s, nil
	}
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *DashboardScreen) View(width, height int) string {
	title := theme.Title.Render("What would you like to do?")
	sub := theme.Subtitle.Render("Signed in as " + s.session.Name)

	parts := []string{title, sub, "", s.menu.View()}
	if !s.llmReady {
		parts = append(parts, "", theme.InlineNotice.Render(
			"No LLM provider configured. Set an API key to enable quizzes."))
	}
	if line := s.summaryLine(); line != "" {
		parts = append(parts, "", line)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)
	return layout.Centered(content, width, height)
}

// summaryLine renders the objective status counts once loaded. Load errors
// are logged upstream; the dashboard just omits the line.
func (s *DashboardScreen) summaryLine() string {
	if s.summary == nil || s.summary.Err != nil {
		return ""
	}
	total := s.summary.Mastered + s.summary.InProgress + s.summary.NeedsWork
	if total == 0 {
		return ""
	}
	return theme.StatusSuccess.Render(strconv.Itoa(s.summary.Mastered)+" mastered") +
		theme.Hint.Render("  ·  ") +
		theme.StatusIntermediate.Render(strconv.Itoa(s.summary.InProgress)+" in progress") +
		theme.Hint.Render("  ·  ") +
		theme.StatusFailure.Render(strconv.Itoa(s.summary.NeedsWork)+" need work")
}
